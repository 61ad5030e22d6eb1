// Package processor provides intermediary layer functionality between the storage and API endpoint handlers.

package processor

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rychardsson/go-bank-api/internal/models/modeldto"
	"github.com/rychardsson/go-bank-api/internal/models/modelstorage"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
	serviceErrors "github.com/rychardsson/go-bank-api/internal/service/processor/v1/errors"
	"github.com/rychardsson/go-bank-api/internal/service/secretary/v1"
	"github.com/rychardsson/go-bank-api/internal/storage/v1"
	storageErrors "github.com/rychardsson/go-bank-api/internal/storage/v1/errors"
)

const (
	accountTypeChecking = "checking"
	accountTypeSavings  = "savings"
)

// Processor defines attributes of a struct available to its methods.
type Processor struct {
	storage   storage.Storage
	secretary secretary.Secretary
}

// InitService initializes an intermediary service for data processing.
func InitService(st storage.Storage, sec secretary.Secretary) (*Processor, error) {
	if st == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil storage was passed to service initializer"}
	}
	if sec == nil {
		return nil, &serviceErrors.ServiceFoundNilArgument{Msg: "nil secretary was passed to service initializer"}
	}
	processor := &Processor{
		storage:   st,
		secretary: sec,
	}
	return processor, nil
}

// GetUserID retrieves a user identifier from an access token.
func (proc *Processor) GetUserID(accessToken string) (string, error) {
	return proc.secretary.ValidateToken(accessToken)
}

// AddNewUser processes user register requests.
func (proc *Processor) AddNewUser(ctx context.Context, newUser modeldto.NewUser) (*modeldto.User, error) {
	if len(newUser.Name) < 3 {
		return nil, &serviceErrors.ServiceIllegalCredentials{Msg: "name must be at least 3 characters long"}
	}
	if !isCPF(newUser.CPF) {
		return nil, &serviceErrors.ServiceIllegalCredentials{Msg: fmt.Sprintf("illegal CPF %s, expected exactly 11 digits", newUser.CPF)}
	}
	if len(newUser.Password) < 6 {
		return nil, &serviceErrors.ServiceIllegalCredentials{Msg: "password must be at least 6 characters long"}
	}
	passwordHash, err := proc.secretary.HashPassword(newUser.Password)
	if err != nil {
		return nil, err
	}
	entry := modelstorage.UserStorageEntry{
		UserID:       uuid.New().String(),
		Name:         newUser.Name,
		CPF:          newUser.CPF,
		PasswordHash: passwordHash,
		RegisteredAt: time.Now().Format(time.RFC3339),
	}
	err = proc.storage.AddNewUser(ctx, entry)
	if err != nil {
		return nil, err
	}
	return &modeldto.User{ID: entry.UserID, Name: entry.Name, CPF: entry.CPF}, nil
}

// LoginUser processes user login requests.
func (proc *Processor) LoginUser(ctx context.Context, credentials modeldto.Credentials) (*modeldto.Token, error) {
	user, err := proc.storage.GetUserByCPF(ctx, credentials.Login)
	if err != nil {
		return nil, err
	}
	if !proc.secretary.CheckPassword(credentials.Password, user.PasswordHash) {
		return nil, &storageErrors.NotFoundError{}
	}
	accessToken, err := proc.secretary.NewToken(user.UserID)
	if err != nil {
		return nil, err
	}
	return &modeldto.Token{AccessToken: accessToken, TokenType: "bearer"}, nil
}

// AddNewAccount processes account creation requests.
func (proc *Processor) AddNewAccount(ctx context.Context, userID string, newAccount modeldto.NewAccount) (*modeldto.Account, error) {
	accountType := newAccount.AccountType
	if accountType == "" {
		accountType = accountTypeChecking
	}
	if accountType != accountTypeChecking && accountType != accountTypeSavings {
		return nil, &serviceErrors.ServiceIllegalAccountType{Msg: fmt.Sprintf("illegal account type %q", newAccount.AccountType)}
	}
	entry, err := proc.storage.AddNewAccount(ctx, userID, accountType)
	if err != nil {
		return nil, err
	}
	responseAccount := newResponseAccount(entry)
	return &responseAccount, nil
}

// GetAccount processes account query requests.
func (proc *Processor) GetAccount(ctx context.Context, userID string) (*modeldto.Account, error) {
	entry, err := proc.storage.GetAccountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	responseAccount := newResponseAccount(entry)
	return &responseAccount, nil
}

// AddNewTransaction processes deposit and withdrawal requests.
func (proc *Processor) AddNewTransaction(ctx context.Context, userID string, kind ledger.Kind, newTransaction modeldto.NewTransaction) (*modeldto.Transaction, error) {
	account, err := proc.storage.GetAccountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	amount := newTransaction.Amount.Round(2)
	entry, err := proc.storage.AddNewTransaction(ctx, account.AccountID, kind, amount, newTransaction.Description)
	if err != nil {
		return nil, err
	}
	responseTransaction := newResponseTransaction(entry)
	return &responseTransaction, nil
}

// GetStatement processes statement query requests.
func (proc *Processor) GetStatement(ctx context.Context, userID string) (*modeldto.Statement, error) {
	account, err := proc.storage.GetAccountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	accountEntry, transactionEntries, err := proc.storage.GetSnapshot(ctx, account.AccountID)
	if err != nil {
		return nil, err
	}
	responseTransactions := make([]modeldto.Transaction, 0, len(transactionEntries))
	for _, entry := range transactionEntries {
		responseTransactions = append(responseTransactions, newResponseTransaction(entry))
	}
	deposited, withdrawn := ledger.Totals(transactionEntries)
	statement := modeldto.Statement{
		Account:          newResponseAccount(accountEntry),
		Transactions:     responseTransactions,
		TotalDeposited:   deposited,
		TotalWithdrawn:   withdrawn,
		TransactionCount: len(transactionEntries),
	}
	return &statement, nil
}

// isCPF checks the identifier format, exactly 11 digits.
func isCPF(cpf string) bool {
	if len(cpf) != 11 {
		return false
	}
	for _, r := range cpf {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func newResponseAccount(entry modelstorage.AccountStorageEntry) modeldto.Account {
	return modeldto.Account{
		ID:            entry.AccountID,
		AccountNumber: entry.AccountNumber,
		AccountType:   entry.AccountType,
		Balance:       entry.Balance,
		CreatedAt:     entry.CreatedAt,
	}
}

func newResponseTransaction(entry modelstorage.TransactionStorageEntry) modeldto.Transaction {
	return modeldto.Transaction{
		ID:            entry.TransactionID,
		Kind:          entry.Kind,
		Amount:        entry.Amount,
		Description:   entry.Description,
		BalanceBefore: entry.BalanceBefore,
		BalanceAfter:  entry.BalanceAfter,
		ProcessedAt:   entry.ProcessedAt,
	}
}
