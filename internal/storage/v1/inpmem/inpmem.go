// Package inpmem implements process-lifetime in-memory storage. State is
// empty at startup and discarded on context cancellation; nothing survives
// a restart.
package inpmem

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/rychardsson/go-bank-api/internal/models/modelstorage"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
	storageErrors "github.com/rychardsson/go-bank-api/internal/storage/v1/errors"
	"github.com/shopspring/decimal"
)

// accountState bundles one account with its append-only transaction log.
// mu serializes every read-modify-write of the balance; different accounts
// lock independently.
type accountState struct {
	mu           sync.Mutex
	entry        modelstorage.AccountStorageEntry
	transactions []modelstorage.TransactionStorageEntry
}

type Storage struct {
	mu          sync.RWMutex
	Cfg         *config.StorageConfig
	log         *zerolog.Logger
	users       map[string]modelstorage.UserStorageEntry
	cpfIndex    map[string]string
	accounts    map[string]*accountState
	userAccount map[string]string
	accountSeq  int
}

func InitStorage(ctx context.Context, cfg *config.StorageConfig, log *zerolog.Logger, wg *sync.WaitGroup) (*Storage, error) {
	st := Storage{
		Cfg:         cfg,
		log:         log,
		users:       make(map[string]modelstorage.UserStorageEntry),
		cpfIndex:    make(map[string]string),
		accounts:    make(map[string]*accountState),
		userAccount: make(map[string]string),
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		<-ctx.Done()
		st.mu.Lock()
		defer st.mu.Unlock()
		st.users = nil
		st.cpfIndex = nil
		st.accounts = nil
		st.userAccount = nil
		log.Info().Msg("in-memory storage was discarded")
	}()
	log.Info().Msg("in-memory storage was initialized")
	return &st, nil
}

// AddNewUser stores a user entry rejecting duplicate CPFs.
func (s *Storage) AddNewUser(ctx context.Context, user modelstorage.UserStorageEntry) error {
	if err := ctx.Err(); err != nil {
		return &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cpfIndex[user.CPF]; ok {
		s.log.Error().Msg(fmt.Sprintf("adding new user failed for CPF %s", user.CPF))
		return &storageErrors.AlreadyExistsError{ID: user.CPF}
	}
	s.users[user.UserID] = user
	s.cpfIndex[user.CPF] = user.UserID
	s.log.Info().Msg(fmt.Sprintf("adding new user done for CPF %s", user.CPF))
	return nil
}

// GetUserByCPF resolves a user entry by its unique CPF.
func (s *Storage) GetUserByCPF(ctx context.Context, cpf string) (modelstorage.UserStorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return modelstorage.UserStorageEntry{}, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	userID, ok := s.cpfIndex[cpf]
	if !ok {
		return modelstorage.UserStorageEntry{}, &storageErrors.NotFoundError{}
	}
	return s.users[userID], nil
}

// AddNewAccount creates the single account a user may own.
func (s *Storage) AddNewAccount(ctx context.Context, userID, accountType string) (modelstorage.AccountStorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return modelstorage.AccountStorageEntry{}, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[userID]; !ok {
		return modelstorage.AccountStorageEntry{}, &storageErrors.NotFoundError{}
	}
	if _, ok := s.userAccount[userID]; ok {
		s.log.Error().Msg(fmt.Sprintf("adding new account failed for user %s", userID))
		return modelstorage.AccountStorageEntry{}, &storageErrors.AccountAlreadyExistsError{UserID: userID}
	}
	s.accountSeq++
	entry := modelstorage.AccountStorageEntry{
		AccountID:     uuid.New().String(),
		AccountNumber: s.newAccountNumber(),
		AccountType:   accountType,
		Balance:       decimal.Zero,
		UserID:        userID,
		CreatedAt:     time.Now().Format(time.RFC3339),
	}
	s.accounts[entry.AccountID] = &accountState{entry: entry}
	s.userAccount[userID] = entry.AccountID
	s.log.Info().Msg(fmt.Sprintf("adding new account %s done for user %s", entry.AccountNumber, userID))
	return entry, nil
}

// GetAccountByUser returns the current account snapshot for a user.
func (s *Storage) GetAccountByUser(ctx context.Context, userID string) (modelstorage.AccountStorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return modelstorage.AccountStorageEntry{}, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	s.mu.RLock()
	accountID, ok := s.userAccount[userID]
	if !ok {
		s.mu.RUnlock()
		return modelstorage.AccountStorageEntry{}, &storageErrors.NotFoundError{}
	}
	state := s.accounts[accountID]
	s.mu.RUnlock()
	state.mu.Lock()
	defer state.mu.Unlock()
	return state.entry, nil
}

// AddNewTransaction applies one deposit or withdrawal under the account
// lock. Either the balance moves and an entry is appended, or nothing
// changes at all.
func (s *Storage) AddNewTransaction(ctx context.Context, accountID string, kind ledger.Kind, amount decimal.Decimal, description string) (modelstorage.TransactionStorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return modelstorage.TransactionStorageEntry{}, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	state, err := s.getAccountState(accountID)
	if err != nil {
		return modelstorage.TransactionStorageEntry{}, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	balanceBefore := state.entry.Balance
	balanceAfter, err := ledger.Apply(balanceBefore, kind, amount)
	if err != nil {
		s.log.Error().Err(err).Msg(fmt.Sprintf("adding new %s failed for account %s", kind, accountID))
		return modelstorage.TransactionStorageEntry{}, err
	}
	entry := modelstorage.TransactionStorageEntry{
		TransactionID: uuid.New().String(),
		AccountID:     accountID,
		Kind:          string(kind),
		Amount:        amount,
		Description:   description,
		BalanceBefore: balanceBefore,
		BalanceAfter:  balanceAfter,
		ProcessedAt:   time.Now().Format(time.RFC3339),
	}
	state.entry.Balance = balanceAfter
	state.transactions = append(state.transactions, entry)
	s.log.Info().Msg(fmt.Sprintf("adding new %s done for account %s", kind, accountID))
	return entry, nil
}

// GetSnapshot returns the account entry and its transaction log, both taken
// under the same account lock so totals always match the balance.
func (s *Storage) GetSnapshot(ctx context.Context, accountID string) (modelstorage.AccountStorageEntry, []modelstorage.TransactionStorageEntry, error) {
	if err := ctx.Err(); err != nil {
		return modelstorage.AccountStorageEntry{}, nil, &storageErrors.ContextTimeoutExceededError{Err: err}
	}
	state, err := s.getAccountState(accountID)
	if err != nil {
		return modelstorage.AccountStorageEntry{}, nil, err
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	transactions := make([]modelstorage.TransactionStorageEntry, len(state.transactions))
	copy(transactions, state.transactions)
	return state.entry, transactions, nil
}

func (s *Storage) getAccountState(accountID string) (*accountState, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	state, ok := s.accounts[accountID]
	if !ok {
		return nil, &storageErrors.NotFoundError{}
	}
	return state, nil
}

// newAccountNumber renders a display number as branch-serial-digit where the
// last digit makes the whole digit string Luhn-compliant. Caller must hold
// s.mu.
func (s *Storage) newAccountNumber() string {
	serial := fmt.Sprintf("%06d", s.accountSeq)
	digit := "0"
	for d := 0; d <= 9; d++ {
		candidate := strconv.Itoa(d)
		if goluhn.Validate(s.Cfg.BranchCode+serial+candidate) == nil {
			digit = candidate
			break
		}
	}
	return fmt.Sprintf("%s-%s-%s", s.Cfg.BranchCode, serial, digit)
}
