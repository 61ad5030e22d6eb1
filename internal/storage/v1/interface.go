package storage

import (
	"context"

	"github.com/rychardsson/go-bank-api/internal/models/modelstorage"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
	"github.com/shopspring/decimal"
)

type Register interface {
	AddNewUser(ctx context.Context, user modelstorage.UserStorageEntry) error
	GetUserByCPF(ctx context.Context, cpf string) (modelstorage.UserStorageEntry, error)
}

type Accounts interface {
	AddNewAccount(ctx context.Context, userID, accountType string) (modelstorage.AccountStorageEntry, error)
	GetAccountByUser(ctx context.Context, userID string) (modelstorage.AccountStorageEntry, error)
}

type Ledger interface {
	AddNewTransaction(ctx context.Context, accountID string, kind ledger.Kind, amount decimal.Decimal, description string) (modelstorage.TransactionStorageEntry, error)
	GetSnapshot(ctx context.Context, accountID string) (modelstorage.AccountStorageEntry, []modelstorage.TransactionStorageEntry, error)
}

type Storage interface {
	Register
	Accounts
	Ledger
}
