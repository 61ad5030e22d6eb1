package processor

import (
	"context"

	"github.com/rychardsson/go-bank-api/internal/models/modeldto"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
)

type Processor interface {
	GetUserID(accessToken string) (string, error)
	AddNewUser(ctx context.Context, newUser modeldto.NewUser) (*modeldto.User, error)
	LoginUser(ctx context.Context, credentials modeldto.Credentials) (*modeldto.Token, error)
	AddNewAccount(ctx context.Context, userID string, newAccount modeldto.NewAccount) (*modeldto.Account, error)
	GetAccount(ctx context.Context, userID string) (*modeldto.Account, error)
	AddNewTransaction(ctx context.Context, userID string, kind ledger.Kind, newTransaction modeldto.NewTransaction) (*modeldto.Transaction, error)
	GetStatement(ctx context.Context, userID string) (*modeldto.Statement, error)
}
