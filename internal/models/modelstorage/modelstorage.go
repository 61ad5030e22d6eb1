// Package modelstorage provides types for in-memory storage entries.

package modelstorage

import "github.com/shopspring/decimal"

type UserStorageEntry struct {
	UserID       string
	Name         string
	CPF          string
	PasswordHash string
	RegisteredAt string
}

type AccountStorageEntry struct {
	AccountID     string
	AccountNumber string
	AccountType   string
	Balance       decimal.Decimal
	UserID        string
	CreatedAt     string
}

type TransactionStorageEntry struct {
	TransactionID string
	AccountID     string
	Kind          string
	Amount        decimal.Decimal
	Description   string
	BalanceBefore decimal.Decimal
	BalanceAfter  decimal.Decimal
	ProcessedAt   string
}
