// Package ledger implements balance mutation rules and statement totals.
//
// Every balance change in the system goes through Apply; the caller is
// responsible for serializing Apply calls per account.

package ledger

import (
	"fmt"

	"github.com/rychardsson/go-bank-api/internal/models/modelstorage"
	ledgerErrors "github.com/rychardsson/go-bank-api/internal/service/ledger/v1/errors"
	"github.com/shopspring/decimal"
)

// Kind is a closed set of transaction kinds.
type Kind string

const (
	KindDeposit    Kind = "deposit"
	KindWithdrawal Kind = "withdrawal"
)

// Valid reports whether k is a member of the closed kind set.
func (k Kind) Valid() bool {
	return k == KindDeposit || k == KindWithdrawal
}

// Apply validates amount against kind and balance and returns the new balance.
// Amounts must be strictly positive; a withdrawal may drain the balance to
// exactly zero but never below it.
func Apply(balance decimal.Decimal, kind Kind, amount decimal.Decimal) (decimal.Decimal, error) {
	if amount.Sign() <= 0 {
		return balance, &ledgerErrors.LedgerInvalidAmount{Msg: fmt.Sprintf("transaction amount must be positive, got %s", amount)}
	}
	switch kind {
	case KindDeposit:
		return balance.Add(amount), nil
	case KindWithdrawal:
		if amount.GreaterThan(balance) {
			return balance, &ledgerErrors.LedgerNotEnoughFunds{Msg: fmt.Sprintf("not enough funds are available, present - %s, required - %s", balance, amount)}
		}
		return balance.Sub(amount), nil
	default:
		return balance, &ledgerErrors.LedgerUnknownKind{Msg: fmt.Sprintf("unknown transaction kind %q", kind)}
	}
}

// Totals sums transaction amounts per kind over entries in their stored order.
func Totals(entries []modelstorage.TransactionStorageEntry) (deposited, withdrawn decimal.Decimal) {
	deposited = decimal.Zero
	withdrawn = decimal.Zero
	for _, entry := range entries {
		switch Kind(entry.Kind) {
		case KindDeposit:
			deposited = deposited.Add(entry.Amount)
		case KindWithdrawal:
			withdrawn = withdrawn.Add(entry.Amount)
		}
	}
	return deposited, withdrawn
}
