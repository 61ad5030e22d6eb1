package inpmem

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/ShiraazMoollatjie/goluhn"
	"github.com/rychardsson/go-bank-api/internal/config"
	"github.com/rychardsson/go-bank-api/internal/logger"
	"github.com/rychardsson/go-bank-api/internal/models/modelstorage"
	"github.com/rychardsson/go-bank-api/internal/service/ledger/v1/ledger"
	storageErrors "github.com/rychardsson/go-bank-api/internal/storage/v1/errors"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

func newTestStorage(t *testing.T) *Storage {
	t.Helper()
	log := logger.InitLog()
	wg := &sync.WaitGroup{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(func() {
		cancel()
		wg.Wait()
	})
	st, err := InitStorage(ctx, &config.StorageConfig{BranchCode: "0001"}, log, wg)
	require.NoError(t, err)
	return st
}

func addTestUser(t *testing.T, st *Storage, userID, cpf string) {
	t.Helper()
	err := st.AddNewUser(context.Background(), modelstorage.UserStorageEntry{
		UserID:       userID,
		Name:         "Test User",
		CPF:          cpf,
		PasswordHash: "not-a-real-hash",
	})
	require.NoError(t, err)
}

func TestAddNewUserDuplicateCPF(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	err := st.AddNewUser(context.Background(), modelstorage.UserStorageEntry{UserID: "user-2", CPF: "12345678901"})
	var alreadyExists *storageErrors.AlreadyExistsError
	require.ErrorAs(t, err, &alreadyExists)

	user, err := st.GetUserByCPF(context.Background(), "12345678901")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.UserID)
}

func TestGetUserByCPFNotFound(t *testing.T) {
	st := newTestStorage(t)
	_, err := st.GetUserByCPF(context.Background(), "00000000000")
	var notFound *storageErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAddNewAccountOncePerUser(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	addTestUser(t, st, "user-2", "12345678902")

	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)
	assert.True(t, account.Balance.IsZero())
	assert.Equal(t, "checking", account.AccountType)

	_, err = st.AddNewAccount(context.Background(), "user-1", "savings")
	var accountAlreadyExists *storageErrors.AccountAlreadyExistsError
	require.ErrorAs(t, err, &accountAlreadyExists)

	// another user is not affected by the first user's account
	other, err := st.AddNewAccount(context.Background(), "user-2", "savings")
	require.NoError(t, err)
	assert.NotEqual(t, account.AccountID, other.AccountID)
	assert.NotEqual(t, account.AccountNumber, other.AccountNumber)
}

func TestAddNewAccountUnknownUser(t *testing.T) {
	st := newTestStorage(t)
	_, err := st.AddNewAccount(context.Background(), "ghost", "checking")
	var notFound *storageErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestAccountNumberFormat(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)
	parts := strings.Split(account.AccountNumber, "-")
	require.Len(t, parts, 3)
	assert.Equal(t, "0001", parts[0])
	assert.Len(t, parts[1], 6)
	assert.Len(t, parts[2], 1)
	assert.NoError(t, goluhn.Validate(strings.Join(parts, "")))
}

func TestAddNewTransaction(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)

	deposit, err := st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindDeposit, decimal.RequireFromString("1000.00"), "Depósito inicial")
	require.NoError(t, err)
	assert.True(t, deposit.BalanceBefore.IsZero())
	assert.True(t, deposit.BalanceAfter.Equal(decimal.RequireFromString("1000.00")))

	withdrawal, err := st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindWithdrawal, decimal.RequireFromString("200.00"), "Saque para compras")
	require.NoError(t, err)
	assert.True(t, withdrawal.BalanceBefore.Equal(decimal.RequireFromString("1000.00")))
	assert.True(t, withdrawal.BalanceAfter.Equal(decimal.RequireFromString("800.00")))

	current, err := st.GetAccountByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.True(t, current.Balance.Equal(decimal.RequireFromString("800.00")))
}

func TestAddNewTransactionFailureLeavesStateUnchanged(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)
	_, err = st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindDeposit, decimal.RequireFromString("800.00"), "")
	require.NoError(t, err)

	_, err = st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindWithdrawal, decimal.RequireFromString("10000.00"), "")
	require.Error(t, err)
	_, err = st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindDeposit, decimal.RequireFromString("-100.00"), "")
	require.Error(t, err)

	entry, transactions, err := st.GetSnapshot(context.Background(), account.AccountID)
	require.NoError(t, err)
	assert.True(t, entry.Balance.Equal(decimal.RequireFromString("800.00")))
	assert.Len(t, transactions, 1, "rejected operations must not be recorded")
}

func TestAddNewTransactionUnknownAccount(t *testing.T) {
	st := newTestStorage(t)
	_, err := st.AddNewTransaction(context.Background(), "ghost", ledger.KindDeposit, decimal.RequireFromString("1.00"), "")
	var notFound *storageErrors.NotFoundError
	require.ErrorAs(t, err, &notFound)
}

func TestGetSnapshotIsStable(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)
	_, err = st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindDeposit, decimal.RequireFromString("10.00"), "")
	require.NoError(t, err)

	entryOne, transactionsOne, err := st.GetSnapshot(context.Background(), account.AccountID)
	require.NoError(t, err)
	entryTwo, transactionsTwo, err := st.GetSnapshot(context.Background(), account.AccountID)
	require.NoError(t, err)
	assert.Equal(t, entryOne, entryTwo)
	assert.Equal(t, transactionsOne, transactionsTwo)

	// mutating the returned slice must not leak into the store
	transactionsOne[0].Description = "mutated"
	_, transactionsThree, err := st.GetSnapshot(context.Background(), account.AccountID)
	require.NoError(t, err)
	assert.Empty(t, transactionsThree[0].Description)
}

// concurrent deposits and withdrawals against one account must serialize,
// sum of deposits minus sum of withdrawals equals the final balance
func TestConcurrentTransactionsSerialize(t *testing.T) {
	st := newTestStorage(t)
	addTestUser(t, st, "user-1", "12345678901")
	account, err := st.AddNewAccount(context.Background(), "user-1", "checking")
	require.NoError(t, err)
	_, err = st.AddNewTransaction(context.Background(), account.AccountID, ledger.KindDeposit, decimal.RequireFromString("1000.00"), "")
	require.NoError(t, err)

	g := new(errgroup.Group)
	for i := 0; i < 8; i++ {
		kind := ledger.KindDeposit
		amount := decimal.RequireFromString("3.00")
		if i%2 == 1 {
			kind = ledger.KindWithdrawal
			amount = decimal.RequireFromString("1.00")
		}
		g.Go(func() error {
			for j := 0; j < 25; j++ {
				if _, err := st.AddNewTransaction(context.Background(), account.AccountID, kind, amount, ""); err != nil {
					return err
				}
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())

	entry, transactions, err := st.GetSnapshot(context.Background(), account.AccountID)
	require.NoError(t, err)
	require.Len(t, transactions, 201)
	deposited, withdrawn := ledger.Totals(transactions)
	assert.True(t, deposited.Sub(withdrawn).Equal(entry.Balance))
	// 1000 + 4*25*3 - 4*25*1
	assert.True(t, entry.Balance.Equal(decimal.RequireFromString("1200.00")))
	for _, transaction := range transactions[1:] {
		switch ledger.Kind(transaction.Kind) {
		case ledger.KindDeposit:
			assert.True(t, transaction.BalanceAfter.Equal(transaction.BalanceBefore.Add(transaction.Amount)))
		case ledger.KindWithdrawal:
			assert.True(t, transaction.BalanceAfter.Equal(transaction.BalanceBefore.Sub(transaction.Amount)))
		}
	}
}

func TestContextCancellation(t *testing.T) {
	st := newTestStorage(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := st.AddNewUser(ctx, modelstorage.UserStorageEntry{UserID: "user-1", CPF: "12345678901"})
	var timeoutExceeded *storageErrors.ContextTimeoutExceededError
	require.ErrorAs(t, err, &timeoutExceeded)
}
