// Package modeldto provides types for API request and response bodies.

package modeldto

import "github.com/shopspring/decimal"

type (
	NewUser struct {
		Name     string `json:"name"`
		CPF      string `json:"cpf"`
		Password string `json:"password"`
	}
	User struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		CPF  string `json:"cpf"`
	}
	Credentials struct {
		Login    string `json:"username"`
		Password string `json:"password"`
	}
	Token struct {
		AccessToken string `json:"access_token"`
		TokenType   string `json:"token_type"`
	}
	NewAccount struct {
		AccountType string `json:"account_type"`
	}
	Account struct {
		ID            string          `json:"id"`
		AccountNumber string          `json:"account_number"`
		AccountType   string          `json:"account_type"`
		Balance       decimal.Decimal `json:"balance"`
		CreatedAt     string          `json:"created_at"`
	}
	NewTransaction struct {
		Amount      decimal.Decimal `json:"amount"`
		Description string          `json:"description,omitempty"`
	}
	Transaction struct {
		ID            string          `json:"id"`
		Kind          string          `json:"kind"`
		Amount        decimal.Decimal `json:"amount"`
		Description   string          `json:"description,omitempty"`
		BalanceBefore decimal.Decimal `json:"balance_before"`
		BalanceAfter  decimal.Decimal `json:"balance_after"`
		ProcessedAt   string          `json:"processed_at"`
	}
	Statement struct {
		Account          Account         `json:"account"`
		Transactions     []Transaction   `json:"transactions"`
		TotalDeposited   decimal.Decimal `json:"total_deposited"`
		TotalWithdrawn   decimal.Decimal `json:"total_withdrawn"`
		TransactionCount int             `json:"transaction_count"`
	}
)
