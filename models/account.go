package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Account struct {
	ID              int             `json:"id" db:"id"`
	UserID          int             `json:"user_id" db:"user_id"`
	Name            string          `json:"name" db:"name"`
	AccountType     string          `json:"account_type" db:"account_type"`
	StartingBalance decimal.Decimal `json:"starting_balance" db:"starting_balance"`
	BalanceDate     time.Time       `json:"balance_date" db:"balance_date"`
	Currency        string          `json:"currency" db:"currency"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt       *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
