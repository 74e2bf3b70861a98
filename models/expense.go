package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Expense struct {
	ID           int             `json:"id" db:"id"`
	UserID       int             `json:"user_id" db:"user_id"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	Date         time.Time       `json:"date" db:"date"`
	CategoryName string          `json:"category_name" db:"category_name"`
	Description  string          `json:"description,omitempty" db:"description"`
	AccountID    *int            `json:"account_id,omitempty" db:"account_id"` // Привязка к счету, необязательная
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
