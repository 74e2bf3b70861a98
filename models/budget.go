package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Budget struct {
	ID           int             `json:"id" db:"id"`
	UserID       int             `json:"user_id" db:"user_id"`
	CategoryName string          `json:"category_name" db:"category_name"`
	AmountLimit  decimal.Decimal `json:"amount_limit" db:"amount_limit"`
	Period       string          `json:"period" db:"period"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty" db:"end_date"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
