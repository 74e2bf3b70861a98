package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Допустимые значения периодичности для правил и бюджетов.
const (
	FrequencyDaily     = "daily"
	FrequencyWeekly    = "weekly"
	FrequencyMonthly   = "monthly"
	FrequencyQuarterly = "quarterly"
	FrequencyYearly    = "yearly"
	FrequencyOneTime   = "one_time"
)

func Frequencies() []string {
	return []string{
		FrequencyDaily, FrequencyWeekly, FrequencyMonthly,
		FrequencyQuarterly, FrequencyYearly, FrequencyOneTime,
	}
}

type RecurringExpense struct {
	ID           int             `json:"id" db:"id"`
	UserID       int             `json:"user_id" db:"user_id"`
	Name         string          `json:"name" db:"name"`
	Amount       decimal.Decimal `json:"amount" db:"amount"`
	CategoryName string          `json:"category_name" db:"category_name"`
	Frequency    string          `json:"frequency" db:"frequency"`
	StartDate    time.Time       `json:"start_date" db:"start_date"`
	EndDate      *time.Time      `json:"end_date,omitempty" db:"end_date"`
	Description  string          `json:"description,omitempty" db:"description"`
	AccountID    *int            `json:"account_id,omitempty" db:"account_id"`
	CreatedAt    time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt    *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}
