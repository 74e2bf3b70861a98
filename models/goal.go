package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Goal struct {
	ID            int             `json:"id" db:"id"`
	UserID        int             `json:"user_id" db:"user_id"`
	Name          string          `json:"name" db:"name"`
	TargetAmount  decimal.Decimal `json:"target_amount" db:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount" db:"current_amount"`
	TargetDate    *time.Time      `json:"target_date,omitempty" db:"target_date"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     *time.Time      `json:"updated_at,omitempty" db:"updated_at"`
}

func (g *Goal) RemainingAmount() decimal.Decimal {
	return g.TargetAmount.Sub(g.CurrentAmount)
}

// Достигнута ли цель по накопленной сумме.
func (g *Goal) Achieved() bool {
	return g.CurrentAmount.GreaterThanOrEqual(g.TargetAmount)
}
