package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/models"
)

// CreateIncome добавляет новое поступление
func CreateIncome(pool *pgxpool.Pool, income *models.Income) error {
	query := `
		INSERT INTO income (user_id, amount, date, source, description, account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		income.UserID,
		income.Amount,
		income.Date,
		income.Source,
		income.Description,
		income.AccountID).Scan(&income.ID, &income.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении дохода: %v", err)
	}
	return nil
}

// GetIncomeByUserID извлекает все доходы пользователя, новые первыми
func GetIncomeByUserID(pool *pgxpool.Pool, userID int) ([]models.Income, error) {
	query := `
		SELECT id, user_id, amount, date, source, COALESCE(description, ''), account_id, created_at, updated_at
		FROM income
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении доходов: %v", err)
	}
	defer rows.Close()

	var incomes []models.Income
	for rows.Next() {
		var in models.Income
		if err := rows.Scan(&in.ID, &in.UserID, &in.Amount, &in.Date, &in.Source, &in.Description, &in.AccountID, &in.CreatedAt, &in.UpdatedAt); err != nil {
			return nil, err
		}
		incomes = append(incomes, in)
	}
	return incomes, rows.Err()
}

// UpdateIncome обновляет поступление
func UpdateIncome(pool *pgxpool.Pool, income *models.Income) error {
	query := `
		UPDATE income
		SET amount = $1, date = $2, source = $3, description = $4, account_id = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := pool.Exec(context.Background(), query,
		income.Amount,
		income.Date,
		income.Source,
		income.Description,
		income.AccountID,
		income.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления дохода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("доход с ID %d не найден", income.ID)
	}
	return nil
}

// DeleteIncome удаляет поступление по ID
func DeleteIncome(pool *pgxpool.Pool, incomeID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM income WHERE id = $1`, incomeID)
	if err != nil {
		return fmt.Errorf("ошибка удаления дохода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("доход с ID %d не найден", incomeID)
	}
	return nil
}

// BulkDeleteIncome удаляет набор доходов пользователя
func BulkDeleteIncome(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM income WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления доходов: %v", err)
	}
	return int(result.RowsAffected()), nil
}
