package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/models"
)

// CreateBudget добавляет новый бюджет
func CreateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		INSERT INTO budgets (user_id, category_name, amount_limit, period, start_date, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		budget.UserID,
		budget.CategoryName,
		budget.AmountLimit,
		budget.Period,
		budget.StartDate,
		budget.EndDate).Scan(&budget.ID, &budget.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении бюджета: %v", err)
	}
	return nil
}

// GetBudgetsByUserID извлекает все бюджеты пользователя
func GetBudgetsByUserID(pool *pgxpool.Pool, userID int) ([]models.Budget, error) {
	query := `
		SELECT id, user_id, category_name, amount_limit, period, start_date, end_date, created_at, updated_at
		FROM budgets
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении бюджетов: %v", err)
	}
	defer rows.Close()

	var budgets []models.Budget
	for rows.Next() {
		var b models.Budget
		if err := rows.Scan(&b.ID, &b.UserID, &b.CategoryName, &b.AmountLimit, &b.Period,
			&b.StartDate, &b.EndDate, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		budgets = append(budgets, b)
	}
	return budgets, rows.Err()
}

// UpdateBudget обновляет бюджет
func UpdateBudget(pool *pgxpool.Pool, budget *models.Budget) error {
	query := `
		UPDATE budgets
		SET category_name = $1, amount_limit = $2, period = $3, start_date = $4, end_date = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := pool.Exec(context.Background(), query,
		budget.CategoryName,
		budget.AmountLimit,
		budget.Period,
		budget.StartDate,
		budget.EndDate,
		budget.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден", budget.ID)
	}
	return nil
}

// DeleteBudget удаляет бюджет по ID
func DeleteBudget(pool *pgxpool.Pool, budgetID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM budgets WHERE id = $1`, budgetID)
	if err != nil {
		return fmt.Errorf("ошибка удаления бюджета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("бюджет с ID %d не найден", budgetID)
	}
	return nil
}

// BulkDeleteBudgets удаляет набор бюджетов пользователя
func BulkDeleteBudgets(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM budgets WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления бюджетов: %v", err)
	}
	return int(result.RowsAffected()), nil
}
