package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/models"
)

// CreateExpense добавляет новый расход
func CreateExpense(pool *pgxpool.Pool, expense *models.Expense) error {
	query := `
		INSERT INTO expenses (user_id, amount, date, category_name, description, account_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		expense.UserID,
		expense.Amount,
		expense.Date,
		expense.CategoryName,
		expense.Description,
		expense.AccountID).Scan(&expense.ID, &expense.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении расхода: %v", err)
	}
	return nil
}

// GetExpensesByUserID извлекает все расходы пользователя, новые первыми
func GetExpensesByUserID(pool *pgxpool.Pool, userID int) ([]models.Expense, error) {
	query := `
		SELECT id, user_id, amount, date, category_name, COALESCE(description, ''), account_id, created_at, updated_at
		FROM expenses
		WHERE user_id = $1
		ORDER BY date DESC, id DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении расходов: %v", err)
	}
	defer rows.Close()

	var expenses []models.Expense
	for rows.Next() {
		var e models.Expense
		if err := rows.Scan(&e.ID, &e.UserID, &e.Amount, &e.Date, &e.CategoryName, &e.Description, &e.AccountID, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		expenses = append(expenses, e)
	}
	return expenses, rows.Err()
}

// UpdateExpense обновляет расход
func UpdateExpense(pool *pgxpool.Pool, expense *models.Expense) error {
	query := `
		UPDATE expenses
		SET amount = $1, date = $2, category_name = $3, description = $4, account_id = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := pool.Exec(context.Background(), query,
		expense.Amount,
		expense.Date,
		expense.CategoryName,
		expense.Description,
		expense.AccountID,
		expense.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления расхода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("расход с ID %d не найден", expense.ID)
	}
	return nil
}

// DeleteExpense удаляет расход по ID
func DeleteExpense(pool *pgxpool.Pool, expenseID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM expenses WHERE id = $1`, expenseID)
	if err != nil {
		return fmt.Errorf("ошибка удаления расхода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("расход с ID %d не найден", expenseID)
	}
	return nil
}

// BulkDeleteExpenses удаляет набор расходов пользователя одной транзакцией
func BulkDeleteExpenses(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM expenses WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления расходов: %v", err)
	}
	return int(result.RowsAffected()), nil
}

// GetTotalExpenses возвращает сумму всех расходов пользователя
func GetTotalExpenses(pool *pgxpool.Pool, userID int) (float64, error) {
	var total float64
	err := pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`, userID).Scan(&total)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, nil
		}
		return 0, fmt.Errorf("ошибка при подсчете расходов: %v", err)
	}
	return total, nil
}
