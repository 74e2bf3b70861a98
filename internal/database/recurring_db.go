package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/models"
)

// CreateRecurringExpense добавляет новое правило регулярного расхода
func CreateRecurringExpense(pool *pgxpool.Pool, rec *models.RecurringExpense) error {
	query := `
		INSERT INTO recurring_expenses (user_id, name, amount, category_name, frequency, start_date, end_date, description, account_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		rec.UserID,
		rec.Name,
		rec.Amount,
		rec.CategoryName,
		rec.Frequency,
		rec.StartDate,
		rec.EndDate,
		rec.Description,
		rec.AccountID).Scan(&rec.ID, &rec.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении регулярного расхода: %v", err)
	}
	return nil
}

// GetRecurringExpensesByUserID извлекает все правила пользователя
func GetRecurringExpensesByUserID(pool *pgxpool.Pool, userID int) ([]models.RecurringExpense, error) {
	query := `
		SELECT id, user_id, name, amount, category_name, frequency, start_date, end_date, COALESCE(description, ''), account_id, created_at, updated_at
		FROM recurring_expenses
		WHERE user_id = $1
		ORDER BY start_date DESC, id DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении регулярных расходов: %v", err)
	}
	defer rows.Close()

	var recs []models.RecurringExpense
	for rows.Next() {
		var rec models.RecurringExpense
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Amount, &rec.CategoryName, &rec.Frequency,
			&rec.StartDate, &rec.EndDate, &rec.Description, &rec.AccountID, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, rows.Err()
}

// UpdateRecurringExpense обновляет правило
func UpdateRecurringExpense(pool *pgxpool.Pool, rec *models.RecurringExpense) error {
	query := `
		UPDATE recurring_expenses
		SET name = $1, amount = $2, category_name = $3, frequency = $4, start_date = $5, end_date = $6, description = $7, account_id = $8, updated_at = NOW()
		WHERE id = $9`
	result, err := pool.Exec(context.Background(), query,
		rec.Name, rec.Amount, rec.CategoryName, rec.Frequency,
		rec.StartDate, rec.EndDate, rec.Description, rec.AccountID, rec.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления регулярного расхода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("регулярный расход с ID %d не найден", rec.ID)
	}
	return nil
}

// DeleteRecurringExpense удаляет правило по ID
func DeleteRecurringExpense(pool *pgxpool.Pool, recID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM recurring_expenses WHERE id = $1`, recID)
	if err != nil {
		return fmt.Errorf("ошибка удаления регулярного расхода: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("регулярный расход с ID %d не найден", recID)
	}
	return nil
}

// BulkDeleteRecurringExpenses удаляет набор правил пользователя
func BulkDeleteRecurringExpenses(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM recurring_expenses WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления регулярных расходов: %v", err)
	}
	return int(result.RowsAffected()), nil
}

// PostDueRecurringExpenses создает расходы по правилам, у которых сегодня
// наступил очередной срок. Запускается планировщиком раз в сутки.
func PostDueRecurringExpenses(pool *pgxpool.Pool) error {
	query := `
		SELECT id, user_id, name, amount, category_name, frequency, start_date, end_date, COALESCE(description, ''), account_id
		FROM recurring_expenses
		WHERE start_date <= CURRENT_DATE AND (end_date IS NULL OR end_date >= CURRENT_DATE)`
	rows, err := pool.Query(context.Background(), query)
	if err != nil {
		return fmt.Errorf("ошибка выборки правил: %v", err)
	}
	defer rows.Close()

	var due []models.RecurringExpense
	today := time.Now().Truncate(24 * time.Hour)
	for rows.Next() {
		var rec models.RecurringExpense
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.Name, &rec.Amount, &rec.CategoryName, &rec.Frequency,
			&rec.StartDate, &rec.EndDate, &rec.Description, &rec.AccountID); err != nil {
			return err
		}
		if dueToday(rec, today) {
			due = append(due, rec)
		}
	}
	if err := rows.Err(); err != nil {
		return err
	}

	for _, rec := range due {
		expense := &models.Expense{
			UserID:       rec.UserID,
			Amount:       rec.Amount,
			Date:         today,
			CategoryName: rec.CategoryName,
			Description:  rec.Name,
			AccountID:    rec.AccountID,
		}
		if err := CreateExpense(pool, expense); err != nil {
			log.Printf("не удалось провести регулярный расход %d: %v", rec.ID, err)
			continue
		}
	}
	if len(due) > 0 {
		log.Printf("проведено регулярных расходов: %d", len(due))
	}
	return nil
}

// dueToday проверяет, выпадает ли очередное повторение правила на сегодня.
func dueToday(rec models.RecurringExpense, today time.Time) bool {
	start := rec.StartDate
	switch rec.Frequency {
	case models.FrequencyDaily:
		return true
	case models.FrequencyWeekly:
		return start.Weekday() == today.Weekday()
	case models.FrequencyMonthly:
		return start.Day() == today.Day()
	case models.FrequencyQuarterly:
		months := (today.Year()-start.Year())*12 + int(today.Month()-start.Month())
		return start.Day() == today.Day() && months%3 == 0
	case models.FrequencyYearly:
		return start.Day() == today.Day() && start.Month() == today.Month()
	case models.FrequencyOneTime:
		return start.Year() == today.Year() && start.YearDay() == today.YearDay()
	}
	return false
}
