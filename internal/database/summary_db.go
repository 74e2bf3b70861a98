package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// GetGeneralSummary собирает сводку по финансам пользователя:
// суммарные доходы и расходы, баланс и разбивку расходов по категориям.
func GetGeneralSummary(pool *pgxpool.Pool, userID int) (map[string]interface{}, error) {
	var totalIncome, totalExpenses decimal.Decimal

	err := pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM income WHERE user_id = $1`, userID).Scan(&totalIncome)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении суммы доходов: %v", err)
	}
	err = pool.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(amount), 0) FROM expenses WHERE user_id = $1`, userID).Scan(&totalExpenses)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении суммы расходов: %v", err)
	}

	byCategory, err := getExpensesByCategory(pool, userID)
	if err != nil {
		return nil, err
	}
	monthly, err := getMonthlyTotals(pool, userID)
	if err != nil {
		return nil, err
	}

	counts := map[string]int{}
	for _, item := range []struct {
		key   string
		table string
	}{
		{"accounts", "accounts"},
		{"expenses", "expenses"},
		{"income", "income"},
		{"recurring_expenses", "recurring_expenses"},
		{"budgets", "budgets"},
		{"goals", "goals"},
	} {
		var n int
		q := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE user_id = $1`, item.table)
		if err := pool.QueryRow(context.Background(), q, userID).Scan(&n); err != nil {
			return nil, fmt.Errorf("ошибка при подсчете записей %s: %v", item.key, err)
		}
		counts[item.key] = n
	}

	return map[string]interface{}{
		"total_income":         totalIncome.StringFixed(2),
		"total_expenses":       totalExpenses.StringFixed(2),
		"balance":              totalIncome.Sub(totalExpenses).StringFixed(2),
		"expenses_by_category": byCategory,
		"monthly_totals":       monthly,
		"record_counts":        counts,
	}, nil
}

func getExpensesByCategory(pool *pgxpool.Pool, userID int) ([]map[string]interface{}, error) {
	query := `
		SELECT category_name, SUM(amount) AS total
		FROM expenses
		WHERE user_id = $1
		GROUP BY category_name
		ORDER BY total DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении расходов по категориям: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var category string
		var total decimal.Decimal
		if err := rows.Scan(&category, &total); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"category_name": category,
			"total":         total.StringFixed(2),
		})
	}
	return result, rows.Err()
}

func getMonthlyTotals(pool *pgxpool.Pool, userID int) ([]map[string]interface{}, error) {
	query := `
		SELECT month, SUM(income) AS income, SUM(expenses) AS expenses
		FROM (
			SELECT TO_CHAR(date, 'YYYY-MM') AS month, amount AS income, 0::numeric AS expenses
			FROM income
			WHERE user_id = $1
			UNION ALL
			SELECT TO_CHAR(date, 'YYYY-MM') AS month, 0::numeric AS income, amount AS expenses
			FROM expenses
			WHERE user_id = $1
		) AS combined
		GROUP BY month
		ORDER BY month`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении итогов по месяцам: %v", err)
	}
	defer rows.Close()

	var result []map[string]interface{}
	for rows.Next() {
		var month string
		var income, expenses decimal.Decimal
		if err := rows.Scan(&month, &income, &expenses); err != nil {
			return nil, err
		}
		result = append(result, map[string]interface{}{
			"month":    month,
			"income":   income.StringFixed(2),
			"expenses": expenses.StringFixed(2),
		})
	}
	return result, rows.Err()
}
