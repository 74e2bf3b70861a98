package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/models"
)

// CreateGoal добавляет новую цель накопления
func CreateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		INSERT INTO goals (user_id, name, target_amount, current_amount, target_date)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		goal.UserID,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate).Scan(&goal.ID, &goal.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении цели: %v", err)
	}
	return nil
}

// GetGoalsByUserID извлекает все цели пользователя
func GetGoalsByUserID(pool *pgxpool.Pool, userID int) ([]models.Goal, error) {
	query := `
		SELECT id, user_id, name, target_amount, current_amount, target_date, created_at, updated_at
		FROM goals
		WHERE user_id = $1
		ORDER BY target_date DESC NULLS LAST, id DESC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении целей: %v", err)
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.UserID, &g.Name, &g.TargetAmount, &g.CurrentAmount,
			&g.TargetDate, &g.CreatedAt, &g.UpdatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// UpdateGoal обновляет информацию о цели
func UpdateGoal(pool *pgxpool.Pool, goal *models.Goal) error {
	query := `
		UPDATE goals
		SET name = $1, target_amount = $2, current_amount = $3, target_date = $4, updated_at = NOW()
		WHERE id = $5`
	result, err := pool.Exec(context.Background(), query,
		goal.Name,
		goal.TargetAmount,
		goal.CurrentAmount,
		goal.TargetDate,
		goal.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена", goal.ID)
	}
	return nil
}

// DeleteGoal удаляет цель по ID
func DeleteGoal(pool *pgxpool.Pool, goalID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM goals WHERE id = $1`, goalID)
	if err != nil {
		return fmt.Errorf("ошибка удаления цели: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("цель с ID %d не найдена", goalID)
	}
	return nil
}

// BulkDeleteGoals удаляет набор целей пользователя
func BulkDeleteGoals(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM goals WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления целей: %v", err)
	}
	return int(result.RowsAffected()), nil
}

// AddProgressToGoal увеличивает накопленную сумму цели
func AddProgressToGoal(pool *pgxpool.Pool, goalID int, progress decimal.Decimal) error {
	query := `
		UPDATE goals
		SET current_amount = current_amount + $1, updated_at = NOW()
		WHERE id = $2
		RETURNING current_amount, target_amount`
	var current, target decimal.Decimal
	err := pool.QueryRow(context.Background(), query, progress, goalID).Scan(&current, &target)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении прогресса к цели: %v", err)
	}
	return nil
}
