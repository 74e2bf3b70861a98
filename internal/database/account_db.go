package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/models"
)

// CreateAccount создает новый счет пользователя
func CreateAccount(pool *pgxpool.Pool, account *models.Account) error {
	query := `
		INSERT INTO accounts (user_id, name, account_type, starting_balance, balance_date, currency)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at`
	err := pool.QueryRow(context.Background(), query,
		account.UserID,
		account.Name,
		account.AccountType,
		account.StartingBalance,
		account.BalanceDate,
		account.Currency).Scan(&account.ID, &account.CreatedAt)
	if err != nil {
		return fmt.Errorf("ошибка при создании счета: %v", err)
	}
	return nil
}

// GetAccountsByUserID извлекает все счета пользователя
func GetAccountsByUserID(pool *pgxpool.Pool, userID int) ([]models.Account, error) {
	query := `
		SELECT id, user_id, name, account_type, starting_balance, balance_date, currency, created_at, updated_at
		FROM accounts
		WHERE user_id = $1
		ORDER BY name ASC`
	rows, err := pool.Query(context.Background(), query, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка при получении счетов: %v", err)
	}
	defer rows.Close()

	var accounts []models.Account
	for rows.Next() {
		var a models.Account
		if err := rows.Scan(&a.ID, &a.UserID, &a.Name, &a.AccountType, &a.StartingBalance,
			&a.BalanceDate, &a.Currency, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		accounts = append(accounts, a)
	}
	return accounts, rows.Err()
}

// UpdateAccount обновляет данные счета
func UpdateAccount(pool *pgxpool.Pool, account *models.Account) error {
	query := `
		UPDATE accounts
		SET name = $1, account_type = $2, starting_balance = $3, balance_date = $4, currency = $5, updated_at = NOW()
		WHERE id = $6`
	result, err := pool.Exec(context.Background(), query,
		account.Name,
		account.AccountType,
		account.StartingBalance,
		account.BalanceDate,
		account.Currency,
		account.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления счета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("счет с ID %d не найден", account.ID)
	}
	return nil
}

// DeleteAccount удаляет счет по ID
func DeleteAccount(pool *pgxpool.Pool, accountID int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM accounts WHERE id = $1`, accountID)
	if err != nil {
		return fmt.Errorf("ошибка удаления счета: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("счет с ID %d не найден", accountID)
	}
	return nil
}

// BulkDeleteAccounts удаляет набор счетов пользователя
func BulkDeleteAccounts(pool *pgxpool.Pool, userID int, ids []int) (int, error) {
	result, err := pool.Exec(context.Background(),
		`DELETE FROM accounts WHERE user_id = $1 AND id = ANY($2)`, userID, ids)
	if err != nil {
		return 0, fmt.Errorf("ошибка массового удаления счетов: %v", err)
	}
	return int(result.RowsAffected()), nil
}
