package database

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"

	"github.com/seta-app/seta-api/models"
)

// RegisterUser создает нового пользователя с хешированным паролем
// и токеном подтверждения почты
func RegisterUser(pool *pgxpool.Pool, user *models.User) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(user.Password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}
	user.PasswordHash = string(hash)
	user.Password = ""
	user.VerificationToken = uuid.NewString()

	query := `
		INSERT INTO users (username, email, password_hash, first_name, last_name, contact_number, is_active, email_verified, verification_token)
		VALUES ($1, $2, $3, $4, $5, $6, TRUE, FALSE, $7)
		RETURNING id`
	err = pool.QueryRow(context.Background(), query,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.FirstName,
		user.LastName,
		user.ContactNumber,
		user.VerificationToken).Scan(&user.ID)
	if err != nil {
		return fmt.Errorf("ошибка при добавлении пользователя: %v", err)
	}
	return nil
}

// AuthenticateUser проверяет пару логин/пароль и возвращает пользователя
func AuthenticateUser(pool *pgxpool.Pool, email, password string) (*models.User, error) {
	query := `
		SELECT id, username, email, password_hash, first_name, last_name, contact_number, is_active, email_verified
		FROM users
		WHERE email = $1`
	var user models.User
	err := pool.QueryRow(context.Background(), query, email).Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.FirstName, &user.LastName, &user.ContactNumber,
		&user.IsActive, &user.EmailVerified)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("неверный email или пароль")
		}
		return nil, fmt.Errorf("ошибка получения пользователя: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, errors.New("неверный email или пароль")
	}
	if !user.IsActive {
		return nil, errors.New("учетная запись отключена")
	}
	_, _ = pool.Exec(context.Background(), `UPDATE users SET last_login = NOW() WHERE id = $1`, user.ID)
	user.PasswordHash = ""
	return &user, nil
}

// GetUserByID возвращает пользователя по идентификатору
func GetUserByID(pool *pgxpool.Pool, id int) (*models.User, error) {
	query := `
		SELECT id, username, email, first_name, last_name, contact_number, is_active, email_verified, last_login
		FROM users
		WHERE id = $1`
	var user models.User
	err := pool.QueryRow(context.Background(), query, id).Scan(
		&user.ID, &user.Username, &user.Email,
		&user.FirstName, &user.LastName, &user.ContactNumber,
		&user.IsActive, &user.EmailVerified, &user.LastLogin)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, errors.New("пользователь не найден")
		}
		return nil, fmt.Errorf("ошибка получения пользователя по id: %v", err)
	}
	return &user, nil
}

// UpdateUser обновляет профиль пользователя
func UpdateUser(pool *pgxpool.Pool, user *models.User) error {
	query := `
		UPDATE users
		SET username = $1, email = $2, first_name = $3, last_name = $4, contact_number = $5
		WHERE id = $6`
	result, err := pool.Exec(context.Background(), query,
		user.Username, user.Email, user.FirstName, user.LastName, user.ContactNumber, user.ID)
	if err != nil {
		return fmt.Errorf("ошибка обновления пользователя: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с ID %d не найден", user.ID)
	}
	return nil
}

// ChangePassword меняет пароль пользователя после проверки старого
func ChangePassword(pool *pgxpool.Pool, userID int, oldPassword, newPassword string) error {
	var hash string
	err := pool.QueryRow(context.Background(),
		`SELECT password_hash FROM users WHERE id = $1`, userID).Scan(&hash)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return errors.New("пользователь не найден")
		}
		return fmt.Errorf("ошибка получения пользователя: %v", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(oldPassword)); err != nil {
		return errors.New("старый пароль указан неверно")
	}
	newHash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("ошибка хеширования пароля: %v", err)
	}
	_, err = pool.Exec(context.Background(),
		`UPDATE users SET password_hash = $1 WHERE id = $2`, string(newHash), userID)
	if err != nil {
		return fmt.Errorf("ошибка сохранения нового пароля: %v", err)
	}
	return nil
}

// VerifyEmail помечает почту подтвержденной по токену из письма
func VerifyEmail(pool *pgxpool.Pool, token string) error {
	result, err := pool.Exec(context.Background(),
		`UPDATE users SET email_verified = TRUE, verification_token = '' WHERE verification_token = $1`, token)
	if err != nil {
		return fmt.Errorf("ошибка подтверждения почты: %v", err)
	}
	if result.RowsAffected() == 0 {
		return errors.New("токен подтверждения не найден")
	}
	return nil
}

// DeleteUser удаляет пользователя вместе со всеми его данными
func DeleteUser(pool *pgxpool.Pool, id int) error {
	result, err := pool.Exec(context.Background(), `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("ошибка удаления пользователя: %v", err)
	}
	if result.RowsAffected() == 0 {
		return fmt.Errorf("пользователь с ID %d не найден", id)
	}
	return nil
}
