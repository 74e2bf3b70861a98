package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/models"
)

func CreateAccountHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var account models.Account
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if account.UserID == 0 || account.Name == "" || account.AccountType == "" || account.BalanceDate.IsZero() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}
		if account.Currency == "" {
			account.Currency = "USD"
		}

		if err := database.CreateAccount(pool, &account); err != nil {
			http.Error(w, "Не удалось создать счет", http.StatusInternalServerError)
			log.Printf("Ошибка создания счета: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(account)
	}
}

func GetAccountsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		accounts, err := database.GetAccountsByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить счета", http.StatusInternalServerError)
			log.Printf("Ошибка получения счетов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(accounts)
	}
}

func UpdateAccountHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID счета", http.StatusBadRequest)
			return
		}

		var account models.Account
		if err := json.NewDecoder(r.Body).Decode(&account); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		account.ID = id

		if err := database.UpdateAccount(pool, &account); err != nil {
			http.Error(w, "Не удалось обновить счет", http.StatusInternalServerError)
			log.Printf("Ошибка обновления счета: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(account)
	}
}

func DeleteAccountHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID счета", http.StatusBadRequest)
			return
		}

		if err := database.DeleteAccount(pool, id); err != nil {
			http.Error(w, "Счет не найден", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteAccountsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteAccounts(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить счета", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления счетов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
