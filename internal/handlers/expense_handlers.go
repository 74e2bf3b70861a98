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

func CreateExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var expense models.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if expense.UserID == 0 || !expense.Amount.IsPositive() || expense.CategoryName == "" || expense.Date.IsZero() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}

		if err := database.CreateExpense(pool, &expense); err != nil {
			http.Error(w, "Не удалось создать расход", http.StatusInternalServerError)
			log.Printf("Ошибка создания расхода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(expense)
	}
}

func GetExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		expenses, err := database.GetExpensesByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить расходы", http.StatusInternalServerError)
			log.Printf("Ошибка получения расходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expenses)
	}
}

func UpdateExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID расхода", http.StatusBadRequest)
			return
		}

		var expense models.Expense
		if err := json.NewDecoder(r.Body).Decode(&expense); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		expense.ID = id

		if err := database.UpdateExpense(pool, &expense); err != nil {
			http.Error(w, "Не удалось обновить расход", http.StatusInternalServerError)
			log.Printf("Ошибка обновления расхода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(expense)
	}
}

func DeleteExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID расхода", http.StatusBadRequest)
			return
		}

		if err := database.DeleteExpense(pool, id); err != nil {
			http.Error(w, "Расход не найден", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteExpenses(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить расходы", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления расходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
