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

func CreateBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var budget models.Budget
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if budget.UserID == 0 || budget.CategoryName == "" || !budget.AmountLimit.IsPositive() || budget.StartDate.IsZero() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}
		if !validFrequency(budget.Period) {
			http.Error(w, "Недопустимый период бюджета", http.StatusBadRequest)
			return
		}

		if err := database.CreateBudget(pool, &budget); err != nil {
			http.Error(w, "Не удалось создать бюджет", http.StatusInternalServerError)
			log.Printf("Ошибка создания бюджета: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(budget)
	}
}

func GetBudgetsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		budgets, err := database.GetBudgetsByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить бюджеты", http.StatusInternalServerError)
			log.Printf("Ошибка получения бюджетов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budgets)
	}
}

func UpdateBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID бюджета", http.StatusBadRequest)
			return
		}

		var budget models.Budget
		if err := json.NewDecoder(r.Body).Decode(&budget); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		budget.ID = id

		if budget.Period != "" && !validFrequency(budget.Period) {
			http.Error(w, "Недопустимый период бюджета", http.StatusBadRequest)
			return
		}

		if err := database.UpdateBudget(pool, &budget); err != nil {
			http.Error(w, "Не удалось обновить бюджет", http.StatusInternalServerError)
			log.Printf("Ошибка обновления бюджета: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(budget)
	}
}

func DeleteBudgetHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID бюджета", http.StatusBadRequest)
			return
		}

		if err := database.DeleteBudget(pool, id); err != nil {
			http.Error(w, "Бюджет не найден", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteBudgetsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteBudgets(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить бюджеты", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления бюджетов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
