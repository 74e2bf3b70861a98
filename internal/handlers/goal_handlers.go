package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/models"
)

func CreateGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var goal models.Goal
		if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if goal.UserID == 0 || goal.Name == "" || !goal.TargetAmount.IsPositive() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}

		if err := database.CreateGoal(pool, &goal); err != nil {
			http.Error(w, "Не удалось создать цель", http.StatusInternalServerError)
			log.Printf("Ошибка создания цели: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(goal)
	}
}

func GetGoalsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		goals, err := database.GetGoalsByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить цели", http.StatusInternalServerError)
			log.Printf("Ошибка получения целей: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goals)
	}
}

func UpdateGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		var goal models.Goal
		if err := json.NewDecoder(r.Body).Decode(&goal); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		goal.ID = id

		if err := database.UpdateGoal(pool, &goal); err != nil {
			http.Error(w, "Не удалось обновить цель", http.StatusInternalServerError)
			log.Printf("Ошибка обновления цели: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(goal)
	}
}

// AddGoalProgressHandler пополняет накопления по цели
func AddGoalProgressHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		var req struct {
			Amount decimal.Decimal `json:"amount"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || !req.Amount.IsPositive() {
			http.Error(w, "Сумма пополнения должна быть положительной", http.StatusBadRequest)
			return
		}

		if err := database.AddProgressToGoal(pool, id, req.Amount); err != nil {
			http.Error(w, "Не удалось пополнить цель", http.StatusInternalServerError)
			log.Printf("Ошибка пополнения цели: %v", err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func DeleteGoalHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID цели", http.StatusBadRequest)
			return
		}

		if err := database.DeleteGoal(pool, id); err != nil {
			http.Error(w, "Цель не найдена", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteGoalsHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteGoals(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить цели", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления целей: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
