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

func CreateIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var income models.Income
		if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if income.UserID == 0 || !income.Amount.IsPositive() || income.Source == "" || income.Date.IsZero() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}

		if err := database.CreateIncome(pool, &income); err != nil {
			http.Error(w, "Не удалось создать доход", http.StatusInternalServerError)
			log.Printf("Ошибка создания дохода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(income)
	}
}

func GetIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		income, err := database.GetIncomeByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить доходы", http.StatusInternalServerError)
			log.Printf("Ошибка получения доходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(income)
	}
}

func UpdateIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID дохода", http.StatusBadRequest)
			return
		}

		var income models.Income
		if err := json.NewDecoder(r.Body).Decode(&income); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		income.ID = id

		if err := database.UpdateIncome(pool, &income); err != nil {
			http.Error(w, "Не удалось обновить доход", http.StatusInternalServerError)
			log.Printf("Ошибка обновления дохода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(income)
	}
}

func DeleteIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID дохода", http.StatusBadRequest)
			return
		}

		if err := database.DeleteIncome(pool, id); err != nil {
			http.Error(w, "Доход не найден", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteIncomeHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteIncome(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить доходы", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления доходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
