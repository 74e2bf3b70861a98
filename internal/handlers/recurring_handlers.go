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

func validFrequency(freq string) bool {
	for _, f := range models.Frequencies() {
		if f == freq {
			return true
		}
	}
	return false
}

func CreateRecurringExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var rec models.RecurringExpense
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			log.Printf("Ошибка декодирования JSON: %v", err)
			return
		}

		if rec.UserID == 0 || rec.Name == "" || !rec.Amount.IsPositive() || rec.CategoryName == "" || rec.StartDate.IsZero() {
			http.Error(w, "Все обязательные поля должны быть заполнены", http.StatusBadRequest)
			return
		}
		if !validFrequency(rec.Frequency) {
			http.Error(w, "Недопустимая периодичность", http.StatusBadRequest)
			return
		}

		if err := database.CreateRecurringExpense(pool, &rec); err != nil {
			http.Error(w, "Не удалось создать регулярный расход", http.StatusInternalServerError)
			log.Printf("Ошибка создания регулярного расхода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(rec)
	}
}

func GetRecurringExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		userID, err := strconv.Atoi(vars["user_id"])
		if err != nil {
			http.Error(w, "Некорректный ID пользователя", http.StatusBadRequest)
			return
		}

		recs, err := database.GetRecurringExpensesByUserID(pool, userID)
		if err != nil {
			http.Error(w, "Не удалось получить регулярные расходы", http.StatusInternalServerError)
			log.Printf("Ошибка получения регулярных расходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(recs)
	}
}

func UpdateRecurringExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID правила", http.StatusBadRequest)
			return
		}

		var rec models.RecurringExpense
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}
		rec.ID = id

		if rec.Frequency != "" && !validFrequency(rec.Frequency) {
			http.Error(w, "Недопустимая периодичность", http.StatusBadRequest)
			return
		}

		if err := database.UpdateRecurringExpense(pool, &rec); err != nil {
			http.Error(w, "Не удалось обновить регулярный расход", http.StatusInternalServerError)
			log.Printf("Ошибка обновления регулярного расхода: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(rec)
	}
}

func DeleteRecurringExpenseHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		vars := mux.Vars(r)
		id, err := strconv.Atoi(vars["id"])
		if err != nil {
			http.Error(w, "Некорректный ID правила", http.StatusBadRequest)
			return
		}

		if err := database.DeleteRecurringExpense(pool, id); err != nil {
			http.Error(w, "Правило не найдено", http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func BulkDeleteRecurringExpensesHandler(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			UserID int   `json:"user_id"`
			IDs    []int `json:"ids"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.UserID == 0 || len(req.IDs) == 0 {
			http.Error(w, "Некорректный формат ввода", http.StatusBadRequest)
			return
		}

		deleted, err := database.BulkDeleteRecurringExpenses(pool, req.UserID, req.IDs)
		if err != nil {
			http.Error(w, "Не удалось удалить регулярные расходы", http.StatusInternalServerError)
			log.Printf("Ошибка массового удаления регулярных расходов: %v", err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]int{"deleted": deleted})
	}
}
