package routes

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/seta-app/seta-api/internal/handlers"
)

// SetupRouter собирает CRUD-маршруты для всех видов записей
func SetupRouter(pool *pgxpool.Pool) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/api/users/register", handlers.RegisterUserHandler(pool)).Methods("POST")
	r.HandleFunc("/api/users/login", handlers.LoginHandler(pool)).Methods("POST")
	r.HandleFunc("/api/users/verify", handlers.VerifyEmailHandler(pool)).Methods("GET")
	r.HandleFunc("/api/users/{id}", handlers.GetUserHandler(pool)).Methods("GET")
	r.HandleFunc("/api/users/{id}", handlers.UpdateUserHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/users/{id}/password", handlers.ChangePasswordHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/users/{id}", handlers.DeleteUserHandler(pool)).Methods("DELETE")

	r.HandleFunc("/api/accounts", handlers.CreateAccountHandler(pool)).Methods("POST")
	r.HandleFunc("/api/accounts/user/{user_id}", handlers.GetAccountsHandler(pool)).Methods("GET")
	r.HandleFunc("/api/accounts/{id}", handlers.UpdateAccountHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/accounts/{id}", handlers.DeleteAccountHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/accounts/bulk/delete", handlers.BulkDeleteAccountsHandler(pool)).Methods("POST")

	r.HandleFunc("/api/expenses", handlers.CreateExpenseHandler(pool)).Methods("POST")
	r.HandleFunc("/api/expenses/user/{user_id}", handlers.GetExpensesHandler(pool)).Methods("GET")
	r.HandleFunc("/api/expenses/{id}", handlers.UpdateExpenseHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/expenses/{id}", handlers.DeleteExpenseHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/expenses/bulk/delete", handlers.BulkDeleteExpensesHandler(pool)).Methods("POST")

	r.HandleFunc("/api/income", handlers.CreateIncomeHandler(pool)).Methods("POST")
	r.HandleFunc("/api/income/user/{user_id}", handlers.GetIncomeHandler(pool)).Methods("GET")
	r.HandleFunc("/api/income/{id}", handlers.UpdateIncomeHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/income/{id}", handlers.DeleteIncomeHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/income/bulk/delete", handlers.BulkDeleteIncomeHandler(pool)).Methods("POST")

	r.HandleFunc("/api/recurring_expenses", handlers.CreateRecurringExpenseHandler(pool)).Methods("POST")
	r.HandleFunc("/api/recurring_expenses/user/{user_id}", handlers.GetRecurringExpensesHandler(pool)).Methods("GET")
	r.HandleFunc("/api/recurring_expenses/{id}", handlers.UpdateRecurringExpenseHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/recurring_expenses/{id}", handlers.DeleteRecurringExpenseHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/recurring_expenses/bulk/delete", handlers.BulkDeleteRecurringExpensesHandler(pool)).Methods("POST")

	r.HandleFunc("/api/budgets", handlers.CreateBudgetHandler(pool)).Methods("POST")
	r.HandleFunc("/api/budgets/user/{user_id}", handlers.GetBudgetsHandler(pool)).Methods("GET")
	r.HandleFunc("/api/budgets/{id}", handlers.UpdateBudgetHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/budgets/{id}", handlers.DeleteBudgetHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/budgets/bulk/delete", handlers.BulkDeleteBudgetsHandler(pool)).Methods("POST")

	r.HandleFunc("/api/goals", handlers.CreateGoalHandler(pool)).Methods("POST")
	r.HandleFunc("/api/goals/user/{user_id}", handlers.GetGoalsHandler(pool)).Methods("GET")
	r.HandleFunc("/api/goals/{id}", handlers.UpdateGoalHandler(pool)).Methods("PUT")
	r.HandleFunc("/api/goals/{id}/progress", handlers.AddGoalProgressHandler(pool)).Methods("POST")
	r.HandleFunc("/api/goals/{id}", handlers.DeleteGoalHandler(pool)).Methods("DELETE")
	r.HandleFunc("/api/goals/bulk/delete", handlers.BulkDeleteGoalsHandler(pool)).Methods("POST")

	return r
}

// OpsRouter отдает служебные маршруты для мониторинга
func OpsRouter(pool *pgxpool.Pool, version string) *mux.Router {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, req *http.Request) {
		if err := pool.Ping(req.Context()); err != nil {
			http.Error(w, "база данных недоступна", http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	}).Methods("GET")

	r.HandleFunc("/version", func(w http.ResponseWriter, req *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"version": version})
	}).Methods("GET")

	return r
}
