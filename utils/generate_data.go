package utils

import (
	"log"
	"math/rand"
	"time"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/models"
)

var expenseCategories = []string{
	"Продукты", "Транспорт", "Жилье", "Развлечения", "Здоровье",
	"Одежда", "Связь", "Образование", "Путешествия",
}

var incomeSources = []string{
	"Зарплата", "Фриланс", "Инвестиции", "Подарок", "Кэшбэк",
}

func randomAmount(min, max float64) decimal.Decimal {
	return decimal.NewFromFloat(gofakeit.Price(min, max))
}

func randomDate() time.Time {
	days := rand.Intn(365)
	return time.Now().AddDate(0, 0, -days)
}

// GenerateTestUser создает тестового пользователя и возвращает его ID
func GenerateTestUser(pool *pgxpool.Pool) int {
	user := &models.User{
		Username:  gofakeit.Username(),
		Email:     gofakeit.Email(),
		Password:  gofakeit.Password(true, true, true, false, false, 10),
		FirstName: gofakeit.FirstName(),
		LastName:  gofakeit.LastName(),
	}
	if err := database.RegisterUser(pool, user); err != nil {
		log.Fatalf("ошибка при добавлении пользователя: %v", err)
	}
	return user.ID
}

// GenerateTestAccounts создает тестовые счета для пользователя
func GenerateTestAccounts(pool *pgxpool.Pool, userID, num int) []int {
	types := []string{"checking", "savings", "credit_card", "cash"}
	ids := make([]int, 0, num)
	for i := 0; i < num; i++ {
		account := &models.Account{
			UserID:          userID,
			Name:            gofakeit.Company(),
			AccountType:     types[rand.Intn(len(types))],
			StartingBalance: randomAmount(0, 100000),
			BalanceDate:     randomDate(),
			Currency:        gofakeit.CurrencyShort(),
		}
		if err := database.CreateAccount(pool, account); err != nil {
			log.Fatalf("ошибка при добавлении счета: %v", err)
		}
		ids = append(ids, account.ID)
	}
	return ids
}

// GenerateTestExpenses создает тестовые расходы
func GenerateTestExpenses(pool *pgxpool.Pool, userID, num int, accountIDs []int) {
	for i := 0; i < num; i++ {
		expense := &models.Expense{
			UserID:       userID,
			Amount:       randomAmount(1, 5000),
			Date:         randomDate(),
			CategoryName: expenseCategories[rand.Intn(len(expenseCategories))],
			Description:  gofakeit.Sentence(4),
		}
		if len(accountIDs) > 0 && rand.Intn(2) == 0 {
			id := accountIDs[rand.Intn(len(accountIDs))]
			expense.AccountID = &id
		}
		if err := database.CreateExpense(pool, expense); err != nil {
			log.Fatalf("ошибка при добавлении расхода: %v", err)
		}
	}
}

// GenerateTestIncome создает тестовые доходы
func GenerateTestIncome(pool *pgxpool.Pool, userID, num int, accountIDs []int) {
	for i := 0; i < num; i++ {
		income := &models.Income{
			UserID:      userID,
			Amount:      randomAmount(100, 200000),
			Date:        randomDate(),
			Source:      incomeSources[rand.Intn(len(incomeSources))],
			Description: gofakeit.Sentence(4),
		}
		if len(accountIDs) > 0 && rand.Intn(2) == 0 {
			id := accountIDs[rand.Intn(len(accountIDs))]
			income.AccountID = &id
		}
		if err := database.CreateIncome(pool, income); err != nil {
			log.Fatalf("ошибка при добавлении дохода: %v", err)
		}
	}
}

// GenerateTestRecurringExpenses создает тестовые регулярные расходы
func GenerateTestRecurringExpenses(pool *pgxpool.Pool, userID, num int) {
	freqs := models.Frequencies()
	for i := 0; i < num; i++ {
		rec := &models.RecurringExpense{
			UserID:       userID,
			Name:         gofakeit.AppName(),
			Amount:       randomAmount(100, 3000),
			CategoryName: expenseCategories[rand.Intn(len(expenseCategories))],
			Frequency:    freqs[rand.Intn(len(freqs))],
			StartDate:    randomDate(),
			Description:  gofakeit.Sentence(3),
		}
		if err := database.CreateRecurringExpense(pool, rec); err != nil {
			log.Fatalf("ошибка при добавлении регулярного расхода: %v", err)
		}
	}
}

// GenerateTestBudgets создает тестовые бюджеты
func GenerateTestBudgets(pool *pgxpool.Pool, userID, num int) {
	freqs := models.Frequencies()
	for i := 0; i < num; i++ {
		budget := &models.Budget{
			UserID:       userID,
			CategoryName: expenseCategories[rand.Intn(len(expenseCategories))],
			AmountLimit:  randomAmount(1000, 50000),
			Period:       freqs[rand.Intn(len(freqs))],
			StartDate:    randomDate(),
		}
		if err := database.CreateBudget(pool, budget); err != nil {
			log.Fatalf("ошибка при добавлении бюджета: %v", err)
		}
	}
}

// GenerateTestGoals создает тестовые цели
func GenerateTestGoals(pool *pgxpool.Pool, userID, num int) {
	for i := 0; i < num; i++ {
		target := time.Now().AddDate(0, rand.Intn(24), 0)
		goal := &models.Goal{
			UserID:        userID,
			Name:          gofakeit.HackerNoun(),
			TargetAmount:  randomAmount(10000, 500000),
			CurrentAmount: randomAmount(0, 10000),
			TargetDate:    &target,
		}
		if err := database.CreateGoal(pool, goal); err != nil {
			log.Fatalf("ошибка при добавлении цели: %v", err)
		}
	}
}

// SeedDemoData наполняет базу демонстрационными данными одного пользователя
func SeedDemoData(pool *pgxpool.Pool) int {
	userID := GenerateTestUser(pool)
	accountIDs := GenerateTestAccounts(pool, userID, 3)
	GenerateTestExpenses(pool, userID, 50, accountIDs)
	GenerateTestIncome(pool, userID, 20, accountIDs)
	GenerateTestRecurringExpenses(pool, userID, 5)
	GenerateTestBudgets(pool, userID, 5)
	GenerateTestGoals(pool, userID, 3)
	log.Printf("демо-данные созданы для пользователя %d", userID)
	return userID
}
