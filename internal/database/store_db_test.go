package database_test

import (
	"context"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/seta-app/seta-api/internal/database"
	"github.com/seta-app/seta-api/internal/transfer"
	"github.com/seta-app/seta-api/models"
	"github.com/seta-app/seta-api/utils"
)

// testPool подключается к тестовой базе; без настроенного окружения
// тесты этого файла пропускаются.
func testPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	_ = godotenv.Load()
	if os.Getenv("DB_HOST") == "" {
		t.Skip("окружение БД не настроено, пропуск интеграционного теста")
	}
	pool, err := database.ConnectDB()
	if err != nil {
		t.Fatalf("ошибка подключения к БД: %v", err)
	}
	t.Cleanup(pool.Close)
	if err := database.RunMigrations(); err != nil {
		t.Fatalf("ошибка миграций: %v", err)
	}
	return pool
}

func TestRecordStoreRoundTrip(t *testing.T) {
	pool := testPool(t)

	userID := utils.GenerateTestUser(pool)
	t.Cleanup(func() {
		_ = database.DeleteUser(pool, userID)
	})

	store := database.NewRecordStore(pool)
	ctx := context.Background()

	exists, err := store.UserExists(ctx, userID)
	if err != nil || !exists {
		t.Fatalf("созданный пользователь не найден: %v", err)
	}

	accountIDs := utils.GenerateTestAccounts(pool, userID, 2)
	utils.GenerateTestExpenses(pool, userID, 5, accountIDs)
	utils.GenerateTestIncome(pool, userID, 3, accountIDs)

	rows, err := store.List(ctx, transfer.KindExpenses, userID, transfer.DateRange{})
	if err != nil {
		t.Fatalf("ошибка выборки расходов: %v", err)
	}
	if len(rows) != 5 {
		t.Errorf("расходов в выборке %d, ожидалось 5", len(rows))
	}
	for _, row := range rows {
		if _, ok := row["id"]; !ok {
			t.Fatal("каждая строка выборки должна содержать id")
		}
	}

	ids, err := store.AccountIDs(ctx, userID)
	if err != nil {
		t.Fatalf("ошибка выборки счетов: %v", err)
	}
	if len(ids) != 2 {
		t.Errorf("счетов %d, ожидалось 2", len(ids))
	}

	snap, err := transfer.ExportAll(ctx, store, userID)
	if err != nil {
		t.Fatalf("ошибка выгрузки: %v", err)
	}
	if len(snap.Expenses) != 5 || len(snap.Income) != 3 || len(snap.Accounts) != 2 {
		t.Errorf("снапшот не совпадает с содержимым базы: %d/%d/%d",
			len(snap.Expenses), len(snap.Income), len(snap.Accounts))
	}
}

func TestGeneralSummaryLive(t *testing.T) {
	pool := testPool(t)

	userID := utils.GenerateTestUser(pool)
	t.Cleanup(func() {
		_ = database.DeleteUser(pool, userID)
	})
	utils.GenerateTestExpenses(pool, userID, 3, nil)
	utils.GenerateTestIncome(pool, userID, 2, nil)

	summary, err := database.GetGeneralSummary(pool, userID)
	if err != nil {
		t.Fatalf("ошибка сборки сводки: %v", err)
	}
	counts, ok := summary["record_counts"].(map[string]int)
	if !ok {
		t.Fatalf("в сводке нет счетчиков записей: %+v", summary)
	}
	if counts["expenses"] != 3 || counts["income"] != 2 {
		t.Errorf("счетчики записей: %+v", counts)
	}
	if _, ok := summary["balance"].(string); !ok {
		t.Errorf("баланс должен быть строкой: %v", summary["balance"])
	}
}

func TestAuthenticateUserLive(t *testing.T) {
	pool := testPool(t)

	user := &models.User{
		Username: "roundtrip_user",
		Email:    "roundtrip@example.com",
		Password: "secret12345",
	}
	if err := database.RegisterUser(pool, user); err != nil {
		t.Fatalf("ошибка регистрации: %v", err)
	}
	t.Cleanup(func() {
		_ = database.DeleteUser(pool, user.ID)
	})

	if user.Password != "" {
		t.Error("открытый пароль не должен оставаться в структуре после регистрации")
	}

	got, err := database.AuthenticateUser(pool, "roundtrip@example.com", "secret12345")
	if err != nil {
		t.Fatalf("ошибка входа: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("вошел не тот пользователь: %d вместо %d", got.ID, user.ID)
	}

	if _, err := database.AuthenticateUser(pool, "roundtrip@example.com", "неверный"); err == nil {
		t.Error("вход с неверным паролем должен отклоняться")
	}
}
