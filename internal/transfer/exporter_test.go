package transfer_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/seta-app/seta-api/internal/transfer"
	"github.com/seta-app/seta-api/models"
)

func TestExportAll(t *testing.T) {
	st := newFakeStore(7)
	seedAllKinds(st)

	snap, err := transfer.ExportAll(context.Background(), st, 7)
	if err != nil {
		t.Fatalf("ошибка выгрузки: %v", err)
	}

	if snap.Metadata.Version != models.SnapshotVersion {
		t.Errorf("версия снапшота: %q", snap.Metadata.Version)
	}
	if snap.Metadata.UserID != 7 {
		t.Errorf("пользователь в метаданных: %d", snap.Metadata.UserID)
	}

	if len(snap.Accounts) != 1 || len(snap.Expenses) != 2 || len(snap.Income) != 1 ||
		len(snap.RecurringExpenses) != 1 || len(snap.Budgets) != 1 || len(snap.Goals) != 1 {
		t.Fatalf("неверное число записей по видам: %+v", snap)
	}

	// деньги уходят строками с двумя знаками, даты — YYYY-MM-DD
	if snap.Expenses[0]["amount"] != "250.50" {
		t.Errorf("сумма расхода в снапшоте: %v", snap.Expenses[0]["amount"])
	}
	if snap.Expenses[0]["date"] != "2024-03-10" {
		t.Errorf("дата расхода в снапшоте: %v", snap.Expenses[0]["date"])
	}

	// хранилище не должно меняться при выгрузке
	if st.replaceCalls != 0 {
		t.Error("выгрузка не должна трогать данные")
	}
}

func TestExportAllEmptySectionsPresent(t *testing.T) {
	st := newFakeStore(7)

	snap, err := transfer.ExportAll(context.Background(), st, 7)
	if err != nil {
		t.Fatalf("ошибка выгрузки: %v", err)
	}

	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("ошибка сериализации: %v", err)
	}
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("ошибка разбора: %v", err)
	}
	for _, key := range []string{"metadata", "accounts", "expenses", "income", "recurring_expenses", "budgets", "goals"} {
		if _, ok := doc[key]; !ok {
			t.Errorf("в документе нет раздела %q", key)
		}
	}
	// пустой вид — пустой массив, не null
	if string(doc["goals"]) == "null" {
		t.Error("пустой раздел должен быть пустым массивом")
	}
}

func TestExportAllUnknownUser(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ExportAll(context.Background(), st, 404)
	var notFound *transfer.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ожидалась ошибка 'не найдено', получено %v", err)
	}
}

func TestExportFilename(t *testing.T) {
	now := time.Date(2024, 3, 10, 15, 4, 5, 0, time.UTC)
	got := transfer.ExportFilename(7, now)
	want := "seta_backup_7_20240310_150405.json"
	if got != want {
		t.Errorf("имя файла %q, ожидалось %q", got, want)
	}
}
