package transfer_test

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/transfer"
)

func snapshotJSON(t *testing.T, st *fakeStore, userID int) []byte {
	t.Helper()
	snap, err := transfer.ExportAll(context.Background(), st, userID)
	if err != nil {
		t.Fatalf("ошибка выгрузки: %v", err)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		t.Fatalf("ошибка сериализации снапшота: %v", err)
	}
	return raw
}

func TestImportAllRoundTrip(t *testing.T) {
	src := newFakeStore(7)
	seedAllKinds(src)
	raw := snapshotJSON(t, src, 7)

	// принимающее хранилище уже содержит чужие данные: они должны исчезнуть
	dst := newFakeStore(7)
	dst.add(transfer.KindExpenses, transfer.Row{
		"amount": dec("1.00"), "date": day("2020-01-01"), "category_name": "Старое",
	})

	outcome, err := transfer.ImportAll(context.Background(), dst, 7, raw)
	if err != nil {
		t.Fatalf("ошибка импорта: %v", err)
	}

	if outcome.ImportedCount != 7 {
		t.Errorf("принято %d записей, ожидалось 7", outcome.ImportedCount)
	}
	if len(outcome.SkippedRows) != 0 {
		t.Errorf("ничего не должно быть пропущено: %v", outcome.Errors)
	}
	if dst.count(transfer.KindExpenses) != 2 {
		t.Errorf("прежние расходы должны быть заменены, в базе %d", dst.count(transfer.KindExpenses))
	}

	// повторная выгрузка дает те же значения
	second, err := transfer.ExportAll(context.Background(), dst, 7)
	if err != nil {
		t.Fatalf("ошибка повторной выгрузки: %v", err)
	}
	amounts := map[any]bool{}
	for _, e := range second.Expenses {
		amounts[e["amount"]] = true
	}
	if !amounts["250.50"] || !amounts["99.90"] {
		t.Errorf("суммы расходов не пережили цикл выгрузка-загрузка: %v", second.Expenses)
	}
	if second.Goals[0]["target_amount"] != "100000.00" {
		t.Errorf("сумма цели не пережила цикл: %v", second.Goals[0])
	}
}

func TestImportAllMissingSectionNonDestructive(t *testing.T) {
	st := newFakeStore(7)
	seedAllKinds(st)
	before := st.count(transfer.KindExpenses)

	raw := []byte(`{
		"accounts": [], "expenses": [], "income": [],
		"recurring_expenses": [], "budgets": []
	}`)

	_, err := transfer.ImportAll(context.Background(), st, 7, raw)
	var validation *transfer.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("ожидалась структурная ошибка, получено %v", err)
	}
	if len(validation.Missing) != 1 || validation.Missing[0] != "goals" {
		t.Errorf("ошибка должна называть отсутствующий раздел goals: %v", validation.Missing)
	}

	// существующие данные не тронуты, до удаления дело не дошло
	if st.replaceCalls != 0 {
		t.Error("замена не должна была начаться")
	}
	if st.count(transfer.KindExpenses) != before {
		t.Error("существующие расходы пострадали от отклоненного импорта")
	}
}

func TestImportAllBadJSON(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportAll(context.Background(), st, 7, []byte(`{"accounts": [`))
	var format *transfer.FormatError
	if !errors.As(err, &format) {
		t.Fatalf("ожидалась ошибка формата, получено %v", err)
	}
}

func TestImportAllUnknownUser(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportAll(context.Background(), st, 404, []byte(`{}`))
	var notFound *transfer.NotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("ожидалась ошибка 'не найдено', получено %v", err)
	}
}

func TestImportAllSkipsInvalidItems(t *testing.T) {
	st := newFakeStore(7)

	raw := []byte(`{
		"accounts": [], "income": [], "recurring_expenses": [], "budgets": [], "goals": [],
		"expenses": [
			{"amount": "100.00", "date": "2024-03-10", "category_name": "Продукты"},
			{"amount": "-5", "date": "2024-03-11", "category_name": "Ошибка"},
			{"amount": "20.00", "date": "2024-03-12", "category_name": "Транспорт"}
		]
	}`)

	outcome, err := transfer.ImportAll(context.Background(), st, 7, raw)
	if err != nil {
		t.Fatalf("ошибка импорта: %v", err)
	}

	if outcome.ImportedCount != 2 {
		t.Errorf("принято %d записей, ожидалось 2", outcome.ImportedCount)
	}
	if len(outcome.SkippedRows) != 1 || outcome.SkippedRows[0] != 2 {
		t.Errorf("пропущена должна быть вторая позиция: %v", outcome.SkippedRows)
	}
	if len(outcome.Errors) != 1 {
		t.Fatalf("на один битый элемент — одна ошибка: %v", outcome.Errors)
	}
	if !strings.Contains(outcome.Errors[0], "expenses") {
		t.Errorf("ошибка должна называть вид записи: %q", outcome.Errors[0])
	}
}

func TestImportAllDropsAccountReferences(t *testing.T) {
	st := newFakeStore(7)

	raw := []byte(`{
		"accounts": [], "income": [], "recurring_expenses": [], "budgets": [], "goals": [],
		"expenses": [
			{"amount": "100.00", "date": "2024-03-10", "category_name": "Продукты", "account_id": 55}
		]
	}`)

	outcome, err := transfer.ImportAll(context.Background(), st, 7, raw)
	if err != nil {
		t.Fatalf("ошибка импорта: %v", err)
	}
	if outcome.ImportedCount != 1 {
		t.Fatalf("запись со ссылкой на счет должна быть принята: %+v", outcome)
	}
	if _, has := st.data[transfer.KindExpenses][0]["account_id"]; has {
		t.Error("ссылка на счет должна отбрасываться при полном восстановлении")
	}
}

func TestImportAllAccountWithoutStartingBalance(t *testing.T) {
	st := newFakeStore(7)

	raw := []byte(`{
		"income": [], "expenses": [], "recurring_expenses": [], "budgets": [], "goals": [],
		"accounts": [
			{"name": "Наличные", "account_type": "cash", "balance_date": "2024-01-01"}
		]
	}`)

	outcome, err := transfer.ImportAll(context.Background(), st, 7, raw)
	if err != nil {
		t.Fatalf("ошибка импорта: %v", err)
	}
	if outcome.ImportedCount != 1 {
		t.Fatalf("счет без стартового баланса должен быть принят: %+v", outcome)
	}
	bal, ok := st.data[transfer.KindAccounts][0]["starting_balance"].(decimal.Decimal)
	if !ok || !bal.IsZero() {
		t.Errorf("стартовый баланс должен подставляться нулем, получено %v",
			st.data[transfer.KindAccounts][0]["starting_balance"])
	}
}

func TestImportAllRollback(t *testing.T) {
	st := newFakeStore(7)
	seedAllKinds(st)
	st.failReplace = errors.New("обрыв соединения")

	raw := []byte(`{
		"accounts": [], "income": [], "recurring_expenses": [], "budgets": [], "goals": [],
		"expenses": [
			{"amount": "100.00", "date": "2024-03-10", "category_name": "Продукты"}
		]
	}`)

	outcome, err := transfer.ImportAll(context.Background(), st, 7, raw)
	var tx *transfer.TransactionError
	if !errors.As(err, &tx) {
		t.Fatalf("ожидалась ошибка транзакции, получено %v", err)
	}
	if outcome == nil {
		t.Fatal("результат должен возвращаться и при откате")
	}
	if outcome.ImportedCount != 0 {
		t.Errorf("после отката принятых записей быть не должно: %+v", outcome)
	}
	if len(outcome.Errors) == 0 {
		t.Error("результат должен объяснять откат")
	}
	// данные остались прежними
	if st.count(transfer.KindExpenses) != 2 {
		t.Error("откат не должен терять существующие данные")
	}
}
