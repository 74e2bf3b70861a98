package transfer_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/transfer"
)

func TestValidateRowExpense(t *testing.T) {
	schema, ok := transfer.SchemaFor(transfer.KindExpenses)
	if !ok {
		t.Fatal("схема расходов не найдена")
	}

	row, errs := schema.ValidateRow(map[string]any{
		"amount":        "250.50",
		"date":          "2024-03-10",
		"category_name": " Продукты ",
		"id":            99,
		"user_id":       7,
	})
	if len(errs) != 0 {
		t.Fatalf("корректный элемент отклонен: %v", errs)
	}

	amount, ok := row["amount"].(decimal.Decimal)
	if !ok || !amount.Equal(dec("250.50")) {
		t.Errorf("сумма разобрана неверно: %v", row["amount"])
	}
	date, ok := row["date"].(time.Time)
	if !ok || date.Format(transfer.DateLayout) != "2024-03-10" {
		t.Errorf("дата разобрана неверно: %v", row["date"])
	}
	if row["category_name"] != "Продукты" {
		t.Errorf("категория не очищена от пробелов: %q", row["category_name"])
	}
	if _, has := row["id"]; has {
		t.Error("поле id не должно попадать в нормализованную строку")
	}
}

func TestValidateRowErrors(t *testing.T) {
	schema, _ := transfer.SchemaFor(transfer.KindExpenses)

	tests := []struct {
		name string
		item map[string]any
		want string
	}{
		{"без суммы", map[string]any{"date": "2024-03-10", "category_name": "X"}, "amount"},
		{"отрицательная сумма", map[string]any{"amount": "-5", "date": "2024-03-10", "category_name": "X"}, "положительным"},
		{"нулевая сумма", map[string]any{"amount": "0", "date": "2024-03-10", "category_name": "X"}, "положительным"},
		{"кривая дата", map[string]any{"amount": "10", "date": "10.03.2024", "category_name": "X"}, "YYYY-MM-DD"},
		{"пустая категория", map[string]any{"amount": "10", "date": "2024-03-10", "category_name": "  "}, "category_name"},
		{"мусор после числа в account_id", map[string]any{"amount": "10", "date": "2024-03-10", "category_name": "X", "account_id": "12abc"}, "целое"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, errs := schema.ValidateRow(tc.item)
			if len(errs) == 0 {
				t.Fatal("ожидалась ошибка проверки")
			}
			if !strings.Contains(strings.Join(errs, "; "), tc.want) {
				t.Errorf("ошибка не упоминает %q: %v", tc.want, errs)
			}
		})
	}
}

func TestValidateRowEnumAndDefaults(t *testing.T) {
	schema, _ := transfer.SchemaFor(transfer.KindRecurring)

	_, errs := schema.ValidateRow(map[string]any{
		"name": "Аренда", "amount": "100", "category_name": "Жилье",
		"frequency": "каждый вторник", "start_date": "2024-01-05",
	})
	if len(errs) == 0 {
		t.Fatal("недопустимая периодичность принята")
	}

	row, errs := schema.ValidateRow(map[string]any{
		"name": "Аренда", "amount": "100", "category_name": "Жилье",
		"frequency": " Monthly ", "start_date": "2024-01-05",
	})
	if len(errs) != 0 {
		t.Fatalf("периодичность с пробелами и регистром отклонена: %v", errs)
	}
	if row["frequency"] != "monthly" {
		t.Errorf("периодичность не нормализована: %q", row["frequency"])
	}

	goals, _ := transfer.SchemaFor(transfer.KindGoals)
	row, errs = goals.ValidateRow(map[string]any{"name": "Отпуск", "target_amount": "1000"})
	if len(errs) != 0 {
		t.Fatalf("цель без накоплений отклонена: %v", errs)
	}
	current, ok := row["current_amount"].(decimal.Decimal)
	if !ok || !current.IsZero() {
		t.Errorf("накопления по умолчанию должны быть нулем, получено %v", row["current_amount"])
	}
}

func TestValidateRowNegativeBalanceAllowed(t *testing.T) {
	schema, _ := transfer.SchemaFor(transfer.KindAccounts)
	row, errs := schema.ValidateRow(map[string]any{
		"name": "Кредитка", "account_type": "credit_card",
		"starting_balance": "-5000", "balance_date": "2024-01-01",
	})
	if len(errs) != 0 {
		t.Fatalf("отрицательный стартовый баланс счета отклонен: %v", errs)
	}
	if row["currency"] != "USD" {
		t.Errorf("валюта по умолчанию не подставлена: %v", row["currency"])
	}
}

func TestResolveKind(t *testing.T) {
	tests := []struct {
		in   string
		want transfer.Kind
		ok   bool
	}{
		{"expenses", transfer.KindExpenses, true},
		{" Recurring ", transfer.KindRecurring, true},
		{"recurring_expenses", transfer.KindRecurring, true},
		{"GOALS", transfer.KindGoals, true},
		{"transactions", "", false},
	}
	for _, tc := range tests {
		kind, ok := transfer.ResolveKind(tc.in)
		if ok != tc.ok || kind != tc.want {
			t.Errorf("ResolveKind(%q) = %q, %v, ожидалось %q, %v", tc.in, kind, ok, tc.want, tc.ok)
		}
	}
}

func TestSchemasOrder(t *testing.T) {
	all := transfer.Schemas()
	if len(all) != 6 {
		t.Fatalf("ожидалось 6 видов, получено %d", len(all))
	}
	if all[0].Kind != transfer.KindAccounts {
		t.Errorf("счета должны идти первыми, первым идет %q", all[0].Kind)
	}
}

func TestFormatCell(t *testing.T) {
	if got := transfer.FormatCell(dec("99.9")); got != "99.90" {
		t.Errorf("деньги должны иметь два знака: %q", got)
	}
	if got := transfer.FormatCell(day("2024-03-10")); got != "2024-03-10" {
		t.Errorf("дата в ячейке: %q", got)
	}
	if got := transfer.FormatCell(nil); got != "" {
		t.Errorf("nil должен давать пустую ячейку: %q", got)
	}
}
