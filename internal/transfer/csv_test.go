package transfer_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/transfer"
)

func TestImportCSVPartialSuccess(t *testing.T) {
	st := newFakeStore(7)

	csvData := []byte("date,amount,category_name,description\n" +
		"2024-03-10,250.50,Продукты,магазин\n" +
		"2024-03-11,не число,Транспорт,\n" +
		"2024-03-12,99.90,Транспорт,метро\n")

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	if err != nil {
		t.Fatalf("ошибка импорта CSV: %v", err)
	}

	if outcome.ImportedCount != 2 {
		t.Errorf("принято %d строк, ожидалось 2", outcome.ImportedCount)
	}
	// нумерация строк учитывает заголовок: битая строка данных — это строка 3
	if len(outcome.SkippedRows) != 1 || outcome.SkippedRows[0] != 3 {
		t.Errorf("пропущенные строки: %v, ожидалась [3]", outcome.SkippedRows)
	}
	if len(outcome.Errors) != 1 || !strings.Contains(outcome.Errors[0], "строка 3") {
		t.Errorf("ошибка должна называть номер строки: %v", outcome.Errors)
	}
	if st.count(transfer.KindExpenses) != 2 {
		t.Errorf("в хранилище %d расходов, ожидалось 2", st.count(transfer.KindExpenses))
	}
}

func TestImportCSVMalformedAccountID(t *testing.T) {
	st := newFakeStore(7)
	st.accounts[12] = struct{}{}

	csvData := []byte("date,amount,category_name,account_id\n" +
		"2024-03-10,250.50,Продукты,12abc\n")

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	if err != nil {
		t.Fatalf("ошибка импорта CSV: %v", err)
	}
	if outcome.ImportedCount != 0 || len(outcome.SkippedRows) != 1 {
		t.Fatalf("номер счета с мусором после цифр должен отклоняться: %+v", outcome)
	}
	if !strings.Contains(outcome.Errors[0], "целое") {
		t.Errorf("ошибка должна называть неверное целое: %v", outcome.Errors)
	}
}

func TestImportCSVHeaderCaseAndOrder(t *testing.T) {
	st := newFakeStore(7)

	// колонки переставлены, регистр различается, есть лишняя колонка
	csvData := []byte("Category_Name,extra,AMOUNT,Date\n" +
		"Продукты,мусор,100.00,2024-03-10\n")

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	if err != nil {
		t.Fatalf("ошибка импорта CSV: %v", err)
	}
	if outcome.ImportedCount != 1 {
		t.Fatalf("строка с переставленными колонками отклонена: %+v", outcome)
	}
	row := st.data[transfer.KindExpenses][0]
	if amount, _ := row["amount"].(decimal.Decimal); !amount.Equal(dec("100.00")) {
		t.Errorf("сумма разобрана неверно: %v", row["amount"])
	}
}

func TestImportCSVMissingColumns(t *testing.T) {
	st := newFakeStore(7)

	csvData := []byte("date,category_name\n2024-03-10,Продукты\n")

	_, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	var validation *transfer.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("ожидалась структурная ошибка, получено %v", err)
	}
	if len(validation.Missing) != 1 || validation.Missing[0] != "amount" {
		t.Errorf("ошибка должна называть колонку amount: %v", validation.Missing)
	}
	if st.count(transfer.KindExpenses) != 0 {
		t.Error("при отклоненном заголовке ничего не вставляется")
	}
}

func TestImportCSVIncomeUsesSourceColumn(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindIncome,
		[]byte("date,amount,category_name\n2024-03-01,100,Зарплата\n"))
	var validation *transfer.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("для доходов обязательна колонка source, получено %v", err)
	}
	if len(validation.Missing) != 1 || validation.Missing[0] != "source" {
		t.Errorf("ошибка должна называть колонку source: %v", validation.Missing)
	}

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindIncome,
		[]byte("date,amount,source\n2024-03-01,50000,Зарплата\n"))
	if err != nil {
		t.Fatalf("ошибка импорта доходов: %v", err)
	}
	if outcome.ImportedCount != 1 {
		t.Errorf("доход не принят: %+v", outcome)
	}
}

func TestImportCSVUnknownAccountReference(t *testing.T) {
	st := newFakeStore(7)
	st.add(transfer.KindAccounts, transfer.Row{
		"name": "Основной", "account_type": "checking", "balance_date": day("2024-01-01"),
	})
	// счет получил ID 1, счета 99 не существует
	csvData := []byte("date,amount,category_name,account_id\n" +
		"2024-03-10,100.00,Продукты,1\n" +
		"2024-03-11,200.00,Продукты,99\n")

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	if err != nil {
		t.Fatalf("ошибка импорта CSV: %v", err)
	}
	if outcome.ImportedCount != 1 {
		t.Errorf("принята должна быть одна строка: %+v", outcome)
	}
	if len(outcome.SkippedRows) != 1 || outcome.SkippedRows[0] != 3 {
		t.Errorf("строка с несуществующим счетом должна быть пропущена: %v", outcome.SkippedRows)
	}
}

func TestImportCSVAllOrNothing(t *testing.T) {
	st := newFakeStore(7)
	st.failInsert = errors.New("обрыв соединения")

	csvData := []byte("date,amount,category_name\n" +
		"2024-03-10,100.00,Продукты\n" +
		"2024-03-11,плохо,Транспорт\n")

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, csvData)
	var tx *transfer.TransactionError
	if !errors.As(err, &tx) {
		t.Fatalf("ожидалась ошибка транзакции, получено %v", err)
	}
	if outcome == nil {
		t.Fatal("результат должен возвращаться и при откате")
	}
	if outcome.ImportedCount != 0 {
		t.Errorf("поздний сбой вставки обнуляет результат: %+v", outcome)
	}
	// построчные ошибки сохраняются, плюс объяснение отката
	if len(outcome.Errors) < 2 {
		t.Errorf("результат должен содержать построчную ошибку и объяснение отката: %v", outcome.Errors)
	}
	if st.count(transfer.KindExpenses) != 0 {
		t.Error("после отката вставленных строк быть не должно")
	}
}

func TestImportCSVWrongKind(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindGoals, []byte("date,amount\n"))
	var validation *transfer.ValidationError
	if !errors.As(err, &validation) {
		t.Fatalf("построчный импорт целей должен отклоняться, получено %v", err)
	}
}

func TestImportCSVNotText(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, []byte{0xff, 0xfe, 0x00, 0x81})
	var format *transfer.FormatError
	if !errors.As(err, &format) {
		t.Fatalf("двоичный файл должен отклоняться ошибкой формата, получено %v", err)
	}
}

func TestImportCSVEmptyFile(t *testing.T) {
	st := newFakeStore(7)

	_, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses, []byte(""))
	var format *transfer.FormatError
	if !errors.As(err, &format) {
		t.Fatalf("пустой файл должен отклоняться ошибкой формата, получено %v", err)
	}
}

func TestImportCSVOnlyHeader(t *testing.T) {
	st := newFakeStore(7)

	outcome, err := transfer.ImportCSV(context.Background(), st, 7, transfer.KindExpenses,
		[]byte("date,amount,category_name\n"))
	if err != nil {
		t.Fatalf("файл с одним заголовком не ошибка: %v", err)
	}
	if outcome.ImportedCount != 0 || len(outcome.SkippedRows) != 0 {
		t.Errorf("из пустого файла ничего не импортируется: %+v", outcome)
	}
}
