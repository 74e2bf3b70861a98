package transfer

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/seta-app/seta-api/models"
)

// ImportCSV построчно загружает расходы или доходы из CSV-файла.
// Каждая строка проверяется независимо: битая строка пропускается с ошибкой,
// разбор продолжается дальше. Все прошедшие проверку строки вставляются
// одной операцией в конце — либо все разом, либо ни одной.
func ImportCSV(ctx context.Context, st Store, userID int, kind Kind, data []byte) (*models.ImportOutcome, error) {
	if kind != KindExpenses && kind != KindIncome {
		return nil, &ValidationError{Reason: fmt.Sprintf("построчный импорт поддерживает только расходы и доходы, получено %q", kind)}
	}
	schema, _ := SchemaFor(kind)

	exists, err := st.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пользователя: %v", err)
	}
	if !exists {
		return nil, &NotFoundError{What: fmt.Sprintf("пользователя с ID %d", userID)}
	}

	if !utf8.Valid(data) {
		return nil, &FormatError{Reason: "файл не является текстом в кодировке UTF-8"}
	}

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1 // количество колонок проверяем сами, построчно
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("не удалось прочитать строку заголовка: %v", err)}
	}

	// Колонки сопоставляются по имени без учета регистра, лишние и
	// переставленные колонки допустимы.
	colIndex := map[string]int{}
	for i, name := range header {
		colIndex[strings.ToLower(strings.TrimSpace(name))] = i
	}

	categoryCol := "category_name"
	if kind == KindIncome {
		categoryCol = "source"
	}
	var missing []string
	for _, required := range []string{"date", "amount", categoryCol} {
		if _, ok := colIndex[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Reason: "в заголовке CSV нет обязательных колонок", Missing: missing}
	}

	var accountIDs map[int]struct{}
	if _, ok := colIndex["account_id"]; ok {
		accountIDs, err = st.AccountIDs(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("ошибка загрузки счетов пользователя: %v", err)
		}
	}

	outcome := models.NewImportOutcome()
	var staged []Row

	// Строки данных нумеруются с учетом заголовка: первая строка данных — line 2.
	line := 1
	for {
		record, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			outcome.Skip(line, fmt.Sprintf("строка %d: нечитаемая CSV-строка: %v", line, err))
			continue
		}

		cell := func(name string) string {
			idx, ok := colIndex[name]
			if !ok || idx >= len(record) {
				return ""
			}
			return strings.TrimSpace(record[idx])
		}

		item := map[string]any{
			"date":      cell("date"),
			"amount":    cell("amount"),
			categoryCol: cell(categoryCol),
		}
		if v := cell("description"); v != "" {
			item["description"] = v
		}
		if v := cell("account_id"); v != "" {
			item["account_id"] = v
		}

		row, fieldErrs := schema.ValidateRow(item)
		if len(fieldErrs) > 0 {
			outcome.Skip(line, fmt.Sprintf("строка %d: %s", line, strings.Join(fieldErrs, "; ")))
			continue
		}

		// Ссылка на счет обязана указывать на существующий счет этого же пользователя.
		if accID, ok := row["account_id"].(int); ok {
			if _, found := accountIDs[accID]; !found {
				outcome.Skip(line, fmt.Sprintf("строка %d: счет %d не найден у пользователя", line, accID))
				continue
			}
		}

		staged = append(staged, row)
	}

	if len(staged) > 0 {
		n, err := st.BulkInsert(ctx, kind, userID, staged)
		if err != nil {
			// Поздний сбой вставки перечеркивает все проверенные строки:
			// результат сообщает ноль принятых записей без построчных ошибок.
			failed := models.NewImportOutcome()
			failed.SkippedRows = outcome.SkippedRows
			failed.Errors = append(failed.Errors, outcome.Errors...)
			failed.Errors = append(failed.Errors, fmt.Sprintf("вставка отменена, изменения откатились: %v", err))
			return failed, &TransactionError{Err: err}
		}
		outcome.AddImported(string(kind), n)
	}

	return outcome, nil
}
