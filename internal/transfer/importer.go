package transfer

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/seta-app/seta-api/models"
)

// ImportAll атомарно заменяет все данные пользователя содержимым снапшота.
// Контракт: заменить всё или ничего. Структурные проверки выполняются до
// первого удаления, поэтому битый файл не уничтожает существующие данные.
// Невалидные элементы пропускаются по одному и не прерывают операцию.
func ImportAll(ctx context.Context, st Store, userID int, data []byte) (*models.ImportOutcome, error) {
	exists, err := st.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пользователя: %v", err)
	}
	if !exists {
		return nil, &NotFoundError{What: fmt.Sprintf("пользователя с ID %d", userID)}
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &FormatError{Reason: fmt.Sprintf("не удалось разобрать JSON: %v", err)}
	}

	// Все шесть ключей видов обязаны присутствовать до любых изменений.
	var missing []string
	for _, schema := range Schemas() {
		if _, ok := doc[string(schema.Kind)]; !ok {
			missing = append(missing, string(schema.Kind))
		}
	}
	if len(missing) > 0 {
		return nil, &ValidationError{Reason: "в снапшоте отсутствуют обязательные разделы", Missing: missing}
	}

	outcome := models.NewImportOutcome()
	staged := map[Kind][]Row{}

	for _, schema := range Schemas() {
		var items []map[string]any
		if err := json.Unmarshal(doc[string(schema.Kind)], &items); err != nil {
			return nil, &FormatError{Reason: fmt.Sprintf("раздел %s не является массивом объектов: %v", schema.Kind, err)}
		}

		rows := make([]Row, 0, len(items))
		for i, item := range items {
			// Ссылки на счета не переживают полное восстановление: прежние
			// идентификаторы счетов перестают существовать, поэтому входные
			// account_id отбрасываются, а не переназначаются.
			delete(item, "account_id")

			row, fieldErrs := schema.ValidateRow(item)
			if len(fieldErrs) > 0 {
				outcome.Skip(i+1, fmt.Sprintf("%s, элемент %d: %s", schema.Kind, i+1, strings.Join(fieldErrs, "; ")))
				continue
			}
			rows = append(rows, row)
		}
		staged[schema.Kind] = rows
	}

	counts, err := st.ReplaceAll(ctx, userID, staged)
	if err != nil {
		failed := models.NewImportOutcome()
		failed.Errors = append(failed.Errors, fmt.Sprintf("импорт отменен, изменения откатились: %v", err))
		return failed, &TransactionError{Err: err}
	}

	for kind, n := range counts {
		outcome.AddImported(string(kind), n)
	}
	return outcome, nil
}
