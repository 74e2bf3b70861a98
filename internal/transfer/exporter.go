package transfer

import (
	"context"
	"fmt"
	"time"

	"github.com/seta-app/seta-api/models"
)

// Snapshot — переносимый документ со всеми данными пользователя.
// Шесть ключей видов присутствуют всегда, даже пустыми списками.
type Snapshot struct {
	Metadata          models.SnapshotMeta `json:"metadata"`
	Accounts          []map[string]any    `json:"accounts"`
	Expenses          []map[string]any    `json:"expenses"`
	Income            []map[string]any    `json:"income"`
	RecurringExpenses []map[string]any    `json:"recurring_expenses"`
	Budgets           []map[string]any    `json:"budgets"`
	Goals             []map[string]any    `json:"goals"`
}

func (s *Snapshot) set(kind Kind, items []map[string]any) {
	switch kind {
	case KindAccounts:
		s.Accounts = items
	case KindExpenses:
		s.Expenses = items
	case KindIncome:
		s.Income = items
	case KindRecurring:
		s.RecurringExpenses = items
	case KindBudgets:
		s.Budgets = items
	case KindGoals:
		s.Goals = items
	}
}

// ExportAll собирает снапшот всех записей пользователя по всем шести видам.
// Только чтение, состояние хранилища не меняется.
func ExportAll(ctx context.Context, st Store, userID int) (*Snapshot, error) {
	exists, err := st.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пользователя: %v", err)
	}
	if !exists {
		return nil, &NotFoundError{What: fmt.Sprintf("пользователя с ID %d", userID)}
	}

	snap := &Snapshot{
		Metadata: models.SnapshotMeta{
			Version:    models.SnapshotVersion,
			ExportedAt: time.Now().UTC(),
			UserID:     userID,
		},
	}

	for _, schema := range Schemas() {
		rows, err := st.List(ctx, schema.Kind, userID, DateRange{})
		if err != nil {
			return nil, fmt.Errorf("ошибка выгрузки %s: %v", schema.Kind, err)
		}
		items := make([]map[string]any, 0, len(rows))
		for _, row := range rows {
			items = append(items, schema.ScalarRow(row))
		}
		snap.set(schema.Kind, items)
	}

	return snap, nil
}

// ExportFilename — имя файла выгрузки с идентификатором пользователя и отметкой времени.
func ExportFilename(userID int, now time.Time) string {
	return fmt.Sprintf("seta_backup_%d_%s.json", userID, now.Format("20060102_150405"))
}
