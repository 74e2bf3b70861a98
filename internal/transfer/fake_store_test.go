package transfer_test

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/transfer"
)

// fakeStore — хранилище в памяти для тестов ядра переноса данных.
// Поля failInsert/failReplace имитируют сбой транзакции.
type fakeStore struct {
	users        map[int]bool
	data         map[transfer.Kind][]transfer.Row
	accounts     map[int]struct{}
	nextID       int
	failInsert   error
	failReplace  error
	replaceCalls int
	userCalls    int
}

func newFakeStore(userID int) *fakeStore {
	return &fakeStore{
		users:    map[int]bool{userID: true},
		data:     map[transfer.Kind][]transfer.Row{},
		accounts: map[int]struct{}{},
		nextID:   1,
	}
}

func (f *fakeStore) UserExists(ctx context.Context, userID int) (bool, error) {
	f.userCalls++
	return f.users[userID], nil
}

func (f *fakeStore) List(ctx context.Context, kind transfer.Kind, userID int, r transfer.DateRange) ([]transfer.Row, error) {
	schema, ok := transfer.SchemaFor(kind)
	if !ok {
		return nil, fmt.Errorf("неизвестный вид %q", kind)
	}
	var out []transfer.Row
	for _, row := range f.data[kind] {
		if schema.DateField != "" {
			if d, ok := row[schema.DateField].(time.Time); ok {
				if r.From != nil && d.Before(*r.From) {
					continue
				}
				if r.To != nil && d.After(*r.To) {
					continue
				}
			}
		}
		copied := transfer.Row{}
		for k, v := range row {
			copied[k] = v
		}
		out = append(out, copied)
	}
	return out, nil
}

func (f *fakeStore) AccountIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	ids := map[int]struct{}{}
	for id := range f.accounts {
		ids[id] = struct{}{}
	}
	return ids, nil
}

func (f *fakeStore) BulkInsert(ctx context.Context, kind transfer.Kind, userID int, rows []transfer.Row) (int, error) {
	if f.failInsert != nil {
		return 0, f.failInsert
	}
	for _, row := range rows {
		f.add(kind, row)
	}
	return len(rows), nil
}

func (f *fakeStore) ReplaceAll(ctx context.Context, userID int, staged map[transfer.Kind][]transfer.Row) (map[transfer.Kind]int, error) {
	f.replaceCalls++
	if f.failReplace != nil {
		return nil, f.failReplace
	}
	f.data = map[transfer.Kind][]transfer.Row{}
	f.accounts = map[int]struct{}{}
	counts := map[transfer.Kind]int{}
	for _, schema := range transfer.Schemas() {
		rows := staged[schema.Kind]
		for _, row := range rows {
			f.add(schema.Kind, row)
		}
		counts[schema.Kind] = len(rows)
	}
	return counts, nil
}

// add сохраняет копию строки, назначая ей идентификатор, как это делает база.
func (f *fakeStore) add(kind transfer.Kind, row transfer.Row) {
	copied := transfer.Row{}
	for k, v := range row {
		copied[k] = v
	}
	copied["id"] = f.nextID
	if kind == transfer.KindAccounts {
		f.accounts[f.nextID] = struct{}{}
	}
	f.nextID++
	f.data[kind] = append(f.data[kind], copied)
}

func (f *fakeStore) count(kind transfer.Kind) int {
	return len(f.data[kind])
}

func day(s string) time.Time {
	t, err := time.Parse(transfer.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

// seedAllKinds наполняет хранилище по одной-две записи каждого вида.
func seedAllKinds(f *fakeStore) {
	f.add(transfer.KindAccounts, transfer.Row{
		"name": "Основной", "account_type": "checking",
		"starting_balance": dec("1500.00"), "balance_date": day("2024-01-01"), "currency": "RUB",
	})
	f.add(transfer.KindExpenses, transfer.Row{
		"amount": dec("250.50"), "date": day("2024-03-10"), "category_name": "Продукты",
	})
	f.add(transfer.KindExpenses, transfer.Row{
		"amount": dec("99.90"), "date": day("2024-03-12"), "category_name": "Транспорт", "description": "метро",
	})
	f.add(transfer.KindIncome, transfer.Row{
		"amount": dec("50000.00"), "date": day("2024-03-01"), "source": "Зарплата",
	})
	f.add(transfer.KindRecurring, transfer.Row{
		"name": "Аренда", "amount": dec("30000.00"), "category_name": "Жилье",
		"frequency": "monthly", "start_date": day("2024-01-05"),
	})
	f.add(transfer.KindBudgets, transfer.Row{
		"category_name": "Продукты", "amount_limit": dec("20000.00"),
		"period": "monthly", "start_date": day("2024-03-01"),
	})
	f.add(transfer.KindGoals, transfer.Row{
		"name": "Отпуск", "target_amount": dec("100000.00"), "current_amount": dec("15000.00"),
		"target_date": day("2024-12-31"),
	})
}
