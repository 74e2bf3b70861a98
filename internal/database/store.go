package database

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/seta-app/seta-api/internal/transfer"
)

// RecordStore — боевая реализация адаптера хранилища поверх пула соединений.
// SQL собирается из описания вида, поэтому шесть таблиц обслуживаются одним
// кодом. Каждый изменяющий вызов — одна транзакция.
type RecordStore struct {
	pool *pgxpool.Pool
}

func NewRecordStore(pool *pgxpool.Pool) *RecordStore {
	return &RecordStore{pool: pool}
}

func (s *RecordStore) UserExists(ctx context.Context, userID int) (bool, error) {
	var exists bool
	err := s.pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM users WHERE id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("ошибка проверки пользователя: %v", err)
	}
	return exists, nil
}

func (s *RecordStore) List(ctx context.Context, kind transfer.Kind, userID int, r transfer.DateRange) ([]transfer.Row, error) {
	schema, ok := transfer.SchemaFor(kind)
	if !ok {
		return nil, fmt.Errorf("неизвестный вид записей %q", kind)
	}

	names := fieldNames(schema)
	query := fmt.Sprintf(`SELECT id, %s FROM %s WHERE user_id = $1`,
		strings.Join(names, ", "), schema.Table)
	args := []any{userID}

	if schema.DateField != "" {
		if r.From != nil {
			args = append(args, *r.From)
			query += fmt.Sprintf(" AND %s >= $%d", schema.DateField, len(args))
		}
		if r.To != nil {
			args = append(args, *r.To)
			query += fmt.Sprintf(" AND %s <= $%d", schema.DateField, len(args))
		}
	}
	query += " ORDER BY " + schema.OrderBy

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки %s: %v", schema.Table, err)
	}
	defer rows.Close()

	var out []transfer.Row
	for rows.Next() {
		row, err := scanRow(schema, rows)
		if err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ошибка чтения %s: %v", schema.Table, err)
	}
	return out, nil
}

func (s *RecordStore) AccountIDs(ctx context.Context, userID int) (map[int]struct{}, error) {
	rows, err := s.pool.Query(ctx, `SELECT id FROM accounts WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка выборки счетов: %v", err)
	}
	defer rows.Close()

	ids := map[int]struct{}{}
	for rows.Next() {
		var id int
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids[id] = struct{}{}
	}
	return ids, rows.Err()
}

func (s *RecordStore) BulkInsert(ctx context.Context, kind transfer.Kind, userID int, rows []transfer.Row) (int, error) {
	schema, ok := transfer.SchemaFor(kind)
	if !ok {
		return 0, fmt.Errorf("неизвестный вид записей %q", kind)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	n, err := copyRows(ctx, tx, schema, userID, rows)
	if err != nil {
		return 0, err
	}
	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return n, nil
}

func (s *RecordStore) ReplaceAll(ctx context.Context, userID int, data map[transfer.Kind][]transfer.Row) (map[transfer.Kind]int, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("ошибка открытия транзакции: %v", err)
	}
	defer tx.Rollback(ctx)

	// Удаление: сначала виды, ссылающиеся на счета, счета последними.
	schemas := transfer.Schemas()
	for i := len(schemas) - 1; i >= 0; i-- {
		if _, err := tx.Exec(ctx, fmt.Sprintf(`DELETE FROM %s WHERE user_id = $1`, schemas[i].Table), userID); err != nil {
			return nil, fmt.Errorf("ошибка очистки %s: %v", schemas[i].Table, err)
		}
	}

	// Вставка в прямом порядке: счета первыми.
	counts := map[transfer.Kind]int{}
	for _, schema := range schemas {
		n, err := copyRows(ctx, tx, schema, userID, data[schema.Kind])
		if err != nil {
			return nil, err
		}
		counts[schema.Kind] = n
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("ошибка фиксации транзакции: %v", err)
	}
	return counts, nil
}

func copyRows(ctx context.Context, tx pgx.Tx, schema transfer.Schema, userID int, rows []transfer.Row) (int, error) {
	if len(rows) == 0 {
		return 0, nil
	}

	names := fieldNames(schema)
	columns := append([]string{"user_id"}, names...)

	n, err := tx.CopyFrom(ctx, pgx.Identifier{schema.Table}, columns,
		pgx.CopyFromSlice(len(rows), func(i int) ([]any, error) {
			values := make([]any, 0, len(columns))
			values = append(values, userID)
			for _, name := range names {
				v, ok := rows[i][name]
				if !ok {
					values = append(values, nil)
					continue
				}
				values = append(values, v)
			}
			return values, nil
		}))
	if err != nil {
		return 0, fmt.Errorf("ошибка массовой вставки в %s: %v", schema.Table, err)
	}
	return int(n), nil
}

func fieldNames(schema transfer.Schema) []string {
	names := make([]string, len(schema.Fields))
	for i, f := range schema.Fields {
		names[i] = f.Name
	}
	return names
}

// scanRow читает одну строку выборки в нормализованный вид; NULL-поля
// в строку не попадают.
func scanRow(schema transfer.Schema, rows pgx.Rows) (transfer.Row, error) {
	dests := make([]any, 0, len(schema.Fields)+1)
	var id int
	dests = append(dests, &id)

	type slot struct {
		field transfer.Field
		dec   *decimal.NullDecimal
		date  **time.Time
		str   **string
		num   **int
	}
	slots := make([]slot, len(schema.Fields))

	for i, f := range schema.Fields {
		slots[i].field = f
		switch f.Type {
		case transfer.FieldDecimal:
			slots[i].dec = &decimal.NullDecimal{}
			dests = append(dests, slots[i].dec)
		case transfer.FieldDate:
			var t *time.Time
			slots[i].date = &t
			dests = append(dests, &t)
		case transfer.FieldInt:
			var n *int
			slots[i].num = &n
			dests = append(dests, &n)
		default:
			var s *string
			slots[i].str = &s
			dests = append(dests, &s)
		}
	}

	if err := rows.Scan(dests...); err != nil {
		return nil, fmt.Errorf("ошибка чтения строки %s: %v", schema.Table, err)
	}

	row := transfer.Row{"id": id}
	for _, sl := range slots {
		switch {
		case sl.dec != nil:
			if sl.dec.Valid {
				row[sl.field.Name] = sl.dec.Decimal
			}
		case sl.date != nil:
			if *sl.date != nil {
				row[sl.field.Name] = **sl.date
			}
		case sl.num != nil:
			if *sl.num != nil {
				row[sl.field.Name] = **sl.num
			}
		case sl.str != nil:
			if *sl.str != nil {
				row[sl.field.Name] = **sl.str
			}
		}
	}
	return row, nil
}
