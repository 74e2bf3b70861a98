package transfer

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind — один из шести видов записей пользователя. Значение совпадает
// с именем таблицы и с ключом вида в документе снапшота.
type Kind string

const (
	KindAccounts  Kind = "accounts"
	KindExpenses  Kind = "expenses"
	KindIncome    Kind = "income"
	KindRecurring Kind = "recurring_expenses"
	KindBudgets   Kind = "budgets"
	KindGoals     Kind = "goals"
)

const DateLayout = "2006-01-02"

// Row — запись одного вида в нормализованном виде: имя поля -> типизированное
// значение (decimal.Decimal, time.Time, string, int). Поля id/user_id/created_at
// присутствуют только у строк, прочитанных из хранилища.
type Row map[string]any

type FieldType int

const (
	FieldString FieldType = iota
	FieldDecimal
	FieldDate
	FieldEnum
	FieldInt
)

type Field struct {
	Name          string
	Type          FieldType
	Required      bool
	Positive      bool     // для денежных полей: строго больше нуля
	AllowNegative bool     // стартовый баланс счета может быть отрицательным
	Enum          []string // допустимые значения для FieldType == FieldEnum
	Default       string   // подставляется, когда поле не заполнено
}

// Schema — описание одного вида записей: набор полей, колонки отчета по
// умолчанию, основное поле даты и порядок выгрузки. Импортеры и генератор
// отчетов написаны один раз поверх этого описания.
type Schema struct {
	Kind           Kind
	Table          string
	Title          string
	Fields         []Field
	DefaultColumns []string
	DateField      string // пустая строка — вид не фильтруется по датам
	OrderBy        string // порядок выгрузки в снапшот
}

func frequencyEnum() []string {
	return []string{"daily", "weekly", "monthly", "quarterly", "yearly", "one_time"}
}

var schemas = []Schema{
	{
		Kind:  KindAccounts,
		Table: "accounts",
		Title: "Accounts",
		Fields: []Field{
			{Name: "name", Type: FieldString, Required: true},
			{Name: "account_type", Type: FieldString, Required: true},
			{Name: "starting_balance", Type: FieldDecimal, AllowNegative: true, Default: "0"},
			{Name: "balance_date", Type: FieldDate, Required: true},
			{Name: "currency", Type: FieldString, Default: "USD"},
		},
		DefaultColumns: []string{"name", "account_type", "starting_balance", "balance_date", "currency"},
		OrderBy:        "name ASC",
	},
	{
		Kind:  KindExpenses,
		Table: "expenses",
		Title: "Expenses",
		Fields: []Field{
			{Name: "amount", Type: FieldDecimal, Required: true, Positive: true},
			{Name: "date", Type: FieldDate, Required: true},
			{Name: "category_name", Type: FieldString, Required: true},
			{Name: "description", Type: FieldString},
			{Name: "account_id", Type: FieldInt},
		},
		DefaultColumns: []string{"date", "category_name", "amount", "description"},
		DateField:      "date",
		OrderBy:        "date DESC, id DESC",
	},
	{
		Kind:  KindIncome,
		Table: "income",
		Title: "Income",
		Fields: []Field{
			{Name: "amount", Type: FieldDecimal, Required: true, Positive: true},
			{Name: "date", Type: FieldDate, Required: true},
			{Name: "source", Type: FieldString, Required: true},
			{Name: "description", Type: FieldString},
			{Name: "account_id", Type: FieldInt},
		},
		DefaultColumns: []string{"date", "source", "amount", "description", "account_id"},
		DateField:      "date",
		OrderBy:        "date DESC, id DESC",
	},
	{
		Kind:  KindRecurring,
		Table: "recurring_expenses",
		Title: "Recurring Expenses",
		Fields: []Field{
			{Name: "name", Type: FieldString, Required: true},
			{Name: "amount", Type: FieldDecimal, Required: true, Positive: true},
			{Name: "category_name", Type: FieldString, Required: true},
			{Name: "frequency", Type: FieldEnum, Required: true, Enum: frequencyEnum()},
			{Name: "start_date", Type: FieldDate, Required: true},
			{Name: "end_date", Type: FieldDate},
			{Name: "description", Type: FieldString},
			{Name: "account_id", Type: FieldInt},
		},
		DefaultColumns: []string{"name", "category_name", "amount", "frequency", "start_date", "end_date", "account_id"},
		DateField:      "start_date",
		OrderBy:        "start_date DESC, id DESC",
	},
	{
		Kind:  KindBudgets,
		Table: "budgets",
		Title: "Budgets",
		Fields: []Field{
			{Name: "category_name", Type: FieldString, Required: true},
			{Name: "amount_limit", Type: FieldDecimal, Required: true, Positive: true},
			{Name: "period", Type: FieldEnum, Required: true, Enum: frequencyEnum()},
			{Name: "start_date", Type: FieldDate, Required: true},
			{Name: "end_date", Type: FieldDate},
		},
		DefaultColumns: []string{"category_name", "amount_limit", "period", "start_date", "end_date"},
		DateField:      "start_date",
		OrderBy:        "start_date DESC, id DESC",
	},
	{
		Kind:  KindGoals,
		Table: "goals",
		Title: "Goals",
		Fields: []Field{
			{Name: "name", Type: FieldString, Required: true},
			{Name: "target_amount", Type: FieldDecimal, Required: true, Positive: true},
			{Name: "current_amount", Type: FieldDecimal, Default: "0"},
			{Name: "target_date", Type: FieldDate},
		},
		DefaultColumns: []string{"name", "target_amount", "current_amount", "target_date"},
		DateField:      "target_date",
		OrderBy:        "target_date DESC NULLS LAST, id DESC",
	},
}

// Schemas возвращает описания всех видов в порядке восстановления:
// счета первыми, затем виды, которые могут на них ссылаться.
func Schemas() []Schema {
	return schemas
}

func SchemaFor(kind Kind) (Schema, bool) {
	for _, s := range schemas {
		if s.Kind == kind {
			return s, true
		}
	}
	return Schema{}, false
}

// ResolveKind переводит имя вида из запроса в Kind. Допускаются короткие
// синонимы, которыми пользуется клиент ("recurring" вместо "recurring_expenses").
func ResolveKind(name string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "accounts":
		return KindAccounts, true
	case "expenses":
		return KindExpenses, true
	case "income":
		return KindIncome, true
	case "recurring", "recurring_expenses":
		return KindRecurring, true
	case "budgets":
		return KindBudgets, true
	case "goals":
		return KindGoals, true
	}
	return "", false
}

// ValidateRow проверяет один входной элемент по схеме вида и возвращает
// нормализованную строку. Поля id, user_id и отметки времени игнорируются:
// идентификаторы назначает хранилище. Ошибки возвращаются списком, по одной
// на поле, и не прерывают обработку остальных элементов.
func (s Schema) ValidateRow(item map[string]any) (Row, []string) {
	row := Row{}
	var errs []string

	for _, f := range s.Fields {
		raw, ok := item[f.Name]
		if !ok || raw == nil {
			if f.Required {
				errs = append(errs, fmt.Sprintf("поле %q обязательно", f.Name))
			} else if f.Default != "" {
				row[f.Name] = defaultValue(f)
			}
			continue
		}

		switch f.Type {
		case FieldString:
			v := strings.TrimSpace(fmt.Sprintf("%v", raw))
			if v == "" {
				if f.Required {
					errs = append(errs, fmt.Sprintf("поле %q не должно быть пустым", f.Name))
				} else if f.Default != "" {
					row[f.Name] = f.Default
				}
				continue
			}
			row[f.Name] = v
		case FieldEnum:
			v := strings.ToLower(strings.TrimSpace(fmt.Sprintf("%v", raw)))
			if !contains(f.Enum, v) {
				errs = append(errs, fmt.Sprintf("поле %q: недопустимое значение %q", f.Name, v))
				continue
			}
			row[f.Name] = v
		case FieldDecimal:
			d, err := parseDecimal(raw)
			if err != nil {
				errs = append(errs, fmt.Sprintf("поле %q: %v", f.Name, err))
				continue
			}
			if f.Positive && !d.IsPositive() {
				errs = append(errs, fmt.Sprintf("поле %q должно быть положительным", f.Name))
				continue
			}
			if !f.AllowNegative && d.IsNegative() {
				errs = append(errs, fmt.Sprintf("поле %q не может быть отрицательным", f.Name))
				continue
			}
			row[f.Name] = d
		case FieldDate:
			t, err := parseDate(raw)
			if err != nil {
				errs = append(errs, fmt.Sprintf("поле %q: %v", f.Name, err))
				continue
			}
			row[f.Name] = t
		case FieldInt:
			n, err := parseInt(raw)
			if err != nil {
				errs = append(errs, fmt.Sprintf("поле %q: %v", f.Name, err))
				continue
			}
			row[f.Name] = n
		}
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return row, nil
}

func defaultValue(f Field) any {
	switch f.Type {
	case FieldDecimal:
		d, _ := decimal.NewFromString(f.Default)
		return d
	default:
		return f.Default
	}
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func parseDecimal(raw any) (decimal.Decimal, error) {
	switch v := raw.(type) {
	case decimal.Decimal:
		return v, nil
	case float64:
		return decimal.NewFromFloat(v), nil
	case string:
		d, err := decimal.NewFromString(strings.TrimSpace(v))
		if err != nil {
			return decimal.Decimal{}, fmt.Errorf("не число: %q", v)
		}
		return d, nil
	default:
		return decimal.Decimal{}, fmt.Errorf("не число: %v", raw)
	}
}

func parseDate(raw any) (time.Time, error) {
	switch v := raw.(type) {
	case time.Time:
		return v, nil
	case string:
		t, err := time.Parse(DateLayout, strings.TrimSpace(v))
		if err != nil {
			return time.Time{}, fmt.Errorf("дата должна быть в формате YYYY-MM-DD, получено %q", v)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("не дата: %v", raw)
	}
}

func parseInt(raw any) (int, error) {
	switch v := raw.(type) {
	case int:
		return v, nil
	case float64:
		n := int(v)
		if float64(n) != v {
			return 0, fmt.Errorf("не целое число: %v", v)
		}
		return n, nil
	case string:
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil {
			return 0, fmt.Errorf("не целое число: %q", v)
		}
		return n, nil
	default:
		return 0, fmt.Errorf("не целое число: %v", raw)
	}
}

// ScalarRow переводит строку в независимые от кодировки скаляры: даты и отметки
// времени — строками, деньги — десятичной строкой с двумя знаками. В таком виде
// запись попадает в документ снапшота.
func (s Schema) ScalarRow(row Row) map[string]any {
	out := map[string]any{}
	for k, v := range row {
		out[k] = scalar(v)
	}
	return out
}

func scalar(v any) any {
	switch t := v.(type) {
	case nil:
		return nil
	case decimal.Decimal:
		return t.StringFixed(2)
	case time.Time:
		if t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 {
			return t.Format(DateLayout)
		}
		return t.Format(time.RFC3339)
	case *time.Time:
		if t == nil {
			return nil
		}
		return scalar(*t)
	case *int:
		if t == nil {
			return nil
		}
		return *t
	default:
		return v
	}
}

// FormatCell — единое правило отображения значения в ячейке отчета:
// даты как YYYY-MM-DD, числа с двумя знаками, пустые значения — пустой текст.
func FormatCell(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case string:
		return t
	case decimal.Decimal:
		return t.StringFixed(2)
	case time.Time:
		return t.Format(DateLayout)
	case *time.Time:
		if t == nil {
			return ""
		}
		return t.Format(DateLayout)
	case int:
		return fmt.Sprintf("%d", t)
	case *int:
		if t == nil {
			return ""
		}
		return fmt.Sprintf("%d", *t)
	default:
		return fmt.Sprintf("%v", t)
	}
}
