package reports

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/seta-app/seta-api/internal/transfer"
	"github.com/seta-app/seta-api/models"
)

// Table — промежуточная табличная форма для всех кодеков: упорядоченный
// список колонок и строки уже отформатированных текстовых значений.
type Table struct {
	Kind    transfer.Kind
	Title   string
	Columns []string
	Rows    [][]string
}

// Поддерживаемые форматы выгрузки отчета.
const (
	FormatCSV   = "csv"
	FormatExcel = "excel"
	FormatPDF   = "pdf"
)

// Generate строит отчет по запрошенным видам записей за период.
// Формат и список видов проверяются до первого обращения к хранилищу;
// пустая выборка — ошибка, а не пустой файл.
func Generate(ctx context.Context, st transfer.Store, userID int, spec models.ReportSpec) (*models.ReportArtifact, error) {
	switch spec.OutputFormat {
	case FormatCSV, FormatExcel, FormatPDF:
	default:
		return nil, &transfer.UnsupportedFormatError{Format: spec.OutputFormat}
	}

	var kinds []transfer.Kind
	seen := map[transfer.Kind]bool{}
	for _, name := range spec.DataTypes {
		kind, ok := transfer.ResolveKind(name)
		if !ok || seen[kind] {
			continue
		}
		seen[kind] = true
		kinds = append(kinds, kind)
	}
	if len(kinds) == 0 {
		return nil, &transfer.ValidationError{Reason: "не указан ни один известный вид записей"}
	}

	dates, err := parseRange(spec.StartDate, spec.EndDate)
	if err != nil {
		return nil, err
	}

	exists, err := st.UserExists(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("ошибка проверки пользователя: %v", err)
	}
	if !exists {
		return nil, &transfer.NotFoundError{What: fmt.Sprintf("пользователя с ID %d", userID)}
	}

	var tables []Table
	total := 0
	for _, kind := range kinds {
		schema, _ := transfer.SchemaFor(kind)

		rows, err := st.List(ctx, kind, userID, dates)
		if err != nil {
			return nil, fmt.Errorf("ошибка выборки %s: %v", kind, err)
		}
		// В отчете строки идут по возрастанию идентификатора.
		sort.Slice(rows, func(i, j int) bool {
			a, _ := rows[i]["id"].(int)
			b, _ := rows[j]["id"].(int)
			return a < b
		})

		columns := projectColumns(schema, spec.Columns[string(kind)], spec.Columns[shortName(kind)])
		table := Table{Kind: kind, Title: schema.Title, Columns: columns}
		for _, row := range rows {
			cells := make([]string, len(columns))
			for i, col := range columns {
				cells[i] = transfer.FormatCell(row[col])
			}
			table.Rows = append(table.Rows, cells)
		}
		total += len(table.Rows)
		tables = append(tables, table)
	}

	if total == 0 {
		return nil, &transfer.NotFoundError{What: "данных по запрошенным видам и периоду"}
	}

	data, mime, ext, err := encode(spec.OutputFormat, tables)
	if err != nil {
		return nil, fmt.Errorf("ошибка сборки отчета: %v", err)
	}

	return &models.ReportArtifact{
		Format:   spec.OutputFormat,
		Filename: fmt.Sprintf("seta_custom_report_%d_%s.%s", userID, time.Now().Format("20060102_150405"), ext),
		MIME:     mime,
		Data:     data,
	}, nil
}

func encode(format string, tables []Table) (data []byte, mime, ext string, err error) {
	switch format {
	case FormatCSV:
		data, err = renderCSV(tables)
		return data, "text/csv", "csv", err
	case FormatExcel:
		data, err = renderExcel(tables)
		return data, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", "xlsx", err
	default:
		data, err = renderPDF(tables)
		return data, "application/pdf", "pdf", err
	}
}

// projectColumns оставляет из запрошенных колонок существующие в схеме;
// если валидных не осталось, берется набор колонок вида по умолчанию.
func projectColumns(schema transfer.Schema, requested ...[]string) []string {
	known := map[string]bool{}
	for _, f := range schema.Fields {
		known[f.Name] = true
	}
	for _, req := range requested {
		var valid []string
		for _, col := range req {
			if known[col] {
				valid = append(valid, col)
			}
		}
		if len(valid) > 0 {
			return valid
		}
	}
	return schema.DefaultColumns
}

// shortName — синоним вида в запросах клиента.
func shortName(kind transfer.Kind) string {
	if kind == transfer.KindRecurring {
		return "recurring"
	}
	return string(kind)
}

func parseRange(start, end *string) (transfer.DateRange, error) {
	var r transfer.DateRange
	if start != nil && *start != "" {
		t, err := time.Parse(transfer.DateLayout, *start)
		if err != nil {
			return r, &transfer.ValidationError{Reason: fmt.Sprintf("некорректная начальная дата %q", *start)}
		}
		r.From = &t
	}
	if end != nil && *end != "" {
		t, err := time.Parse(transfer.DateLayout, *end)
		if err != nil {
			return r, &transfer.ValidationError{Reason: fmt.Sprintf("некорректная конечная дата %q", *end)}
		}
		r.To = &t
	}
	return r, nil
}
