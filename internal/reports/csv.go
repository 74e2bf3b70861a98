package reports

import (
	"bytes"
	"encoding/csv"
)

// renderCSV пишет все таблицы одним потоком: общая шапка из объединения
// колонок плюс колонка data_source с видом записи в каждой строке.
func renderCSV(tables []Table) ([]byte, error) {
	header := []string{"data_source"}
	seen := map[string]bool{}
	for _, t := range tables {
		for _, col := range t.Columns {
			if !seen[col] {
				seen[col] = true
				header = append(header, col)
			}
		}
	}

	pos := map[string]int{}
	for i, col := range header {
		pos[col] = i
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(header); err != nil {
		return nil, err
	}

	for _, t := range tables {
		for _, row := range t.Rows {
			record := make([]string, len(header))
			record[0] = string(t.Kind)
			for i, col := range t.Columns {
				record[pos[col]] = row[i]
			}
			if err := w.Write(record); err != nil {
				return nil, err
			}
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
