package models

import "time"

// SnapshotMeta — метаданные выгрузки всех данных пользователя.
type SnapshotMeta struct {
	Version    string    `json:"version"`
	ExportedAt time.Time `json:"exported_at"`
	UserID     int       `json:"user_id"`
}

const SnapshotVersion = "1.0"

// ImportOutcome — сводка по операции импорта: сколько записей принято,
// какие позиции входа пропущены и почему.
type ImportOutcome struct {
	ImportedCount int            `json:"imported_count"`
	Imported      map[string]int `json:"imported,omitempty"`
	SkippedRows   []int          `json:"skipped_rows"`
	Errors        []string       `json:"errors"`
}

func NewImportOutcome() *ImportOutcome {
	return &ImportOutcome{
		Imported:    map[string]int{},
		SkippedRows: []int{},
		Errors:      []string{},
	}
}

func (o *ImportOutcome) AddImported(kind string, n int) {
	o.Imported[kind] += n
	o.ImportedCount += n
}

func (o *ImportOutcome) Skip(position int, message string) {
	o.SkippedRows = append(o.SkippedRows, position)
	o.Errors = append(o.Errors, message)
}
