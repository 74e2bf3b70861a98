package models

// ReportSpec — запрос произвольного отчета: какие виды записей включить,
// за какой период, какие колонки и в каком формате отдавать.
// Даты передаются строками YYYY-MM-DD, null означает "без ограничения".
type ReportSpec struct {
	DataTypes    []string            `json:"data_types"`
	StartDate    *string             `json:"start_date"`
	EndDate      *string             `json:"end_date"`
	Columns      map[string][]string `json:"columns,omitempty"`
	OutputFormat string              `json:"output_format"`
}

// ReportArtifact — готовый отчет: байты файла вместе с именем и MIME-типом.
// Никогда не сохраняется, живет только в ответе на запрос.
type ReportArtifact struct {
	Format   string
	Filename string
	MIME     string
	Data     []byte
}
