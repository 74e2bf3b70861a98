package reports

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// renderExcel собирает книгу с отдельным листом на каждый запрошенный вид.
func renderExcel(tables []Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDE6F0"}},
	})
	if err != nil {
		return nil, err
	}

	for i, t := range tables {
		sheet := t.Title
		if i == 0 {
			// Первый лист переименовываем вместо создания нового.
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, err
			}
		} else {
			if _, err := f.NewSheet(sheet); err != nil {
				return nil, err
			}
		}

		header := make([]any, len(t.Columns))
		for j, col := range t.Columns {
			header[j] = col
		}
		if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
			return nil, err
		}
		endCol, err := excelize.ColumnNumberToName(len(t.Columns))
		if err != nil {
			return nil, err
		}
		if err := f.SetCellStyle(sheet, "A1", endCol+"1", headerStyle); err != nil {
			return nil, err
		}
		if err := f.SetPanes(sheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
			return nil, err
		}

		for r, row := range t.Rows {
			cells := make([]any, len(row))
			for j, v := range row {
				cells[j] = v
			}
			addr := fmt.Sprintf("A%d", r+2)
			if err := f.SetSheetRow(sheet, addr, &cells); err != nil {
				return nil, err
			}
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
