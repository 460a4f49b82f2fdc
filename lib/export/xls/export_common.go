package xlsexport

import "github.com/xuri/excelize/v2"

const fontFamily = "Calibri"

func setCell(f *excelize.File, sheet string, col, row int, value interface{}) error {
	cell, err := excelize.CoordinatesToCellName(col, row)
	if err != nil {
		return err
	}
	return f.SetCellValue(sheet, cell, value)
}

func styleRange(f *excelize.File, sheet string, colFrom, rowFrom, colTo, rowTo int, style *excelize.Style) error {
	styleID, err := f.NewStyle(style)
	if err != nil {
		return err
	}
	cellFirst, err := excelize.CoordinatesToCellName(colFrom, rowFrom)
	if err != nil {
		return err
	}
	cellLast, err := excelize.CoordinatesToCellName(colTo, rowTo)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, cellFirst, cellLast, styleID)
}

// writeHeader puts the bold header on the next row and returns that row
func writeHeader(f *excelize.File, sheet string, row int, headers []string) (int, error) {
	row++
	err := styleRange(f, sheet, 1, row, len(headers), row, &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "center"},
		Font:      &excelize.Font{Bold: true, Family: fontFamily, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"DDEBF7"}},
	})
	if err != nil {
		return row, err
	}
	lastCol, err := excelize.ColumnNumberToName(len(headers))
	if err != nil {
		return row, err
	}
	if err = f.SetColWidth(sheet, "A", lastCol, 22); err != nil {
		return row, err
	}
	for idx, value := range headers {
		if err = setCell(f, sheet, idx+1, row, value); err != nil {
			return row, err
		}
	}
	return row, nil
}

func styleData(f *excelize.File, sheet string, cols, rowFrom, rowTo int) error {
	return styleRange(f, sheet, 1, rowFrom, cols, rowTo, &excelize.Style{
		Alignment: &excelize.Alignment{Horizontal: "left", Vertical: "center", WrapText: true},
		Font:      &excelize.Font{Family: fontFamily, Size: 11},
	})
}
