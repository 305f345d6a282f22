package excel

import (
	"errors"
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"sheetmatcher/internal/model"
)

// BuildResultFile 把补全后的表格写成单 sheet 工作簿
// 首行为表头，数据从第二行开始，不写行号列。
func BuildResultFile(table *model.Table, sheetName string) (*excelize.File, error) {
	if table == nil {
		return nil, errors.New("table is nil")
	}
	if sheetName == "" {
		return nil, errors.New("sheet name is empty")
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("failed to rename sheet: %w", err)
	}

	if err := writeRow(f, sheetName, 1, table.Columns); err != nil {
		_ = f.Close()
		return nil, err
	}
	for i, row := range table.Rows {
		if err := writeRow(f, sheetName, i+2, row); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	f.SetActiveSheet(0)
	return f, nil
}

func writeRow(f *excelize.File, sheet string, rowNum int, cells []string) error {
	cell, err := excelize.CoordinatesToCellName(1, rowNum)
	if err != nil {
		return fmt.Errorf("failed to build cell name for row %d: %w", rowNum, err)
	}

	values := make([]interface{}, len(cells))
	for i, v := range cells {
		values[i] = v
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d: %w", rowNum, err)
	}
	return nil
}

// ResultFilename 生成带时间戳的结果文件名
func ResultFilename(now time.Time) string {
	return fmt.Sprintf("processed_sheets_%s.xlsx", now.Format("20060102_150405"))
}
