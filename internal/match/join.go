package match

import (
	"strings"

	"sheetmatcher/internal/model"
)

// BuildLookup 从查找表构建 键->值 映射
// 键取单元格修剪首尾空白后的值，空键整行跳过；
// 同一个键出现多次时后写覆盖先写，与按行顺序扫描一致。
func BuildLookup(table *model.Table, keyCol, valueCol string) (map[string]string, error) {
	if !table.HasColumn(keyCol) {
		return nil, processingf("build lookup map", "key column %q not found in lookup sheet", keyCol)
	}
	if !table.HasColumn(valueCol) {
		return nil, processingf("build lookup map", "value column %q not found in lookup sheet", valueCol)
	}
	idx := table.ColumnIndex()
	keyIdx, valueIdx := idx[keyCol], idx[valueCol]

	lookup := make(map[string]string, len(table.Rows))
	for _, row := range table.Rows {
		key := strings.TrimSpace(cellAt(row, keyIdx))
		if key == "" {
			continue
		}
		lookup[key] = cellAt(row, valueIdx)
	}
	return lookup, nil
}

// Enrich 按键列把映射值写入目标表的输出列，返回补全后的副本和计数
// 目标表本体不被修改；输出列不存在时追加，已存在时保留原值，仅命中行被覆盖。
// 命中数统计的是补全后输出列里非空白的行，包含未被覆盖的既有值。
func Enrich(target *model.Table, keyCol, outputCol string, lookup map[string]string) (*model.Table, model.MatchStats, error) {
	if outputCol == "" {
		return nil, model.MatchStats{}, processingf("apply join", "output column name is empty")
	}

	enriched := target.Clone()
	enriched.Normalize()

	if !enriched.HasColumn(keyCol) {
		return nil, model.MatchStats{}, processingf("apply join", "key column %q not found in target sheet", keyCol)
	}
	keyIdx := enriched.ColumnIndex()[keyCol]
	outIdx := enriched.EnsureColumn(outputCol)

	for _, row := range enriched.Rows {
		key := strings.TrimSpace(row[keyIdx])
		if key == "" {
			continue
		}
		if value, ok := lookup[key]; ok {
			row[outIdx] = value
		}
	}

	stats := model.MatchStats{TotalRows: enriched.RowCount()}
	for _, row := range enriched.Rows {
		if strings.TrimSpace(row[outIdx]) != "" {
			stats.MatchedRows++
		}
	}
	return enriched, stats, nil
}

func cellAt(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return row[idx]
}
