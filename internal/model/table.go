package model

import "fmt"

// Table 从单个工作表解码出的二维表格
// 约束：Columns 保持表头原始顺序且列名唯一；Normalize 之后每行与列集合等长。
type Table struct {
	Columns []string
	Rows    [][]string
}

// RowCount 数据行数（不含表头）
func (t *Table) RowCount() int {
	return len(t.Rows)
}

// ColumnIndex 构建列名到列下标的映射
func (t *Table) ColumnIndex() map[string]int {
	idx := make(map[string]int, len(t.Columns))
	for i, col := range t.Columns {
		idx[col] = i
	}
	return idx
}

// HasColumn 判断列是否存在
func (t *Table) HasColumn(name string) bool {
	for _, col := range t.Columns {
		if col == name {
			return true
		}
	}
	return false
}

// Normalize 对齐行与列集合：短行补空串哨兵；数据行比表头宽时
// 按列位补发 "Unnamed: N" 列名，表头之外的单元格不丢。
// 空白与缺失统一归一为 ""，后续查找不会落在未定义值上。
func (t *Table) Normalize() {
	width := len(t.Columns)
	for _, row := range t.Rows {
		if len(row) > width {
			width = len(row)
		}
	}
	for i := len(t.Columns); i < width; i++ {
		t.Columns = append(t.Columns, fmt.Sprintf("Unnamed: %d", i))
	}

	for i, row := range t.Rows {
		if len(row) == width {
			continue
		}
		padded := make([]string, width)
		copy(padded, row)
		t.Rows[i] = padded
	}
}

// Clone 深拷贝表格，调用方可安全修改副本
func (t *Table) Clone() *Table {
	cols := make([]string, len(t.Columns))
	copy(cols, t.Columns)

	rows := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		r := make([]string, len(row))
		copy(r, row)
		rows[i] = r
	}

	return &Table{Columns: cols, Rows: rows}
}

// EnsureColumn 确保列存在并返回其下标；不存在时在末尾追加全空列，
// 已存在时保留现有单元格值。
func (t *Table) EnsureColumn(name string) int {
	for i, col := range t.Columns {
		if col == name {
			return i
		}
	}

	t.Columns = append(t.Columns, name)
	for i, row := range t.Rows {
		t.Rows[i] = append(row, "")
	}
	return len(t.Columns) - 1
}
