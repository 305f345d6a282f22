package match

import "sheetmatcher/internal/model"

// keyColumnSpellings 键列的已知写法，按优先级排列，区分大小写
var keyColumnSpellings = []string{"order_id", "Order ID", "OrderID", "orderid", "Order Id"}

// valueColumnSpellings 值列的已知写法，按优先级排列，区分大小写
var valueColumnSpellings = []string{"Product Name", "product_name", "ProductName", "ITEM NAME", "Item Name"}

// fallbackColumnIndex 角色对应的兜底列位：键列取第一列，值列取第二列
var fallbackColumnIndex = map[model.ColumnRole]int{
	model.RoleKeyColumn:   0,
	model.RoleValueColumn: 1,
}

// ResolveColumn 在表头中识别指定角色的列
// 先按写法列表的优先级做精确匹配（同一写法在表头多次出现时取第一处），
// 全部落空则按列位兜底并标记 Fallback；表头太短无法兜底时 Resolved 为 false。
func ResolveColumn(columns []string, role model.ColumnRole) model.ColumnResolution {
	resolution := model.ColumnResolution{Role: role}

	for _, spelling := range spellingsFor(role) {
		for _, col := range columns {
			if col == spelling {
				resolution.Column = col
				resolution.Resolved = true
				return resolution
			}
		}
	}

	idx := fallbackColumnIndex[role]
	if idx < len(columns) {
		resolution.Column = columns[idx]
		resolution.Fallback = true
		resolution.Resolved = true
	}
	return resolution
}

func spellingsFor(role model.ColumnRole) []string {
	if role == model.RoleValueColumn {
		return valueColumnSpellings
	}
	return keyColumnSpellings
}
