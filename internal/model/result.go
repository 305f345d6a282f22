package model

// SheetRole 工作表在匹配流程中的角色
type SheetRole string

const (
	// RoleLookup 查找表：提供 键->值 的映射来源
	RoleLookup SheetRole = "lookup"
	// RoleTarget 目标表：被补全的表
	RoleTarget SheetRole = "target"
)

// Label 角色对外展示的标识
func (r SheetRole) Label() string {
	switch r {
	case RoleLookup:
		return "NOC/NOV"
	case RoleTarget:
		return "REC"
	default:
		return string(r)
	}
}

// ColumnRole 列在匹配流程中的角色
type ColumnRole string

const (
	// RoleKeyColumn 键列：连接两张表的单元格值
	RoleKeyColumn ColumnRole = "key"
	// RoleValueColumn 值列：查找表中被带到目标表的内容
	RoleValueColumn ColumnRole = "value"
)

// SheetAssignment 工作表识别结果，保存实际的 sheet 名
type SheetAssignment struct {
	LookupSheet string `json:"lookupSheet"`
	TargetSheet string `json:"targetSheet"`
}

// ColumnResolution 单个列的识别结果
// Fallback 为 true 表示未命中任何已知写法、按固定列位兜底，属于降级模式。
type ColumnResolution struct {
	Role     ColumnRole `json:"role"`
	Column   string     `json:"column"`
	Fallback bool       `json:"fallback"`
	Resolved bool       `json:"resolved"`
}

// MatchStats 一次匹配的计数结果
// 命中率不落库存储，由 Rate 按需计算。
type MatchStats struct {
	TotalRows   int `json:"totalRows"`
	MatchedRows int `json:"matchedRows"`
}

// Rate 返回命中率百分比；目标表没有数据行时 ok 为 false，表示无意义
func (s MatchStats) Rate() (float64, bool) {
	if s.TotalRows == 0 {
		return 0, false
	}
	return float64(s.MatchedRows) * 100 / float64(s.TotalRows), true
}

// RatePtr 命中率的指针形式，无意义时为 nil，JSON 序列化成 null
func (s MatchStats) RatePtr() *float64 {
	rate, ok := s.Rate()
	if !ok {
		return nil
	}
	return &rate
}

// MatchOutcome 一次完整匹配流程的产物
type MatchOutcome struct {
	Filename     string           `json:"filename"`
	Sheets       SheetAssignment  `json:"sheets"`
	LookupKey    ColumnResolution `json:"lookupKey"`
	LookupValue  ColumnResolution `json:"lookupValue"`
	TargetKey    ColumnResolution `json:"targetKey"`
	OutputColumn string           `json:"outputColumn"`
	Stats        MatchStats       `json:"stats"`
	Enriched     *Table           `json:"-"`
}

// SheetInfo 工作表概要
type SheetInfo struct {
	Name     string `json:"name"`
	RowCount int    `json:"rowCount"`
}
