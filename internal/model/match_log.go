package model

import "time"

// 匹配运行日志状态
const (
	MatchStatusProcessing = "processing"
	MatchStatusSuccess    = "success"
	MatchStatusFailed     = "failed"
)

// MatchLog 一次匹配运行的操作记录
// 只存元数据与计数，映射内容本身不落库。
type MatchLog struct {
	ID           int64      `json:"id"`
	Filename     string     `json:"filename"`
	FileSize     int64      `json:"fileSize"`
	FileHash     string     `json:"fileHash"`
	Status       string     `json:"status"`
	LookupSheet  string     `json:"lookupSheet"`
	TargetSheet  string     `json:"targetSheet"`
	TotalRows    int        `json:"totalRows"`
	MatchedRows  int        `json:"matchedRows"`
	MatchRate    *float64   `json:"matchRate"`
	ErrorMessage string     `json:"errorMessage"`
	CreatedAt    time.Time  `json:"createdAt"`
	CompletedAt  *time.Time `json:"completedAt"`
}

// RunSummary 运行情况汇总
type RunSummary struct {
	TotalRuns     int        `json:"totalRuns"`
	SucceededRuns int        `json:"succeededRuns"`
	FailedRuns    int        `json:"failedRuns"`
	LastRunAt     *time.Time `json:"lastRunAt"`
}
