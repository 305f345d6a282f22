package store

import (
	"database/sql"
	"fmt"
	"time"

	"sheetmatcher/internal/model"
)

// CreateMatchLog 创建匹配运行日志，返回 match_log_id
func (s *Store) CreateMatchLog(filename string, fileSize int64, fileHash string) (int64, error) {
	res, err := s.Exec(`
		INSERT INTO match_logs (filename, file_size, file_hash, status)
		VALUES (?, ?, ?, 'processing')
	`, filename, fileSize, fileHash)
	if err != nil {
		return 0, fmt.Errorf("failed to create match log: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("failed to get match log id: %w", err)
	}
	return id, nil
}

// CompleteMatchLog 记录一次成功运行的结果
func (s *Store) CompleteMatchLog(id int64, lookupSheet, targetSheet string, totalRows, matchedRows int, matchRate *float64) error {
	_, err := s.Exec(`
		UPDATE match_logs SET
			lookup_sheet = ?,
			target_sheet = ?,
			total_rows = ?,
			matched_rows = ?,
			match_rate = ?,
			status = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, lookupSheet, targetSheet, totalRows, matchedRows, matchRate, model.MatchStatusSuccess, id)
	if err != nil {
		return fmt.Errorf("failed to complete match log: %w", err)
	}
	return nil
}

// FailMatchLog 记录一次失败运行及原因
func (s *Store) FailMatchLog(id int64, errorMessage string) error {
	_, err := s.Exec(`
		UPDATE match_logs SET
			status = ?,
			error_message = ?,
			completed_at = CURRENT_TIMESTAMP
		WHERE id = ?
	`, model.MatchStatusFailed, errorMessage, id)
	if err != nil {
		return fmt.Errorf("failed to fail match log: %w", err)
	}
	return nil
}

// ListRecentMatchLogs 按创建时间倒序列出最近的运行记录
func (s *Store) ListRecentMatchLogs(limit int) ([]*model.MatchLog, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.Query(`
		SELECT id, filename, file_size, file_hash, status,
			lookup_sheet, target_sheet, total_rows, matched_rows, match_rate,
			error_message, created_at, completed_at
		FROM match_logs
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query match logs: %w", err)
	}
	defer rows.Close()

	var out []*model.MatchLog
	for rows.Next() {
		var it model.MatchLog
		var rate sql.NullFloat64
		var completedAt sql.NullTime
		if err := rows.Scan(
			&it.ID, &it.Filename, &it.FileSize, &it.FileHash, &it.Status,
			&it.LookupSheet, &it.TargetSheet, &it.TotalRows, &it.MatchedRows, &rate,
			&it.ErrorMessage, &it.CreatedAt, &completedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan match log: %w", err)
		}
		if rate.Valid {
			v := rate.Float64
			it.MatchRate = &v
		}
		if completedAt.Valid {
			t := completedAt.Time
			it.CompletedAt = &t
		}
		out = append(out, &it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate match logs: %w", err)
	}
	return out, nil
}

// MatchLogSummary 汇总运行计数与最近一次运行时间
func (s *Store) MatchLogSummary() (*model.RunSummary, error) {
	var total, succeeded, failed sql.NullInt64
	err := s.QueryRow(`
		SELECT COUNT(*),
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END),
			SUM(CASE WHEN status = ? THEN 1 ELSE 0 END)
		FROM match_logs
	`, model.MatchStatusSuccess, model.MatchStatusFailed).Scan(&total, &succeeded, &failed)
	if err != nil {
		return nil, fmt.Errorf("failed to summarize match logs: %w", err)
	}

	summary := &model.RunSummary{
		TotalRuns:     int(total.Int64),
		SucceededRuns: int(succeeded.Int64),
		FailedRuns:    int(failed.Int64),
	}

	var last time.Time
	err = s.QueryRow(`
		SELECT created_at FROM match_logs ORDER BY created_at DESC, id DESC LIMIT 1
	`).Scan(&last)
	switch {
	case err == sql.ErrNoRows:
		// 尚无运行记录
	case err != nil:
		return nil, fmt.Errorf("failed to read last run time: %w", err)
	default:
		summary.LastRunAt = &last
	}

	return summary, nil
}
