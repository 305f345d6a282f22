package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// ListHistory 列出最近的匹配运行记录
// GET /api/history?limit=20
func (h *Handler) ListHistory(c *gin.Context) {
	if h.store == nil {
		errorResponse(c, 5001, "运行历史不可用")
		return
	}

	limit := 20
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}

	logs, err := h.store.ListRecentMatchLogs(limit)
	if err != nil {
		errorResponse(c, 5001, "查询运行历史失败")
		return
	}

	success(c, gin.H{
		"logs": logs,
	})
}
