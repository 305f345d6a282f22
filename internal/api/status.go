package api

import (
	"github.com/gin-gonic/gin"

	"sheetmatcher/internal/model"
)

// GetStatus 获取系统状态
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	h.uploadsMu.RLock()
	activeUploads := len(h.uploads)
	h.uploadsMu.RUnlock()

	summary := &model.RunSummary{}
	if h.store != nil {
		if s, err := h.store.MatchLogSummary(); err == nil {
			summary = s
		}
	}

	success(c, gin.H{
		"service":       "sheetmatcher",
		"activeUploads": activeUploads,
		"runs":          summary,
	})
}
