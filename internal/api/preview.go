package api

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// GetSheetPreview 获取指定工作表的表头与预览行
func (h *Handler) GetSheetPreview(c *gin.Context) {
	fileID := c.Param("fileId")
	sheet := c.Query("sheet")

	parser, ok := h.lookupParser(fileID)
	if !ok {
		errorResponse(c, 2001, "文件不存在或已过期")
		return
	}

	columns, err := parser.GetColumns(sheet)
	if err != nil {
		errorResponse(c, 2001, "获取列信息失败")
		return
	}

	limit := h.cfg.Matcher.PreviewRows
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	previewRows, _ := parser.GetPreviewRows(sheet, limit)

	success(c, gin.H{
		"columns":     columns,
		"previewRows": previewRows,
	})
}
