package api

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"sheetmatcher/internal/excel"
	"sheetmatcher/internal/match"
	"sheetmatcher/internal/model"
	"sheetmatcher/internal/processor"
)

// 结果文件从生成到下载的有效期
const downloadTTL = 10 * time.Minute

// ProcessFile 对已上传的工作簿执行匹配并生成结果文件
func (h *Handler) ProcessFile(c *gin.Context) {
	fileID := c.Param("fileId")

	parser, ok := h.lookupParser(fileID)
	if !ok {
		errorResponse(c, 2001, "文件不存在或已过期")
		return
	}
	up, ok := h.lookupUpload(fileID)
	if !ok {
		errorResponse(c, 2001, "文件不存在或已过期")
		return
	}

	outcome, err := h.coordinator.ProcessParser(parser, processor.ProcessOptions{
		Filename: up.FileName,
		FileSize: up.FileSize,
		FileHash: up.FileHash,
	})
	if err != nil {
		h.renderProcessError(c, err)
		return
	}

	resultFile, err := excel.BuildResultFile(outcome.Enriched, h.cfg.Matcher.OutputSheet)
	if err != nil {
		errorResponse(c, 3002, "生成结果文件失败")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("sheetmatcher_result_%s.xlsx", uuid.New().String()))
	if err := resultFile.SaveAs(tmpPath); err != nil {
		_ = resultFile.Close()
		errorResponse(c, 3002, "保存结果文件失败")
		return
	}
	_ = resultFile.Close()

	downloadName := excel.ResultFilename(time.Now())
	token := h.downloads.put(tmpPath, downloadName, downloadTTL)

	success(c, gin.H{
		"filename": outcome.Filename,
		"sheets":   outcome.Sheets,
		"columns": gin.H{
			"lookupKey":   outcome.LookupKey,
			"lookupValue": outcome.LookupValue,
			"targetKey":   outcome.TargetKey,
			"output":      outcome.OutputColumn,
		},
		"stats": gin.H{
			"totalRows":   outcome.Stats.TotalRows,
			"matchedRows": outcome.Stats.MatchedRows,
			"matchRate":   outcome.Stats.RatePtr(),
		},
		"preview": gin.H{
			"columns": outcome.Enriched.Columns,
			"rows":    previewRows(outcome.Enriched, h.cfg.Matcher.PreviewRows),
		},
		"download": gin.H{
			"url":       "/api/download/" + token,
			"filename":  downloadName,
			"expiresAt": time.Now().Add(downloadTTL).Format(time.RFC3339),
		},
	})
}

// renderProcessError 按失败类别渲染错误响应
func (h *Handler) renderProcessError(c *gin.Context, err error) {
	var msErr *match.MissingSheetError
	if errors.As(err, &msErr) {
		errorData(c, 3001, "工作簿缺少必需的工作表", gin.H{
			"missingRoles": msErr.RoleLabels(),
			"sheetNames":   msErr.SheetNames,
		})
		return
	}

	var decodeErr *excel.FileDecodeError
	if errors.As(err, &decodeErr) {
		errorResponse(c, 1002, "文件解析失败: "+err.Error())
		return
	}

	var pErr *match.ProcessingError
	if errors.As(err, &pErr) {
		errorData(c, 3002, "处理失败: "+pErr.Error(), gin.H{
			"cause": pErr.Error(),
			"trace": pErr.Trace,
		})
		return
	}

	errorData(c, 3002, "处理失败: "+err.Error(), gin.H{
		"cause": err.Error(),
	})
}

func previewRows(table *model.Table, limit int) [][]string {
	if limit <= 0 || limit > len(table.Rows) {
		limit = len(table.Rows)
	}
	return table.Rows[:limit]
}
