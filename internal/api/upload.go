package api

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"sheetmatcher/internal/excel"
	"sheetmatcher/internal/match"
)

// UploadFile 上传Excel文件
// 上传只做解码与角色识别预览，匹配在 process 时执行。
func (h *Handler) UploadFile(c *gin.Context) {
	file, header, err := c.Request.FormFile("file")
	if err != nil {
		errorResponse(c, 1001, "请上传文件")
		return
	}
	defer file.Close()

	if header.Size > h.cfg.MaxUploadBytes() {
		errorResponse(c, 1003, fmt.Sprintf("文件过大，最大支持%dMB", h.cfg.Upload.MaxSizeMB))
		return
	}

	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !h.cfg.ExtAllowed(ext) {
		errorResponse(c, 1002, "仅支持 "+strings.Join(h.cfg.Upload.AllowedExts, " 和 ")+" 格式")
		return
	}

	content, err := io.ReadAll(file)
	if err != nil {
		errorResponse(c, 1002, "读取文件失败")
		return
	}

	parser := excel.NewParser()
	if err := parser.LoadFile(bytes.NewReader(content)); err != nil {
		var decodeErr *excel.FileDecodeError
		if errors.As(err, &decodeErr) {
			errorResponse(c, 1002, "文件解析失败: "+err.Error())
			return
		}
		errorResponse(c, 1002, "文件解析失败")
		return
	}

	sheets, err := parser.GetSheets()
	if err != nil {
		errorResponse(c, 1002, "获取工作表失败")
		return
	}

	fileID := parser.GetFileID()
	hash := sha256.Sum256(content)

	// 缓存parser
	h.parsersMu.Lock()
	h.parsers[fileID] = parser
	h.parsersMu.Unlock()

	h.uploadsMu.Lock()
	h.uploads[fileID] = &uploadedFile{
		FileName: header.Filename,
		FileSize: header.Size,
		FileHash: hex.EncodeToString(hash[:]),
	}
	h.uploadsMu.Unlock()

	names := make([]string, 0, len(sheets))
	for _, s := range sheets {
		names = append(names, s.Name)
	}

	success(c, gin.H{
		"fileId":     fileID,
		"fileName":   header.Filename,
		"fileSize":   header.Size,
		"sheets":     sheets,
		"resolution": resolutionPreview(names),
	})
}

// resolutionPreview 上传阶段的角色识别预览
// 识别失败不阻断上传，缺失角色随响应返回，由调用方决定是否继续。
func resolutionPreview(names []string) gin.H {
	assignment, err := match.ResolveSheets(names)

	var msErr *match.MissingSheetError
	if errors.As(err, &msErr) {
		return gin.H{
			"lookupSheet":  "",
			"targetSheet":  "",
			"missingRoles": msErr.RoleLabels(),
		}
	}

	return gin.H{
		"lookupSheet":  assignment.LookupSheet,
		"targetSheet":  assignment.TargetSheet,
		"missingRoles": []string{},
	}
}
