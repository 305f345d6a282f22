package api

import (
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"

	"sheetmatcher/internal/config"
	"sheetmatcher/internal/excel"
	"sheetmatcher/internal/processor"
	"sheetmatcher/internal/store"
)

// Handler API 处理器
type Handler struct {
	cfg         *config.AppConfig
	store       *store.Store
	coordinator *processor.Coordinator

	// 上传文件缓存：fileId -> 已加载的工作簿
	parsers   map[string]*excel.Parser
	parsersMu sync.RWMutex

	uploads   map[string]*uploadedFile
	uploadsMu sync.RWMutex

	downloads *resultDownloadStore
}

type uploadedFile struct {
	FileName string
	FileSize int64
	FileHash string
}

// NewHandler 创建 API 处理器
func NewHandler(cfg *config.AppConfig, st *store.Store) *Handler {
	return &Handler{
		cfg:         cfg,
		store:       st,
		coordinator: processor.NewCoordinator(st, cfg),
		parsers:     make(map[string]*excel.Parser),
		uploads:     make(map[string]*uploadedFile),
		downloads:   newResultDownloadStore(),
	}
}

// RegisterRoutes 注册 API 路由
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 系统状态
	router.GET("/status", h.GetStatus)

	// 上传与预览
	router.POST("/upload", h.UploadFile)
	router.GET("/files/:fileId/preview", h.GetSheetPreview)

	// 匹配与下载
	router.POST("/files/:fileId/process", h.ProcessFile)
	router.GET("/download/:token", h.DownloadResult)

	// 运行历史
	router.GET("/history", h.ListHistory)
}

// Response 通用响应
type Response struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

func success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    0,
		Message: "success",
		Data:    data,
	})
}

func errorResponse(c *gin.Context, code int, message string) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
	})
}

// errorData 带附加数据的错误响应，调用方能拿到缺失角色、失败堆栈等细节
func errorData(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(http.StatusOK, Response{
		Code:    code,
		Message: message,
		Data:    data,
	})
}

func (h *Handler) lookupParser(fileID string) (*excel.Parser, bool) {
	h.parsersMu.RLock()
	defer h.parsersMu.RUnlock()
	p, ok := h.parsers[fileID]
	return p, ok
}

func (h *Handler) lookupUpload(fileID string) (*uploadedFile, bool) {
	h.uploadsMu.RLock()
	defer h.uploadsMu.RUnlock()
	up, ok := h.uploads[fileID]
	return up, ok
}
