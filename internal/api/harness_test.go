package api

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"

	"sheetmatcher/internal/config"
	"sheetmatcher/internal/store"
)

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func newTestServer(t *testing.T, cfg *config.AppConfig) (*gin.Engine, *store.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	st, err := store.New(filepath.Join(t.TempDir(), "sheetmatcher.db"))
	if err != nil {
		t.Fatalf("init store: %v", err)
	}
	t.Cleanup(func() { _ = st.Close() })

	if cfg == nil {
		cfg = config.DefaultConfig()
	}

	h := NewHandler(cfg, st)
	r := gin.New()
	api := r.Group("/api")
	h.RegisterRoutes(api)
	return r, st
}

func buildWorkbookBytes(t *testing.T, sheets map[string][][]string) []byte {
	t.Helper()

	wb := excelize.NewFile()
	defaultSheet := wb.GetSheetName(wb.GetActiveSheetIndex())

	for name, rows := range sheets {
		wb.NewSheet(name)
		for i, cells := range rows {
			row := make([]interface{}, 0, len(cells))
			for _, c := range cells {
				row = append(row, c)
			}
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			if err != nil {
				t.Fatalf("CoordinatesToCellName: %v", err)
			}
			if err := wb.SetSheetRow(name, cell, &row); err != nil {
				t.Fatalf("SetSheetRow %s failed: %v", name, err)
			}
		}
	}

	if defaultSheet != "" {
		_ = wb.DeleteSheet(defaultSheet)
	}

	var buf bytes.Buffer
	if err := wb.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	if err := wb.Close(); err != nil {
		t.Fatalf("close workbook: %v", err)
	}
	return buf.Bytes()
}

// matchWorkbookBytes 标准测试工作簿：NOC 三行映射 + Rec 四行目标
func matchWorkbookBytes(t *testing.T) []byte {
	t.Helper()
	return buildWorkbookBytes(t, map[string][][]string{
		"NOC": {
			{"order_id", "Product Name"},
			{"A1", "Widget"},
			{"A2", "Gadget"},
			{"A1", "WidgetV2"},
		},
		"Rec": {
			{"order_id", "qty"},
			{"A1", "1"},
			{"A2", "2"},
			{"A9", "3"},
			{"", "4"},
		},
	})
}

func postMultipart(t *testing.T, r *gin.Engine, url, filename string, content []byte) *httptest.ResponseRecorder {
	t.Helper()

	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fw, err := mw.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := fw.Write(content); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := mw.Close(); err != nil {
		t.Fatalf("close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, url, &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func doJSON(t *testing.T, r *gin.Engine, method, url string) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	req := httptest.NewRequest(method, url, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	return w, env
}

func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()

	var env envelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("decode envelope: %v body=%s", err, w.Body.String())
	}
	return env
}

// uploadFile 上传工作簿并返回 fileId
func uploadFile(t *testing.T, r *gin.Engine, filename string, content []byte) string {
	t.Helper()

	w := postMultipart(t, r, "/api/upload", filename, content)
	if w.Code != http.StatusOK {
		t.Fatalf("upload status=%d body=%s", w.Code, w.Body.String())
	}
	env := decodeEnvelope(t, w)
	if env.Code != 0 {
		t.Fatalf("upload code=%d message=%s", env.Code, env.Message)
	}

	var data struct {
		FileID string `json:"fileId"`
	}
	if err := json.Unmarshal(env.Data, &data); err != nil {
		t.Fatalf("decode upload data: %v", err)
	}
	if data.FileID == "" {
		t.Fatal("fileId empty")
	}
	return data.FileID
}
