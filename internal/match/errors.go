package match

import (
	"fmt"
	"runtime/debug"
	"strings"

	"sheetmatcher/internal/model"
)

// MissingSheetError 工作簿里缺少必需角色的工作表
// 同时携带缺失角色和全部 sheet 名，调用方能直接告诉用户差了什么、现有什么。
type MissingSheetError struct {
	MissingRoles []model.SheetRole
	SheetNames   []string
}

// RoleLabels 缺失角色的展示标识列表
func (e *MissingSheetError) RoleLabels() []string {
	labels := make([]string, 0, len(e.MissingRoles))
	for _, role := range e.MissingRoles {
		labels = append(labels, role.Label())
	}
	return labels
}

func (e *MissingSheetError) Error() string {
	return fmt.Sprintf("missing required sheets: %s (sheets present: %s)",
		strings.Join(e.RoleLabels(), ", "), strings.Join(e.SheetNames, ", "))
}

// ProcessingError 构建映射或执行补全阶段的意外失败
// 整个流程按全有或全无处理，该错误出现时不产出任何部分结果。
type ProcessingError struct {
	Op    string
	Err   error
	Trace string
}

// NewProcessingError 包装底层错误并捕获当前调用栈
func NewProcessingError(op string, err error) *ProcessingError {
	return &ProcessingError{
		Op:    op,
		Err:   err,
		Trace: string(debug.Stack()),
	}
}

func processingf(op, format string, args ...interface{}) *ProcessingError {
	return NewProcessingError(op, fmt.Errorf(format, args...))
}

func (e *ProcessingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("processing failed at %s", e.Op)
	}
	return fmt.Sprintf("processing failed at %s: %v", e.Op, e.Err)
}

func (e *ProcessingError) Unwrap() error {
	return e.Err
}
