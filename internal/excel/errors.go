package excel

import "fmt"

// FileDecodeError 上传内容无法按 Excel 工作簿解码
// 与流程阶段的失败分开归类，调用方据此提示用户换文件而不是报系统错误。
type FileDecodeError struct {
	Err error
}

func (e *FileDecodeError) Error() string {
	return fmt.Sprintf("failed to decode excel workbook: %v", e.Err)
}

func (e *FileDecodeError) Unwrap() error {
	return e.Err
}
