package excel

import (
	"errors"
	"io"

	"github.com/google/uuid"
	"github.com/xuri/excelize/v2"

	"sheetmatcher/internal/model"
)

// Parser Excel解析器，持有一个已加载的工作簿
type Parser struct {
	file   *excelize.File
	fileID string
}

// NewParser 创建解析器
func NewParser() *Parser {
	return &Parser{
		fileID: uuid.New().String(),
	}
}

// LoadFile 加载Excel文件
// 内容无法解码时返回 *FileDecodeError。
func (p *Parser) LoadFile(reader io.Reader) error {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return &FileDecodeError{Err: err}
	}
	p.file = file
	return nil
}

// GetFileID 获取文件ID
func (p *Parser) GetFileID() string {
	return p.fileID
}

// SheetNames 获取全部 sheet 名，保持工作簿内的顺序
func (p *Parser) SheetNames() ([]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}
	return p.file.GetSheetList(), nil
}

// GetSheets 获取工作表列表及行数概要
func (p *Parser) GetSheets() ([]model.SheetInfo, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	sheets := p.file.GetSheetList()
	result := make([]model.SheetInfo, 0, len(sheets))

	for _, name := range sheets {
		rows, err := p.file.GetRows(name)
		if err != nil {
			continue
		}
		result = append(result, model.SheetInfo{
			Name:     name,
			RowCount: len(rows),
		})
	}

	return result, nil
}

// GetColumns 获取列名
func (p *Parser) GetColumns(sheet string) ([]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, errors.New("empty sheet")
	}

	return rows[0], nil
}

// GetPreviewRows 获取预览行
func (p *Parser) GetPreviewRows(sheet string, limit int) ([][]string, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) <= 1 {
		return [][]string{}, nil
	}

	end := limit + 1
	if end > len(rows) {
		end = len(rows)
	}

	return rows[1:end], nil
}

// LoadTable 把指定 sheet 解码为表格：首行作表头，其余为数据行
// 没有表头行的 sheet 返回空表，由后续列识别环节决定怎么失败。
func (p *Parser) LoadTable(sheet string) (*model.Table, error) {
	if p.file == nil {
		return nil, errors.New("no file loaded")
	}

	rows, err := p.file.GetRows(sheet)
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return &model.Table{}, nil
	}

	table := &model.Table{
		Columns: rows[0],
		Rows:    rows[1:],
	}
	table.Normalize()
	return table, nil
}

// Close 关闭文件
func (p *Parser) Close() error {
	if p.file != nil {
		return p.file.Close()
	}
	return nil
}
