package processor

import (
	"fmt"
	"io"
	"log"

	"sheetmatcher/internal/config"
	"sheetmatcher/internal/excel"
	"sheetmatcher/internal/match"
	"sheetmatcher/internal/model"
	"sheetmatcher/internal/store"
)

// Coordinator 匹配协调器，串起 识别->取表->建映射->补全 全流程
// 流程按全有或全无执行：任一环节失败不产出结果，只留运行日志。
type Coordinator struct {
	store *store.Store // 可为 nil，此时不记录运行日志
	cfg   *config.AppConfig
}

// NewCoordinator 创建匹配协调器
func NewCoordinator(st *store.Store, cfg *config.AppConfig) *Coordinator {
	return &Coordinator{
		store: st,
		cfg:   cfg,
	}
}

// ProcessOptions 单次匹配运行的选项
type ProcessOptions struct {
	Filename string
	FileSize int64
	FileHash string
}

// ProcessReader 从字节流加载工作簿并执行匹配
// 解码失败同样计为一次失败运行，坏文件在历史记录里可见。
func (c *Coordinator) ProcessReader(r io.Reader, opts ProcessOptions) (*model.MatchOutcome, error) {
	p := excel.NewParser()
	if err := p.LoadFile(r); err != nil {
		logID := c.beginLog(opts)
		c.failLog(logID, err)
		return nil, err
	}
	defer p.Close()

	return c.ProcessParser(p, opts)
}

// ProcessParser 对已加载的工作簿执行匹配
func (c *Coordinator) ProcessParser(p *excel.Parser, opts ProcessOptions) (*model.MatchOutcome, error) {
	logID := c.beginLog(opts)

	outcome, err := c.run(p, opts)
	if err != nil {
		c.failLog(logID, err)
		return nil, err
	}

	c.completeLog(logID, outcome)
	return outcome, nil
}

// run 执行匹配流水线
// panic 一律收敛为 *match.ProcessingError，宿主进程不会被单次运行打垮。
func (c *Coordinator) run(p *excel.Parser, opts ProcessOptions) (outcome *model.MatchOutcome, err error) {
	defer func() {
		if r := recover(); r != nil {
			outcome = nil
			err = match.NewProcessingError("match pipeline", fmt.Errorf("panic: %v", r))
		}
	}()

	names, err := p.SheetNames()
	if err != nil {
		return nil, match.NewProcessingError("list sheets", err)
	}

	assignment, err := match.ResolveSheets(names)
	if err != nil {
		return nil, err
	}

	lookupTable, err := p.LoadTable(assignment.LookupSheet)
	if err != nil {
		return nil, match.NewProcessingError("load lookup sheet", err)
	}
	targetTable, err := p.LoadTable(assignment.TargetSheet)
	if err != nil {
		return nil, match.NewProcessingError("load target sheet", err)
	}

	lookupKey, err := c.resolveColumn(lookupTable, model.RoleKeyColumn, assignment.LookupSheet)
	if err != nil {
		return nil, err
	}
	lookupValue, err := c.resolveColumn(lookupTable, model.RoleValueColumn, assignment.LookupSheet)
	if err != nil {
		return nil, err
	}
	targetKey, err := c.resolveColumn(targetTable, model.RoleKeyColumn, assignment.TargetSheet)
	if err != nil {
		return nil, err
	}

	lookup, err := match.BuildLookup(lookupTable, lookupKey.Column, lookupValue.Column)
	if err != nil {
		return nil, err
	}

	enriched, stats, err := match.Enrich(targetTable, targetKey.Column, c.cfg.Matcher.OutputColumn, lookup)
	if err != nil {
		return nil, err
	}

	return &model.MatchOutcome{
		Filename:     opts.Filename,
		Sheets:       assignment,
		LookupKey:    lookupKey,
		LookupValue:  lookupValue,
		TargetKey:    targetKey,
		OutputColumn: c.cfg.Matcher.OutputColumn,
		Stats:        stats,
		Enriched:     enriched,
	}, nil
}

// resolveColumn 识别单个列并对降级和失败做统一处理
func (c *Coordinator) resolveColumn(table *model.Table, role model.ColumnRole, sheet string) (model.ColumnResolution, error) {
	resolution := match.ResolveColumn(table.Columns, role)
	if !resolution.Resolved {
		return resolution, match.NewProcessingError("resolve columns",
			fmt.Errorf("sheet %q has no usable %s column (headers: %d)", sheet, role, len(table.Columns)))
	}
	if resolution.Fallback {
		// 降级模式只告警不中断，结果元数据里带 fallback 标记
		log.Printf("[matcher] sheet %q 未命中 %s 列的已知写法，按列位兜底: %q", sheet, role, resolution.Column)
	}
	return resolution, nil
}

func (c *Coordinator) beginLog(opts ProcessOptions) int64 {
	if c.store == nil {
		return 0
	}
	id, err := c.store.CreateMatchLog(opts.Filename, opts.FileSize, opts.FileHash)
	if err != nil {
		// 运行日志失败不影响匹配本身
		log.Printf("[matcher] 写入运行日志失败: %v", err)
		return 0
	}
	return id
}

func (c *Coordinator) completeLog(id int64, outcome *model.MatchOutcome) {
	if c.store == nil || id == 0 {
		return
	}
	err := c.store.CompleteMatchLog(id,
		outcome.Sheets.LookupSheet, outcome.Sheets.TargetSheet,
		outcome.Stats.TotalRows, outcome.Stats.MatchedRows, outcome.Stats.RatePtr())
	if err != nil {
		log.Printf("[matcher] 更新运行日志失败: %v", err)
	}
}

func (c *Coordinator) failLog(id int64, cause error) {
	if c.store == nil || id == 0 {
		return
	}
	if err := c.store.FailMatchLog(id, cause.Error()); err != nil {
		log.Printf("[matcher] 更新运行日志失败: %v", err)
	}
}
