// smatch 是命令行版的一次性匹配工具，离开 Web 服务也能跑完整流程
package main

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"sheetmatcher/internal/config"
	"sheetmatcher/internal/excel"
	"sheetmatcher/internal/match"
	"sheetmatcher/internal/processor"
	"sheetmatcher/internal/store"
)

var (
	outputPath   string
	outputColumn string
	outputSheet  string
	dbPath       string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "smatch [input.xlsx]",
		Short: "对 Excel 工作簿执行 NOC/NOV -> REC 匹配补全",
		Long: `smatch 读取一个包含查找表(noc/nov)和目标表(rec)的工作簿，
按 order_id 建立映射并补全目标表的 ITEM NAME 列，结果写入新的 xlsx 文件。`,
		Args: cobra.ExactArgs(1),
		RunE: run,
	}

	rootCmd.Flags().StringVarP(&outputPath, "output", "o", "", "结果文件路径 (默认写到输入文件同目录)")
	rootCmd.Flags().StringVar(&outputColumn, "output-column", "", "补全列的列名 (默认 ITEM NAME)")
	rootCmd.Flags().StringVar(&outputSheet, "output-sheet", "", "结果工作表名 (默认 Updated_REC)")
	rootCmd.Flags().StringVar(&dbPath, "db", "", "sqlite 数据库路径，指定后记录运行历史")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	inputPath := args[0]

	if _, err := os.Stat(inputPath); os.IsNotExist(err) {
		return fmt.Errorf("file not found: %s", inputPath)
	}

	cfg := config.DefaultConfig()
	if outputColumn != "" {
		cfg.Matcher.OutputColumn = outputColumn
	}
	if outputSheet != "" {
		cfg.Matcher.OutputSheet = outputSheet
	}

	var st *store.Store
	if dbPath != "" {
		var err error
		st, err = store.New(dbPath)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer st.Close()
	}

	data, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}
	hash := sha256.Sum256(data)

	coordinator := processor.NewCoordinator(st, cfg)
	outcome, err := coordinator.ProcessReader(bytes.NewReader(data), processor.ProcessOptions{
		Filename: filepath.Base(inputPath),
		FileSize: int64(len(data)),
		FileHash: hex.EncodeToString(hash[:]),
	})
	if err != nil {
		return matchError(err)
	}

	result, err := excel.BuildResultFile(outcome.Enriched, cfg.Matcher.OutputSheet)
	if err != nil {
		return fmt.Errorf("failed to build result file: %w", err)
	}
	if outputPath == "" {
		outputPath = filepath.Join(filepath.Dir(inputPath), excel.ResultFilename(time.Now()))
	}
	if err := result.SaveAs(outputPath); err != nil {
		return fmt.Errorf("failed to save result file: %w", err)
	}

	fmt.Printf("文件: %s  查找表: %s  目标表: %s\n", outcome.Filename, outcome.Sheets.LookupSheet, outcome.Sheets.TargetSheet)
	if outcome.LookupKey.Fallback || outcome.LookupValue.Fallback || outcome.TargetKey.Fallback {
		fmt.Println("注意: 部分列未命中已知写法，已按列位兜底")
	}
	if rate, ok := outcome.Stats.Rate(); ok {
		fmt.Printf("已匹配 %d/%d 条记录 (%.2f%%)\n", outcome.Stats.MatchedRows, outcome.Stats.TotalRows, rate)
	} else {
		fmt.Printf("已匹配 %d/%d 条记录 (匹配率 N/A)\n", outcome.Stats.MatchedRows, outcome.Stats.TotalRows)
	}
	fmt.Printf("结果已写入: %s\n", outputPath)
	return nil
}

// matchError 把流程错误转成适合终端阅读的提示
func matchError(err error) error {
	var missing *match.MissingSheetError
	if errors.As(err, &missing) {
		return fmt.Errorf("工作簿缺少必需的工作表: %s (现有工作表: %s)",
			strings.Join(missing.RoleLabels(), ", "), strings.Join(missing.SheetNames, ", "))
	}

	var decode *excel.FileDecodeError
	if errors.As(err, &decode) {
		return fmt.Errorf("文件解析失败: %w", decode.Err)
	}

	var proc *match.ProcessingError
	if errors.As(err, &proc) {
		return fmt.Errorf("处理失败: %w", err)
	}
	return err
}
