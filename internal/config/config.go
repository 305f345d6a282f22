package config

import (
	"os"
	"path/filepath"

	"github.com/pelletier/go-toml/v2"
)

// AppConfig 应用配置
type AppConfig struct {
	Server  ServerConfig  `toml:"server"`
	Data    DataConfig    `toml:"data"`
	Upload  UploadConfig  `toml:"upload"`
	Matcher MatcherConfig `toml:"matcher"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Port    int  `toml:"port"`
	DevMode bool `toml:"dev_mode"`
}

// DataConfig 数据配置
type DataConfig struct {
	DataDir string `toml:"data_dir"`
}

// UploadConfig 上传限制配置
type UploadConfig struct {
	MaxSizeMB   int      `toml:"max_size_mb"`
	AllowedExts []string `toml:"allowed_exts"`
}

// MatcherConfig 匹配流程配置
type MatcherConfig struct {
	OutputColumn string `toml:"output_column"`
	OutputSheet  string `toml:"output_sheet"`
	PreviewRows  int    `toml:"preview_rows"`
}

// LoadConfigInfo 配置加载元信息
type LoadConfigInfo struct {
	PortSpecified bool
}

// DefaultConfig 默认配置
func DefaultConfig() *AppConfig {
	return &AppConfig{
		Server: ServerConfig{
			Port:    20470,
			DevMode: false,
		},
		Data: DataConfig{
			DataDir: "data",
		},
		Upload: UploadConfig{
			MaxSizeMB:   10,
			AllowedExts: []string{".xlsx", ".xls"},
		},
		Matcher: MatcherConfig{
			OutputColumn: "ITEM NAME",
			OutputSheet:  "Updated_REC",
			PreviewRows:  20,
		},
	}
}

// MaxUploadBytes 上传大小上限（字节）
func (c *AppConfig) MaxUploadBytes() int64 {
	return int64(c.Upload.MaxSizeMB) * 1024 * 1024
}

// ExtAllowed 判断扩展名是否在允许列表内
func (c *AppConfig) ExtAllowed(ext string) bool {
	for _, allowed := range c.Upload.AllowedExts {
		if ext == allowed {
			return true
		}
	}
	return false
}

func isPortSpecifiedInToml(data []byte) bool {
	var raw map[string]any
	if err := toml.Unmarshal(data, &raw); err != nil {
		return false
	}

	serverAny, ok := raw["server"]
	if !ok {
		return false
	}

	serverMap, ok := serverAny.(map[string]any)
	if !ok {
		return false
	}

	_, ok = serverMap["port"]
	return ok
}

// parseConfig 解析 toml 内容并叠加到默认配置上
func parseConfig(data []byte) (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{PortSpecified: isPortSpecifiedInToml(data)}
	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, info, err
	}
	return config, info, nil
}

// GetExeDir 获取可执行文件所在目录
func GetExeDir() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", err
	}
	return filepath.Dir(exe), nil
}

// LoadConfigWithInfo 从 config.toml 加载配置并返回元信息
// 配置文件位于可执行文件同目录下，不存在时使用默认配置。
func LoadConfigWithInfo() (*AppConfig, LoadConfigInfo, error) {
	info := LoadConfigInfo{}

	exeDir, err := GetExeDir()
	if err != nil {
		// 无法获取可执行文件目录，使用当前目录
		exeDir = "."
	}

	configPath := filepath.Join(exeDir, "config.toml")

	data, err := os.ReadFile(configPath)
	if err != nil {
		if os.IsNotExist(err) {
			// 配置文件不存在，使用默认配置
			return DefaultConfig(), info, nil
		}
		return nil, info, err
	}

	config, info, err := parseConfig(data)
	if err != nil {
		return nil, info, err
	}

	// 环境变量覆盖（用于 E2E / 本地运行）
	if v := os.Getenv("SHEETMATCHER_OUTPUT_COLUMN"); v != "" {
		config.Matcher.OutputColumn = v
	}

	return config, info, nil
}

// LoadConfig 从 config.toml 加载配置
func LoadConfig() (*AppConfig, error) {
	config, _, err := LoadConfigWithInfo()
	return config, err
}

// EnsureDataDir 确保数据目录存在
// 相对路径挂在可执行文件同目录下，绝对路径原样使用。
func EnsureDataDir(config *AppConfig) (string, error) {
	dataDir := config.Data.DataDir
	if !filepath.IsAbs(dataDir) {
		exeDir, err := GetExeDir()
		if err != nil {
			exeDir = "."
		}
		dataDir = filepath.Join(exeDir, dataDir)
	}

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}

	return dataDir, nil
}
