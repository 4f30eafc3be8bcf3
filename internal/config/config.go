package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"rasterpad/internal/keymap"
	"rasterpad/internal/logging"
	"rasterpad/internal/raster"
	"rasterpad/internal/tool"
)

// Canvas 初始画布配置
type Canvas struct {
	Width  int `json:"width"`  // 宽度（像素）
	Height int `json:"height"` // 高度（像素）
}

// Brush 初始画笔配置
type Brush struct {
	Tool      string  `json:"tool"`      // brush, line, rectangle, filled_rectangle, ellipse, filled_ellipse
	Color     string  `json:"color"`     // #rrggbb
	Thickness float64 `json:"thickness"` // 线宽
}

// View 显示配置
type View struct {
	Zoom float64 `json:"zoom"` // 初始缩放倍数
}

// History 撤销历史配置
type History struct {
	Limit int `json:"limit"` // 最大撤销步数，0 表示不限
}

// Keys 快捷键配置
type Keys struct {
	Undo string `json:"undo"` // 撤销，如 ctrl+z
	Redo string `json:"redo"` // 重做，如 ctrl+y
}

// Log 日志配置
type Log struct {
	Level string `json:"level"` // debug, info, warn, error
}

// Config 主配置结构
type Config struct {
	Canvas  Canvas  `json:"canvas"`
	Brush   Brush   `json:"brush"`
	View    View    `json:"view"`
	History History `json:"history"`
	Keys    Keys    `json:"keys"`
	Log     Log     `json:"log"`
}

// DefaultConfig 返回默认配置
func DefaultConfig() *Config {
	return &Config{
		Canvas: Canvas{
			Width:  640,
			Height: 480,
		},
		Brush: Brush{
			Tool:      tool.ModeBrush.String(),
			Color:     "#000000",
			Thickness: 1,
		},
		View: View{
			Zoom: 1,
		},
		History: History{
			Limit: 0,
		},
		Keys: Keys{
			Undo: "ctrl+z",
			Redo: "ctrl+y",
		},
		Log: Log{
			Level: "info",
		},
	}
}

// GetConfigPath 获取配置文件路径
func GetConfigPath() string {
	var configDir string

	if runtime.GOOS == "windows" {
		configDir = os.Getenv("APPDATA")
		if configDir == "" {
			homeDir, _ := os.UserHomeDir()
			configDir = filepath.Join(homeDir, "AppData", "Roaming")
		}
	} else {
		homeDir, _ := os.UserHomeDir()
		configDir = filepath.Join(homeDir, ".config")
	}

	return filepath.Join(configDir, "rasterpad", "config.json")
}

// Load 加载默认路径下的配置
func Load() (*Config, error) {
	return LoadFrom(GetConfigPath())
}

// LoadFrom 从指定路径加载配置
// 文件不存在时写入并返回默认配置；读取或解析失败时返回默认配置和错误
func LoadFrom(path string) (*Config, error) {
	log := logging.With("config")

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig()
		if err := cfg.SaveTo(path); err != nil {
			log.Warn("写入默认配置失败", "path", path, "err", err)
		} else {
			log.Info("已创建默认配置", "path", path)
		}
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return DefaultConfig(), fmt.Errorf("读取配置失败: %w", err)
	}

	// 从默认值开始解析，缺失的字段保留默认值
	cfg := DefaultConfig()
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("解析配置失败: %w", err)
	}

	// 验证并修正配置
	for _, field := range cfg.Validate() {
		log.Warn("配置项无效，已恢复默认值", "field", field)
	}

	return cfg, nil
}

// Validate 验证并修正配置值，返回被修正的字段名
func (c *Config) Validate() []string {
	defaults := DefaultConfig()
	var fixed []string

	// 画布尺寸
	if c.Canvas.Width <= 0 || c.Canvas.Width > raster.MaxSide {
		c.Canvas.Width = defaults.Canvas.Width
		fixed = append(fixed, "canvas.width")
	}
	if c.Canvas.Height <= 0 || c.Canvas.Height > raster.MaxSide {
		c.Canvas.Height = defaults.Canvas.Height
		fixed = append(fixed, "canvas.height")
	}
	if raster.CheckSize(c.Canvas.Width, c.Canvas.Height) != nil {
		c.Canvas.Width, c.Canvas.Height = defaults.Canvas.Width, defaults.Canvas.Height
		fixed = append(fixed, "canvas")
	}

	// 工具
	if m, err := tool.ParseMode(c.Brush.Tool); err != nil {
		c.Brush.Tool = defaults.Brush.Tool
		fixed = append(fixed, "brush.tool")
	} else {
		c.Brush.Tool = m.String()
	}

	// 颜色统一为小写 #rrggbb
	if col, err := tool.ParseHex(c.Brush.Color); err != nil {
		c.Brush.Color = defaults.Brush.Color
		fixed = append(fixed, "brush.color")
	} else {
		c.Brush.Color = tool.FormatHex(col)
	}

	if !(c.Brush.Thickness > 0) {
		c.Brush.Thickness = defaults.Brush.Thickness
		fixed = append(fixed, "brush.thickness")
	}

	if !(c.View.Zoom > 0) {
		c.View.Zoom = defaults.View.Zoom
		fixed = append(fixed, "view.zoom")
	}

	if c.History.Limit < 0 {
		c.History.Limit = defaults.History.Limit
		fixed = append(fixed, "history.limit")
	}

	// 验证快捷键
	if b, err := keymap.Parse(c.Keys.Undo); err != nil {
		c.Keys.Undo = defaults.Keys.Undo
		fixed = append(fixed, "keys.undo")
	} else {
		c.Keys.Undo = b.String()
	}
	if b, err := keymap.Parse(c.Keys.Redo); err != nil {
		c.Keys.Redo = defaults.Keys.Redo
		fixed = append(fixed, "keys.redo")
	} else {
		c.Keys.Redo = b.String()
	}

	level := strings.ToLower(strings.TrimSpace(c.Log.Level))
	if _, err := logging.ParseLevel(level); err != nil {
		c.Log.Level = defaults.Log.Level
		fixed = append(fixed, "log.level")
	} else {
		c.Log.Level = level
	}

	return fixed
}

// Save 保存到默认路径
func (c *Config) Save() error {
	return c.SaveTo(GetConfigPath())
}

// SaveTo 保存到指定路径
func (c *Config) SaveTo(path string) error {
	// 确保目录存在
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("创建配置目录失败: %w", err)
	}

	data, err := json.MarshalIndent(c, "", "    ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}

// Keymap 根据配置构建快捷键映射
func (c *Config) Keymap() (*keymap.Keymap, error) {
	return keymap.New(map[keymap.Action]string{
		keymap.ActionUndo: c.Keys.Undo,
		keymap.ActionRedo: c.Keys.Redo,
	})
}

// GetKeysString 获取快捷键的文本说明
func (c *Config) GetKeysString() string {
	return fmt.Sprintf("撤销 %s / 重做 %s", c.Keys.Undo, c.Keys.Redo)
}
