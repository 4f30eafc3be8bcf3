package main

import (
	"flag"
	"fmt"
	"os"

	"rasterpad/internal/config"
	"rasterpad/internal/editor"
	"rasterpad/internal/keymap"
	"rasterpad/internal/logging"
	"rasterpad/internal/ui"
)

const version = "v1.0.0"

func main() {
	// 命令行参数
	showConfig := flag.Bool("config", false, "显示配置文件路径")
	showVersion := flag.Bool("version", false, "显示版本信息")
	width := flag.Int("width", 0, "初始画布宽度，覆盖配置")
	height := flag.Int("height", 0, "初始画布高度，覆盖配置")
	logLevel := flag.String("log-level", "", "日志级别: debug, info, warn, error")
	setUndo := flag.String("set-undo", "", "设置撤销快捷键，格式：ctrl+z")
	setRedo := flag.String("set-redo", "", "设置重做快捷键，格式：ctrl+y")
	flag.Parse()

	if *showVersion {
		fmt.Println("rasterpad", version)
		fmt.Println("位图画板")
		return
	}

	if *showConfig {
		fmt.Println("配置文件路径:", config.GetConfigPath())
		return
	}

	if *setUndo != "" || *setRedo != "" {
		if err := updateKeys(*setUndo, *setRedo); err != nil {
			fmt.Println("设置快捷键失败:", err)
			os.Exit(1)
		}
		return
	}

	if err := run(*width, *height, *logLevel); err != nil {
		fmt.Println("启动失败:", err)
		os.Exit(1)
	}
}

func run(width, height int, logLevel string) error {
	// 加载配置
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("加载配置失败，使用默认配置:", err)
	}

	if logLevel == "" {
		logLevel = cfg.Log.Level
	}
	logger, err := logging.New(logLevel)
	if err != nil {
		fmt.Println("日志级别无效，使用 info:", err)
	}
	logging.SetLogger(logger)

	if width > 0 {
		cfg.Canvas.Width = width
	}
	if height > 0 {
		cfg.Canvas.Height = height
	}

	opts, err := editor.OptionsFromConfig(cfg)
	if err != nil {
		return err
	}
	ed, err := editor.New(opts)
	if err != nil {
		return err
	}

	logger.Info("rasterpad 已启动",
		"version", version,
		"config", config.GetConfigPath(),
		"keys", cfg.GetKeysString())

	// 运行窗口（阻塞）
	ui.Run(ed, "rasterpad")
	return nil
}

// updateKeys 校验并保存新的撤销/重做快捷键
func updateKeys(undo, redo string) error {
	cfg, _ := config.Load()

	if undo != "" {
		b, err := keymap.Parse(undo)
		if err != nil {
			return err
		}
		cfg.Keys.Undo = b.String()
	}
	if redo != "" {
		b, err := keymap.Parse(redo)
		if err != nil {
			return err
		}
		cfg.Keys.Redo = b.String()
	}

	if _, err := cfg.Keymap(); err != nil {
		return err
	}
	if err := cfg.Save(); err != nil {
		return err
	}
	fmt.Println("快捷键已设置为:", cfg.GetKeysString())
	return nil
}
