package logging

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync/atomic"

	"github.com/gogpu/gg"
)

// nopHandler 丢弃所有日志记录；Enabled 返回 false，调用方不会格式化消息
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

var loggerPtr atomic.Pointer[slog.Logger]

func init() {
	loggerPtr.Store(slog.New(nopHandler{}))
}

// SetLogger 设置全局日志记录器，同时传递给 gg 绘图库
// 传入 nil 恢复静默
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = slog.New(nopHandler{})
	}
	loggerPtr.Store(l)
	gg.SetLogger(l)
}

// Logger 获取当前日志记录器
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// With 返回带组件名的日志记录器
func With(component string) *slog.Logger {
	return Logger().With(slog.String("component", component))
}

// ParseLevel 解析日志级别: debug, info, warn, error
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("未知日志级别 %q", s)
}

// New 创建输出到 stderr 的文本日志记录器
func New(level string) (*slog.Logger, error) {
	return NewWriter(os.Stderr, level)
}

// NewWriter 创建输出到 w 的文本日志记录器
func NewWriter(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := ParseLevel(level)
	h := slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl})
	return slog.New(h), err
}
