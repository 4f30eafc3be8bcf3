package tool

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// Mode 绘图工具类型
type Mode int

const (
	ModeBrush           Mode = iota // 画笔
	ModeLine                        // 直线
	ModeRectangle                   // 矩形
	ModeFilledRectangle             // 实心矩形
	ModeEllipse                     // 椭圆
	ModeFilledEllipse               // 实心椭圆
	ModeCount                       // 工具总数（用于遍历）
)

// modeIDs 工具标识，用于配置和控件
var modeIDs = map[Mode]string{
	ModeBrush:           "brush",
	ModeLine:            "line",
	ModeRectangle:       "rectangle",
	ModeFilledRectangle: "filled_rectangle",
	ModeEllipse:         "ellipse",
	ModeFilledEllipse:   "filled_ellipse",
}

// ModeName 工具显示名称
var ModeName = map[Mode]string{
	ModeBrush:           "画笔",
	ModeLine:            "直线",
	ModeRectangle:       "矩形",
	ModeFilledRectangle: "实心矩形",
	ModeEllipse:         "椭圆",
	ModeFilledEllipse:   "实心椭圆",
}

// String 工具标识
func (m Mode) String() string {
	if id, ok := modeIDs[m]; ok {
		return id
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Valid 是否为已知工具
func (m Mode) Valid() bool {
	return m >= 0 && m < ModeCount
}

// Previewed 拖动时是否先恢复快照再重绘（画笔是累积的）
func (m Mode) Previewed() bool {
	return m != ModeBrush
}

// ParseMode 解析工具标识
func ParseMode(s string) (Mode, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for m, id := range modeIDs {
		if id == s {
			return m, nil
		}
	}
	return ModeBrush, fmt.Errorf("未知工具: %q", s)
}

// ---------- 样式 ----------

// ErrInvalidColor 颜色格式错误
var ErrInvalidColor = errors.New("颜色格式应为 #rrggbb")

// Style 描边样式
type Style struct {
	Color     color.RGBA // 颜色（不透明）
	Thickness float64    // 线宽
}

// DefaultStyle 初始样式：#000000，线宽 1
func DefaultStyle() Style {
	return Style{Color: color.RGBA{0, 0, 0, 255}, Thickness: 1}
}

// Hex 颜色的 #rrggbb 表示
func (s Style) Hex() string {
	return FormatHex(s.Color)
}

// FormatHex 格式化为小写 #rrggbb，忽略透明度
func FormatHex(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseHex 解析 #rrggbb（大小写均可，# 可省略），结果总是不透明的
func ParseHex(s string) (color.RGBA, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(s) != 6 {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("%w: %q", ErrInvalidColor, s)
	}
	return color.RGBA{uint8(v >> 16), uint8(v >> 8), uint8(v), 255}, nil
}
