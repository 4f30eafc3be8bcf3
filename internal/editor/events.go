package editor

import (
	"rasterpad/internal/keymap"
	"rasterpad/internal/tool"
)

// Event 编辑器输入事件
type Event interface {
	event()
}

// Press 指针按下（屏幕坐标）
type Press struct{ X, Y float64 }

// Move 指针移动（屏幕坐标），画布外也会送达
type Move struct{ X, Y float64 }

// Release 指针松开
type Release struct{}

// Key 键盘按键
type Key struct{ keymap.Stroke }

// SelectTool 切换工具
type SelectTool struct{ Mode tool.Mode }

// ActivatePicker 进入取色模式
type ActivatePicker struct{}

// Undo 撤销按钮
type Undo struct{}

// Redo 重做按钮
type Redo struct{}

// SetWidth 修改画布宽度
type SetWidth struct{ Width int }

// SetHeight 修改画布高度
type SetHeight struct{ Height int }

// SetZoom 修改缩放
type SetZoom struct{ Zoom float64 }

// SetThickness 修改线宽
type SetThickness struct{ Thickness float64 }

// SetColor 修改颜色（#rrggbb）
type SetColor struct{ Hex string }

// SetViewport 画布可视区域在屏幕上的位置和大小
type SetViewport struct {
	X, Y          float64
	Width, Height float64
}

// Scroll 可视区域滚动偏移
type Scroll struct{ X, Y float64 }

func (Press) event()          {}
func (Move) event()           {}
func (Release) event()        {}
func (Key) event()            {}
func (SelectTool) event()     {}
func (ActivatePicker) event() {}
func (Undo) event()           {}
func (Redo) event()           {}
func (SetWidth) event()       {}
func (SetHeight) event()      {}
func (SetZoom) event()        {}
func (SetThickness) event()   {}
func (SetColor) event()       {}
func (SetViewport) event()    {}
func (Scroll) event()         {}
