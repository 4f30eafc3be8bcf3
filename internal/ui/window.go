package ui

import (
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"rasterpad/internal/editor"
	"rasterpad/internal/keymap"
	"rasterpad/internal/logging"
	"rasterpad/internal/tool"
)

// Window 编辑器窗口：把控件回调翻译成编辑器事件，再把控件状态写回控件
type Window struct {
	editor *editor.Editor
	win    fyne.Window
	log    *slog.Logger

	area   *drawingArea
	scroll *container.Scroll

	toolSelect *widget.Select
	pickerBtn  *widget.Button
	undoBtn    *widget.Button
	redoBtn    *widget.Button

	widthEntry     *widget.Entry
	heightEntry    *widget.Entry
	zoomEntry      *widget.Entry
	thicknessEntry *widget.Entry
	colorEntry     *widget.Entry
	status         *widget.Label

	last editor.Controls
}

// NewWindow 创建编辑器窗口
func NewWindow(app fyne.App, ed *editor.Editor, title string) *Window {
	w := &Window{
		editor: ed,
		win:    app.NewWindow(title),
		log:    logging.With("ui"),
		area:   newDrawingArea(),
	}

	w.area.onPress = w.press
	w.area.onMove = func(pos fyne.Position) {
		w.dispatch(editor.Move{X: float64(pos.X), Y: float64(pos.Y)})
	}
	w.area.onRelease = func() { w.dispatch(editor.Release{}) }

	w.scroll = container.NewScroll(w.area)
	w.scroll.Direction = container.ScrollBoth
	w.scroll.OnScrolled = func(off fyne.Position) {
		w.dispatch(editor.Scroll{X: float64(off.X), Y: float64(off.Y)})
	}

	toolbar := w.buildToolbar()
	w.win.SetContent(container.NewBorder(toolbar, w.status, nil, nil, w.scroll))
	w.win.Resize(fyne.NewSize(1024, 768))

	registerShortcuts(w.win.Canvas(), ed.Keymap(), func(ev editor.Key) { w.dispatch(ev) })

	w.apply(ed.Controls(), true)
	return w
}

// ShowAndRun 显示窗口并进入事件循环
func (w *Window) ShowAndRun() {
	w.win.ShowAndRun()
}

// buildToolbar 工具栏：工具、取色、撤销/重做、尺寸、缩放、线宽、颜色
func (w *Window) buildToolbar() fyne.CanvasObject {
	names := make([]string, 0, int(tool.ModeCount))
	byName := make(map[string]tool.Mode, int(tool.ModeCount))
	for m := tool.ModeBrush; m < tool.ModeCount; m++ {
		names = append(names, tool.ModeName[m])
		byName[tool.ModeName[m]] = m
	}
	w.toolSelect = widget.NewSelect(names, func(name string) {
		if m, ok := byName[name]; ok && m != w.last.Mode {
			w.dispatch(editor.SelectTool{Mode: m})
		}
	})

	w.pickerBtn = widget.NewButton("取色", func() { w.dispatch(editor.ActivatePicker{}) })
	w.undoBtn = widget.NewButton(w.buttonLabel("撤销", keymap.ActionUndo), func() { w.dispatch(editor.Undo{}) })
	w.redoBtn = widget.NewButton(w.buttonLabel("重做", keymap.ActionRedo), func() { w.dispatch(editor.Redo{}) })

	w.widthEntry = w.intEntry(func(n int) editor.Event { return editor.SetWidth{Width: n} })
	w.heightEntry = w.intEntry(func(n int) editor.Event { return editor.SetHeight{Height: n} })
	w.zoomEntry = w.floatEntry(func(v float64) editor.Event {
		w.syncViewport()
		return editor.SetZoom{Zoom: v}
	})
	w.thicknessEntry = w.floatEntry(func(v float64) editor.Event { return editor.SetThickness{Thickness: v} })

	w.colorEntry = widget.NewEntry()
	w.colorEntry.OnSubmitted = func(s string) {
		w.win.Canvas().Unfocus()
		w.dispatch(editor.SetColor{Hex: s})
	}

	w.status = widget.NewLabel("")

	return container.NewHBox(
		w.toolSelect,
		w.pickerBtn,
		widget.NewSeparator(),
		w.undoBtn,
		w.redoBtn,
		widget.NewSeparator(),
		widget.NewLabel("宽"), sized(w.widthEntry),
		widget.NewLabel("高"), sized(w.heightEntry),
		widget.NewLabel("缩放"), sized(w.zoomEntry),
		widget.NewLabel("线宽"), sized(w.thicknessEntry),
		widget.NewLabel("颜色"), sized(w.colorEntry),
		layout.NewSpacer(),
	)
}

// buttonLabel 按钮文字附带快捷键
func (w *Window) buttonLabel(text string, a keymap.Action) string {
	if b, ok := w.editor.Keymap().Binding(a); ok {
		return text + " (" + b.String() + ")"
	}
	return text
}

func sized(o fyne.CanvasObject) fyne.CanvasObject {
	return container.New(layout.NewGridWrapLayout(fyne.NewSize(80, 36)), o)
}

// intEntry 提交时解析正整数，无效输入恢复为当前值
func (w *Window) intEntry(ev func(int) editor.Event) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(s string) {
		// 提交后交还焦点，快捷键回到画布
		w.win.Canvas().Unfocus()
		n, err := editor.ParseDimension(s)
		if err != nil {
			w.log.Debug("忽略无效输入", "input", s, "err", err)
			w.apply(w.editor.Controls(), false)
			return
		}
		w.dispatch(ev(n))
	}
	return e
}

// floatEntry 提交时解析正数，无效输入恢复为当前值
func (w *Window) floatEntry(ev func(float64) editor.Event) *widget.Entry {
	e := widget.NewEntry()
	e.OnSubmitted = func(s string) {
		w.win.Canvas().Unfocus()
		v, err := editor.ParsePositive(s)
		if err != nil {
			w.log.Debug("忽略无效输入", "input", s, "err", err)
			w.apply(w.editor.Controls(), false)
			return
		}
		w.dispatch(ev(v))
	}
	return e
}

// press 按下前同步可视区域位置，保证坐标换算使用最新布局
func (w *Window) press(pos fyne.Position) {
	w.syncViewport()
	w.dispatch(editor.Press{X: float64(pos.X), Y: float64(pos.Y)})
}

func (w *Window) syncViewport() {
	origin := fyne.NewPos(0, 0)
	if app := fyne.CurrentApp(); app != nil {
		origin = app.Driver().AbsolutePositionForObject(w.scroll)
	}
	size := w.scroll.Size()
	w.editor.Handle(editor.SetViewport{
		X: float64(origin.X), Y: float64(origin.Y),
		Width: float64(size.Width), Height: float64(size.Height),
	})
	w.editor.Handle(editor.Scroll{X: float64(w.scroll.Offset.X), Y: float64(w.scroll.Offset.Y)})
}

// dispatch 处理事件并刷新控件
func (w *Window) dispatch(ev editor.Event) {
	c := w.editor.Handle(ev)
	if c == w.last && !c.Changed {
		return
	}
	w.apply(c, c.Changed)
}

// apply 将控件状态写回界面
func (w *Window) apply(c editor.Controls, redraw bool) {
	// 先记录，控件回调据此判断是否为用户操作
	w.last = c

	setEnabled(w.undoBtn, c.UndoEnabled)
	setEnabled(w.redoBtn, c.RedoEnabled)
	setEnabled(w.pickerBtn, c.PickerEnabled)

	w.toolSelect.SetSelected(tool.ModeName[c.Mode])
	w.widthEntry.SetText(strconv.Itoa(c.Width))
	w.heightEntry.SetText(strconv.Itoa(c.Height))
	w.zoomEntry.SetText(formatFloat(c.Zoom))
	w.thicknessEntry.SetText(formatFloat(c.Thickness))
	w.colorEntry.SetText(c.Color)

	if c.Picking {
		w.status.SetText("点击画布取色")
	} else {
		w.status.SetText(fmt.Sprintf("%s  %s  可撤销 %d 步，可重做 %d 步",
			tool.ModeName[c.Mode], c.Color, c.UndoDepth, c.RedoDepth))
	}

	if redraw {
		display := fyne.NewSize(float32(c.DisplayWidth), float32(c.DisplayHeight))
		w.area.SetFrame(w.editor.Frame(), display)
	}

	off := fyne.NewPos(float32(c.ScrollX), float32(c.ScrollY))
	if off != w.scroll.Offset {
		w.scroll.Offset = off
		w.scroll.Refresh()
	}
}

func setEnabled(b *widget.Button, enabled bool) {
	if enabled {
		b.Enable()
	} else {
		b.Disable()
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
