package editor

import (
	"fmt"
	"image"
	"log/slog"
	"math"

	"rasterpad/internal/config"
	"rasterpad/internal/history"
	"rasterpad/internal/keymap"
	"rasterpad/internal/logging"
	"rasterpad/internal/raster"
	"rasterpad/internal/tool"
	"rasterpad/internal/view"
)

// memoryWarnStep 快照内存每增长一档记录一次警告
const memoryWarnStep = 256 << 20

// Options 编辑器初始状态
type Options struct {
	Width, Height int            // 初始画布尺寸
	Mode          tool.Mode      // 初始工具
	Style         tool.Style     // 初始样式
	Zoom          float64        // 初始缩放
	HistoryLimit  int            // 撤销深度上限，<=0 不限
	Keymap        *keymap.Keymap // 快捷键，nil 使用默认
}

// DefaultOptions 640×480 白色画布，黑色 1px 画笔
func DefaultOptions() Options {
	return Options{
		Width:  640,
		Height: 480,
		Mode:   tool.ModeBrush,
		Style:  tool.DefaultStyle(),
		Zoom:   1,
	}
}

// OptionsFromConfig 根据配置生成初始状态
func OptionsFromConfig(cfg *config.Config) (Options, error) {
	opts := DefaultOptions()
	opts.Width = cfg.Canvas.Width
	opts.Height = cfg.Canvas.Height
	opts.Zoom = cfg.View.Zoom
	opts.HistoryLimit = cfg.History.Limit
	opts.Style.Thickness = cfg.Brush.Thickness

	m, err := tool.ParseMode(cfg.Brush.Tool)
	if err != nil {
		return opts, err
	}
	opts.Mode = m

	c, err := tool.ParseHex(cfg.Brush.Color)
	if err != nil {
		return opts, err
	}
	opts.Style.Color = c

	km, err := cfg.Keymap()
	if err != nil {
		return opts, err
	}
	opts.Keymap = km
	return opts, nil
}

// Controls 每次处理事件后交给界面的控件状态
type Controls struct {
	UndoEnabled   bool
	RedoEnabled   bool
	PickerEnabled bool
	UndoDepth     int // 可撤销步数
	RedoDepth     int // 可重做步数

	Width, Height int
	Color         string // #rrggbb
	Thickness     float64
	Zoom          float64
	Mode          tool.Mode
	Picking       bool

	DisplayWidth, DisplayHeight float64
	ScrollX, ScrollY            float64

	Changed bool // 缓冲区内容或尺寸有变化，需要重绘
}

// session 一次按下到松开的交互
type session struct {
	active bool
	anchor tool.Point // 按下位置
	last   tool.Point // 画笔上一个点
}

// Editor 工具状态机，持有唯一的画布缓冲区和快照栈
// 非并发安全，所有事件必须在同一个 goroutine 中处理
type Editor struct {
	surface *raster.Surface
	history *history.Stack
	view    view.Transform
	keys    *keymap.Keymap

	mode    tool.Mode
	style   tool.Style
	picking bool
	session session

	memStep  int // 内存警告档位大小
	memSteps int // 已警告到的档位
	log      *slog.Logger
}

// New 创建编辑器
func New(opts Options) (*Editor, error) {
	surface, err := raster.NewSurface(opts.Width, opts.Height)
	if err != nil {
		return nil, err
	}
	if !opts.Mode.Valid() {
		return nil, fmt.Errorf("未知工具: %d", opts.Mode)
	}
	if !(opts.Style.Thickness > 0) {
		return nil, fmt.Errorf("线宽必须为正数: %v", opts.Style.Thickness)
	}
	opts.Style.Color.A = 255

	keys := opts.Keymap
	if keys == nil {
		keys = keymap.Default()
	}

	e := &Editor{
		surface: surface,
		history: history.NewStack(opts.HistoryLimit),
		view:    view.New(),
		keys:    keys,
		mode:    opts.Mode,
		style:   opts.Style,
		memStep: memoryWarnStep,
		log:     logging.With("editor"),
	}
	if opts.Zoom > 0 && opts.Zoom != 1 {
		if err := e.view.SetZoom(opts.Zoom, opts.Width, opts.Height); err != nil {
			return nil, err
		}
	}
	e.applyStyle()

	e.log.Info("编辑器已创建", "width", opts.Width, "height", opts.Height, "mode", opts.Mode, "limit", e.history.Limit())
	return e, nil
}

// Handle 处理一个事件并返回最新控件状态
func (e *Editor) Handle(ev Event) Controls {
	changed := e.dispatch(ev)
	c := e.Controls()
	c.Changed = changed
	return c
}

func (e *Editor) dispatch(ev Event) bool {
	switch ev := ev.(type) {
	case Press:
		return e.press(e.view.ScreenToBuffer(ev.X, ev.Y))
	case Move:
		return e.move(e.view.ScreenToBuffer(ev.X, ev.Y))
	case Release:
		e.endSession()
		return false
	case Key:
		return e.key(ev.Stroke)
	case SelectTool:
		return e.selectTool(ev.Mode)
	case ActivatePicker:
		e.endSession()
		e.picking = true
		e.log.Debug("进入取色模式")
		return false
	case Undo:
		return e.undo()
	case Redo:
		return e.redo()
	case SetWidth:
		return e.resize(ev.Width, e.surface.Height())
	case SetHeight:
		return e.resize(e.surface.Width(), ev.Height)
	case SetZoom:
		return e.setZoom(ev.Zoom)
	case SetThickness:
		return e.setThickness(ev.Thickness)
	case SetColor:
		return e.setColor(ev.Hex)
	case SetViewport:
		vp := &e.view.Viewport
		vp.OriginX, vp.OriginY = ev.X, ev.Y
		vp.Width, vp.Height = ev.Width, ev.Height
		e.view.Clamp(e.surface.Size())
		return false
	case Scroll:
		w, h := e.surface.Size()
		e.view.ScrollTo(ev.X, ev.Y, w, h)
		return false
	}
	e.log.Debug("忽略未知事件", "event", fmt.Sprintf("%T", ev))
	return false
}

// Controls 当前控件状态
func (e *Editor) Controls() Controls {
	w, h := e.surface.Size()
	dw, dh := e.view.DisplaySize(w, h)
	return Controls{
		UndoEnabled:   e.history.CanUndo(),
		RedoEnabled:   e.history.CanRedo(),
		PickerEnabled: !e.picking,
		UndoDepth:     e.history.Len(),
		RedoDepth:     e.history.RedoLen(),
		Width:         w,
		Height:        h,
		Color:         e.style.Hex(),
		Thickness:     e.style.Thickness,
		Zoom:          e.view.Zoom,
		Mode:          e.mode,
		Picking:       e.picking,
		DisplayWidth:  dw,
		DisplayHeight: dh,
		ScrollX:       e.view.Viewport.ScrollX,
		ScrollY:       e.view.Viewport.ScrollY,
	}
}

// Surface 画布（只读使用）
func (e *Editor) Surface() *raster.Surface {
	return e.surface
}

// Keymap 快捷键映射
func (e *Editor) Keymap() *keymap.Keymap {
	return e.keys
}

// Frame 按当前缩放渲染的显示画面
func (e *Editor) Frame() *image.RGBA {
	return view.Render(e.surface.Image(), e.view.Zoom)
}

// ---------- 指针 ----------

func (e *Editor) press(p tool.Point) bool {
	if e.picking {
		return e.pick(p)
	}
	if e.session.active {
		return false
	}

	e.session = session{active: true, anchor: p, last: p}
	e.capture()
	e.log.Debug("开始绘制", "mode", e.mode, "x", p.X, "y", p.Y)
	return false
}

func (e *Editor) move(p tool.Point) bool {
	if !e.session.active || e.picking {
		return false
	}

	var err error
	if e.mode.Previewed() {
		// 擦掉上一帧预览，从锚点重画
		e.history.PeekRestore(e.surface)
		err = tool.Render(e.surface, e.mode, e.session.anchor, p)
	} else {
		err = tool.Render(e.surface, e.mode, e.session.last, p)
		e.session.last = p
	}
	if err != nil {
		e.log.Warn("绘制失败", "mode", e.mode, "err", err)
	}
	return true
}

func (e *Editor) endSession() {
	if e.session.active {
		e.log.Debug("结束绘制", "mode", e.mode)
	}
	e.session = session{}
}

// pick 取色：坐标向下取整，画布外的点击被忽略并保持取色模式
func (e *Editor) pick(p tool.Point) bool {
	x, y := int(math.Floor(p.X)), int(math.Floor(p.Y))
	c, ok := e.surface.At(x, y)
	if !ok {
		e.log.Debug("取色位置在画布外", "x", x, "y", y)
		return false
	}

	c.A = 255
	e.style.Color = c
	e.applyStyle()
	e.picking = false
	e.log.Debug("取色", "color", e.style.Hex(), "x", x, "y", y)
	return false
}

// ---------- 工具和样式 ----------

func (e *Editor) selectTool(m tool.Mode) bool {
	if !m.Valid() {
		e.log.Debug("忽略未知工具", "mode", int(m))
		return false
	}
	e.endSession()
	e.mode = m
	return false
}

func (e *Editor) setThickness(t float64) bool {
	if !(t > 0) || math.IsInf(t, 0) {
		e.log.Debug("忽略无效线宽", "thickness", t)
		return false
	}
	e.style.Thickness = t
	e.applyStyle()
	return false
}

func (e *Editor) setColor(hex string) bool {
	c, err := tool.ParseHex(hex)
	if err != nil {
		e.log.Debug("忽略无效颜色", "err", err)
		return false
	}
	e.style.Color = c
	e.applyStyle()
	return false
}

func (e *Editor) applyStyle() {
	e.surface.SetStyle(raster.Style{Color: e.style.Color, Thickness: e.style.Thickness})
}

// ---------- 尺寸和缩放 ----------

// resize 调整画布尺寸，可撤销；保留左上角重叠部分，新增区域为白色
func (e *Editor) resize(w, h int) bool {
	// 尺寸合法才保存撤销点
	if err := raster.CheckSize(w, h); err != nil {
		e.log.Debug("忽略无效尺寸", "width", w, "height", h, "err", err)
		return false
	}

	e.capture()
	if err := e.surface.Resize(w, h); err != nil {
		e.log.Warn("调整尺寸失败", "err", err)
		return false
	}
	e.history.PeekRestore(e.surface)
	e.view.Clamp(w, h)

	e.log.Info("画布尺寸已调整", "width", w, "height", h)
	return true
}

func (e *Editor) setZoom(z float64) bool {
	if err := e.view.SetZoom(z, e.surface.Width(), e.surface.Height()); err != nil {
		e.log.Debug("忽略无效缩放", "zoom", z)
		return false
	}
	return true
}

// ---------- 撤销/重做 ----------

func (e *Editor) key(s keymap.Stroke) bool {
	action, ok := e.keys.Lookup(s)
	if !ok {
		return false
	}
	switch action {
	case keymap.ActionUndo:
		return e.undo()
	case keymap.ActionRedo:
		return e.redo()
	}
	return false
}

func (e *Editor) undo() bool {
	top, ok := e.history.Top()
	if !ok {
		return false
	}
	if _, err := e.history.PopRestore(e.surface); err != nil {
		e.log.Warn("撤销失败", "snapshot", top.ID, "err", err)
		return false
	}
	e.view.Clamp(e.surface.Size())
	e.trackMemory()
	e.log.Info("撤销", "snapshot", top.ID, "depth", e.history.Len())
	return true
}

func (e *Editor) redo() bool {
	ok, err := e.history.Redo(e.surface)
	if err != nil {
		e.log.Warn("重做失败", "err", err)
		return false
	}
	if !ok {
		return false
	}
	e.view.Clamp(e.surface.Size())

	// 重做前的画面成为新的撤销点
	top, _ := e.history.Top()
	e.trackMemory()
	e.log.Info("重做", "snapshot", top.ID, "depth", e.history.Len())
	return true
}

// capture 保存撤销点并检查快照内存
func (e *Editor) capture() {
	snap := e.history.Capture(e.surface)
	e.log.Debug("保存撤销点", "snapshot", snap.ID, "depth", e.history.Len())
	e.trackMemory()
}

// trackMemory 快照内存每跨过一档记录一次警告
func (e *Editor) trackMemory() {
	steps := e.history.Bytes() / e.memStep
	if steps > e.memSteps {
		top, _ := e.history.Top()
		e.log.Warn("撤销历史占用内存较大",
			"bytes", e.history.Bytes(),
			"snapshots", e.history.Len(),
			"redo", e.history.RedoLen(),
			"snapshot", top.ID)
	}
	e.memSteps = steps
}
