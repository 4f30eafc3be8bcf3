package ui

import (
	"image"

	"fyne.io/fyne/v2"
	fynecanvas "fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

// drawingArea 显示画布并把指针事件转交给窗口
type drawingArea struct {
	widget.BaseWidget

	raster  *fynecanvas.Raster
	frame   image.Image
	display fyne.Size

	onPress   func(pos fyne.Position)
	onMove    func(pos fyne.Position)
	onRelease func()
}

var _ fyne.Widget = (*drawingArea)(nil)
var _ fyne.Draggable = (*drawingArea)(nil)
var _ desktop.Mouseable = (*drawingArea)(nil)
var _ desktop.Hoverable = (*drawingArea)(nil)

func newDrawingArea() *drawingArea {
	a := &drawingArea{}
	a.raster = fynecanvas.NewRaster(func(w, h int) image.Image {
		if a.frame == nil {
			return image.NewRGBA(image.Rect(0, 0, 1, 1))
		}
		return a.frame
	})
	a.raster.ScaleMode = fynecanvas.ImageScalePixels
	a.ExtendBaseWidget(a)
	return a
}

// SetFrame 更新显示画面，size 为逻辑显示大小
func (a *drawingArea) SetFrame(frame image.Image, size fyne.Size) {
	a.frame = frame
	a.display = size
	a.raster.SetMinSize(size)
	a.Refresh()
}

func (a *drawingArea) MinSize() fyne.Size {
	return a.display
}

func (a *drawingArea) CreateRenderer() fyne.WidgetRenderer {
	return &drawingAreaRenderer{area: a}
}

// MouseDown 按下主键开始绘制
func (a *drawingArea) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary || a.onPress == nil {
		return
	}
	a.onPress(ev.AbsolutePosition)
}

func (a *drawingArea) MouseUp(ev *desktop.MouseEvent) {
	if ev.Button == desktop.MouseButtonPrimary && a.onRelease != nil {
		a.onRelease()
	}
}

// Dragged 拖动超出画布时仍持续送达
func (a *drawingArea) Dragged(ev *fyne.DragEvent) {
	if a.onMove != nil {
		a.onMove(ev.AbsolutePosition)
	}
}

func (a *drawingArea) DragEnd() {
	if a.onRelease != nil {
		a.onRelease()
	}
}

func (a *drawingArea) MouseIn(*desktop.MouseEvent) {}
func (a *drawingArea) MouseOut()                   {}

func (a *drawingArea) MouseMoved(ev *desktop.MouseEvent) {
	if a.onMove != nil {
		a.onMove(ev.AbsolutePosition)
	}
}

type drawingAreaRenderer struct {
	area *drawingArea
}

// Layout 画面固定在左上角，保持显示大小，不随容器拉伸
func (r *drawingAreaRenderer) Layout(fyne.Size) {
	r.area.raster.Move(fyne.NewPos(0, 0))
	r.area.raster.Resize(r.area.display)
}

func (r *drawingAreaRenderer) MinSize() fyne.Size {
	return r.area.display
}

func (r *drawingAreaRenderer) Refresh() {
	r.Layout(r.area.Size())
	r.area.raster.Refresh()
}

func (r *drawingAreaRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.area.raster}
}

func (r *drawingAreaRenderer) Destroy() {}
