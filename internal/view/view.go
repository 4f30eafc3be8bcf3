package view

import (
	"errors"
	"image"
	"image/draw"
	"math"

	xdraw "golang.org/x/image/draw"

	"rasterpad/internal/tool"
)

// ErrInvalidZoom 缩放倍数必须为正
var ErrInvalidZoom = errors.New("缩放倍数必须大于 0")

// Viewport 画布所在的可视区域（屏幕坐标）
type Viewport struct {
	OriginX, OriginY float64 // 可视区域左上角
	Width, Height    float64 // 可视区域大小
	ScrollX, ScrollY float64 // 滚动偏移
}

// Transform 屏幕坐标与缓冲区坐标之间的映射
type Transform struct {
	Zoom     float64
	Viewport Viewport
}

// New 创建缩放为 1 的变换
func New() Transform {
	return Transform{Zoom: 1}
}

// ScreenToBuffer 屏幕坐标转缓冲区坐标
// 画布左上角在屏幕上的位置 = 可视区域原点 - 滚动偏移
func (t Transform) ScreenToBuffer(sx, sy float64) tool.Point {
	ox := t.Viewport.OriginX - t.Viewport.ScrollX
	oy := t.Viewport.OriginY - t.Viewport.ScrollY
	return tool.Point{X: (sx - ox) / t.Zoom, Y: (sy - oy) / t.Zoom}
}

// DisplaySize 缓冲区在屏幕上的显示大小
func (t Transform) DisplaySize(bw, bh int) (float64, float64) {
	return float64(bw) * t.Zoom, float64(bh) * t.Zoom
}

// SetZoom 修改缩放并调整滚动，使可视区域中心对应的缓冲区点保持不动
func (t *Transform) SetZoom(zoom float64, bw, bh int) error {
	if !(zoom > 0) || math.IsInf(zoom, 0) {
		return ErrInvalidZoom
	}

	vp := &t.Viewport
	cx := (vp.ScrollX + vp.Width/2) / t.Zoom
	cy := (vp.ScrollY + vp.Height/2) / t.Zoom

	t.Zoom = zoom
	vp.ScrollX = cx*zoom - vp.Width/2
	vp.ScrollY = cy*zoom - vp.Height/2
	t.Clamp(bw, bh)
	return nil
}

// ScrollTo 设置滚动偏移（会被限制在有效范围内）
func (t *Transform) ScrollTo(x, y float64, bw, bh int) {
	t.Viewport.ScrollX = x
	t.Viewport.ScrollY = y
	t.Clamp(bw, bh)
}

// Clamp 将滚动偏移限制在 [0, max(0, 显示大小-可视区域)]
func (t *Transform) Clamp(bw, bh int) {
	dw, dh := t.DisplaySize(bw, bh)
	t.Viewport.ScrollX = clamp(t.Viewport.ScrollX, 0, math.Max(0, dw-t.Viewport.Width))
	t.Viewport.ScrollY = clamp(t.Viewport.ScrollY, 0, math.Max(0, dh-t.Viewport.Height))
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Render 按最近邻采样放大/缩小图片，用于显示
func Render(src image.Image, zoom float64) *image.RGBA {
	b := src.Bounds()
	if zoom == 1 {
		dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
		draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
		return dst
	}

	w := max(1, int(math.Round(float64(b.Dx())*zoom)))
	h := max(1, int(math.Round(float64(b.Dy())*zoom)))
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, xdraw.Src, nil)
	return dst
}
