package view

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"rasterpad/internal/tool"
)

func TestScreenToBuffer(t *testing.T) {
	tr := New()
	tr.Viewport = Viewport{OriginX: 10, OriginY: 20, Width: 100, Height: 100}

	assert.Equal(t, tool.Point{X: 5, Y: 5}, tr.ScreenToBuffer(15, 25))

	tr.Zoom = 2
	tr.Viewport.ScrollX, tr.Viewport.ScrollY = 30, 40
	assert.Equal(t, tool.Point{X: 17.5, Y: 22.5}, tr.ScreenToBuffer(15, 25))
}

func TestSetZoomKeepsCentre(t *testing.T) {
	tr := New()
	tr.Viewport = Viewport{Width: 200, Height: 100, ScrollX: 100, ScrollY: 50}

	require.NoError(t, tr.SetZoom(2, 1000, 1000))
	assert.Equal(t, 2.0, tr.Zoom)
	assert.Equal(t, 300.0, tr.Viewport.ScrollX)
	assert.Equal(t, 150.0, tr.Viewport.ScrollY)

	// 中心点仍为缓冲区 (200, 100)
	cx := (tr.Viewport.ScrollX + tr.Viewport.Width/2) / tr.Zoom
	cy := (tr.Viewport.ScrollY + tr.Viewport.Height/2) / tr.Zoom
	assert.Equal(t, 200.0, cx)
	assert.Equal(t, 100.0, cy)

	dw, dh := tr.DisplaySize(1000, 1000)
	assert.Equal(t, 2000.0, dw)
	assert.Equal(t, 2000.0, dh)
}

func TestSetZoomClampsScroll(t *testing.T) {
	tr := New()
	tr.Viewport = Viewport{Width: 400, Height: 400}

	// 显示小于可视区域，滚动归零
	require.NoError(t, tr.SetZoom(0.5, 640, 480))
	assert.Zero(t, tr.Viewport.ScrollX)
	assert.Zero(t, tr.Viewport.ScrollY)

	tr.ScrollTo(5000, -3, 640, 480)
	assert.Zero(t, tr.Viewport.ScrollX)
	assert.Zero(t, tr.Viewport.ScrollY)

	require.NoError(t, tr.SetZoom(4, 640, 480))
	tr.ScrollTo(5000, 5000, 640, 480)
	assert.Equal(t, 2560.0-400, tr.Viewport.ScrollX)
	assert.Equal(t, 1920.0-400, tr.Viewport.ScrollY)
}

func TestSetZoomRejectsNonPositive(t *testing.T) {
	tr := New()
	for _, z := range []float64{0, -1} {
		assert.ErrorIs(t, tr.SetZoom(z, 10, 10), ErrInvalidZoom)
	}
	assert.Equal(t, 1.0, tr.Zoom)
}

func TestRenderNearestNeighbour(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2, 1))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	src.SetRGBA(0, 0, red)
	src.SetRGBA(1, 0, blue)

	dst := Render(src, 3)
	assert.Equal(t, image.Rect(0, 0, 6, 3), dst.Bounds())
	assert.Equal(t, red, dst.RGBAAt(2, 2))
	assert.Equal(t, blue, dst.RGBAAt(3, 0))

	same := Render(src, 1)
	assert.Equal(t, src.Pix, same.Pix)
}
