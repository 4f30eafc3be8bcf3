package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"

	"github.com/gogpu/gg"
)

// BytesPerPixel RGBA 格式每像素字节数
const BytesPerPixel = 4

// 画布尺寸上限，与常见浏览器 canvas 的限制一致
const (
	MaxSide   = 32767   // 单边最大像素数
	MaxPixels = 1 << 28 // 总像素数上限，RGBA 约 1 GiB
)

// ErrInvalidSize 画布尺寸非法
var ErrInvalidSize = errors.New("画布尺寸无效")

// White 画布底色
var White = color.RGBA{255, 255, 255, 255}

// Style 描边/填充样式
type Style struct {
	Color     color.RGBA // 描边和填充共用的颜色
	Thickness float64    // 线宽
}

// DefaultStyle 默认样式：黑色 1px
func DefaultStyle() Style {
	return Style{Color: color.RGBA{0, 0, 0, 255}, Thickness: 1}
}

// Surface 位图绘制表面，独占唯一的像素缓冲区
// 行跨度固定为 width*4，绘制委托给 gg
type Surface struct {
	pix   *gg.Pixmap
	dc    *gg.Context
	style Style
}

// NewSurface 创建白色画布
func NewSurface(width, height int) (*Surface, error) {
	s := &Surface{style: DefaultStyle()}
	if err := s.Resize(width, height); err != nil {
		return nil, err
	}
	return s, nil
}

// CheckSize 校验画布尺寸：必须为正，单边不超过 MaxSide，总像素不超过 MaxPixels
func CheckSize(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %dx%d 必须为正整数", ErrInvalidSize, width, height)
	}
	if width > MaxSide || height > MaxSide || width*height > MaxPixels {
		return fmt.Errorf("%w: %dx%d 超出上限", ErrInvalidSize, width, height)
	}
	return nil
}

// Resize 以新尺寸整体替换缓冲区并填充白色，原内容丢弃
func (s *Surface) Resize(width, height int) error {
	if err := CheckSize(width, height); err != nil {
		return err
	}

	pm := gg.NewPixmap(width, height)
	pm.Clear(gg.White)

	if s.dc != nil {
		_ = s.dc.Close()
	}
	s.pix = pm
	s.dc = gg.NewContext(width, height, gg.WithPixmap(pm))
	s.dc.SetLineCap(gg.LineCapRound)
	s.dc.SetLineJoin(gg.LineJoinRound)
	return nil
}

// Width 画布宽度
func (s *Surface) Width() int { return s.pix.Width() }

// Height 画布高度
func (s *Surface) Height() int { return s.pix.Height() }

// Size 画布尺寸
func (s *Surface) Size() (int, int) { return s.pix.Width(), s.pix.Height() }

// Bounds 画布矩形
func (s *Surface) Bounds() image.Rectangle {
	return image.Rect(0, 0, s.pix.Width(), s.pix.Height())
}

// Pixels 返回实时像素数据（不是副本）
func (s *Surface) Pixels() []uint8 {
	return s.pix.Data()
}

// Image 返回当前画面的副本
func (s *Surface) Image() *image.RGBA {
	return s.pix.ToImage()
}

// At 读取单个像素，越界返回 false
func (s *Surface) At(x, y int) (color.RGBA, bool) {
	if !image.Pt(x, y).In(s.Bounds()) {
		return color.RGBA{}, false
	}
	off := (y*s.pix.Width() + x) * BytesPerPixel
	p := s.pix.Data()
	return color.RGBA{p[off+0], p[off+1], p[off+2], p[off+3]}, true
}

// Blit 将 sw×sh 的像素数据以左上角对齐写入画布，只复制重叠部分
func (s *Surface) Blit(src []uint8, sw, sh int) {
	dw, dh := s.Size()
	w := min(sw, dw)
	h := min(sh, dh)
	if w <= 0 || h <= 0 {
		return
	}

	dst := s.pix.Data()
	srcStride := sw * BytesPerPixel
	dstStride := dw * BytesPerPixel
	bytesPerRow := w * BytesPerPixel

	for y := 0; y < h; y++ {
		copy(dst[y*dstStride:y*dstStride+bytesPerRow], src[y*srcStride:y*srcStride+bytesPerRow])
	}
}

// SetStyle 设置后续绘制使用的样式
func (s *Surface) SetStyle(st Style) {
	s.style = st
}

// ---------- 绘制原语 ----------

// StrokeLine 描边线段
func (s *Surface) StrokeLine(x0, y0, x1, y1 float64) error {
	s.apply()
	s.dc.DrawLine(x0, y0, x1, y1)
	return s.stroke()
}

// StrokeRect 描边矩形，w/h 可以为负
func (s *Surface) StrokeRect(x, y, w, h float64) error {
	s.apply()
	s.dc.DrawRectangle(x, y, w, h)
	return s.stroke()
}

// FillRect 填充矩形
func (s *Surface) FillRect(x, y, w, h float64) error {
	s.apply()
	s.dc.DrawRectangle(x, y, w, h)
	return s.fill()
}

// StrokeEllipse 描边轴对齐椭圆
func (s *Surface) StrokeEllipse(cx, cy, rx, ry float64) error {
	s.apply()
	s.dc.DrawEllipse(cx, cy, rx, ry)
	return s.stroke()
}

// FillEllipse 填充轴对齐椭圆
func (s *Surface) FillEllipse(cx, cy, rx, ry float64) error {
	s.apply()
	s.dc.DrawEllipse(cx, cy, rx, ry)
	return s.fill()
}

func (s *Surface) apply() {
	s.dc.SetColor(s.style.Color)
	s.dc.SetLineWidth(s.style.Thickness)
}

func (s *Surface) stroke() error {
	if err := s.dc.Stroke(); err != nil {
		return fmt.Errorf("描边失败: %w", err)
	}
	return nil
}

func (s *Surface) fill() error {
	if err := s.dc.Fill(); err != nil {
		return fmt.Errorf("填充失败: %w", err)
	}
	return nil
}
