package tool

import "math"

// Point 缓冲区坐标（可为小数）
type Point struct {
	X, Y float64
}

// Canvas 形状绘制目标
type Canvas interface {
	StrokeLine(x0, y0, x1, y1 float64) error
	StrokeRect(x, y, w, h float64) error
	FillRect(x, y, w, h float64) error
	StrokeEllipse(cx, cy, rx, ry float64) error
	FillEllipse(cx, cy, rx, ry float64) error
}

// Render 按工具类型从 from 到 to 绘制一次
// 画笔: from 为上一个点；其余工具: from 为按下时的锚点
func Render(c Canvas, m Mode, from, to Point) error {
	switch m {
	case ModeBrush, ModeLine:
		return c.StrokeLine(from.X, from.Y, to.X, to.Y)
	case ModeRectangle:
		return c.StrokeRect(from.X, from.Y, to.X-from.X, to.Y-from.Y)
	case ModeFilledRectangle:
		return c.FillRect(from.X, from.Y, to.X-from.X, to.Y-from.Y)
	case ModeEllipse:
		cx, cy, rx, ry := ellipseFromCorners(from, to)
		return c.StrokeEllipse(cx, cy, rx, ry)
	case ModeFilledEllipse:
		cx, cy, rx, ry := ellipseFromCorners(from, to)
		return c.FillEllipse(cx, cy, rx, ry)
	}
	return nil
}

// ellipseFromCorners 两角点确定的轴对齐椭圆：中心为中点，半径为半差值
func ellipseFromCorners(a, b Point) (cx, cy, rx, ry float64) {
	cx = (a.X + b.X) / 2
	cy = (a.Y + b.Y) / 2
	rx = math.Abs(b.X-a.X) / 2
	ry = math.Abs(b.Y-a.Y) / 2
	return
}
