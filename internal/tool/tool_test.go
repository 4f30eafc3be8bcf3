package tool

import (
	"fmt"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// recorder 记录绘制调用
type recorder struct {
	calls []string
}

func (r *recorder) add(op string, a ...float64) error {
	r.calls = append(r.calls, fmt.Sprint(op, a))
	return nil
}

func (r *recorder) StrokeLine(x0, y0, x1, y1 float64) error { return r.add("line", x0, y0, x1, y1) }
func (r *recorder) StrokeRect(x, y, w, h float64) error     { return r.add("rect", x, y, w, h) }
func (r *recorder) FillRect(x, y, w, h float64) error       { return r.add("fillrect", x, y, w, h) }
func (r *recorder) StrokeEllipse(cx, cy, rx, ry float64) error {
	return r.add("ellipse", cx, cy, rx, ry)
}
func (r *recorder) FillEllipse(cx, cy, rx, ry float64) error {
	return r.add("fillellipse", cx, cy, rx, ry)
}

func TestRenderDispatch(t *testing.T) {
	from, to := Point{10, 20}, Point{30, 60}
	cases := map[Mode]string{
		ModeBrush:           "line[10 20 30 60]",
		ModeLine:            "line[10 20 30 60]",
		ModeRectangle:       "rect[10 20 20 40]",
		ModeFilledRectangle: "fillrect[10 20 20 40]",
		ModeEllipse:         "ellipse[20 40 10 20]",
		ModeFilledEllipse:   "fillellipse[20 40 10 20]",
	}
	for m, want := range cases {
		r := &recorder{}
		require.NoError(t, Render(r, m, from, to))
		assert.Equal(t, []string{want}, r.calls, m.String())
	}
}

func TestRenderEllipseReversedDrag(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Render(r, ModeEllipse, Point{30, 60}, Point{10, 20}))
	assert.Equal(t, []string{"ellipse[20 40 10 20]"}, r.calls)
}

func TestRenderRectangleNegativeExtent(t *testing.T) {
	r := &recorder{}
	require.NoError(t, Render(r, ModeRectangle, Point{5, 5}, Point{1, 2}))
	assert.Equal(t, []string{"rect[5 5 -4 -3]"}, r.calls)
}

func TestModeRoundTrip(t *testing.T) {
	for m := ModeBrush; m < ModeCount; m++ {
		got, err := ParseMode(m.String())
		require.NoError(t, err)
		assert.Equal(t, m, got)
		assert.NotEmpty(t, ModeName[m])
	}

	_, err := ParseMode("spray")
	assert.Error(t, err)
	assert.False(t, Mode(42).Valid())
}

func TestPreviewed(t *testing.T) {
	assert.False(t, ModeBrush.Previewed())
	for m := ModeLine; m < ModeCount; m++ {
		assert.True(t, m.Previewed(), m.String())
	}
}

func TestHex(t *testing.T) {
	c, err := ParseHex("#FF8000")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{255, 128, 0, 255}, c)
	assert.Equal(t, "#ff8000", FormatHex(c))

	c, err = ParseHex("00ff00")
	require.NoError(t, err)
	assert.Equal(t, color.RGBA{0, 255, 0, 255}, c)

	for _, bad := range []string{"", "#fff", "#gg0000", "#1234567", "#+12345"} {
		_, err := ParseHex(bad)
		assert.ErrorIs(t, err, ErrInvalidColor, bad)
	}

	assert.Equal(t, "#000000", DefaultStyle().Hex())
}
