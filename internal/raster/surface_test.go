package raster

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var red = color.RGBA{255, 0, 0, 255}

// paint 直接写入像素
func paint(s *Surface, x, y int, c color.RGBA) {
	off := (y*s.Width() + x) * BytesPerPixel
	copy(s.Pixels()[off:off+BytesPerPixel], []uint8{c.R, c.G, c.B, c.A})
}

func TestNewSurfaceIsWhite(t *testing.T) {
	s, err := NewSurface(4, 3)
	require.NoError(t, err)

	w, h := s.Size()
	assert.Equal(t, 4, w)
	assert.Equal(t, 3, h)
	assert.Len(t, s.Pixels(), 4*3*BytesPerPixel)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c, ok := s.At(x, y)
			require.True(t, ok)
			require.Equal(t, White, c)
		}
	}
}

func TestNewSurfaceRejectsBadSize(t *testing.T) {
	for _, sz := range [][2]int{{0, 10}, {10, 0}, {-1, 5}, {MaxSide + 1, 1}, {1, 1 << 40}, {20000, 20000}} {
		_, err := NewSurface(sz[0], sz[1])
		assert.ErrorIs(t, err, ErrInvalidSize, "%dx%d", sz[0], sz[1])
	}
}

func TestCheckSize(t *testing.T) {
	assert.NoError(t, CheckSize(1, 1))
	assert.NoError(t, CheckSize(MaxSide, 1))
	assert.NoError(t, CheckSize(16384, 16384))
	assert.ErrorIs(t, CheckSize(16384, 16385), ErrInvalidSize)
	assert.ErrorIs(t, CheckSize(1<<62, 4), ErrInvalidSize)
}

func TestAtOutOfBounds(t *testing.T) {
	s, err := NewSurface(2, 2)
	require.NoError(t, err)

	_, ok := s.At(2, 0)
	assert.False(t, ok)
	_, ok = s.At(0, -1)
	assert.False(t, ok)
}

func TestResizeDiscardsContent(t *testing.T) {
	s, err := NewSurface(3, 3)
	require.NoError(t, err)
	paint(s, 1, 1, red)

	require.NoError(t, s.Resize(5, 2))
	assert.Equal(t, 5, s.Width())
	assert.Equal(t, 2, s.Height())
	c, _ := s.At(1, 1)
	assert.Equal(t, White, c)

	assert.ErrorIs(t, s.Resize(0, 2), ErrInvalidSize)
	assert.ErrorIs(t, s.Resize(1<<40, 2), ErrInvalidSize)
	assert.Equal(t, 5, s.Width(), "failed resize keeps the old buffer")
}

func TestBlitCopiesTopLeftOverlap(t *testing.T) {
	src, err := NewSurface(4, 4)
	require.NoError(t, err)
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			paint(src, x, y, red)
		}
	}
	data := append([]uint8(nil), src.Pixels()...)

	dst, err := NewSurface(2, 6)
	require.NoError(t, err)
	dst.Blit(data, 4, 4)

	for y := 0; y < 6; y++ {
		for x := 0; x < 2; x++ {
			c, _ := dst.At(x, y)
			if y < 4 {
				assert.Equal(t, red, c, "(%d,%d)", x, y)
			} else {
				assert.Equal(t, White, c, "(%d,%d)", x, y)
			}
		}
	}
}

func TestFillRectPaintsInterior(t *testing.T) {
	s, err := NewSurface(20, 20)
	require.NoError(t, err)
	s.SetStyle(Style{Color: red, Thickness: 1})

	require.NoError(t, s.FillRect(2, 2, 10, 10))

	c, _ := s.At(6, 6)
	assert.Greater(t, c.R, uint8(200))
	assert.Less(t, c.G, uint8(60))
	c, _ = s.At(16, 16)
	assert.Equal(t, White, c)
}

func TestStrokeLineMarksPixels(t *testing.T) {
	s, err := NewSurface(20, 20)
	require.NoError(t, err)
	s.SetStyle(Style{Color: color.RGBA{0, 0, 0, 255}, Thickness: 3})

	require.NoError(t, s.StrokeLine(2, 10, 18, 10))

	c, _ := s.At(10, 10)
	assert.Less(t, c.R, uint8(128))
	c, _ = s.At(10, 2)
	assert.Equal(t, White, c)
}

func TestStrokeEllipseLeavesCentre(t *testing.T) {
	s, err := NewSurface(40, 40)
	require.NoError(t, err)
	require.NoError(t, s.StrokeEllipse(20, 20, 15, 10))

	c, _ := s.At(20, 20)
	assert.Equal(t, White, c)

	require.NoError(t, s.FillEllipse(20, 20, 15, 10))
	c, _ = s.At(20, 20)
	assert.Less(t, c.R, uint8(128))
}
