package editor

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"rasterpad/internal/raster"
)

// ParseDimension 解析控件中的宽高，必须为不超过 raster.MaxSide 的正整数
func ParseDimension(s string) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("尺寸为空")
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("尺寸无效 %q: %w", s, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("尺寸必须为正整数: %d", n)
	}
	if n > raster.MaxSide {
		return 0, fmt.Errorf("尺寸超出上限 %d: %d", raster.MaxSide, n)
	}
	return n, nil
}

// ParsePositive 解析控件中的缩放、线宽，必须为正数
func ParsePositive(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, errors.New("数值为空")
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("数值无效 %q: %w", s, err)
	}
	if !(v > 0) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("数值必须为正数: %v", v)
	}
	return v, nil
}
