package stdimg

import (
	"fmt"
	"math"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// Scale resizes src by factor using nearest-neighbor sampling.
// The output is floor(W*factor) x floor(H*factor); output pixel (x,y) copies
// source pixel (floor(x/factor), floor(y/factor)).
func Scale(src *raster.Raster, factor float64) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if factor <= 0 || math.IsNaN(factor) || math.IsInf(factor, 0) {
		return nil, fmt.Errorf("%w: scale factor %v must be positive and finite", ErrInvalidParameter, factor)
	}
	newW := int(math.Floor(float64(src.Width) * factor))
	newH := int(math.Floor(float64(src.Height) * factor))
	if newW <= 0 || newH <= 0 {
		return nil, fmt.Errorf("%w: scaling %s by %v gives %dx%d", ErrInvalidParameter, src, factor, newW, newH)
	}
	out, err := raster.New(newW, newH)
	if err != nil {
		return nil, err
	}
	out.MaxVal = src.MaxVal

	// precompute source columns; rows are looked up per line
	cols := make([]int, newW)
	for x := range cols {
		cols[x] = minInt(int(float64(x)/factor), src.Width-1)
	}
	for y := 0; y < newH; y++ {
		sy := minInt(int(float64(y)/factor), src.Height-1)
		for x := 0; x < newW; x++ {
			si := src.PixOffset(cols[x], sy)
			di := out.PixOffset(x, y)
			copy(out.Pix[di:di+3], src.Pix[si:si+3])
		}
	}
	return out, nil
}

// Rotate90 turns src a quarter turn clockwise: the first row becomes the last
// column. Source (x,y) lands at (H-1-y, x) in the W'=H, H'=W output.
func Rotate90(src *raster.Raster) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	out := &raster.Raster{
		Width:  src.Height,
		Height: src.Width,
		MaxVal: src.MaxVal,
		Pix:    make([]uint8, len(src.Pix)),
	}
	for y := 0; y < src.Height; y++ {
		for x := 0; x < src.Width; x++ {
			si := src.PixOffset(x, y)
			di := out.PixOffset(src.Height-1-y, x)
			copy(out.Pix[di:di+3], src.Pix[si:si+3])
		}
	}
	return out, nil
}

// small helpers
func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
