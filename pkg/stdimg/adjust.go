package stdimg

import (
	"fmt"
	"math"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// AdjustOptions configures ColorShift. Bands are exclusive on both ends.
type AdjustOptions struct {
	RedDecrease   int
	RedLow        int
	RedHigh       int
	GreenIncrease int
	GreenLow      int
	GreenHigh     int
}

// DefaultAdjustOptions returns the foliage-boost settings: pull 50 out of
// mid reds (100..200) and add 30 to mid greens (50..150).
func DefaultAdjustOptions() AdjustOptions {
	return AdjustOptions{
		RedDecrease:   50,
		RedLow:        100,
		RedHigh:       200,
		GreenIncrease: 30,
		GreenLow:      50,
		GreenHigh:     150,
	}
}

// ColorShift lowers reds and raises greens inside their bands. Unlike the
// compositor, additive shifts can leave [0,255], so results are clamped.
func ColorShift(src *raster.Raster, opts AdjustOptions) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	if opts.RedDecrease < 0 || opts.GreenIncrease < 0 {
		return nil, fmt.Errorf("%w: shifts must be non-negative", ErrInvalidParameter)
	}
	out := src.Clone()
	for i := 0; i < len(out.Pix); i += 3 {
		r := int(out.Pix[i+0])
		if r > opts.RedLow && r < opts.RedHigh {
			out.Pix[i+0] = clampChannel(r - opts.RedDecrease)
		}
		g := int(out.Pix[i+1])
		if g > opts.GreenLow && g < opts.GreenHigh {
			out.Pix[i+1] = clampChannel(g + opts.GreenIncrease)
		}
	}
	return out, nil
}

// SqrtRamp darkens src toward the left edge: column x is scaled by
// sqrt(x/(W-1)), truncating. A one-column raster is returned unchanged.
func SqrtRamp(src *raster.Raster) (*raster.Raster, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	out := src.Clone()
	if src.Width == 1 {
		return out, nil
	}
	ramp := make([]float32, src.Width)
	for x := range ramp {
		ramp[x] = float32(math.Sqrt(float64(x) / float64(src.Width-1)))
	}
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := out.PixOffset(x, y)
			f := ramp[x]
			out.Pix[i+0] = uint8(clampFloatToUint8(float64(f * float32(out.Pix[i+0]))))
			out.Pix[i+1] = uint8(clampFloatToUint8(float64(f * float32(out.Pix[i+1]))))
			out.Pix[i+2] = uint8(clampFloatToUint8(float64(f * float32(out.Pix[i+2]))))
		}
	}
	return out, nil
}

// clampChannel clamps an integer channel to [0,255].
func clampChannel(v int) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// clampFloatToUint8 ensures v in [0,255]
func clampFloatToUint8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}
