package stdimg

import (
	"github.com/Fepozopo/chromakey/pkg/raster"
)

// The mask is not a single alpha channel: each of its R, G and B values is the
// opacity of the matching foreground channel. Segment masks carry equal
// channels, which reduces this to ordinary binary compositing.

// channelWeight converts a mask byte to an opacity with the same single
// precision rounding the blend uses.
func channelWeight(v uint8) float32 {
	return float32(float64(v) / 255.0)
}

// blendChannel mixes fg over bg with weight a and truncates to 8 bits.
// A weighted mean of two bytes never leaves [0,255], so no clamp is needed.
func blendChannel(a float32, fg, bg uint8) uint8 {
	return uint8(a*float32(fg) + (1-a)*float32(bg))
}

// CheckPlacement validates that an fgW x fgH foreground with an mW x mH mask
// fits inside a bgW x bgH background at (dx,dy).
func CheckPlacement(bgW, bgH, fgW, fgH, mW, mH, dx, dy int) error {
	e := &DimensionError{FgW: fgW, FgH: fgH, MaskW: mW, MaskH: mH, BgW: bgW, BgH: bgH, DX: dx, DY: dy}
	if fgW != mW || fgH != mH {
		e.Err = ErrDimensionMismatch
		return e
	}
	if dx < 0 || dy < 0 || dx+fgW > bgW || dy+fgH > bgH {
		e.Err = ErrOffsetOutOfBounds
		return e
	}
	return nil
}

// Composite blends fg into a copy of bg at offset (dx,dy) using mask as a
// per-channel opacity map. Pixels outside the footprint keep bg's values.
// Nothing is blended unless the placement is valid.
func Composite(bg, fg, mask *raster.Raster, dx, dy int) (*raster.Raster, error) {
	for _, r := range []*raster.Raster{bg, fg, mask} {
		if err := r.Validate(); err != nil {
			return nil, err
		}
	}
	if err := CheckPlacement(bg.Width, bg.Height, fg.Width, fg.Height, mask.Width, mask.Height, dx, dy); err != nil {
		return nil, err
	}

	out := bg.Clone()
	for j := 0; j < fg.Height; j++ {
		for i := 0; i < fg.Width; i++ {
			fi := fg.PixOffset(i, j)
			oi := out.PixOffset(i+dx, j+dy)
			beta := channelWeight(mask.Pix[fi+0])
			alpha := channelWeight(mask.Pix[fi+1])
			gamma := channelWeight(mask.Pix[fi+2])

			out.Pix[oi+0] = blendChannel(beta, fg.Pix[fi+0], out.Pix[oi+0])
			out.Pix[oi+1] = blendChannel(alpha, fg.Pix[fi+1], out.Pix[oi+1])
			out.Pix[oi+2] = blendChannel(gamma, fg.Pix[fi+2], out.Pix[oi+2])
		}
	}
	return out, nil
}
