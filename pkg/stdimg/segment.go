package stdimg

import (
	"fmt"
	"strings"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// Key selects the screen color treated as background.
type Key int

const (
	KeyBlue Key = iota
	KeyGreen
	// KeyAuto asks DetectKey to pick blue or green from the image itself.
	KeyAuto
)

// Default thresholds for the segmentation rule.
const (
	DefaultThreshold           = 30.0
	DefaultNormalizedThreshold = 10.0
	DefaultDarknessSum         = 320.0
)

func (k Key) String() string {
	switch k {
	case KeyBlue:
		return "blue"
	case KeyGreen:
		return "green"
	case KeyAuto:
		return "auto"
	default:
		return fmt.Sprintf("Key(%d)", int(k))
	}
}

// ParseKey accepts b/blue, g/green and a/auto (case-insensitive).
func ParseKey(s string) (Key, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "blue":
		return KeyBlue, nil
	case "g", "green":
		return KeyGreen, nil
	case "a", "auto":
		return KeyAuto, nil
	default:
		return 0, fmt.Errorf("%w: %q (want b or g)", ErrInvalidKey, s)
	}
}

// SegmentOptions configures the chroma-key threshold rule.
type SegmentOptions struct {
	Key       Key
	Threshold float64
	// Normalize rescales each pixel so its brightest channel is 255 before testing.
	Normalize bool
	// Strict also requires the key channel to dominate and r+g+b < DarknessSum.
	Strict      bool
	DarknessSum float64
}

// DefaultSegmentOptions returns the plain difference-threshold configuration for key.
func DefaultSegmentOptions(key Key) SegmentOptions {
	return SegmentOptions{
		Key:         key,
		Threshold:   DefaultThreshold,
		DarknessSum: DefaultDarknessSum,
	}
}

func (o SegmentOptions) validate() error {
	if o.Key != KeyBlue && o.Key != KeyGreen {
		return fmt.Errorf("%w: %v", ErrInvalidKey, o.Key)
	}
	if o.Threshold < 0 {
		return fmt.Errorf("%w: threshold %v < 0", ErrInvalidParameter, o.Threshold)
	}
	if o.Strict && o.DarknessSum <= 0 {
		return fmt.Errorf("%w: darkness sum %v <= 0", ErrInvalidParameter, o.DarknessSum)
	}
	return nil
}

// resolve replaces KeyAuto with the key detected in src.
func (o SegmentOptions) resolve(src *raster.Raster) (SegmentOptions, error) {
	if o.Key != KeyAuto {
		return o, nil
	}
	k, err := DetectKey(src)
	if err != nil {
		return o, err
	}
	o.Key = k
	return o, nil
}

// isBackground applies the threshold rule to one pixel.
// Equal channels never pass the strict difference test, so ties are foreground.
func (o SegmentOptions) isBackground(r8, g8, b8 uint8) bool {
	r, g, b := float64(r8), float64(g8), float64(b8)
	if o.Normalize {
		m := max(r, g, b)
		if m > 0 {
			f := 255 / m
			r *= f
			g *= f
			b *= f
		}
	}
	var key, o1, o2 float64
	switch o.Key {
	case KeyBlue:
		key, o1, o2 = b, r, g
	case KeyGreen:
		key, o1, o2 = g, r, b
	default:
		return false
	}
	if key-o1 <= o.Threshold || key-o2 <= o.Threshold {
		return false
	}
	if o.Strict {
		if key <= o1 || key <= o2 {
			return false
		}
		if r+g+b >= o.DarknessSum {
			return false
		}
	}
	return true
}

// Segment classifies every pixel of src and returns a mask raster of the same
// size: background (0,0,0), foreground (255,255,255).
func Segment(src *raster.Raster, opts SegmentOptions) (*raster.Raster, error) {
	bm, err := ByteMask(src, opts)
	if err != nil {
		return nil, err
	}
	out, err := raster.New(src.Width, src.Height)
	if err != nil {
		return nil, err
	}
	for p, v := range bm {
		i := 3 * p
		out.Pix[i+0] = v
		out.Pix[i+1] = v
		out.Pix[i+2] = v
	}
	return out, nil
}

// ByteMask returns one byte per pixel of src: 0 for background, 255 for foreground.
func ByteMask(src *raster.Raster, opts SegmentOptions) ([]uint8, error) {
	if err := src.Validate(); err != nil {
		return nil, err
	}
	opts, err := opts.resolve(src)
	if err != nil {
		return nil, err
	}
	if err := opts.validate(); err != nil {
		return nil, err
	}
	mask := make([]uint8, src.Len())
	for p := range mask {
		i := 3 * p
		if opts.isBackground(src.Pix[i+0], src.Pix[i+1], src.Pix[i+2]) {
			mask[p] = 0
		} else {
			mask[p] = 255
		}
	}
	return mask, nil
}

// ApplyByteMask ANDs every channel of src with its pixel's mask byte and
// returns the result as a new raster; src is left untouched.
func ApplyByteMask(src *raster.Raster, mask []uint8) (*raster.Raster, error) {
	if len(mask) != src.Len() {
		return nil, fmt.Errorf("%w: mask has %d entries for %d pixels", ErrDimensionMismatch, len(mask), src.Len())
	}
	out := src.Clone()
	for p, m := range mask {
		i := 3 * p
		out.Pix[i+0] &= m
		out.Pix[i+1] &= m
		out.Pix[i+2] &= m
	}
	return out, nil
}

// KeyOut blacks out the background of src, keeping foreground pixels as-is.
func KeyOut(src *raster.Raster, opts SegmentOptions) (*raster.Raster, error) {
	mask, err := ByteMask(src, opts)
	if err != nil {
		return nil, err
	}
	return ApplyByteMask(src, mask)
}

// DefaultKeyOutOptions is the normalized sub-mode used by KeyOut callers that
// have no explicit configuration.
func DefaultKeyOutOptions(key Key) SegmentOptions {
	o := DefaultSegmentOptions(key)
	o.Normalize = true
	o.Threshold = DefaultNormalizedThreshold
	return o
}
