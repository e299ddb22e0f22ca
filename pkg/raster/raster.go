// Package raster holds the flat RGB pixel buffer every chromakey stage reads
// and produces.
package raster

import (
	"errors"
	"fmt"
	"image"
	"image/color"
)

// DefaultMaxVal is the channel ceiling all blend arithmetic assumes.
const DefaultMaxVal = 255

// ErrInvalidDimensions is returned when a raster would have a non-positive side.
var ErrInvalidDimensions = errors.New("raster dimensions must be positive")

// Raster is a row-major buffer of 8-bit RGB triples.
// len(Pix) is always 3*Width*Height.
type Raster struct {
	Width  int
	Height int
	MaxVal int
	Pix    []uint8
}

// New allocates a black raster of the given size with MaxVal 255.
func New(w, h int) (*Raster, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, w, h)
	}
	return &Raster{Width: w, Height: h, MaxVal: DefaultMaxVal, Pix: make([]uint8, 3*w*h)}, nil
}

// MustNew is New for sizes already known to be valid.
func MustNew(w, h int) *Raster {
	r, err := New(w, h)
	if err != nil {
		panic(err)
	}
	return r
}

// Filled returns a w x h raster with every pixel set to c.
func Filled(w, h int, c color.RGBA) (*Raster, error) {
	r, err := New(w, h)
	if err != nil {
		return nil, err
	}
	for i := 0; i < len(r.Pix); i += 3 {
		r.Pix[i+0] = c.R
		r.Pix[i+1] = c.G
		r.Pix[i+2] = c.B
	}
	return r, nil
}

// PixOffset returns the index of the red channel of pixel (x,y).
func (r *Raster) PixOffset(x, y int) int {
	return 3 * (y*r.Width + x)
}

// Len is the number of pixels.
func (r *Raster) Len() int { return r.Width * r.Height }

// At returns pixel (x,y) as an opaque color.RGBA.
func (r *Raster) At(x, y int) color.RGBA {
	i := r.PixOffset(x, y)
	return color.RGBA{R: r.Pix[i+0], G: r.Pix[i+1], B: r.Pix[i+2], A: 255}
}

// Set writes the RGB channels of c to pixel (x,y).
func (r *Raster) Set(x, y int, c color.RGBA) {
	i := r.PixOffset(x, y)
	r.Pix[i+0] = c.R
	r.Pix[i+1] = c.G
	r.Pix[i+2] = c.B
}

// Bounds returns the raster extent as an image.Rectangle anchored at the origin.
func (r *Raster) Bounds() image.Rectangle {
	return image.Rect(0, 0, r.Width, r.Height)
}

// SameSize reports whether r and o have identical dimensions.
func (r *Raster) SameSize(o *Raster) bool {
	return r.Width == o.Width && r.Height == o.Height
}

// Clone returns a deep copy of r.
func (r *Raster) Clone() *Raster {
	if r == nil {
		return nil
	}
	out := &Raster{Width: r.Width, Height: r.Height, MaxVal: r.MaxVal, Pix: make([]uint8, len(r.Pix))}
	copy(out.Pix, r.Pix)
	return out
}

// Equal reports whether both rasters have the same size, MaxVal and pixels.
func (r *Raster) Equal(o *Raster) bool {
	if r == nil || o == nil {
		return r == o
	}
	if !r.SameSize(o) || r.MaxVal != o.MaxVal || len(r.Pix) != len(o.Pix) {
		return false
	}
	for i := range r.Pix {
		if r.Pix[i] != o.Pix[i] {
			return false
		}
	}
	return true
}

// Validate checks the length and channel-range invariants.
func (r *Raster) Validate() error {
	if r == nil {
		return errors.New("raster is nil")
	}
	if r.Width <= 0 || r.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidDimensions, r.Width, r.Height)
	}
	if r.MaxVal <= 0 || r.MaxVal > 255 {
		return fmt.Errorf("max channel value %d out of range 1..255", r.MaxVal)
	}
	if len(r.Pix) != 3*r.Width*r.Height {
		return fmt.Errorf("pixel buffer holds %d bytes, want %d", len(r.Pix), 3*r.Width*r.Height)
	}
	return nil
}

func (r *Raster) String() string {
	return fmt.Sprintf("%dx%d", r.Width, r.Height)
}
