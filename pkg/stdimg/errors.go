package stdimg

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidKey is returned for a key color other than blue or green.
	ErrInvalidKey = errors.New("invalid key color")
	// ErrInvalidParameter is returned for numeric parameters outside their domain.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrDimensionMismatch is returned when foreground and mask sizes differ.
	ErrDimensionMismatch = errors.New("foreground and mask dimensions differ")
	// ErrOffsetOutOfBounds is returned when the placed foreground leaves the background.
	ErrOffsetOutOfBounds = errors.New("foreground does not fit background at offset")
	// ErrNoKeyColor is returned by DetectKey when no saturated blue or green dominates.
	ErrNoKeyColor = errors.New("no blue or green key color detected")
)

// DimensionError reports an incompatible foreground/mask/background placement.
// It carries every size involved so the caller can print them.
type DimensionError struct {
	FgW, FgH     int
	MaskW, MaskH int
	BgW, BgH     int
	DX, DY       int
	Err          error
}

func (e *DimensionError) Error() string {
	return fmt.Sprintf("%v: foreground %dx%d, mask %dx%d, background %dx%d, offset (%d,%d)",
		e.Err, e.FgW, e.FgH, e.MaskW, e.MaskH, e.BgW, e.BgH, e.DX, e.DY)
}

func (e *DimensionError) Unwrap() error { return e.Err }
