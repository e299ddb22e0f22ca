// Package pipeline runs one chroma-key job end to end: decode the inputs,
// segment or transform them, validate placement, composite and encode.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Fepozopo/chromakey/pkg/imgio"
	"github.com/Fepozopo/chromakey/pkg/raster"
	"github.com/Fepozopo/chromakey/pkg/stdimg"
)

// Mode names one of the jobs Run can perform. The values match the CLI command names.
type Mode string

const (
	ModeMask           Mode = "mask"
	ModeKeyOut         Mode = "keyout"
	ModeBlend          Mode = "blend"
	ModeBlendOffset    Mode = "blend-offset"
	ModeBlendTransform Mode = "blend-transform"
	ModeAdjust         Mode = "adjust"
)

// Modes lists every mode in CLI order.
var Modes = []Mode{ModeMask, ModeKeyOut, ModeBlend, ModeBlendOffset, ModeBlendTransform, ModeAdjust}

// ParseMode maps a command name to its Mode.
func ParseMode(s string) (Mode, error) {
	for _, m := range Modes {
		if string(m) == s {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Options describes a single run. Input is used by mask, keyout and adjust;
// Foreground, Background and Mask by the blend modes.
type Options struct {
	Mode Mode

	Input      string
	Foreground string
	Background string
	Mask       string
	Output     string

	Segment stdimg.SegmentOptions
	// Adjust configures ModeAdjust; the zero value selects DefaultAdjustOptions.
	Adjust stdimg.AdjustOptions

	// Placement of the foreground's top-left corner on the background.
	// Ignored by ModeBlend, which always composites at the origin.
	DX, DY int
	// Scale is the blend-transform resize factor; zero means 1.
	Scale  float64
	Rotate bool

	// Codec reads and writes image files. Nil selects imgio.Default.
	Codec imgio.Codec
}

// Result reports what Run wrote.
type Result struct {
	Mode   Mode
	Output string
	Width  int
	Height int
	// Coverage is set for runs that produced or consumed a mask.
	Coverage *stdimg.Coverage
}

// Run executes opts. Nothing is written when any stage fails.
func Run(ctx context.Context, opts Options) (*Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	codec := opts.Codec
	if codec == nil {
		codec = imgio.Default
	}
	r := &runner{ctx: ctx, opts: opts, codec: codec, log: Logger().With("mode", string(opts.Mode))}

	var (
		out *raster.Raster
		res = &Result{Mode: opts.Mode, Output: opts.Output}
		err error
	)
	switch opts.Mode {
	case ModeMask, ModeKeyOut:
		out, res.Coverage, err = r.segment()
	case ModeBlend, ModeBlendOffset, ModeBlendTransform:
		out, res.Coverage, err = r.blend()
	case ModeAdjust:
		out, err = r.adjust()
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownMode, opts.Mode)
	}
	if err != nil {
		return nil, err
	}

	if err := r.checkpoint(); err != nil {
		return nil, err
	}
	if err := codec.Encode(out, opts.Output); err != nil {
		return nil, &StageError{Stage: "encode", Path: opts.Output, Err: err}
	}
	res.Width, res.Height = out.Width, out.Height
	r.log.Info("wrote output", "path", opts.Output, "size", out.String())
	return res, nil
}

type runner struct {
	ctx   context.Context
	opts  Options
	codec imgio.Codec
	log   *slog.Logger
}

func (r *runner) checkpoint() error {
	return r.ctx.Err()
}

func (r *runner) decode(role, path string) (*raster.Raster, error) {
	if err := r.checkpoint(); err != nil {
		return nil, err
	}
	img, err := r.codec.Decode(path)
	if err != nil {
		return nil, &StageError{Stage: "decode", Role: role, Path: path, Err: err}
	}
	r.log.Debug("decoded", "role", role, "path", path, "size", img.String(), "maxval", img.MaxVal)
	if img.MaxVal != raster.DefaultMaxVal {
		r.log.Warn("max channel value is not 255; channels are treated as 8-bit", "role", role, "maxval", img.MaxVal)
	}
	return img, nil
}

func (r *runner) segment() (*raster.Raster, *stdimg.Coverage, error) {
	src, err := r.decode("input", r.opts.Input)
	if err != nil {
		return nil, nil, err
	}
	if err := r.checkpoint(); err != nil {
		return nil, nil, err
	}

	so := r.opts.Segment
	if so.Key == stdimg.KeyAuto {
		k, err := stdimg.DetectKey(src)
		if err != nil {
			return nil, nil, &StageError{Stage: "segment", Err: err}
		}
		r.log.Debug("detected key", "key", k.String())
		so.Key = k
	}

	if r.opts.Mode == ModeKeyOut {
		out, err := stdimg.KeyOut(src, so)
		if err != nil {
			return nil, nil, &StageError{Stage: "segment", Err: err}
		}
		r.log.Debug("keyed out", "key", so.Key.String())
		return out, nil, nil
	}

	mask, err := stdimg.Segment(src, so)
	if err != nil {
		return nil, nil, &StageError{Stage: "segment", Err: err}
	}
	cov := stdimg.MaskCoverage(mask)
	r.log.Debug("segmented", "key", so.Key.String(), "transparent", cov.Transparent)
	return mask, &cov, nil
}

func (r *runner) blend() (*raster.Raster, *stdimg.Coverage, error) {
	fg, err := r.decode("foreground", r.opts.Foreground)
	if err != nil {
		return nil, nil, err
	}
	bg, err := r.decode("background", r.opts.Background)
	if err != nil {
		return nil, nil, err
	}
	mask, err := r.decode("mask", r.opts.Mask)
	if err != nil {
		return nil, nil, err
	}

	dx, dy := r.opts.DX, r.opts.DY
	if r.opts.Mode == ModeBlend {
		dx, dy = 0, 0
	}

	if r.opts.Mode == ModeBlendTransform {
		if err := r.checkpoint(); err != nil {
			return nil, nil, err
		}
		fg, mask, err = r.transform(fg, mask)
		if err != nil {
			return nil, nil, err
		}
	}

	if err := r.checkpoint(); err != nil {
		return nil, nil, err
	}
	r.log.Debug("placement",
		"foreground", fg.String(), "mask", mask.String(), "background", bg.String(),
		"dx", dx, "dy", dy)
	if err := stdimg.CheckPlacement(bg.Width, bg.Height, fg.Width, fg.Height, mask.Width, mask.Height, dx, dy); err != nil {
		return nil, nil, &StageError{Stage: "validate", Err: err}
	}
	cov := stdimg.MaskCoverage(mask)
	r.log.Debug("mask coverage", "r", cov.MeanR, "g", cov.MeanG, "b", cov.MeanB, "transparent", cov.Transparent)

	out, err := stdimg.Composite(bg, fg, mask, dx, dy)
	if err != nil {
		return nil, nil, &StageError{Stage: "composite", Err: err}
	}
	return out, &cov, nil
}

// transform applies the optional quarter turn and then the scale to both
// foreground and mask so their dimensions stay paired.
func (r *runner) transform(fg, mask *raster.Raster) (*raster.Raster, *raster.Raster, error) {
	if r.opts.Rotate {
		var err error
		if fg, err = stdimg.Rotate90(fg); err != nil {
			return nil, nil, &StageError{Stage: "transform", Role: "foreground", Err: err}
		}
		if mask, err = stdimg.Rotate90(mask); err != nil {
			return nil, nil, &StageError{Stage: "transform", Role: "mask", Err: err}
		}
	}
	factor := r.opts.Scale
	if factor == 0 {
		factor = 1
	}
	sf, err := stdimg.Scale(fg, factor)
	if err != nil {
		return nil, nil, &StageError{Stage: "transform", Role: "foreground", Err: err}
	}
	sm, err := stdimg.Scale(mask, factor)
	if err != nil {
		return nil, nil, &StageError{Stage: "transform", Role: "mask", Err: err}
	}
	r.log.Debug("transformed", "rotate", r.opts.Rotate, "scale", factor,
		"foreground", sf.String(), "mask", sm.String())
	return sf, sm, nil
}

func (r *runner) adjust() (*raster.Raster, error) {
	src, err := r.decode("input", r.opts.Input)
	if err != nil {
		return nil, err
	}
	if err := r.checkpoint(); err != nil {
		return nil, err
	}
	ao := r.opts.Adjust
	if ao == (stdimg.AdjustOptions{}) {
		ao = stdimg.DefaultAdjustOptions()
	}
	shifted, err := stdimg.ColorShift(src, ao)
	if err != nil {
		return nil, &StageError{Stage: "adjust", Err: err}
	}
	out, err := stdimg.SqrtRamp(shifted)
	if err != nil {
		return nil, &StageError{Stage: "adjust", Err: err}
	}
	return out, nil
}

// IsValidation reports whether err came from placement validation.
func IsValidation(err error) bool {
	var de *stdimg.DimensionError
	return errors.As(err, &de)
}
