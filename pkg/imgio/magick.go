//go:build imagick

package imgio

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/gographics/imagick.v3/imagick"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// MagickAvailable reports whether this binary was built with ImageMagick.
const MagickAvailable = true

// MagickCodec reads and writes any format ImageMagick knows. Callers must
// bracket its use with imagick.Initialize/Terminate (see StartMagick).
type MagickCodec struct{}

// StartMagick initializes ImageMagick and returns the matching teardown.
func StartMagick() (Codec, func()) {
	imagick.Initialize()
	return MagickCodec{}, imagick.Terminate
}

// Decode reads path through MagickWand and exports 8-bit RGB pixels.
func (MagickCodec) Decode(path string) (*raster.Raster, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	}
	mw := imagick.NewMagickWand()
	defer mw.Destroy()
	if err := mw.ReadImage(path); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
	}
	w, h := mw.GetImageWidth(), mw.GetImageHeight()
	px, err := mw.ExportImagePixels(0, 0, w, h, "RGB", imagick.PIXEL_CHAR)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
	}
	pix, ok := px.([]byte)
	if !ok {
		return nil, fmt.Errorf("%w: %s: unexpected pixel storage %T", ErrFormatInvalid, path, px)
	}
	r, err := raster.New(int(w), int(h))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
	}
	if len(pix) != len(r.Pix) {
		return nil, fmt.Errorf("%w: %s: exported %d bytes, want %d", ErrFormatInvalid, path, len(pix), len(r.Pix))
	}
	copy(r.Pix, pix)
	return r, nil
}

// Encode hands the RGB buffer to MagickWand, which picks the format from the extension.
func (MagickCodec) Encode(r *raster.Raster, path string) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	mw := imagick.NewMagickWand()
	defer mw.Destroy()
	if err := mw.ConstituteImage(uint(r.Width), uint(r.Height), "RGB", imagick.PIXEL_CHAR, r.Pix); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	if err := mw.WriteImage(path); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	return nil
}
