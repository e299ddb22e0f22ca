// Package imgio reads and writes Rasters. Netpbm (P3/P6, plus P2/P5 gray)
// is handled natively; PNG, JPEG, GIF, BMP, TIFF and WebP go through the
// image package decoders.
package imgio

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

var (
	// ErrNotFound is returned when the input file does not exist.
	ErrNotFound = errors.New("image not found")
	// ErrFormatInvalid is returned when the file is not a decodable image.
	ErrFormatInvalid = errors.New("invalid image format")
	// ErrWriteFailed is returned when the output cannot be written.
	ErrWriteFailed = errors.New("image write failed")
)

// Codec is the decode/encode pair the pipeline consumes.
type Codec interface {
	Decode(path string) (*raster.Raster, error)
	Encode(r *raster.Raster, path string) error
}

// Default is the pure-Go codec.
var Default Codec = StdCodec{}

// Decode reads path with the Default codec.
func Decode(path string) (*raster.Raster, error) { return Default.Decode(path) }

// Encode writes r to path with the Default codec.
func Encode(r *raster.Raster, path string) error { return Default.Encode(r, path) }

// StdCodec decodes by content sniffing and encodes by file extension.
type StdCodec struct {
	// JPEGQuality defaults to 92 when zero.
	JPEGQuality int
}

// Decode loads path into a Raster.
func (c StdCodec) Decode(path string) (*raster.Raster, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	if isNetpbm(b) {
		r, err := readNetpbm(bufio.NewReader(bytes.NewReader(b)), len(b))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
		}
		return r, nil
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
	}
	r, err := raster.FromImage(img)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrFormatInvalid, path, err)
	}
	return r, nil
}

// Encode writes r to path using a format inferred from the extension.
// Supports .ppm/.pnm, .png, .jpg/.jpeg, .gif, .bmp, .tif/.tiff; anything else is written as PPM.
func (c StdCodec) Encode(r *raster.Raster, path string) error {
	if err := r.Validate(); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	var buf bytes.Buffer
	if err := c.encodeTo(&buf, r, Format(path)); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrWriteFailed, path, err)
	}
	// encode fully before touching the filesystem so a failure leaves no partial file
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (c StdCodec) encodeTo(w *bytes.Buffer, r *raster.Raster, format string) error {
	switch format {
	case "png":
		return png.Encode(w, r.ToNRGBA())
	case "jpeg":
		q := c.JPEGQuality
		if q == 0 {
			q = 92
		}
		return jpeg.Encode(w, r.ToNRGBA(), &jpeg.Options{Quality: q})
	case "gif":
		return gif.Encode(w, r.ToNRGBA(), nil)
	case "bmp":
		return bmp.Encode(w, r.ToNRGBA())
	case "tiff":
		return tiff.Encode(w, r.ToNRGBA(), &tiff.Options{Compression: tiff.Deflate})
	default:
		return writePPM(w, r)
	}
}

// Format maps a filename extension to the encoder used for it.
func Format(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return "png"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".gif":
		return "gif"
	case ".bmp":
		return "bmp"
	case ".tif", ".tiff":
		return "tiff"
	default:
		return "ppm"
	}
}
