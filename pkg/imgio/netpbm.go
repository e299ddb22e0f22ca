package imgio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// isNetpbm reports whether b starts with a P2, P3, P5 or P6 magic.
func isNetpbm(b []byte) bool {
	if len(b) < 3 || b[0] != 'P' {
		return false
	}
	switch b[1] {
	case '2', '3', '5', '6':
	default:
		return false
	}
	return isSpace(b[2])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

// readToken returns the next whitespace-delimited header token, skipping
// '#' comments that run to end of line.
func readToken(br *bufio.Reader) (string, error) {
	var tok []byte
	for {
		c, err := br.ReadByte()
		if err != nil {
			if err == io.EOF && len(tok) > 0 {
				return string(tok), nil
			}
			return "", err
		}
		switch {
		case c == '#' && len(tok) == 0:
			if _, err := br.ReadString('\n'); err != nil {
				return "", err
			}
		case isSpace(c):
			if len(tok) > 0 {
				return string(tok), nil
			}
		default:
			tok = append(tok, c)
		}
	}
}

func readHeaderInt(br *bufio.Reader, name string) (int, error) {
	tok, err := readToken(br)
	if err != nil {
		return 0, fmt.Errorf("reading %s: %w", name, err)
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", name, tok)
	}
	return v, nil
}

// readNetpbm parses a netpbm header and pixel body. Gray formats are
// expanded to three equal channels. Only 8-bit samples (maxval <= 255) are supported.
// size is the total input length; headers claiming more samples than it can
// hold are rejected before any pixel buffer is allocated.
func readNetpbm(br *bufio.Reader, size int) (*raster.Raster, error) {
	magic, err := readToken(br)
	if err != nil {
		return nil, fmt.Errorf("reading magic: %w", err)
	}
	channels := 3
	switch magic {
	case "P3", "P6":
	case "P2", "P5":
		channels = 1
	default:
		return nil, fmt.Errorf("unsupported magic %q", magic)
	}
	w, err := readHeaderInt(br, "width")
	if err != nil {
		return nil, err
	}
	h, err := readHeaderInt(br, "height")
	if err != nil {
		return nil, err
	}
	maxval, err := readHeaderInt(br, "maxval")
	if err != nil {
		return nil, err
	}
	if maxval <= 0 || maxval > 255 {
		return nil, fmt.Errorf("unsupported maxval %d", maxval)
	}
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %dx%d", raster.ErrInvalidDimensions, w, h)
	}
	if w > math.MaxInt/3/h {
		return nil, fmt.Errorf("dimensions %dx%d overflow", w, h)
	}
	// binary samples take one byte each; ASCII ones at least a digit and a separator
	limit := size
	if magic == "P2" || magic == "P3" {
		limit = size / 2
	}
	if channels*w*h > limit {
		return nil, fmt.Errorf("header claims %dx%d but the file holds only %d bytes", w, h, size)
	}
	r, err := raster.New(w, h)
	if err != nil {
		return nil, err
	}
	r.MaxVal = maxval

	samples := make([]uint8, channels*w*h)
	switch magic {
	case "P5", "P6":
		// the single whitespace after maxval was consumed by readToken
		if _, err := io.ReadFull(br, samples); err != nil {
			return nil, fmt.Errorf("reading pixels: %w", err)
		}
	case "P2", "P3":
		for i := range samples {
			v, err := readHeaderInt(br, "sample")
			if err != nil {
				return nil, err
			}
			if v < 0 || v > maxval {
				return nil, fmt.Errorf("sample %d out of range 0..%d", v, maxval)
			}
			samples[i] = uint8(v)
		}
	}
	if channels == 3 {
		r.Pix = samples
	} else {
		for p, v := range samples {
			r.Pix[3*p+0] = v
			r.Pix[3*p+1] = v
			r.Pix[3*p+2] = v
		}
	}
	for _, v := range r.Pix {
		if int(v) > maxval {
			return nil, errors.New("sample exceeds maxval")
		}
	}
	return r, nil
}

// writePPM writes r as binary P6 with r.MaxVal as maxval.
func writePPM(w io.Writer, r *raster.Raster) error {
	maxval := r.MaxVal
	if maxval <= 0 {
		maxval = raster.DefaultMaxVal
	}
	if _, err := fmt.Fprintf(w, "P6\n%d %d\n%d\n", r.Width, r.Height, maxval); err != nil {
		return err
	}
	_, err := w.Write(r.Pix)
	return err
}
