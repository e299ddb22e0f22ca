package imgio

import (
	"errors"
	"image/color"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

func gradient(w, h int) *raster.Raster {
	r := raster.MustNew(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, color.RGBA{R: uint8(40 * x), G: uint8(60 * y), B: uint8(x + y)})
		}
	}
	return r
}

func TestLosslessFormats(t *testing.T) {
	dir := t.TempDir()
	src := gradient(5, 4)
	for _, name := range []string{"out.ppm", "out.png", "out.bmp", "out.tiff", "out.raw"} {
		t.Run(name, func(t *testing.T) {
			p := filepath.Join(dir, name)
			if err := Encode(src, p); err != nil {
				t.Fatalf("Encode failed: %v", err)
			}
			got, err := Decode(p)
			if err != nil {
				t.Fatalf("Decode failed: %v", err)
			}
			if diff := cmp.Diff(src, got); diff != "" {
				t.Fatalf("pixels changed (-want +got):\n%s", diff)
			}
		})
	}
}

func TestJPEGKeepsSize(t *testing.T) {
	p := filepath.Join(t.TempDir(), "out.jpg")
	if err := Encode(gradient(9, 7), p); err != nil {
		t.Fatal(err)
	}
	got, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	if got.Width != 9 || got.Height != 7 {
		t.Fatalf("size = %s, want 9x7", got)
	}
}

func TestDecodeASCIIPPMWithComments(t *testing.T) {
	p := filepath.Join(t.TempDir(), "ascii.ppm")
	body := "P3\n# made by hand\n2 1\n255\n255 0 0  0 0 255\n"
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Decode(p)
	if err != nil {
		t.Fatalf("Decode failed: %v", err)
	}
	if r.At(0, 0) != (color.RGBA{R: 255, A: 255}) || r.At(1, 0) != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("unexpected pixels %v", r.Pix)
	}
}

func TestDecodeGrayPGM(t *testing.T) {
	p := filepath.Join(t.TempDir(), "gray.pgm")
	if err := os.WriteFile(p, []byte("P5\n2 1\n255\n\x10\xf0"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	want := []uint8{0x10, 0x10, 0x10, 0xf0, 0xf0, 0xf0}
	if diff := cmp.Diff(want, r.Pix); diff != "" {
		t.Fatalf("gray expansion mismatch:\n%s", diff)
	}
}

func TestDecodeErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := Decode(filepath.Join(dir, "missing.ppm")); !errors.Is(err, ErrNotFound) {
		t.Fatalf("missing file err = %v, want ErrNotFound", err)
	}
	cases := map[string]string{
		"junk.ppm":     "not an image at all",
		"short.ppm":    "P6\n4 4\n255\nabc",
		"wide.ppm":     "P6\n1 1\n65535\n\x00\x00\x00\x00\x00\x00",
		"zero.ppm":     "P6\n0 3\n255\n",
		"badtok.ppm":   "P3\n1 1\n255\n1 2 x\n",
		"bigval.ppm":   "P3\n1 1\n15\n1 2 16\n",
		"huge.ppm":     "P6\n1000000000 1000000000\n255\n\x00\x00\x00",
		"overflow.ppm": "P6\n4000000000 4000000000\n255\n\x00\x00\x00",
		"large.pgm":    "P5\n100000 100000\n255\n\x00",
		"bigascii.ppm": "P3\n100000 100000\n255\n1 2 3\n",
		"negative.ppm": "P6\n-2 2\n255\n\x00\x00\x00",
	}
	for name, body := range cases {
		p := filepath.Join(dir, name)
		if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
		if _, err := Decode(p); !errors.Is(err, ErrFormatInvalid) {
			t.Fatalf("%s: err = %v, want ErrFormatInvalid", name, err)
		}
	}
}

func TestEncodeUnwritable(t *testing.T) {
	p := filepath.Join(t.TempDir(), "no", "such", "dir", "out.png")
	if err := Encode(gradient(2, 2), p); !errors.Is(err, ErrWriteFailed) {
		t.Fatalf("err = %v, want ErrWriteFailed", err)
	}
}

func TestPPMKeepsMaxVal(t *testing.T) {
	p := filepath.Join(t.TempDir(), "low.ppm")
	if err := os.WriteFile(p, []byte("P6\n1 1\n15\n\x01\x02\x0f"), 0o644); err != nil {
		t.Fatal(err)
	}
	r, err := Decode(p)
	if err != nil {
		t.Fatal(err)
	}
	if r.MaxVal != 15 {
		t.Fatalf("MaxVal = %d, want 15", r.MaxVal)
	}
	out := filepath.Join(t.TempDir(), "copy.ppm")
	if err := Encode(r, out); err != nil {
		t.Fatal(err)
	}
	b, _ := os.ReadFile(out)
	if string(b) != "P6\n1 1\n15\n\x01\x02\x0f" {
		t.Fatalf("unexpected PPM bytes %q", b)
	}
}

func TestFormat(t *testing.T) {
	for in, want := range map[string]string{"a.PNG": "png", "b.jpeg": "jpeg", "c.JPG": "jpeg", "d.tif": "tiff", "e": "ppm", "f.pnm": "ppm"} {
		if got := Format(in); got != want {
			t.Fatalf("Format(%q) = %q, want %q", in, got, want)
		}
	}
}
