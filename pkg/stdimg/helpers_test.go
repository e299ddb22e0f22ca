package stdimg

import (
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

func makeSolidRaster(t *testing.T, w, h int, c color.RGBA) *raster.Raster {
	t.Helper()
	r, err := raster.Filled(w, h, c)
	if err != nil {
		t.Fatalf("failed to build %dx%d raster: %v", w, h, err)
	}
	return r
}

// makeGradientRaster gives every pixel a distinct color so permutations show.
func makeGradientRaster(t *testing.T, w, h int) *raster.Raster {
	t.Helper()
	r := raster.MustNew(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r.Set(x, y, color.RGBA{R: uint8(x * 17), G: uint8(y * 29), B: uint8(x*3 + y*7)})
		}
	}
	return r
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{R: r, G: g, B: b, A: 255} }

// saveTestOutput writes r as PNG under the OS temp dir and logs where it went.
func saveTestOutput(t *testing.T, name string, r *raster.Raster) {
	t.Helper()
	path := filepath.Join(os.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("create %s: %v", path, err)
	}
	defer f.Close()
	if err := png.Encode(f, r.ToNRGBA()); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	t.Logf("saved test output to %s", path)
}
