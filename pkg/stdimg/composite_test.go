package stdimg

import (
	"errors"
	"os"
	"testing"
)

func TestCompositeOffsetScenario(t *testing.T) {
	fg := makeSolidRaster(t, 2, 2, rgb(200, 0, 0))
	mask := makeSolidRaster(t, 2, 2, rgb(255, 255, 255))
	bg := makeSolidRaster(t, 4, 4, rgb(0, 200, 0))

	out, err := Composite(bg, fg, mask, 1, 1)
	if err != nil {
		t.Fatalf("composite failed: %v", err)
	}
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			want := rgb(0, 200, 0)
			if x >= 1 && x <= 2 && y >= 1 && y <= 2 {
				want = rgb(200, 0, 0)
			}
			if got := out.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
	if got := bg.At(1, 1); got != rgb(0, 200, 0) {
		t.Fatalf("background input was modified")
	}
	// save for inspection optionally
	if os.Getenv("CHROMAKEY_SAVE_TEST_OUTPUT") == "1" {
		saveTestOutput(t, "chromakey_composite_offset.png", out)
	}
}

func TestCompositeFullMaskCopiesForeground(t *testing.T) {
	fg := makeGradientRaster(t, 3, 2)
	mask := makeSolidRaster(t, 3, 2, rgb(255, 255, 255))
	bg := makeSolidRaster(t, 6, 5, rgb(12, 34, 56))
	out, err := Composite(bg, fg, mask, 2, 3)
	if err != nil {
		t.Fatal(err)
	}
	for y := 0; y < bg.Height; y++ {
		for x := 0; x < bg.Width; x++ {
			in := x >= 2 && x < 5 && y >= 3 && y < 5
			want := bg.At(x, y)
			if in {
				want = fg.At(x-2, y-3)
			}
			if got := out.At(x, y); got != want {
				t.Fatalf("pixel (%d,%d) = %v, want %v", x, y, got, want)
			}
		}
	}
}

func TestCompositeZeroMaskKeepsBackground(t *testing.T) {
	fg := makeGradientRaster(t, 4, 4)
	mask := makeSolidRaster(t, 4, 4, rgb(0, 0, 0))
	bg := makeGradientRaster(t, 4, 4)
	for i := range bg.Pix {
		bg.Pix[i] = 255 - bg.Pix[i]
	}
	out, err := Composite(bg, fg, mask, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	if !out.Equal(bg) {
		t.Fatalf("zero mask must leave background unchanged")
	}
}

func TestCompositePerChannelOpacity(t *testing.T) {
	fg := makeSolidRaster(t, 1, 1, rgb(100, 100, 100))
	mask := makeSolidRaster(t, 1, 1, rgb(255, 0, 128))
	bg := makeSolidRaster(t, 1, 1, rgb(0, 200, 50))
	out, err := Composite(bg, fg, mask, 0, 0)
	if err != nil {
		t.Fatal(err)
	}
	// red fully foreground, green fully background, blue about half (75.09 truncated)
	if got := out.At(0, 0); got != rgb(100, 200, 75) {
		t.Fatalf("pixel = %v, want {100 200 75}", got)
	}
}

func TestCompositeBoundaries(t *testing.T) {
	fg := makeSolidRaster(t, 3, 2, rgb(1, 2, 3))
	mask := makeSolidRaster(t, 3, 2, rgb(255, 255, 255))
	bg := makeSolidRaster(t, 5, 4, rgb(9, 9, 9))

	if _, err := Composite(bg, fg, mask, 2, 2); err != nil {
		t.Fatalf("exact fit rejected: %v", err)
	}

	cases := []struct {
		name   string
		dx, dy int
		mask   [2]int
		want   error
	}{
		{"one column past", 3, 0, [2]int{3, 2}, ErrOffsetOutOfBounds},
		{"one row past", 0, 3, [2]int{3, 2}, ErrOffsetOutOfBounds},
		{"negative dx", -1, 0, [2]int{3, 2}, ErrOffsetOutOfBounds},
		{"negative dy", 0, -1, [2]int{3, 2}, ErrOffsetOutOfBounds},
		{"mask mismatch", 0, 0, [2]int{2, 3}, ErrDimensionMismatch},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := makeSolidRaster(t, tc.mask[0], tc.mask[1], rgb(255, 255, 255))
			_, err := Composite(bg, fg, m, tc.dx, tc.dy)
			if !errors.Is(err, tc.want) {
				t.Fatalf("err = %v, want %v", err, tc.want)
			}
			var de *DimensionError
			if !errors.As(err, &de) {
				t.Fatalf("expected *DimensionError, got %T", err)
			}
			if de.BgW != 5 || de.BgH != 4 || de.FgW != 3 || de.FgH != 2 {
				t.Fatalf("error lost dimensions: %+v", de)
			}
		})
	}
}
