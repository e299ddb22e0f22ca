package stdimg

import (
	"errors"
	"testing"
)

func TestSegmentPureBlueIsBackground(t *testing.T) {
	src := makeSolidRaster(t, 4, 4, rgb(0, 0, 255))
	mask, err := Segment(src, DefaultSegmentOptions(KeyBlue))
	if err != nil {
		t.Fatalf("Segment failed: %v", err)
	}
	if mask.Width != 4 || mask.Height != 4 {
		t.Fatalf("mask size = %s, want 4x4", mask)
	}
	for i, v := range mask.Pix {
		if v != 0 {
			t.Fatalf("mask byte %d = %d, want 0", i, v)
		}
	}

	// compositing with an all-transparent mask leaves the background alone
	bg := makeSolidRaster(t, 4, 4, rgb(255, 0, 0))
	out, err := Composite(bg, src, mask, 0, 0)
	if err != nil {
		t.Fatalf("Composite failed: %v", err)
	}
	if !out.Equal(bg) {
		t.Fatalf("expected background unchanged")
	}
}

func TestSegmentPredicate(t *testing.T) {
	cases := []struct {
		name string
		key  Key
		px   [3]uint8
		bg   bool
	}{
		{"blue screen", KeyBlue, [3]uint8{10, 20, 200}, true},
		{"blue at threshold", KeyBlue, [3]uint8{0, 0, 30}, false},
		{"blue just over", KeyBlue, [3]uint8{0, 0, 31}, true},
		{"blue close to green", KeyBlue, [3]uint8{0, 190, 200}, false},
		{"green screen", KeyGreen, [3]uint8{10, 200, 10}, true},
		{"green dull", KeyGreen, [3]uint8{100, 120, 100}, false},
		{"green key ignores blue", KeyGreen, [3]uint8{0, 0, 255}, false},
		{"gray tie", KeyBlue, [3]uint8{128, 128, 128}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			src := makeSolidRaster(t, 1, 1, rgb(tc.px[0], tc.px[1], tc.px[2]))
			mask, err := Segment(src, DefaultSegmentOptions(tc.key))
			if err != nil {
				t.Fatalf("Segment failed: %v", err)
			}
			want := uint8(255)
			if tc.bg {
				want = 0
			}
			for c := 0; c < 3; c++ {
				if mask.Pix[c] != want {
					t.Fatalf("channel %d = %d, want %d", c, mask.Pix[c], want)
				}
			}
		})
	}
}

func TestSegmentNormalized(t *testing.T) {
	dark := makeSolidRaster(t, 1, 1, rgb(0, 0, 20))
	plain, _ := Segment(dark, DefaultSegmentOptions(KeyBlue))
	if plain.Pix[0] != 255 {
		t.Fatalf("dark blue should be foreground without normalization")
	}
	opts := DefaultKeyOutOptions(KeyBlue)
	norm, err := Segment(dark, opts)
	if err != nil {
		t.Fatal(err)
	}
	if norm.Pix[0] != 0 {
		t.Fatalf("dark blue should be background after normalization")
	}

	black := makeSolidRaster(t, 1, 1, rgb(0, 0, 0))
	m, err := Segment(black, opts)
	if err != nil {
		t.Fatal(err)
	}
	if m.Pix[0] != 255 {
		t.Fatalf("black should stay foreground under normalization")
	}
}

func TestSegmentStrict(t *testing.T) {
	bright := makeSolidRaster(t, 1, 1, rgb(100, 100, 255))
	opts := DefaultSegmentOptions(KeyBlue)
	m, _ := Segment(bright, opts)
	if m.Pix[0] != 0 {
		t.Fatalf("bright blue should be background with the plain rule")
	}
	opts.Strict = true
	m, err := Segment(bright, opts)
	if err != nil {
		t.Fatal(err)
	}
	if m.Pix[0] != 255 {
		t.Fatalf("bright blue (sum 455) should be foreground with the strict rule")
	}
	deep := makeSolidRaster(t, 1, 1, rgb(0, 0, 200))
	m, _ = Segment(deep, opts)
	if m.Pix[0] != 0 {
		t.Fatalf("deep blue should stay background with the strict rule")
	}
}

func TestSegmentOwnMaskIsAllForeground(t *testing.T) {
	src := makeGradientRaster(t, 8, 8)
	src.Set(1, 1, rgb(0, 0, 255))
	src.Set(2, 5, rgb(0, 0, 255))
	for _, key := range []Key{KeyBlue, KeyGreen} {
		mask, err := Segment(src, DefaultSegmentOptions(key))
		if err != nil {
			t.Fatal(err)
		}
		again, err := Segment(mask, DefaultSegmentOptions(key))
		if err != nil {
			t.Fatal(err)
		}
		for i, v := range again.Pix {
			if v != 255 {
				t.Fatalf("%v: re-segmented mask byte %d = %d, want 255", key, i, v)
			}
		}
	}
}

func TestSegmentRejectsBadOptions(t *testing.T) {
	src := makeSolidRaster(t, 2, 2, rgb(1, 2, 3))
	if _, err := Segment(src, SegmentOptions{Key: Key(7)}); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("expected ErrInvalidKey, got %v", err)
	}
	opts := DefaultSegmentOptions(KeyGreen)
	opts.Threshold = -1
	if _, err := Segment(src, opts); !errors.Is(err, ErrInvalidParameter) {
		t.Fatalf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestKeyOutDoesNotMutateInput(t *testing.T) {
	src := makeSolidRaster(t, 2, 1, rgb(0, 0, 255))
	src.Set(1, 0, rgb(200, 150, 100))
	orig := src.Clone()
	out, err := KeyOut(src, DefaultKeyOutOptions(KeyBlue))
	if err != nil {
		t.Fatalf("KeyOut failed: %v", err)
	}
	if !src.Equal(orig) {
		t.Fatalf("KeyOut modified its input")
	}
	if got := out.At(0, 0); got.R != 0 || got.G != 0 || got.B != 0 {
		t.Fatalf("background pixel = %v, want black", got)
	}
	if got := out.At(1, 0); got != rgb(200, 150, 100) {
		t.Fatalf("foreground pixel = %v, want unchanged", got)
	}
}

func TestApplyByteMaskLength(t *testing.T) {
	src := makeSolidRaster(t, 2, 2, rgb(9, 9, 9))
	if _, err := ApplyByteMask(src, make([]uint8, 3)); !errors.Is(err, ErrDimensionMismatch) {
		t.Fatalf("expected ErrDimensionMismatch, got %v", err)
	}
}

func TestParseKey(t *testing.T) {
	for in, want := range map[string]Key{"b": KeyBlue, "Blue": KeyBlue, "g": KeyGreen, "GREEN": KeyGreen, "a": KeyAuto} {
		got, err := ParseKey(in)
		if err != nil || got != want {
			t.Fatalf("ParseKey(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseKey("r"); !errors.Is(err, ErrInvalidKey) {
		t.Fatalf("ParseKey(r) err = %v", err)
	}
}
