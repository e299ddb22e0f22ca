package stdimg

import (
	"fmt"

	"github.com/cenkalti/dominantcolor"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// minKeySaturation is the HSV saturation below which a dominant color is
// considered too gray to be a chroma screen.
const minKeySaturation = 0.25

// DetectKey picks KeyBlue or KeyGreen from the dominant color of src.
// Hues in [60,180) are green, [180,300) blue.
func DetectKey(src *raster.Raster) (Key, error) {
	if err := src.Validate(); err != nil {
		return 0, err
	}
	dom := dominantcolor.Find(src.ToNRGBA())
	c, _ := colorful.MakeColor(dom)
	h, s, _ := c.Hsv()
	if s < minKeySaturation {
		return 0, fmt.Errorf("%w: dominant color %s has saturation %.2f", ErrNoKeyColor, c.Hex(), s)
	}
	switch {
	case h >= 60 && h < 180:
		return KeyGreen, nil
	case h >= 180 && h < 300:
		return KeyBlue, nil
	}
	return 0, fmt.Errorf("%w: dominant color %s has hue %.0f", ErrNoKeyColor, c.Hex(), h)
}
