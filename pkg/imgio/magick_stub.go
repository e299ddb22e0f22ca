//go:build !imagick

package imgio

// MagickAvailable reports whether this binary was built with ImageMagick.
const MagickAvailable = false

// StartMagick falls back to the pure-Go codec when ImageMagick support is
// not compiled in.
func StartMagick() (Codec, func()) {
	return Default, func() {}
}
