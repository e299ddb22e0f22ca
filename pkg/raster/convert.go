package raster

import (
	"image"
	"image/color"
)

// FromImage converts any image.Image into a Raster. Alpha is discarded after
// converting to non-premultiplied NRGBA, so transparent pixels keep their color.
func FromImage(src image.Image) (*Raster, error) {
	b := src.Bounds()
	out, err := New(b.Dx(), b.Dy())
	if err != nil {
		return nil, err
	}
	n := toNRGBA(src)
	idx := 0
	for y := 0; y < out.Height; y++ {
		for x := 0; x < out.Width; x++ {
			i := n.PixOffset(x+b.Min.X, y+b.Min.Y)
			out.Pix[idx+0] = n.Pix[i+0]
			out.Pix[idx+1] = n.Pix[i+1]
			out.Pix[idx+2] = n.Pix[i+2]
			idx += 3
		}
	}
	return out, nil
}

// ToNRGBA returns an opaque *image.NRGBA copy of r, for encoders.
func (r *Raster) ToNRGBA() *image.NRGBA {
	out := image.NewNRGBA(r.Bounds())
	src := 0
	for i := 0; i < len(out.Pix); i += 4 {
		out.Pix[i+0] = r.Pix[src+0]
		out.Pix[i+1] = r.Pix[src+1]
		out.Pix[i+2] = r.Pix[src+2]
		out.Pix[i+3] = 255
		src += 3
	}
	return out
}

// toNRGBA returns src as *image.NRGBA without copying when it already is one.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	out := image.NewNRGBA(b)
	idx := 0
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.NRGBAModel.Convert(src.At(x, y)).(color.NRGBA)
			out.Pix[idx+0] = c.R
			out.Pix[idx+1] = c.G
			out.Pix[idx+2] = c.B
			out.Pix[idx+3] = c.A
			idx += 4
		}
	}
	return out
}
