package stdimg

import (
	"gonum.org/v1/gonum/stat"

	"github.com/Fepozopo/chromakey/pkg/raster"
)

// Coverage summarizes a mask raster as opacities in [0,1].
type Coverage struct {
	MeanR, MeanG, MeanB float64
	// Transparent is the fraction of pixels whose three channels are all zero.
	Transparent float64
}

// MaskCoverage reads mask as per-channel opacity and reports mean values.
func MaskCoverage(mask *raster.Raster) Coverage {
	n := mask.Len()
	if n == 0 {
		return Coverage{}
	}
	rs := make([]float64, n)
	gs := make([]float64, n)
	bs := make([]float64, n)
	empty := make([]float64, n)
	for p := 0; p < n; p++ {
		i := 3 * p
		rs[p] = float64(mask.Pix[i+0]) / 255.0
		gs[p] = float64(mask.Pix[i+1]) / 255.0
		bs[p] = float64(mask.Pix[i+2]) / 255.0
		if mask.Pix[i+0] == 0 && mask.Pix[i+1] == 0 && mask.Pix[i+2] == 0 {
			empty[p] = 1
		}
	}
	return Coverage{
		MeanR:       stat.Mean(rs, nil),
		MeanG:       stat.Mean(gs, nil),
		MeanB:       stat.Mean(bs, nil),
		Transparent: stat.Mean(empty, nil),
	}
}
