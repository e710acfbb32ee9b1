// Package skin derives a coarse color-ratio signal from an uploaded skin
// photograph. The signal feeds the image-based condition classifier; it is
// deliberately simple color counting, not computer vision.
package skin

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
)

// sampleSize is the edge length of the sampling grid. The image is read
// through a fixed 100x100 grid so ratios are comparable across photo sizes.
const sampleSize = 100

// Signal summarizes the color composition of a skin image.
type Signal struct {
	RednessRatio float64 // pixels with r>180, g<120, b<120
	WhiteRatio   float64 // pixels with all channels >200
	YellowRatio  float64 // pixels with r>150, g>150, b<100
	// LowSaturation is true when any sampled pixel has HSV saturation
	// below 0.2; Darkness when any sampled pixel has a red channel below
	// 100. The pair is the dull/dry heuristic for eczema.
	LowSaturation bool
	Darkness      bool
}

// Analyze decodes a raster image from r and computes its color signal.
// Any format registered with image.RegisterFormat (PNG, JPEG and GIF are
// linked in) is accepted.
func Analyze(r io.Reader) (Signal, error) {
	img, _, err := image.Decode(r)
	if err != nil {
		return Signal{}, fmt.Errorf("decoding image: %w", err)
	}
	return AnalyzeImage(img), nil
}

// AnalyzeBytes is Analyze over an in-memory encoded image.
func AnalyzeBytes(data []byte) (Signal, error) {
	return Analyze(bytes.NewReader(data))
}

// AnalyzeImage computes the color signal of a decoded image.
func AnalyzeImage(img image.Image) Signal {
	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()
	if width == 0 || height == 0 {
		return Signal{}
	}

	var redCount, whiteCount, yellowCount, total int
	var sig Signal

	for gy := 0; gy < sampleSize; gy++ {
		for gx := 0; gx < sampleSize; gx++ {
			// Nearest-neighbour sample of the grid cell.
			x := bounds.Min.X + gx*width/sampleSize
			y := bounds.Min.Y + gy*height/sampleSize
			cr, cg, cb, _ := img.At(x, y).RGBA()
			r := int(cr >> 8)
			g := int(cg >> 8)
			b := int(cb >> 8)
			total++

			if r > 180 && g < 120 && b < 120 {
				redCount++
			}
			if r > 200 && g > 200 && b > 200 {
				whiteCount++
			}
			if r > 150 && g > 150 && b < 100 {
				yellowCount++
			}
			if saturation(r, g, b) < 0.2 {
				sig.LowSaturation = true
			}
			if r < 100 {
				sig.Darkness = true
			}
		}
	}

	sig.RednessRatio = float64(redCount) / float64(total)
	sig.WhiteRatio = float64(whiteCount) / float64(total)
	sig.YellowRatio = float64(yellowCount) / float64(total)
	return sig
}

// saturation returns the HSV saturation of an 8-bit RGB triple.
func saturation(r, g, b int) float64 {
	max := r
	if g > max {
		max = g
	}
	if b > max {
		max = b
	}
	if max == 0 {
		return 0
	}
	min := r
	if g < min {
		min = g
	}
	if b < min {
		min = b
	}
	return float64(max-min) / float64(max)
}
