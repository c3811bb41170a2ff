package imageproc

import "math/rand/v2"

// ApplyNoise adds uniform jitter of (U-0.5)*amount*255 to the R, G and B channel of every pixel,
// with U drawn independently per channel. Alpha is left as is. amount == 0 does not touch the pixels.
func ApplyNoise(s *Surface, amount float64) {
	applyNoise(s, amount, rand.Float64)
}

func applyNoise(s *Surface, amount float64, sample func() float64) {
	if amount == 0 {
		return
	}

	scale := amount * 255
	w, h := s.Width(), s.Height()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			for c := 0; c < 3; c++ {
				s.SetChannel(x, y, c, float64(s.Channel(x, y, c))+(sample()-0.5)*scale)
			}
		}
	}
}
