package apu

import "math"

// biquad is a direct-form-1 second-order filter section.
type biquad struct {
	b0, b1, b2 float64
	a1, a2     float64
	x1, x2     float64
	y1, y2     float64
}

func (f *biquad) run(x float64) float64 {
	y := f.b0*x + f.b1*f.x1 + f.b2*f.x2 - f.a1*f.y1 - f.a2*f.y2
	f.x2, f.x1 = f.x1, x
	f.y2, f.y1 = f.y1, y
	return y
}

const butterworthQ = 0.7071067811865476

func newHighPass(sampleRate, cutoff float64) *biquad {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 + cosw) / 2 / a0,
		b1: -(1 + cosw) / a0,
		b2: (1 + cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

func newLowPass(sampleRate, cutoff float64) *biquad {
	w0 := 2 * math.Pi * cutoff / sampleRate
	cosw := math.Cos(w0)
	alpha := math.Sin(w0) / (2 * butterworthQ)
	a0 := 1 + alpha
	return &biquad{
		b0: (1 - cosw) / 2 / a0,
		b1: (1 - cosw) / a0,
		b2: (1 - cosw) / 2 / a0,
		a1: -2 * cosw / a0,
		a2: (1 - alpha) / a0,
	}
}

// filterChain approximates the NES output stage: two high-pass
// sections at 90 Hz and 440 Hz and a 14 kHz low-pass, in series.
type filterChain struct {
	hp90  *biquad
	hp440 *biquad
	lp14k *biquad
}

func newFilterChain(sampleRate float64) *filterChain {
	return &filterChain{
		hp90:  newHighPass(sampleRate, 90),
		hp440: newHighPass(sampleRate, 440),
		lp14k: newLowPass(sampleRate, 14000),
	}
}

func (c *filterChain) run(x float64) float64 {
	return c.lp14k.run(c.hp440.run(c.hp90.run(x)))
}
