package sstv

import "math"

const amplitude = 0.9

// newOscillator returns an oscillator producing 16 bit samples at the
// given rate.
func newOscillator(sampleRate int) *oscillator {
	return &oscillator{rate: float64(sampleRate)}
}

// oscillator synthesizes a sequence of sine tones with continuous
// phase across frequency changes. Phase resets at tone boundaries
// cause clicks on air and visible glitches in decoded images.
//
// Tone boundaries are placed by rounding the cumulative elapsed time,
// not the per-tone duration, so the total sample count never drifts
// no matter how many sub-millisecond tones are queued.
type oscillator struct {
	rate      float64
	phase     float64
	elapsedMS float64
	samples   []int16
}

// Add appends a tone of the given frequency (Hz) and duration (ms).
func (o *oscillator) Add(freq, durationMS float64) {
	o.elapsedMS += durationMS
	target := int(math.Round(o.elapsedMS * o.rate / 1000))

	step := 2 * math.Pi * freq / o.rate
	for len(o.samples) < target {
		o.phase += step
		if o.phase >= 2*math.Pi {
			o.phase -= 2 * math.Pi
		}
		o.samples = append(o.samples, int16(math.Round(amplitude*math.MaxInt16*math.Sin(o.phase))))
	}
}

// Samples returns all samples generated so far.
func (o *oscillator) Samples() []int16 {
	return o.samples
}
