package analysis

import (
	"errors"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
	"gonum.org/v1/gonum/floats"
)

// Spectrum is the one-sided magnitude spectrum of a real series.
type Spectrum struct {
	Frequencies []float64
	Power       []float64
}

// PowerSpectrum removes the mean of samples and returns the magnitudes of
// bins 0..n/2. sampleRate is in samples per second.
func PowerSpectrum(samples []float64, sampleRate float64) (*Spectrum, error) {
	n := len(samples)
	if n < 2 {
		return nil, errors.New("spectrum needs at least 2 samples")
	}
	if !(sampleRate > 0) {
		return nil, errors.New("sample rate must be positive")
	}

	centered := make([]float64, n)
	copy(centered, samples)
	floats.AddConst(-floats.Sum(centered)/float64(n), centered)

	coeffs := fft.FFTReal(centered)

	bins := n/2 + 1
	spec := &Spectrum{
		Frequencies: make([]float64, bins),
		Power:       make([]float64, bins),
	}
	for k := 0; k < bins; k++ {
		spec.Frequencies[k] = float64(k) * sampleRate / float64(n)
		spec.Power[k] = cmplx.Abs(coeffs[k])
	}
	return spec, nil
}

// Dominant returns the frequency of the strongest non-DC bin.
func (s *Spectrum) Dominant() float64 {
	if len(s.Power) < 2 {
		return 0
	}
	return s.Frequencies[floats.MaxIdx(s.Power[1:])+1]
}
