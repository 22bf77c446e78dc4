package analysis

import (
	"errors"
	"math"
	"math/cmplx"

	"github.com/mjibson/go-dsp/fft"
)

var (
	ErrTooShort  = errors.New("analysis: need at least 4 samples")
	ErrNonFinite = errors.New("analysis: profile contains non-finite samples")
	ErrFlat      = errors.New("analysis: profile has no oscillation")
)

// PowerSpectrum returns |X_k| for k = 0..n/2 of the real signal data.
// Any length is accepted.
func PowerSpectrum(data []float64) []float64 {
	if len(data) == 0 {
		return nil
	}
	spec := fft.FFTReal(data)
	ps := make([]float64, len(spec)/2+1)
	for i := range ps {
		ps[i] = cmplx.Abs(spec[i])
	}
	return ps
}

// DominantWavelength finds the strongest non-constant Fourier mode of
// samples spaced dx apart and returns its wavelength n·dx/k.
func DominantWavelength(data []float64, dx float64) (float64, error) {
	n := len(data)
	if n < 4 {
		return 0, ErrTooShort
	}
	mean := 0.0
	for _, x := range data {
		if math.IsNaN(x) || math.IsInf(x, 0) {
			return 0, ErrNonFinite
		}
		mean += x
	}
	mean /= float64(n)

	centered := make([]float64, n)
	for i, x := range data {
		centered[i] = x - mean
	}

	ps := PowerSpectrum(centered)
	best, peak := 0, 0.0
	for k := 1; k < len(ps); k++ {
		if ps[k] > peak {
			best, peak = k, ps[k]
		}
	}
	if best == 0 || peak <= 1e-12*float64(n) {
		return 0, ErrFlat
	}
	return float64(n) * dx / float64(best), nil
}
