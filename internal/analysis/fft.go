package analysis

import (
	"fmt"
	"math"
	"math/cmplx"
)

// FFT computes a radix-2 Cooley-Tukey discrete Fourier transform of a
// real-valued sample series, grounded on the teacher's
// internal/analysis/fft.go recursive even/odd split. Unlike the
// teacher's version, which panics on a non-power-of-two length, this
// returns an error — matching the explicit-error-return convention the
// rest of this repo uses for invalid input (e.g. engine.New rejecting
// a non-positive dt) rather than a runtime panic.
func FFT(data []float64) ([]complex128, error) {
	n := len(data)
	if n == 0 {
		return nil, nil
	}
	if n&(n-1) != 0 {
		return nil, fmt.Errorf("analysis: FFT requires a power-of-two sample count, got %d", n)
	}

	samples := make([]complex128, n)
	for i, v := range data {
		samples[i] = complex(v, 0)
	}
	return radix2(samples), nil
}

// radix2 recursively splits samples into even- and odd-indexed halves
// and combines their transforms with the twiddle factor, per the
// standard Cooley-Tukey butterfly.
func radix2(samples []complex128) []complex128 {
	n := len(samples)
	if n == 1 {
		return samples
	}

	even := make([]complex128, n/2)
	odd := make([]complex128, n/2)
	for i := 0; i < n/2; i++ {
		even[i] = samples[2*i]
		odd[i] = samples[2*i+1]
	}

	evenSpectrum := radix2(even)
	oddSpectrum := radix2(odd)

	out := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		twiddle := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n))) * oddSpectrum[k]
		out[k] = evenSpectrum[k] + twiddle
		out[k+n/2] = evenSpectrum[k] - twiddle
	}
	return out
}

// PowerSpectrum returns the magnitude of each positive-frequency FFT
// bin of data — the tool for spotting a dominant oscillation frequency
// in a recorded body trajectory (pendulum swing period, orbital
// radius, ...).
func PowerSpectrum(data []float64) ([]float64, error) {
	spectrum, err := FFT(data)
	if err != nil {
		return nil, err
	}
	ps := make([]float64, len(spectrum)/2)
	for i := range ps {
		ps[i] = cmplx.Abs(spectrum[i])
	}
	return ps, nil
}
