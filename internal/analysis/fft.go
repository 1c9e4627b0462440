package analysis

import (
	"math"
	"math/cmplx"
)

// FFT is a radix-2 Cooley-Tukey transform. len(data) must be a power of 2.
func FFT(data []float64) []complex128 {
	n := len(data)
	if n <= 1 {
		result := make([]complex128, n)
		for i := range data {
			result[i] = complex(data[i], 0)
		}
		return result
	}

	if n%2 != 0 {
		panic("fft requires power of 2 length")
	}

	even := make([]float64, n/2)
	odd := make([]float64, n/2)

	for i := 0; i < n/2; i++ {
		even[i] = data[2*i]
		odd[i] = data[2*i+1]
	}

	feven := FFT(even)
	fodd := FFT(odd)

	result := make([]complex128, n)
	for k := 0; k < n/2; k++ {
		w := cmplx.Exp(complex(0, -2*math.Pi*float64(k)/float64(n)))
		result[k] = feven[k] + w*fodd[k]
		result[k+n/2] = feven[k] - w*fodd[k]
	}

	return result
}

// PowerSpectrum returns |X(k)| for the first half of the bins. Input of any
// length is zero-padded to the next power of 2.
func PowerSpectrum(data []float64) []float64 {
	fft := FFT(ZeroPad(data))
	ps := make([]float64, len(fft)/2)

	for i := range ps {
		ps[i] = cmplx.Abs(fft[i])
	}

	return ps
}

func NextPow2(n int) int {
	p := 1
	for p < n {
		p *= 2
	}
	return p
}

func ZeroPad(data []float64) []float64 {
	padded := make([]float64, NextPow2(len(data)))
	copy(padded, data)
	return padded
}

// DominantPeriod estimates the cycle length of a series sampled every dt.
// The mean is removed first so the DC bin does not dominate. ok is false for
// series too short or too flat to have a peak.
func DominantPeriod(series []float64, dt float64) (period float64, ok bool) {
	if len(series) < 4 || dt <= 0 {
		return 0, false
	}

	mean := 0.0
	for _, v := range series {
		mean += v
	}
	mean /= float64(len(series))

	centered := make([]float64, len(series))
	for i, v := range series {
		centered[i] = v - mean
	}

	padded := ZeroPad(centered)
	ps := PowerSpectrum(padded)

	maxIdx, maxPower := 0, 0.0
	for i := 1; i < len(ps); i++ {
		if ps[i] > maxPower {
			maxPower = ps[i]
			maxIdx = i
		}
	}
	if maxIdx == 0 || maxPower < 1e-12 {
		return 0, false
	}

	freq := float64(maxIdx) / (float64(len(padded)) * dt)
	return 1 / freq, true
}
