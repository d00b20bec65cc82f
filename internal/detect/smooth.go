package detect

import "math"

// smoothingSigma is the fixed Gaussian width, in samples, applied before the
// peak search to suppress noise.
const smoothingSigma = 1.0

// gaussianSmooth convolves data with a truncated Gaussian kernel (radius 4
// sigma, rounded) using reflected edges.
func gaussianSmooth(data []float64, sigma float64) []float64 {
	radius := int(4*sigma + 0.5)
	if radius < 1 {
		radius = 1
	}

	kernel := make([]float64, 2*radius+1)
	var sum float64
	for k := -radius; k <= radius; k++ {
		w := math.Exp(-float64(k*k) / (2 * sigma * sigma))
		kernel[k+radius] = w
		sum += w
	}
	for i := range kernel {
		kernel[i] /= sum
	}

	n := len(data)
	out := make([]float64, n)
	for i := 0; i < n; i++ {
		var acc float64
		for k := -radius; k <= radius; k++ {
			acc += kernel[k+radius] * data[reflectIndex(i+k, n)]
		}
		out[i] = acc
	}
	return out
}

// reflectIndex maps an out-of-range index back into [0, n) by mirroring
// across the array edges without repeating the edge sample's neighbor
// (… c b a | a b c … | c b a …).
func reflectIndex(i, n int) int {
	if n == 1 {
		return 0
	}
	for i < 0 || i >= n {
		if i < 0 {
			i = -i - 1
		}
		if i >= n {
			i = 2*n - i - 1
		}
	}
	return i
}
