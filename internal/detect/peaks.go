package detect

import "sort"

// localMaxima finds indices of local maxima in x. Flat-topped maxima report
// the midpoint of the plateau.
func localMaxima(x []float64) []int {
	var peaks []int
	i := 1
	for i < len(x)-1 {
		if x[i] <= x[i-1] {
			i++
			continue
		}
		// Ascending edge found; skip over any plateau.
		ahead := i + 1
		for ahead < len(x)-1 && x[ahead] == x[i] {
			ahead++
		}
		if x[ahead] < x[i] {
			peaks = append(peaks, (i+ahead-1)/2)
			i = ahead
			continue
		}
		i = ahead
	}
	return peaks
}

// selectByDistance applies greedy minimum-distance suppression: peaks are
// visited from highest to lowest, and each kept peak removes any unvisited
// neighbor closer than distance samples. Returns the surviving subset in
// position order.
func selectByDistance(peaks []int, heights []float64, distance int) []int {
	if distance <= 1 || len(peaks) < 2 {
		return peaks
	}

	order := make([]int, len(peaks))
	for i := range order {
		order[i] = i
	}
	// Highest peak first; equal heights resolve by position for determinism.
	sort.SliceStable(order, func(a, b int) bool {
		return heights[order[a]] > heights[order[b]]
	})

	keep := make([]bool, len(peaks))
	for i := range keep {
		keep[i] = true
	}
	for _, j := range order {
		if !keep[j] {
			continue
		}
		for k := j - 1; k >= 0 && peaks[j]-peaks[k] < distance; k-- {
			keep[k] = false
		}
		for k := j + 1; k < len(peaks) && peaks[k]-peaks[j] < distance; k++ {
			keep[k] = false
		}
	}

	var kept []int
	for i, p := range peaks {
		if keep[i] {
			kept = append(kept, p)
		}
	}
	return kept
}

// prominence measures how far a peak rises above the higher of its two
// surrounding bases. The bases are the minima between the peak and the
// nearest strictly higher sample (or the signal edge) on each side.
func prominence(x []float64, peak int) (prom float64, leftBase, rightBase int) {
	leftMin := x[peak]
	leftBase = peak
	for i := peak - 1; i >= 0; i-- {
		if x[i] > x[peak] {
			break
		}
		if x[i] < leftMin {
			leftMin = x[i]
			leftBase = i
		}
	}

	rightMin := x[peak]
	rightBase = peak
	for i := peak + 1; i < len(x); i++ {
		if x[i] > x[peak] {
			break
		}
		if x[i] < rightMin {
			rightMin = x[i]
			rightBase = i
		}
	}

	base := leftMin
	if rightMin > base {
		base = rightMin
	}
	return x[peak] - base, leftBase, rightBase
}

// peakWidth measures the peak's width in samples at half its prominence,
// interpolating between samples at the crossing points.
func peakWidth(x []float64, peak int, prom float64, leftBase, rightBase int) float64 {
	height := x[peak] - prom*0.5

	i := peak
	for i > leftBase && x[i] > height {
		i--
	}
	leftIP := float64(i)
	if x[i] < height {
		leftIP += (height - x[i]) / (x[i+1] - x[i])
	}

	i = peak
	for i < rightBase && x[i] > height {
		i++
	}
	rightIP := float64(i)
	if x[i] < height {
		rightIP -= (height - x[i]) / (x[i-1] - x[i])
	}

	return rightIP - leftIP
}
