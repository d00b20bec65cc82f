package detect

// Shoulder acceptance window relative to the main peak's smoothed height.
// Both bounds are strict: a candidate qualifies only when its height lies
// strictly between 20% and 30% of the main peak.
const (
	shoulderMinRatio = 0.2
	shoulderMaxRatio = 0.3
)

// defaultShoulderWindow is the half-width of the search window, in samples,
// when a main peak carries no width measurement.
const defaultShoulderWindow = 20

// findShoulders locates shoulder features: minor order-2 local maxima on the
// flanks of the main peaks whose smoothed height falls inside the acceptance
// window. A sample already selected as a main peak, or already recorded as a
// shoulder for an earlier peak, is not selected again.
func findShoulders(smoothed []float64, mains []mainPeak, selected map[int]bool) []int {
	if len(mains) == 0 {
		return nil
	}

	candidates := relaxedMaxima(smoothed, 2)

	var shoulders []int
	taken := make(map[int]bool)
	for _, m := range mains {
		peakHeight := smoothed[m.index]

		window := defaultShoulderWindow
		if m.width > 0 {
			window = int(m.width * 3)
		}

		for _, c := range candidates {
			if c <= m.index-window || c >= m.index+window || c == m.index {
				continue
			}
			h := smoothed[c]
			if h <= shoulderMinRatio*peakHeight || h >= shoulderMaxRatio*peakHeight {
				continue
			}
			if selected[c] || taken[c] {
				continue
			}
			taken[c] = true
			shoulders = append(shoulders, c)
		}
	}
	return shoulders
}

// relaxedMaxima returns indices whose value strictly exceeds every neighbor
// within order samples on each side, clipping comparisons at the array edges.
// The first and last samples never qualify. This is a looser criterion than
// the main peak search and deliberately picks up features that prominence
// filtering would reject.
func relaxedMaxima(x []float64, order int) []int {
	n := len(x)
	var maxima []int
	for i := 1; i < n-1; i++ {
		isMax := true
		for d := 1; d <= order && isMax; d++ {
			left := i - d
			if left < 0 {
				left = 0
			}
			right := i + d
			if right > n-1 {
				right = n - 1
			}
			if x[i] <= x[left] || x[i] <= x[right] {
				isMax = false
			}
		}
		if isMax {
			maxima = append(maxima, i)
		}
	}
	return maxima
}
