package ocean

// runningAverage is a fixed-window moving average that starts from zeros.
type runningAverage struct {
	samples []float32
	sum     float32
	next    int
}

func newRunningAverage(size int) runningAverage {
	return runningAverage{samples: make([]float32, size)}
}

// Update pushes v, evicting the oldest sample, and returns the new average.
func (r *runningAverage) Update(v float32) float32 {
	r.sum += v - r.samples[r.next]
	r.samples[r.next] = v
	r.next = (r.next + 1) % len(r.samples)
	return r.sum / float32(len(r.samples))
}
