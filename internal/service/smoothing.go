package service

// RollingAverage keeps the last capacity samples and reports their mean.
// A fresh sample pushes the oldest one out once the window is full.
type RollingAverage struct {
	capacity int
	samples  []float64
}

func NewRollingAverage(capacity int) *RollingAverage {
	if capacity < 1 {
		capacity = 1
	}
	return &RollingAverage{
		capacity: capacity,
		samples:  make([]float64, 0, capacity),
	}
}

// Push adds a sample and returns the mean over the retained window.
func (r *RollingAverage) Push(v float64) float64 {
	if len(r.samples) == r.capacity {
		copy(r.samples, r.samples[1:])
		r.samples = r.samples[:len(r.samples)-1]
	}
	r.samples = append(r.samples, v)
	return r.Mean()
}

// Mean returns the current window average, zero when empty.
func (r *RollingAverage) Mean() float64 {
	if len(r.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range r.samples {
		sum += s
	}
	return sum / float64(len(r.samples))
}

// Size reports how many samples the window currently holds.
func (r *RollingAverage) Size() int { return len(r.samples) }
