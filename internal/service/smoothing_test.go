package service

import (
	"math"
	"testing"
)

func TestRollingAverage_PushReturnsWindowMean(t *testing.T) {
	t.Parallel()

	w := NewRollingAverage(3)

	// Window fills to capacity, then the oldest sample drops out.
	steps := []struct {
		in   float64
		want float64
	}{
		{in: 10, want: 10}, // [10]
		{in: 20, want: 15}, // [10 20]
		{in: 30, want: 20}, // [10 20 30]
		{in: 40, want: 30}, // [20 30 40]
		{in: 50, want: 40}, // [30 40 50]
	}

	for i, s := range steps {
		got := w.Push(s.in)
		if math.Abs(got-s.want) > 1e-9 {
			t.Fatalf("step %d: Push(%v) = %v, want %v", i, s.in, got, s.want)
		}
	}
	if w.Size() != 3 {
		t.Fatalf("Size() = %d, want 3", w.Size())
	}
}

func TestRollingAverage_MeanEmptyIsZero(t *testing.T) {
	t.Parallel()

	w := NewRollingAverage(5)
	if got := w.Mean(); got != 0 {
		t.Fatalf("Mean() on empty window = %v, want 0", got)
	}
	if w.Size() != 0 {
		t.Fatalf("Size() on empty window = %d, want 0", w.Size())
	}
}

func TestRollingAverage_CapacityClampedToOne(t *testing.T) {
	t.Parallel()

	w := NewRollingAverage(0)
	w.Push(5)
	if got := w.Push(9); got != 9 {
		t.Fatalf("window of 1 must track the latest sample, got %v", got)
	}
	if w.Size() != 1 {
		t.Fatalf("Size() = %d, want 1", w.Size())
	}
}
