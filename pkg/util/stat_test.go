package util

import (
	"math"
	"testing"
)

func TestMean(t *testing.T) {
	got := Mean([]float64{1, 2, 3, 4})
	if got != 2.5 {
		t.Fatalf("unexpected mean %v", got)
	}
}

func TestMeanEmpty(t *testing.T) {
	if !math.IsNaN(Mean(nil)) {
		t.Fatalf("expected NaN for empty series")
	}
}

func TestStdDevPopulation(t *testing.T) {
	// population std dev of {2,4,4,4,5,5,7,9} is exactly 2
	got := StdDev([]float64{2, 4, 4, 4, 5, 5, 7, 9})
	if math.Abs(got-2) > 1e-12 {
		t.Fatalf("unexpected stddev %v", got)
	}
}

func TestStdDevConstantSeries(t *testing.T) {
	got := StdDev([]float64{3, 3, 3})
	if got != 0 {
		t.Fatalf("expected 0 stddev, got %v", got)
	}
}
