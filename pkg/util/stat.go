package util

import "math"

// Mean returns the arithmetic mean of series. An empty series yields NaN,
// matching the upstream model contract.
func Mean(series []float64) float64 {
	var sum float64
	for _, v := range series {
		sum += v
	}
	return sum / float64(len(series))
}

// StdDev returns the population standard deviation of series.
func StdDev(series []float64) float64 {
	if len(series) == 0 {
		return math.NaN()
	}
	m := Mean(series)
	var sq float64
	for _, v := range series {
		d := v - m
		sq += d * d
	}
	return math.Sqrt(sq / float64(len(series)))
}
