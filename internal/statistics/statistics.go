// Package statistics summarises repeated measurements.
package statistics

import (
	"fmt"
	"math"
	"slices"
)

// Sample accumulates observations such as per-round throughput.
type Sample struct {
	n      int
	sum    float64
	sumSq  float64
	values []float64
}

// Add records one observation.
func (s *Sample) Add(v float64) {
	s.n++
	s.sum += v
	s.sumSq += v * v
	s.values = append(s.values, v)
}

// Count returns the number of observations.
func (s *Sample) Count() int {
	return s.n
}

// Mean returns the arithmetic mean
func (s *Sample) Mean() float64 {
	if s.n == 0 {
		return 0
	}
	return s.sum / float64(s.n)
}

// Variance returns the sample variance
func (s *Sample) Variance() float64 {
	if s.n < 2 {
		return 0
	}
	mean := s.Mean()
	v := (s.sumSq - float64(s.n)*mean*mean) / float64(s.n-1)
	return math.Max(v, 0)
}

// StdDev returns the sample standard deviation
func (s *Sample) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Sample) StdError() float64 {
	if s.n == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.n))
}

// ConfidenceInterval95 returns the normal-approximation 95% interval for the mean.
func (s *Sample) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Median returns the middle observation.
func (s *Sample) Median() float64 {
	return s.Percentile(0.5)
}

// Percentile interpolates the value at p, where p runs from 0 to 1.
func (s *Sample) Percentile(p float64) float64 {
	if len(s.values) == 0 {
		return 0
	}
	sorted := slices.Clone(s.values)
	slices.Sort(sorted)

	p = math.Min(math.Max(p, 0), 1)
	index := p * float64(len(sorted)-1)
	lower := int(index)
	if lower+1 >= len(sorted) {
		return sorted[len(sorted)-1]
	}
	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[lower+1]*weight
}

// String formats the mean with its 95% margin, e.g. "1200 ± 35".
func (s *Sample) String() string {
	return fmt.Sprintf("%.0f ± %.0f", s.Mean(), 1.96*s.StdError())
}
