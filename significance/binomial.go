package significance

import (
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

// LogLowerTail returns the natural log of P(X <= k) for X ~ Binomial(n, p).
func LogLowerTail(k, n int, p float64) float64 {
	switch {
	case k < 0:
		return math.Inf(-1)
	case k >= n:
		return 0
	}
	return logTail(0, k, n, p)
}

// LogUpperTail returns the natural log of P(X >= k) for X ~ Binomial(n, p). For k == 0 the
// tail is taken as P(X > 0), so a quality with no observed errors scores the probability of
// seeing at least one.
func LogUpperTail(k, n int, p float64) float64 {
	if k == 0 {
		k = 1
	}
	if k > n {
		return math.Inf(-1)
	}
	return logTail(k, n, n, p)
}

// negligible is the log-ratio below the largest term at which further tail terms no longer
// change the sum.
const negligible = 40

// logTail sums P(X = x) for x in [from, to] in log space. The binomial pmf is unimodal, so the
// walk starts at the term nearest the mode and stops in each direction once terms become
// negligible.
func logTail(from, to, n int, p float64) float64 {
	switch p {
	case 0:
		if from == 0 {
			return 0
		}
		return math.Inf(-1)
	case 1:
		if to == n {
			return 0
		}
		return math.Inf(-1)
	}

	dist := distuv.Binomial{N: float64(n), P: p}
	start := int(math.Floor(float64(n+1) * p))
	if start < from {
		start = from
	}
	if start > to {
		start = to
	}

	top := dist.LogProb(float64(start))
	terms := []float64{top}
	var curr float64
	for x := start - 1; x >= from; x-- {
		curr = dist.LogProb(float64(x))
		if curr < top-negligible {
			break
		}
		terms = append(terms, curr)
	}
	for x := start + 1; x <= to; x++ {
		curr = dist.LogProb(float64(x))
		if curr < top-negligible {
			break
		}
		terms = append(terms, curr)
	}
	return math.Min(0, floats.LogSumExp(terms))
}
