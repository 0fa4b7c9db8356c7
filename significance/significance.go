// Package significance implements the hypothesis tests used to score strand-bias tables and
// per-quality error rates: Fisher's exact test, Pearson's chi-squared test with Yates'
// continuity correction, and binomial tail probabilities. All tests are computed in log
// space on top of gonum.
package significance

import (
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/numbers"
	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat/combin"
	"gonum.org/v1/gonum/stat/distuv"
	"math"
)

// ChiSquaredThreshold is the count above which the chi-squared test replaces Fisher's exact test.
const ChiSquaredThreshold = 5000

// MinPValue is the smallest p-value that is converted to a finite score.
const MinPValue = 1e-300

// MaxScore is the score assigned to p-values below MinPValue.
const MaxScore = float64(math.MaxInt64)

// relErr is the relative tolerance used when comparing table probabilities to the observed one.
const relErr = 1 + 1e-7

// PValue returns the p-value of the 2x2 table [[fm, fmm], [rm, rmm]]. The chi-squared test
// is used if any count exceeds ChiSquaredThreshold, Fisher's exact test otherwise.
func PValue(fm, rm, fmm, rmm int) float64 {
	if fm > ChiSquaredThreshold || rm > ChiSquaredThreshold || fmm > ChiSquaredThreshold || rmm > ChiSquaredThreshold {
		return ChiSquaredYates(fm, fmm, rm, rmm)
	}
	return FisherExact(fm, fmm, rm, rmm)
}

// FisherExact returns the two-sided p-value of Fisher's exact test for the table [[a, b], [c, d]].
// Tables whose probability is at most the observed one (with a relative tolerance of 1e-7) are
// summed. A table with an empty row or column yields 1.
func FisherExact(a, b, c, d int) float64 {
	row1, row2 := a+b, c+d
	col1, col2 := a+c, b+d
	if row1 == 0 || row2 == 0 || col1 == 0 || col2 == 0 {
		return 1
	}

	n := row1 + row2
	logDenom := combin.LogGeneralizedBinomial(float64(n), float64(col1))
	logProb := func(x int) float64 {
		return combin.LogGeneralizedBinomial(float64(row1), float64(x)) +
			combin.LogGeneralizedBinomial(float64(row2), float64(col1-x)) - logDenom
	}

	observed := logProb(a) + math.Log(relErr)
	lo := numbers.Max(0, col1-row2)
	hi := numbers.Min(row1, col1)
	terms := make([]float64, 0, hi-lo+1)
	var curr float64
	for x := lo; x <= hi; x++ {
		curr = logProb(x)
		if curr <= observed {
			terms = append(terms, curr)
		}
	}
	if len(terms) == 0 {
		return 0
	}
	return math.Min(1, math.Exp(floats.LogSumExp(terms)))
}

// ChiSquaredYates returns the p-value of Pearson's chi-squared test with Yates' continuity
// correction for the table [[a, b], [c, d]] with one degree of freedom. A table with an empty
// row or column yields 1.
func ChiSquaredYates(a, b, c, d int) float64 {
	row := [2]float64{float64(a + b), float64(c + d)}
	col := [2]float64{float64(a + c), float64(b + d)}
	if row[0] == 0 || row[1] == 0 || col[0] == 0 || col[1] == 0 {
		return 1
	}

	n := row[0] + row[1]
	obs := [2][2]float64{{float64(a), float64(b)}, {float64(c), float64(d)}}
	var stat, exp, diff float64
	for i := range obs {
		for j := range obs[i] {
			exp = row[i] * col[j] / n
			diff = math.Abs(obs[i][j] - exp)
			diff -= math.Min(0.5, diff)
			stat += diff * diff / exp
		}
	}
	return distuv.ChiSquared{K: 1}.Survival(stat)
}

// Score converts a p-value to -log10(p). P-values below MinPValue, including 0, yield
// MaxScore. The result is never NaN, negative zero or infinite.
func Score(p float64) float64 {
	switch {
	case math.IsNaN(p):
		return 0
	case p < MinPValue:
		return MaxScore
	case p >= 1:
		return 0
	}
	return -math.Log10(p)
}

// BonferroniThreshold returns the score a motif must exceed to be significant at level alpha
// after correcting for every motif of length q with at most n Ns.
func BonferroniThreshold(q, n int, alpha float64) float64 {
	return math.Log10(qgram.SpaceSize(q, n)) - math.Log10(alpha)
}
