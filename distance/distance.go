// Package distance measures how well different error models explain the matches and
// mismatches recorded in a statistics table. Every metric is the square root of the summed
// squared prediction error over all observations: a match contributes e^2 and a mismatch
// (1-e)^2 for a predicted error probability e.
package distance

import (
	"errors"
	"fmt"
	"github.com/livarsky/concalib/motifstats"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/rand"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"gonum.org/v1/gonum/stat/distuv"
	"io"
	"math"
)

// ErrNoData is returned when no row has enough mismatches to estimate the average error rate.
var ErrNoData = errors.New("no statistics rows with enough mismatches")

const (
	minMismatchAverage = 5   // rows used for the average error rate
	minOccurrence      = 100 // rows used for the metrics
	minMismatch        = 2
	randomSigma        = 0.02
	logFloor           = 1e-150
	logOffset          = 150 // -log10(logFloor)
)

type Options struct {
	Const float64 // error rate of the constant model, the average error rate when <= 0
	Seed  uint64  // seed of the random model
}

// Metrics holds the distance of each error model.
type Metrics struct {
	AverageFER float64
	Const      float64 // error rate used by the constant model
	Phred      float64 // error probability of the quality value
	Real       float64 // empirical error rate
	ConstModel float64
	Random     float64 // |Normal(0, 0.02)| per row
	Log        float64 // log10 empirical error rate

	// LearnedPhred is the mean quality implied by the empirical error rates of the rows
	// reported at each quality.
	LearnedPhred map[uint8]float64
	Rows         int // rows contributing to the metrics
}

// Compute evaluates every error model on rows.
func Compute(rows []motifstats.Row, opts Options) (Metrics, error) {
	var ans Metrics
	var mismatches, occurrences int
	learned := make(map[uint8][]float64)
	for i := range rows {
		if rows[i].Mismatch < minMismatchAverage || rows[i].Occurrence == 0 {
			continue
		}
		mismatches += rows[i].Mismatch
		occurrences += rows[i].Occurrence
		learned[rows[i].Qual] = append(learned[rows[i].Qual], -10*math.Log10(rows[i].FER))
	}
	if occurrences == 0 {
		return ans, ErrNoData
	}

	ans.AverageFER = float64(mismatches) / float64(occurrences)
	ans.Const = opts.Const
	if ans.Const <= 0 {
		ans.Const = ans.AverageFER
	}
	ans.LearnedPhred = make(map[uint8]float64, len(learned))
	for q, v := range learned {
		ans.LearnedPhred[q] = stat.Mean(v, nil)
	}

	random := distuv.Normal{Mu: 0, Sigma: randomSigma, Src: rand.NewSource(opts.Seed)}
	var m, mm, fer, logFer float64
	for i := range rows {
		if rows[i].Occurrence < minOccurrence || rows[i].Mismatch < minMismatch {
			continue
		}
		ans.Rows++
		m, mm = float64(rows[i].Match), float64(rows[i].Mismatch)
		fer = rows[i].FER

		ans.Phred += squaredError(m, mm, rows[i].Prob)
		ans.Real += squaredError(m, mm, fer)
		ans.ConstModel += squaredError(m, mm, ans.Const)
		ans.Random += squaredError(m, mm, math.Abs(random.Rand()))

		logFer = math.Log10(math.Max(fer, logFloor))
		ans.Log += m*math.Pow(logFer+logOffset, 2) + mm*logFer*logFer
	}

	ans.Phred = math.Sqrt(ans.Phred)
	ans.Real = math.Sqrt(ans.Real)
	ans.ConstModel = math.Sqrt(ans.ConstModel)
	ans.Random = math.Sqrt(ans.Random)
	ans.Log = math.Sqrt(ans.Log)
	return ans, nil
}

func squaredError(match, mismatch, e float64) float64 {
	return match*e*e + mismatch*(1-e)*(1-e)
}

func Write(out io.Writer, m Metrics) error {
	_, err := fmt.Fprintf(out,
		"average fer =\t%g\n"+
			"metric(const) with error rate %g =\t%g\n"+
			"metric(real) with error rate = fer =\t%g\n"+
			"metric(phred) with error rate ~ phred =\t%g\n"+
			"metric(random) with error rate ~ |N(0, %g)| =\t%g\n"+
			"metric(log) =\t%g\n"+
			"metric_phred > metric_real\t%t\n"+
			"metric_const > metric_real\t%t\n",
		m.AverageFER, m.Const, m.ConstModel, m.Real, m.Phred, randomSigma, m.Random, m.Log,
		m.Phred > m.Real, m.ConstModel > m.Real)
	if err != nil {
		return err
	}

	quals := maps.Keys(m.LearnedPhred)
	slices.Sort(quals)
	for _, q := range quals {
		if _, err = fmt.Fprintf(out, "quality %d\tmean learned quality %.2f\n", q, m.LearnedPhred[q]); err != nil {
			return err
		}
	}
	return nil
}
