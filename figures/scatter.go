package figures

import (
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/qgram"
	"math"
	"sort"
)

// Pair holds the empirical error rate of one key in two statistics tables.
type Pair struct {
	qgram.Key
	A, B float64
}

// Join pairs the error rates of every key present in both a and b. Keys without observations
// in either table are left out.
func Join(a, b []motifstats.Row) []Pair {
	fer := make(map[qgram.Key]float64, len(a))
	for i := range a {
		if !math.IsInf(a[i].FER, 0) {
			fer[a[i].Key] = a[i].FER
		}
	}

	var ans []Pair
	for i := range b {
		if math.IsInf(b[i].FER, 0) {
			continue
		}
		if f, found := fer[b[i].Key]; found {
			ans = append(ans, Pair{Key: b[i].Key, A: f, B: b[i].FER})
		}
	}
	sortPairs(ans)
	return ans
}

func sortPairs(p []Pair) {
	sort.Slice(p, func(i, j int) bool {
		if p[i].Motif != p[j].Motif {
			return p[i].Motif < p[j].Motif
		}
		return p[i].Qual < p[j].Qual
	})
}

// ScatterOptions controls the error rate comparison plot.
type ScatterOptions struct {
	Log      bool    // plot log10 error rates, 0.01 for rates below 1e-100
	Outliers bool    // highlight points beyond the outlier line
	Koeff    float64 // slope of the outlier line
	Off      float64 // offset of the outlier line
	Sign     float64 // 1 selects points above the line, -1 points below
}

// LogRate is the log10 transform used for plotting error rates.
func LogRate(f float64) float64 {
	if f < 1e-100 {
		return 0.01
	}
	return math.Log10(f)
}

// IsOutlier reports whether (x, y) lies beyond the line given by opts:
// (y - off) / x * sign > koeff * sign. Points with x == 0 are never outliers.
func (opts ScatterOptions) IsOutlier(x, y float64) bool {
	if x == 0 {
		return false
	}
	return (y-opts.Off)/x*opts.Sign > opts.Koeff*opts.Sign
}

// Scatter plots the error rate of every pair in table A against table B and returns the
// pairs flagged as outliers.
func Scatter(pairs []Pair, opts ScatterOptions, file string) ([]Pair, error) {
	var x, y float64
	var inX, inY, outX, outY []float64
	var flagged []Pair
	for i := range pairs {
		x, y = pairs[i].A, pairs[i].B
		if opts.Log {
			x, y = LogRate(x), LogRate(y)
		}
		if opts.Outliers && opts.IsOutlier(x, y) {
			outX = append(outX, x)
			outY = append(outY, y)
			flagged = append(flagged, pairs[i])
			continue
		}
		inX = append(inX, x)
		inY = append(inY, y)
	}

	xLabel, yLabel := "error rate (a)", "error rate (b)"
	if opts.Log {
		xLabel, yLabel = "log10 error rate (a)", "log10 error rate (b)"
	}
	pl, err := scatter("error rate comparison", xLabel, yLabel,
		series{"keys", XYs(inX, inY), blue},
		series{"outliers", XYs(outX, outY), green},
	)
	if err != nil {
		return nil, err
	}
	return flagged, pl.Save(size, size, file)
}
