// Package motifstats builds, reads and writes the per-(motif, quality) statistics table that
// compares the empirical error rate of each motif with the error rate promised by its Phred
// quality, using binomial tail probabilities.
package motifstats

import (
	"github.com/livarsky/concalib/qgram"
	"github.com/livarsky/concalib/significance"
	"math"
	"sort"
)

// MaxPhred is the largest quality that can be written to a SAM/BAM record.
const MaxPhred = 93

// Row is one line of the statistics table.
type Row struct {
	qgram.Key
	Prob       float64 // error probability of the quality value
	Occurrence int
	Match      int
	Mismatch   int
	FER        float64 // empirical error rate, mismatch / occurrence
	Left       float64 // log P(X <= mismatch)
	Right      float64 // log P(X >= mismatch), P(X > 0) when there are no mismatches
	Min        float64 // min(Left, Right)
}

// PhredToProb converts a Phred quality to an error probability.
func PhredToProb(q uint8) float64 {
	return math.Pow(10, -float64(q)/10)
}

// ProbToPhred converts an error probability to the nearest Phred quality, capped at MaxPhred.
// ok is false when prob is not positive.
func ProbToPhred(prob float64) (q uint8, ok bool) {
	if !(prob > 0) {
		return 0, false
	}
	p := math.Round(-10 * math.Log10(prob))
	switch {
	case p < 0:
		p = 0
	case p > MaxPhred:
		p = MaxPhred
	}
	return uint8(p), true
}

// NewRow computes the statistics of key observed occurrence times with the given match and
// mismatch counts.
func NewRow(key qgram.Key, occurrence, match, mismatch int) Row {
	r := Row{
		Key:        key,
		Prob:       PhredToProb(key.Qual),
		Occurrence: occurrence,
		Match:      match,
		Mismatch:   mismatch,
		FER:        math.Inf(1),
	}
	if occurrence > 0 {
		r.FER = float64(mismatch) / float64(occurrence)
	}
	r.Left = significance.LogLowerTail(mismatch, occurrence, r.Prob)
	r.Right = significance.LogUpperTail(mismatch, occurrence, r.Prob)
	r.Min = math.Min(r.Left, r.Right)
	return r
}

// NewPhred returns the quality learned from the empirical error rate of r. Rows without
// mismatches keep their quality.
func (r Row) NewPhred() uint8 {
	if q, ok := ProbToPhred(r.FER); ok && !math.IsInf(r.FER, 0) {
		return q
	}
	return r.Qual
}

// Build returns one row for every key observed in match or mismatch, sorted by Sort.
func Build(match, mismatch qgram.Counts) []Row {
	all := make(qgram.Counts, len(match))
	all.Merge(match)
	all.Merge(mismatch)

	ans := make([]Row, 0, len(all))
	var m, mm int
	for _, key := range all.Keys() {
		m, mm = match[key], mismatch[key]
		if m+mm == 0 {
			continue
		}
		ans = append(ans, NewRow(key, m+mm, m, mm))
	}
	Sort(ans)
	return ans
}

// Sort orders rows ascending by Min, the most surprising error rates first. Ties keep motif
// and quality order.
func Sort(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Min != rows[j].Min {
			return rows[i].Min < rows[j].Min
		}
		if rows[i].Motif != rows[j].Motif {
			return rows[i].Motif < rows[j].Motif
		}
		return rows[i].Qual < rows[j].Qual
	})
}

type tally struct {
	occurrence, match, mismatch int
}

// Remap moves every row of rows to the quality learned for its key in learned, merges rows
// that land on the same key and recomputes their statistics. Keys missing from learned keep
// their quality.
func Remap(learned, rows []Row) []Row {
	phred := make(map[qgram.Key]uint8, len(learned))
	for i := range learned {
		phred[learned[i].Key] = learned[i].NewPhred()
	}

	merged := make(map[qgram.Key]tally)
	var key qgram.Key
	var curr tally
	for i := range rows {
		key = rows[i].Key
		if q, found := phred[key]; found {
			key.Qual = q
		}
		curr = merged[key]
		curr.occurrence += rows[i].Occurrence
		curr.match += rows[i].Match
		curr.mismatch += rows[i].Mismatch
		merged[key] = curr
	}

	ans := make([]Row, 0, len(merged))
	for k, v := range merged {
		ans = append(ans, NewRow(k, v.occurrence, v.match, v.mismatch))
	}
	Sort(ans)
	return ans
}
