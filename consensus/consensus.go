// Package consensus calls the base at selected genome positions from the reads covering them,
// once with the error probabilities promised by the base qualities and once with the error
// rates learned per (motif, quality), to show which of the two error models calls better.
package consensus

import (
	"fmt"
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/dna"
	"io"
	"log"
	"math"
)

// Probabilities are clamped into [minProb, 1-minProb] before taking logarithms.
const minProb = 1e-10

const bases = "ACGT"

// Likelihoods holds the log10 likelihood of each of A, C, G and T being the true base.
type Likelihoods [4]float64

// Add accounts for one observation of base with error probability e.
func (l *Likelihoods) Add(base byte, e float64) {
	e = clamp(e)
	right := math.Log10(1 - e)
	wrong := math.Log10(e / 3)
	for i := range l {
		if bases[i] == base {
			l[i] += right
		} else {
			l[i] += wrong
		}
	}
}

func clamp(e float64) float64 {
	return math.Max(minProb, math.Min(1-minProb, e))
}

// Call is the outcome of a set of likelihoods.
type Call struct {
	Best   byte
	Second byte
	Ratio  float64 // log10 likelihood of Best minus that of Second
}

// Call returns the most and second most likely bases. Ties go to the base earlier in ACGT.
func (l Likelihoods) Call() Call {
	best, second := 0, 1
	if l[second] > l[best] {
		best, second = second, best
	}
	for i := 2; i < len(l); i++ {
		switch {
		case l[i] > l[best]:
			best, second = i, best
		case l[i] > l[second]:
			second = i
		}
	}
	return Call{Best: bases[best], Second: bases[second], Ratio: l[best] - l[second]}
}

// Result is the pair of calls made at one site.
type Result struct {
	Label   string
	Pos     int
	Ref     byte
	Phred   Call
	FER     Call
	Correct bool // both calls equal the reference base
}

// Summary collects every result and the plot coordinates (phred ratio, fer ratio) of correct
// and incorrect calls.
type Summary struct {
	Results      []Result
	GoodX, GoodY []float64
	FailX, FailY []float64
	MissingKeys  int // observations whose key had no learned error rate
	Skipped      int // observations whose observed base was not A, C, G or T
}

// ErrorRates maps every key of rows to its empirical error rate.
func ErrorRates(rows []motifstats.Row) map[qgram.Key]float64 {
	ans := make(map[qgram.Key]float64, len(rows))
	for i := range rows {
		if !math.IsInf(rows[i].FER, 0) {
			ans[rows[i].Key] = rows[i].FER
		}
	}
	return ans
}

// Evaluate calls every site with both error models and compares the calls to g. Keys without
// a learned error rate fall back to the quality's error probability.
func Evaluate(sites []Site, rates map[qgram.Key]float64, g genome.Genome) (Summary, error) {
	var ans Summary
	var phred, fer Likelihoods
	var motif string
	var observed byte
	for _, site := range sites {
		if site.Pos >= g.Len() {
			return ans, fmt.Errorf("position %d (%s) is beyond the end of %s", site.Pos, site.Label, g.Name)
		}
		phred, fer = Likelihoods{}, Likelihoods{}
		for _, o := range site.Obs {
			motif = o.Motif
			if o.Reverse {
				motif = qgram.Complement(motif)
			}
			if motif == "" {
				ans.Skipped++
				continue
			}
			observed = motif[len(motif)-1]
			if !qgram.IsConcrete(string(observed)) {
				ans.Skipped++
				continue
			}

			p := motifstats.PhredToProb(o.Qual)
			rate, found := rates[qgram.Key{Motif: o.Motif, Qual: o.Qual}]
			if !found {
				ans.MissingKeys++
				rate = p
			}
			phred.Add(observed, p)
			fer.Add(observed, rate)
		}

		res := Result{
			Label: site.Label,
			Pos:   site.Pos,
			Ref:   dna.BasesToString(g.Seq[site.Pos : site.Pos+1])[0],
			Phred: phred.Call(),
			FER:   fer.Call(),
		}
		res.Correct = res.Phred.Best == res.Ref && res.FER.Best == res.Ref
		if res.Correct {
			ans.GoodX = append(ans.GoodX, res.Phred.Ratio)
			ans.GoodY = append(ans.GoodY, res.FER.Ratio)
		} else {
			ans.FailX = append(ans.FailX, res.Phred.Ratio)
			ans.FailY = append(ans.FailY, res.FER.Ratio)
		}
		ans.Results = append(ans.Results, res)
	}

	if ans.MissingKeys > 0 {
		log.Printf("WARNING: %d observations had no learned error rate and used their quality instead\n", ans.MissingKeys)
	}
	if ans.Skipped > 0 {
		log.Printf("WARNING: %d observations did not end in A, C, G or T and were ignored\n", ans.Skipped)
	}
	return ans, nil
}

// Write writes one tab-separated line per result.
func Write(out io.Writer, results []Result) error {
	var err error
	var status string
	_, err = fmt.Fprintln(out, "#Label\tPosition\tReference\tPhredBest\tPhredSecond\tPhredRatio\tFerBest\tFerSecond\tFerRatio\tStatus")
	if err != nil {
		return err
	}
	for _, r := range results {
		status = "good"
		if !r.Correct {
			status = "fail"
		}
		_, err = fmt.Fprintf(out, "%s\t%d\t%c\t%c\t%c\t%g\t%c\t%c\t%g\t%s\n",
			r.Label, r.Pos, r.Ref, r.Phred.Best, r.Phred.Second, r.Phred.Ratio, r.FER.Best, r.FER.Second, r.FER.Ratio, status)
		if err != nil {
			return err
		}
	}
	return nil
}
