// Package table folds the per-position pileup counters into per-motif strand-bias tables.
package table

import (
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/pileup"
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/dna"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
	"log"
)

const progressInterval = 20_000_000

// Field offsets within an SB.
const (
	FM  = iota // forward match
	RM         // reverse match
	FMM        // forward mismatch
	RMM        // reverse mismatch
)

// SB is a strand-bias table: forward match, reverse match, forward mismatch, reverse mismatch.
type SB [4]int

func (s *SB) Add(o SB) {
	for i := range s {
		s[i] += o[i]
	}
}

func (s SB) Swap() SB {
	return SB{s[RM], s[FM], s[RMM], s[FMM]}
}

func (s SB) IsZero() bool {
	return s == SB{}
}

func (s SB) Total() int {
	return s[FM] + s[RM] + s[FMM] + s[RMM]
}

// FER returns the forward error rate. ok is false when there are no forward observations.
func (s SB) FER() (rate float64, ok bool) {
	return errorRate(s[FMM], s[FM])
}

// RER returns the reverse error rate. ok is false when there are no reverse observations.
func (s SB) RER() (rate float64, ok bool) {
	return errorRate(s[RMM], s[RM])
}

func errorRate(mismatch, match int) (float64, bool) {
	if mismatch+match == 0 {
		return 0, false
	}
	return float64(mismatch) / float64(mismatch+match), true
}

// Table maps a motif to its strand-bias table.
type Table map[string]SB

func (t Table) Add(motif string, sb SB) {
	curr := t[motif]
	curr.Add(sb)
	t[motif] = curr
}

// Motifs returns the motifs in t in lexical order.
func (t Table) Motifs() []string {
	ans := maps.Keys(t)
	slices.Sort(ans)
	return ans
}

// Windows accumulates, for every concrete genome window of length q, the counters at the
// window's last offset (Last) and at its first offset with strands swapped (First).
func Windows(c pileup.Counters, g genome.Genome, q int, verbose int) (last, first Table) {
	last, first = make(Table), make(Table)
	var skipped int
	var w string
	var end int
	for i := 0; i+q <= g.Len() && i+q <= c.Len(); i++ {
		if verbose > 0 && i > 0 && i%progressInterval == 0 {
			log.Printf("%d genome positions aggregated\n", i)
		}
		w = dna.BasesToString(g.Seq[i : i+q])
		if !qgram.IsConcrete(w) {
			skipped++
			continue
		}
		// the base the motif was read into on the forward strand, not i+q
		end = i + q - 1
		last.Add(w, SB{int(c.FwdMatch[end]), int(c.RevMatch[end]), int(c.FwdMismatch[end]), int(c.RevMismatch[end])})
		first.Add(w, SB{int(c.RevMatch[i]), int(c.FwdMatch[i]), int(c.RevMismatch[i]), int(c.FwdMismatch[i])})
	}
	if skipped > 0 {
		log.Printf("WARNING: %d genome windows contained letters other than A, C, G and T and were skipped\n", skipped)
	}
	return last, first
}

// Combine returns last[w] + first[revcomp(w)] for every motif w that has evidence in either
// table. A motif absent from the genome but whose reverse complement is present keeps its
// reverse strand evidence.
func Combine(last, first Table) Table {
	ans := make(Table, len(last))
	for w, sb := range last {
		ans.Add(w, sb)
	}
	for w, sb := range first {
		ans.Add(qgram.ReverseComplement(w), sb)
	}
	return ans
}

// Aggregate builds the combined strand-bias table of every concrete motif of length q.
func Aggregate(c pileup.Counters, g genome.Genome, q int, verbose int) Table {
	return Combine(Windows(c, g, q, verbose))
}

// AddAmbiguous extends t with every motif of length q holding 1 to n Ns. The table of such a
// motif is the sum of the tables of its concrete expansions, and it is only added when that
// sum is nonzero.
func AddAmbiguous(t Table, q, n int, verbose int) {
	if n <= 0 {
		if verbose > 0 {
			log.Println("no ambiguous motifs requested")
		}
		return
	}

	var added int
	var sum SB
	var pattern string
	it := qgram.NewPatternIter(q, n)
	for it.Next() {
		pattern = it.Pattern()
		sum = SB{}
		for _, m := range qgram.Expand(pattern) {
			sum.Add(t[m])
		}
		if sum.IsZero() {
			continue
		}
		t[pattern] = sum
		added++
	}
	if verbose > 0 {
		log.Printf("%d motifs with up to %d Ns added\n", added, n)
	}
}
