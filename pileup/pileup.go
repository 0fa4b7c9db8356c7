// Package pileup walks aligned reads over a reference chromosome and records, for every
// aligned base, whether the read agreed with the reference. Counts are kept both per genome
// position (split by strand) and per (motif, quality) key.
package pileup

import (
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/qgram"
	"github.com/livarsky/concalib/strand"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/sam"
	"log"
	"math"
)

const progressInterval = 1_000_000

// Counters holds four parallel arrays indexed by genome offset.
type Counters struct {
	FwdMatch    []uint16
	FwdMismatch []uint16
	RevMatch    []uint16
	RevMismatch []uint16
}

// NewCounters returns zeroed counters for a chromosome of length n.
func NewCounters(n int) Counters {
	return Counters{
		FwdMatch:    make([]uint16, n),
		FwdMismatch: make([]uint16, n),
		RevMatch:    make([]uint16, n),
		RevMismatch: make([]uint16, n),
	}
}

// Len returns the number of positions covered by the counters.
func (c Counters) Len() int {
	return len(c.FwdMatch)
}

// Stats summarizes what happened to the reads and bases seen by an Annotator.
type Stats struct {
	Reads           int // reads counted
	Unmapped        int // unmapped reads skipped
	OtherChrom      int // reads on another chromosome skipped
	UnknownOps      int // cigar operations that were not recognized
	MalformedMotifs int // motifs with letters outside A/C/G/T
	OutOfBounds     int // aligned bases beyond the end of the genome or read
	Saturated       int // increments lost because a position counter was full
}

// Annotator accumulates the pileup of reads against a single chromosome.
type Annotator struct {
	Counters
	Match    qgram.Counts
	Mismatch qgram.Counts
	Stats    Stats

	ref     genome.Genome
	q       int
	verbose int
}

// NewAnnotator returns an Annotator for motifs of length q over ref.
func NewAnnotator(ref genome.Genome, q int, verbose int) *Annotator {
	return &Annotator{
		Counters: NewCounters(ref.Len()),
		Match:    make(qgram.Counts),
		Mismatch: make(qgram.Counts),
		ref:      ref,
		q:        q,
		verbose:  verbose,
	}
}

// Annotate consumes reads and returns the finished Annotator.
func Annotate(reads <-chan sam.Sam, ref genome.Genome, q int, verbose int) *Annotator {
	a := NewAnnotator(ref, q, verbose)
	for r := range reads {
		a.Add(r)
	}
	a.Report()
	return a
}

// Add records every aligned base of r. Unmapped reads and reads outside the annotated
// chromosome are skipped.
func (a *Annotator) Add(r sam.Sam) {
	if sam.IsUnmapped(r) {
		a.Stats.Unmapped++
		return
	}
	if r.RName != a.ref.Name {
		a.Stats.OtherChrom++
		return
	}

	a.Stats.Reads++
	if a.verbose > 0 && a.Stats.Reads%progressInterval == 0 {
		log.Printf("%d reads considered for genome annotation\n", a.Stats.Reads)
	}

	dna.AllToUpper(r.Seq)
	rev := strand.IsReverse(r)
	refPos := int(r.Pos) - 1
	var readPos int
	for _, c := range r.Cigar {
		switch c.Op {
		case 'M', '=', 'X':
			a.alignedRun(r, rev, refPos, readPos, c.RunLength)
			refPos += c.RunLength
			readPos += c.RunLength
		case 'I', 'S':
			readPos += c.RunLength
		case 'D', 'N':
			refPos += c.RunLength
		case 'H', 'P', '*':
		default:
			a.Stats.UnknownOps++
			log.Printf("WARNING: unrecognized cigar operation %c (length %d) in read %s\n", c.Op, c.RunLength, r.QName)
		}
	}
}

// alignedRun handles one match/mismatch operation covering length bases starting at
// refStart on the genome and readStart on the read.
func (a *Annotator) alignedRun(r sam.Sam, rev bool, refStart, readStart, length int) {
	var i, pos, lo, hi int
	var motif string
	var match bool
	hasQual := len(r.Qual) == len(r.Seq)
	runEnd := readStart + length
	if runEnd > len(r.Seq) {
		a.Stats.OutOfBounds += runEnd - len(r.Seq)
		runEnd = len(r.Seq)
	}

	for i = readStart; i < runEnd; i++ {
		pos = refStart + (i - readStart)
		if rev { // motif starts at i in read coordinates, reverse complemented below
			lo, hi = i, i+a.q
		} else { // motif ends at i
			lo, hi = i-a.q+1, i+1
		}
		if lo < readStart || hi > runEnd {
			continue
		}
		if pos < 0 || pos >= a.ref.Len() {
			a.Stats.OutOfBounds++
			continue
		}
		if ambiguousContext(r.Seq[lo:hi], i-lo) {
			continue
		}

		match = r.Seq[i] == a.ref.Seq[pos]
		a.countPosition(pos, rev, match)

		if !hasQual {
			continue
		}
		motif = dna.BasesToString(r.Seq[lo:hi])
		if rev {
			motif = qgram.ReverseComplement(motif)
		}
		if !qgram.IsConcrete(motif) {
			a.Stats.MalformedMotifs++
			continue
		}
		key := qgram.Key{Motif: motif, Qual: r.Qual[i] - 33}
		if match {
			a.Match.Add(key, 1)
		} else {
			a.Mismatch.Add(key, 1)
		}
	}
}

// ambiguousContext reports whether any base of window other than the one at self is an N.
func ambiguousContext(window []dna.Base, self int) bool {
	for j := range window {
		if j != self && window[j] == dna.N {
			return true
		}
	}
	return false
}

func (a *Annotator) countPosition(pos int, rev, match bool) {
	var c []uint16
	switch {
	case !rev && match:
		c = a.FwdMatch
	case !rev:
		c = a.FwdMismatch
	case match:
		c = a.RevMatch
	default:
		c = a.RevMismatch
	}
	if c[pos] == math.MaxUint16 {
		a.Stats.Saturated++
		return
	}
	c[pos]++
}

// Report logs the warning summary for the annotated reads.
func (a *Annotator) Report() {
	if a.verbose > 0 {
		log.Printf("%d reads annotated on %s (%d unmapped, %d on other chromosomes skipped)\n",
			a.Stats.Reads, a.ref.Name, a.Stats.Unmapped, a.Stats.OtherChrom)
	}
	if a.Stats.MalformedMotifs > 0 {
		log.Printf("WARNING: %d motifs contained letters other than A, C, G and T and were ignored\n", a.Stats.MalformedMotifs)
	}
	if a.Stats.UnknownOps > 0 {
		log.Printf("WARNING: %d unrecognized cigar operations were ignored\n", a.Stats.UnknownOps)
	}
	if a.Stats.OutOfBounds > 0 {
		log.Printf("WARNING: %d aligned bases fell outside the reference or read and were ignored\n", a.Stats.OutOfBounds)
	}
	if a.Stats.Saturated > 0 {
		log.Printf("WARNING: %d increments were dropped at positions with coverage above %d\n", a.Stats.Saturated, math.MaxUint16)
	}
}
