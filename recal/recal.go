// Package recal rewrites base qualities in an alignment file using the empirical error rates
// learned per (motif, quality).
package recal

import (
	"fmt"
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/qgram"
	"github.com/livarsky/concalib/strand"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"log"
	"strings"
)

// SAM format stores qualities with an ascii offset of 33.
const asciiOffset uint8 = 33

// Options controls which statistics are trusted and the motif length used for lookups.
type Options struct {
	Q             int // motif length
	MinOccurrence int // keys observed this many times or fewer are ignored
}

// DefaultOptions returns motif length 4 and a minimum occurrence of 10000.
func DefaultOptions() Options {
	return Options{Q: 4, MinOccurrence: 10000}
}

// Model maps a (motif, quality) key to the quality its empirical error rate implies.
type Model struct {
	q     int
	phred map[qgram.Key]uint8
}

// NewModel keeps every row of rows whose motif has length opts.Q, contains only A/C/G/T and
// was observed more than opts.MinOccurrence times with at least one mismatch.
func NewModel(rows []motifstats.Row, opts Options) (*Model, error) {
	if opts.Q < 1 {
		return nil, fmt.Errorf("motif length must be positive, got %d", opts.Q)
	}
	m := &Model{q: opts.Q, phred: make(map[qgram.Key]uint8)}
	var wrongLength int
	for i := range rows {
		if len(rows[i].Motif) != opts.Q {
			wrongLength++
			continue
		}
		if rows[i].Occurrence <= opts.MinOccurrence || !qgram.IsConcrete(rows[i].Motif) {
			continue
		}
		if q, ok := motifstats.ProbToPhred(rows[i].FER); ok {
			m.phred[rows[i].Key] = q
		}
	}
	if wrongLength > 0 {
		log.Printf("WARNING: %d statistics rows had a motif length other than %d and were ignored\n", wrongLength, opts.Q)
	}
	return m, nil
}

// Len returns the number of keys in the model.
func (m *Model) Len() int {
	return len(m.phred)
}

// Lookup returns the learned quality for key.
func (m *Model) Lookup(key qgram.Key) (uint8, bool) {
	q, found := m.phred[key]
	return q, found
}

// RewriteRead raises the quality of every base of r whose motif and quality are in the model
// and whose learned quality is higher than the current one. It returns the number of changed
// bases. Unmapped reads and reads without qualities are left untouched.
func (m *Model) RewriteRead(r *sam.Sam) int {
	if sam.IsUnmapped(*r) || len(r.Qual) != len(r.Seq) {
		return 0
	}

	seq := strings.ToUpper(dna.BasesToString(r.Seq))
	qual := []byte(r.Qual)
	rev := strand.IsReverse(*r)
	var changed int
	var motif string
	for i := range qual {
		if rev {
			if i+m.q > len(seq) {
				continue
			}
			motif = qgram.ReverseComplement(seq[i : i+m.q])
		} else {
			if i-m.q+1 < 0 {
				continue
			}
			motif = seq[i-m.q+1 : i+1]
		}
		if !qgram.IsConcrete(motif) {
			continue
		}

		learned, found := m.phred[qgram.Key{Motif: motif, Qual: qual[i] - asciiOffset}]
		if found && learned+asciiOffset > qual[i] {
			qual[i] = learned + asciiOffset
			changed++
		}
	}
	if changed > 0 {
		r.Qual = string(qual)
	}
	return changed
}

// Stats counts what Rewrite did.
type Stats struct {
	Reads        int
	Unmapped     int
	ChangedReads int
	ChangedBases int
}

// Rewrite copies every read of inFile to outFile as BAM, rewriting qualities with m.
func Rewrite(inFile, outFile string, m *Model, verbose int) Stats {
	reads, header := sam.GoReadToChan(inFile)
	out := fileio.EasyCreate(outFile)
	bw := sam.NewBamWriter(out, header)

	var s Stats
	var changed int
	for r := range reads {
		s.Reads++
		if sam.IsUnmapped(r) {
			s.Unmapped++
		} else if changed = m.RewriteRead(&r); changed > 0 {
			s.ChangedReads++
			s.ChangedBases += changed
		}
		sam.WriteToBamFileHandle(bw, r, 0)
		if verbose > 0 && s.Reads%1_000_000 == 0 {
			log.Printf("%d reads rewritten\n", s.Reads)
		}
	}

	err := bw.Close()
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	log.Printf("%d reads processed (%d unmapped), %d bases in %d reads received a new quality\n",
		s.Reads, s.Unmapped, s.ChangedBases, s.ChangedReads)
	return s
}
