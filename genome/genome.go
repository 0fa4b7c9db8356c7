// Package genome loads a single chromosome from a reference fasta for random access.
package genome

import (
	"errors"
	"fmt"
	"github.com/livarsky/concalib/fai"
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/dna"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fasta"
	"log"
)

// ErrChromNotFound is returned by Load when the requested chromosome is not in the reference.
var ErrChromNotFound = errors.New("chromosome not contained in reference genome")

// ErrTruncated is returned by Load when an indexed chromosome is shorter than its index entry.
var ErrTruncated = errors.New("reference shorter than its fasta index")

// Genome is an upper-cased base sequence for one chromosome, addressed by 0-based offset.
type Genome struct {
	Name string
	Seq  []dna.Base
}

// Len returns the number of bases in the chromosome.
func (g Genome) Len() int {
	return len(g.Seq)
}

// Load returns the chromosome named chrom from fastaFile. If the reference holds exactly
// one sequence under a different name, that sequence is used and its name is kept in the
// returned Genome. An indexed reference (fastaFile.fai) is read through a fasta.Seeker so
// only the requested chromosome is loaded.
func Load(fastaFile, chrom string) (Genome, error) {
	if fai.Exists(fastaFile) {
		return loadIndexed(fastaFile, chrom)
	}

	records := fasta.Read(fastaFile)
	for i := range records {
		if records[i].Name == chrom {
			return newGenome(records[i].Name, records[i].Seq), nil
		}
	}

	if len(records) == 1 {
		log.Printf("WARNING: %s not found, using the only sequence in %s (%s)\n", chrom, fastaFile, records[0].Name)
		return newGenome(records[0].Name, records[0].Seq), nil
	}

	return Genome{}, fmt.Errorf("%w: %s is not in %s (use -c to choose a chromosome)", ErrChromNotFound, chrom, fastaFile)
}

func loadIndexed(fastaFile, chrom string) (Genome, error) {
	idx, err := fai.ReadIndex(fastaFile + ".fai")
	if err != nil {
		return Genome{}, err
	}

	if !idx.Has(chrom) {
		names := idx.Names()
		if len(names) != 1 {
			return Genome{}, fmt.Errorf("%w: %s is not in %s (use -c to choose a chromosome)", ErrChromNotFound, chrom, fastaFile)
		}
		log.Printf("WARNING: %s not found, using the only sequence in %s (%s)\n", chrom, fastaFile, names[0])
		chrom = names[0]
	}

	seeker := fasta.NewSeeker(fastaFile, "")
	defer func() {
		exception.PanicOnErr(seeker.Close())
	}()

	size := idx.Size(chrom)
	seq, err := fasta.SeekByName(seeker, chrom, 0, size)
	if errors.Is(err, fasta.ErrSeekEndOutsideChr) || (err == nil && len(seq) != size) {
		return Genome{}, fmt.Errorf("%w: %s has %d bases in %s but the index lists %d", ErrTruncated, chrom, len(seq), fastaFile, size)
	}
	if err != nil {
		return Genome{}, fmt.Errorf("could not read %s from %s: %w", chrom, fastaFile, err)
	}
	return newGenome(chrom, seq), nil
}

func newGenome(name string, seq []dna.Base) Genome {
	dna.AllToUpper(seq)
	return Genome{Name: name, Seq: seq}
}

// Occurrences counts the (possibly overlapping) occurrences of motif and of its reverse
// complement in the genome. An N in the motif matches any base.
func (g Genome) Occurrences(motif string) int {
	if len(motif) == 0 {
		return 0
	}
	return g.count(motif) + g.count(qgram.ReverseComplement(motif))
}

func (g Genome) count(motif string) int {
	var ans int
	pattern := dna.StringToBases(motif)
	for i := 0; i+len(pattern) <= len(g.Seq); i++ {
		if matchAt(g.Seq[i:i+len(pattern)], pattern) {
			ans++
		}
	}
	return ans
}

func matchAt(window, pattern []dna.Base) bool {
	for j := range pattern {
		if pattern[j] != dna.N && pattern[j] != window[j] {
			return false
		}
	}
	return true
}
