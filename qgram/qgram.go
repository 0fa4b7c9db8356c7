// Package qgram holds the motif (q-gram) primitives shared by the pipeline: keys, reverse
// complements, validation and enumeration of motifs containing ambiguous bases.
package qgram

import (
	"golang.org/x/exp/maps"
	"sort"
	"strings"
)

// Key identifies a motif observed with a given Phred base quality.
type Key struct {
	Motif string
	Qual  uint8
}

// Counts accumulates observations per Key. Values only ever grow by addition.
type Counts map[Key]int

// Add increments the count for k by v.
func (c Counts) Add(k Key, v int) {
	c[k] += v
}

// Merge adds every count in o to c.
func (c Counts) Merge(o Counts) {
	for k, v := range o {
		c[k] += v
	}
}

// Keys returns the keys of c ordered by motif, then quality.
func (c Counts) Keys() []Key {
	keys := maps.Keys(c)
	SortKeys(keys)
	return keys
}

// SortKeys orders keys by motif, then quality.
func SortKeys(keys []Key) {
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Motif != keys[j].Motif {
			return keys[i].Motif < keys[j].Motif
		}
		return keys[i].Qual < keys[j].Qual
	})
}

func complement(b byte) (byte, bool) {
	switch b {
	case 'A':
		return 'T', true
	case 'C':
		return 'G', true
	case 'G':
		return 'C', true
	case 'T':
		return 'A', true
	case 'N':
		return 'N', true
	default:
		return b, false
	}
}

// ReverseComplement returns the reverse complement of motif. A motif with letters outside
// A/C/G/T/N is returned unchanged.
func ReverseComplement(motif string) string {
	ans := make([]byte, len(motif))
	var ok bool
	for i := 0; i < len(motif); i++ {
		ans[len(motif)-1-i], ok = complement(motif[i])
		if !ok {
			return motif
		}
	}
	return string(ans)
}

// Complement returns the complement of motif without reversing it. A motif with letters
// outside A/C/G/T/N is returned unchanged.
func Complement(motif string) string {
	ans := make([]byte, len(motif))
	var ok bool
	for i := 0; i < len(motif); i++ {
		ans[i], ok = complement(motif[i])
		if !ok {
			return motif
		}
	}
	return string(ans)
}

// IsConcrete reports whether motif consists only of A, C, G and T.
func IsConcrete(motif string) bool {
	for i := 0; i < len(motif); i++ {
		switch motif[i] {
		case 'A', 'C', 'G', 'T':
		default:
			return false
		}
	}
	return len(motif) > 0
}

// IsValid reports whether motif consists only of A, C, G, T and N.
func IsValid(motif string) bool {
	for i := 0; i < len(motif); i++ {
		switch motif[i] {
		case 'A', 'C', 'G', 'T', 'N':
		default:
			return false
		}
	}
	return len(motif) > 0
}

// CountN returns the number of ambiguous symbols in motif.
func CountN(motif string) int {
	return strings.Count(motif, "N")
}
