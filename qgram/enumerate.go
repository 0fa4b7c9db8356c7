package qgram

import (
	"gonum.org/v1/gonum/stat/combin"
	"math"
)

const bases = "ACGT"

// PatternIter lazily walks every motif of length q that holds between 1 and n ambiguous
// symbols (N). Each pattern is produced exactly once; Reset restarts the walk.
//
//	it := NewPatternIter(4, 1)
//	for it.Next() {
//		use(it.Pattern())
//	}
type PatternIter struct {
	q, n    int
	k       int                          // number of Ns in the current pattern
	gen     *combin.CombinationGenerator // positions of the Ns
	nPos    []int
	fill    []int // odometer over ACGT for the q-k concrete positions
	started bool
	done    bool
	buf     []byte
}

// NewPatternIter returns an iterator over motifs of length q with 1 to n Ns.
func NewPatternIter(q, n int) *PatternIter {
	it := &PatternIter{q: q, n: n}
	it.Reset()
	return it
}

// Reset restarts the iteration from the first pattern.
func (it *PatternIter) Reset() {
	it.k = 0
	it.gen = nil
	it.started = false
	it.done = it.q <= 0 || it.n <= 0
	it.buf = make([]byte, it.q)
	if it.n > it.q {
		it.n = it.q
	}
}

// Next advances to the next pattern and reports whether one is available.
func (it *PatternIter) Next() bool {
	if it.done {
		return false
	}

	if it.started && it.advanceFill() {
		it.render()
		return true
	}
	it.started = true

	for {
		if it.gen != nil && it.gen.Next() {
			it.nPos = it.gen.Combination(it.nPos)
			for i := range it.fill {
				it.fill[i] = 0
			}
			it.render()
			return true
		}
		it.k++
		if it.k > it.n {
			it.done = true
			return false
		}
		it.gen = combin.NewCombinationGenerator(it.q, it.k)
		it.nPos = make([]int, it.k)
		it.fill = make([]int, it.q-it.k)
	}
}

// Pattern returns the current pattern. It is only valid after Next returned true.
func (it *PatternIter) Pattern() string {
	return string(it.buf)
}

// advanceFill steps the ACGT odometer and reports false once it wraps around.
func (it *PatternIter) advanceFill() bool {
	for i := len(it.fill) - 1; i >= 0; i-- {
		it.fill[i]++
		if it.fill[i] < len(bases) {
			return true
		}
		it.fill[i] = 0
	}
	return false
}

func (it *PatternIter) render() {
	var f, c int
	for i := 0; i < it.q; i++ {
		if c < len(it.nPos) && it.nPos[c] == i {
			it.buf[i] = 'N'
			c++
			continue
		}
		it.buf[i] = bases[it.fill[f]]
		f++
	}
}

// Expand returns every concrete motif obtained by substituting each N in pattern with A, C,
// G and T. A pattern without N expands to itself.
func Expand(pattern string) []string {
	var nPos []int
	for i := 0; i < len(pattern); i++ {
		if pattern[i] == 'N' {
			nPos = append(nPos, i)
		}
	}

	ans := make([]string, 0, 1<<(2*uint(len(nPos))))
	buf := []byte(pattern)
	odometer := make([]int, len(nPos))
	for {
		for i, p := range nPos {
			buf[p] = bases[odometer[i]]
		}
		ans = append(ans, string(buf))

		i := len(odometer) - 1
		for ; i >= 0; i-- {
			odometer[i]++
			if odometer[i] < len(bases) {
				break
			}
			odometer[i] = 0
		}
		if i < 0 {
			return ans
		}
	}
}

// SpaceSize returns the number of motifs of length q with at most n Ns:
// sum over k in [0, n] of C(q, k) * 4^(q-k).
func SpaceSize(q, n int) float64 {
	if n > q {
		n = q
	}
	var ans float64
	for k := 0; k <= n; k++ {
		ans += float64(combin.Binomial(q, k)) * math.Pow(4, float64(q-k))
	}
	return ans
}
