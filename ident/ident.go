// Package ident scores every motif's strand-bias table and keeps the motifs whose forward
// error rate significantly exceeds their reverse error rate.
package ident

import (
	"fmt"
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/significance"
	"github.com/livarsky/concalib/table"
	"log"
	"sort"
)

type Options struct {
	Alpha   float64 // family-wise error rate
	Epsilon float64 // background error rate cutoff, RER must be below
	Delta   float64 // error rate difference cutoff, ERD must be at least
}

// DefaultOptions returns alpha 0.05, epsilon 0.03 and delta 0.05.
func DefaultOptions() Options {
	return Options{Alpha: 0.05, Epsilon: 0.03, Delta: 0.05}
}

// Row is one retained motif.
type Row struct {
	Motif      string
	Occurrence int
	SB         table.SB
	Score      float64
	FER        float64
	RER        float64
	ERD        float64
}

// Identify scores every motif of t and returns those passing the Bonferroni threshold for
// motifs of length q with up to n Ns and the error rate cutoffs in opts, sorted descending
// by ERD. Occurrences are counted in g for retained motifs only.
func Identify(t table.Table, g genome.Genome, q, n int, opts Options, verbose int) []Row {
	threshold := significance.BonferroniThreshold(q, n, opts.Alpha)
	if verbose > 0 {
		log.Printf("scoring %d motifs against threshold %.4f\n", len(t), threshold)
	}

	var ans []Row
	var scored int
	for _, motif := range t.Motifs() {
		scored++
		if verbose > 0 && scored%1_000_000 == 0 {
			log.Printf("%d / %d strand bias scores calculated\n", scored, len(t))
		}

		row, ok := score(motif, t[motif], threshold, opts)
		if !ok {
			continue
		}
		row.Occurrence = g.Occurrences(motif)
		ans = append(ans, row)
	}

	if verbose > 0 {
		log.Printf("%d of %d motifs retained\n", len(ans), len(t))
	}
	sortByERD(ans)
	return ans
}

func score(motif string, sb table.SB, threshold float64, opts Options) (Row, bool) {
	row := Row{Motif: motif, SB: sb}
	row.Score = significance.Score(significance.PValue(sb[table.FM], sb[table.RM], sb[table.FMM], sb[table.RMM]))
	if row.Score <= threshold {
		return row, false
	}

	var fok, rok bool
	row.FER, fok = sb.FER()
	row.RER, rok = sb.RER()
	if !fok || !rok {
		return row, false
	}
	row.ERD = row.FER - row.RER
	return row, row.RER < opts.Epsilon && row.ERD >= opts.Delta
}

func sortByERD(rows []Row) {
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ERD != rows[j].ERD {
			return rows[i].ERD > rows[j].ERD
		}
		return rows[i].Motif < rows[j].Motif
	})
}

// Columns lists the column names accepted by Sort.
var Columns = []string{"motif", "occurrence", "fm", "rm", "fmm", "rmm", "score", "fer", "rer", "erd"}

// Sort orders rows by column: ascending for motif, descending for every numeric column with
// ties broken by motif.
func Sort(rows []Row, column string) error {
	var key func(r Row) float64
	switch column {
	case "motif":
		sort.SliceStable(rows, func(i, j int) bool { return rows[i].Motif < rows[j].Motif })
		return nil
	case "occurrence":
		key = func(r Row) float64 { return float64(r.Occurrence) }
	case "fm":
		key = func(r Row) float64 { return float64(r.SB[table.FM]) }
	case "rm":
		key = func(r Row) float64 { return float64(r.SB[table.RM]) }
	case "fmm":
		key = func(r Row) float64 { return float64(r.SB[table.FMM]) }
	case "rmm":
		key = func(r Row) float64 { return float64(r.SB[table.RMM]) }
	case "score":
		key = func(r Row) float64 { return r.Score }
	case "fer":
		key = func(r Row) float64 { return r.FER }
	case "rer":
		key = func(r Row) float64 { return r.RER }
	case "erd":
		key = func(r Row) float64 { return r.ERD }
	default:
		return fmt.Errorf("unknown sort column %q, must be one of %v", column, Columns)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		ki, kj := key(rows[i]), key(rows[j])
		if ki != kj {
			return ki > kj
		}
		return rows[i].Motif < rows[j].Motif
	})
	return nil
}
