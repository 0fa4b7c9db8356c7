package figures

import (
	"github.com/livarsky/concalib/consensus"
	"github.com/livarsky/concalib/ident"
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/qgram"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestJoin(t *testing.T) {
	a := []motifstats.Row{
		motifstats.NewRow(qgram.Key{Motif: "AC", Qual: 30}, 100, 90, 10),
		motifstats.NewRow(qgram.Key{Motif: "GT", Qual: 20}, 100, 99, 1),
		motifstats.NewRow(qgram.Key{Motif: "CC", Qual: 20}, 0, 0, 0),
	}
	b := []motifstats.Row{
		motifstats.NewRow(qgram.Key{Motif: "GT", Qual: 20}, 100, 98, 2),
		motifstats.NewRow(qgram.Key{Motif: "AC", Qual: 30}, 100, 95, 5),
		motifstats.NewRow(qgram.Key{Motif: "AC", Qual: 10}, 100, 95, 5),
		motifstats.NewRow(qgram.Key{Motif: "CC", Qual: 20}, 100, 95, 5),
	}

	pairs := Join(a, b)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %v", pairs)
	}
	if pairs[0].Motif != "AC" || pairs[0].A != 0.1 || pairs[0].B != 0.05 {
		t.Errorf("unexpected first pair %v", pairs[0])
	}
	if pairs[1].Motif != "GT" || pairs[1].A != 0.01 || pairs[1].B != 0.02 {
		t.Errorf("unexpected second pair %v", pairs[1])
	}
}

func TestOutliers(t *testing.T) {
	opts := ScatterOptions{Outliers: true, Koeff: 2, Off: 0, Sign: 1}
	if !opts.IsOutlier(1, 3) || opts.IsOutlier(1, 1) || opts.IsOutlier(0, 5) {
		t.Error("unexpected outlier classification above the line")
	}
	opts.Sign = -1
	if opts.IsOutlier(1, 3) || !opts.IsOutlier(1, 1) {
		t.Error("unexpected outlier classification below the line")
	}

	if LogRate(0) != 0.01 || math.Abs(LogRate(0.001)+3) > 1e-12 {
		t.Errorf("unexpected log rates %v %v", LogRate(0), LogRate(0.001))
	}
}

func TestScatter(t *testing.T) {
	pairs := []Pair{
		{Key: qgram.Key{Motif: "AC", Qual: 30}, A: 0.01, B: 0.05},
		{Key: qgram.Key{Motif: "GT", Qual: 20}, A: 0.01, B: 0.011},
	}
	file := filepath.Join(t.TempDir(), "scatter.png")
	flagged, err := Scatter(pairs, ScatterOptions{Outliers: true, Koeff: 2, Sign: 1}, file)
	if err != nil {
		t.Fatal(err)
	}
	if len(flagged) != 1 || flagged[0].Motif != "AC" {
		t.Errorf("expected AC flagged, got %v", flagged)
	}
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		t.Errorf("expected plot at %s", file)
	}
}

func TestConsensus(t *testing.T) {
	s := consensus.Summary{
		GoodX: []float64{1, 2, 3},
		GoodY: []float64{1.5, 2.5, 3.5},
		FailX: []float64{0.5},
		FailY: []float64{0.1},
	}
	file := filepath.Join(t.TempDir(), "graph.svg")
	if err := Consensus(s, file); err != nil {
		t.Fatal(err)
	}
	if info, err := os.Stat(file); err != nil || info.Size() == 0 {
		t.Errorf("expected plot at %s", file)
	}
}

func TestERDGraph(t *testing.T) {
	if ERDGraph(nil) != "" {
		t.Error("expected no graph without rows")
	}
	g := ERDGraph([]ident.Row{{Motif: "ACG", ERD: 0.2}, {Motif: "CGT", ERD: 0.08}})
	if !strings.Contains(g, "ERD of 2 retained motifs") {
		t.Errorf("unexpected graph:\n%s", g)
	}
}
