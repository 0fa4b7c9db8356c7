package ident

import (
	"bytes"
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/significance"
	"github.com/livarsky/concalib/table"
	"github.com/vertgenlab/gonomics/dna"
	"strings"
	"testing"
)

var testTable = table.Table{
	"ACG": {1000, 1000, 300, 10}, // kept
	"CGT": {1000, 1000, 100, 10}, // kept
	"AAA": {1000, 1000, 10, 10},  // not significant
	"TTT": {1000, 1000, 300, 40}, // reverse error rate above epsilon
	"GGG": {0, 1000, 0, 10},      // no forward observations
	"CCC": {1000, 1000, 60, 20},  // error rate difference below delta
}

func TestIdentify(t *testing.T) {
	g := genome.Genome{Name: "chr1", Seq: dna.StringToBases("ACGTT")}
	rows := Identify(testTable, g, 3, 0, DefaultOptions(), 0)

	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d: %v", len(rows), rows)
	}
	if rows[0].Motif != "ACG" || rows[1].Motif != "CGT" {
		t.Errorf("expected ACG then CGT, got %s then %s", rows[0].Motif, rows[1].Motif)
	}
	for _, r := range rows {
		if r.Occurrence != 2 {
			t.Errorf("%s: expected 2 occurrences, got %d", r.Motif, r.Occurrence)
		}
		if r.ERD != r.FER-r.RER || r.RER >= 0.03 || r.ERD < 0.05 {
			t.Errorf("%s: inconsistent rates %v %v %v", r.Motif, r.FER, r.RER, r.ERD)
		}
		if r.Score <= significance.BonferroniThreshold(3, 0, 0.05) {
			t.Errorf("%s: score %v below threshold", r.Motif, r.Score)
		}
	}
}

func TestIdentifyTies(t *testing.T) {
	tab := table.Table{
		"TTA": {1000, 1000, 300, 10},
		"AAC": {1000, 1000, 300, 10},
		"GAC": {1000, 1000, 300, 10},
	}
	rows := Identify(tab, genome.Genome{}, 3, 0, DefaultOptions(), 0)
	if len(rows) != 3 || rows[0].Motif != "AAC" || rows[1].Motif != "GAC" || rows[2].Motif != "TTA" {
		t.Errorf("equal ERD should be ordered by motif, got %v", rows)
	}
}

func TestSort(t *testing.T) {
	rows := []Row{
		{Motif: "CGT", SB: table.SB{1000, 1000, 100, 10}, ERD: 0.08},
		{Motif: "ACG", SB: table.SB{1000, 1000, 300, 10}, ERD: 0.22},
	}

	if err := Sort(rows, "motif"); err != nil || rows[0].Motif != "ACG" {
		t.Errorf("sort by motif failed: %v %v", err, rows)
	}
	if err := Sort(rows, "erd"); err != nil || rows[0].Motif != "ACG" {
		t.Errorf("sort by erd failed: %v %v", err, rows)
	}
	if err := Sort(rows, "rmm"); err != nil || rows[0].Motif != "ACG" {
		t.Errorf("ties should be broken by motif: %v %v", err, rows)
	}
	if err := Sort(rows, "nonsense"); err == nil {
		t.Error("expected error for unknown column")
	}
}

func TestWrite(t *testing.T) {
	rows := []Row{{
		Motif:      "ACG",
		Occurrence: 2,
		SB:         table.SB{4, 3, 2, 1},
		Score:      significance.MaxScore,
		FER:        0.5,
		RER:        0.25,
		ERD:        0.25,
	}}

	var buf bytes.Buffer
	if err := Write(&buf, rows); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 || lines[0] != Header {
		t.Fatalf("unexpected output:\n%s", buf.String())
	}
	expected := "ACG\t2\t4\t3\t2\t1\t9223372036854775807\t0.5\t0.25\t0.25"
	if lines[1] != expected {
		t.Errorf("expected %q, got %q", expected, lines[1])
	}
}
