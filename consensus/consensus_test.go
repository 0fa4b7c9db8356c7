package consensus

import (
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/dna"
	"math"
	"os"
	"path/filepath"
	"testing"
)

func TestLikelihoods(t *testing.T) {
	var l Likelihoods
	l.Add('C', 0.001)
	l.Add('C', 0.001)
	l.Add('A', 0.01)

	c := l.Call()
	if c.Best != 'C' || c.Second != 'A' {
		t.Errorf("expected C then A, got %c then %c", c.Best, c.Second)
	}
	expected := (2*math.Log10(0.999) + math.Log10(0.01/3)) - (2*math.Log10(0.001/3) + math.Log10(0.99))
	if math.Abs(c.Ratio-expected) > 1e-9 {
		t.Errorf("expected ratio %v, got %v", expected, c.Ratio)
	}

	var tie Likelihoods
	if c = tie.Call(); c.Best != 'A' || c.Second != 'C' || c.Ratio != 0 {
		t.Errorf("ties should go to the earlier base, got %+v", c)
	}

	var extreme Likelihoods
	extreme.Add('G', 0)
	extreme.Add('G', 1)
	for i := range extreme {
		if math.IsInf(extreme[i], 0) || math.IsNaN(extreme[i]) {
			t.Errorf("probabilities of 0 and 1 should be clamped, got %v", extreme)
		}
	}
}

func TestReadObservations(t *testing.T) {
	file := filepath.Join(t.TempDir(), "obs.txt")
	contents := "x:2\nACG,M,30,f\nTGC,M,20,r\nx:3\nACGT,M,10,f\n"
	if err := os.WriteFile(file, []byte(contents), 0644); err != nil {
		t.Fatal(err)
	}

	sites, err := ReadObservations(file)
	if err != nil {
		t.Fatal(err)
	}
	if len(sites) != 2 || sites[0].Pos != 2 || sites[1].Pos != 3 {
		t.Fatalf("unexpected sites %v", sites)
	}
	if len(sites[0].Obs) != 2 || !sites[0].Obs[1].Reverse || sites[0].Obs[1].Qual != 20 {
		t.Errorf("unexpected observations %v", sites[0].Obs)
	}

	if err = os.WriteFile(file, []byte("ACG,M,30,f\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = ReadObservations(file); err == nil {
		t.Error("expected error for observation without position")
	}

	if err = os.WriteFile(file, []byte("x:1\nACG,M,30,+\n"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err = ReadObservations(file); err == nil {
		t.Error("expected error for unknown strand")
	}
}

func TestEvaluate(t *testing.T) {
	g := genome.Genome{Name: "chr1", Seq: dna.StringToBases("AAGTT")}
	sites := []Site{
		{Label: "x", Pos: 2, Obs: []Observation{
			{Motif: "AAG", Qual: 30},
			{Motif: "TTC", Qual: 30, Reverse: true}, // complement AAG, observed G
			{Motif: "AAA", Qual: 10},
		}},
		{Label: "x", Pos: 3, Obs: []Observation{
			{Motif: "AGA", Qual: 30},
			{Motif: "AGA", Qual: 30},
		}},
	}
	rates := map[qgram.Key]float64{{Motif: "AAG", Qual: 30}: 0.001}

	summary, err := Evaluate(sites, rates, g)
	if err != nil {
		t.Fatal(err)
	}
	if len(summary.Results) != 2 {
		t.Fatalf("expected 2 results, got %d", len(summary.Results))
	}
	if !summary.Results[0].Correct || summary.Results[0].Phred.Best != 'G' || summary.Results[0].FER.Best != 'G' {
		t.Errorf("expected correct G call, got %+v", summary.Results[0])
	}
	if summary.Results[1].Correct || summary.Results[1].Ref != 'T' {
		t.Errorf("expected failed call against T, got %+v", summary.Results[1])
	}
	if len(summary.GoodX) != 1 || len(summary.FailX) != 1 || len(summary.GoodY) != 1 || len(summary.FailY) != 1 {
		t.Errorf("unexpected plot coordinates %+v", summary)
	}
	// TTC/30 and AAA/10 and both AGA/30 have no learned rate
	if summary.MissingKeys != 4 {
		t.Errorf("expected 4 missing keys, got %d", summary.MissingKeys)
	}

	if _, err = Evaluate([]Site{{Pos: 5}}, rates, g); err == nil {
		t.Error("expected error for position beyond the genome")
	}
}
