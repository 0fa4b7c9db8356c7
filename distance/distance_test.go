package distance

import (
	"bytes"
	"errors"
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/qgram"
	"math"
	"strings"
	"testing"
)

var testRows = []motifstats.Row{
	motifstats.NewRow(qgram.Key{Motif: "AC", Qual: 20}, 1000, 990, 10),
	motifstats.NewRow(qgram.Key{Motif: "GT", Qual: 30}, 200, 199, 1),
	motifstats.NewRow(qgram.Key{Motif: "CC", Qual: 10}, 50, 40, 10),
}

func TestCompute(t *testing.T) {
	m, err := Compute(testRows, Options{Const: 0.5, Seed: 1})
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(m.AverageFER-20.0/1050.0) > 1e-12 {
		t.Errorf("unexpected average %v", m.AverageFER)
	}
	if m.Rows != 1 {
		t.Errorf("expected 1 row in the metrics, got %d", m.Rows)
	}
	if math.Abs(m.Real-math.Sqrt(9.9)) > 1e-9 {
		t.Errorf("expected real metric %v, got %v", math.Sqrt(9.9), m.Real)
	}
	// quality 20 promises exactly the observed error rate
	if math.Abs(m.Phred-m.Real) > 1e-9 {
		t.Errorf("expected phred metric %v, got %v", m.Real, m.Phred)
	}
	if math.Abs(m.ConstModel-math.Sqrt(250)) > 1e-9 {
		t.Errorf("expected const metric %v, got %v", math.Sqrt(250), m.ConstModel)
	}
	if math.Abs(m.LearnedPhred[20]-20) > 1e-9 || len(m.LearnedPhred) != 2 {
		t.Errorf("unexpected learned qualities %v", m.LearnedPhred)
	}

	again, _ := Compute(testRows, Options{Const: 0.5, Seed: 1})
	if again.Random != m.Random {
		t.Error("random metric should be reproducible for a fixed seed")
	}

	avg, _ := Compute(testRows, Options{Seed: 1})
	if avg.Const != avg.AverageFER {
		t.Errorf("expected constant model to use the average error rate, got %v", avg.Const)
	}
}

func TestComputeNoData(t *testing.T) {
	_, err := Compute(testRows[1:2], Options{})
	if !errors.Is(err, ErrNoData) {
		t.Errorf("expected ErrNoData, got %v", err)
	}
}

func TestWrite(t *testing.T) {
	m, err := Compute(testRows, Options{Seed: 1})
	if err != nil {
		t.Fatal(err)
	}
	var buf bytes.Buffer
	if err = Write(&buf, m); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(buf.String(), "average fer") || !strings.Contains(buf.String(), "quality 10\t") {
		t.Errorf("unexpected summary:\n%s", buf.String())
	}
}
