package significance

import (
	"math"
	"testing"
)

func approxEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func TestFisherExact(t *testing.T) {
	tests := []struct {
		a, b, c, d int
		expected   float64
	}{
		{3, 1, 1, 3, 34.0 / 70.0},
		{1, 9, 11, 3, 0.002759},
		{5, 5, 5, 5, 1},
		{0, 0, 3, 4, 1},
		{3, 0, 4, 0, 1},
	}

	for _, test := range tests {
		actual := FisherExact(test.a, test.b, test.c, test.d)
		if !approxEqual(actual, test.expected, 1e-5) {
			t.Errorf("FisherExact(%d, %d, %d, %d): expected %v, got %v", test.a, test.b, test.c, test.d, test.expected, actual)
		}
	}
}

func TestChiSquaredYates(t *testing.T) {
	if p := ChiSquaredYates(10, 20, 30, 40); !approxEqual(p, 0.504, 1e-3) {
		t.Errorf("expected p close to 0.504, got %v", p)
	}
	if p := ChiSquaredYates(0, 10, 0, 20); p != 1 {
		t.Errorf("degenerate table should yield 1, got %v", p)
	}
	// identical rows
	if p := ChiSquaredYates(100, 100, 100, 100); !approxEqual(p, 1, 1e-12) {
		t.Errorf("expected 1, got %v", p)
	}
}

func TestPValueSelection(t *testing.T) {
	if PValue(6000, 6000, 10, 10) != ChiSquaredYates(6000, 10, 6000, 10) {
		t.Error("large counts should use the chi-squared test")
	}
	if PValue(3, 1, 1, 3) != FisherExact(3, 1, 1, 3) {
		t.Error("small counts should use Fisher's exact test")
	}
	if p := PValue(20000, 20000, 3000, 0); Score(p) != MaxScore {
		t.Errorf("expected underflowing p-value, got %v", p)
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		p, expected float64
	}{
		{1e-301, MaxScore},
		{0, MaxScore},
		{1e-300, 300},
		{0.01, 2},
		{1, 0},
		{math.NaN(), 0},
	}
	for _, test := range tests {
		actual := Score(test.p)
		if !approxEqual(actual, test.expected, 1e-9) || math.IsNaN(actual) || math.IsInf(actual, 0) {
			t.Errorf("Score(%v): expected %v, got %v", test.p, test.expected, actual)
		}
	}
	if math.Signbit(Score(1)) {
		t.Error("Score(1) should not be negative zero")
	}
}

func TestBonferroniThreshold(t *testing.T) {
	// 256 motifs of length 4 without Ns
	if !approxEqual(BonferroniThreshold(4, 0, 0.05), math.Log10(256)-math.Log10(0.05), 1e-12) {
		t.Errorf("unexpected threshold %v", BonferroniThreshold(4, 0, 0.05))
	}
	if BonferroniThreshold(4, 1, 0.1) >= BonferroniThreshold(4, 1, 0.05) {
		t.Error("threshold should decrease as alpha increases")
	}
	if BonferroniThreshold(4, 0, 0.05) >= BonferroniThreshold(4, 1, 0.05) {
		t.Error("threshold should decrease as the motif space shrinks")
	}
}

func TestBinomialTails(t *testing.T) {
	tests := []struct {
		name     string
		actual   float64
		expected float64
	}{
		{"lower 0", LogLowerTail(0, 2, 0.5), math.Log(0.25)},
		{"lower 1", LogLowerTail(1, 2, 0.5), math.Log(0.75)},
		{"lower 2", LogLowerTail(2, 2, 0.5), 0},
		{"upper 2", LogUpperTail(2, 2, 0.5), math.Log(0.25)},
		{"upper 1", LogUpperTail(1, 2, 0.5), math.Log(0.75)},
		{"upper 0", LogUpperTail(0, 2, 0.5), math.Log(0.75)},
		{"lower p=0", LogLowerTail(0, 5, 0), 0},
		{"upper p=1", LogUpperTail(3, 5, 1), 0},
	}
	for _, test := range tests {
		if !approxEqual(test.actual, test.expected, 1e-9) {
			t.Errorf("%s: expected %v, got %v", test.name, test.expected, test.actual)
		}
	}

	if !math.IsInf(LogUpperTail(0, 5, 0), -1) {
		t.Error("no errors can be observed when p=0")
	}
	if !math.IsInf(LogLowerTail(2, 5, 1), -1) {
		t.Error("every trial errs when p=1")
	}

	// large n: 10 errors in 1e6 trials at p=1e-3 sits far in the lower tail
	if l := LogLowerTail(10, 1000000, 1e-3); l > -800 || math.IsInf(l, 0) {
		t.Errorf("expected a very small finite lower tail, got %v", l)
	}
	if u := LogUpperTail(10, 1000000, 1e-3); !approxEqual(u, 0, 1e-6) {
		t.Errorf("expected an upper tail of 1, got %v", u)
	}
}
