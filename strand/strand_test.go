package strand

import (
	"github.com/vertgenlab/gonomics/sam"
	"testing"
)

func TestIsReverse(t *testing.T) {
	var s sam.Sam
	if IsReverse(s) {
		t.Error("read without flags should be forward")
	}
	s.Flag = 16
	if !IsReverse(s) {
		t.Error("read with flag 16 should be reverse")
	}
	s.Flag = 83 // paired, proper pair, reverse, first in pair
	if !IsReverse(s) {
		t.Error("read with flag 83 should be reverse")
	}
}

func TestParse(t *testing.T) {
	if rev, err := Parse("r"); err != nil || !rev {
		t.Error("problem parsing r", rev, err)
	}
	if rev, err := Parse("f"); err != nil || rev {
		t.Error("problem parsing f", rev, err)
	}
	if _, err := Parse("+"); err == nil {
		t.Error("expected an error for +")
	}
}
