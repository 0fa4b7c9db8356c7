package strand

import (
	"fmt"
	"github.com/vertgenlab/gonomics/sam"
)

const (
	Forward byte = 'f'
	Reverse byte = 'r'
)

func IsReverse(s sam.Sam) bool {
	return !sam.IsPosStrand(s)
}

func Parse(field string) (reverse bool, err error) {
	if len(field) != 1 || (field[0] != Forward && field[0] != Reverse) {
		return false, fmt.Errorf("malformed strand %q, expected %c or %c", field, Forward, Reverse)
	}
	return field[0] == Reverse, nil
}
