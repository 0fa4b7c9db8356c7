package ident

import (
	"fmt"
	"github.com/livarsky/concalib/significance"
	"github.com/livarsky/concalib/table"
	"io"
	"math"
	"strconv"
	"strings"
)

// Header is the first line of the report written by Write.
const Header = "#Sequence\tOccurrence\tForwardMatch\tBackwardMatch\tForwardMismatch\tBackwardMismatch\tStrandBiasScore\tFER\tRER\tERD"

// String formats the row as one tab-separated report line.
func (r Row) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d\t%d\t%d\t%s\t%s\t%s\t%s",
		r.Motif, r.Occurrence, r.SB[table.FM], r.SB[table.RM], r.SB[table.FMM], r.SB[table.RMM],
		formatScore(r.Score), formatFloat(r.FER), formatFloat(r.RER), formatFloat(r.ERD))
}

// formatScore writes MaxScore as the largest int64.
func formatScore(s float64) string {
	if s == significance.MaxScore {
		return strconv.FormatInt(math.MaxInt64, 10)
	}
	return formatFloat(s)
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write writes the header and one line per row to out.
func Write(out io.Writer, rows []Row) error {
	s := new(strings.Builder)
	s.WriteString(Header)
	s.WriteByte('\n')
	for i := range rows {
		s.WriteString(rows[i].String())
		s.WriteByte('\n')
	}
	_, err := io.WriteString(out, s.String())
	return err
}
