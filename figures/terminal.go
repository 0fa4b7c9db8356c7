package figures

import (
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/livarsky/concalib/ident"
)

// ERDGraph draws the error rate differences of rows, in row order, as a terminal line plot.
// It returns an empty string when there is nothing to draw.
func ERDGraph(rows []ident.Row) string {
	if len(rows) == 0 {
		return ""
	}
	erd := make([]float64, len(rows))
	for i := range rows {
		erd[i] = rows[i].ERD
	}
	return asciigraph.Plot(erd,
		asciigraph.Height(10),
		asciigraph.Precision(3),
		asciigraph.Caption(fmt.Sprintf("ERD of %d retained motifs", len(rows))))
}
