// Package figures renders the diagnostic plots: scatter plots through gonum/plot, saved in the
// format implied by the file extension (png, svg, pdf, ...), and small terminal plots through
// asciigraph.
package figures

import (
	"github.com/livarsky/concalib/consensus"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"image/color"
)

var (
	black = color.Black
	blue  = color.RGBA{B: 255, A: 255}
	green = color.RGBA{G: 160, A: 255}
)

const size = 15 * vg.Centimeter

func XYs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	ans := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		ans[i].X = xs[i]
		ans[i].Y = ys[i]
	}
	return ans
}

type series struct {
	name  string
	pts   plotter.XYs
	color color.Color
}

// scatter draws every non-empty series onto a new plot.
func scatter(title, xLabel, yLabel string, s ...series) (*plot.Plot, error) {
	pl := plot.New()
	pl.Title.Text = title
	pl.X.Label.Text = xLabel
	pl.Y.Label.Text = yLabel
	pl.Add(plotter.NewGrid())
	pl.Legend.Top = true
	pl.Legend.Left = true

	for i := range s {
		if len(s[i].pts) == 0 {
			continue
		}
		sc, err := plotter.NewScatter(s[i].pts)
		if err != nil {
			return nil, err
		}
		sc.GlyphStyle.Color = s[i].color
		sc.GlyphStyle.Radius = vg.Points(1.5)
		sc.GlyphStyle.Shape = draw.CircleGlyph{}
		pl.Add(sc)
		pl.Legend.Add(s[i].name, sc)
	}
	return pl, nil
}

// Consensus plots the log-ratio of the quality model against that of the learned model for
// every called site, good calls in black and failed calls in blue.
func Consensus(s consensus.Summary, file string) error {
	pl, err := scatter("likelihood consensus", "quality log10 ratio", "learned error rate log10 ratio",
		series{"good", XYs(s.GoodX, s.GoodY), black},
		series{"fail", XYs(s.FailX, s.FailY), blue},
	)
	if err != nil {
		return err
	}
	return pl.Save(size, size, file)
}
