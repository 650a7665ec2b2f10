package report

import (
	"bytes"
	"fmt"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"image/color"
)

// depthPlot renders depth across one exon as a step line with a dashed
// horizontal line marking the reporting threshold, returning the PNG bytes.
func depthPlot(p exonProfile, threshold int) ([]byte, error) {
	pl := plot.New()
	pl.Title.Text = fmt.Sprintf("%s %s exon %d", p.Gene, p.Transcript, p.Exon)
	pl.X.Label.Text = fmt.Sprintf("%s position", p.Chrom)
	pl.Y.Label.Text = "depth"
	pl.Y.Min = 0

	var xys plotter.XYs
	var lo, hi int
	for _, r := range p.runs {
		lo, hi = r.CovStart, r.CovEnd
		if lo < p.ExonStart {
			lo = p.ExonStart
		}
		if hi > p.ExonEnd {
			hi = p.ExonEnd
		}
		xys = append(xys,
			plotter.XY{X: float64(lo), Y: float64(r.Depth)},
			plotter.XY{X: float64(hi), Y: float64(r.Depth)})
	}
	depth, err := plotter.NewLine(xys)
	if err != nil {
		return nil, err
	}
	depth.LineStyle.Width = vg.Points(1)

	cutoff, err := plotter.NewLine(plotter.XYs{
		{X: float64(p.ExonStart), Y: float64(threshold)},
		{X: float64(p.ExonEnd), Y: float64(threshold)},
	})
	if err != nil {
		return nil, err
	}
	cutoff.LineStyle.Color = color.RGBA{R: 205, G: 12, B: 24, A: 255}
	cutoff.LineStyle.Width = vg.Points(1)
	cutoff.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	pl.Add(depth, cutoff)

	buf := new(bytes.Buffer)
	wt, err := pl.WriterTo(14*vg.Centimeter, 8*vg.Centimeter, "png")
	if err != nil {
		return nil, err
	}
	if _, err = wt.WriteTo(buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
