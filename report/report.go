// Package report renders a single sample coverage report highlighting exons
// with bases below a depth threshold.
package report

import (
	"encoding/base64"
	"fmt"
	"github.com/guptarohit/asciigraph"
	"github.com/ngsreports/coverageTools/annotate"
	"github.com/ngsreports/coverageTools/stats"
	"github.com/vertgenlab/gonomics/fileio"
	"html/template"
	"sort"
	"strconv"
)

// exonProfile pairs one low coverage exon with its per-base depth runs.
type exonProfile struct {
	stats.ExonStats
	runs []annotate.ExonCoverage
}

// Single renders an HTML report from an exon statistics file and the
// annotated coverage file it was computed from. Exons with less than 100%
// of bases at the given threshold are tabled and plotted. When ascii is set
// each selected exon's depth profile is also printed to stdout.
func Single(statsFile, coverageFile, outFile string, threshold int, ascii bool) error {
	exons, thresholds, err := stats.ReadExonStats(statsFile)
	if err != nil {
		return err
	}
	t := thresholdIndex(thresholds, threshold)
	if t < 0 {
		return fmt.Errorf("%s has no %dx column", statsFile, threshold)
	}

	rows, err := annotate.ReadExonCoverage(coverageFile)
	if err != nil {
		return err
	}
	profiles := collectProfiles(LowCoverage(exons, t), rows)

	if ascii {
		for i := range profiles {
			fmt.Print(asciiProfile(profiles[i]))
		}
	}
	return writeHTML(outFile, profiles, thresholds, threshold, len(exons))
}

// LowCoverage returns the exons whose percent of bases at threshold column t
// is below 100.
func LowCoverage(exons []stats.ExonStats, t int) []stats.ExonStats {
	var ans []stats.ExonStats
	for i := range exons {
		if exons[i].Pct[t] < 100 {
			ans = append(ans, exons[i])
		}
	}
	return ans
}

func thresholdIndex(thresholds []int, threshold int) int {
	for i := range thresholds {
		if thresholds[i] == threshold {
			return i
		}
	}
	return -1
}

type profileKey struct {
	gene       string
	transcript string
	exon       int
}

// collectProfiles attaches each coverage row to the selected exon it belongs
// to. Selected exons without any coverage rows keep an empty profile and are
// still reported, just without a plot.
func collectProfiles(low []stats.ExonStats, rows []annotate.ExonCoverage) []exonProfile {
	ans := make([]exonProfile, len(low))
	idx := make(map[profileKey]int, len(low))
	for i := range low {
		ans[i].ExonStats = low[i]
		idx[profileKey{gene: low[i].Gene, transcript: low[i].Transcript, exon: low[i].Exon}] = i
	}
	var exon, i int
	var ok bool
	var err error
	for _, r := range rows {
		if exon, err = strconv.Atoi(r.Exon); err != nil {
			continue // cannot belong to any selected exon
		}
		if i, ok = idx[profileKey{gene: r.Gene, transcript: r.Transcript, exon: exon}]; ok {
			ans[i].runs = append(ans[i].runs, r)
		}
	}
	for i = range ans {
		runs := ans[i].runs
		sort.Slice(runs, func(a, b int) bool { return runs[a].CovStart < runs[b].CovStart })
	}
	return ans
}

// depthSeries expands an exon's coverage runs to one value per base, clipped
// to the exon region. Bases without a run stay at zero.
func depthSeries(p exonProfile) []float64 {
	length := p.ExonEnd - p.ExonStart
	if length <= 0 {
		return nil
	}
	d := make([]float64, length)
	for _, r := range p.runs {
		lo, hi := r.CovStart, r.CovEnd
		if lo < p.ExonStart {
			lo = p.ExonStart
		}
		if hi > p.ExonEnd {
			hi = p.ExonEnd
		}
		for i := lo; i < hi; i++ {
			d[i-p.ExonStart] = float64(r.Depth)
		}
	}
	return d
}

// downsample reduces a series to at most width points by averaging buckets
// so terminal plots stay readable for long exons.
func downsample(d []float64, width int) []float64 {
	if len(d) <= width {
		return d
	}
	ans := make([]float64, width)
	var lo, hi, j int
	var sum float64
	for i := range ans {
		lo = i * len(d) / width
		hi = (i + 1) * len(d) / width
		sum = 0
		for j = lo; j < hi; j++ {
			sum += d[j]
		}
		ans[i] = sum / float64(hi-lo)
	}
	return ans
}

func asciiProfile(p exonProfile) string {
	d := downsample(depthSeries(p), 80)
	if len(d) == 0 {
		return ""
	}
	return asciigraph.Plot(d,
		asciigraph.Height(8),
		asciigraph.Precision(0),
		asciigraph.Caption(fmt.Sprintf("%s %s exon %d", p.Gene, p.Transcript, p.Exon))) + "\n\n"
}

type reportData struct {
	Threshold int
	Total     int
	Columns   []string
	Rows      []reportRow
	Plots     []reportPlot
}

type reportRow struct {
	Gene       string
	Transcript string
	Chrom      string
	Exon       int
	Start      int
	End        int
	Min        int
	Mean       string
	Max        int
	Pct        []string
}

type reportPlot struct {
	Title string
	Src   template.URL
}

func writeHTML(outFile string, profiles []exonProfile, thresholds []int, threshold, total int) error {
	data := reportData{Threshold: threshold, Total: total}
	for _, t := range thresholds {
		data.Columns = append(data.Columns, fmt.Sprintf("%dx", t))
	}
	for i := range profiles {
		row := reportRow{
			Gene:       profiles[i].Gene,
			Transcript: profiles[i].Transcript,
			Chrom:      profiles[i].Chrom,
			Exon:       profiles[i].Exon,
			Start:      profiles[i].ExonStart,
			End:        profiles[i].ExonEnd,
			Min:        profiles[i].Min,
			Mean:       fmt.Sprintf("%.2f", profiles[i].Mean),
			Max:        profiles[i].Max,
		}
		for _, p := range profiles[i].Pct {
			row.Pct = append(row.Pct, fmt.Sprintf("%.2f", p))
		}
		data.Rows = append(data.Rows, row)

		if len(profiles[i].runs) == 0 {
			continue
		}
		png, err := depthPlot(profiles[i], threshold)
		if err != nil {
			return err
		}
		data.Plots = append(data.Plots, reportPlot{
			Title: fmt.Sprintf("%s %s exon %d", profiles[i].Gene, profiles[i].Transcript, profiles[i].Exon),
			Src:   template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png)),
		})
	}

	out := fileio.EasyCreate(outFile)
	if err := reportTemplate.Execute(out, data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

var reportTemplate = template.Must(template.New("report").Parse(reportHTML))

const reportHTML = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>Single sample coverage report</title>
<style>
body { font-family: sans-serif; margin: 20px 60px; }
table { border-collapse: collapse; margin-bottom: 30px; }
th, td { border: 1px solid #bbb; padding: 4px 10px; text-align: right; }
th { background: #eee; }
th.name, td.name { text-align: left; }
</style>
</head>
<body>
<h1>Single sample coverage report</h1>
<p>{{len .Rows}} of {{.Total}} exons have bases below {{.Threshold}}x.</p>
{{if .Rows}}<h2>Exons with low coverage</h2>
<table>
<tr><th class="name">Gene</th><th class="name">Transcript</th><th>Chrom</th><th>Exon</th><th>Start</th><th>End</th><th>Min</th><th>Mean</th><th>Max</th>{{range .Columns}}<th>{{.}}</th>{{end}}</tr>
{{range .Rows}}<tr><td class="name">{{.Gene}}</td><td class="name">{{.Transcript}}</td><td>{{.Chrom}}</td><td>{{.Exon}}</td><td>{{.Start}}</td><td>{{.End}}</td><td>{{.Min}}</td><td>{{.Mean}}</td><td>{{.Max}}</td>{{range .Pct}}<td>{{.}}</td>{{end}}</tr>
{{end}}</table>
<h2>Depth plots</h2>
{{range .Plots}}<h3>{{.Title}}</h3>
<img src="{{.Src}}">
{{end}}{{else}}<p>Every exon reached {{.Threshold}}x across all bases.</p>
{{end}}</body>
</html>
`
