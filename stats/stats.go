// Package stats aggregates annotated per-base coverage into per-exon and
// per-gene depth statistics for a single sample.
package stats

import (
	"fmt"
	"github.com/ngsreports/coverageTools/annotate"
	"golang.org/x/exp/slices"
	"gonum.org/v1/gonum/stat"
	"sort"
	"strconv"
	"strings"
)

// DefaultThresholds are the depth cutoffs reported when none are given.
var DefaultThresholds = []int{10, 20, 30, 50, 100}

// ExonStats summarizes the depth observed across one exon region. Pct holds
// the percent of exon bases at or above each threshold in use, in threshold
// order. Bases without a coverage run count as depth zero.
type ExonStats struct {
	Gene       string
	Transcript string
	Chrom      string
	Exon       int
	ExonStart  int
	ExonEnd    int
	Min        int
	Mean       float64
	Max        int
	Pct        []float64
}

// GeneStats summarizes depth across all exons of one gene/transcript pair.
// Mean and Pct are averages over the exons weighted by exon length.
type GeneStats struct {
	Gene       string
	Transcript string
	Min        int
	Mean       float64
	Max        int
	Pct        []float64
}

type exonKey struct {
	gene       string
	transcript string
	chrom      string
	exon       int
	start      int
	end        int
}

type depthRun struct {
	start int
	end   int
	depth int
}

// Single computes exon and gene level statistics from an annotated coverage
// file and writes outPrefix + "_exon_stats.tsv" and
// outPrefix + "_gene_stats.tsv".
func Single(coverageFile, outPrefix string, thresholds []int) error {
	rows, err := annotate.ReadExonCoverage(coverageFile)
	if err != nil {
		return err
	}
	exons, err := Exons(rows, thresholds)
	if err != nil {
		return err
	}
	if err = WriteExonStats(outPrefix+"_exon_stats.tsv", exons, thresholds); err != nil {
		return err
	}
	return WriteGeneStats(outPrefix+"_gene_stats.tsv", Genes(exons, thresholds), thresholds)
}

// Exons aggregates annotated coverage rows into one statistics row per exon.
// Coverage runs are clipped to the exon region before they contribute.
func Exons(rows []annotate.ExonCoverage, thresholds []int) ([]ExonStats, error) {
	runs := make(map[exonKey][]depthRun)
	var k exonKey
	var exon int
	var err error
	for i := range rows {
		exon, err = strconv.Atoi(rows[i].Exon)
		if err != nil {
			return nil, fmt.Errorf("non-numeric exon %q for %s %s", rows[i].Exon, rows[i].Gene, rows[i].Transcript)
		}
		k = exonKey{
			gene:       rows[i].Gene,
			transcript: rows[i].Transcript,
			chrom:      rows[i].Chrom,
			exon:       exon,
			start:      rows[i].ChromStart,
			end:        rows[i].ChromEnd,
		}
		runs[k] = append(runs[k], depthRun{start: rows[i].CovStart, end: rows[i].CovEnd, depth: rows[i].Depth})
	}

	ans := make([]ExonStats, 0, len(runs))
	for k, r := range runs {
		ans = append(ans, exonStats(k, r, thresholds))
	}
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].Gene != ans[j].Gene {
			return ans[i].Gene < ans[j].Gene
		}
		if ans[i].Transcript != ans[j].Transcript {
			return ans[i].Transcript < ans[j].Transcript
		}
		if ans[i].Exon != ans[j].Exon {
			return ans[i].Exon < ans[j].Exon
		}
		return ans[i].ExonStart < ans[j].ExonStart
	})
	return ans, nil
}

func exonStats(k exonKey, runs []depthRun, thresholds []int) ExonStats {
	s := ExonStats{
		Gene:       k.gene,
		Transcript: k.transcript,
		Chrom:      k.chrom,
		Exon:       k.exon,
		ExonStart:  k.start,
		ExonEnd:    k.end,
		Pct:        make([]float64, len(thresholds)),
	}
	length := k.end - k.start
	if length <= 0 {
		return s
	}

	var vals, weights []float64
	var covered, span int
	first := true
	for _, r := range runs {
		span = overlapLen(r.start, r.end, k.start, k.end)
		if span <= 0 {
			continue
		}
		covered += span
		vals = append(vals, float64(r.depth))
		weights = append(weights, float64(span))
		if first || r.depth < s.Min {
			s.Min = r.depth
		}
		if r.depth > s.Max {
			s.Max = r.depth
		}
		first = false
		for t := range thresholds {
			if r.depth >= thresholds[t] {
				s.Pct[t] += float64(span)
			}
		}
	}
	if covered < length {
		s.Min = 0
		vals = append(vals, 0)
		weights = append(weights, float64(length-covered))
	}
	if len(vals) > 0 {
		s.Mean = stat.Mean(vals, weights)
	}
	for t := range thresholds {
		s.Pct[t] = 100 * s.Pct[t] / float64(length)
	}
	return s
}

// Genes aggregates exon statistics into one row per gene/transcript pair,
// weighting each exon's contribution by its length.
func Genes(exons []ExonStats, thresholds []int) []GeneStats {
	type geneKey struct {
		gene       string
		transcript string
	}
	grouped := make(map[geneKey][]ExonStats)
	for i := range exons {
		k := geneKey{gene: exons[i].Gene, transcript: exons[i].Transcript}
		grouped[k] = append(grouped[k], exons[i])
	}

	ans := make([]GeneStats, 0, len(grouped))
	var lengths, means, pct []float64
	for k, ex := range grouped {
		g := GeneStats{
			Gene:       k.gene,
			Transcript: k.transcript,
			Min:        ex[0].Min,
			Max:        ex[0].Max,
			Pct:        make([]float64, len(thresholds)),
		}
		lengths = lengths[:0]
		means = means[:0]
		for i := range ex {
			lengths = append(lengths, float64(ex[i].ExonEnd-ex[i].ExonStart))
			means = append(means, ex[i].Mean)
			if ex[i].Min < g.Min {
				g.Min = ex[i].Min
			}
			if ex[i].Max > g.Max {
				g.Max = ex[i].Max
			}
		}
		g.Mean = stat.Mean(means, lengths)
		for t := range thresholds {
			pct = pct[:0]
			for i := range ex {
				pct = append(pct, ex[i].Pct[t])
			}
			g.Pct[t] = stat.Mean(pct, lengths)
		}
		ans = append(ans, g)
	}
	sort.Slice(ans, func(i, j int) bool {
		if ans[i].Gene != ans[j].Gene {
			return ans[i].Gene < ans[j].Gene
		}
		return ans[i].Transcript < ans[j].Transcript
	})
	return ans
}

// ParseThresholds parses a comma separated list of depth cutoffs, e.g.
// "10,20,30,50,100", returning them sorted ascending.
func ParseThresholds(s string) ([]int, error) {
	var ans []int
	for _, w := range strings.Split(s, ",") {
		t, err := strconv.Atoi(strings.TrimSpace(w))
		if err != nil || t < 0 {
			return nil, fmt.Errorf("bad depth threshold %q", w)
		}
		ans = append(ans, t)
	}
	slices.Sort(ans)
	return ans, nil
}

// FormatThresholds renders depth cutoffs in the comma separated form
// accepted by ParseThresholds.
func FormatThresholds(thresholds []int) string {
	words := make([]string, len(thresholds))
	for i := range thresholds {
		words[i] = strconv.Itoa(thresholds[i])
	}
	return strings.Join(words, ",")
}

func overlapLen(aStart, aEnd, bStart, bEnd int) int {
	if bStart > aStart {
		aStart = bStart
	}
	if bEnd < aEnd {
		aEnd = bEnd
	}
	return aEnd - aStart
}
