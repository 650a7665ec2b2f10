package stats

import (
	"github.com/ngsreports/coverageTools/annotate"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"golang.org/x/exp/slices"
	"math"
	"os"
	"testing"
)

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-6
}

func TestSingle(t *testing.T) {
	err := Single("testdata/annotated.tsv", "testdata/out", DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(fileio.Read("testdata/out_exon_stats.tsv"), fileio.Read("testdata/expected_exon_stats.tsv")) {
		t.Error("problem with exon statistics output")
	} else {
		err = os.Remove("testdata/out_exon_stats.tsv")
		exception.PanicOnErr(err)
	}
	if !slices.Equal(fileio.Read("testdata/out_gene_stats.tsv"), fileio.Read("testdata/expected_gene_stats.tsv")) {
		t.Error("problem with gene statistics output")
	} else {
		err = os.Remove("testdata/out_gene_stats.tsv")
		exception.PanicOnErr(err)
	}
}

func TestExons(t *testing.T) {
	rows, err := annotate.ReadExonCoverage("testdata/annotated.tsv")
	if err != nil {
		t.Fatal(err)
	}
	exons, err := Exons(rows, DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	if len(exons) != 3 {
		t.Fatalf("expected 3 exons, got %d", len(exons))
	}

	// fully covered exon with two depth runs
	e := exons[0]
	if e.Gene != "GENE1" || e.Exon != 1 {
		t.Fatalf("unexpected exon order: %s exon %d first", e.Gene, e.Exon)
	}
	if e.Min != 10 || e.Max != 20 || !approx(e.Mean, 15) {
		t.Errorf("problem with depth summary: min %d mean %f max %d", e.Min, e.Mean, e.Max)
	}
	if !approx(e.Pct[0], 100) || !approx(e.Pct[1], 50) || !approx(e.Pct[2], 0) {
		t.Errorf("problem with threshold percents: %v", e.Pct)
	}

	// half covered exon: uncovered bases count as depth zero
	e = exons[1]
	if e.Exon != 2 {
		t.Fatalf("unexpected exon order: exon %d second", e.Exon)
	}
	if e.Min != 0 {
		t.Error("uncovered bases should pull the minimum to zero")
	}
	if !approx(e.Mean, 15) {
		t.Errorf("uncovered bases should count as zero depth in the mean, got %f", e.Mean)
	}
	if !approx(e.Pct[0], 50) || !approx(e.Pct[2], 50) || !approx(e.Pct[3], 0) {
		t.Errorf("problem with threshold percents: %v", e.Pct)
	}
}

func TestExonsClipsRuns(t *testing.T) {
	rows := []annotate.ExonCoverage{
		{ExonRegion: annotate.ExonRegion{Chrom: "chr1", ChromStart: 100, ChromEnd: 200, Gene: "G", Transcript: "T", Exon: "1"}, CovStart: 50, CovEnd: 150, Depth: 30},
		{ExonRegion: annotate.ExonRegion{Chrom: "chr1", ChromStart: 100, ChromEnd: 200, Gene: "G", Transcript: "T", Exon: "1"}, CovStart: 150, CovEnd: 400, Depth: 10},
	}
	exons, err := Exons(rows, []int{20})
	if err != nil {
		t.Fatal(err)
	}
	if len(exons) != 1 {
		t.Fatalf("expected 1 exon, got %d", len(exons))
	}
	// 50 bases at 30x and 50 bases at 10x after clipping to [100, 200)
	if !approx(exons[0].Mean, 20) {
		t.Errorf("runs not clipped to the exon: mean %f", exons[0].Mean)
	}
	if !approx(exons[0].Pct[0], 50) {
		t.Errorf("runs not clipped to the exon: pct %v", exons[0].Pct)
	}
}

func TestExonsBadExonNumber(t *testing.T) {
	rows := []annotate.ExonCoverage{
		{ExonRegion: annotate.ExonRegion{Chrom: "chr1", ChromStart: 0, ChromEnd: 10, Gene: "G", Transcript: "T", Exon: "last"}, CovStart: 0, CovEnd: 10, Depth: 5},
	}
	if _, err := Exons(rows, DefaultThresholds); err == nil {
		t.Error("expected an error for a non-numeric exon number")
	}
}

func TestGenes(t *testing.T) {
	rows, err := annotate.ReadExonCoverage("testdata/annotated.tsv")
	if err != nil {
		t.Fatal(err)
	}
	exons, err := Exons(rows, DefaultThresholds)
	if err != nil {
		t.Fatal(err)
	}
	genes := Genes(exons, DefaultThresholds)
	if len(genes) != 2 {
		t.Fatalf("expected 2 genes, got %d", len(genes))
	}
	g := genes[0]
	if g.Gene != "GENE1" || g.Transcript != "TX1" {
		t.Fatalf("unexpected gene order: %s %s first", g.Gene, g.Transcript)
	}
	if g.Min != 0 || g.Max != 30 {
		t.Errorf("problem with gene depth summary: min %d max %d", g.Min, g.Max)
	}
	if !approx(g.Mean, 15) {
		t.Errorf("problem with length weighted gene mean: %f", g.Mean)
	}
	if !approx(g.Pct[0], 75) || !approx(g.Pct[2], 25) {
		t.Errorf("problem with length weighted gene percents: %v", g.Pct)
	}
}

func TestParseThresholds(t *testing.T) {
	got, err := ParseThresholds("30,10, 20")
	if err != nil {
		t.Fatal(err)
	}
	want := []int{10, 20, 30}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
	if _, err = ParseThresholds("10,deep"); err == nil {
		t.Error("expected an error for a non-numeric threshold")
	}
	if _, err = ParseThresholds("10,-2"); err == nil {
		t.Error("expected an error for a negative threshold")
	}
}

func TestFormatThresholds(t *testing.T) {
	s := FormatThresholds(DefaultThresholds)
	if s != "10,20,30,50,100" {
		t.Errorf("problem formatting default thresholds: %s", s)
	}
	got, err := ParseThresholds(s)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, DefaultThresholds) {
		t.Errorf("default thresholds do not round trip: %v", got)
	}
}

func TestReadExonStats(t *testing.T) {
	exons, thresholds, err := ReadExonStats("testdata/expected_exon_stats.tsv")
	if err != nil {
		t.Fatal(err)
	}
	if len(thresholds) != 5 || thresholds[0] != 10 || thresholds[4] != 100 {
		t.Fatalf("problem recovering thresholds from the header: %v", thresholds)
	}
	if len(exons) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(exons))
	}
	e := exons[1]
	if e.Gene != "GENE1" || e.Exon != 2 || e.ExonStart != 300 || e.ExonEnd != 400 {
		t.Errorf("problem reading exon row: %+v", e)
	}
	if e.Min != 0 || !approx(e.Mean, 15) || e.Max != 30 {
		t.Errorf("problem reading depth summary: %+v", e)
	}
	if !approx(e.Pct[2], 50) {
		t.Errorf("problem reading threshold percents: %v", e.Pct)
	}
}
