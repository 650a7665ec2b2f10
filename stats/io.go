package stats

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"strconv"
	"strings"
)

// WriteExonStats writes exon statistics as a TSV with a header row. Each
// threshold becomes one trailing column named after the cutoff, e.g. "20x".
func WriteExonStats(filename string, stats []ExonStats, thresholds []int) error {
	out := fileio.EasyCreate(filename)
	fmt.Fprintf(out, "gene\ttx\tchrom\texon\texon_start\texon_end\tmin\tmean\tmax%s\n", thresholdHeader(thresholds))
	for i := range stats {
		fmt.Fprintf(out, "%s\t%s\t%s\t%d\t%d\t%d\t%d\t%.2f\t%d%s\n",
			stats[i].Gene, stats[i].Transcript, stats[i].Chrom, stats[i].Exon,
			stats[i].ExonStart, stats[i].ExonEnd, stats[i].Min, stats[i].Mean,
			stats[i].Max, pctColumns(stats[i].Pct))
	}
	return out.Close()
}

// WriteGeneStats writes gene statistics as a TSV with a header row.
func WriteGeneStats(filename string, stats []GeneStats, thresholds []int) error {
	out := fileio.EasyCreate(filename)
	fmt.Fprintf(out, "gene\ttx\tmin\tmean\tmax%s\n", thresholdHeader(thresholds))
	for i := range stats {
		fmt.Fprintf(out, "%s\t%s\t%d\t%.2f\t%d%s\n",
			stats[i].Gene, stats[i].Transcript, stats[i].Min, stats[i].Mean,
			stats[i].Max, pctColumns(stats[i].Pct))
	}
	return out.Close()
}

// ReadExonStats reads a TSV written by WriteExonStats, returning the rows
// and the thresholds recovered from the header.
func ReadExonStats(filename string) ([]ExonStats, []int, error) {
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	line, done := fileio.EasyNextRealLine(in)
	if done {
		return nil, nil, fmt.Errorf("%s: missing header", filename)
	}
	cols := strings.Split(line, "\t")
	if len(cols) < 9 || cols[0] != "gene" {
		return nil, nil, fmt.Errorf("%s: unrecognized header: %s", filename, line)
	}
	var thresholds []int
	for _, c := range cols[9:] {
		t, err := strconv.Atoi(strings.TrimSuffix(c, "x"))
		if err != nil {
			return nil, nil, fmt.Errorf("%s: bad threshold column %q", filename, c)
		}
		thresholds = append(thresholds, t)
	}

	var ans []ExonStats
	var curr ExonStats
	var words []string
	var err error
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) != len(cols) {
			return nil, nil, fmt.Errorf("%s: wrong column count on line: %s", filename, line)
		}
		curr = ExonStats{Gene: words[0], Transcript: words[1], Chrom: words[2], Pct: make([]float64, len(thresholds))}
		if curr.Exon, err = strconv.Atoi(words[3]); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric exon on line: %s", filename, line)
		}
		if curr.ExonStart, err = strconv.Atoi(words[4]); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric exon_start on line: %s", filename, line)
		}
		if curr.ExonEnd, err = strconv.Atoi(words[5]); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric exon_end on line: %s", filename, line)
		}
		if curr.Min, err = strconv.Atoi(words[6]); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric min on line: %s", filename, line)
		}
		if curr.Mean, err = strconv.ParseFloat(words[7], 64); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric mean on line: %s", filename, line)
		}
		if curr.Max, err = strconv.Atoi(words[8]); err != nil {
			return nil, nil, fmt.Errorf("%s: non-numeric max on line: %s", filename, line)
		}
		for t := range thresholds {
			if curr.Pct[t], err = strconv.ParseFloat(words[9+t], 64); err != nil {
				return nil, nil, fmt.Errorf("%s: non-numeric percent on line: %s", filename, line)
			}
		}
		ans = append(ans, curr)
	}
	return ans, thresholds, nil
}

func thresholdHeader(thresholds []int) string {
	s := new(strings.Builder)
	for _, t := range thresholds {
		s.WriteString(fmt.Sprintf("\t%dx", t))
	}
	return s.String()
}

func pctColumns(pct []float64) string {
	s := new(strings.Builder)
	for _, p := range pct {
		s.WriteString(fmt.Sprintf("\t%.2f", p))
	}
	return s.String()
}

// cleanup closes c and panics on errors for convenient deferral.
func cleanup(c io.Closer) {
	err := c.Close()
	exception.PanicOnErr(err)
}
