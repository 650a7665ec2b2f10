package annotate

import (
	"fmt"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"strconv"
	"strings"
)

// GeneExon is one record of a gene/exon reference file: the genomic span of
// an exon together with the gene, transcript, and exon number it belongs to.
type GeneExon struct {
	Chrom      string
	ChromStart int
	ChromEnd   int
	Gene       string
	Transcript string
	Exon       string // exon number, kept verbatim
}

func (g GeneExon) GetChrom() string   { return g.Chrom }
func (g GeneExon) GetChromStart() int { return g.ChromStart }
func (g GeneExon) GetChromEnd() int   { return g.ChromEnd }

// CoverageSite is one run of constant sequencing depth from a per-base
// coverage file, such as the per-base BED output of depth callers.
type CoverageSite struct {
	Chrom      string
	ChromStart int
	ChromEnd   int
	Depth      int
}

func (c CoverageSite) GetChrom() string   { return c.Chrom }
func (c CoverageSite) GetChromStart() int { return c.ChromStart }
func (c CoverageSite) GetChromEnd() int   { return c.ChromEnd }

// ExonRegion is a panel region that has been annotated with the gene,
// transcript, and exon it covers. ChromStart and ChromEnd are the coordinates
// of the original panel region, not of the reference exon.
type ExonRegion struct {
	Chrom      string
	ChromStart int
	ChromEnd   int
	Gene       string
	Transcript string
	Exon       string
}

func (e ExonRegion) GetChrom() string   { return e.Chrom }
func (e ExonRegion) GetChromStart() int { return e.ChromStart }
func (e ExonRegion) GetChromEnd() int   { return e.ChromEnd }

// String formats e as a tab separated line in file column order.
func (e ExonRegion) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%s\t%s\t%s", e.Chrom, e.ChromStart, e.ChromEnd, e.Gene, e.Transcript, e.Exon)
}

// ExonCoverage is one fully annotated row: an exon region paired with one
// overlapping run of constant depth.
type ExonCoverage struct {
	ExonRegion
	CovStart int
	CovEnd   int
	Depth    int
}

// String formats e as a tab separated line in file column order.
func (e ExonCoverage) String() string {
	return fmt.Sprintf("%s\t%d\t%d\t%d", e.ExonRegion.String(), e.CovStart, e.CovEnd, e.Depth)
}

// cleanup closes c and panics on errors for convenient deferral.
func cleanup(c io.Closer) {
	err := c.Close()
	exception.PanicOnErr(err)
}

func atoi(s, field, file, line string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: non-numeric %s on line: %s", file, field, line)
	}
	return n, nil
}

// ReadRegions reads a BED file of panel regions. Only the first four columns
// are kept. The fourth column holds the transcript name that is compared
// against the gene/exon reference during annotation, so it is stored in Name
// and no score column is expected. Columns past the fourth are ignored.
func ReadRegions(filename string) ([]bed.Bed, error) {
	var ans []bed.Bed
	var curr bed.Bed
	var line string
	var words []string
	var done bool
	var err error
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) < 4 {
			return nil, fmt.Errorf("%s: expected at least 4 columns on line: %s", filename, line)
		}
		curr = bed.Bed{Chrom: words[0], Name: words[3], FieldsInitialized: 4}
		if curr.ChromStart, err = atoi(words[1], "start", filename, line); err != nil {
			return nil, err
		}
		if curr.ChromEnd, err = atoi(words[2], "end", filename, line); err != nil {
			return nil, err
		}
		ans = append(ans, curr)
	}
	return ans, nil
}

// ReadGeneExons reads a gene/exon reference file with columns chrom, start,
// end, gene, transcript, exon. Columns past the sixth are ignored.
func ReadGeneExons(filename string) ([]GeneExon, error) {
	var ans []GeneExon
	var curr GeneExon
	var line string
	var words []string
	var done bool
	var err error
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) < 6 {
			return nil, fmt.Errorf("%s: expected at least 6 columns on line: %s", filename, line)
		}
		curr = GeneExon{Chrom: words[0], Gene: words[3], Transcript: words[4], Exon: words[5]}
		if curr.ChromStart, err = atoi(words[1], "start", filename, line); err != nil {
			return nil, err
		}
		if curr.ChromEnd, err = atoi(words[2], "end", filename, line); err != nil {
			return nil, err
		}
		ans = append(ans, curr)
	}
	return ans, nil
}

// ReadCoverageSites reads a per-base coverage file with columns chrom, start,
// end, depth. Columns past the fourth are ignored.
func ReadCoverageSites(filename string) ([]CoverageSite, error) {
	var ans []CoverageSite
	var curr CoverageSite
	var line string
	var words []string
	var done bool
	var err error
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) < 4 {
			return nil, fmt.Errorf("%s: expected at least 4 columns on line: %s", filename, line)
		}
		curr = CoverageSite{Chrom: words[0]}
		if curr.ChromStart, err = atoi(words[1], "start", filename, line); err != nil {
			return nil, err
		}
		if curr.ChromEnd, err = atoi(words[2], "end", filename, line); err != nil {
			return nil, err
		}
		if curr.Depth, err = atoi(words[3], "depth", filename, line); err != nil {
			return nil, err
		}
		ans = append(ans, curr)
	}
	return ans, nil
}

// ReadExonRegions reads a file written by the gene/exon annotation stage.
func ReadExonRegions(filename string) ([]ExonRegion, error) {
	var ans []ExonRegion
	var curr ExonRegion
	var line string
	var words []string
	var done bool
	var err error
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) < 6 {
			return nil, fmt.Errorf("%s: expected at least 6 columns on line: %s", filename, line)
		}
		curr = ExonRegion{Chrom: words[0], Gene: words[3], Transcript: words[4], Exon: words[5]}
		if curr.ChromStart, err = atoi(words[1], "start", filename, line); err != nil {
			return nil, err
		}
		if curr.ChromEnd, err = atoi(words[2], "end", filename, line); err != nil {
			return nil, err
		}
		ans = append(ans, curr)
	}
	return ans, nil
}

func writeExonRegions(filename string, rows []ExonRegion) error {
	out := fileio.EasyCreate(filename)
	for i := range rows {
		fmt.Fprintln(out, rows[i].String())
	}
	return out.Close()
}

func writeExonCoverage(filename string, rows []ExonCoverage) error {
	out := fileio.EasyCreate(filename)
	for i := range rows {
		fmt.Fprintln(out, rows[i].String())
	}
	return out.Close()
}

// ReadExonCoverage reads a fully annotated coverage file written by the
// coverage annotation stage.
func ReadExonCoverage(filename string) ([]ExonCoverage, error) {
	var ans []ExonCoverage
	var curr ExonCoverage
	var line string
	var words []string
	var done bool
	var err error
	in := fileio.EasyOpen(filename)
	defer cleanup(in)
	for line, done = fileio.EasyNextRealLine(in); !done; line, done = fileio.EasyNextRealLine(in) {
		words = strings.Split(line, "\t")
		if len(words) < 9 {
			return nil, fmt.Errorf("%s: expected at least 9 columns on line: %s", filename, line)
		}
		curr = ExonCoverage{ExonRegion: ExonRegion{Chrom: words[0], Gene: words[3], Transcript: words[4], Exon: words[5]}}
		if curr.ChromStart, err = atoi(words[1], "region start", filename, line); err != nil {
			return nil, err
		}
		if curr.ChromEnd, err = atoi(words[2], "region end", filename, line); err != nil {
			return nil, err
		}
		if curr.CovStart, err = atoi(words[6], "coverage start", filename, line); err != nil {
			return nil, err
		}
		if curr.CovEnd, err = atoi(words[7], "coverage end", filename, line); err != nil {
			return nil, err
		}
		if curr.Depth, err = atoi(words[8], "depth", filename, line); err != nil {
			return nil, err
		}
		ans = append(ans, curr)
	}
	return ans, nil
}
