// Package annotate intersects panel regions with gene/exon reference
// annotations and per-base coverage, producing one fully annotated
// tab separated file per sample.
//
// Annotation runs in two stages. The first stage pairs every panel region
// with each overlapping reference exon whose transcript matches the region's
// own transcript name, writing one six column row per pair. The second stage
// pairs every one of those rows with each overlapping run of constant depth,
// appending the run's span and depth for nine columns total.
package annotate

import (
	"fmt"
	"github.com/vertgenlab/gonomics/bed"
	"github.com/vertgenlab/gonomics/interval"
	"os"
	"sort"
)

// Annotate runs both annotation stages and returns the path of the final
// output file, outPrefix + ".tsv". The intermediate gene/exon file is written
// next to the final output under a name unique to this invocation and is
// removed before return on success and failure alike. The final file is
// staged and renamed into place so an existing output is never truncated by
// a failed run.
func Annotate(regionFile, geneExonFile, coverageFile, outPrefix string) (string, error) {
	var err error
	for _, f := range []string{regionFile, geneExonFile, coverageFile} {
		if _, err = os.Stat(f); err != nil {
			return "", fmt.Errorf("annotate: %w", err)
		}
	}

	scratch := fmt.Sprintf("%s_genes_exons.%d.bed", outPrefix, os.Getpid())
	defer os.Remove(scratch)
	if err = GeneExons(regionFile, geneExonFile, scratch); err != nil {
		return "", fmt.Errorf("gene/exon annotation of %s: %w", regionFile, err)
	}

	final := outPrefix + ".tsv"
	staging := fmt.Sprintf("%s.%d.tsv.tmp", outPrefix, os.Getpid())
	if err = Coverage(scratch, coverageFile, staging); err != nil {
		os.Remove(staging)
		return "", fmt.Errorf("coverage annotation with %s: %w", coverageFile, err)
	}
	if err = os.Rename(staging, final); err != nil {
		os.Remove(staging)
		return "", err
	}
	return final, nil
}

// GeneExons runs the first annotation stage: each region in regionFile is
// intersected with the reference in geneExonFile, and one row is written to
// outFile for every overlapping exon whose transcript equals the region's
// fourth column. Regions keep their input order, and the exons matched to a
// region are ordered by reference coordinate.
func GeneExons(regionFile, geneExonFile, outFile string) error {
	regions, err := ReadRegions(regionFile)
	if err != nil {
		return err
	}
	refs, err := ReadGeneExons(geneExonFile)
	if err != nil {
		return err
	}
	return writeExonRegions(outFile, matchGeneExons(regions, refs))
}

// Coverage runs the second annotation stage: each annotated region in
// regionFile is intersected with the depth runs in coverageFile, and one row
// is written to outFile per overlapping run. Regions keep their input order,
// and the runs matched to a region are ordered by position.
func Coverage(regionFile, coverageFile, outFile string) error {
	regions, err := ReadExonRegions(regionFile)
	if err != nil {
		return err
	}
	sites, err := ReadCoverageSites(coverageFile)
	if err != nil {
		return err
	}
	return writeExonCoverage(outFile, matchCoverage(regions, sites))
}

func matchGeneExons(regions []bed.Bed, refs []GeneExon) []ExonRegion {
	if len(regions) == 0 || len(refs) == 0 {
		return nil
	}
	intervals := make([]interval.Interval, len(refs))
	for i := range refs {
		intervals[i] = refs[i]
	}
	tree := interval.BuildTree(intervals)

	var ans []ExonRegion
	var hits []interval.Interval
	var matched []GeneExon
	var ge GeneExon
	for _, r := range regions {
		hits = interval.Query(tree, r, "any")
		matched = matched[:0]
		for i := range hits {
			ge = hits[i].(GeneExon)
			if ge.Transcript != r.Name {
				continue
			}
			matched = append(matched, ge)
		}
		sortGeneExons(matched)
		for _, ge = range matched {
			ans = append(ans, ExonRegion{
				Chrom:      r.Chrom,
				ChromStart: r.ChromStart,
				ChromEnd:   r.ChromEnd,
				Gene:       ge.Gene,
				Transcript: ge.Transcript,
				Exon:       ge.Exon,
			})
		}
	}
	return ans
}

func matchCoverage(regions []ExonRegion, sites []CoverageSite) []ExonCoverage {
	if len(regions) == 0 || len(sites) == 0 {
		return nil
	}
	intervals := make([]interval.Interval, len(sites))
	for i := range sites {
		intervals[i] = sites[i]
	}
	tree := interval.BuildTree(intervals)

	var ans []ExonCoverage
	var hits []interval.Interval
	var matched []CoverageSite
	for _, r := range regions {
		hits = interval.Query(tree, r, "any")
		matched = matched[:0]
		for i := range hits {
			matched = append(matched, hits[i].(CoverageSite))
		}
		sortCoverageSites(matched)
		for _, cs := range matched {
			ans = append(ans, ExonCoverage{ExonRegion: r, CovStart: cs.ChromStart, CovEnd: cs.ChromEnd, Depth: cs.Depth})
		}
	}
	return ans
}

// sortGeneExons orders exons matched to a single region by reference
// coordinate, then gene, then exon number, so output order does not depend
// on tree traversal order.
func sortGeneExons(g []GeneExon) {
	sort.Slice(g, func(i, j int) bool {
		if g[i].ChromStart != g[j].ChromStart {
			return g[i].ChromStart < g[j].ChromStart
		}
		if g[i].ChromEnd != g[j].ChromEnd {
			return g[i].ChromEnd < g[j].ChromEnd
		}
		if g[i].Gene != g[j].Gene {
			return g[i].Gene < g[j].Gene
		}
		return g[i].Exon < g[j].Exon
	})
}

func sortCoverageSites(c []CoverageSite) {
	sort.Slice(c, func(i, j int) bool {
		if c[i].ChromStart != c[j].ChromStart {
			return c[i].ChromStart < c[j].ChromStart
		}
		if c[i].ChromEnd != c[j].ChromEnd {
			return c[i].ChromEnd < c[j].ChromEnd
		}
		return c[i].Depth < c[j].Depth
	})
}
