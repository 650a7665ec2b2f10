package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/stats"
	"log"
)

func usage() {
	fmt.Print(
		"coverageStats - Aggregate annotated per-base coverage into exon and gene level depth statistics.\n" +
			"Writes <prefix>_exon_stats.tsv and <prefix>_gene_stats.tsv.\n" +
			"Usage:\n" +
			"coverageStats -i annotated.tsv -o prefix\n\n")
	flag.PrintDefaults()
}

func main() {
	input := flag.String("i", "", "Input annotated coverage file from annotateBed.")
	outPrefix := flag.String("o", "", "Prefix for the output files.")
	cutoffs := flag.String("t", stats.FormatThresholds(stats.DefaultThresholds), "Comma separated depth thresholds to report.")
	flag.Parse()

	if *input == "" || *outPrefix == "" {
		usage()
		log.Fatal("ERROR: Must have inputs for -i and -o.")
	}

	thresholds, err := stats.ParseThresholds(*cutoffs)
	if err != nil {
		log.Fatalln("ERROR:", err)
	}

	coverageStats(*input, *outPrefix, thresholds)
}

func coverageStats(input, outPrefix string, thresholds []int) {
	err := stats.Single(input, outPrefix, thresholds)
	if err != nil {
		log.Fatalln("ERROR:", err)
	}
	fmt.Printf("Done. Output files: %s_exon_stats.tsv %s_gene_stats.tsv\n", outPrefix, outPrefix)
}
