package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/stats"
	"github.com/vertgenlab/gonomics/exception"
)

func statsUsage(statsFlags *flag.FlagSet) {
	fmt.Print(
		"stats - Aggregate annotated per-base coverage into exon and gene level depth statistics\n\n" +
			"Usage:\n" +
			"  coveragetools stats -i annotated.tsv -o prefix\n\n" +
			"Options:\n")
	statsFlags.PrintDefaults()
}

func runStats(args []string) {
	var err error
	statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)

	input := statsFlags.String("i", "", "Input annotated coverage file from the annotate command.")
	outPrefix := statsFlags.String("o", "", "Prefix for the output files.")
	cutoffs := statsFlags.String("t", stats.FormatThresholds(stats.DefaultThresholds), "Comma separated depth thresholds to report.")

	err = statsFlags.Parse(args)
	exception.PanicOnErr(err)
	statsFlags.Usage = func() { statsUsage(statsFlags) }

	if *input == "" || *outPrefix == "" {
		statsFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -o")
	}

	thresholds, err := stats.ParseThresholds(*cutoffs)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	if err = stats.Single(*input, *outPrefix, thresholds); err != nil {
		errExit("ERROR: " + err.Error())
	}
	fmt.Printf("Done. Output files: %s_exon_stats.tsv %s_gene_stats.tsv\n", *outPrefix, *outPrefix)
}
