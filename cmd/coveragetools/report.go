package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/report"
	"github.com/vertgenlab/gonomics/exception"
)

func reportUsage(reportFlags *flag.FlagSet) {
	fmt.Print(
		"report - Render an HTML report of exons with bases below a depth threshold\n\n" +
			"Usage:\n" +
			"  coveragetools report -s prefix_exon_stats.tsv -c annotated.tsv -o report.html\n\n" +
			"Options:\n")
	reportFlags.PrintDefaults()
}

func runReport(args []string) {
	var err error
	reportFlags := flag.NewFlagSet("report", flag.ExitOnError)

	statsFile := reportFlags.String("s", "", "Exon statistics file from the stats command.")
	coverage := reportFlags.String("c", "", "Annotated coverage file from the annotate command.")
	output := reportFlags.String("o", "report.html", "Output HTML file.")
	threshold := reportFlags.Int("t", 20, "Depth threshold for selecting exons. Must match a column of the statistics file.")
	ascii := reportFlags.Bool("ascii", false, "Also print a depth profile for each selected exon to stdout.")

	err = reportFlags.Parse(args)
	exception.PanicOnErr(err)
	reportFlags.Usage = func() { reportUsage(reportFlags) }

	if *statsFile == "" || *coverage == "" {
		reportFlags.Usage()
		errExit("\nERROR: must have inputs for -s and -c")
	}

	if err = report.Single(*statsFile, *coverage, *output, *threshold, *ascii); err != nil {
		errExit("ERROR: " + err.Error())
	}
	fmt.Println("Done. Output file:", *output)
}
