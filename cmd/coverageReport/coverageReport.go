package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/report"
	"log"
)

func usage() {
	fmt.Print(
		"coverageReport - Render an HTML report of exons with bases below a depth threshold.\n" +
			"Each selected exon is tabled with its statistics and plotted against the threshold.\n" +
			"Usage:\n" +
			"coverageReport -s prefix_exon_stats.tsv -c annotated.tsv -o report.html\n\n")
	flag.PrintDefaults()
}

func main() {
	statsFile := flag.String("s", "", "Exon statistics file from coverageStats.")
	coverage := flag.String("c", "", "Annotated coverage file from annotateBed.")
	output := flag.String("o", "report.html", "Output HTML file.")
	threshold := flag.Int("t", 20, "Depth threshold for selecting exons. Must match a column of the statistics file.")
	ascii := flag.Bool("ascii", false, "Also print a depth profile for each selected exon to stdout.")
	flag.Parse()

	if *statsFile == "" || *coverage == "" {
		usage()
		log.Fatal("ERROR: Must have inputs for -s and -c.")
	}

	coverageReport(*statsFile, *coverage, *output, *threshold, *ascii)
}

func coverageReport(statsFile, coverage, output string, threshold int, ascii bool) {
	err := report.Single(statsFile, coverage, output, threshold, ascii)
	if err != nil {
		log.Fatalln("ERROR:", err)
	}
	fmt.Println("Done. Output file:", output)
}
