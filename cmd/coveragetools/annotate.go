package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/annotate"
	"github.com/vertgenlab/gonomics/exception"
)

func annotateUsage(annotateFlags *flag.FlagSet) {
	fmt.Print(
		"annotate - Annotate a panel BED file with gene, exon, and per-base coverage information\n\n" +
			"Usage:\n" +
			"  coveragetools annotate -i panel.bed -g exons.tsv -b per_base.bed -o prefix\n\n" +
			"Options:\n")
	annotateFlags.PrintDefaults()
}

func runAnnotate(args []string) {
	var err error
	annotateFlags := flag.NewFlagSet("annotate", flag.ExitOnError)

	input := annotateFlags.String("i", "", "Input BED file of panel regions. The 4th column must be the transcript name.")
	genes := annotateFlags.String("g", "", "Gene/exon reference file with columns chrom, start, end, gene, transcript, exon.")
	perBase := annotateFlags.String("b", "", "Per-base coverage BED file with columns chrom, start, end, depth.")
	outPrefix := annotateFlags.String("o", "", "Prefix for the output file.")

	err = annotateFlags.Parse(args)
	exception.PanicOnErr(err)
	annotateFlags.Usage = func() { annotateUsage(annotateFlags) }

	if *input == "" || *genes == "" || *perBase == "" || *outPrefix == "" {
		annotateFlags.Usage()
		errExit("\nERROR: must have inputs for -i, -g, -b, and -o")
	}

	final, err := annotate.Annotate(*input, *genes, *perBase, *outPrefix)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	fmt.Println("Done. Output file:", final)
}
