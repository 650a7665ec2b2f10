package main

import (
	"flag"
	"fmt"
	"github.com/ngsreports/coverageTools/annotate"
	"log"
)

func usage() {
	fmt.Print(
		"annotateBed - Annotate a panel BED file with gene, exon, and per-base coverage information.\n" +
			"Regions are first matched to reference exons sharing their transcript name, then to\n" +
			"overlapping runs of constant depth. The final file is named <prefix>.tsv.\n" +
			"Usage:\n" +
			"annotateBed -i panel.bed -g exons.tsv -b per_base.bed -o prefix\n\n")
	flag.PrintDefaults()
}

func main() {
	input := flag.String("i", "", "Input BED file of panel regions. The 4th column must be the transcript name.")
	genes := flag.String("g", "", "Gene/exon reference file with columns chrom, start, end, gene, transcript, exon.")
	perBase := flag.String("b", "", "Per-base coverage BED file with columns chrom, start, end, depth.")
	outPrefix := flag.String("o", "", "Prefix for the output file.")
	flag.Parse()

	if *input == "" || *genes == "" || *perBase == "" || *outPrefix == "" {
		usage()
		log.Fatal("ERROR: Must have inputs for -i, -g, -b, and -o.")
	}

	annotateBed(*input, *genes, *perBase, *outPrefix)
}

func annotateBed(input, genes, perBase, outPrefix string) {
	final, err := annotate.Annotate(input, genes, perBase, outPrefix)
	if err != nil {
		log.Fatalln("ERROR:", err)
	}
	fmt.Println("Done. Output file:", final)
}
