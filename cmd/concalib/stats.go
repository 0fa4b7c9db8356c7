package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/motifstats"
	"github.com/vertgenlab/gonomics/exception"
)

func statsUsage(statsFlags *flag.FlagSet) {
	fmt.Print(
		"stats - error rate of every q-gram and base quality with the binomial tail probabilities of the observed mismatches\n\n" +
			"Usage:\n" +
			"  concalib stats [options] reference.fasta reads.bam q > stats.csv\n\n" +
			"Options:\n")
	statsFlags.PrintDefaults()
}

func runStats(args []string) {
	var err error
	statsFlags := flag.NewFlagSet("stats", flag.ExitOnError)

	chrom := statsFlags.String("c", "chr1", "Chromosome used to learn error rates.")
	output := statsFlags.String("o", "stdout", "Output statistics file.")
	verbose := statsFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = statsFlags.Parse(args)
	exception.PanicOnErr(err)
	statsFlags.Usage = func() { statsUsage(statsFlags) }

	if statsFlags.NArg() != 3 {
		statsFlags.Usage()
		errExit("\nERROR: exactly three positional arguments are required")
	}
	q := positionalInt(statsFlags.Arg(2), "q")
	if q < 1 {
		errExit("ERROR: q must be positive")
	}

	_, ann := annotate(statsFlags.Arg(0), statsFlags.Arg(1), *chrom, q, *verbose)
	writeStats(*output, motifstats.Build(ann.Match, ann.Mismatch))
}
