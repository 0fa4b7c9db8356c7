package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/recal"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func rewriteUsage(rewriteFlags *flag.FlagSet) {
	fmt.Print(
		"rewrite - raise base qualities to the error rates learned for their q-gram context\n" +
			"\tA quality is only replaced when the learned quality is higher than the reported one.\n\n" +
			"Usage:\n" +
			"  concalib rewrite [options] -i input.bam -s stats.csv -o output.bam\n\n" +
			"Options:\n")
	rewriteFlags.PrintDefaults()
}

func runRewrite(args []string) {
	var err error
	rewriteFlags := flag.NewFlagSet("rewrite", flag.ExitOnError)

	opts := recal.DefaultOptions()
	input := rewriteFlags.String("i", "", "Input bam file.")
	statsFile := rewriteFlags.String("s", "", "Statistics file generated with 'concalib stats'.")
	output := rewriteFlags.String("o", "stdout", "Output bam file.")
	rewriteFlags.IntVar(&opts.Q, "q", opts.Q, "Length of the q-grams in the statistics file.")
	rewriteFlags.IntVar(&opts.MinOccurrence, "minOcc", opts.MinOccurrence, "Only use statistics observed more than this many times.")
	verbose := rewriteFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = rewriteFlags.Parse(args)
	exception.PanicOnErr(err)
	rewriteFlags.Usage = func() { rewriteUsage(rewriteFlags) }

	if *input == "" || *statsFile == "" {
		rewriteFlags.Usage()
		errExit("\nERROR: must have inputs for -i and -s")
	}

	model, err := recal.NewModel(readStats(*statsFile), opts)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	log.Printf("%d learned qualities loaded from %s\n", model.Len(), *statsFile)
	recal.Rewrite(*input, *output, model, *verbose)
}
