package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/motifstats"
	"github.com/vertgenlab/gonomics/exception"
)

func remapUsage(remapFlags *flag.FlagSet) {
	fmt.Print(
		"remap - assign every row of a statistics table the quality learned for its key in a second table\n" +
			"\tRows landing on the same key are merged and their binomial tails recomputed.\n\n" +
			"Usage:\n" +
			"  concalib remap [options] -learned learned.csv -i stats.csv > remapped.csv\n\n" +
			"Options:\n")
	remapFlags.PrintDefaults()
}

func runRemap(args []string) {
	var err error
	remapFlags := flag.NewFlagSet("remap", flag.ExitOnError)

	learned := remapFlags.String("learned", "", "Statistics file the new qualities are learned from.")
	input := remapFlags.String("i", "", "Statistics file to remap.")
	output := remapFlags.String("o", "stdout", "Output statistics file.")

	err = remapFlags.Parse(args)
	exception.PanicOnErr(err)
	remapFlags.Usage = func() { remapUsage(remapFlags) }

	if *learned == "" || *input == "" {
		remapFlags.Usage()
		errExit("\nERROR: must have inputs for -learned and -i")
	}

	writeStats(*output, motifstats.Remap(readStats(*learned), readStats(*input)))
}
