package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/distance"
	"github.com/vertgenlab/gonomics/exception"
	"os"
)

func distanceUsage(distanceFlags *flag.FlagSet) {
	fmt.Print(
		"distance - compare how well quality derived, learned, constant, and random error rates explain a statistics table\n\n" +
			"Usage:\n" +
			"  concalib distance [options] -i stats.csv\n\n" +
			"Options:\n")
	distanceFlags.PrintDefaults()
}

func runDistance(args []string) {
	var err error
	distanceFlags := flag.NewFlagSet("distance", flag.ExitOnError)

	var opts distance.Options
	input := distanceFlags.String("i", "", "Statistics file generated with 'concalib stats'.")
	distanceFlags.Float64Var(&opts.Const, "const", 0, "Error rate of the constant model. Uses the average error rate when not set.")
	distanceFlags.Uint64Var(&opts.Seed, "seed", 1, "Seed for the random error model.")

	err = distanceFlags.Parse(args)
	exception.PanicOnErr(err)
	distanceFlags.Usage = func() { distanceUsage(distanceFlags) }

	if *input == "" {
		distanceFlags.Usage()
		errExit("\nERROR: must have input for -i")
	}

	m, err := distance.Compute(readStats(*input), opts)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	err = distance.Write(os.Stdout, m)
	exception.PanicOnErr(err)
}
