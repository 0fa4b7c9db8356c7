package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/figures"
	"github.com/vertgenlab/gonomics/exception"
	"log"
)

func scatterUsage(scatterFlags *flag.FlagSet) {
	fmt.Print(
		"scatter - plot the error rate of every key found in two statistics tables against each other\n" +
			"\tWith -koeff and -off, points with (y - off) / x * sign > koeff * sign are printed and highlighted.\n\n" +
			"Usage:\n" +
			"  concalib scatter [options] -a a.csv -b b.csv -o plot.png\n\n" +
			"Options:\n")
	scatterFlags.PrintDefaults()
}

func runScatter(args []string) {
	var err error
	scatterFlags := flag.NewFlagSet("scatter", flag.ExitOnError)

	var opts figures.ScatterOptions
	a := scatterFlags.String("a", "", "Statistics file plotted on the x axis.")
	b := scatterFlags.String("b", "", "Statistics file plotted on the y axis.")
	output := scatterFlags.String("o", "", "Output plot. Format is chosen by extension (png, svg, pdf, ...).")
	scatterFlags.BoolVar(&opts.Log, "log", false, "Plot log10 error rates.")
	scatterFlags.Float64Var(&opts.Koeff, "koeff", 0, "Slope of the outlier line.")
	scatterFlags.Float64Var(&opts.Off, "off", 0, "Offset of the outlier line.")
	scatterFlags.Float64Var(&opts.Sign, "sign", 1, "1 flags points above the outlier line, -1 points below.")

	err = scatterFlags.Parse(args)
	exception.PanicOnErr(err)
	scatterFlags.Usage = func() { scatterUsage(scatterFlags) }

	if *a == "" || *b == "" || *output == "" {
		scatterFlags.Usage()
		errExit("\nERROR: must have inputs for -a, -b, and -o")
	}
	if opts.Sign != 1 && opts.Sign != -1 {
		errExit("ERROR: -sign must be 1 or -1")
	}

	// outliers are only flagged when the line is fully specified
	var setKoeff, setOff bool
	scatterFlags.Visit(func(f *flag.Flag) {
		setKoeff = setKoeff || f.Name == "koeff"
		setOff = setOff || f.Name == "off"
	})
	opts.Outliers = setKoeff && setOff

	pairs := figures.Join(readStats(*a), readStats(*b))
	log.Printf("%d keys found in both tables\n", len(pairs))

	flagged, err := figures.Scatter(pairs, opts, *output)
	exception.PanicOnErr(err)
	for _, p := range flagged {
		fmt.Printf("%s\t%d\t%g\t%g\n", p.Motif, p.Qual, p.A, p.B)
	}
}
