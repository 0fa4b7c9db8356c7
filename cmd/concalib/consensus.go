package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/consensus"
	"github.com/livarsky/concalib/figures"
	"github.com/livarsky/concalib/genome"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"log"
)

func consensusUsage(consensusFlags *flag.FlagSet) {
	fmt.Print(
		"consensus - call bases at selected positions with quality derived and learned error rates\n\n" +
			"Usage:\n" +
			"  concalib consensus [options] -r reference.fasta -s stats.csv -i observations.txt\n\n" +
			"Observation file:\n" +
			"  <label>:<0-based position>\n" +
			"  <q-gram ending at the base>,<cigar op>,<quality>,<f|r>\n" +
			"  ...\n\n" +
			"Options:\n")
	consensusFlags.PrintDefaults()
}

func runConsensus(args []string) {
	var err error
	consensusFlags := flag.NewFlagSet("consensus", flag.ExitOnError)

	ref := consensusFlags.String("r", "", "Reference fasta file.")
	chrom := consensusFlags.String("c", "chr1", "Chromosome the positions refer to.")
	statsFile := consensusFlags.String("s", "", "Statistics file generated with 'concalib stats'.")
	input := consensusFlags.String("i", "", "Observation file.")
	plotFile := consensusFlags.String("o", "graph.png", "Output plot. Format is chosen by extension (png, svg, pdf, ...).")
	report := consensusFlags.String("report", "stdout", "Output per-position calls.")

	err = consensusFlags.Parse(args)
	exception.PanicOnErr(err)
	consensusFlags.Usage = func() { consensusUsage(consensusFlags) }

	if *ref == "" || *statsFile == "" || *input == "" {
		consensusFlags.Usage()
		errExit("\nERROR: must have inputs for -r, -s, and -i")
	}

	g, err := genome.Load(*ref, *chrom)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	sites, err := consensus.ReadObservations(*input)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}

	summary, err := consensus.Evaluate(sites, consensus.ErrorRates(readStats(*statsFile)), g)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	log.Printf("%d positions called, %d correct by both models\n", len(summary.Results), len(summary.GoodX))

	out := fileio.EasyCreate(*report)
	err = consensus.Write(out, summary.Results)
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	err = figures.Consensus(summary, *plotFile)
	exception.PanicOnErr(err)
}
