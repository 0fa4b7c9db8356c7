package main

import (
	"flag"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"
)

const version string = "0.32.0"
const gonomicsVersion string = "1.0.1-0.20240426183757-e6c6ab634c20"

type subcommand struct {
	name     string
	function func(args []string)
	blurb    string
}

// SubCommands contains all valid subcommands.
// New subcommands can be added to concalib by adding a new entry to this array.
var SubCommands = []*subcommand{
	{"table", runTable, "identify motifs with context-specific strand bias"},
	{"stats", runStats, "per motif and quality error rates with binomial tails"},
	{"rewrite", runRewrite, "raise base qualities to learned error rates"},
	{"remap", runRemap, "move statistics to the qualities learned from another table"},
	{"consensus", runConsensus, "compare quality and learned error models by base calling"},
	{"scatter", runScatter, "plot the error rates of two statistics tables"},
	{"distance", runDistance, "measure how well error models explain a statistics table"},
}

func usage() {
	s := new(strings.Builder)
	s.WriteString(
		"Program: concalib (context-specific sequencing error discovery and quality calibration)\n" +
			"Version: " + version + " (gonomics " + gonomicsVersion + ")\n" +
			"\nUsage:\tconcalib <command> [options]\n\n" +
			"Commands:\n")

	// add subcommand text via tabwriter so the columns align
	w := tabwriter.NewWriter(s, 0, 8, 5, '\t', tabwriter.AlignRight)
	for i := range SubCommands {
		fmt.Fprintf(w, "\t%s\t%s\n", SubCommands[i].name, SubCommands[i].blurb)
	}
	w.Flush()
	fmt.Print(s.String())
}

// commandMap builds a map of possible subcommands keyed on the name of the subcommand
func commandMap() map[string]func(args []string) {
	m := make(map[string]func(args []string))
	for i := range SubCommands {
		m[SubCommands[i].name] = SubCommands[i].function
	}
	return m
}

func main() {
	showVersion := flag.Bool("version", false, "Print the program version and exit.")
	flag.Usage = usage
	flag.Parse()

	if *showVersion {
		fmt.Printf("concalib version %s\n", version)
		return
	}

	// check if first argument is a valid subcommand
	command := commandMap()[flag.Arg(0)]

	// if no command is found, print the usage and return
	if command == nil {
		flag.Usage()
		return
	}

	// if command successfully found, pass in remaining arguments and execute
	command(flag.Args()[1:])
}

func errExit(err string) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
