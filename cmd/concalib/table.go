package main

import (
	"flag"
	"fmt"
	"github.com/livarsky/concalib/figures"
	"github.com/livarsky/concalib/genome"
	"github.com/livarsky/concalib/ident"
	"github.com/livarsky/concalib/motifstats"
	"github.com/livarsky/concalib/pileup"
	"github.com/livarsky/concalib/table"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"github.com/vertgenlab/gonomics/sam"
	"log"
	"os"
	"runtime"
	"runtime/pprof"
	"strconv"
	"strings"
)

func tableUsage(tableFlags *flag.FlagSet) {
	fmt.Print(
		"table - identify q-grams (with up to n Ns) whose forward error rate significantly exceeds their reverse error rate\n\n" +
			"Usage:\n" +
			"  concalib table [options] reference.fasta reads.bam q n > report.tsv\n\n" +
			"Options:\n")
	tableFlags.PrintDefaults()
}

func runTable(args []string) {
	var err error
	tableFlags := flag.NewFlagSet("table", flag.ExitOnError)

	opts := ident.DefaultOptions()
	tableFlags.Float64Var(&opts.Alpha, "a", opts.Alpha, "Family-wise error rate alpha.")
	tableFlags.Float64Var(&opts.Epsilon, "e", opts.Epsilon, "Background error rate cutoff epsilon. Motifs with a reverse error rate at or above epsilon are removed.")
	tableFlags.Float64Var(&opts.Delta, "d", opts.Delta, "Error rate difference cutoff delta. Motifs with a smaller difference between forward and reverse error rate are removed.")
	chrom := tableFlags.String("c", "chr1", "Chromosome used to derive context-specific errors.")
	sortCol := tableFlags.String("sort", "erd", "Sort the report by column: "+strings.Join(ident.Columns, ", ")+".")
	output := tableFlags.String("o", "stdout", "Output report file.")
	statsOutput := tableFlags.String("stats", "", "Also write the per motif and quality statistics table to this file.")
	cpuprofile := tableFlags.String("cpuprofile", "", "write cpu profile")
	memprofile := tableFlags.String("memprofile", "", "write memory profile")
	verbose := tableFlags.Int("v", 0, "Verbose output by setting to >0.")

	err = tableFlags.Parse(args)
	exception.PanicOnErr(err)
	tableFlags.Usage = func() { tableUsage(tableFlags) }

	if tableFlags.NArg() != 4 {
		tableFlags.Usage()
		errExit("\nERROR: exactly four positional arguments are required")
	}
	q, n := positionalInt(tableFlags.Arg(2), "q"), positionalInt(tableFlags.Arg(3), "n")
	if q < 1 || n < 0 || n > q {
		tableFlags.Usage()
		errExit("\nERROR: q must be positive and n must be between 0 and q")
	}
	if opts.Alpha <= 0 || opts.Alpha > 1 {
		errExit("ERROR: -a must be in (0, 1]")
	}
	if err = ident.Sort(nil, *sortCol); err != nil {
		errExit("ERROR: " + err.Error())
	}

	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			errExit(err.Error())
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			errExit(err.Error())
		}
		defer pprof.StopCPUProfile()
	}

	g, ann := annotate(tableFlags.Arg(0), tableFlags.Arg(1), *chrom, q, *verbose)

	t := table.Aggregate(ann.Counters, g, q, *verbose)
	table.AddAmbiguous(t, q, n, *verbose)
	rows := ident.Identify(t, g, q, n, opts, *verbose)
	if *verbose > 0 && len(rows) > 0 {
		log.Printf("\n%s\n", figures.ERDGraph(rows))
	}
	err = ident.Sort(rows, *sortCol)
	exception.PanicOnErr(err)

	out := fileio.EasyCreate(*output)
	err = ident.Write(out, rows)
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)

	if *statsOutput != "" {
		writeStats(*statsOutput, motifstats.Build(ann.Match, ann.Mismatch))
	}

	if *memprofile != "" {
		f, err := os.Create(*memprofile)
		if err != nil {
			errExit(err.Error())
		}
		defer f.Close()
		runtime.GC() // get up-to-date statistics
		if err := pprof.WriteHeapProfile(f); err != nil {
			errExit(err.Error())
		}
	}
}

// annotate loads chrom from ref and piles up every read of reads on it.
func annotate(ref, reads, chrom string, q, verbose int) (genome.Genome, *pileup.Annotator) {
	g, err := genome.Load(ref, chrom)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	if verbose > 0 {
		log.Printf("loaded %s (%d bases)\n", g.Name, g.Len())
	}

	readChan, _ := sam.GoReadToChan(reads)
	return g, pileup.Annotate(readChan, g, q, verbose)
}

func positionalInt(s, name string) int {
	ans, err := strconv.Atoi(s)
	if err != nil {
		errExit(fmt.Sprintf("ERROR: %s must be an integer, got %q", name, s))
	}
	return ans
}

func writeStats(filename string, rows []motifstats.Row) {
	out := fileio.EasyCreate(filename)
	err := motifstats.Write(out, rows)
	exception.PanicOnErr(err)
	err = out.Close()
	exception.PanicOnErr(err)
}

func readStats(filename string) []motifstats.Row {
	rows, err := motifstats.Read(filename)
	if err != nil {
		errExit("ERROR: " + err.Error())
	}
	return rows
}
