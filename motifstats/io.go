package motifstats

import (
	"errors"
	"fmt"
	"github.com/livarsky/concalib/qgram"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"io"
	"log"
	"math"
	"strconv"
	"strings"
)

// String formats the row as one comma-separated line.
func (r Row) String() string {
	fer := "inf"
	if !math.IsInf(r.FER, 0) {
		fer = formatFloat(r.FER)
	}
	return strings.Join([]string{
		r.Motif,
		strconv.Itoa(int(r.Qual)),
		formatFloat(r.Prob),
		strconv.Itoa(r.Occurrence),
		strconv.Itoa(r.Match),
		strconv.Itoa(r.Mismatch),
		fer,
		formatFloat(r.Left),
		formatFloat(r.Right),
		formatFloat(r.Min),
	}, ",")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// Write writes one line per row to out.
func Write(out io.Writer, rows []Row) error {
	var err error
	for i := range rows {
		if _, err = fmt.Fprintln(out, rows[i].String()); err != nil {
			return err
		}
	}
	return nil
}

var errInvalidMotif = errors.New("invalid motif")

// Read parses a statistics table. The empirical error rate is recomputed as mismatch /
// occurrence. Binomial tails are taken from the file when present and recomputed otherwise.
// Rows whose motif is not made of A, C, G, T and N are skipped and reported in one warning.
func Read(filename string) ([]Row, error) {
	file := fileio.EasyOpen(filename)
	defer func() {
		exception.PanicOnErr(file.Close())
	}()

	var ans []Row
	var line string
	var done bool
	var lineNum int
	var skipped int
	var r Row
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		r, err = parseRow(line)
		switch {
		case errors.Is(err, errInvalidMotif):
			skipped++
			continue
		case err != nil:
			return nil, fmt.Errorf("malformed statistics file %s on line %d: %w", filename, lineNum, err)
		}
		ans = append(ans, r)
	}
	if skipped > 0 {
		log.Printf("WARNING: skipped %d rows with malformed motifs in %s\n", skipped, filename)
	}
	return ans, nil
}

func parseRow(line string) (Row, error) {
	col := strings.Split(strings.TrimSpace(line), ",")
	if len(col) < 6 {
		return Row{}, fmt.Errorf("expected at least 6 columns, found %d", len(col))
	}

	motif := strings.ToUpper(col[0])
	if !qgram.IsValid(motif) {
		return Row{}, fmt.Errorf("%w %q", errInvalidMotif, col[0])
	}
	qual, err := strconv.ParseUint(col[1], 10, 8)
	if err != nil {
		return Row{}, fmt.Errorf("invalid quality: %w", err)
	}
	var counts [3]int
	for i := range counts {
		if counts[i], err = strconv.Atoi(col[3+i]); err != nil {
			return Row{}, fmt.Errorf("invalid count in column %d: %w", 4+i, err)
		}
		if counts[i] < 0 {
			return Row{}, fmt.Errorf("negative count in column %d", 4+i)
		}
	}

	key := qgram.Key{Motif: motif, Qual: uint8(qual)}
	if len(col) < 10 {
		return NewRow(key, counts[0], counts[1], counts[2]), nil
	}

	r := Row{
		Key:        key,
		Prob:       PhredToProb(key.Qual),
		Occurrence: counts[0],
		Match:      counts[1],
		Mismatch:   counts[2],
		FER:        math.Inf(1),
	}
	if r.Occurrence > 0 {
		r.FER = float64(r.Mismatch) / float64(r.Occurrence)
	}
	tails := []*float64{&r.Left, &r.Right, &r.Min}
	for i := range tails {
		if *tails[i], err = strconv.ParseFloat(col[7+i], 64); err != nil {
			return Row{}, fmt.Errorf("invalid value in column %d: %w", 8+i, err)
		}
	}
	return r, nil
}
