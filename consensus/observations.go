package consensus

import (
	"fmt"
	"github.com/livarsky/concalib/strand"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"strconv"
	"strings"
)

// Observation is one read base covering a site, described by the motif ending at the base.
type Observation struct {
	Motif   string
	Op      string // alignment operation of the base
	Qual    uint8
	Reverse bool
}

type Site struct {
	Label string
	Pos   int // 0-based
	Obs   []Observation
}

// ReadObservations parses an observation file. A line "<label>:<pos>" opens a site and every
// following line "motif,op,quality,strand" adds an observation to it.
func ReadObservations(filename string) ([]Site, error) {
	file := fileio.EasyOpen(filename)
	defer func() {
		exception.PanicOnErr(file.Close())
	}()

	var ans []Site
	var line string
	var done bool
	var lineNum int
	var obs Observation
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		line = strings.TrimSpace(line)
		if label, pos, found := strings.Cut(line, ":"); found {
			site := Site{Label: label}
			if site.Pos, err = strconv.Atoi(pos); err != nil || site.Pos < 0 {
				return nil, fmt.Errorf("malformed position in %s on line %d: %q", filename, lineNum, line)
			}
			ans = append(ans, site)
			continue
		}

		if obs, err = parseObservation(line); err != nil {
			return nil, fmt.Errorf("malformed observation in %s on line %d: %w", filename, lineNum, err)
		}
		if len(ans) == 0 {
			return nil, fmt.Errorf("observation before the first position in %s on line %d", filename, lineNum)
		}
		ans[len(ans)-1].Obs = append(ans[len(ans)-1].Obs, obs)
	}
	return ans, nil
}

func parseObservation(line string) (Observation, error) {
	col := strings.Split(line, ",")
	if len(col) != 4 {
		return Observation{}, fmt.Errorf("expected 4 columns, found %d", len(col))
	}
	qual, err := strconv.ParseUint(col[2], 10, 8)
	if err != nil {
		return Observation{}, fmt.Errorf("invalid quality: %w", err)
	}
	rev, err := strand.Parse(strings.TrimSpace(col[3]))
	if err != nil {
		return Observation{}, err
	}
	return Observation{Motif: strings.ToUpper(col[0]), Op: col[1], Qual: uint8(qual), Reverse: rev}, nil
}
