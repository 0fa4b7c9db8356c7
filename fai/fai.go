package fai

import (
	"fmt"
	"github.com/vertgenlab/gonomics/exception"
	"github.com/vertgenlab/gonomics/fileio"
	"os"
	"strconv"
	"strings"
)

// Index holds the chromosome names and lengths of a samtools fasta index (.fai).
type Index struct {
	names   []string       // in file order
	lens    []int          // bases per chromosome, parallel to names
	nameMap map[string]int // maps chr name to index in names
}

// Has reports whether chr is present in the index.
func (idx Index) Has(chr string) bool {
	_, found := idx.nameMap[chr]
	return found
}

// Size returns the length of chr in bases, or -1 if chr is not indexed.
func (idx Index) Size(chr string) int {
	i, found := idx.nameMap[chr]
	if !found {
		return -1
	}
	return idx.lens[i]
}

// Names returns the indexed chromosome names in file order.
func (idx Index) Names() []string {
	ans := make([]string, len(idx.names))
	copy(ans, idx.names)
	return ans
}

// Exists reports whether an index sits next to fastaFile (fastaFile + ".fai").
func Exists(fastaFile string) bool {
	_, err := os.Stat(fastaFile + ".fai")
	return err == nil
}

// ReadIndex reads a fai file. All five columns must be present and the numeric
// ones well formed, but only names and lengths are kept.
func ReadIndex(filename string) (Index, error) {
	file := fileio.EasyOpen(filename)
	defer func() {
		exception.PanicOnErr(file.Close())
	}()

	answer := Index{nameMap: make(map[string]int)}
	var line string
	var col []string
	var done bool
	var lineNum, length int
	var err error
	for line, done = fileio.EasyNextRealLine(file); !done; line, done = fileio.EasyNextRealLine(file) {
		lineNum++
		col = strings.Split(line, "\t")
		if len(col) != 5 {
			return Index{}, fmt.Errorf("malformed index file %s on line %d: %q", filename, lineNum, line)
		}
		for i := 1; i < len(col); i++ {
			if _, err = strconv.Atoi(col[i]); err != nil {
				return Index{}, fmt.Errorf("malformed column %d in %s on line %d: %w", i+1, filename, lineNum, err)
			}
		}
		length, _ = strconv.Atoi(col[1])

		answer.nameMap[col[0]] = len(answer.names)
		answer.names = append(answer.names, col[0])
		answer.lens = append(answer.lens, length)
	}
	return answer, nil
}
