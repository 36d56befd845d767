/*package catio reads particle catalogs stored as columns of text.

Each non-empty line is one particle. Fields are separated by runs of the
separator character and everything after the comment character is ignored.
*/
package catio

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// TextConfig contains information neccessary for parsing catalogs.
type TextConfig struct {
	Separator byte // Character used to separated fields.
	Comment byte // Character used to start comments.
	SkipLines int // Number of lines to skip at the start of file.
	MaxLineSize int // Largest possible line size.
}

// DefaultConfig reads whitespace-separated files with '#' comments.
var DefaultConfig = TextConfig{
	Separator: ' ',
	Comment: '#',
	SkipLines: 0,
	MaxLineSize: 1<<20,
}

// ReadFloat64s reads the given columns of every line in rd. out[i][k] is the
// value of column columns[i] on the k-th non-empty line. Lines with too few
// columns are an error.
func ReadFloat64s(
	rd io.Reader, columns []int, config ...TextConfig,
) ([][]float64, error) {
	cfg := DefaultConfig
	if len(config) > 0 { cfg = config[0] }

	maxCol := -1
	for _, col := range columns {
		if col < 0 {
			return nil, fmt.Errorf("Column index %d is negative.", col)
		}
		if col > maxCol { maxCol = col }
	}

	out := make([][]float64, len(columns))
	for i := range out { out[i] = []float64{ } }

	sc := bufio.NewScanner(rd)
	sc.Buffer(make([]byte, 0, 4096), cfg.MaxLineSize)

	for line := 1; sc.Scan(); line++ {
		if line <= cfg.SkipLines { continue }

		fields := splitLine(sc.Text(), cfg)
		if len(fields) == 0 { continue }
		if len(fields) <= maxCol {
			return nil, fmt.Errorf("Line %d has %d columns, but column %d " +
				"was requested.", line, len(fields), maxCol)
		}

		for i, col := range columns {
			x, err := strconv.ParseFloat(fields[col], 64)
			if err != nil {
				return nil, fmt.Errorf("Could not parse column %d of line " +
					"%d, '%s', as a number.", col, line, fields[col])
			}
			out[i] = append(out[i], x)
		}
	}

	if err := sc.Err(); err != nil { return nil, err }
	return out, nil
}

// splitLine removes comments from line and splits it into fields.
func splitLine(line string, cfg TextConfig) []string {
	if idx := strings.IndexByte(line, cfg.Comment); idx >= 0 {
		line = line[:idx]
	}

	if cfg.Separator == ' ' { return strings.Fields(line) }

	fields := []string{ }
	for _, tok := range strings.Split(line, string(cfg.Separator)) {
		tok = strings.TrimSpace(tok)
		if tok != "" { fields = append(fields, tok) }
	}
	return fields
}
