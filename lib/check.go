package lib

/* check.go contains the core functions of dipolesf's "check" mode. */

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/phil-mansfield/dipolesf/lib/config"
)

// Check looks for problems in a parsed deck that gcfg-level validation can't
// see: a table missing diagonal coefficients, a box too small for the cutoff,
// or input and output files that can't be opened. mode is the mode that the
// deck will be run in. If strictness is CrashOnError, the first problem is
// returned as an error. Otherwise every problem is logged as a warning. Check
// returns true if no problems were found.
func Check(c *config.Config, mode Mode, strictness CheckStrictness) (
	bool, error,
) {
	problems := findProblems(c, mode)
	if len(problems) == 0 { return true, nil }

	if strictness == CrashOnError { return false, problems[0] }
	for _, err := range problems {
		slog.Warn("check failed", "err", err)
	}
	return false, nil
}

func findProblems(c *config.Config, mode Mode) []error {
	problems := []error{ }

	ps, err := c.Build()
	if err != nil { return append(problems, err) }
	req, err := ps.Init()
	if err != nil { return append(problems, err) }

	switch {
	case c.HasLattice():
		width := float64(c.Lattice.Cells)*c.Lattice.Spacing
		if req.Cut >= width {
			problems = append(problems, fmt.Errorf("The largest cutoff, " +
				"%g, must be smaller than the width of the lattice, " +
				"Lattice.Cells*Lattice.Spacing = %g.", req.Cut, width))
		}

		if !anyNonZero(c.Lattice.Charge) && !anyNonZero(c.Lattice.Dipole) {
			problems = append(problems, fmt.Errorf("Every Lattice.Charge " +
				"and Lattice.Dipole is zero, so there are no electrostatic " +
				"interactions."))
		}
	case c.HasInput():
		box, err := c.Box()
		if err != nil { return append(problems, err) }
		w := box.Width()
		for dim := 0; dim < 3; dim++ {
			if req.Cut >= w[dim] {
				problems = append(problems, fmt.Errorf("The largest " +
					"cutoff, %g, must be smaller than every width of the " +
					"Input box, but dimension %d has width %g.",
					req.Cut, dim, w[dim]))
			}
		}

		if _, err := os.Stat(c.Input.Particles); err != nil {
			problems = append(problems, fmt.Errorf("Input.Particles is set " +
				"to '%s', but the file can't be opened: %w",
				c.Input.Particles, err))
		}
	case mode == ComputeMode:
		problems = append(problems, fmt.Errorf("The compute mode needs a " +
			"Lattice section or an Input section, but the config file " +
			"doesn't have either."))
	}

	for _, out := range []struct{ name, file string } {
		{"Output.Restart", c.Output.Restart},
		{"Output.ThermoDB", c.Output.ThermoDB},
	} {
		if out.file == "" { continue }
		dir := filepath.Dir(out.file)
		if info, err := os.Stat(dir); err != nil || !info.IsDir() {
			problems = append(problems, fmt.Errorf("%s is set to '%s', but " +
				"the directory '%s' does not exist.", out.name, out.file, dir))
		}
	}

	return problems
}

func anyNonZero(x []float64) bool {
	for i := range x {
		if x[i] != 0 { return true }
	}
	return false
}
