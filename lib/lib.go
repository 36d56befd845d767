/*package lib contains the functions behind each of dipolesf's run modes:
command line parsing, the "check" mode, and the pipelines of the "compute"
and "restart" modes. Almost all of the heavy lifting is done by lib/'s
subpackages.
*/
package lib

import (
	"fmt"
	"io"

	"github.com/phil-mansfield/dipolesf/lib/restart"
)

var (
	// Version is the version of the software. The restart file format is
	// versioned separately by restart.Version.
	Version = "0.1.0"
)

const helpText = `dipolesf %s (restart format version %d)

Evaluates the dipole/sf pair style: shifted-force Coulomb and dipole
electrostatics plus shifted-force Lennard-Jones.

Usage:
    dipolesf help
    dipolesf check   <config file> [--<Key> <Value> ...]
    dipolesf compute <config file> [--<Key> <Value> ...]
    dipolesf restart <restart file>

Modes:
    help     Print this message.
    check    Validate a config file without running anything.
    compute  Build the configured lattice, evaluate every pair once, and
             report energies, pressure, and the largest force and torque.
             Writes a restart file and a thermo database if the [Output]
             section asks for them.
    restart  Summarize the parameter table stored in a restart file.

Command line arguments override variables in the config file. --CutLJ 3.0
is the same as --Settings.CutLJ 3.0; other sections are addressed as
--Lattice.Spacing 1.2 or --Output.Restart out.restart.
`

// PrintHelp writes the help text to w.
func PrintHelp(w io.Writer) {
	fmt.Fprintf(w, helpText, Version, restart.Version)
}
