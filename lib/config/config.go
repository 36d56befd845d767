/*package config reads the input deck which configures a dipole/sf run.

Input decks are gcfg (git-config style) files:

	[Settings]
	NTypes = 2
	CutLJ = 2.5
	CutCoul = 3.0
	Mix = arithmetic
	QQrd2e = 1.0
	SpecialLJ = 0 0 0
	SpecialCoul = 0 0 0
	NewtonPair = true

	[Coeff "1 1"]
	Epsilon = 1.0
	Sigma = 1.0

	[Coeff "2 2*"]
	Epsilon = 0.5
	Sigma = 1.2
	CutLJ = 2.0

	[Lattice]
	Cells = 4
	Spacing = 1.5
	Charge = 1.0
	Charge = -1.0
	Dipole = 0.0
	Dipole = 1.0
	Seed = 1337

	[Output]
	Restart = run.restart
	Compress = true
	ThermoDB = thermo.db

Each Coeff section is named by two type ranges and sets every pair
(i, j) with i <= j in those ranges. Ranges from different sections may not
overlap. SpecialLJ and SpecialCoul hold the factors for 1-2, 1-3, and 1-4
neighbors. The particles of a run come from either a Lattice section or an
Input section, which names a text particle catalog (see lib/catio) and the
periodic box around it:

	[Input]
	Particles = particles.txt
	BoxLo = 0 0 0
	BoxHi = 6 6 6
*/
package config

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"gopkg.in/gcfg.v1"

	"github.com/phil-mansfield/dipolesf/lib/format"
	"github.com/phil-mansfield/dipolesf/lib/lattice"
	"github.com/phil-mansfield/dipolesf/lib/neighbor"
	"github.com/phil-mansfield/dipolesf/lib/pair"
)

type SettingsConfig struct {
	// Required
	NTypes int
	CutLJ float64

	// Optional
	CutCoul float64
	Mix string
	QQrd2e float64
	SpecialLJ, SpecialCoul string
	NewtonPair bool
}

type CoeffConfig struct {
	// Required
	Epsilon, Sigma float64

	// Optional
	CutLJ, CutCoul float64

	// Set by CheckInit.
	Name string
	ILo, IHi, JLo, JHi int
}

type LatticeConfig struct {
	Cells int
	Spacing float64
	Charge, Dipole []float64
	Seed int64
}

type InputConfig struct {
	Particles string
	BoxLo, BoxHi string
}

type OutputConfig struct {
	Restart string
	Compress bool
	ThermoDB string
}

// Config is a full input deck.
type Config struct {
	Settings SettingsConfig
	Coeff map[string]*CoeffConfig
	Lattice LatticeConfig
	Input InputConfig
	Output OutputConfig
}

// Default returns a Config holding the default value of every optional
// variable.
func Default() *Config {
	return &Config{
		Settings: SettingsConfig{
			Mix: "arithmetic",
			QQrd2e: 1,
			SpecialLJ: "0 0 0",
			SpecialCoul: "0 0 0",
			NewtonPair: true,
		},
		Input: InputConfig{ BoxLo: "0 0 0" },
	}
}

// ReadConfig reads and validates the input deck fname.
func ReadConfig(fname string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadFileInto(c, fname); err != nil {
		return nil, fmt.Errorf("Could not parse config file %s: %w", fname, err)
	}
	if err := c.CheckInit(); err != nil { return nil, err }
	return c, nil
}

// Parse reads and validates an input deck stored in a string.
func Parse(text string) (*Config, error) {
	c := Default()
	if err := gcfg.ReadStringInto(c, text); err != nil { return nil, err }
	if err := c.CheckInit(); err != nil { return nil, err }
	return c, nil
}

// CheckInit validates every section of c and fills in derived values.
func (c *Config) CheckInit() error {
	if err := c.Settings.CheckInit(); err != nil { return err }
	if len(c.Coeff) == 0 {
		return fmt.Errorf("At least one Coeff section must be given.")
	}

	owner := map[[2]int]string{ }
	for _, name := range c.coeffNames() {
		coeff := c.Coeff[name]
		if err := coeff.CheckInit(name, &c.Settings); err != nil { return err }

		for i := coeff.ILo; i <= coeff.IHi; i++ {
			for j := max(i, coeff.JLo); j <= coeff.JHi; j++ {
				if prev, ok := owner[[2]int{ i, j }]; ok {
					return fmt.Errorf("Coeff sections '%s' and '%s' both " +
						"set types %d %d. Coeff sections may not overlap.",
						prev, name, i, j)
				}
				owner[[2]int{ i, j }] = name
			}
		}
	}

	if err := c.Lattice.CheckInit(c.Settings.NTypes); err != nil { return err }
	if err := c.Input.CheckInit(); err != nil { return err }
	if c.HasLattice() && c.HasInput() {
		return fmt.Errorf("Both a Lattice section and Input.Particles are " +
			"set, but only one source of particles can be used.")
	}
	return nil
}

// coeffNames returns the names of the Coeff sections in sorted order.
func (c *Config) coeffNames() []string {
	names := make([]string, 0, len(c.Coeff))
	for name := range c.Coeff { names = append(names, name) }
	sort.Strings(names)
	return names
}

func (s *SettingsConfig) CheckInit() error {
	if s.NTypes <= 0 {
		return fmt.Errorf("Settings.NTypes must be positive, but is %d.",
			s.NTypes)
	} else if s.CutLJ <= 0 {
		return fmt.Errorf("Settings.CutLJ must be positive, but is %g.",
			s.CutLJ)
	} else if s.CutCoul < 0 {
		return fmt.Errorf("Settings.CutCoul must be positive, but is %g.",
			s.CutCoul)
	} else if s.QQrd2e <= 0 {
		return fmt.Errorf("Settings.QQrd2e must be positive, but is %g.",
			s.QQrd2e)
	}

	if _, err := pair.ParseMixRule(s.Mix); err != nil {
		return fmt.Errorf("Settings.Mix is invalid: %w", err)
	}
	if _, err := parseSpecial(s.SpecialLJ, "SpecialLJ"); err != nil {
		return err
	}
	if _, err := parseSpecial(s.SpecialCoul, "SpecialCoul"); err != nil {
		return err
	}

	return nil
}

// parseSpecial parses the three 1-2, 1-3, 1-4 factors of a special bond
// setting. Category 0 is always 1.
func parseSpecial(s, name string) ([neighbor.NSpecial]float64, error) {
	out := [neighbor.NSpecial]float64{ 1 }
	toks := strings.Fields(s)
	if len(toks) != neighbor.NSpecial - 1 {
		return out, fmt.Errorf("Settings.%s must contain %d values, but " +
			"'%s' contains %d.", name, neighbor.NSpecial - 1, s, len(toks))
	}

	for i, tok := range toks {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil {
			return out, fmt.Errorf("Could not parse value %d of " +
				"Settings.%s, '%s', as a number.", i + 1, name, tok)
		} else if x < 0 || x > 1 {
			return out, fmt.Errorf("Value %d of Settings.%s is %g, but " +
				"special bond factors must be in [0, 1].", i + 1, name, x)
		}
		out[i + 1] = x
	}

	return out, nil
}

func (coeff *CoeffConfig) CheckInit(name string, s *SettingsConfig) error {
	var err error
	coeff.ILo, coeff.IHi, coeff.JLo, coeff.JHi, err =
		format.ExpandTypePair(name, s.NTypes)
	if err != nil {
		return fmt.Errorf("Coeff section '%s' has an invalid name: %w",
			name, err)
	}

	if coeff.Epsilon < 0 {
		return fmt.Errorf("Epsilon of Coeff '%s' must be non-negative, " +
			"but is %g.", name, coeff.Epsilon)
	} else if coeff.Sigma < 0 {
		return fmt.Errorf("Sigma of Coeff '%s' must be non-negative, but " +
			"is %g.", name, coeff.Sigma)
	} else if coeff.CutLJ < 0 {
		return fmt.Errorf("CutLJ of Coeff '%s' must be positive, but is %g.",
			name, coeff.CutLJ)
	} else if coeff.CutCoul < 0 {
		return fmt.Errorf("CutCoul of Coeff '%s' must be positive, but " +
			"is %g.", name, coeff.CutCoul)
	} else if coeff.CutCoul > 0 && coeff.CutLJ == 0 {
		return fmt.Errorf("Coeff '%s' sets CutCoul without setting CutLJ.",
			name)
	} else if coeff.JHi < coeff.ILo {
		return fmt.Errorf("Coeff '%s' does not contain any type pairs " +
			"with i <= j.", name)
	}

	coeff.Name = name
	return nil
}

// cutoffs returns the cutoff overrides of a Coeff section.
func (coeff *CoeffConfig) cutoffs() []float64 {
	switch {
	case coeff.CutCoul > 0: return []float64{ coeff.CutLJ, coeff.CutCoul }
	case coeff.CutLJ > 0: return []float64{ coeff.CutLJ }
	default: return nil
	}
}

func (l *LatticeConfig) CheckInit(ntypes int) error {
	if l.Cells == 0 { return nil }
	return l.config(ntypes).Check()
}

func (l *LatticeConfig) config(ntypes int) *lattice.Config {
	return &lattice.Config{
		Cells: l.Cells, Spacing: l.Spacing, NTypes: ntypes,
		Charge: l.Charge, Dipole: l.Dipole, Seed: uint64(l.Seed),
	}
}

func (in *InputConfig) CheckInit() error {
	if in.Particles == "" { return nil }
	_, err := in.box()
	return err
}

func (in *InputConfig) box() (neighbor.Box, error) {
	box := neighbor.Box{ }
	var err error
	if box.Lo, err = parseVec(in.BoxLo, "Input.BoxLo"); err != nil {
		return box, err
	}
	if box.Hi, err = parseVec(in.BoxHi, "Input.BoxHi"); err != nil {
		return box, err
	}
	for dim := 0; dim < 3; dim++ {
		if !(box.Hi[dim] > box.Lo[dim]) {
			return box, fmt.Errorf("Input.BoxHi must be larger than " +
				"Input.BoxLo in every dimension, but dimension %d has " +
				"BoxLo = %g and BoxHi = %g.", dim, box.Lo[dim], box.Hi[dim])
		}
	}
	return box, nil
}

func parseVec(s, name string) ([3]float64, error) {
	out := [3]float64{ }
	toks := strings.Fields(s)
	if len(toks) != 3 {
		return out, fmt.Errorf("%s must contain 3 values, but '%s' " +
			"contains %d.", name, s, len(toks))
	}
	for i, tok := range toks {
		x, err := strconv.ParseFloat(tok, 64)
		if err != nil || math.IsInf(x, 0) || math.IsNaN(x) {
			return out, fmt.Errorf("Could not parse value %d of %s, '%s', " +
				"as a finite number.", i + 1, name, tok)
		}
		out[i] = x
	}
	return out, nil
}

// HasInput returns true if the deck reads particles from a catalog.
func (c *Config) HasInput() bool { return c.Input.Particles != "" }

// Box returns the periodic box given by the Input section.
func (c *Config) Box() (neighbor.Box, error) { return c.Input.box() }

// HasLattice returns true if the deck contains a Lattice section.
func (c *Config) HasLattice() bool { return c.Lattice.Cells > 0 }

// LatticeConfig returns the lattice described by the deck.
func (c *Config) LatticeConfig() *lattice.Config {
	return c.Lattice.config(c.Settings.NTypes)
}

// Globals returns the global pair settings described by the deck.
func (c *Config) Globals() (pair.Globals, error) {
	g := pair.Globals{
		QQrd2e: c.Settings.QQrd2e,
		NewtonPair: c.Settings.NewtonPair,
	}
	var err error
	g.SpecialLJ, err = parseSpecial(c.Settings.SpecialLJ, "SpecialLJ")
	if err != nil { return g, err }
	g.SpecialCoul, err = parseSpecial(c.Settings.SpecialCoul, "SpecialCoul")
	return g, err
}

// Build creates the pair style described by the deck, which must have passed
// CheckInit. The returned style still needs to be initialized with Init.
func (c *Config) Build() (*pair.DipoleSF, error) {
	g, err := c.Globals()
	if err != nil { return nil, err }
	ps, err := pair.New(c.Settings.NTypes, g)
	if err != nil { return nil, err }

	mix, err := pair.ParseMixRule(c.Settings.Mix)
	if err != nil { return nil, err }
	if err := ps.Table.SetMix(mix); err != nil { return nil, err }

	cuts := []float64{ c.Settings.CutLJ }
	if c.Settings.CutCoul > 0 { cuts = append(cuts, c.Settings.CutCoul) }
	if err := ps.Table.SetCutoffs(cuts...); err != nil { return nil, err }

	for _, name := range c.coeffNames() {
		coeff := c.Coeff[name]
		err := ps.Table.Configure(coeff.ILo, coeff.IHi, coeff.JLo, coeff.JHi,
			coeff.Epsilon, coeff.Sigma, coeff.cutoffs()...)
		if err != nil {
			return nil, fmt.Errorf("Could not apply Coeff '%s': %w", name, err)
		}
	}

	return ps, nil
}
