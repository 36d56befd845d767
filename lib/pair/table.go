/*package pair implements the dipole/sf pair style: shifted-force Coulomb
interactions between point charges and point dipoles combined with a
shifted-force 12-6 Lennard-Jones term.

The package has three layers. Table stores the per-type-pair coefficients and
derives mixed and cached values from them. Evaluate is the per-pair kernel; it
is a pure function of two sites, their separation, and a finalized Entry.
DipoleSF.Compute walks a half neighbor list, calls Evaluate, and accumulates
forces, torques, energies, and virials.

Configuration and computation never overlap: a Table is mutated only through
SetCutoffs, SetMix, Configure, Restore, and Init, and is read-only while Compute
runs.
*/
package pair

/* table.go contains the parameter table and its mixing logic. */

import (
	"fmt"
	"math"
)

// Entry holds the coefficients of one unordered pair of atom types. The first
// five fields are user-facing; the rest are cached by Table.InitOne.
type Entry struct {
	Epsilon, Sigma float64
	CutLJ, CutCoul float64
	// Set is true if the pair was configured explicitly instead of mixed.
	Set bool

	CutLJSq, CutCoulSq float64
	// Cut is the larger of CutLJ and CutCoul and CutSq is its square.
	Cut, CutSq float64
	// LJ1 through LJ4 are 48 eps sig^12, 24 eps sig^6, 4 eps sig^12,
	// and 4 eps sig^6, respectively.
	LJ1, LJ2, LJ3, LJ4 float64

	// cutExplicit is true if Configure was given cutoff overrides, so
	// SetCutoffs should leave the cutoffs alone.
	cutExplicit bool
}

// Settings are the global defaults of a Table.
type Settings struct {
	// CutLJ and CutCoul are the default LJ and Coulomb cutoffs.
	CutLJ, CutCoul float64
	Mix MixRule
}

// Table stores one Entry per unordered pair of atom types. Entry(i, j) and
// Entry(j, i) resolve to the same storage, so the table can't become
// asymmetric.
type Table struct {
	ntypes int
	settings Settings
	entries []Entry
	finalized bool
}

// NewTable returns an empty table for types 1 through ntypes. The default
// mixing rule is Arithmetic and no cutoffs are set.
func NewTable(ntypes int) (*Table, error) {
	if ntypes < 1 {
		return nil, fmt.Errorf("%w: the number of atom types must be " +
			"positive, but is %d.", ErrConfig, ntypes)
	}
	return &Table{
		ntypes: ntypes,
		settings: Settings{ Mix: Arithmetic },
		entries: make([]Entry, ntypes*(ntypes+1)/2),
	}, nil
}

// NTypes returns the number of atom types.
func (t *Table) NTypes() int { return t.ntypes }

// Settings returns the global defaults.
func (t *Table) Settings() Settings { return t.settings }

// Finalized returns true if Init has been run since the last modification.
func (t *Table) Finalized() bool { return t.finalized }

// index returns the position of the unordered pair (i, j) in t.entries.
func (t *Table) index(i, j int) int {
	if i > j { i, j = j, i }
	if i < 1 || j > t.ntypes {
		panic(fmt.Sprintf("Internal error: type pair (%d, %d) is outside " +
			"[1, %d].", i, j, t.ntypes))
	}
	return (i-1)*(2*t.ntypes - i + 2)/2 + (j - i)
}

// Entry returns the entry for types i and j. The order of i and j does not
// matter.
func (t *Table) Entry(i, j int) *Entry { return &t.entries[t.index(i, j)] }

// SetCutoffs sets the global LJ cutoff and, optionally, a distinct global
// Coulomb cutoff, which otherwise defaults to the LJ cutoff. Every entry
// whose cutoffs were not explicitly given to Configure picks up the new
// defaults.
func (t *Table) SetCutoffs(cut ...float64) error {
	if len(cut) < 1 || len(cut) > 2 {
		return fmt.Errorf("%w: global settings take one or two cutoffs, " +
			"but %d were given.", ErrConfig, len(cut))
	}
	cutLJ, cutCoul := cut[0], cut[0]
	if len(cut) == 2 { cutCoul = cut[1] }

	if !(cutLJ > 0) {
		return fmt.Errorf("%w: the global LJ cutoff must be positive, " +
			"but is %g.", ErrConfig, cutLJ)
	} else if !(cutCoul > 0) {
		return fmt.Errorf("%w: the global Coulomb cutoff must be " +
			"positive, but is %g.", ErrConfig, cutCoul)
	}

	t.settings.CutLJ, t.settings.CutCoul = cutLJ, cutCoul
	for k := range t.entries {
		e := &t.entries[k]
		if e.Set && !e.cutExplicit {
			e.CutLJ, e.CutCoul = cutLJ, cutCoul
		}
	}
	t.finalized = false

	return nil
}

// SetMix sets the mixing rule used for pairs which are not set explicitly.
func (t *Table) SetMix(mix MixRule) error {
	if !mix.Valid() {
		return fmt.Errorf("%w: %s is not a valid mixing rule.", ErrConfig, mix)
	}
	t.settings.Mix = mix
	t.finalized = false
	return nil
}

// Configure explicitly sets epsilon and sigma for every pair (i, j) with
// ilo <= i <= ihi, jlo <= j <= jhi, and i <= j. cut may hold zero values
// (use the global cutoffs), one value (used for both cutoffs), or two values
// (the LJ cutoff, then the Coulomb cutoff). Nothing is applied if any argument
// is invalid.
func (t *Table) Configure(
	ilo, ihi, jlo, jhi int, epsilon, sigma float64, cut ...float64,
) error {
	if ilo < 1 || ihi > t.ntypes || ilo > ihi {
		return fmt.Errorf("%w: the first type range [%d, %d] is empty or " +
			"outside [1, %d].", ErrConfig, ilo, ihi, t.ntypes)
	} else if jlo < 1 || jhi > t.ntypes || jlo > jhi {
		return fmt.Errorf("%w: the second type range [%d, %d] is empty or " +
			"outside [1, %d].", ErrConfig, jlo, jhi, t.ntypes)
	} else if len(cut) > 2 {
		return fmt.Errorf("%w: pair coefficients take at most two cutoffs, " +
			"but %d were given.", ErrConfig, len(cut))
	}
	if err := checkCoeffs(epsilon, sigma); err != nil { return err }

	cutLJ, cutCoul := t.settings.CutLJ, t.settings.CutCoul
	if len(cut) >= 1 { cutLJ, cutCoul = cut[0], cut[0] }
	if len(cut) == 2 { cutCoul = cut[1] }

	if len(cut) == 0 && !(cutLJ > 0) {
		return fmt.Errorf("%w: no LJ cutoff was given and the global " +
			"LJ cutoff has not been set.", ErrConfig)
	} else if len(cut) == 0 && !(cutCoul > 0) {
		return fmt.Errorf("%w: no Coulomb cutoff was given and the " +
			"global Coulomb cutoff has not been set.", ErrConfig)
	}
	if err := checkCutoffs(cutLJ, cutCoul); err != nil { return err }

	if jhi < ilo {
		return fmt.Errorf("%w: the type ranges [%d, %d] and [%d, %d] " +
			"contain no pairs with i <= j.", ErrConfig, ilo, ihi, jlo, jhi)
	}

	for i := ilo; i <= ihi; i++ {
		for j := max(jlo, i); j <= jhi; j++ {
			e := t.Entry(i, j)
			*e = Entry{
				Epsilon: epsilon, Sigma: sigma,
				CutLJ: cutLJ, CutCoul: cutCoul,
				Set: true, cutExplicit: len(cut) > 0,
			}
		}
	}
	t.finalized = false

	return nil
}

func checkCoeffs(epsilon, sigma float64) error {
	if !(epsilon >= 0) || math.IsInf(epsilon, 0) {
		return fmt.Errorf("%w: epsilon must be non-negative and finite, " +
			"but is %g.", ErrConfig, epsilon)
	} else if !(sigma >= 0) || math.IsInf(sigma, 0) {
		return fmt.Errorf("%w: sigma must be non-negative and finite, " +
			"but is %g.", ErrConfig, sigma)
	}
	return nil
}

func checkCutoffs(cutLJ, cutCoul float64) error {
	if !(cutLJ > 0) || math.IsInf(cutLJ, 0) {
		return fmt.Errorf("%w: the LJ cutoff must be positive and finite, " +
			"but is %g.", ErrConfig, cutLJ)
	} else if !(cutCoul > 0) || math.IsInf(cutCoul, 0) {
		return fmt.Errorf("%w: the Coulomb cutoff must be positive and " +
			"finite, but is %g.", ErrConfig, cutCoul)
	}
	return nil
}

// Restore sets the stored values of the pair (i, j) directly, as read from a
// restart file. The values are checked the same way Configure checks them.
// Cutoffs equal to the current global cutoffs are treated as defaults, so
// the global cutoffs should be restored first with SetCutoffs.
func (t *Table) Restore(
	i, j int, epsilon, sigma, cutLJ, cutCoul float64,
) error {
	if i < 1 || j < 1 || i > t.ntypes || j > t.ntypes {
		return fmt.Errorf("%w: type pair (%d, %d) is outside [1, %d].",
			ErrConfig, i, j, t.ntypes)
	}
	if err := checkCoeffs(epsilon, sigma); err != nil { return err }
	if err := checkCutoffs(cutLJ, cutCoul); err != nil { return err }

	*t.Entry(i, j) = Entry{
		Epsilon: epsilon, Sigma: sigma,
		CutLJ: cutLJ, CutCoul: cutCoul,
		Set: true,
		cutExplicit: cutLJ != t.settings.CutLJ ||
			cutCoul != t.settings.CutCoul,
	}
	t.finalized = false
	return nil
}

// InitOne finalizes the pair (i, j). If the pair was not set explicitly, its
// epsilon, sigma, and cutoffs are mixed from the (i, i) and (j, j) entries;
// otherwise the stored values are kept. The cached squared cutoffs and LJ
// prefactors are then recomputed. It returns the larger of the two cutoffs.
// Calling InitOne repeatedly gives the same result.
func (t *Table) InitOne(i, j int) (float64, error) {
	if i < 1 || j < 1 || i > t.ntypes || j > t.ntypes {
		return 0, fmt.Errorf("%w: type pair (%d, %d) is outside [1, %d].",
			ErrConfig, i, j, t.ntypes)
	}

	e := t.Entry(i, j)
	if !e.Set {
		ei, ej := t.Entry(i, i), t.Entry(j, j)
		if i == j || !ei.Set || !ej.Set {
			return 0, fmt.Errorf("%w: the coefficients for types %d %d " +
				"are not set and cannot be mixed, since every type needs " +
				"explicit same-type coefficients.", ErrPrecondition, i, j)
		}

		mix := t.settings.Mix
		e.Epsilon = mix.energy(ei.Epsilon, ej.Epsilon, ei.Sigma, ej.Sigma)
		e.Sigma = mix.distance(ei.Sigma, ej.Sigma)
		e.CutLJ = mix.distance(ei.CutLJ, ej.CutLJ)
		e.CutCoul = mix.distance(ei.CutCoul, ej.CutCoul)
	}

	e.derive()
	return e.Cut, nil
}

// Init finalizes every pair in the table and returns the largest cutoff of
// any pair.
func (t *Table) Init() (float64, error) {
	cutMax := 0.0
	for i := 1; i <= t.ntypes; i++ {
		for j := i; j <= t.ntypes; j++ {
			cut, err := t.InitOne(i, j)
			if err != nil { return 0, err }
			cutMax = math.Max(cutMax, cut)
		}
	}
	t.finalized = true
	return cutMax, nil
}

// derive computes the cached quantities of e from its user-facing values.
func (e *Entry) derive() {
	e.CutLJSq = e.CutLJ*e.CutLJ
	e.CutCoulSq = e.CutCoul*e.CutCoul
	e.Cut = math.Max(e.CutLJ, e.CutCoul)
	e.CutSq = e.Cut*e.Cut

	sig6 := math.Pow(e.Sigma, 6)
	sig12 := sig6*sig6
	e.LJ1 = 48 * e.Epsilon * sig12
	e.LJ2 = 24 * e.Epsilon * sig6
	e.LJ3 = 4 * e.Epsilon * sig12
	e.LJ4 = 4 * e.Epsilon * sig6
}
