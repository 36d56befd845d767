package pair

/* compute.go contains the DipoleSF pair style and its accumulation pass. */

import (
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/phil-mansfield/dipolesf/lib/neighbor"
	"github.com/phil-mansfield/dipolesf/lib/particles"
)

// Globals holds the physical constants and accumulation settings shared by all
// pairs.
type Globals struct {
	// QQrd2e converts q^2/distance into energy units.
	QQrd2e float64
	// SpecialCoul and SpecialLJ scale the two force families of a pair by
	// its bond-exclusion category: 0 for unbonded pairs, then 1-2, 1-3,
	// and 1-4 neighbors.
	SpecialCoul, SpecialLJ [neighbor.NSpecial]float64
	// NewtonPair is true if each pair is counted once across owned and
	// ghost particles, so forces on ghosts must be accumulated and later
	// returned to their owners.
	NewtonPair bool
}

// DefaultGlobals returns reduced units with no bond exclusions and
// NewtonPair enabled.
func DefaultGlobals() Globals {
	return Globals{
		QQrd2e: 1,
		SpecialCoul: [neighbor.NSpecial]float64{ 1, 1, 1, 1 },
		SpecialLJ: [neighbor.NSpecial]float64{ 1, 1, 1, 1 },
		NewtonPair: true,
	}
}

// EvalFlags requests optional outputs from Compute.
type EvalFlags uint8
const (
	// Energy requests pairwise energies.
	Energy EvalFlags = 1 << iota
	// Virial requests virial contributions.
	Virial
)

// Tally receives the energy and virial contributions of each evaluated pair.
// f is the force on i and del is x[i] - x[j]. Implementations decide how to
// split contributions between owned and ghost particles using nlocal and
// newton.
type Tally interface {
	TallyXYZ(i, j, nlocal int, newton bool, evdwl, ecoul float64, f, del r3.Vec)
}

// NeighborRequest describes the neighbor list a host must supply to Compute.
type NeighborRequest struct {
	// Cut is the largest interaction range of any type pair.
	Cut float64
	// Newton is true if the list should hold each local-ghost pair once.
	Newton bool
}

// System is a read-only view of the particle state consumed by Compute.
// Indices below NLocal are owned; the rest are ghosts.
type System struct {
	X [][3]float64
	Type []int
	Q []float64
	Mu [][4]float64
	NLocal int
}

// Buffers holds the accumulators written by Compute. Compute only ever adds
// to them.
type Buffers struct {
	F, Torque [][3]float64
}

// Zero clears the accumulators.
func (buf *Buffers) Zero() {
	for i := range buf.F { buf.F[i] = [3]float64{ } }
	for i := range buf.Torque { buf.Torque[i] = [3]float64{ } }
}

// SystemOf returns views of the fields of p that Compute reads and writes.
// The first nlocal particles are owned.
func SystemOf(p particles.Particles, nlocal int) (*System, *Buffers, error) {
	if err := requireAttributes(p); err != nil { return nil, nil, err }

	sys, buf := &System{ NLocal: nlocal }, &Buffers{ }
	var err error
	if sys.X, err = p.Vec3s(particles.X); err != nil { return nil, nil, err }
	if sys.Type, err = p.Ints(particles.Type); err != nil { return nil, nil, err }
	if sys.Q, err = p.Float64s(particles.Q); err != nil { return nil, nil, err }
	if sys.Mu, err = p.Vec4s(particles.Mu); err != nil { return nil, nil, err }
	if buf.F, err = p.Vec3s(particles.F); err != nil { return nil, nil, err }
	if buf.Torque, err = p.Vec3s(particles.Torque); err != nil {
		return nil, nil, err
	}

	n, err := p.Len()
	if err != nil { return nil, nil, err }
	if nlocal < 0 || nlocal > n {
		return nil, nil, fmt.Errorf("nlocal = %d, but there are only %d " +
			"particles.", nlocal, n)
	}

	return sys, buf, nil
}

// DipoleSF is the dipole/sf pair style.
type DipoleSF struct {
	Table *Table
	Globals Globals

	sites []Site
}

// New returns a DipoleSF style for ntypes atom types with the given globals.
func New(ntypes int, g Globals) (*DipoleSF, error) {
	t, err := NewTable(ntypes)
	if err != nil { return nil, err }
	return &DipoleSF{ Table: t, Globals: g }, nil
}

func requireAttributes(p particles.Particles) error {
	if err := p.Require(particles.Q, particles.Mu, particles.Torque); err != nil {
		return fmt.Errorf("%w: pair dipole/sf requires atom attributes q, " +
			"mu, torque. %s", ErrPrecondition, err.Error())
	}
	return nil
}

// InitStyle checks that the particle model carries the charge, dipole, and
// torque attributes the style needs.
func (ps *DipoleSF) InitStyle(p particles.Particles) error {
	return requireAttributes(p)
}

// Init finalizes the parameter table and returns the neighbor list the host
// needs to build.
func (ps *DipoleSF) Init() (NeighborRequest, error) {
	for k := range ps.Globals.SpecialCoul {
		sc, sl := ps.Globals.SpecialCoul[k], ps.Globals.SpecialLJ[k]
		if sc < 0 || sc > 1 || sl < 0 || sl > 1 {
			return NeighborRequest{ }, fmt.Errorf("%w: special bond factors " +
				"must be in [0, 1], but category %d has Coulomb factor %g " +
				"and LJ factor %g.", ErrConfig, k, sc, sl)
		}
	}

	cut, err := ps.Table.Init()
	if err != nil { return NeighborRequest{ }, err }
	return NeighborRequest{ Cut: cut, Newton: ps.Globals.NewtonPair }, nil
}

// Compute evaluates every pair in list and adds the resulting forces and
// torques to out. Contributions to particle j are skipped if j is a ghost and
// Globals.NewtonPair is false. If tl is non-nil and flags is non-zero, every
// evaluated pair is also passed to tl. Compute returns the number of pairs
// that were inside their cutoff.
func (ps *DipoleSF) Compute(
	sys *System, list *neighbor.List, out *Buffers, tl Tally, flags EvalFlags,
) (int, error) {
	if !ps.Table.Finalized() {
		return 0, fmt.Errorf("%w: the pair table must be initialized with " +
			"Init before Compute is called.", ErrPrecondition)
	}

	n := len(sys.X)
	if len(sys.Type) != n || len(sys.Q) != n || len(sys.Mu) != n ||
		len(out.F) != n || len(out.Torque) != n {
		return 0, fmt.Errorf("%w: particle arrays have inconsistent " +
			"lengths.", ErrPrecondition)
	} else if len(list.Neigh) > sys.NLocal {
		return 0, fmt.Errorf("%w: the neighbor list has %d entries, but " +
			"only %d particles are local.", ErrPrecondition,
			len(list.Neigh), sys.NLocal)
	}

	ps.updateSites(sys)

	g := &ps.Globals
	energy := flags&Energy != 0
	evflag := tl != nil && flags != 0
	npairs := 0

	for i, jlist := range list.Neigh {
		xi := sys.X[i]
		itype := sys.Type[i]
		si := &ps.sites[i]

		for _, jenc := range jlist {
			sb, j := neighbor.Special(jenc), neighbor.Index(jenc)

			del := r3.Vec{
				X: xi[0] - sys.X[j][0],
				Y: xi[1] - sys.X[j][1],
				Z: xi[2] - sys.X[j][2],
			}
			rsq := r3.Norm2(del)
			e := ps.Table.Entry(itype, sys.Type[j])
			if rsq >= e.CutSq { continue }

			s := Scale{ Coul: g.SpecialCoul[sb]*g.QQrd2e, LJ: g.SpecialLJ[sb] }
			res := Evaluate(si, &ps.sites[j], del, rsq, e, s, energy)
			npairs++

			add(&out.F[i], res.F)
			add(&out.Torque[i], res.TorqueI)
			if g.NewtonPair || j < sys.NLocal {
				add(&out.F[j], r3.Scale(-1, res.F))
				add(&out.Torque[j], res.TorqueJ)
			}

			if evflag {
				tl.TallyXYZ(i, j, sys.NLocal, g.NewtonPair,
					res.EVdwl, res.ECoul, res.F, del)
			}
		}
	}

	return npairs, nil
}

// updateSites recomputes the per-particle capability flags for this pass.
func (ps *DipoleSF) updateSites(sys *System) {
	n := len(sys.X)
	if cap(ps.sites) < n {
		ps.sites = make([]Site, n)
	}
	ps.sites = ps.sites[:n]
	for i := range ps.sites {
		ps.sites[i] = NewSite(sys.Q[i], sys.Mu[i])
	}
}

func add(acc *[3]float64, v r3.Vec) {
	acc[0] += v.X
	acc[1] += v.Y
	acc[2] += v.Z
}
