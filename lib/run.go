package lib

/* run.go contains the core functions of dipolesf's "compute" and "restart"
modes. */

import (
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/phil-mansfield/dipolesf/lib/catio"
	"github.com/phil-mansfield/dipolesf/lib/config"
	"github.com/phil-mansfield/dipolesf/lib/lattice"
	"github.com/phil-mansfield/dipolesf/lib/neighbor"
	"github.com/phil-mansfield/dipolesf/lib/pair"
	"github.com/phil-mansfield/dipolesf/lib/particles"
	"github.com/phil-mansfield/dipolesf/lib/restart"
	"github.com/phil-mansfield/dipolesf/lib/tally"
	"github.com/phil-mansfield/dipolesf/lib/thermo"
)

// Report summarizes a single compute pass.
type Report struct {
	NLocal, NGhost, Pairs int
	Cut float64
	Newton bool

	EVdwl, ECoul float64
	Virial [6]float64
	Pressure float64
	// PrincipalVirial holds the eigenvalues of the virial tensor in
	// ascending order.
	PrincipalVirial [3]float64
	// MaxForce and MaxTorque are the largest magnitudes on any owned
	// particle.
	MaxForce, MaxTorque float64
	// PerAtom holds the pair energy of each owned particle. Ghost energies
	// have been added to their owners, so PerAtom sums to EVdwl + ECoul.
	PerAtom []float64

	// Run is the thermo run ID, or uuid.Nil if no database was written.
	Run uuid.UUID
}

// Compute builds the lattice described by c and runs one accumulation pass
// over it, writing the outputs which c asks for. deck is the text of the
// input deck, which is stored alongside thermo output.
func Compute(c *config.Config, deck string) (*Report, error) {
	p, box, err := System(c)
	if err != nil { return nil, err }
	nlocal, err := p.Len()
	if err != nil { return nil, err }

	ps, err := c.Build()
	if err != nil { return nil, err }
	if err := ps.InitStyle(p); err != nil { return nil, err }
	req, err := ps.Init()
	if err != nil { return nil, err }

	ext, owner, err := neighbor.Ghosts(p, nlocal, box, req.Cut)
	if err != nil { return nil, err }
	sys, buf, err := pair.SystemOf(ext, nlocal)
	if err != nil { return nil, err }
	list, err := neighbor.Build(sys.X, nlocal, req.Cut, req.Newton, nil)
	if err != nil { return nil, err }

	acc := tally.New(len(sys.X))
	npairs, err := ps.Compute(sys, list, buf, acc, pair.Energy | pair.Virial)
	if err != nil { return nil, err }

	if req.Newton {
		if err := neighbor.ReverseComm(buf.F, nlocal, owner); err != nil {
			return nil, err
		}
		if err := neighbor.ReverseComm(buf.Torque, nlocal, owner); err != nil {
			return nil, err
		}
		err := neighbor.ReverseCommScalar(acc.PerAtom, nlocal, owner)
		if err != nil { return nil, err }
	}

	w := box.Width()
	r := &Report{
		NLocal: nlocal, NGhost: len(owner), Pairs: npairs,
		Cut: req.Cut, Newton: req.Newton,
		EVdwl: acc.EVdwl, ECoul: acc.ECoul,
		Virial: acc.Virial(), Pressure: acc.Pressure(w[0]*w[1]*w[2]),
		MaxForce: maxNorm(buf.F[:nlocal]),
		MaxTorque: maxNorm(buf.Torque[:nlocal]),
		PerAtom: acc.PerAtom[:nlocal],
	}
	if r.PrincipalVirial, err = acc.PrincipalVirial(); err != nil {
		return nil, err
	}

	if c.Output.Restart != "" {
		err := restart.WriteFile(c.Output.Restart, ps.Table, c.Output.Compress)
		if err != nil { return nil, err }
	}

	if c.Output.ThermoDB != "" {
		r.Run, err = recordThermo(c.Output.ThermoDB, deck, npairs, acc)
		if err != nil { return nil, err }
	}

	return r, nil
}

// System creates the particles and periodic box described by c. Catalog
// particles are wrapped into the box.
func System(c *config.Config) (particles.Particles, neighbor.Box, error) {
	switch {
	case c.HasLattice():
		return lattice.New(c.LatticeConfig())
	case c.HasInput():
		box, err := c.Box()
		if err != nil { return nil, box, err }
		p, err := catio.ReadParticleFile(c.Input.Particles, c.Settings.NTypes)
		if err != nil { return nil, box, err }

		x, err := p.Vec3s(particles.X)
		if err != nil { return nil, box, err }
		for i := range x { x[i] = box.Wrap(x[i]) }
		return p, box, nil
	default:
		return nil, neighbor.Box{ }, fmt.Errorf("The compute mode needs a " +
			"Lattice section or an Input section.")
	}
}

func recordThermo(
	fname, deck string, npairs int, acc *tally.Accumulator,
) (uuid.UUID, error) {
	db, err := thermo.Open(fname)
	if err != nil { return uuid.Nil, err }
	defer db.Close()

	run, err := db.StartRun(deck)
	if err != nil { return uuid.Nil, err }
	if err := db.Record(run, thermo.SampleOf(0, npairs, acc)); err != nil {
		return uuid.Nil, err
	}
	return run, nil
}

func maxNorm(x [][3]float64) float64 {
	max := 0.0
	for i := range x {
		r := math.Sqrt(x[i][0]*x[i][0] + x[i][1]*x[i][1] + x[i][2]*x[i][2])
		if r > max { max = r }
	}
	return max
}

// RestartSummary describes the contents of a restart file.
type RestartSummary struct {
	NTypes int
	Settings pair.Settings
	// SetPairs is the number of explicitly set pairs.
	SetPairs int
	// Cut is the largest cutoff of the finalized table. It is zero if the
	// table couldn't be finalized, in which case InitErr explains why.
	Cut float64
	InitErr error
	Table *pair.Table
}

// SummarizeRestart reads the restart file fname on every member of comm.
func SummarizeRestart(fname string, comm restart.Comm) (*RestartSummary,
	error) {
	t, err := restart.ReadFile(fname, comm)
	if err != nil { return nil, err }

	s := &RestartSummary{
		NTypes: t.NTypes(), Settings: t.Settings(), Table: t,
	}
	for i := 1; i <= s.NTypes; i++ {
		for j := i; j <= s.NTypes; j++ {
			if t.Entry(i, j).Set { s.SetPairs++ }
		}
	}

	s.Cut, s.InitErr = t.Init()
	return s, nil
}
