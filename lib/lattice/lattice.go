/*package lattice generates simple cubic starting configurations of charged,
dipolar particles.
*/
package lattice

import (
	"fmt"

	"github.com/phil-mansfield/dipolesf/lib/neighbor"
	"github.com/phil-mansfield/dipolesf/lib/particles"
)

// Config describes a lattice. Charge and Dipole are indexed by type - 1.
type Config struct {
	// Cells is the number of sites along each side.
	Cells int
	Spacing float64
	NTypes int
	// Charge and Dipole give the charge and dipole magnitude of each type.
	// A type with zero dipole magnitude has an inactive dipole.
	Charge, Dipole []float64
	// Seed seeds the dipole orientations.
	Seed uint64
}

// Check returns an error describing the first invalid field of c.
func (c *Config) Check() error {
	if c.Cells < 1 {
		return fmt.Errorf("Lattice.Cells must be positive, but is %d.", c.Cells)
	} else if !(c.Spacing > 0) {
		return fmt.Errorf("Lattice.Spacing must be positive, but is %g.",
			c.Spacing)
	} else if c.NTypes < 1 {
		return fmt.Errorf("The number of types must be positive, but is %d.",
			c.NTypes)
	} else if len(c.Charge) != c.NTypes {
		return fmt.Errorf("Lattice.Charge has %d values, but there are %d " +
			"types.", len(c.Charge), c.NTypes)
	} else if len(c.Dipole) != c.NTypes {
		return fmt.Errorf("Lattice.Dipole has %d values, but there are %d " +
			"types.", len(c.Dipole), c.NTypes)
	}
	for i, d := range c.Dipole {
		if d < 0 {
			return fmt.Errorf("Lattice.Dipole must be non-negative, but " +
				"type %d has magnitude %g.", i + 1, d)
		}
	}
	return nil
}

// New creates Cells^3 particles at the centers of the lattice cells, along
// with the periodic box that contains them. Site IDs follow a z-major order
// and types cycle through 1 to NTypes by ID.
func New(c *Config) (particles.Particles, neighbor.Box, error) {
	if err := c.Check(); err != nil { return nil, neighbor.Box{ }, err }

	order := NewZMajorUnigrid(c.Cells)
	rng := NewRNG(c.Seed)

	n := c.Cells*c.Cells*c.Cells
	x := make([][3]float64, n)
	types := make([]int, n)
	q := make([]float64, n)
	mu := make([][4]float64, n)

	for id := 0; id < n; id++ {
		idx := order.IDToIndex(uint64(id))
		for dim := 0; dim < 3; dim++ {
			x[id][dim] = (float64(idx[dim]) + 0.5)*c.Spacing
		}

		typ := 1 + id%c.NTypes
		types[id] = typ
		q[id] = c.Charge[typ - 1]

		mag := c.Dipole[typ - 1]
		if mag > 0 {
			dir := rng.UnitVector()
			mu[id] = [4]float64{ mag*dir[0], mag*dir[1], mag*dir[2], mag }
		}
	}

	p, err := particles.New(x, types, q, mu)
	if err != nil { return nil, neighbor.Box{ }, err }

	width := float64(c.Cells)*c.Spacing
	box := neighbor.Box{ Hi: [3]float64{ width, width, width } }
	return p, box, nil
}
