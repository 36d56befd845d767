package catio

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/phil-mansfield/dipolesf/lib/particles"
)

// Particle catalogs have the columns:
//
//     type q x y z mux muy muz
//
// A particle's dipole is active if its dipole vector is non-zero.
const (
	TypeColumn = iota
	QColumn
	XColumn
	MuColumn = XColumn + 3
	NColumns = MuColumn + 3
)

// ReadParticles reads a particle catalog from rd. Types must be integers in
// [1, ntypes].
func ReadParticles(
	rd io.Reader, ntypes int, config ...TextConfig,
) (particles.Particles, error) {
	columns := make([]int, NColumns)
	for i := range columns { columns[i] = i }

	cols, err := ReadFloat64s(rd, columns, config...)
	if err != nil { return nil, err }

	n := len(cols[TypeColumn])
	if n == 0 {
		return nil, fmt.Errorf("The particle catalog is empty.")
	}

	x := make([][3]float64, n)
	types := make([]int, n)
	mu := make([][4]float64, n)

	for i := 0; i < n; i++ {
		typ := cols[TypeColumn][i]
		if typ != math.Trunc(typ) || typ < 1 || typ > float64(ntypes) {
			return nil, fmt.Errorf("Particle %d has type %g, but types " +
				"must be integers in [1, %d].", i, typ, ntypes)
		}
		types[i] = int(typ)

		for dim := 0; dim < 3; dim++ {
			x[i][dim] = cols[XColumn + dim][i]
			mu[i][dim] = cols[MuColumn + dim][i]
		}
		mu[i][3] = math.Sqrt(mu[i][0]*mu[i][0] + mu[i][1]*mu[i][1] +
			mu[i][2]*mu[i][2])
	}

	return particles.New(x, types, cols[QColumn], mu)
}

// ReadParticleFile reads the particle catalog fname.
func ReadParticleFile(
	fname string, ntypes int, config ...TextConfig,
) (particles.Particles, error) {
	f, err := os.Open(fname)
	if err != nil { return nil, err }
	defer f.Close()

	p, err := ReadParticles(f, ntypes, config...)
	if err != nil {
		return nil, fmt.Errorf("Could not read particle file %s: %w",
			fname, err)
	}
	return p, nil
}
