/*package tally accumulates the global and per-particle energies and virial of
a pair style's compute pass.

An Accumulator follows the usual half-list convention: if newton is on, each
pair's full contribution is added once. Otherwise, each owned member of the
pair receives half.
*/
package tally

import (
	"fmt"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/spatial/r3"
)

// Accumulator implements pair.Tally.
type Accumulator struct {
	// EVdwl and ECoul are the global LJ and Coulomb energies.
	EVdwl, ECoul float64
	// PerAtom holds per-particle energies. It is nil unless requested.
	PerAtom []float64

	virial *mat.SymDense
}

// New returns an empty Accumulator. If n > 0, per-particle energies are
// tracked for n particles.
func New(n int) *Accumulator {
	acc := &Accumulator{ virial: mat.NewSymDense(3, nil) }
	if n > 0 { acc.PerAtom = make([]float64, n) }
	return acc
}

// Reset zeroes all accumulated values.
func (acc *Accumulator) Reset() {
	acc.EVdwl, acc.ECoul = 0, 0
	for i := range acc.PerAtom { acc.PerAtom[i] = 0 }
	acc.virial.Zero()
}

// TallyXYZ adds the contribution of the pair (i, j). f is the force on i and
// del is x[i] - x[j].
func (acc *Accumulator) TallyXYZ(
	i, j, nlocal int, newton bool, evdwl, ecoul float64, f, del r3.Vec,
) {
	// Weight of each member of the pair.
	wi, wj := 0.0, 0.0
	if newton {
		wi = 1
	} else {
		if i < nlocal { wi = 0.5 }
		if j < nlocal { wj = 0.5 }
	}
	w := wi + wj

	acc.EVdwl += w*evdwl
	acc.ECoul += w*ecoul

	if acc.PerAtom != nil {
		half := 0.5*(evdwl + ecoul)
		if (newton || i < nlocal) && i < len(acc.PerAtom) {
			acc.PerAtom[i] += half
		}
		if (newton || j < nlocal) && j < len(acc.PerAtom) {
			acc.PerAtom[j] += half
		}
	}

	d := [3]float64{ del.X, del.Y, del.Z }
	fv := [3]float64{ f.X, f.Y, f.Z }
	for a := 0; a < 3; a++ {
		for b := a; b < 3; b++ {
			acc.virial.SetSym(a, b, acc.virial.At(a, b) + w*d[a]*fv[b])
		}
	}
}

// Virial returns the global virial in the order xx, yy, zz, xy, xz, yz.
func (acc *Accumulator) Virial() [6]float64 {
	v := acc.virial
	return [6]float64{
		v.At(0, 0), v.At(1, 1), v.At(2, 2), v.At(0, 1), v.At(0, 2), v.At(1, 2),
	}
}

// Tensor returns a copy of the global virial tensor.
func (acc *Accumulator) Tensor() *mat.SymDense {
	out := mat.NewSymDense(3, nil)
	out.CopySym(acc.virial)
	return out
}

// Pressure returns the pair contribution to the pressure of a system with the
// given volume: the trace of the virial over 3V.
func (acc *Accumulator) Pressure(volume float64) float64 {
	return mat.Trace(acc.virial) / (3*volume)
}

// PrincipalVirial returns the eigenvalues of the virial tensor in ascending
// order.
func (acc *Accumulator) PrincipalVirial() ([3]float64, error) {
	eig := &mat.EigenSym{ }
	if ok := eig.Factorize(acc.virial, false); !ok {
		return [3]float64{ }, fmt.Errorf("Eigendecomposition of the " +
			"virial %v failed.", acc.Virial())
	}
	val := eig.Values(nil)
	return [3]float64{ val[0], val[1], val[2] }, nil
}
