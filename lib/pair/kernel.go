package pair

/* kernel.go contains the per-pair force, torque, and energy evaluation. */

import (
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Caps is a set of flags describing which electrostatic moments a particle
// carries.
type Caps uint8
const (
	HasCharge Caps = 1 << iota
	HasDipole
)

// CapsOf returns the capabilities of a particle with charge q and dipole
// state mu. The fourth component of mu, not the dipole vector, decides
// whether the dipole is active.
func CapsOf(q float64, mu [4]float64) Caps {
	var c Caps
	if q != 0 { c |= HasCharge }
	if mu[3] > 0 { c |= HasDipole }
	return c
}

// Site is the state of one particle as seen by the kernel.
type Site struct {
	Q float64
	Mu r3.Vec
	Caps Caps
}

// NewSite creates a Site from a charge and 4-component dipole state.
func NewSite(q float64, mu [4]float64) Site {
	return Site{ q, r3.Vec{ X: mu[0], Y: mu[1], Z: mu[2] }, CapsOf(q, mu) }
}

// Scale holds the multipliers applied to the two force families of a pair.
// Coul includes both the bond-exclusion factor and the Coulomb energy
// conversion constant; LJ is the bond-exclusion factor alone.
type Scale struct {
	Coul, LJ float64
}

// Result is the outcome of evaluating one pair.
type Result struct {
	// F is the force on the first particle. The second receives -F.
	F r3.Vec
	// TorqueI and TorqueJ are the torques on the first and second particles.
	TorqueI, TorqueJ r3.Vec
	// ECoul and EVdwl are only computed when energies are requested.
	ECoul, EVdwl float64
}

// Evaluate computes the interaction between sites a and b. del is the
// position of a minus the position of b and rsq is its squared length. Each
// force family is only evaluated inside its own cutoff from e, which must have
// been finalized by Table.InitOne. Energies are computed only if energy is
// true.
func Evaluate(
	a, b *Site, del r3.Vec, rsq float64, e *Entry, s Scale, energy bool,
) Result {
	var res Result
	r2inv := 1 / rsq
	rinv := math.Sqrt(r2inv)

	if rsq < e.CutCoulSq {
		f, ti, tj, ecoul := coulomb(a, b, del, rsq, r2inv, rinv, e, energy)
		res.F = r3.Scale(s.Coul, f)
		res.TorqueI = r3.Scale(s.Coul, ti)
		res.TorqueJ = r3.Scale(s.Coul, tj)
		res.ECoul = s.Coul*ecoul
	}

	if rsq < e.CutLJSq {
		flj, evdwl := lennardJones(rsq, r2inv, e, energy)
		res.F = r3.Add(res.F, r3.Scale(s.LJ*flj, del))
		res.EVdwl = s.LJ*evdwl
	}

	return res
}

// coulomb sums the charge-charge, dipole-dipole, dipole-charge, and
// charge-dipole terms which apply to the pair. The returned force is a full
// vector, unlike the LJ force.
func coulomb(
	a, b *Site, del r3.Vec, rsq, r2inv, rinv float64, e *Entry, energy bool,
) (f, ti, tj r3.Vec, ecoul float64) {
	rc2inv := 1 / e.CutCoulSq
	// x2 = (r/rc)^2, x3 = (r/rc)^3
	x2 := rsq*rc2inv
	x3 := x2*math.Sqrt(x2)
	r3inv := r2inv*rinv
	r5inv := r3inv*r2inv

	if a.Caps&HasCharge != 0 && b.Caps&HasCharge != 0 {
		qq := a.Q*b.Q
		f = r3.Scale(qq*rinv*(r2inv - rc2inv), del)
		if energy {
			shift := 1 - math.Sqrt(x2)
			ecoul += qq*rinv*shift*shift
		}
	}

	var pidotr, pjdotr float64
	if a.Caps&HasDipole != 0 { pidotr = r3.Dot(a.Mu, del) }
	if b.Caps&HasDipole != 0 { pjdotr = r3.Dot(b.Mu, del) }

	if a.Caps&HasDipole != 0 && b.Caps&HasDipole != 0 {
		pdotp := r3.Dot(a.Mu, b.Mu)
		afac := 1 - x2*x2
		bfac := 1 - 4*x3 + 3*x2*x2

		pre1 := afac*(pdotp - 3*r2inv*pidotr*pjdotr)
		presf := 2*r2inv*pidotr*pjdotr
		bf := r3.Add(r3.Scale(pjdotr, a.Mu), r3.Scale(pidotr, b.Mu))
		bf = r3.Sub(bf, r3.Scale(presf, del))
		af := r3.Scale(pre1, del)
		f = r3.Add(f, r3.Scale(3*r5inv, r3.Add(af, r3.Scale(bfac, bf))))

		cross := r3.Scale(-bfac*r3inv, r3.Cross(a.Mu, b.Mu))
		ti = r3.Add(ti, r3.Add(cross,
			r3.Scale(3*bfac*r5inv*pjdotr, r3.Cross(a.Mu, del))))
		tj = r3.Add(tj, r3.Sub(
			r3.Scale(3*bfac*r5inv*pidotr, r3.Cross(b.Mu, del)), cross))

		if energy {
			ecoul += bfac*(r3inv*pdotp - 3*r5inv*pidotr*pjdotr)
		}
	}

	// pqfac = 1 - 3(r/rc)^2 + 2(r/rc)^3 vanishes at the cutoff along with
	// its first derivative.
	pqfac := 1 - 3*x2 + 2*x3

	if a.Caps&HasDipole != 0 && b.Caps&HasCharge != 0 {
		pre1 := 3*b.Q*r5inv*pidotr*(1 - x2)
		pre2 := b.Q*r3inv*pqfac
		f = r3.Add(f, r3.Sub(r3.Scale(pre2, a.Mu), r3.Scale(pre1, del)))
		ti = r3.Add(ti, r3.Scale(pre2, r3.Cross(a.Mu, del)))
		if energy {
			ecoul -= pre2*pidotr
		}
	}

	if b.Caps&HasDipole != 0 && a.Caps&HasCharge != 0 {
		pre1 := 3*a.Q*r5inv*pjdotr*(1 - x2)
		pre2 := a.Q*r3inv*pqfac
		f = r3.Add(f, r3.Sub(r3.Scale(pre1, del), r3.Scale(pre2, b.Mu)))
		tj = r3.Sub(tj, r3.Scale(pre2, r3.Cross(b.Mu, del)))
		if energy {
			ecoul += pre2*pjdotr
		}
	}

	return f, ti, tj, ecoul
}

// lennardJones returns the shifted-force 12-6 force divided by r, so it can
// multiply the separation vector directly, and the matching energy. Both the
// force and the energy vanish at the cutoff.
func lennardJones(
	rsq, r2inv float64, e *Entry, energy bool,
) (flj, evdwl float64) {
	r6inv := r2inv*r2inv*r2inv
	forceCut := r6inv*(e.LJ1*r6inv - e.LJ2)*r2inv

	rc2inv := 1 / e.CutLJSq
	rc6inv := rc2inv*rc2inv*rc2inv
	forceShift := (e.LJ1*rc6inv - e.LJ2)*rc6inv*rc2inv

	flj = forceCut - forceShift

	if energy {
		evdwl = r6inv*(e.LJ3*r6inv - e.LJ4) +
			rc6inv*(6*e.LJ3*rc6inv - 3*e.LJ4)*rsq*rc2inv +
			rc6inv*(-7*e.LJ3*rc6inv + 4*e.LJ4)
	}

	return flj, evdwl
}
