/*package neighbor contains the host-side helpers that surround a pair style:
periodic ghost images, half neighbor lists, and the reverse communication
which folds ghost forces back into their owners.

Neighbor lists store candidates as encoded ints. The low 30 bits are the
particle index and bits 30 and 31 are the bond-exclusion category of the pair.
Always use Index and Special to unpack candidates.
*/
package neighbor

import (
	"fmt"
	"math"

	"github.com/phil-mansfield/dipolesf/lib/particles"
)

const (
	// NSpecial is the number of bond-exclusion categories.
	NSpecial = 4
	// SpecialShift is the bit offset of the exclusion category.
	SpecialShift = 30
	// IndexMask extracts the particle index from a candidate.
	IndexMask = 1<<SpecialShift - 1
)

// Encode packs a particle index and exclusion category into a candidate.
func Encode(j, special int) int {
	return j&IndexMask | (special&(NSpecial - 1))<<SpecialShift
}

// Index returns the particle index of a candidate.
func Index(jenc int) int { return jenc & IndexMask }

// Special returns the exclusion category of a candidate.
func Special(jenc int) int { return (jenc >> SpecialShift) & (NSpecial - 1) }

// List is a half neighbor list. Neigh[i] holds the encoded candidates of the
// owned particle i.
type List struct {
	Neigh [][]int
}

// Pairs returns the total number of candidates in the list.
func (l *List) Pairs() int {
	n := 0
	for i := range l.Neigh { n += len(l.Neigh[i]) }
	return n
}

// SpecialFunc returns the exclusion category of the pair (i, j).
type SpecialFunc func(i, j int) int

// Box is a periodic, axis-aligned simulation domain.
type Box struct {
	Lo, Hi [3]float64
}

// Width returns the side lengths of the box.
func (b Box) Width() [3]float64 {
	return [3]float64{ b.Hi[0] - b.Lo[0], b.Hi[1] - b.Lo[1], b.Hi[2] - b.Lo[2] }
}

// Wrap maps x into the periodic box.
func (b Box) Wrap(x [3]float64) [3]float64 {
	w := b.Width()
	for dim := 0; dim < 3; dim++ {
		dx := math.Mod(x[dim] - b.Lo[dim], w[dim])
		if dx < 0 { dx += w[dim] }
		x[dim] = b.Lo[dim] + dx
		if x[dim] >= b.Hi[dim] { x[dim] = b.Lo[dim] }
	}
	return x
}

// Ghosts returns a copy of p where the first nlocal particles are followed by
// periodic images of every owned particle that lies within cut of the box.
// owner[g - nlocal] is the index of the particle that ghost g images.
func Ghosts(p particles.Particles, nlocal int, box Box, cut float64) (
	ext particles.Particles, owner []int, err error,
) {
	w := box.Width()
	for dim := 0; dim < 3; dim++ {
		if !(w[dim] > 0) {
			return nil, nil, fmt.Errorf("Box dimension %d has non-positive " +
				"width %g.", dim, w[dim])
		} else if cut >= w[dim] {
			return nil, nil, fmt.Errorf("The cutoff, %g, must be smaller " +
				"than every box width, but dimension %d has width %g.",
				cut, dim, w[dim])
		}
	}

	x, err := p.Vec3s(particles.X)
	if err != nil { return nil, nil, err }
	if nlocal < 0 || nlocal > len(x) {
		return nil, nil, fmt.Errorf("nlocal = %d, but there are only %d " +
			"particles.", nlocal, len(x))
	}

	shifts := [][3]float64{ }
	for _, shift := range imageShifts(w) {
		for i := 0; i < nlocal; i++ {
			xs := add(x[i], shift)
			if inHalo(xs, box, cut) {
				owner = append(owner, i)
				shifts = append(shifts, shift)
			}
		}
	}

	ext, err = p.Copy(nlocal + len(owner))
	if err != nil { return nil, nil, err }

	to := make([]int, len(owner))
	for k := range to { to[k] = nlocal + k }
	for _, name := range p.Names() {
		if err := p[name].Transfer(ext, owner, to); err != nil {
			return nil, nil, err
		}
	}

	xExt, err := ext.Vec3s(particles.X)
	if err != nil { return nil, nil, err }
	for k := range owner {
		xExt[nlocal + k] = add(xExt[nlocal + k], shifts[k])
	}
	// Ghost accumulators start empty.
	for _, name := range []string{ particles.F, particles.Torque } {
		acc, err := ext.Vec3s(name)
		if err != nil { continue }
		for k := nlocal; k < len(acc); k++ { acc[k] = [3]float64{ } }
	}

	return ext, owner, nil
}

// imageShifts returns the 26 non-zero lattice translations of the box.
func imageShifts(w [3]float64) [][3]float64 {
	out := make([][3]float64, 0, 26)
	for ix := -1; ix <= 1; ix++ {
		for iy := -1; iy <= 1; iy++ {
			for iz := -1; iz <= 1; iz++ {
				if ix == 0 && iy == 0 && iz == 0 { continue }
				out = append(out, [3]float64{
					float64(ix)*w[0], float64(iy)*w[1], float64(iz)*w[2],
				})
			}
		}
	}
	return out
}

func inHalo(x [3]float64, box Box, cut float64) bool {
	for dim := 0; dim < 3; dim++ {
		if x[dim] < box.Lo[dim] - cut || x[dim] >= box.Hi[dim] + cut {
			return false
		}
	}
	return true
}

func add(x, y [3]float64) [3]float64 {
	return [3]float64{ x[0] + y[0], x[1] + y[1], x[2] + y[2] }
}

// Build returns a half neighbor list for the first nlocal particles of x with
// every candidate closer than cut. Pairs of owned particles appear once. If
// newton is true, each owned-ghost pair also appears once: it is kept only
// if the ghost lies above the owned particle in z, then y, then x. Otherwise
// every owned-ghost pair is kept. special may be nil, in which case every
// pair is in category 0.
func Build(
	x [][3]float64, nlocal int, cut float64, newton bool, special SpecialFunc,
) (*List, error) {
	if nlocal < 0 || nlocal > len(x) {
		return nil, fmt.Errorf("nlocal = %d, but there are only %d " +
			"particles.", nlocal, len(x))
	} else if len(x) > IndexMask + 1 {
		return nil, fmt.Errorf("%d particles cannot be indexed by a " +
			"neighbor list, which holds at most %d.", len(x), IndexMask + 1)
	} else if !(cut > 0) || math.IsInf(cut, 0) {
		return nil, fmt.Errorf("The neighbor cutoff must be positive and " +
			"finite, but is %g.", cut)
	}

	cutSq := cut*cut
	list := &List{ Neigh: make([][]int, nlocal) }

	for i := 0; i < nlocal; i++ {
		xi := x[i]
		for j := i + 1; j < len(x); j++ {
			if j >= nlocal && newton && !above(x[j], xi) { continue }

			dx, dy, dz := xi[0] - x[j][0], xi[1] - x[j][1], xi[2] - x[j][2]
			if dx*dx + dy*dy + dz*dz >= cutSq { continue }

			sb := 0
			if special != nil { sb = special(i, j) }
			list.Neigh[i] = append(list.Neigh[i], Encode(j, sb))
		}
	}

	return list, nil
}

// above is the coordinate tie-break which decides which side of an
// owned-ghost pair holds it.
func above(xj, xi [3]float64) bool {
	if xj[2] != xi[2] { return xj[2] > xi[2] }
	if xj[1] != xi[1] { return xj[1] > xi[1] }
	return xj[0] > xi[0]
}

// ReverseComm adds the accumulated values of every ghost to its owner and
// clears the ghost. owner is the array returned by Ghosts.
func ReverseComm(acc [][3]float64, nlocal int, owner []int) error {
	if len(acc) != nlocal + len(owner) {
		return fmt.Errorf("The accumulator has %d entries, but there are " +
			"%d owned particles and %d ghosts.", len(acc), nlocal, len(owner))
	}
	for k, i := range owner {
		g := nlocal + k
		acc[i] = add(acc[i], acc[g])
		acc[g] = [3]float64{ }
	}
	return nil
}

// ReverseCommScalar is ReverseComm for per-particle scalars.
func ReverseCommScalar(acc []float64, nlocal int, owner []int) error {
	if len(acc) != nlocal + len(owner) {
		return fmt.Errorf("The accumulator has %d entries, but there are " +
			"%d owned particles and %d ghosts.", len(acc), nlocal, len(owner))
	}
	for k, i := range owner {
		g := nlocal + k
		acc[i] += acc[g]
		acc[g] = 0
	}
	return nil
}
