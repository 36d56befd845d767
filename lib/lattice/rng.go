package lattice

import (
	"math"
)

var (
	xorshiftMaxUint = float64(math.MaxUint32)
)

// RNG is an xorshift random number generator. It is not thread safe.
type RNG struct {
	w, x, y, z uint32
}

// NewRNG creates an RNG with a given seed.
func NewRNG(seed uint64) *RNG {
	return &RNG{ uint32(seed), 123456789, 362436069, 521288629 }
}

// Uniform generates a single random number in the range [0, 1)
func (gen *RNG) Uniform() float64 {
	t := gen.x ^ (gen.x << 11)
	gen.x, gen.y, gen.z = gen.y, gen.z, gen.w
	gen.w = gen.w ^ (gen.w >> 19) ^ (t ^ (t >> 8))
	res := float64(math.MaxUint32 - gen.w) / xorshiftMaxUint
	if res == 1.0 { return gen.Uniform() }
	return res
}

// UnitVector returns a direction drawn uniformly from the unit sphere.
func (gen *RNG) UnitVector() [3]float64 {
	cosTheta := 2*gen.Uniform() - 1
	sinTheta := math.Sqrt(1 - cosTheta*cosTheta)
	phi := 2*math.Pi*gen.Uniform()
	return [3]float64{
		sinTheta*math.Cos(phi), sinTheta*math.Sin(phi), cosTheta,
	}
}
