/*package particles contains the host-side particle container: a set of named
per-particle fields which pair styles read from and accumulate into.

The conventional field names are:

  "x"      - positions, [3]float64
  "type"   - atom types in [1, ntypes], int
  "q"      - charges, float64
  "mu"     - dipoles, [4]float64: the dipole vector and its magnitude flag
  "f"      - force accumulators, [3]float64
  "torque" - torque accumulators, [3]float64
*/
package particles

/* This file contains functions for managing particles and their fields. */

import (
	"fmt"
	"sort"
	"strings"
)

const (
	X = "x"
	Type = "type"
	Q = "q"
	Mu = "mu"
	F = "f"
	Torque = "torque"
)

// Particles represents the particles in a simulation or chunk of a simulation.
// It maps the name of each field (e.g. 'x', 'q', 'mu', etc.) to a Field.
type Particles map[string]Field

// Field is a generic interface around a per-particle array.
type Field interface {
	// Name returns the name the field is stored under.
	Name() string
	// Len returns the length of the underlying array.
	Len() int
	// Data returns the underlying array as an interface{}.
	Data() interface{}
	// Transfer transfers data from the Field to the appropriately named field
	// in dest. Particles are transfer from the indices 'from' to the indices
	// 'to'. These indices are passed as arrays to amortize the cost of error
	// handling and type conversion.
	Transfer(dest Particles, from, to []int) error
	// CreateDestination creates output fields in p with the specified size
	// that have the correct names and types.
	CreateDestination(p Particles, n int)
}

// Type assertions
var (
	_ Field = &Int{ }
	_ Field = &Float64{ }
	_ Field = &Vec3{ }
	_ Field = &Vec4{ }
)

// New creates a Particles map holding the standard fields for n particles with
// the given positions, types, charges, and dipoles. Force and torque
// accumulators are allocated and zeroed.
func New(x [][3]float64, types []int, q []float64, mu [][4]float64) (
	Particles, error,
) {
	n := len(x)
	if len(types) != n || len(q) != n || len(mu) != n {
		return nil, fmt.Errorf("Particle arrays have inconsistent lengths: " +
			"len(x) = %d, len(type) = %d, len(q) = %d, len(mu) = %d.",
			len(x), len(types), len(q), len(mu))
	}

	p := Particles{ }
	p.Add(NewVec3(X, x))
	p.Add(NewInt(Type, types))
	p.Add(NewFloat64(Q, q))
	p.Add(NewVec4(Mu, mu))
	p.Add(NewVec3(F, make([][3]float64, n)))
	p.Add(NewVec3(Torque, make([][3]float64, n)))
	return p, nil
}

// Add inserts a field into p under its own name.
func (p Particles) Add(field Field) { p[field.Name()] = field }

// Len returns the number of particles in p. It returns an error if the fields
// don't all have the same length.
func (p Particles) Len() (int, error) {
	n := -1
	for _, name := range p.Names() {
		if n == -1 {
			n = p[name].Len()
		} else if p[name].Len() != n {
			return 0, fmt.Errorf("Field '%s' has length %d, but other " +
				"fields have length %d.", name, p[name].Len(), n)
		}
	}
	if n == -1 { n = 0 }
	return n, nil
}

// Names returns the sorted names of all the fields in p.
func (p Particles) Names() []string {
	names := make([]string, 0, len(p))
	for name := range p { names = append(names, name) }
	sort.Strings(names)
	return names
}

// Require returns an error listing every field in names which p does not
// contain.
func (p Particles) Require(names ...string) error {
	missing := []string{ }
	for _, name := range names {
		if _, ok := p[name]; !ok { missing = append(missing, name) }
	}
	if len(missing) > 0 {
		return fmt.Errorf("The particle model is missing the required " +
			"attribute(s) %s.", strings.Join(missing, ", "))
	}
	return nil
}

// Ints returns the []int data of the named field.
func (p Particles) Ints(name string) ([]int, error) {
	field, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("Particles object does not contain the " +
			"field '%s'.", name)
	}
	x, ok := field.Data().([]int)
	if !ok {
		return nil, fmt.Errorf("Field '%s' does not have []int type, as " +
			"expected.", name)
	}
	return x, nil
}

// Float64s returns the []float64 data of the named field.
func (p Particles) Float64s(name string) ([]float64, error) {
	field, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("Particles object does not contain the " +
			"field '%s'.", name)
	}
	x, ok := field.Data().([]float64)
	if !ok {
		return nil, fmt.Errorf("Field '%s' does not have []float64 type, " +
			"as expected.", name)
	}
	return x, nil
}

// Vec3s returns the [][3]float64 data of the named field.
func (p Particles) Vec3s(name string) ([][3]float64, error) {
	field, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("Particles object does not contain the " +
			"field '%s'.", name)
	}
	x, ok := field.Data().([][3]float64)
	if !ok {
		return nil, fmt.Errorf("Field '%s' does not have [][3]float64 type, " +
			"as expected.", name)
	}
	return x, nil
}

// Vec4s returns the [][4]float64 data of the named field.
func (p Particles) Vec4s(name string) ([][4]float64, error) {
	field, ok := p[name]
	if !ok {
		return nil, fmt.Errorf("Particles object does not contain the " +
			"field '%s'.", name)
	}
	x, ok := field.Data().([][4]float64)
	if !ok {
		return nil, fmt.Errorf("Field '%s' does not have [][4]float64 type, " +
			"as expected.", name)
	}
	return x, nil
}

// Copy creates a Particles map with n particles and the same fields as p,
// with the first min(n, len(p)) particles copied over.
func (p Particles) Copy(n int) (Particles, error) {
	m, err := p.Len()
	if err != nil { return nil, err }
	if n < m { m = n }

	idx := make([]int, m)
	for i := range idx { idx[i] = i }

	out := Particles{ }
	for _, name := range p.Names() {
		p[name].CreateDestination(out, n)
		if err := p[name].Transfer(out, idx, idx); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func checkIndices(from, to []int) error {
	if len(from) != len(to) {
		return fmt.Errorf("'from' index array has length %d, but 'to' has " +
			"length %d.", len(from), len(to))
	}
	return nil
}

// Int implements the Field interface for []int data. See the Field
// interface for documentation of this struct's methods.
type Int struct {
	name string
	data []int
}

// NewInt creates a field with a given name associated with a given array.
func NewInt(name string, x []int) *Int {
	return &Int{ name, x }
}

func (x *Int) Name() string { return x.name }
func (x *Int) Len() int { return len(x.data) }
func (x *Int) Data() interface{} { return x.data }

func (x *Int) CreateDestination(p Particles, n int) {
	p[x.name] = NewInt(x.name, make([]int, n))
}

func (x *Int) Transfer(dest Particles, from, to []int) error {
	destData, err := dest.Ints(x.name)
	if err != nil { return err }
	if err := checkIndices(from, to); err != nil { return err }

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}

// Float64 implements the Field interface for []float64 data. See the Field
// interface for documentation of this struct's methods.
type Float64 struct {
	name string
	data []float64
}

// NewFloat64 creates a field with a given name associated with a given array.
func NewFloat64(name string, x []float64) *Float64 {
	return &Float64{ name, x }
}

func (x *Float64) Name() string { return x.name }
func (x *Float64) Len() int { return len(x.data) }
func (x *Float64) Data() interface{} { return x.data }

func (x *Float64) CreateDestination(p Particles, n int) {
	p[x.name] = NewFloat64(x.name, make([]float64, n))
}

func (x *Float64) Transfer(dest Particles, from, to []int) error {
	destData, err := dest.Float64s(x.name)
	if err != nil { return err }
	if err := checkIndices(from, to); err != nil { return err }

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}

// Vec3 implements the Field interface for [][3]float64 data. See the Field
// interface for documentation of this struct's methods.
type Vec3 struct {
	name string
	data [][3]float64
}

// NewVec3 creates a field with a given name associated with a given array.
func NewVec3(name string, x [][3]float64) *Vec3 {
	return &Vec3{ name, x }
}

func (x *Vec3) Name() string { return x.name }
func (x *Vec3) Len() int { return len(x.data) }
func (x *Vec3) Data() interface{} { return x.data }

func (x *Vec3) CreateDestination(p Particles, n int) {
	p[x.name] = NewVec3(x.name, make([][3]float64, n))
}

func (x *Vec3) Transfer(dest Particles, from, to []int) error {
	destData, err := dest.Vec3s(x.name)
	if err != nil { return err }
	if err := checkIndices(from, to); err != nil { return err }

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}

// Vec4 implements the Field interface for [][4]float64 data. See the Field
// interface for documentation of this struct's methods.
type Vec4 struct {
	name string
	data [][4]float64
}

// NewVec4 creates a field with a given name associated with a given array.
func NewVec4(name string, x [][4]float64) *Vec4 {
	return &Vec4{ name, x }
}

func (x *Vec4) Name() string { return x.name }
func (x *Vec4) Len() int { return len(x.data) }
func (x *Vec4) Data() interface{} { return x.data }

func (x *Vec4) CreateDestination(p Particles, n int) {
	p[x.name] = NewVec4(x.name, make([][4]float64, n))
}

func (x *Vec4) Transfer(dest Particles, from, to []int) error {
	destData, err := dest.Vec4s(x.name)
	if err != nil { return err }
	if err := checkIndices(from, to); err != nil { return err }

	for i := range from {
		destData[to[i]] = x.data[from[i]]
	}

	return nil
}
