/*package eq is a simple package for telling whether two arrays are equal to
one another, either exactly or to within a floating point tolerance.*/
package eq

import (
	"gonum.org/v1/gonum/floats/scalar"
)

// Generic returns true if two arrays are the same type and have the same values
// and false otherwise. Only []byte, []int, []string, []float64, [][3]float64,
// and [][4]float64 are supported.
func Generic(x, y interface{}) bool {
	switch xx := x.(type) {
	case []byte:
		yy, ok := y.([]byte)
		if !ok { return false }
		return Bytes(xx, yy)
	case []int:
		yy, ok := y.([]int)
		if !ok { return false }
		return Ints(xx, yy)
	case []string:
		yy, ok := y.([]string)
		if !ok { return false }
		return Strings(xx, yy)
	case []float64:
		yy, ok := y.([]float64)
		if !ok { return false }
		return Float64s(xx, yy)
	case [][3]float64:
		yy, ok := y.([][3]float64)
		if !ok { return false }
		return Vec64s(xx, yy)
	case [][4]float64:
		yy, ok := y.([][4]float64)
		if !ok { return false }
		return Vec4s(xx, yy)
	}
	return false
}

// Strings returns true if two []string arrays are the same and false otherwise.
func Strings(x, y []string) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Bytes returns true if two []byte arrays are the same and false otherwise.
func Bytes(x, y []byte) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Ints returns true if two []int arrays are the same and false otherwise.
func Ints(x, y []int) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64s returns true if two []float64 arrays are the same and false
// otherwise.
func Float64s(x, y []float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Vec64s returns true if two [][3]float64 arrays are the same and false
// otherwise.
func Vec64s(x, y [][3]float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Vec4s returns true if two [][4]float64 arrays are the same and false
// otherwise.
func Vec4s(x, y [][4]float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] != y[i] { return false }
	}
	return true
}

// Float64sEps returns true if the two []float64 arrays are within eps of one
// another and false otherwise.
func Float64sEps(x, y []float64, eps float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		if x[i] + eps < y[i] || x[i] - eps > y[i] {
			return false
		}
	}
	return true
}

// Close returns true if x and y agree to within an absolute tolerance of abs
// or a relative tolerance of rel.
func Close(x, y, abs, rel float64) bool {
	return scalar.EqualWithinAbsOrRel(x, y, abs, rel)
}

// Vec64sClose returns true if every component of two [][3]float64 arrays
// satisfies Close and false otherwise.
func Vec64sClose(x, y [][3]float64, abs, rel float64) bool {
	if len(x) != len(y) { return false }
	for i := range x {
		for dim := 0; dim < 3; dim++ {
			if !Close(x[i][dim], y[i][dim], abs, rel) { return false }
		}
	}
	return true
}
