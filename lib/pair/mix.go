package pair

import (
	"fmt"
	"math"
	"strings"
)

// MixRule selects how parameters for unset type pairs are derived from the
// same-type parameters.
type MixRule int32
const (
	Geometric MixRule = iota
	Arithmetic
	SixthPower
	numMixRules
)

var mixNames = [numMixRules]string{ "geometric", "arithmetic", "sixthpower" }

func (m MixRule) String() string {
	if m < 0 || m >= numMixRules { return fmt.Sprintf("MixRule(%d)", m) }
	return mixNames[m]
}

// Valid returns true if m is a recognized mixing rule.
func (m MixRule) Valid() bool { return m >= 0 && m < numMixRules }

// ParseMixRule converts a rule name ("geometric", "arithmetic", "sixthpower")
// to a MixRule. Matching is case-insensitive.
func ParseMixRule(s string) (MixRule, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i := range mixNames {
		if mixNames[i] == name { return MixRule(i), nil }
	}
	return 0, fmt.Errorf("%w: '%s' is not a valid mixing rule. Only " +
		"'geometric', 'arithmetic', and 'sixthpower' are valid.", ErrConfig, s)
}

// energy mixes two same-type well depths given the two same-type diameters.
func (m MixRule) energy(eps1, eps2, sig1, sig2 float64) float64 {
	switch m {
	case SixthPower:
		s1, s2 := sig1*sig1*sig1, sig2*sig2*sig2
		if s1 == 0 && s2 == 0 { return 0 }
		return 2 * math.Sqrt(eps1*eps2) * s1 * s2 / (s1*s1 + s2*s2)
	default:
		return math.Sqrt(eps1 * eps2)
	}
}

// distance mixes two same-type lengths: diameters or cutoffs.
func (m MixRule) distance(sig1, sig2 float64) float64 {
	switch m {
	case Geometric:
		return math.Sqrt(sig1 * sig2)
	case SixthPower:
		s1, s2 := sig1*sig1*sig1, sig2*sig2*sig2
		return math.Pow(0.5*(s1*s1 + s2*s2), 1.0/6.0)
	default:
		return 0.5 * (sig1 + sig2)
	}
}
