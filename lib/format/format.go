/*package format handles dipolesf's miniature formatting language for ranges of
atom types, e.g. the two ranges in a coefficient section header:

   [Coeff "1*2 3"]

A type range is a single token taking one of the following forms, where N is
the number of atom types:

  "*"   - every type, 1 through N.
  "n"   - the single type n.
  "*n"  - types 1 through n.
  "n*"  - types n through N.
  "m*n" - types m through n.
  "m..n" - types m through n (same as "m*n").

Any range that is empty or that reaches outside [1, N] is an error. All
spaces around the tokens are ignored.
*/
package format

import (
	"fmt"
	"strconv"
	"strings"
)

// ExpandTypeRange expands a single type range token into its inclusive lower
// and upper bounds. ntypes is the number of atom types.
func ExpandTypeRange(tok string, ntypes int) (lo, hi int, err error) {
	tok = strings.TrimSpace(tok)
	if len(tok) == 0 {
		return 0, 0, fmt.Errorf("The type range is empty.")
	} else if ntypes < 1 {
		return 0, 0, fmt.Errorf(
			"Cannot expand '%s' when there are %d atom types.", tok, ntypes,
		)
	}

	var start, end string
	switch {
	case strings.Contains(tok, ".."):
		bounds := strings.Split(tok, "..")
		if len(bounds) != 2 {
			return 0, 0, fmt.Errorf(
				"The type range '%s' has more than one '..'.", tok,
			)
		}
		start, end = bounds[0], bounds[1]
		if start == "" || end == "" {
			return 0, 0, fmt.Errorf(
				"The type range '%s' needs numbers on both sides of '..'.", tok,
			)
		}
	case strings.Contains(tok, "*"):
		bounds := strings.Split(tok, "*")
		if len(bounds) != 2 {
			return 0, 0, fmt.Errorf(
				"The type range '%s' has more than one '*'.", tok,
			)
		}
		start, end = bounds[0], bounds[1]
	default:
		start, end = tok, tok
	}

	lo, hi = 1, ntypes
	if start != "" {
		if lo, err = strconv.Atoi(start); err != nil {
			return 0, 0, fmt.Errorf(
				"'%s' in the type range '%s' is not an integer.", start, tok,
			)
		}
	}
	if end != "" {
		if hi, err = strconv.Atoi(end); err != nil {
			return 0, 0, fmt.Errorf(
				"'%s' in the type range '%s' is not an integer.", end, tok,
			)
		}
	}

	if lo < 1 || hi > ntypes {
		return 0, 0, fmt.Errorf(
			"The type range '%s' reaches outside the valid types, 1 to %d.",
			tok, ntypes,
		)
	} else if hi < lo {
		return 0, 0, fmt.Errorf(
			"The type range '%s' is empty: lower bound %d is larger than " +
				"upper bound %d.", tok, lo, hi,
		)
	}

	return lo, hi, nil
}

// ExpandTypePair expands a whitespace-separated pair of type ranges, such as
// "1*2 3", into the bounds of each range.
func ExpandTypePair(
	pair string, ntypes int,
) (ilo, ihi, jlo, jhi int, err error) {
	tok := strings.Fields(pair)
	if len(tok) != 2 {
		return 0, 0, 0, 0, fmt.Errorf(
			"'%s' should contain exactly two type ranges, but contains %d.",
			pair, len(tok),
		)
	}

	ilo, ihi, err = ExpandTypeRange(tok[0], ntypes)
	if err != nil { return 0, 0, 0, 0, err }
	jlo, jhi, err = ExpandTypeRange(tok[1], ntypes)
	if err != nil { return 0, 0, 0, 0, err }

	return ilo, ihi, jlo, jhi, nil
}
