// Where: internal/resolver/version.go
// What: Host application version parsing and bound checks.
// Why: Rules carry optional min/max host versions that gate selection.
package resolver

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
)

// ErrVersionParse marks a version string that does not contain a leading
// numeric group. Callers must treat the comparison as undecidable and skip
// the rule rather than assume a match.
var ErrVersionParse = errors.New("unparseable version")

// versionPattern captures up to three numeric groups anchored at the
// start of the string. The second and third groups are optional; "2022",
// "2.5" and "12.0v3" all parse, "v2022" does not.
var versionPattern = regexp.MustCompile(`^(\d+)\.?(\d+)?(?:\.|v)?(\d+)?`)

// Version is a parsed version with up to three components. A missing
// component is absent, not zero: "1.2" and "1.2.0" are distinct.
type Version struct {
	components [3]int
	present    [3]bool
}

// ParseVersion parses a free-form version string into a Version.
func ParseVersion(raw string) (Version, error) {
	groups := versionPattern.FindStringSubmatch(raw)
	if groups == nil || groups[1] == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrVersionParse, raw)
	}

	var v Version
	for i, group := range groups[1:] {
		if group == "" {
			continue
		}
		n, err := strconv.Atoi(group)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrVersionParse, raw)
		}
		v.components[i] = n
		v.present[i] = true
	}
	return v, nil
}

// Compare orders two versions component-wise. A missing component sorts
// lower than any present component, so "1.2" < "1.2.0". Returns -1, 0, 1.
func (v Version) Compare(other Version) int {
	for i := range v.components {
		switch {
		case !v.present[i] && !other.present[i]:
			continue
		case !v.present[i]:
			return -1
		case !other.present[i]:
			return 1
		case v.components[i] < other.components[i]:
			return -1
		case v.components[i] > other.components[i]:
			return 1
		}
	}
	return 0
}

// String renders the present components joined by dots.
func (v Version) String() string {
	out := ""
	for i := range v.components {
		if !v.present[i] {
			break
		}
		if i > 0 {
			out += "."
		}
		out += strconv.Itoa(v.components[i])
	}
	return out
}

// MinCheck reports whether current satisfies the optional minimum bound.
// An empty bound imposes no constraint. A parse failure on either side is
// returned as an error, never silently treated as a match.
func MinCheck(current, minimum string) (bool, error) {
	if minimum == "" {
		return true, nil
	}
	lo, err := ParseVersion(minimum)
	if err != nil {
		return false, err
	}
	cur, err := ParseVersion(current)
	if err != nil {
		return false, err
	}
	return cur.Compare(lo) >= 0, nil
}

// MaxCheck reports whether current satisfies the optional maximum bound.
func MaxCheck(current, maximum string) (bool, error) {
	if maximum == "" {
		return true, nil
	}
	hi, err := ParseVersion(maximum)
	if err != nil {
		return false, err
	}
	cur, err := ParseVersion(current)
	if err != nil {
		return false, err
	}
	return cur.Compare(hi) <= 0, nil
}
