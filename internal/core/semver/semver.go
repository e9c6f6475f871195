// Package semver is a small wrapper around Masterminds/semver/v3, trimmed to
// the handful of operations the resolver and interval grammar need: parsing,
// ordering, and constraint satisfaction.
package semver

import (
	mm "github.com/Masterminds/semver/v3"

	"go.trai.ch/zerr"
)

var (
	// ErrParse is returned when a version string is not valid SemVer.
	ErrParse = zerr.New("invalid semantic version")
)

// Version wraps a parsed SemVer version.
type Version struct {
	v *mm.Version
}

// Parse parses s as a SemVer version.
func Parse(s string) (Version, error) {
	v, err := mm.NewVersion(s)
	if err != nil {
		return Version{}, zerr.Wrap(zerr.With(ErrParse, "input", s), err.Error())
	}
	return Version{v: v}, nil
}

// MustParse parses s, panicking on error. Only used for compile-time constants
// in tests.
func MustParse(s string) Version {
	v, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the canonical "major.minor.patch[-pre][+build]" form.
func (v Version) String() string {
	if v.v == nil {
		return ""
	}
	return v.v.String()
}

// Major, Minor, Patch expose the numeric components, used by the interval
// grammar to build the upper bound of a "latest" rewrite.
func (v Version) Major() uint64 { return v.v.Major() }
func (v Version) Minor() uint64 { return v.v.Minor() }
func (v Version) Patch() uint64 { return v.v.Patch() }

// Compare returns -1, 0, or 1 as a is less than, equal to, or greater than b.
func Compare(a, b Version) int {
	return a.v.Compare(b.v)
}

// Less reports whether a orders strictly before b.
func Less(a, b Version) bool {
	return Compare(a, b) < 0
}

// Constraint wraps a parsed comparator, e.g. ">=1.2.0".
type Constraint struct {
	c *mm.Constraints
}

// ParseConstraint parses a single Masterminds-syntax comparator string.
func ParseConstraint(s string) (Constraint, error) {
	c, err := mm.NewConstraint(s)
	if err != nil {
		return Constraint{}, zerr.Wrap(zerr.With(ErrParse, "input", s), err.Error())
	}
	return Constraint{c: c}, nil
}

// Satisfies reports whether v satisfies c.
func Satisfies(v Version, c Constraint) bool {
	return c.c.Check(v.v)
}

// MaxSatisfying returns the greatest version in candidates that satisfies c.
func MaxSatisfying(c Constraint, candidates []Version) (Version, bool) {
	var best Version
	found := false
	for _, cand := range candidates {
		if !Satisfies(cand, c) {
			continue
		}
		if !found || Less(best, cand) {
			best = cand
			found = true
		}
	}
	return best, found
}

// SortDescending sorts versions from highest to lowest in place.
func SortDescending(versions []Version) {
	for i := 1; i < len(versions); i++ {
		for j := i; j > 0 && Less(versions[j-1], versions[j]); j-- {
			versions[j-1], versions[j] = versions[j], versions[j-1]
		}
	}
}
