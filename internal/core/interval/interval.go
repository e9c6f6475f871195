// Package interval implements the version-interval grammar used in poac.toml
// dependency values: the bare word "latest", an exact pin "=1.2.3", a bare
// version "1.2.3" (treated as exact), or one or more comparators joined by
// the literal word "and" (e.g. ">=1.2.0 and <2.0.0"). No example repo in the
// retrieval pack implements this exact grammar, so it is hand-written as a
// small recursive-descent parser over Masterminds/semver/v3 primitives.
package interval

import (
	"strconv"
	"strings"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/semver"
)

// Op is a single comparator operator.
type Op int

const (
	Lt Op = iota
	Le
	Gt
	Ge
	Eq
)

func (o Op) String() string {
	switch o {
	case Lt:
		return "<"
	case Le:
		return "<="
	case Gt:
		return ">"
	case Ge:
		return ">="
	case Eq:
		return "="
	default:
		return "?"
	}
}

// Comparator is one "<op><version>" term.
type Comparator struct {
	Op Op
	V  semver.Version
}

// Interval is the parsed form of a dependency's version requirement.
type Interval struct {
	// Latest is true for the bare word "latest": every known version satisfies it,
	// but it must be expanded against the candidate list before any member-ship
	// test can be meaningfully answered (the resolver's selectCandidate takes the
	// highest candidate).
	Latest bool

	// Comparators holds every comparator joined by "and". A bare version or an
	// "=version" pin is represented as a single Eq comparator.
	Comparators []Comparator
}

// Parse parses s per the grammar above.
func Parse(s string) (Interval, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Interval{}, zerr.With(domain.ErrIntervalSyntax, "reason", "empty interval")
	}
	if s == "latest" {
		return Interval{Latest: true}, nil
	}
	if strings.HasPrefix(s, "=") {
		v, err := semver.Parse(strings.TrimSpace(s[1:]))
		if err != nil {
			return Interval{}, zerr.Wrap(zerr.With(domain.ErrIntervalSyntax, "input", s), err.Error())
		}
		return Interval{Comparators: []Comparator{{Op: Eq, V: v}}}, nil
	}

	parts := strings.Split(s, " and ")
	comparators := make([]Comparator, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			return Interval{}, zerr.With(domain.ErrIntervalSyntax, "input", s)
		}
		c, err := parseComparator(part)
		if err != nil {
			return Interval{}, zerr.Wrap(zerr.With(domain.ErrIntervalSyntax, "input", s), err.Error())
		}
		comparators = append(comparators, c)
	}
	if len(comparators) == 1 && len(parts) == 1 && !strings.ContainsAny(s, "<>=") {
		// Bare "1.2.3" with no operator at all is treated as exact.
		v, err := semver.Parse(s)
		if err != nil {
			return Interval{}, zerr.Wrap(zerr.With(domain.ErrIntervalSyntax, "input", s), err.Error())
		}
		return Interval{Comparators: []Comparator{{Op: Eq, V: v}}}, nil
	}
	return Interval{Comparators: comparators}, nil
}

func parseComparator(s string) (Comparator, error) {
	for _, prefix := range []struct {
		text string
		op   Op
	}{
		{">=", Ge},
		{"<=", Le},
		{">", Gt},
		{"<", Lt},
		{"=", Eq},
	} {
		if strings.HasPrefix(s, prefix.text) {
			rest := strings.TrimSpace(s[len(prefix.text):])
			v, err := semver.Parse(rest)
			if err != nil {
				return Comparator{}, err
			}
			return Comparator{Op: prefix.op, V: v}, nil
		}
	}
	// No explicit operator: bare version is exact.
	v, err := semver.Parse(s)
	if err != nil {
		return Comparator{}, err
	}
	return Comparator{Op: Eq, V: v}, nil
}

// Contains reports whether v satisfies every comparator. It is undefined
// (always false) for a Latest interval; callers must expand Latest first.
func (iv Interval) Contains(v semver.Version) bool {
	if iv.Latest {
		return false
	}
	for _, c := range iv.Comparators {
		cmp := semver.Compare(v, c.V)
		switch c.Op {
		case Lt:
			if cmp >= 0 {
				return false
			}
		case Le:
			if cmp > 0 {
				return false
			}
		case Gt:
			if cmp <= 0 {
				return false
			}
		case Ge:
			if cmp < 0 {
				return false
			}
		case Eq:
			if cmp != 0 {
				return false
			}
		}
	}
	return true
}

// Render is the inverse of Parse: it prints the canonical textual form of iv.
func (iv Interval) Render() string {
	if iv.Latest {
		return "latest"
	}
	if len(iv.Comparators) == 1 && iv.Comparators[0].Op == Eq {
		return iv.Comparators[0].V.String()
	}
	parts := make([]string, len(iv.Comparators))
	for i, c := range iv.Comparators {
		parts[i] = c.Op.String() + c.V.String()
	}
	return strings.Join(parts, " and ")
}

// UpperBound renders the ">=v and <(major+1).0.0" interval the install
// orchestrator rewrites a "latest" pin to once resolution has chosen a
// concrete version.
func UpperBound(v semver.Version) string {
	upper := strconv.FormatUint(v.Major()+1, 10) + ".0.0"
	return ">=" + v.String() + " and <" + upper
}
