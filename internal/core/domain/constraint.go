package domain

// Constraint is one requirement a manifest (or a CLI argument) places on a
// dependency: "give me this package, from this source, matching this interval".
// Interval is kept as a string here (domain has no dependency on the interval
// grammar's AST); callers that need to evaluate it parse it via
// internal/core/interval.
type Constraint struct {
	Name     string
	Source   Source
	Interval string
}
