package domain

// ActivatedNode is one entry in the flat arena backing a resolved dependency
// tree. Children are stored as indices into the same arena rather than as
// nested pointers/values, so the tree can hold diamonds (two parents sharing
// a child) without Go's value types forcing a copy, and so it serializes to
// the lockfile without needing cycle detection at encode time.
type ActivatedNode struct {
	Name    string
	Version string
	Source  Source
	Deps    []int // indices into Resolved.Activated
}

// PinnedVersion is what Backtracked stores for each package name: the single
// version and source the solver committed to.
type PinnedVersion struct {
	Version string
	Source  Source
}

// Resolved is the output of dependency resolution (C6) and the payload the
// lockfile persists (C2).
type Resolved struct {
	// Activated is the arena of every node touched during resolution, in the
	// order its producer appended them: the resolver appends in worklist order,
	// roots first; the lockfile loader appends each node after its children.
	Activated []ActivatedNode

	// Roots are indices into Activated naming the top-level requirements.
	Roots []int

	// Backtracked is the flattened name -> chosen (version, source) map used
	// by the fetcher, derived from Activated by walking it once.
	Backtracked map[string]PinnedVersion

	// RewrittenIntervals records, for every root constraint that used the
	// "latest" interval, the concrete interval it should be rewritten to in
	// the manifest (">=X.Y.Z and <(X+1).0.0").
	RewrittenIntervals map[string]string
}

// NewResolved builds the Backtracked map from Activated in one pass,
// preferring the first occurrence of a name (callers add nodes in a
// deterministic, tie-broken order, so "first wins" is well defined).
func NewResolved(activated []ActivatedNode, roots []int) *Resolved {
	backtracked := make(map[string]PinnedVersion, len(activated))
	for _, n := range activated {
		if _, ok := backtracked[n.Name]; !ok {
			backtracked[n.Name] = PinnedVersion{Version: n.Version, Source: n.Source}
		}
	}
	return &Resolved{
		Activated:          activated,
		Roots:              roots,
		Backtracked:        backtracked,
		RewrittenIntervals: make(map[string]string),
	}
}
