// Package resolver implements the single-pass constraint solver that turns
// a manifest's root dependency constraints into a concrete, conflict-free
// version assignment. It works off a worklist of pending edges: candidates
// are sorted by version descending, a name is committed to one version the
// first time it is reached, and a later edge the committed version does not
// satisfy is reported as a structured conflict rather than a bare error
// string. A committed version is never revisited.
package resolver

import (
	"context"
	"fmt"
	"sort"

	"go.trai.ch/zerr"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/interval"
	"github.com/wow2006/poac/internal/core/ports"
	"github.com/wow2006/poac/internal/core/semver"
)

// Resolver expands a set of root constraints into a full, version-pinned
// dependency tree.
type Resolver struct {
	providers ports.ProviderSet
	tracer    ports.Tracer
}

// New creates a Resolver that dispatches candidate lookups through providers.
func New(providers ports.ProviderSet, tracer ports.Tracer) *Resolver {
	return &Resolver{providers: providers, tracer: tracer}
}

// assignment is the solver's current, globally-unique commitment for one
// package name: the version every edge referencing that name must agree with.
type assignment struct {
	source   domain.Source
	version  semver.Version
	interval interval.Interval // interval of the edge that made this commitment; later edges do not narrow it
	manifest *domain.Manifest
}

// workItem is one edge in the dependency tree awaiting expansion: "parent
// wants name from source matching interval".
type workItem struct {
	name        string
	source      domain.Source
	rawInterval string
	parent      int      // index into activated, -1 for a root
	isRoot      bool
	ancestors   []string // names on the path from a root down to parent, cycle guard
}

// Resolve implements the Expand/Select/Unify/Terminate algorithm: worklist of
// (name, source, interval), candidate lookup + descending sort, unify against
// any existing commitment for that name, and termination once the worklist
// drains with every constraint satisfied.
func (r *Resolver) Resolve(ctx context.Context, roots []domain.Constraint) (*domain.Resolved, error) {
	ctx, span := r.tracer.Start(ctx, "resolver.resolve")
	defer span.End()

	var activated []domain.ActivatedNode
	assigned := make(map[string]*assignment)
	rootIdx := make([]int, 0, len(roots))
	rewritten := make(map[string]string)

	// firstDeclared records, for each name, the source of the root constraint
	// that declared it first; the cross-source tie-break falls back to this
	// when two sources resolve a name to the same SemVer version.
	firstDeclared := make(map[string]domain.Source, len(roots))
	for _, c := range roots {
		if _, ok := firstDeclared[c.Name]; !ok {
			firstDeclared[c.Name] = c.Source
		}
	}

	worklist := make([]workItem, 0, len(roots))
	for _, c := range roots {
		worklist = append(worklist, workItem{
			name:        c.Name,
			source:      c.Source,
			rawInterval: c.Interval,
			parent:      -1,
			isRoot:      true,
		})
	}

	for len(worklist) > 0 {
		item := worklist[0]
		worklist = worklist[1:]

		provider, err := r.providers.For(item.source)
		if err != nil {
			return nil, err
		}

		iv, err := interval.Parse(item.rawInterval)
		if err != nil {
			return nil, err
		}

		key := assignmentKey(item.name)
		cyclic := contains(item.ancestors, key)

		existing, hasExisting := assigned[key]

		var chosen assignment
		switch {
		case hasExisting:
			chosen, err = r.unify(ctx, item, iv, provider, *existing, firstDeclared)
			if err != nil {
				return nil, err
			}
			assigned[key] = &chosen
		default:
			chosen, err = r.selectNew(ctx, item, iv, provider)
			if err != nil {
				return nil, err
			}
			assigned[key] = &chosen
		}

		node := domain.ActivatedNode{Name: item.name, Version: chosen.version.String(), Source: chosen.source}
		activated = append(activated, node)
		idx := len(activated) - 1
		if item.parent >= 0 {
			activated[item.parent].Deps = append(activated[item.parent].Deps, idx)
		} else {
			rootIdx = append(rootIdx, idx)
		}

		if item.isRoot && item.rawInterval == "latest" {
			rewritten[item.name] = interval.UpperBound(chosen.version)
		}

		if cyclic {
			// This name already appears on the path from a root down to this
			// edge's parent: stop expanding to avoid walking the same cycle
			// forever. The node still records the edge's existence.
			continue
		}

		childAncestors := append(append([]string(nil), item.ancestors...), key)
		depKeys := make([]string, 0, len(chosen.manifest.Dependencies))
		for depKey := range chosen.manifest.Dependencies {
			depKeys = append(depKeys, depKey)
		}
		sort.Strings(depKeys)
		for _, depKey := range depKeys {
			depSource, depName, err := domain.SplitSource(depKey)
			if err != nil {
				return nil, err
			}
			if err := domain.ValidateName(depSource, depName); err != nil {
				return nil, err
			}
			worklist = append(worklist, workItem{
				name:        depName,
				source:      depSource,
				rawInterval: chosen.manifest.Dependencies[depKey],
				parent:      idx,
				ancestors:   childAncestors,
			})
		}
	}

	resolved := domain.NewResolved(activated, rootIdx)
	resolved.RewrittenIntervals = rewritten
	return resolved, nil
}

// selectNew expands and picks a candidate for a name seen for the first time:
// query the provider, intersect with the interval, sort descending by
// SemVer precedence, and fetch the winning candidate's manifest.
func (r *Resolver) selectNew(ctx context.Context, item workItem, iv interval.Interval, provider ports.CandidateProvider) (assignment, error) {
	id := domain.PackageID{Source: item.source, Name: item.name}
	candidates, err := provider.ListVersions(ctx, id)
	if err != nil {
		return assignment{}, err
	}
	if len(candidates) == 0 {
		return assignment{}, zerr.With(domain.ErrNoCandidates, "name", item.name)
	}
	semver.SortDescending(candidates)

	selected, ok := selectCandidate(iv, candidates)
	if !ok {
		return assignment{}, zerr.With(domain.ErrIntervalUnsatisfiable, "name", item.name, "interval", item.rawInterval)
	}

	manifest, err := provider.FetchManifest(ctx, domain.PackageID{Source: item.source, Name: item.name, Version: selected.String()})
	if err != nil {
		return assignment{}, err
	}

	return assignment{source: item.source, version: selected, interval: iv, manifest: manifest}, nil
}

// unify handles a repeat reference to a name that already carries a global
// commitment. If the existing version still satisfies the new interval, the
// edge reuses it unchanged. Otherwise the result is always ErrConflict: the
// commitment is not replaced and no earlier decision is revisited, since the
// committed version's subtree has already been walked. The candidate list is
// searched only to name, in the conflict's reason, another version that
// satisfies both the committing interval and the new one.
//
// When item and existing name different sources for the same package name,
// a source tie-break decides which commitment survives before any of the
// above applies: higher SemVer wins, ties go to whichever source was
// declared first in the root manifest, and further ties go to Registry.
func (r *Resolver) unify(ctx context.Context, item workItem, iv interval.Interval, provider ports.CandidateProvider, existing assignment, firstDeclared map[string]domain.Source) (assignment, error) {
	if item.source != existing.source {
		return r.unifyCrossSource(ctx, item, iv, provider, existing, firstDeclared)
	}

	if iv.Latest || iv.Contains(existing.version) {
		return existing, nil
	}

	candidates, err := provider.ListVersions(ctx, domain.PackageID{Source: item.source, Name: item.name})
	if err != nil {
		return assignment{}, err
	}
	semver.SortDescending(candidates)

	for _, c := range candidates {
		if !existing.interval.Contains(c) || !iv.Contains(c) {
			continue
		}
		if c.String() == existing.version.String() {
			return existing, nil
		}
		// A different version satisfies both constraints together, but its
		// dependency set was never discovered: the solver already walked the
		// committed version's subtree. Surface this as a conflict rather than
		// silently serving a stale subtree under a different version.
		return assignment{}, zerr.With(domain.ErrConflict,
			"name", item.name,
			"existing", existing.version.String(),
			"incoming", item.rawInterval,
			"reason", fmt.Sprintf("requires re-selecting %s, which was not explored", c.String()))
	}

	return assignment{}, zerr.With(domain.ErrConflict,
		"name", item.name,
		"existing", existing.version.String(),
		"incoming", item.rawInterval)
}

// unifyCrossSource resolves a name referenced through two different sources.
// It selects item's own candidate, applies the source tie-break against the
// existing commitment's version, and keeps whichever commitment the
// tie-break names as the winner. A tie-break that favors item's source
// cannot be honored without re-walking the existing commitment's already
// discovered subtree, so that case is surfaced as a conflict rather than
// silently served.
func (r *Resolver) unifyCrossSource(ctx context.Context, item workItem, iv interval.Interval, provider ports.CandidateProvider, existing assignment, firstDeclared map[string]domain.Source) (assignment, error) {
	candidate, err := r.selectNew(ctx, item, iv, provider)
	if err != nil {
		return assignment{}, err
	}

	winner := item.source
	switch cmp := semver.Compare(candidate.version, existing.version); {
	case cmp < 0:
		winner = existing.source
	case cmp == 0:
		if declared, ok := firstDeclared[item.name]; ok {
			winner = declared
		} else {
			winner = domain.Registry
		}
	}

	if winner == existing.source {
		if !iv.Latest && !iv.Contains(existing.version) {
			return assignment{}, zerr.With(domain.ErrConflict,
				"name", item.name,
				"existing", existing.version.String(),
				"existing_source", existing.source.String(),
				"incoming_source", item.source.String(),
				"incoming", item.rawInterval,
				"reason", "source tie-break kept the existing commitment but it does not satisfy this interval")
		}
		return existing, nil
	}

	return assignment{}, zerr.With(domain.ErrConflict,
		"name", item.name,
		"existing", existing.version.String(),
		"existing_source", existing.source.String(),
		"incoming", candidate.version.String(),
		"incoming_source", item.source.String(),
		"reason", "source tie-break prefers a source not yet explored")
}

func selectCandidate(iv interval.Interval, sortedDescending []semver.Version) (semver.Version, bool) {
	if iv.Latest {
		if len(sortedDescending) == 0 {
			return semver.Version{}, false
		}
		return sortedDescending[0], true
	}
	for _, v := range sortedDescending {
		if iv.Contains(v) {
			return v, true
		}
	}
	return semver.Version{}, false
}

// assignmentKey is name-only: domain.Resolved.Backtracked (built by
// domain.NewResolved) is keyed by name alone, so two edges naming the same
// package through different sources must collide here too, rather than
// silently diverging until NewResolved flattens them arbitrarily.
func assignmentKey(name string) string {
	return name
}

func contains(xs []string, x string) bool {
	for _, v := range xs {
		if v == x {
			return true
		}
	}
	return false
}
