// Package lockfile implements ports.LockfileStore over poac.lock using
// gopkg.in/yaml.v3, building the document as a yaml.Node tree so dependency
// children are always emitted in ascending name order and the file carries
// its mandatory "do not edit" header comment.
package lockfile

import (
	"errors"
	"os"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/wow2006/poac/internal/core/domain"
	"github.com/wow2006/poac/internal/core/ports"
)

const (
	filename = "poac.lock"
	header   = "Please do not edit this file."
)

// Store implements ports.LockfileStore.
type Store struct {
	logger ports.Logger
}

// New creates a new Store.
func New(logger ports.Logger) ports.LockfileStore {
	return &Store{logger: logger}
}

type docSchema struct {
	Timestamp string                   `yaml:"timestamp"`
	Deps      map[string]depEntry      `yaml:"dependencies"`
}

type depEntry struct {
	Version string              `yaml:"version"`
	Source  string              `yaml:"source"`
	Deps    map[string]depEntry `yaml:"dependencies,omitempty"`
}

func (s *Store) path(dir string) string {
	return filepath.Join(dir, filename)
}

// Load reads poac.lock. A missing file, a timestamp mismatch, and a corrupt
// file are all reported as "not found" (ok=false, err=nil), treating a
// corrupt lockfile the same as an absent one; only the corrupt case is logged.
func (s *Store) Load(dir, expectedTimestamp string) (*domain.Resolved, bool, error) {
	data, err := os.ReadFile(s.path(dir))
	if errors.Is(err, os.ErrNotExist) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var doc docSchema
	if err := yaml.Unmarshal(data, &doc); err != nil {
		s.logger.Warn("poac.lock is corrupt, ignoring: " + err.Error())
		return nil, false, nil
	}
	if doc.Timestamp != expectedTimestamp {
		return nil, false, nil
	}

	var activated []domain.ActivatedNode
	roots := flattenDeps(doc.Deps, &activated)
	resolved := domain.NewResolved(activated, roots)
	return resolved, true, nil
}

// Write persists resolved as poac.lock.
func (s *Store) Write(dir, timestamp string, resolved *domain.Resolved) error {
	deps := buildDepMap(resolved, resolved.Roots)

	doc := yaml.Node{Kind: yaml.MappingNode}
	appendKV(&doc, "timestamp", timestamp)
	depsNode, err := encodeDeps(deps)
	if err != nil {
		return err
	}
	doc.Content = append(doc.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: "dependencies"},
		depsNode,
	)

	root := yaml.Node{
		Kind:        yaml.DocumentNode,
		Content:     []*yaml.Node{&doc},
		HeadComment: header,
	}

	out, err := yaml.Marshal(&root)
	if err != nil {
		return err
	}
	return os.WriteFile(s.path(dir), out, 0o644)
}

func appendKV(n *yaml.Node, key, value string) {
	n.Content = append(n.Content,
		&yaml.Node{Kind: yaml.ScalarNode, Value: key},
		&yaml.Node{Kind: yaml.ScalarNode, Value: value},
	)
}

// depMap is the intermediate tree shape used only for deterministic encoding.
type depMap map[string]struct {
	version string
	source  string
	deps    depMap
}

func buildDepMap(resolved *domain.Resolved, indices []int) depMap {
	out := make(depMap, len(indices))
	for _, idx := range indices {
		node := resolved.Activated[idx]
		out[node.Name] = struct {
			version string
			source  string
			deps    depMap
		}{
			version: node.Version,
			source:  node.Source.String(),
			deps:    buildDepMap(resolved, node.Deps),
		}
	}
	return out
}

func encodeDeps(deps depMap) (*yaml.Node, error) {
	node := &yaml.Node{Kind: yaml.MappingNode}
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		d := deps[name]
		entry := &yaml.Node{Kind: yaml.MappingNode}
		appendKV(entry, "version", d.version)
		appendKV(entry, "source", d.source)
		if len(d.deps) > 0 {
			childNode, err := encodeDeps(d.deps)
			if err != nil {
				return nil, err
			}
			entry.Content = append(entry.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Value: "dependencies"},
				childNode,
			)
		}
		node.Content = append(node.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Value: name},
			entry,
		)
	}
	return node, nil
}

func flattenDeps(deps map[string]depEntry, arena *[]domain.ActivatedNode) []int {
	names := make([]string, 0, len(deps))
	for name := range deps {
		names = append(names, name)
	}
	sort.Strings(names)

	indices := make([]int, 0, len(names))
	for _, name := range names {
		d := deps[name]
		source, _ := domain.ParseSource(d.Source)
		childIndices := flattenDeps(d.Deps, arena)
		*arena = append(*arena, domain.ActivatedNode{
			Name:    name,
			Version: d.Version,
			Source:  source,
			Deps:    childIndices,
		})
		indices = append(indices, len(*arena)-1)
	}
	return indices
}
