package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/core/domain"
)

func TestSplitSourceDefaultsBareSlashContainingNameToRegistry(t *testing.T) {
	source, name, err := domain.SplitSource("boost/optional")
	require.NoError(t, err)
	assert.Equal(t, domain.Registry, source)
	assert.Equal(t, "boost/optional", name)
}

func TestSplitSourceBareNameWithoutSlash(t *testing.T) {
	source, name, err := domain.SplitSource("fmt")
	require.NoError(t, err)
	assert.Equal(t, domain.Registry, source)
	assert.Equal(t, "fmt", name)
}

func TestSplitSourceExplicitPoacPrefix(t *testing.T) {
	source, name, err := domain.SplitSource("poac/boost/variant")
	require.NoError(t, err)
	assert.Equal(t, domain.Registry, source)
	assert.Equal(t, "boost/variant", name)
}

func TestSplitSourceGithubPrefix(t *testing.T) {
	source, name, err := domain.SplitSource("github/poacpm/poac")
	require.NoError(t, err)
	assert.Equal(t, domain.GitHost, source)
	assert.Equal(t, "poacpm/poac", name)
}
