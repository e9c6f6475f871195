package semver_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/wow2006/poac/internal/core/semver"
)

func TestParseAndCompare(t *testing.T) {
	a, err := semver.Parse("1.2.3")
	require.NoError(t, err)
	b, err := semver.Parse("1.10.0")
	require.NoError(t, err)

	require.True(t, semver.Less(a, b))
	require.Equal(t, 0, semver.Compare(a, a))
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := semver.Parse("not-a-version")
	require.Error(t, err)
}

func TestMaxSatisfying(t *testing.T) {
	c, err := semver.ParseConstraint(">=1.0.0, <2.0.0")
	require.NoError(t, err)

	candidates := []semver.Version{
		semver.MustParse("0.9.0"),
		semver.MustParse("1.5.0"),
		semver.MustParse("1.9.9"),
		semver.MustParse("2.0.0"),
	}

	best, ok := semver.MaxSatisfying(c, candidates)
	require.True(t, ok)
	require.Equal(t, "1.9.9", best.String())
}

func TestSortDescending(t *testing.T) {
	versions := []semver.Version{
		semver.MustParse("1.0.0"),
		semver.MustParse("3.0.0"),
		semver.MustParse("2.0.0"),
	}
	semver.SortDescending(versions)
	require.Equal(t, []string{"3.0.0", "2.0.0", "1.0.0"}, []string{
		versions[0].String(), versions[1].String(), versions[2].String(),
	})
}
