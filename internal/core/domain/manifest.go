package domain

import "go.trai.ch/zerr"

// CppStandard is the minimum required C++ standard, as declared by package.cpp.
type CppStandard uint16

// Valid C++ standards a manifest may declare. 3 is kept as a distinct accepted
// input alongside 98/11/14/17/20, stored verbatim rather than normalized to
// one of the others.
const (
	Cpp98 CppStandard = 98
	Cpp03 CppStandard = 3
	Cpp11 CppStandard = 11
	Cpp14 CppStandard = 14
	Cpp17 CppStandard = 17
	Cpp20 CppStandard = 20

	// DefaultCppStandard is used when package.cpp is absent from the manifest.
	DefaultCppStandard = Cpp17
)

// ValidCppStandard reports whether v is one of the accepted standards.
func ValidCppStandard(v CppStandard) bool {
	switch v {
	case Cpp98, Cpp03, Cpp11, Cpp14, Cpp17, Cpp20:
		return true
	default:
		return false
	}
}

// BuildSystem names the build backend a package uses.
type BuildSystem int

const (
	// BuildSystemPoac is the default backend, also selected when build.system is absent.
	BuildSystemPoac BuildSystem = iota
	// BuildSystemCMake delegates building to CMake.
	BuildSystemCMake
)

// String implements fmt.Stringer.
func (b BuildSystem) String() string {
	switch b {
	case BuildSystemPoac:
		return "poac"
	case BuildSystemCMake:
		return "cmake"
	default:
		return "unknown"
	}
}

// ParseBuildSystem normalizes the textual form of build.system. An empty string
// means the key was absent and defaults to BuildSystemPoac.
func ParseBuildSystem(s string) (BuildSystem, error) {
	switch s {
	case "", "poac":
		return BuildSystemPoac, nil
	case "cmake":
		return BuildSystemCMake, nil
	default:
		return 0, zerr.With(ErrInvalidBuildSystem, "build_system", s)
	}
}

// BuildBin describes one binary produced by the build.
type BuildBin struct {
	Path string `toml:"path"`
	Name string `toml:"name"`
	Link string `toml:"link,omitempty"`
}

// BuildProperties carries compiler-level knobs passed straight through to the
// underlying build system.
type BuildProperties struct {
	Definitions []string `toml:"definitions,omitempty"`
	Options     []string `toml:"options,omitempty"`
	Libraries   []string `toml:"libraries,omitempty"`
}

// BuildConfig is the optional [build] table of a manifest.
type BuildConfig struct {
	System     BuildSystem     `toml:"-"`
	SystemRaw  string          `toml:"system,omitempty"`
	Bin        []BuildBin      `toml:"bin,omitempty"`
	Lib        bool            `toml:"lib,omitempty"`
	Properties BuildProperties `toml:"properties,omitempty"`
}

// IsApplication reports whether this build config declares at least one binary.
func (b *BuildConfig) IsApplication() bool {
	return b != nil && len(b.Bin) > 0
}

// Package is the required [package] table of a manifest.
type Package struct {
	Name          string       `toml:"name"`
	Version       string       `toml:"version"`
	Cpp           CppStandard  `toml:"cpp,omitempty"`
	Authors       []string     `toml:"authors,omitempty"`
	Build         string       `toml:"build,omitempty"`
	Description   string       `toml:"description,omitempty"`
	Documentation string       `toml:"documentation,omitempty"`
	Homepage      string       `toml:"homepage,omitempty"`
	Repository    string       `toml:"repository,omitempty"`
	Readme        string       `toml:"readme,omitempty"`
	License       string       `toml:"license,omitempty"`
	LicenseFile   string       `toml:"license-file,omitempty"`
	Links         string       `toml:"links,omitempty"`
}

// Manifest is the decoded form of poac.toml.
type Manifest struct {
	Package         Package             `toml:"package"`
	Build           *BuildConfig        `toml:"build,omitempty"`
	Dependencies    map[string]string   `toml:"dependencies,omitempty"`
	DevDependencies map[string]string   `toml:"dev-dependencies,omitempty"`
	BuildDeps       map[string]string   `toml:"build-dependencies,omitempty"`
}

// CppOrDefault returns the package's declared standard, or DefaultCppStandard
// when the manifest omitted package.cpp entirely.
func (m *Manifest) CppOrDefault() CppStandard {
	if m.Package.Cpp == 0 {
		return DefaultCppStandard
	}
	return m.Package.Cpp
}
