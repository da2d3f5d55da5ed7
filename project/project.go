// Package project reads nbt project files. A project file sits in the
// directory of the project it builds and lists that project's targets.
package project

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v2"
)

// ErrInvalidProject is returned for project files which cannot be planned.
var ErrInvalidProject = errors.New("invalid project file")

// Kind selects how a target is built.
type Kind string

// Target kinds.
const (
	KindLibrary          Kind = "library"
	KindStaticLibrary    Kind = "static-library"
	KindExecutable       Kind = "executable"
	KindLibraryWithTests Kind = "library-with-tests"
	KindUnitTests        Kind = "unit-tests"
	KindMSBuild          Kind = "msbuild"
	KindMSBuildWithTests Kind = "msbuild-with-tests"
	KindMesh             Kind = "mesh"
	KindAnimations       Kind = "animations"
	KindGodot            Kind = "godot"
)

// Kinds lists every target kind.
var Kinds = []Kind{
	KindLibrary, KindStaticLibrary, KindExecutable, KindLibraryWithTests, KindUnitTests,
	KindMSBuild, KindMSBuildWithTests, KindMesh, KindAnimations, KindGodot,
}

// Package is a precompiled library below the references directory.
type Package struct {
	Name string `yaml:"name" toml:"name"`
	// Libraries default to the package name.
	Libraries []string `yaml:"libraries" toml:"libraries"`
}

// Target is one build product of a project.
type Target struct {
	Name string `yaml:"name" toml:"name"`
	Kind Kind   `yaml:"kind" toml:"kind"`
	// Settings override configuration keys for this target only.
	Settings map[string]string `yaml:"settings" toml:"settings"`

	// C/C++ targets. Sources and test sources are enumerated from the source
	// and tests directories unless listed.
	Sources     []string `yaml:"sources" toml:"sources"`
	TestSources []string `yaml:"test-sources" toml:"test-sources"`
	Packages    []string `yaml:"packages" toml:"packages"`
	Console     bool     `yaml:"console" toml:"console"`
	TestName    string   `yaml:"test-name" toml:"test-name"`

	// MSBuild and Godot targets.
	Project     string `yaml:"project" toml:"project"`
	TestProject string `yaml:"test-project" toml:"test-project"`
	Preset      string `yaml:"preset" toml:"preset"`

	// Blender targets.
	Scene     string   `yaml:"scene" toml:"scene"`
	Library   string   `yaml:"library" toml:"library"`
	Wildcards []string `yaml:"wildcards" toml:"wildcards"`

	// Output is the exported file of mesh, animations and godot targets.
	Output string `yaml:"output" toml:"output"`
}

// File is a parsed project file.
type File struct {
	Path     string            `yaml:"-" toml:"-"`
	Settings map[string]string `yaml:"settings" toml:"settings"`
	Packages []Package         `yaml:"packages" toml:"packages"`
	Targets  []Target          `yaml:"targets" toml:"targets"`
}

// Directory returns the project directory.
func (f *File) Directory() string {
	return filepath.Dir(f.Path)
}

// Package returns the declaration of a package. Undeclared packages link a
// library of the same name.
func (f *File) Package(name string) Package {
	for _, pkg := range f.Packages {
		if pkg.Name == name {
			return pkg
		}
	}
	return Package{Name: name}
}

// Target returns the target with the given name.
func (f *File) Target(name string) (Target, bool) {
	for _, t := range f.Targets {
		if t.Name == name {
			return t, true
		}
	}
	return Target{}, false
}

// TestExecutableName returns the name of the unit test executable of a target.
func (t Target) TestExecutableName() string {
	if t.TestName != "" {
		return t.TestName
	}
	return t.Name + ".Tests"
}

func isKnownKind(kind Kind) bool {
	for _, k := range Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// Validate checks that every target is complete.
func (f *File) Validate() error {
	seen := map[string]bool{}
	for i, t := range f.Targets {
		if t.Name == "" {
			return fmt.Errorf("%w: '%s': target %d has no name", ErrInvalidProject, f.Path, i+1)
		}
		if seen[t.Name] {
			return fmt.Errorf("%w: '%s': target '%s' is declared twice", ErrInvalidProject, f.Path, t.Name)
		}
		seen[t.Name] = true

		if !isKnownKind(t.Kind) {
			return fmt.Errorf("%w: '%s': target '%s' has unknown kind '%s'", ErrInvalidProject, f.Path, t.Name, t.Kind)
		}

		missing := ""
		switch t.Kind {
		case KindMSBuild:
			if t.Project == "" {
				missing = "project"
			}
		case KindMSBuildWithTests:
			if t.Project == "" {
				missing = "project"
			} else if t.TestProject == "" {
				missing = "test-project"
			}
		case KindMesh:
			if t.Scene == "" {
				missing = "scene"
			} else if t.Output == "" {
				missing = "output"
			}
		case KindAnimations:
			if t.Scene == "" {
				missing = "scene"
			} else if t.Library == "" {
				missing = "library"
			} else if t.Output == "" {
				missing = "output"
			}
		case KindGodot:
			if t.Preset == "" {
				missing = "preset"
			} else if t.Output == "" {
				missing = "output"
			}
		}
		if missing != "" {
			return fmt.Errorf("%w: '%s': %s target '%s' needs '%s'", ErrInvalidProject, f.Path, t.Kind, t.Name, missing)
		}
	}
	return nil
}

// Parse reads a project file. The format follows the file extension.
func Parse(path string, data []byte) (*File, error) {
	f := &File{}
	var err error
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		err = toml.Unmarshal(data, f)
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, f)
	default:
		return nil, fmt.Errorf("%w: '%s' is neither YAML nor TOML", ErrInvalidProject, path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: '%s': %s", ErrInvalidProject, path, err)
	}

	f.Path = path
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Load reads the project file at path.
func Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(abs)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}
	return Parse(abs, data)
}
