package cc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/builddir"
	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/util"
)

// TestsResultSuffix ends the name of the XML report written by a unit test run.
// The report is named after the test executable, as in `Game.Tests.gtest-results.xml`.
const TestsResultSuffix = ".gtest-results.xml"

// Environment is the C/C++ toolchain configured for one project directory.
type Environment struct {
	Settings  config.Settings
	Compiler  Compiler
	Path      string
	Version   util.Version
	Toolchain Toolchain
	// BaseDirectory is the project directory relative settings paths are resolved against.
	BaseDirectory string
}

// NewEnvironment locates and probes the configured compiler.
func NewEnvironment(s config.Settings, baseDir string, l *locate.Locator, probe Prober) (*Environment, error) {
	compiler := Identify(s)
	path, err := LocateCompiler(l, compiler)
	if err != nil {
		return nil, err
	}
	version, err := DetectVersion(s, compiler, path, probe)
	if err != nil {
		return nil, err
	}
	log.Debug("Using %s %s at '%s'.\n", compiler.Name, version, path)

	var toolchain Toolchain
	if compiler.IsMsvc() {
		toolchain = NewMsvcToolchain(path, s.Debug)
	} else {
		toolchain = NewGccToolchain(path, s.Debug)
	}

	return &Environment{
		Settings:      s,
		Compiler:      compiler,
		Path:          path,
		Version:       version,
		Toolchain:     toolchain,
		BaseDirectory: baseDir,
	}, nil
}

// Configuration returns the build directory configuration of the environment.
func (e *Environment) Configuration() builddir.Configuration {
	return builddir.Configuration{
		Platform:    builddir.HostPlatform(e.Settings.GOOS),
		ToolName:    e.Compiler.Name,
		ToolVersion: e.Version.Major(),
		Arch:        e.Settings.TargetArch,
		Debug:       e.Settings.Debug,
	}
}

// BuildDirectoryName returns e.g. `linux-gcc9-amd64-release`.
func (e *Environment) BuildDirectoryName() string {
	return e.Configuration().Name()
}

func (e *Environment) resolve(dir string) string {
	if filepath.IsAbs(dir) {
		return dir
	}
	return filepath.Join(e.BaseDirectory, dir)
}

// IntermediatePath places a file in the intermediate build directory.
func (e *Environment) IntermediatePath(elem ...string) string {
	return builddir.IntermediatePath(e.resolve(e.Settings.IntermediateDirectory), e.BuildDirectoryName(), elem...)
}

// ArtifactPath places a file in the artifact build directory.
func (e *Environment) ArtifactPath(elem ...string) string {
	return builddir.ArtifactPath(e.resolve(e.Settings.ArtifactDirectory), e.BuildDirectoryName(), elem...)
}

// ReferencesDirectory returns the directory holding precompiled packages.
// Relative settings are resolved next to the project directory.
func (e *Environment) ReferencesDirectory() string {
	if filepath.IsAbs(e.Settings.ReferencesDirectory) {
		return e.Settings.ReferencesDirectory
	}
	return filepath.Join(filepath.Dir(e.BaseDirectory), e.Settings.ReferencesDirectory)
}

// ResolvePackage looks up a package in the references directory.
func (e *Environment) ResolvePackage(name string, libraries []string) (Package, error) {
	pkg, err := ResolvePackage(e.ReferencesDirectory(), name, libraries, e.Configuration())
	if err != nil {
		return Package{}, fmt.Errorf("package '%s': %w", name, err)
	}
	return pkg, nil
}

// objectPath maps a source file to its object file in the intermediate directory.
func (e *Environment) objectPath(src string) string {
	rel, err := filepath.Rel(e.BaseDirectory, src)
	if err != nil || filepath.IsAbs(rel) {
		rel = filepath.Base(src)
	}
	rel = strings.ReplaceAll(rel, "..", "__")
	return e.IntermediatePath(ObjectFileName(e.Settings.GOOS, rel))
}
