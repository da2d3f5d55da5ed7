package cc

import (
	"github.com/daedaleanai/nbt/core"
)

// Library builds a static or shared C/C++ library.
type Library struct {
	Name               string
	Static             bool
	Sources            []string
	IncludeDirectories []string
	Packages           []Package
}

// Executable builds a C/C++ program.
type Executable struct {
	Name               string
	Console            bool
	Sources            []string
	IncludeDirectories []string
	Packages           []Package
}

// LibraryWithTests builds a static library once and derives both a shared
// library and a unit test executable from it.
type LibraryWithTests struct {
	Name               string
	TestName           string
	Sources            []string
	TestSources        []string
	IncludeDirectories []string
	Packages           []Package
}

func (e *Environment) isMsvc() bool {
	_, ok := e.Toolchain.(MsvcToolchain)
	return ok
}

// binaryFlags returns the compiler flags for code going into binary.
func (e *Environment) binaryFlags(binary string, executable bool) Flags {
	if msvc, ok := e.Toolchain.(MsvcToolchain); ok {
		return msvc.PdbFlag(binary)
	}
	if executable {
		return Flags{"-fpic", "-fpie"}
	}
	return Flags{"-fpic"}
}

func includes(dirs []string, packages []Package) []string {
	result := append([]string{}, dirs...)
	for _, pkg := range packages {
		result = append(result, pkg.IncludeDirectory)
	}
	return result
}

func (e *Environment) linkPackages(l Link, packages []Package) Link {
	for _, pkg := range packages {
		l.LibraryDirectories = append(l.LibraryDirectories, pkg.LibraryDirectory)
		for _, lib := range pkg.Libraries {
			l.Libraries = append(l.Libraries, LinkName(e.Settings.GOOS, lib))
		}
	}
	return l
}

func (e *Environment) compileSources(g *core.Graph, sources []string, includes []string, flags Flags) ([]string, error) {
	objs := []string{}
	for _, src := range sources {
		out := e.objectPath(src)
		if _, err := g.Add(e.Toolchain.ObjectFile(Compile{out, src, includes, flags})); err != nil {
			return nil, err
		}
		objs = append(objs, out)
	}
	return objs, nil
}

// LibraryPath returns the output file of a library.
func (e *Environment) LibraryPath(universal string, static bool) string {
	return e.IntermediatePath(e.Toolchain.LibraryFile(LibraryName(e.Settings.GOOS, universal, static), static))
}

// ExecutablePath returns the output file of an executable.
func (e *Environment) ExecutablePath(universal string) string {
	return e.IntermediatePath(ExecutableName(e.Settings.GOOS, universal))
}

// BuildLibrary registers the commands of a library and returns its output.
func (e *Environment) BuildLibrary(g *core.Graph, lib Library) (string, error) {
	out := e.LibraryPath(lib.Name, lib.Static)
	objs, err := e.compileSources(g, lib.Sources, includes(lib.IncludeDirectories, lib.Packages), e.binaryFlags(out, false))
	if err != nil {
		return "", err
	}

	var cmd core.Command
	if lib.Static {
		cmd = e.Toolchain.StaticLibrary(out, objs)
	} else {
		cmd = e.Toolchain.SharedLibrary(e.linkPackages(Link{Out: out, Objects: objs}, lib.Packages))
	}
	if _, err := g.Add(cmd); err != nil {
		return "", err
	}
	return out, nil
}

// BuildExecutable registers the commands of an executable and returns its output.
func (e *Environment) BuildExecutable(g *core.Graph, exe Executable) (string, error) {
	out := e.ExecutablePath(exe.Name)
	objs, err := e.compileSources(g, exe.Sources, includes(exe.IncludeDirectories, exe.Packages), e.binaryFlags(out, true))
	if err != nil {
		return "", err
	}

	link := e.linkPackages(Link{Out: out, Objects: objs}, exe.Packages)
	if exe.Console && e.isMsvc() {
		link.Flags = append(link.Flags, "/SUBSYSTEM:CONSOLE")
	}
	if _, err := g.Add(e.Toolchain.Executable(link)); err != nil {
		return "", err
	}
	return out, nil
}

// GTestPackage resolves the googletest package unit tests link against.
func (e *Environment) GTestPackage() (Package, error) {
	return e.ResolvePackage("gtest", []string{"gtest", "gtest_main"})
}

// BuildLibraryWithTests registers the static library, the shared library and
// the unit test executable. It returns the shared library and the test executable.
func (e *Environment) BuildLibraryWithTests(g *core.Graph, lwt LibraryWithTests) ([]string, error) {
	gtest, err := e.GTestPackage()
	if err != nil {
		return nil, err
	}

	staticLibrary, err := e.BuildLibrary(g, Library{
		Name:               lwt.Name + ".Static",
		Static:             true,
		Sources:            lwt.Sources,
		IncludeDirectories: lwt.IncludeDirectories,
		Packages:           lwt.Packages,
	})
	if err != nil {
		return nil, err
	}

	sharedLibrary := e.LibraryPath(lwt.Name, false)
	link := e.linkPackages(Link{Out: sharedLibrary, WholeArchives: []string{staticLibrary}}, lwt.Packages)
	if _, err := g.Add(e.Toolchain.SharedLibrary(link)); err != nil {
		return nil, err
	}

	testPackages := append(append([]Package{}, lwt.Packages...), gtest)
	testExecutable := e.ExecutablePath(lwt.TestName)
	objs, err := e.compileSources(g, lwt.TestSources, includes(lwt.IncludeDirectories, testPackages), e.binaryFlags(testExecutable, true))
	if err != nil {
		return nil, err
	}
	link = e.linkPackages(Link{Out: testExecutable, Objects: append(objs, staticLibrary)}, testPackages)
	if e.isMsvc() {
		link.Flags = append(link.Flags, "/SUBSYSTEM:CONSOLE")
	}
	if !e.Settings.IsWindows() {
		link.Libraries = append(link.Libraries, "pthread")
	}
	if _, err := g.Add(e.Toolchain.Executable(link)); err != nil {
		return nil, err
	}

	return []string{sharedLibrary, testExecutable}, nil
}

// RunUnitTests registers a run of a unit test executable producing an XML report.
func (e *Environment) RunUnitTests(g *core.Graph, testName string) (string, error) {
	executable := e.ExecutablePath(testName)
	result := e.ArtifactPath(testName + TestsResultSuffix)
	cmd := core.Assemble(executable, nil, []string{"--gtest_output=xml:" + result}, []string{executable}, []string{result}).
		WithDescription("TEST %s", testName)
	if _, err := g.Add(cmd); err != nil {
		return "", err
	}
	return result, nil
}
