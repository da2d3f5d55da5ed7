package cc

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/util"
)

// Flags are compiler or linker arguments.
type Flags []string

func (f Flags) String() string {
	return strings.Join(f, " ")
}

func (f Flags) with(more ...string) Flags {
	return append(append(Flags{}, f...), more...)
}

// Compile describes the compilation of one source file.
type Compile struct {
	Out      string
	Src      string
	Includes []string
	Flags    Flags
}

// Link describes linking a library or an executable.
type Link struct {
	Out     string
	Objects []string
	// WholeArchives are static libraries linked in completely.
	WholeArchives      []string
	LibraryDirectories []string
	// Libraries are passed by link name, see LinkName.
	Libraries []string
	Flags     Flags
}

// Toolchain assembles the commands of a C/C++ build.
type Toolchain interface {
	ObjectFile(c Compile) core.Command
	StaticLibrary(out string, objs []string) core.Command
	SharedLibrary(l Link) core.Command
	Executable(l Link) core.Command
	// LibraryFile decorates a platform-specific library name with prefix and extension.
	LibraryFile(name string, static bool) string
}

// siblingTool returns the tool next to the compiler if it exists there.
func siblingTool(compiler, name string) string {
	candidate := filepath.Join(filepath.Dir(compiler), name)
	if util.FileExists(candidate) {
		return candidate
	}
	return name
}

// GccToolchain represents a gcc or clang toolchain.
type GccToolchain struct {
	Cxx string
	Ar  string

	CompilerFlags Flags
	LinkerFlags   Flags
}

// NewGccToolchain creates a toolchain with the standard flags for the build configuration.
func NewGccToolchain(cxx string, debug bool) GccToolchain {
	compilerFlags := Flags{
		"-std=c++14",
		"-fvisibility=hidden",
		"-Wpedantic",
		"-Wall",
		"-Wno-unknown-pragmas",
		"-shared-libgcc",
	}
	linkerFlags := Flags{"-Wl,-z,defs", "-Wl,-Bsymbolic"}
	if debug {
		compilerFlags = append(compilerFlags, "-Og", "-g")
	} else {
		compilerFlags = append(compilerFlags, "-O3", "-flto")
		linkerFlags = append(linkerFlags, "-flto")
	}
	return GccToolchain{
		Cxx:           cxx,
		Ar:            siblingTool(cxx, "ar"),
		CompilerFlags: compilerFlags,
		LinkerFlags:   linkerFlags,
	}
}

// ObjectFile generates a compile command writing a dependency file next to the object.
func (gcc GccToolchain) ObjectFile(c Compile) core.Command {
	depfile := strings.TrimSuffix(c.Out, filepath.Ext(c.Out)) + ".d"
	args := append(Flags{}, c.Flags...)
	for _, include := range c.Includes {
		args = append(args, "-I"+include)
	}
	args = append(args, "-c", "-o", c.Out, "-MD", "-MF", depfile, c.Src)

	cmd := core.Assemble(gcc.Cxx, gcc.CompilerFlags, args, []string{c.Src}, []string{c.Out})
	cmd.Depfile = depfile
	return cmd.WithDescription("CC %s", filepath.Base(c.Out))
}

// StaticLibrary generates the command to build a static library.
func (gcc GccToolchain) StaticLibrary(out string, objs []string) core.Command {
	args := append([]string{out}, objs...)
	return core.Assemble(gcc.Ar, []string{"rcs"}, args, objs, []string{out}).
		WithDescription("AR %s", filepath.Base(out))
}

func (gcc GccToolchain) linkArgs(l Link) []string {
	args := []string{"-o", l.Out}
	args = append(args, l.Objects...)
	if len(l.WholeArchives) > 0 {
		args = append(args, "-Wl,--whole-archive")
		args = append(args, l.WholeArchives...)
		args = append(args, "-Wl,--no-whole-archive")
	}
	for _, dir := range l.LibraryDirectories {
		args = append(args, "-L"+dir)
	}
	for _, lib := range l.Libraries {
		args = append(args, "-l"+lib)
	}
	return append(args, l.Flags...)
}

// SharedLibrary generates the command to link a shared library.
func (gcc GccToolchain) SharedLibrary(l Link) core.Command {
	fixed := Flags{"-shared"}.with(gcc.LinkerFlags...)
	return core.Assemble(gcc.Cxx, fixed, gcc.linkArgs(l), linkInputs(l), []string{l.Out}).
		WithDescription("LD %s", filepath.Base(l.Out))
}

// Executable generates the command to link an executable.
func (gcc GccToolchain) Executable(l Link) core.Command {
	return core.Assemble(gcc.Cxx, gcc.LinkerFlags, gcc.linkArgs(l), linkInputs(l), []string{l.Out}).
		WithDescription("LD %s", filepath.Base(l.Out))
}

// LibraryFile adds the `lib` prefix and the `.a` or `.so` extension.
func (gcc GccToolchain) LibraryFile(name string, static bool) string {
	if static {
		return "lib" + name + ".a"
	}
	return "lib" + name + ".so"
}

// MsvcToolchain represents the Visual C++ toolchain.
type MsvcToolchain struct {
	Cl   string
	Lib  string
	Link string

	CompilerFlags Flags
	ArchiverFlags Flags
	LinkerFlags   Flags
	Debug         bool
}

// NewMsvcToolchain creates a toolchain with the standard flags for the build configuration.
func NewMsvcToolchain(cl string, debug bool) MsvcToolchain {
	compilerFlags := Flags{"/nologo", "/EHsc", "/GF", "/utf-8", "/std:c++14", "/W4", "/GS-", "/GR"}
	archiverFlags := Flags{"/nologo"}
	linkerFlags := Flags{"/nologo"}
	if debug {
		compilerFlags = append(compilerFlags, "/Od", "/MDd", "/Zi", "/FS")
		linkerFlags = append(linkerFlags, "/DEBUG")
	} else {
		compilerFlags = append(compilerFlags, "/O2", "/Gy", "/GL", "/MD", "/Gw")
		archiverFlags = append(archiverFlags, "/LTCG")
		linkerFlags = append(linkerFlags, "/LTCG")
	}
	return MsvcToolchain{
		Cl:            cl,
		Lib:           siblingTool(cl, "lib.exe"),
		Link:          siblingTool(cl, "link.exe"),
		CompilerFlags: compilerFlags,
		ArchiverFlags: archiverFlags,
		LinkerFlags:   linkerFlags,
		Debug:         debug,
	}
}

// PdbFlag returns the flag directing debug information of a binary into its pdb file.
func (msvc MsvcToolchain) PdbFlag(binary string) Flags {
	if !msvc.Debug {
		return nil
	}
	return Flags{fmt.Sprintf("/Fd%s", strings.TrimSuffix(binary, filepath.Ext(binary))+".pdb")}
}

// ObjectFile generates a compile command.
func (msvc MsvcToolchain) ObjectFile(c Compile) core.Command {
	args := append(Flags{}, c.Flags...)
	for _, include := range c.Includes {
		args = append(args, "/I"+include)
	}
	args = append(args, "/c", c.Src, "/Fo"+c.Out)
	return core.Assemble(msvc.Cl, msvc.CompilerFlags, args, []string{c.Src}, []string{c.Out}).
		WithDescription("CL %s", filepath.Base(c.Out))
}

// StaticLibrary generates the command to build a static library.
func (msvc MsvcToolchain) StaticLibrary(out string, objs []string) core.Command {
	args := append([]string{"/OUT:" + out}, objs...)
	return core.Assemble(msvc.Lib, msvc.ArchiverFlags, args, objs, []string{out}).
		WithDescription("LIB %s", filepath.Base(out))
}

func (msvc MsvcToolchain) linkArgs(l Link) []string {
	args := []string{"/OUT:" + l.Out}
	args = append(args, l.Objects...)
	for _, archive := range l.WholeArchives {
		args = append(args, "/WHOLEARCHIVE:"+archive)
	}
	for _, dir := range l.LibraryDirectories {
		args = append(args, "/LIBPATH:"+dir)
	}
	args = append(args, l.Libraries...)
	return append(args, l.Flags...)
}

// SharedLibrary generates the command to link a DLL and its import library.
func (msvc MsvcToolchain) SharedLibrary(l Link) core.Command {
	fixed := Flags{"/DLL"}.with(msvc.LinkerFlags...)
	return core.Assemble(msvc.Link, fixed, msvc.linkArgs(l), linkInputs(l), []string{l.Out}).
		WithDescription("LINK %s", filepath.Base(l.Out))
}

// Executable generates the command to link an executable.
func (msvc MsvcToolchain) Executable(l Link) core.Command {
	return core.Assemble(msvc.Link, msvc.LinkerFlags, msvc.linkArgs(l), linkInputs(l), []string{l.Out}).
		WithDescription("LINK %s", filepath.Base(l.Out))
}

// LibraryFile returns the name unchanged, Windows names already carry their extension.
func (msvc MsvcToolchain) LibraryFile(name string, static bool) string {
	return name
}

func linkInputs(l Link) []string {
	return append(append([]string{}, l.Objects...), l.WholeArchives...)
}
