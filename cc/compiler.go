package cc

import (
	"bytes"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/magefile/mage/sh"

	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/util"
)

// Compiler identifies the C/C++ compiler a build uses.
type Compiler struct {
	Executable string
	// Name is the compiler family used in build directory names: msvc, gcc, clang, ...
	Name string
}

// IsMsvc reports whether the compiler takes Visual C++ style arguments.
func (c Compiler) IsMsvc() bool {
	return c.Name == "msvc"
}

// Identify determines the compiler from the CXX and CC settings.
func Identify(s config.Settings) Compiler {
	executable := s.CXX
	if executable == "$CC" {
		executable = s.CC
	}
	if executable == "" {
		executable = s.CC
	}
	if executable == "" {
		if s.IsWindows() {
			executable = "cl"
		} else {
			executable = "g++"
		}
	}
	return Compiler{executable, compilerName(executable)}
}

// versionSuffix matches the version of executables like g++-9 or clang++-10.
var versionSuffix = regexp.MustCompile(`-[0-9]+(\.[0-9]+)*$`)

func compilerName(executable string) string {
	base := filepath.Base(executable)
	if strings.EqualFold(filepath.Ext(base), ".exe") {
		base = strings.TrimSuffix(base, filepath.Ext(base))
	}
	base = versionSuffix.ReplaceAllString(strings.ToLower(base), "")

	// Cross compilers carry a target triple prefix: x86_64-linux-gnu-g++.
	switch base[strings.LastIndex(base, "-")+1:] {
	case "cl", "icc":
		return "msvc"
	case "gcc", "g++", "cc", "c++":
		return "gcc"
	case "clang", "clang++":
		return "clang"
	default:
		// Build directory names separate their parts with dashes.
		return strings.ReplaceAll(base, "-", "_")
	}
}

// Prober runs a command and returns everything it printed.
type Prober func(executable string, args ...string) (string, error)

// Probe runs a command through the shell helpers and collects stdout and stderr.
func Probe(executable string, args ...string) (string, error) {
	output := &bytes.Buffer{}
	_, err := sh.Exec(nil, output, output, executable, args...)
	return output.String(), err
}

// DetectVersion determines the compiler version. For msvc the MSVC_VERSION
// setting is used when present.
func DetectVersion(s config.Settings, c Compiler, path string, probe Prober) (util.Version, error) {
	if c.IsMsvc() && s.MSVCVersion != "" {
		return util.Version(strings.Split(s.MSVCVersion, ".")), nil
	}

	args := []string{"--version"}
	if c.IsMsvc() {
		args = nil
	}
	// cl exits with an error without input files but still prints its banner.
	output, err := probe(path, args...)
	version, ok := util.ParseVersion(output)
	if !ok {
		if err != nil {
			return nil, fmt.Errorf("%w: running '%s' failed: %s", locate.ErrToolNotFound, path, err)
		}
		return nil, fmt.Errorf("%w: could not determine the version of '%s'", locate.ErrToolNotFound, path)
	}
	return version, nil
}

// LocateCompiler resolves the compiler executable. Absolute compiler paths
// are used as they are.
func LocateCompiler(l *locate.Locator, c Compiler) (string, error) {
	req := locate.Request{Tool: locate.Compiler, Name: c.Executable}
	if filepath.IsAbs(c.Executable) {
		req.Override = c.Executable
	}
	loc, err := l.Locate(req)
	if err != nil {
		return "", err
	}
	return loc.Path, nil
}
