package cc

import (
	"errors"
	"fmt"
	"path/filepath"
	"strconv"

	"github.com/daedaleanai/nbt/builddir"
	"github.com/daedaleanai/nbt/util"
)

// ErrMissingDirectory is returned when a package lacks its include or library directory.
var ErrMissingDirectory = errors.New("missing package directory")

// Compilers older than this are not served by precompiled packages.
const oldestMajorVersion = 7

// Package is a precompiled library package below the references directory.
type Package struct {
	Name             string
	IncludeDirectory string
	LibraryDirectory string
	// Libraries are universal library names.
	Libraries []string
}

// FindIncludeDirectory guesses the include directory of a package.
func FindIncludeDirectory(packageDir string) (string, error) {
	candidates := []string{
		filepath.Join(packageDir, "include"),
		filepath.Join(packageDir, "Include"),
		filepath.Join(packageDir, filepath.Base(filepath.Clean(packageDir))),
	}
	for _, candidate := range candidates {
		if util.DirExists(candidate) {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no include directory in '%s'", ErrMissingDirectory, packageDir)
}

// FindLibraryDirectory finds the library build of a package matching the
// build configuration. Builds for older compiler versions are accepted,
// named either `N` or `N.0`. A plain `lib` directory is the last resort.
func FindLibraryDirectory(packageDir string, config builddir.Configuration) (string, error) {
	major := 0
	if v, ok := util.ParseVersion(config.ToolVersion); ok {
		major, _ = v.MajorNumber()
	}

	for ; major >= oldestMajorVersion; major-- {
		for _, version := range []string{strconv.Itoa(major), strconv.Itoa(major) + ".0"} {
			candidate := filepath.Join(packageDir, config.WithToolVersion(version).Name())
			if util.DirExists(candidate) {
				return candidate, nil
			}
		}
	}

	candidate := filepath.Join(packageDir, "lib")
	if util.DirExists(candidate) {
		return candidate, nil
	}
	return "", fmt.Errorf("%w: no library directory for '%s' in '%s'", ErrMissingDirectory, config.Name(), packageDir)
}

// ResolvePackage looks up a package in the references directory. Without
// explicit library names, a library named like the package is linked.
func ResolvePackage(referencesDir, name string, libraries []string, config builddir.Configuration) (Package, error) {
	packageDir := filepath.Join(referencesDir, name)
	includeDir, err := FindIncludeDirectory(packageDir)
	if err != nil {
		return Package{}, err
	}
	libraryDir, err := FindLibraryDirectory(packageDir, config)
	if err != nil {
		return Package{}, err
	}
	if len(libraries) == 0 {
		libraries = []string{name}
	}
	return Package{name, includeDir, libraryDir, append([]string{}, libraries...)}, nil
}
