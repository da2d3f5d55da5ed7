package cc

import (
	"path/filepath"
	"strings"
)

// Universal names use dots to separate words, e.g. `My.Awesome.Stuff`. On
// Windows they keep their dots and get an extension, elsewhere the dots are
// removed and the toolchain adds the usual decoration.

// LibraryName returns the platform-specific name of a library.
func LibraryName(goos, universal string, static bool) string {
	if goos == "windows" {
		if static {
			return universal + ".lib"
		}
		return universal + ".dll"
	}
	return strings.ReplaceAll(universal, ".", "")
}

// ExecutableName returns the platform-specific name of an executable.
func ExecutableName(goos, universal string) string {
	if goos == "windows" {
		return universal + ".exe"
	}
	return strings.ReplaceAll(universal, ".", "")
}

// LinkName returns the name a library is passed to the linker with.
func LinkName(goos, universal string) string {
	return LibraryName(goos, universal, true)
}

// ObjectFileName returns the object file a source file compiles to.
func ObjectFileName(goos, source string) string {
	ext := ".o"
	if goos == "windows" {
		ext = ".obj"
	}
	return strings.TrimSuffix(source, filepath.Ext(source)) + ext
}
