package locate

import (
	"os"
	"path/filepath"

	"github.com/daedaleanai/nbt/util"
)

const msbuildExecutable = "MSBuild.exe"

// MSBuild executables below a versioned MSBuild directory, best first.
var msbuildSubPaths = [][]string{
	{"Bin", "amd64", msbuildExecutable},
	{"amd64", msbuildExecutable},
	{"Bin", msbuildExecutable},
	{msbuildExecutable},
}

func isAnyMSBuildVersion(version string) bool {
	return version == "" || version == "latest" || version == "system"
}

func (l *Locator) findMSBuild(version string) (string, bool) {
	if isAnyMSBuildVersion(version) {
		// Mono's xbuild is being replaced by msbuild, so msbuild is preferred.
		if path, ok := l.findInPath("msbuild", "xbuild"); ok {
			return path, true
		}
	}

	if !l.host.isWindows() {
		for _, candidate := range []string{"/usr/bin/msbuild", "/usr/bin/xbuild"} {
			if util.FileExists(candidate) {
				return candidate, true
			}
		}
		return "", false
	}

	if path, ok := l.findMSBuildInRegistry(version); ok {
		return path, true
	}

	if isAnyMSBuildVersion(version) {
		for _, dir := range l.msbuildDirectories() {
			if path, ok := probeMSBuildDirectory(dir); ok {
				return path, true
			}
		}
		version = "latest"
	}

	for _, elements := range l.catalog.msbuildKnownPaths(version) {
		candidate, ok := l.expandElements(elements)
		if ok && util.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

func (l *Locator) findMSBuildInRegistry(version string) (string, bool) {
	if l.host.Registry == nil {
		return "", false
	}
	if version == "" {
		version = "system"
	}
	for _, toolsVersion := range l.catalog.msbuildToolsVersions(version) {
		dir, ok := l.host.Registry.ReadString(RegistryKey{
			Root:  LocalMachine,
			Path:  `SOFTWARE\Microsoft\MSBuild\ToolsVersions\` + toolsVersion,
			Value: "MSBuildToolsPath",
		})
		if !ok {
			continue
		}
		candidate := filepath.Join(dir, msbuildExecutable)
		if util.FileExists(candidate) {
			return candidate, true
		}
	}
	return "", false
}

// probeMSBuildDirectory checks each version directory below an MSBuild directory.
func probeMSBuildDirectory(dir string) (string, bool) {
	for _, version := range subDirectories(dir) {
		for _, subPath := range msbuildSubPaths {
			candidate := filepath.Join(append([]string{version}, subPath...)...)
			if util.FileExists(candidate) {
				return candidate, true
			}
		}
	}
	return "", false
}

// msbuildDirectories finds directories named `MSBuild` in the Program Files
// directories and up to three levels below Visual Studio installations
// (`Microsoft Visual Studio/<year>/<edition>/MSBuild`).
func (l *Locator) msbuildDirectories() []string {
	msbuildDirs := []string{}
	visualStudioDirs := []string{}

	// Visual Studio is a 32 bit application, its install is only looked for there.
	if programFiles := l.getenv("ProgramFiles(x86)"); programFiles != "" {
		for _, dir := range subDirectories(programFiles) {
			name := filepath.Base(dir)
			if util.ContainsFold(name, "visual studio") {
				visualStudioDirs = append(visualStudioDirs, dir)
			}
			if util.EqualFold(name, "msbuild") {
				msbuildDirs = append(msbuildDirs, dir)
			}
		}
	}

	// Up until Visual Studio 2015, MSBuild had its own directory.
	if programFiles := l.getenv("ProgramFiles"); programFiles != "" {
		for _, dir := range subDirectories(programFiles) {
			if util.EqualFold(filepath.Base(dir), "msbuild") {
				msbuildDirs = append(msbuildDirs, dir)
			}
		}
	}

	var walk func(dir string, depth int)
	walk = func(dir string, depth int) {
		for _, sub := range subDirectories(dir) {
			if util.EqualFold(filepath.Base(sub), "msbuild") {
				msbuildDirs = append(msbuildDirs, sub)
			} else if depth > 1 {
				walk(sub, depth-1)
			}
		}
	}
	for _, dir := range visualStudioDirs {
		walk(dir, 3)
	}

	return msbuildDirs
}

func subDirectories(dir string) []string {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil
	}
	dirs := []string{}
	for _, entry := range entries {
		if entry.IsDir() {
			dirs = append(dirs, filepath.Join(dir, entry.Name()))
		}
	}
	return dirs
}
