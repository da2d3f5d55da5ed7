package locate

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/util"
)

func (l *Locator) findInPath(names ...string) (string, bool) {
	if l.host.LookPath == nil {
		return "", false
	}
	for _, name := range names {
		path, err := l.host.LookPath(name)
		if err != nil {
			continue
		}
		if abs, err := filepath.Abs(path); err == nil && util.FileExists(abs) {
			return abs, true
		}
	}
	return "", false
}

// installParents returns the directories software is commonly installed into.
func (l *Locator) installParents() []string {
	if !l.host.isWindows() {
		if l.host.OptDirectory == "" {
			return nil
		}
		return []string{l.host.OptDirectory}
	}

	parents := []string{}
	for _, variable := range []string{"ProgramFiles", "ProgramFiles(x86)"} {
		if dir := l.getenv(variable); dir != "" {
			parents = append(parents, dir)
		}
	}
	return parents
}

// installDirectories returns the direct subdirectories of the install parents
// whose name contains marker, ignoring case.
func (l *Locator) installDirectories(marker string) []string {
	dirs := []string{}
	for _, parent := range l.installParents() {
		entries, err := os.ReadDir(parent)
		if err != nil {
			log.Debug("Cannot enumerate '%s': %s.\n", parent, err)
			continue
		}
		for _, entry := range entries {
			if entry.IsDir() && util.ContainsFold(entry.Name(), marker) {
				dirs = append(dirs, filepath.Join(parent, entry.Name()))
			}
		}
	}
	return dirs
}

// findInInstallDirectories probes `<install dir>/<sub dir>/<name>` for every
// install directory matching marker.
func (l *Locator) findInInstallDirectories(marker string, subDirs []string, names []string) (string, bool) {
	for _, dir := range l.installDirectories(marker) {
		for _, subDir := range subDirs {
			base := filepath.Join(dir, subDir)
			if !util.DirExists(base) {
				continue
			}
			for _, name := range names {
				candidate := filepath.Join(base, name)
				if util.FileExists(candidate) {
					return candidate, true
				}
			}
		}
	}
	return "", false
}

// findInRegistryCommands reads shell command strings from the registry and
// accepts the first quoted executable path that exists and whose name contains
// expectedName.
func (l *Locator) findInRegistryCommands(keys []RegistryKey, expectedName string) (string, bool) {
	if l.host.Registry == nil {
		return "", false
	}
	for _, key := range keys {
		command, ok := l.host.Registry.ReadString(key)
		if !ok {
			continue
		}
		candidate, ok := QuotedExecutable(command)
		if !ok {
			continue
		}
		if util.FileExists(candidate) && util.ContainsFold(filepath.Base(candidate), expectedName) {
			return candidate, true
		}
	}
	return "", false
}

func (l *Locator) getenv(key string) string {
	if l.host.Getenv == nil {
		return ""
	}
	return l.host.Getenv(key)
}

// expandElements joins path elements, replacing `%VARIABLE%` elements with the
// variable's value. It fails if a variable is not set.
func (l *Locator) expandElements(elements []string) (string, bool) {
	expanded := make([]string, 0, len(elements))
	for _, element := range elements {
		if len(element) > 2 && strings.HasPrefix(element, "%") && strings.HasSuffix(element, "%") {
			value := l.getenv(element[1 : len(element)-1])
			if value == "" {
				return "", false
			}
			element = value
		}
		expanded = append(expanded, element)
	}
	return filepath.Join(expanded...), true
}
