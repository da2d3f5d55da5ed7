// Package scan enumerates the input files of a build below a directory.
package scan

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/daedaleanai/nbt/util"
)

// Extension sets of the different kinds of inputs. Matching is case sensitive.
var (
	CppSources    = []string{".c", ".C", ".cpp", ".cc", ".cxx", ".inl", ".inc"}
	CppHeaders    = []string{".h", ".H", ".hpp", ".hh", ".hxx", ".inl", ".inc"}
	DotNetSources = []string{".cs", ".vb"}
	BlendFiles    = []string{".blend"}
)

// ProjectFileNames are the names of nbt project files, in order of preference.
var ProjectFileNames = []string{"nbt.yaml", "nbt.yml", "nbt.toml"}

// Filter selects files during a walk.
type Filter struct {
	Extensions []string
	// IgnoreMarker names a file whose presence excludes its directory and everything below.
	IgnoreMarker string
	// SkipDirectories are directory names which are never entered.
	SkipDirectories []string
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Walk returns all matching files below root in lexical order. A missing
// root yields no files.
func (f Filter) Walk(root string) ([]string, error) {
	files := []string{}
	if !util.DirExists(root) {
		return files, nil
	}
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			if path != root && contains(f.SkipDirectories, entry.Name()) {
				return filepath.SkipDir
			}
			if f.IgnoreMarker != "" && util.FileExists(filepath.Join(path, f.IgnoreMarker)) {
				return filepath.SkipDir
			}
			return nil
		}
		if len(f.Extensions) == 0 || contains(f.Extensions, filepath.Ext(entry.Name())) {
			files = append(files, path)
		}
		return nil
	})
	return files, err
}

// Files returns the files below root having one of the extensions.
func Files(root string, extensions []string) ([]string, error) {
	return Filter{Extensions: extensions}.Walk(root)
}

// Rewrite moves paths below base into the variant directory, e.g.
// `Source/a.cpp` becomes `obj/linux-gcc9-amd64-release/Source/a.cpp`.
func Rewrite(paths []string, base, variant string) []string {
	result := []string{}
	for _, path := range paths {
		rel, err := filepath.Rel(base, path)
		if err != nil {
			rel = path
		}
		result = append(result, filepath.Join(variant, rel))
	}
	return result
}

// Subdirectories returns the names of the direct subdirectories of root
// which are not ignored.
func Subdirectories(root string, ignored []string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, err
	}
	dirs := []string{}
	for _, entry := range entries {
		if entry.IsDir() && !contains(ignored, entry.Name()) {
			dirs = append(dirs, entry.Name())
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ProjectFile returns the project file of dir.
func ProjectFile(dir string) (string, bool) {
	for _, name := range ProjectFileNames {
		path := filepath.Join(dir, name)
		if util.FileExists(path) {
			return path, true
		}
	}
	return "", false
}

// ProjectFiles finds the project files in all directories below root. The
// root directory itself is not included; intermediate and artifact
// directories are skipped.
func ProjectFiles(root string, skip []string) ([]string, error) {
	projects := []string{}
	subdirs, err := Subdirectories(root, append([]string{".git"}, skip...))
	if err != nil {
		return nil, err
	}
	for _, subdir := range subdirs {
		err := filepath.WalkDir(filepath.Join(root, subdir), func(path string, entry fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !entry.IsDir() {
				return nil
			}
			if entry.Name() == ".git" || contains(skip, entry.Name()) {
				return filepath.SkipDir
			}
			if project, ok := ProjectFile(path); ok {
				projects = append(projects, project)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	return projects, nil
}
