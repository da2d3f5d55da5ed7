package util

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/mitchellh/go-homedir"
	"golang.org/x/text/cases"
)

// FileMode is the default FileMode used when creating files.
const FileMode = 0664

// DirMode is the default FileMode used when creating directories.
const DirMode = 0775

// FileExists checks whether some file exists.
func FileExists(file string) bool {
	stat, err := os.Stat(file)
	return err == nil && !stat.IsDir()
}

// DirExists checks whether some directory exists.
func DirExists(dir string) bool {
	stat, err := os.Stat(dir)
	return err == nil && stat.IsDir()
}

var folder = cases.Fold()

// ContainsFold reports whether substr is within s, ignoring case.
func ContainsFold(s, substr string) bool {
	return strings.Contains(folder.String(s), folder.String(substr))
}

// EqualFold reports whether a and b are equal, ignoring case.
func EqualFold(a, b string) bool {
	return folder.String(a) == folder.String(b)
}

// ExpandPath expands a leading `~` and makes the path absolute.
func ExpandPath(p string) (string, error) {
	expanded, err := homedir.Expand(p)
	if err != nil {
		return "", fmt.Errorf("failed to expand path '%s': %w", p, err)
	}
	return filepath.Abs(expanded)
}

// ProjectRoot returns the root of the git worktree containing dir. Outside of
// a git repository, dir itself is the project root.
func ProjectRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	repo, err := git.PlainOpenWithOptions(abs, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return abs, nil
	}
	worktree, err := repo.Worktree()
	if err != nil {
		return abs, nil
	}
	return worktree.Filesystem.Root(), nil
}

// WriteFile writes data to a file, creating its parent directories.
func WriteFile(filePath string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(filePath), DirMode); err != nil {
		return err
	}
	return os.WriteFile(filePath, data, FileMode)
}
