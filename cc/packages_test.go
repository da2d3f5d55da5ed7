package cc

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/daedaleanai/nbt/builddir"
)

func mkdirs(t *testing.T, dirs ...string) {
	t.Helper()
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			t.Fatal(err)
		}
	}
}

func TestFindIncludeDirectory(t *testing.T) {
	root := t.TempDir()
	pkg := filepath.Join(root, "zlib")
	mkdirs(t, filepath.Join(pkg, "zlib"))

	dir, err := FindIncludeDirectory(pkg)
	if err != nil || dir != filepath.Join(pkg, "zlib") {
		t.Fatalf("unexpected result %s, %v", dir, err)
	}

	mkdirs(t, filepath.Join(pkg, "include"))
	dir, err = FindIncludeDirectory(pkg)
	if err != nil || dir != filepath.Join(pkg, "include") {
		t.Fatalf("unexpected result %s, %v", dir, err)
	}

	_, err = FindIncludeDirectory(filepath.Join(root, "missing"))
	if !errors.Is(err, ErrMissingDirectory) {
		t.Fatalf("expected ErrMissingDirectory, got %v", err)
	}
}

func TestFindLibraryDirectory(t *testing.T) {
	root := t.TempDir()
	config := builddir.Configuration{Platform: "linux", ToolName: "gcc", ToolVersion: "9", Arch: "amd64"}

	mkdirs(t, filepath.Join(root, "lib"))
	dir, err := FindLibraryDirectory(root, config)
	if err != nil || dir != filepath.Join(root, "lib") {
		t.Fatalf("unexpected result %s, %v", dir, err)
	}

	older := filepath.Join(root, "linux-gcc7.0-amd64-release")
	mkdirs(t, older)
	dir, err = FindLibraryDirectory(root, config)
	if err != nil || dir != older {
		t.Fatalf("unexpected result %s, %v", dir, err)
	}

	exact := filepath.Join(root, "linux-gcc9-amd64-release")
	mkdirs(t, exact, filepath.Join(root, "linux-gcc10-amd64-release"), filepath.Join(root, "linux-gcc9-amd64-debug"))
	dir, err = FindLibraryDirectory(root, config)
	if err != nil || dir != exact {
		t.Fatalf("unexpected result %s, %v", dir, err)
	}
}

func TestFindLibraryDirectoryMissing(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "linux-gcc6-amd64-release"))
	config := builddir.Configuration{Platform: "linux", ToolName: "gcc", ToolVersion: "9", Arch: "amd64"}
	if _, err := FindLibraryDirectory(root, config); !errors.Is(err, ErrMissingDirectory) {
		t.Fatalf("expected ErrMissingDirectory, got %v", err)
	}
}

func TestResolvePackage(t *testing.T) {
	root := t.TempDir()
	mkdirs(t, filepath.Join(root, "Nuclex.Support", "Include"), filepath.Join(root, "Nuclex.Support", "lib"))
	config := builddir.Configuration{Platform: "linux", ToolName: "gcc", ToolVersion: "9", Arch: "amd64"}

	pkg, err := ResolvePackage(root, "Nuclex.Support", nil, config)
	if err != nil {
		t.Fatal(err)
	}
	if len(pkg.Libraries) != 1 || pkg.Libraries[0] != "Nuclex.Support" {
		t.Fatalf("unexpected libraries %v", pkg.Libraries)
	}
	if pkg.IncludeDirectory != filepath.Join(root, "Nuclex.Support", "Include") {
		t.Fatalf("unexpected include directory %s", pkg.IncludeDirectory)
	}
}
