package util

import (
	"os"
	"path/filepath"
	"testing"
)

func TestFileAndDirExists(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "blender")
	if err := os.WriteFile(file, []byte{}, FileMode); err != nil {
		t.Fatal(err)
	}

	if !FileExists(file) || FileExists(dir) {
		t.Fatal("FileExists must only accept regular files")
	}
	if !DirExists(dir) || DirExists(file) {
		t.Fatal("DirExists must only accept directories")
	}
	if FileExists(filepath.Join(dir, "missing")) {
		t.Fatal("missing file reported as existing")
	}
}

func TestContainsFold(t *testing.T) {
	cases := []struct {
		s, substr string
		want      bool
	}{
		{"Blender Foundation", "blender", true},
		{"Godot_v3.1", "GODOT", true},
		{"Microsoft Visual Studio", "visual studio", true},
		{"Inkscape", "blender", false},
	}
	for _, c := range cases {
		if got := ContainsFold(c.s, c.substr); got != c.want {
			t.Errorf("ContainsFold(%q, %q) = %v", c.s, c.substr, got)
		}
	}
	if !EqualFold("MSBuild", "msbuild") {
		t.Error("EqualFold must ignore case")
	}
}

func TestParseVersion(t *testing.T) {
	v, ok := ParseVersion("g++ (Ubuntu 9.3.0-17ubuntu1~20.04) 9.3.0")
	if !ok {
		t.Fatal("version not found")
	}
	if v.String() != "9.3.0" || v.Major() != "9" {
		t.Fatalf("unexpected version %v", v)
	}
	if n, ok := v.MajorNumber(); !ok || n != 9 {
		t.Fatalf("unexpected major number %d", n)
	}

	if _, ok := ParseVersion("no digits here"); ok {
		t.Fatal("expected no version")
	}
}

func TestProjectRootOutsideRepository(t *testing.T) {
	dir := t.TempDir()
	root, err := ProjectRoot(dir)
	if err != nil {
		t.Fatal(err)
	}
	abs, _ := filepath.Abs(dir)
	if root != abs {
		t.Fatalf("expected %s, got %s", abs, root)
	}
}

func TestWriteFileCreatesParents(t *testing.T) {
	target := filepath.Join(t.TempDir(), "obj", "linux-gcc9-amd64-release", "build.ninja")
	if err := WriteFile(target, []byte("rule r0\n")); err != nil {
		t.Fatal(err)
	}
	if !FileExists(target) {
		t.Fatal("file was not written")
	}
}
