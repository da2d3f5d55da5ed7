package locate

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

func makeExecutable(t *testing.T, elements ...string) string {
	t.Helper()
	path := filepath.Join(elements...)
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("#!/bin/sh\n"), 0755); err != nil {
		t.Fatal(err)
	}
	return path
}

type testHost struct {
	goos     string
	path     []string
	env      map[string]string
	registry RegistryMap
	opt      string
}

func (h testHost) host() Host {
	return Host{
		GOOS: h.goos,
		LookPath: func(name string) (string, error) {
			for _, dir := range h.path {
				candidate := filepath.Join(dir, name)
				if stat, err := os.Stat(candidate); err == nil && !stat.IsDir() {
					return candidate, nil
				}
			}
			return "", exec.ErrNotFound
		},
		Getenv:       func(key string) string { return h.env[key] },
		Registry:     h.registry,
		OptDirectory: h.opt,
	}
}

func TestPathWinsOverInstallDirectory(t *testing.T) {
	root := t.TempDir()
	inPath := makeExecutable(t, root, "usr", "bin", "blender")
	makeExecutable(t, root, "opt", "blender-2.79b-linux", "blender")

	l := New(testHost{goos: "linux", path: []string{filepath.Join(root, "usr", "bin")}, opt: filepath.Join(root, "opt")}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != inPath {
		t.Fatalf("expected PATH location %s, got %s", inPath, loc.Path)
	}
}

func TestInstallDirectoryFallback(t *testing.T) {
	root := t.TempDir()
	opt := filepath.Join(root, "opt")
	makeExecutable(t, opt, "Inkscape", "blender")
	expected := makeExecutable(t, opt, "BLENDER-2.80", "Blender", "blender")

	l := New(testHost{goos: "linux", opt: opt}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != expected {
		t.Fatalf("expected %s, got %s", expected, loc.Path)
	}
}

func TestNotFound(t *testing.T) {
	root := t.TempDir()
	l := New(testHost{goos: "linux", opt: root}.host(), DefaultCatalog())

	for _, req := range []Request{
		{Tool: Blender},
		{Tool: Godot, Version: "3.1"},
		{Tool: Compiler, Name: "g++"},
		{Tool: Compiler},
		{Tool: Ninja},
	} {
		loc, err := l.Locate(req)
		if !errors.Is(err, ErrToolNotFound) {
			t.Fatalf("%s: expected ErrToolNotFound, got %v", req.Tool, err)
		}
		if loc.Path != "" {
			t.Fatalf("%s: not-found result leaked a path: %s", req.Tool, loc.Path)
		}
	}
}

func TestGodotVersions(t *testing.T) {
	root := t.TempDir()
	opt := filepath.Join(root, "opt")
	expected := makeExecutable(t, opt, "godot-engine", "bin", "Godot_v3.1-stable_x11.64")

	l := New(testHost{goos: "linux", opt: opt}.host(), DefaultCatalog())

	loc, err := l.Locate(Request{Tool: Godot, Version: "3.1"})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != expected {
		t.Fatalf("expected %s, got %s", expected, loc.Path)
	}

	if _, err := l.Locate(Request{Tool: Godot, Version: "3.0"}); !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("expected 3.0 to be missing, got %v", err)
	}

	_, err = l.Locate(Request{Tool: Godot, Version: "4.2"})
	var notFound *NotFoundError
	if !errors.As(err, &notFound) || notFound.Reason != "unknown Godot version" {
		t.Fatalf("expected unknown version error, got %v", err)
	}
}

func TestOverride(t *testing.T) {
	root := t.TempDir()
	makeExecutable(t, root, "bin", "blender")
	override := makeExecutable(t, root, "custom", "blender-nightly")

	l := New(testHost{goos: "linux", path: []string{filepath.Join(root, "bin")}}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender, Override: override})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != override {
		t.Fatalf("expected override %s, got %s", override, loc.Path)
	}

	_, err = l.Locate(Request{Tool: Blender, Override: filepath.Join(root, "custom", "missing")})
	if !errors.Is(err, ErrToolNotFound) {
		t.Fatalf("missing override must not fall back, got %v", err)
	}
}

func TestCompilerInPath(t *testing.T) {
	root := t.TempDir()
	expected := makeExecutable(t, root, "g++")

	l := New(testHost{goos: "linux", path: []string{root}}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Compiler, Name: "g++"})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != expected {
		t.Fatalf("expected %s, got %s", expected, loc.Path)
	}
}

func TestBlenderRegistry(t *testing.T) {
	root := t.TempDir()
	registered := makeExecutable(t, root, "Blender Foundation", "Blender", "blender.exe")
	notepad := makeExecutable(t, root, "Windows", "notepad.exe")

	registry := RegistryMap{
		{LocalMachine, `SOFTWARE\Classes\blendfile\shell\open\command`, ""}: `"` + notepad + `" "%1"`,
		{ClassesRoot, `blendfile\shell\open\command`, ""}:                   `"` + registered + `" "%1"`,
	}
	l := New(testHost{goos: "windows", registry: registry}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != registered {
		t.Fatalf("expected %s, got %s", registered, loc.Path)
	}
}

func TestBlenderProgramFiles(t *testing.T) {
	root := t.TempDir()
	programFiles := filepath.Join(root, "Program Files")
	expected := makeExecutable(t, programFiles, "Blender Foundation", "Blender", "blender.exe")

	host := testHost{
		goos:     "windows",
		env:      map[string]string{"ProgramFiles": programFiles},
		registry: RegistryMap{},
	}
	l := New(host.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender})
	if err != nil {
		t.Fatal(err)
	}
	if loc.Path != expected {
		t.Fatalf("expected %s, got %s", expected, loc.Path)
	}
}

func TestCacheDropsVanishedFiles(t *testing.T) {
	root := t.TempDir()
	opt := filepath.Join(root, "opt")
	first := makeExecutable(t, opt, "blender-a", "blender")

	l := New(testHost{goos: "linux", opt: opt}.host(), DefaultCatalog())
	loc, err := l.Locate(Request{Tool: Blender})
	if err != nil || loc.Path != first {
		t.Fatalf("unexpected first result %v, %v", loc, err)
	}

	second := makeExecutable(t, opt, "blender-b", "blender")
	loc, _ = l.Locate(Request{Tool: Blender})
	if loc.Path != first {
		t.Fatalf("expected the cached location, got %s", loc.Path)
	}

	if err := os.Remove(first); err != nil {
		t.Fatal(err)
	}
	loc, err = l.Locate(Request{Tool: Blender})
	if err != nil || loc.Path != second {
		t.Fatalf("expected %s after removal, got %v, %v", second, loc, err)
	}

	l.Forget()
	loc, err = l.Locate(Request{Tool: Blender})
	if err != nil || loc.Path != second {
		t.Fatalf("unexpected result after Forget: %v, %v", loc, err)
	}
}

func TestQuotedExecutable(t *testing.T) {
	path, ok := QuotedExecutable(`"C:\Program Files\Blender Foundation\Blender\blender.exe" "%1"`)
	if !ok || path != `C:\Program Files\Blender Foundation\Blender\blender.exe` {
		t.Fatalf("unexpected path %q", path)
	}
	if _, ok := QuotedExecutable(`blender.exe %1`); ok {
		t.Fatal("unquoted command must not match")
	}
}

func TestCatalogIsNotShared(t *testing.T) {
	c := DefaultCatalog()
	names, _ := c.godotExecutables("3.1")
	names[0] = "tampered"
	again, _ := c.godotExecutables("3.1")
	if again[0] == "tampered" {
		t.Fatal("catalog table was modified through an accessor")
	}
}
