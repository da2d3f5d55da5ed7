package project

import (
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/daedaleanai/nbt/blender"
	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/msbuild"
)

func touch(t *testing.T, elements ...string) string {
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

func testPlanner(t *testing.T, root string) *Planner {
	t.Helper()
	bin := filepath.Join(root, "usr", "bin")
	touch(t, bin, "g++")
	touch(t, bin, "blender")
	touch(t, root, "opt", "godot-engine", "bin", "Godot_v3.1-stable_x11.64")

	host := locate.Host{
		GOOS: "linux",
		LookPath: func(name string) (string, error) {
			candidate := filepath.Join(bin, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
			return "", exec.ErrNotFound
		},
		Getenv:       func(string) string { return "" },
		Registry:     locate.RegistryMap{},
		OptDirectory: filepath.Join(root, "opt"),
	}
	probe := func(string, ...string) (string, error) {
		return "g++ (GCC) 9.3.0\n", nil
	}
	return NewPlanner(locate.New(host, locate.DefaultCatalog()), probe)
}

func testSettings(t *testing.T) config.Settings {
	t.Helper()
	s, err := config.FromMap("linux", "amd64", nil)
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func TestPlan(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Nuclex.Game.Native")
	touch(t, dir, "Source", "Game.cpp")
	touch(t, dir, "Include", "Game.h")
	touch(t, dir, "Tests", "GameTest.cpp")
	touch(t, root, "References", "gtest", "include", "gtest", "gtest.h")
	touch(t, root, "References", "gtest", "linux-gcc9-amd64-debug", "libgtest.a")
	touch(t, root, "References", "boost", "include", "boost", "config.hpp")
	touch(t, root, "References", "boost", "lib", "libboost_system.so")
	touch(t, root, "References", "expat", "Include", "expat.h")
	touch(t, root, "References", "expat", "linux-gcc9-amd64-debug", "libexpat.so")

	f, err := Parse(filepath.Join(dir, "nbt.yaml"), []byte(yamlProject))
	if err != nil {
		t.Fatal(err)
	}
	f.Targets = append(f.Targets, Target{Name: "Game", Kind: KindGodot, Project: "Game", Preset: "Linux/X11", Output: "bin/game"})

	g := core.NewGraph()
	p := testPlanner(t, root)
	if err := p.Plan(g, f, testSettings(t)); err != nil {
		t.Fatal(err)
	}

	// library-with-tests: compile, archive, shared link, test compile, test link.
	if g.Len() != 8 {
		t.Fatalf("expected 8 commands, got %d: %v", g.Len(), g.Targets())
	}

	// The project settings turn on debug builds.
	results := filepath.Join(dir, "bin", "linux-gcc9-amd64-debug", "Nuclex.Game.Native.Tests.gtest-results.xml")
	if _, ok := g.Producer(results); !ok {
		t.Fatalf("no command produces %s: %v", results, g.Targets())
	}
	shared := filepath.Join(dir, "obj", "linux-gcc9-amd64-debug", "libNuclexGameNative.so")
	node, ok := g.Producer(shared)
	if !ok {
		t.Fatalf("no command produces %s: %v", shared, g.Targets())
	}
	if action := g.Command(node).Action; !strings.Contains(action, "-lboost_system") || !strings.Contains(action, "-lexpat") {
		t.Fatalf("shared library does not link the packages: %s", action)
	}

	node, ok = g.Producer(filepath.Join(dir, "Models", "Player.fbx"))
	if !ok {
		t.Fatalf("mesh export missing: %v", g.Targets())
	}
	if action := g.Command(node).Action; !strings.HasSuffix(action, `'Body*' Head`) {
		t.Fatalf("unexpected export action: %s", action)
	}
	for _, script := range []string{blender.MeshScript, blender.AnimationScript} {
		if _, err := os.Stat(filepath.Join(ScriptDirectory(testSettings(t), dir), script)); err != nil {
			t.Fatalf("export script not written: %v", err)
		}
	}

	if _, ok := g.Producer(filepath.Join(dir, "bin", "game")); !ok {
		t.Fatalf("godot export missing: %v", g.Targets())
	}
}

func TestPlanRejectsUnsupportedExport(t *testing.T) {
	root := t.TempDir()
	f := &File{
		Path:    filepath.Join(root, "nbt.yaml"),
		Targets: []Target{{Name: "Player", Kind: KindMesh, Scene: "Player.blend", Output: "Player.obj"}},
	}
	g := core.NewGraph()
	err := testPlanner(t, root).Plan(g, f, testSettings(t))
	if !errors.Is(err, blender.ErrUnsupportedExportFormat) {
		t.Fatalf("expected ErrUnsupportedExportFormat, got %v", err)
	}
	if g.Len() != 0 {
		t.Fatalf("commands were registered: %v", g.Targets())
	}
}

func TestTargetSettings(t *testing.T) {
	f := &File{Settings: map[string]string{"DEBUG": "true", "TARGET_ARCH": "x86"}}
	base := testSettings(t)
	s, err := Settings(base, f, Target{Name: "A", Settings: map[string]string{"target_arch": "arm64"}})
	if err != nil {
		t.Fatal(err)
	}
	if !s.Debug || s.TargetArch != "arm64" {
		t.Fatalf("unexpected settings %+v", s)
	}
	if base.Debug || base.TargetArch != "amd64" {
		t.Fatalf("base settings were modified: %+v", base)
	}

	if _, err := Settings(base, f, Target{Name: "A", Settings: map[string]string{"TARGET_ARCH": "sparc"}}); !errors.Is(err, config.ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestMSBuildOutputDirectory(t *testing.T) {
	proj, err := msbuild.Parse(filepath.Join("/src", "Game", "Game.csproj"), []byte(`<Project xmlns="http://schemas.microsoft.com/developer/msbuild/2003">
  <PropertyGroup><TargetFrameworkVersion>v4.6.1</TargetFrameworkVersion></PropertyGroup>
</Project>`))
	if err != nil {
		t.Fatal(err)
	}
	s := testSettings(t)
	expected := filepath.Join("/src", "Game", "obj", "net46-release")
	if dir := MSBuildOutputDirectory(s, filepath.Join("/src", "Game"), proj); dir != expected {
		t.Fatalf("expected %s, got %s", expected, dir)
	}
}

func TestEnvironmentWinsOverProjectSettings(t *testing.T) {
	t.Setenv("NBT_DEBUG", "true")
	root := t.TempDir()
	dir := filepath.Join(root, "Game")
	touch(t, dir, "Source", "Game.cpp")
	f := &File{
		Path:     filepath.Join(dir, "nbt.yaml"),
		Settings: map[string]string{"DEBUG": "false"},
		Targets:  []Target{{Name: "Game", Kind: KindLibrary}},
	}

	g := core.NewGraph()
	if err := testPlanner(t, root).Plan(g, f, testSettings(t)); err != nil {
		t.Fatal(err)
	}
	library := filepath.Join(dir, "obj", "linux-gcc9-amd64-debug", "libGame.so")
	if _, ok := g.Producer(library); !ok {
		t.Fatalf("no command produces %s: %v", library, g.Targets())
	}
}

func TestOverridesWinOverProjectSettings(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "Game")
	f := &File{
		Path:     filepath.Join(dir, "nbt.yaml"),
		Settings: map[string]string{"DEBUG": "true"},
		Targets:  []Target{{Name: "Game", Kind: KindGodot, Preset: "Linux/X11", Output: "game"}},
	}
	p := testPlanner(t, root)
	p.Overrides = map[string]string{"GODOT_VERSION": "4.0"}
	err := p.Plan(core.NewGraph(), f, testSettings(t))
	if !errors.Is(err, locate.ErrToolNotFound) {
		t.Fatalf("expected the overridden Godot version to be unknown, got %v", err)
	}
}
