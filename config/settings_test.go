package config

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestDefaults(t *testing.T) {
	s, err := FromMap("linux", "arm64", nil)
	if err != nil {
		t.Fatal(err)
	}
	want := Settings{
		GOOS:                  "linux",
		Debug:                 false,
		TargetArch:            "arm64",
		IntermediateDirectory: "obj",
		ArtifactDirectory:     "bin",
		MSBuildVersion:        "system",
		GodotVersion:          "3.1",
		BlenderVersion:        "2.7",
		SourceDirectory:       "Source",
		HeaderDirectory:       "Include",
		TestsDirectory:        "Tests",
		ReferencesDirectory:   "References",
	}
	if diff := cmp.Diff(want, s); diff != "" {
		t.Fatalf("unexpected defaults (-want +got):\n%s", diff)
	}
}

func TestDefaultArch(t *testing.T) {
	cases := map[string]string{"arm": "armhf", "arm64": "arm64", "386": "x86", "amd64": "amd64", "riscv64": "amd64"}
	for goarch, want := range cases {
		if got := DefaultArch(goarch); got != want {
			t.Errorf("DefaultArch(%s) = %s, want %s", goarch, got, want)
		}
	}
}

func TestInvalidValues(t *testing.T) {
	if _, err := FromMap("linux", "amd64", map[string]string{KeyTargetArch: "mips"}); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected invalid architecture, got %v", err)
	}
	if _, err := FromMap("linux", "amd64", map[string]string{KeyDebug: "maybe"}); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected invalid debug flag, got %v", err)
	}
}

func TestOutputDirectoriesMustBeSubdirectories(t *testing.T) {
	for _, key := range []string{KeyIntermediateDirectory, KeyArtifactDirectory} {
		for _, dir := range []string{"", " ", ".", "./", "obj/.."} {
			if _, err := FromMap("linux", "amd64", map[string]string{key: dir}); !errors.Is(err, ErrInvalidSetting) {
				t.Fatalf("%s=%q: expected ErrInvalidSetting, got %v", key, dir, err)
			}
		}
	}
	if _, err := Defaults().With(map[string]string{KeyArtifactDirectory: ""}); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected ErrInvalidSetting, got %v", err)
	}
}

func TestBuilderReturnsCopies(t *testing.T) {
	base, err := FromMap("windows", "amd64", nil)
	if err != nil {
		t.Fatal(err)
	}

	debug := base.WithDebug(true).WithTargetArch("x86")
	if base.Debug || base.TargetArch != "amd64" {
		t.Fatal("builder modified the original settings")
	}
	if !debug.Debug || debug.TargetArch != "x86" {
		t.Fatal("builder did not apply the overrides")
	}

	overridden, err := base.With(map[string]string{"godot_version": "3.0", KeyArtifactDirectory: "out"})
	if err != nil {
		t.Fatal(err)
	}
	if overridden.GodotVersion != "3.0" || overridden.ArtifactDirectory != "out" {
		t.Fatalf("overrides not applied: %+v", overridden)
	}
	if base.GodotVersion != "3.1" {
		t.Fatal("With modified the original settings")
	}

	if _, err := base.With(map[string]string{KeyTargetArch: "sparc"}); !errors.Is(err, ErrInvalidSetting) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestConfigurationName(t *testing.T) {
	s := Defaults()
	if s.ConfigurationName() != "release" || s.WithDebug(true).ConfigurationName() != "debug" {
		t.Fatal("unexpected configuration names")
	}
}
