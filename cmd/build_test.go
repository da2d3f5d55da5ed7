package cmd

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseArgs(t *testing.T) {
	targets, overrides := parseArgs([]string{"bin/game.fbx", "debug=true", "TARGET_ARCH=x86", "CXX=clang++", "obj/a.o"})
	if diff := cmp.Diff([]string{"bin/game.fbx", "obj/a.o"}, targets); diff != "" {
		t.Fatalf("unexpected targets (-want +got):\n%s", diff)
	}
	expected := map[string]string{"DEBUG": "true", "TARGET_ARCH": "x86", "CXX": "clang++"}
	if diff := cmp.Diff(expected, overrides); diff != "" {
		t.Fatalf("unexpected overrides (-want +got):\n%s", diff)
	}
}

func TestParseArgsKeepsEqualsInValues(t *testing.T) {
	_, overrides := parseArgs([]string{"CXX=/opt/bin/g++ -DX=1"})
	if overrides["CXX"] != "/opt/bin/g++ -DX=1" {
		t.Fatalf("unexpected overrides %v", overrides)
	}
}

func TestCompleteSettingArgs(t *testing.T) {
	suggestions := completeSettingArgs("target_arch=")
	if len(suggestions) != 5 || suggestions[0] != "TARGET_ARCH=armhf" {
		t.Fatalf("unexpected suggestions %v", suggestions)
	}
	if len(completeSettingArgs("")) == 0 {
		t.Fatal("expected key suggestions")
	}
}

func TestTestResults(t *testing.T) {
	targets := []string{
		filepath.Join("/p", "bin", "linux-gcc9-amd64-release", "Game.Tests.gtest-results.xml"),
		filepath.Join("/p", "obj", "linux-gcc9-amd64-release", "libGame.so"),
		filepath.Join("/p", "bin", "linux-gcc9-amd64-release", "Engine.Tests.gtest-results.xml"),
	}
	results := testResults(targets)
	if len(results) != 2 || results[0] != targets[0] || results[1] != targets[2] {
		t.Fatalf("unexpected results %v", results)
	}
}

func TestResolvePath(t *testing.T) {
	if p := resolvePath("/p", "obj"); p != filepath.Join("/p", "obj") {
		t.Fatalf("unexpected path %s", p)
	}
	if p := resolvePath("/p", "/tmp/obj"); p != "/tmp/obj" {
		t.Fatalf("unexpected path %s", p)
	}
}
