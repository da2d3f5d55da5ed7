package godot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/daedaleanai/nbt/core"
)

func touch(t *testing.T, root string, files ...string) {
	t.Helper()
	for _, file := range files {
		path := filepath.Join(root, file)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, nil, 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func TestAssets(t *testing.T) {
	root := t.TempDir()
	touch(t, root,
		"project.godot",
		"Main.tscn",
		"Actors/Player.escn",
		"Actors/Player.png",
		"Actors/Player.png.import",
		"Sounds/Step.ogg",
		"Scripts/Player.gd",
		"Raw/.gdignore",
		"Raw/Player.blend",
		"Raw/Reference.png",
		"Raw/Sub/Reference.jpg",
	)

	assets, err := Assets(root)
	if err != nil {
		t.Fatal(err)
	}
	expected := map[string]bool{
		filepath.Join(root, "Main.tscn"):                   true,
		filepath.Join(root, "Actors", "Player.escn"):       true,
		filepath.Join(root, "Actors", "Player.png"):        true,
		filepath.Join(root, "Actors", "Player.png.import"): true,
		filepath.Join(root, "Sounds", "Step.ogg"):          true,
	}
	if len(assets) != len(expected) {
		t.Fatalf("unexpected assets %v", assets)
	}
	for _, asset := range assets {
		if !expected[asset] {
			t.Fatalf("unexpected asset %s", asset)
		}
	}
}

func TestExportCommand(t *testing.T) {
	cmd := ExportCommand("/opt/godot/bin/Godot_v3.1-stable_linux_headless.64", "/src/Game", "Linux/X11", "/out/game.x86_64", false, []string{"/src/Game/Main.tscn"})
	expected := `'/opt/godot/bin/Godot_v3.1-stable_linux_headless.64' --path '/src/Game' --export 'Linux/X11' '/out/game.x86_64'`
	if cmd.Action != expected {
		t.Fatalf("unexpected action:\n%s", cmd.Action)
	}
	if len(cmd.Sources) != 2 || cmd.Sources[0] != filepath.Join("/src/Game", ProjectFileName) {
		t.Fatalf("unexpected sources %v", cmd.Sources)
	}

	debug := ExportCommand("godot", "/src/Game", "Windows Desktop", "/out/game.exe", true, nil)
	expected = `'godot' --path '/src/Game' --export-debug 'Windows Desktop' '/out/game.exe'`
	if debug.Action != expected {
		t.Fatalf("unexpected action:\n%s", debug.Action)
	}
}

func TestExport(t *testing.T) {
	root := t.TempDir()
	touch(t, root, "project.godot", "Main.tscn")
	g := core.NewGraph()
	if err := Export(g, "godot", root, "Linux/X11", filepath.Join(root, "out", "game"), false); err != nil {
		t.Fatal(err)
	}
	if g.Len() != 1 || len(g.Command(0).Sources) != 2 {
		t.Fatalf("unexpected graph %v", g.Command(0))
	}
}
