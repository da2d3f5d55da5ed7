// Package blender assembles the commands exporting meshes and animations from
// Blender scenes. The export itself is done by scripts running inside Blender,
// which are shipped with nbt and written to disk before the build runs.
package blender

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/util"
)

//go:embed scripts/*.py
var scripts embed.FS

// Script names.
const (
	MeshScript      = "export_meshes.py"
	AnimationScript = "export_animations.py"
)

// ErrUnsupportedExportFormat is returned for targets which are neither FBX nor Collada files.
var ErrUnsupportedExportFormat = errors.New("unsupported export format")

// Format is a file format Blender exports to.
type Format string

const (
	FBX     Format = "fbx"
	Collada Format = "collada"
)

// DetectFormat determines the export format from the target file extension.
func DetectFormat(target string) (Format, error) {
	switch strings.ToLower(filepath.Ext(target)) {
	case ".fbx":
		return FBX, nil
	case ".dae":
		return Collada, nil
	default:
		return "", fmt.Errorf("%w: '%s' (only .fbx and .dae are supported)", ErrUnsupportedExportFormat, target)
	}
}

// Script returns the contents of an embedded script.
func Script(name string) ([]byte, error) {
	return scripts.ReadFile("scripts/" + name)
}

// WriteScripts writes the export scripts into dir. Files already holding the
// same content are left untouched, so their timestamps do not trigger re-exports.
func WriteScripts(dir string) error {
	for _, name := range []string{MeshScript, AnimationScript} {
		data, err := Script(name)
		if err != nil {
			return err
		}
		path := filepath.Join(dir, name)
		if existing, err := os.ReadFile(path); err == nil && bytes.Equal(existing, data) {
			continue
		}
		if err := util.WriteFile(path, data); err != nil {
			return fmt.Errorf("failed to write Blender script: %w", err)
		}
	}
	return nil
}

// Exporter assembles Blender export commands.
type Exporter struct {
	Blender string
	// ScriptDirectory is where WriteScripts put the export scripts.
	ScriptDirectory string
}

func (x Exporter) command(script, blendfile string, args []string, target string) core.Command {
	scriptPath := filepath.Join(x.ScriptDirectory, script)
	parts := []string{
		core.QuoteAlways(x.Blender),
		core.QuoteAlways(blendfile),
		"--enable-autoexec",
		"--python", core.QuoteAlways(scriptPath),
		"--background",
		"--",
	}
	for _, arg := range args {
		parts = append(parts, core.Quote(arg))
	}

	return core.Command{
		Sources:     []string{blendfile},
		Targets:     []string{target},
		Depends:     []string{scriptPath},
		Action:      strings.Join(parts, " "),
		Description: fmt.Sprintf("EXPORT %s", filepath.Base(target)),
	}
}

func wildcardsOrAll(wildcards []string) []string {
	if len(wildcards) == 0 {
		return []string{"*"}
	}
	return wildcards
}

// MeshCommand exports the objects matching any wildcard from blendfile into target.
func (x Exporter) MeshCommand(blendfile, target string, wildcards []string) (core.Command, error) {
	if _, err := DetectFormat(target); err != nil {
		return core.Command{}, err
	}
	args := append([]string{target}, wildcardsOrAll(wildcards)...)
	return x.command(MeshScript, blendfile, args, target), nil
}

// AnimationCommand exports the actions matching any wildcard from the
// animation library together with the armature of the actor scene.
func (x Exporter) AnimationCommand(actor, target, library string, wildcards []string) (core.Command, error) {
	if _, err := DetectFormat(target); err != nil {
		return core.Command{}, err
	}
	args := append([]string{target, library}, wildcardsOrAll(wildcards)...)
	cmd := x.command(AnimationScript, actor, args, target)
	cmd.Depends = append(cmd.Depends, library)
	return cmd, nil
}

// ExportMeshes registers a mesh export on the graph.
func (x Exporter) ExportMeshes(g *core.Graph, blendfile, target string, wildcards []string) error {
	cmd, err := x.MeshCommand(blendfile, target, wildcards)
	if err != nil {
		return err
	}
	_, err = g.Add(cmd)
	return err
}

// ExportAnimations registers an animation export on the graph.
func (x Exporter) ExportAnimations(g *core.Graph, actor, target, library string, wildcards []string) error {
	cmd, err := x.AnimationCommand(actor, target, library, wildcards)
	if err != nil {
		return err
	}
	_, err = g.Add(cmd)
	return err
}
