// Package godot enumerates the assets of Godot projects and assembles
// project export commands.
package godot

import (
	"path/filepath"

	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/scan"
)

// IgnoreMarker excludes the directory holding it from the project's assets.
const IgnoreMarker = ".gdignore"

// ProjectFileName is the file marking the root of a Godot project.
const ProjectFileName = "project.godot"

// AssetExtensions are the file types a project export depends on.
var AssetExtensions = []string{
	".tscn", ".escn", ".scn", ".tres", ".res",
	".dae", ".obj",
	".wav", ".ogg",
	".png", ".tga", ".tif", ".jpg",
	".ttf", ".font",
	".import",
}

// Assets lists the asset files of a project.
func Assets(projectDir string) ([]string, error) {
	return scan.Filter{
		Extensions:      AssetExtensions,
		IgnoreMarker:    IgnoreMarker,
		SkipDirectories: []string{".git"},
	}.Walk(projectDir)
}

// ExportCommand exports a project with one of its export presets.
func ExportCommand(godot, projectDir, preset, target string, debug bool, assets []string) core.Command {
	export := "--export"
	if debug {
		export = "--export-debug"
	}
	sources := append([]string{filepath.Join(projectDir, ProjectFileName)}, assets...)
	cmd := core.Assemble(godot, nil, nil, sources, []string{target}).WithDescription("GODOT %s", filepath.Base(target))
	cmd.Action += " --path " + core.QuoteAlways(projectDir) + " " + export + " " + core.QuoteAlways(preset) + " " + core.QuoteAlways(target)
	return cmd
}

// Export enumerates the assets of a project and registers its export.
func Export(g *core.Graph, godot, projectDir, preset, target string, debug bool) error {
	assets, err := Assets(projectDir)
	if err != nil {
		return err
	}
	_, err = g.Add(ExportCommand(godot, projectDir, preset, target, debug, assets))
	return err
}
