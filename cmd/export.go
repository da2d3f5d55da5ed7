package cmd

import (
	"path/filepath"

	"github.com/daedaleanai/nbt/blender"
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/project"

	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Exports meshes or animations from Blender scenes",
	Long: `Exports meshes or animations from Blender scenes to FBX or Collada files.
The format is chosen by the extension of the target file.`,
}

var exportMeshCmd = &cobra.Command{
	Use:   "mesh <scene> <target> [wildcards...]",
	Short: "Exports the meshes of a Blender scene",
	Long: `Exports all objects of a Blender scene matching any wildcard, all objects if
no wildcard is given.`,
	Args: cobra.MinimumNArgs(2),
	Run:  runExportMesh,
}

var exportAnimationsCmd = &cobra.Command{
	Use:   "animations <scene> <target> <library> [wildcards...]",
	Short: "Exports animations from a Blender animation library",
	Long: `Exports the armature of a Blender scene together with all actions of the
animation library matching any wildcard.`,
	Args: cobra.MinimumNArgs(3),
	Run:  runExportAnimations,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.AddCommand(exportMeshCmd)
	exportCmd.AddCommand(exportAnimationsCmd)
}

func absolutePaths(paths ...string) []string {
	result := []string{}
	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		result = append(result, abs)
	}
	return result
}

// newExporter locates Blender and writes the export scripts.
func newExporter(locator *locate.Locator, dir string) blender.Exporter {
	settings := loadWorkingDirSettings(nil)
	loc, err := locator.Locate(toolRequest(settings, locate.Blender))
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	scripts := project.ScriptDirectory(settings, dir)
	if err := blender.WriteScripts(scripts); err != nil {
		log.Fatal("%s.\n", err)
	}
	return blender.Exporter{Blender: loc.Path, ScriptDirectory: scripts}
}

func runExport(register func(g *core.Graph, x blender.Exporter) error) {
	workingDir := getWorkingDir()
	locator := newLocator()
	x := newExporter(locator, workingDir)

	g := core.NewGraph()
	if err := register(g, x); err != nil {
		log.Fatal("%s.\n", err)
	}
	runGraph(g, resolvePath(workingDir, loadWorkingDirSettings(nil).IntermediateDirectory), nil, locator)
}

func runExportMesh(cmd *cobra.Command, args []string) {
	paths := absolutePaths(args[0], args[1])
	if _, err := blender.DetectFormat(paths[1]); err != nil {
		log.Fatal("%s: '%s'.\n", err, args[1])
	}
	runExport(func(g *core.Graph, x blender.Exporter) error {
		return x.ExportMeshes(g, paths[0], paths[1], args[2:])
	})
	log.Success("Exported '%s'.\n", args[1])
}

func runExportAnimations(cmd *cobra.Command, args []string) {
	paths := absolutePaths(args[0], args[1], args[2])
	if _, err := blender.DetectFormat(paths[1]); err != nil {
		log.Fatal("%s: '%s'.\n", err, args[1])
	}
	runExport(func(g *core.Graph, x blender.Exporter) error {
		return x.ExportAnimations(g, paths[0], paths[1], paths[2], args[3:])
	})
	log.Success("Exported '%s'.\n", args[1])
}
