package cmd

import (
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/godot"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"

	"github.com/spf13/cobra"
)

var godotCmd = &cobra.Command{
	Use:   "godot <project> <preset> <target> [KEY=VALUE...]",
	Short: "Exports a Godot project",
	Long: `Exports a Godot project directory with one of its export presets. Debug
builds (DEBUG=true) use the debug export templates.`,
	Args: cobra.MinimumNArgs(3),
	Run:  runGodot,
}

func init() {
	rootCmd.AddCommand(godotCmd)
}

func runGodot(cmd *cobra.Command, args []string) {
	positional, overrides := parseArgs(args)
	if len(positional) != 3 {
		log.Fatal("Expected a project directory, an export preset and a target file.\n")
	}
	settings := loadWorkingDirSettings(overrides)
	paths := absolutePaths(positional[0], positional[2])

	locator := newLocator()
	loc, err := locator.Locate(toolRequest(settings, locate.Godot))
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	g := core.NewGraph()
	if err := godot.Export(g, loc.Path, paths[0], positional[1], paths[1], settings.Debug); err != nil {
		log.Fatal("%s.\n", err)
	}
	runGraph(g, resolvePath(paths[0], settings.IntermediateDirectory), nil, locator)
	log.Success("Exported '%s'.\n", positional[2])
}
