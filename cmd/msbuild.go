package cmd

import (
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/msbuild"
	"github.com/daedaleanai/nbt/project"

	"github.com/spf13/cobra"
)

var msbuildCmd = &cobra.Command{
	Use:   "msbuild <project> [KEY=VALUE...]",
	Short: "Builds a single MSBuild project",
	Long: `Builds a single MSBuild project into the .NET build directory below the
intermediate directory of the project.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runMSBuild,
}

func init() {
	rootCmd.AddCommand(msbuildCmd)
}

func runMSBuild(cmd *cobra.Command, args []string) {
	positional, overrides := parseArgs(args)
	if len(positional) != 1 {
		log.Fatal("Expected exactly one MSBuild project.\n")
	}
	settings := loadWorkingDirSettings(overrides)

	p, err := msbuild.Load(positional[0])
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	locator := newLocator()
	loc, err := locator.Locate(toolRequest(settings, locate.MSBuild))
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	c, err := msbuild.Command(loc.Path, p, project.MSBuildOutputDirectory(settings, p.Directory(), p), settings.Debug)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	g := core.NewGraph()
	if _, err := g.Add(c); err != nil {
		log.Fatal("%s.\n", err)
	}
	runGraph(g, resolvePath(p.Directory(), settings.IntermediateDirectory), nil, locator)
	log.Success("Built '%s'.\n", p.Path)
}
