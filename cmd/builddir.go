package cmd

import (
	"fmt"

	"github.com/daedaleanai/nbt/builddir"
	"github.com/daedaleanai/nbt/cc"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/msbuild"

	"github.com/spf13/cobra"
)

var dotnetProject string

var builddirCmd = &cobra.Command{
	Use:   "builddir [--dotnet <project>] [KEY=VALUE...]",
	Short: "Prints the build directory name",
	Long: `Prints the name of the build directory of the current configuration, e.g.
'linux-gcc9-amd64-release'. With --dotnet, the name of the .NET build
directory of an MSBuild project is printed instead, e.g. 'net46-release'.`,
	Run: runBuilddir,
}

func init() {
	rootCmd.AddCommand(builddirCmd)
	builddirCmd.Flags().StringVar(&dotnetProject, "dotnet", "", "MSBuild project to name the build directory for")
}

func runBuilddir(cmd *cobra.Command, args []string) {
	_, overrides := parseArgs(args)
	settings := loadWorkingDirSettings(overrides)

	if dotnetProject != "" {
		p, err := msbuild.Load(dotnetProject)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		fmt.Println(builddir.DotNetName(p.TargetFramework(), settings.Debug))
		return
	}

	env, err := cc.NewEnvironment(settings, getWorkingDir(), newLocator(), cc.Probe)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	fmt.Println(env.BuildDirectoryName())
}
