package cmd

import (
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/cc"
	"github.com/daedaleanai/nbt/log"

	"github.com/spf13/cobra"
)

var testCmd = &cobra.Command{
	Use:   "test [KEY=VALUE...]",
	Short: "Builds and runs the unit tests",
	Long: `Builds the unit test executables of the current project, or of all projects
with --all, and runs them. Each run writes a googletest XML report into the
artifact directory.`,
	Run: runTest,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeSettingArgs(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(testCmd)
	testCmd.Flags().BoolVar(&buildAll, "all", false, "Test every project below the project root")
	testCmd.Flags().IntVarP(&numThreads, "threads", "j", 0, "Run N jobs in parallel")
}

func runTest(cmd *cobra.Command, args []string) {
	plan := planBuild(args)
	plan.targets = testResults(plan.graph.Targets())
	if len(plan.targets) == 0 {
		log.Fatal("No unit-tests targets found.\n")
	}
	plan.run()
	for _, result := range plan.targets {
		log.Success("Test report: %s\n", result)
	}
}

// testResults selects the test reports among the outputs of a graph.
func testResults(targets []string) []string {
	results := []string{}
	for _, target := range targets {
		if strings.HasSuffix(filepath.Base(target), cc.TestsResultSuffix) {
			results = append(results, target)
		}
	}
	return results
}
