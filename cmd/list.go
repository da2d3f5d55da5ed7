package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list [KEY=VALUE...]",
	Short: "Lists all targets and the files they produce",
	Long:  `Lists all targets of the current project, or of all projects with --all, and the files they produce.`,
	Run:   runList,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeSettingArgs(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&buildAll, "all", false, "List every project below the project root")
}

func runList(cmd *cobra.Command, args []string) {
	plan := planBuild(args)
	for _, f := range plan.files {
		dir, err := filepath.Rel(plan.root, f.Directory())
		if err != nil {
			dir = f.Directory()
		}
		for _, t := range f.Targets {
			fmt.Printf("  //%s:%s  (%s)\n", filepath.ToSlash(dir), t.Name, t.Kind)
		}
	}

	fmt.Println("\nOutputs:")
	for _, target := range plan.graph.Targets() {
		if rel, err := filepath.Rel(plan.root, target); err == nil {
			target = rel
		}
		fmt.Printf("  %s\n", target)
	}
}
