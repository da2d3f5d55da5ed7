package cmd

import (
	"fmt"

	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/msbuild"

	"github.com/spf13/cobra"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect <project>",
	Args:  cobra.ExactArgs(1),
	Short: "Prints what nbt knows about an MSBuild project",
	Long:  `Prints the assembly name, output type, target framework, outputs and sources of an MSBuild project.`,
	Run:   runInspect,
}

func init() {
	rootCmd.AddCommand(inspectCmd)
}

func orUnknown(value string, ok bool) string {
	if !ok {
		return "<unknown>"
	}
	return value
}

func runInspect(cmd *cobra.Command, args []string) {
	p, err := msbuild.Load(args[0])
	if err != nil {
		log.Fatal("%s.\n", err)
	}

	fmt.Printf("Project:          %s\n", p.Path)
	fmt.Printf("Assembly name:    %s\n", orUnknown(p.AssemblyName()))
	fmt.Printf("Output type:      %s\n", orUnknown(p.OutputType()))
	fmt.Printf("Target framework: %s\n", p.TargetFramework())
	fmt.Println("Outputs:")
	for _, output := range p.Outputs(false) {
		fmt.Printf("  %s\n", output)
	}
	fmt.Println("Sources:")
	for _, source := range p.Sources() {
		fmt.Printf("  %s\n", source)
	}
}
