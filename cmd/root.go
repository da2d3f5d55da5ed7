package cmd

import (
	"os"

	"github.com/daedaleanai/nbt/log"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "nbt",
	Short: "The Nuclex Build Tool (nbt)",
	Long: `The Nuclex Build Tool (nbt) builds C/C++ libraries, MSBuild projects,
Blender exports and Godot projects with the tools installed on the host. It
locates compilers, MSBuild, Blender and Godot, names build directories after
the toolchain and hands the resulting commands to ninja.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	rootCmd.PersistentFlags().BoolVarP(&log.Verbose, "verbose", "v", false, "Print debug output")
	if rootCmd.Execute() != nil {
		os.Exit(1)
	}
}
