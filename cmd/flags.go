package cmd

import (
	"fmt"
	"strings"

	"github.com/daedaleanai/nbt/config"

	"github.com/spf13/cobra"
)

var flagsCmd = &cobra.Command{
	Use:   "flags [KEY=VALUE...]",
	Short: "Lists all configuration keys",
	Long:  `Lists all configuration keys with the values a build in the working directory would use.`,
	Run:   runFlags,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeSettingArgs(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	rootCmd.AddCommand(flagsCmd)
}

func runFlags(cmd *cobra.Command, args []string) {
	_, overrides := parseArgs(args)
	values := loadWorkingDirSettings(overrides).Map()
	for _, key := range config.Keys {
		fmt.Printf("  %s='%s' [%s]", key.Name, values[key.Name], key.Type)
		if len(key.AllowedValues) > 0 {
			fmt.Printf(" ('%s')", strings.Join(key.AllowedValues, "', '"))
		}
		if key.Description != "" {
			fmt.Printf(" // %s", key.Description)
		}
		fmt.Println()
	}
}
