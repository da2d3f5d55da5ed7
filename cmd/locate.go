package cmd

import (
	"fmt"

	"github.com/daedaleanai/nbt/cc"
	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"

	"github.com/spf13/cobra"
)

var locateCmd = &cobra.Command{
	Use:   "locate <compiler|msbuild|blender|godot|ninja> [version] [KEY=VALUE...]",
	Short: "Prints the path of an external tool",
	Long: `Prints the path of an external tool as a build would use it. Without a
version, the configured version is looked up. The compiler takes no version;
select it with CC and CXX instead.`,
	Args: cobra.MinimumNArgs(1),
	Run:  runLocate,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return completeSettingArgs(toComplete), cobra.ShellCompDirectiveNoFileComp
		}
		tools := []string{}
		for _, tool := range locate.Tools {
			tools = append(tools, string(tool))
		}
		return tools, cobra.ShellCompDirectiveNoFileComp
	},
}

func init() {
	rootCmd.AddCommand(locateCmd)
}

// toolRequest builds the request for a tool from the configured version and executable.
func toolRequest(settings config.Settings, tool locate.Tool) locate.Request {
	switch tool {
	case locate.MSBuild:
		return locate.Request{Tool: tool, Version: settings.MSBuildVersion, Override: settings.MSBuildExecutable}
	case locate.Blender:
		return locate.Request{Tool: tool, Version: settings.BlenderVersion, Override: settings.BlenderExecutable}
	case locate.Godot:
		return locate.Request{Tool: tool, Version: settings.GodotVersion, Override: settings.GodotExecutable}
	}
	return locate.Request{Tool: tool}
}

// locateArgs splits the positional arguments of `nbt locate` into the tool
// and an optional version.
func locateArgs(positional []string) (locate.Tool, string, error) {
	if len(positional) == 0 || len(positional) > 2 {
		return "", "", fmt.Errorf("expected a tool and an optional version")
	}
	tool := locate.Tool(positional[0])
	version := ""
	if len(positional) == 2 {
		version = positional[1]
	}
	if tool == locate.Compiler && version != "" {
		return "", "", fmt.Errorf("the compiler has no version to select, set CC or CXX instead of '%s'", version)
	}
	return tool, version, nil
}

func runLocate(cmd *cobra.Command, args []string) {
	positional, overrides := parseArgs(args)
	tool, version, err := locateArgs(positional)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	settings := loadWorkingDirSettings(overrides)
	locator := newLocator()

	if tool == locate.Compiler {
		path, err := cc.LocateCompiler(locator, cc.Identify(settings))
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		fmt.Println(path)
		return
	}

	req := toolRequest(settings, tool)
	if version != "" {
		req.Version = version
	}
	loc, err := locator.Locate(req)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	fmt.Println(loc.Path)
}
