package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/cc"
	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/project"
	"github.com/daedaleanai/nbt/scan"
	"github.com/daedaleanai/nbt/util"

	"github.com/spf13/cobra"
)

var buildCmd = &cobra.Command{
	Use:   "build [targets] [KEY=VALUE...]",
	Short: "Builds the targets of the current project",
	Long: `Builds the targets of the project in the working directory. With --all, every
project below the project root is built. Arguments containing '=' override
configuration keys, e.g. 'nbt build DEBUG=true TARGET_ARCH=x86'. Other
arguments name output files to build; without any, everything is built.`,
	Run: runBuild,
	ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return completeSettingArgs(toComplete), cobra.ShellCompDirectiveNoFileComp
	},
	DisableFlagsInUseLine: true,
}

var (
	buildAll   bool
	numThreads int
)

func init() {
	rootCmd.AddCommand(buildCmd)
	buildCmd.Flags().BoolVar(&buildAll, "all", false, "Build every project below the project root")
	buildCmd.Flags().IntVarP(&numThreads, "threads", "j", 0, "Run N jobs in parallel. Defaults to as many threads as cores available.")
}

// buildPlan is the graph of all project files a command works on.
type buildPlan struct {
	graph    *core.Graph
	root     string
	settings config.Settings
	locator  *locate.Locator
	files    []*project.File
	targets  []string
}

func planBuild(args []string) buildPlan {
	targets, overrides := parseArgs(args)

	workingDir := getWorkingDir()
	root, err := util.ProjectRoot(workingDir)
	if err != nil {
		log.Fatal("Failed to determine the project root: %s.\n", err)
	}
	log.Debug("Project root: %s.\n", root)

	base := loadSettings(nil, overrides)
	paths := []string{}
	if buildAll {
		if rootProject, ok := scan.ProjectFile(root); ok {
			paths = append(paths, rootProject)
		}
		nested, err := scan.ProjectFiles(root, []string{base.IntermediateDirectory, base.ArtifactDirectory})
		if err != nil {
			log.Fatal("Failed to search for project files: %s.\n", err)
		}
		paths = append(paths, nested...)
	} else if projectFile, ok := scan.ProjectFile(workingDir); ok {
		paths = append(paths, projectFile)
	}
	if len(paths) == 0 {
		log.Fatal("No project file (%s) found.\n", strings.Join(scan.ProjectFileNames, ", "))
	}

	plan := buildPlan{
		graph:    core.NewGraph(),
		root:     root,
		settings: base,
		locator:  newLocator(),
	}
	planner := project.NewPlanner(plan.locator, cc.Probe)
	planner.Overrides = overrides
	for _, path := range paths {
		log.Debug("Planning project file '%s'.\n", path)
		f, err := project.Load(path)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		if err := planner.Plan(plan.graph, f, base); err != nil {
			log.Fatal("%s: %s.\n", path, err)
		}
		plan.files = append(plan.files, f)
	}

	for _, target := range targets {
		if !filepath.IsAbs(target) {
			target = filepath.Join(workingDir, target)
		}
		if _, ok := plan.graph.Producer(target); !ok {
			log.Fatal("No target produces '%s'.\n", target)
		}
		plan.targets = append(plan.targets, target)
	}
	return plan
}

func (plan buildPlan) run() {
	runGraph(plan.graph, resolvePath(plan.root, plan.settings.IntermediateDirectory), plan.targets, plan.locator)
}

func runBuild(cmd *cobra.Command, args []string) {
	plan := planBuild(args)
	plan.run()
	log.Success("Built %d commands.\n", plan.graph.Len())
}

// parseArgs splits arguments into targets and KEY=VALUE configuration overrides.
func parseArgs(args []string) ([]string, map[string]string) {
	targets := []string{}
	overrides := map[string]string{}
	for _, arg := range args {
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			overrides[strings.ToUpper(parts[0])] = parts[1]
		} else {
			targets = append(targets, arg)
		}
	}
	return targets, overrides
}

func completeSettingArgs(toComplete string) []string {
	suggestions := []string{}
	if strings.Contains(toComplete, "=") {
		name := strings.SplitN(toComplete, "=", 2)[0]
		for _, key := range config.Keys {
			if key.Name != strings.ToUpper(name) {
				continue
			}
			for _, value := range key.AllowedValues {
				suggestions = append(suggestions, fmt.Sprintf("%s=%s", key.Name, value))
			}
		}
		return suggestions
	}
	for _, key := range config.Keys {
		suggestions = append(suggestions, fmt.Sprintf("%s=\t%s", key.Name, key.Description))
	}
	return suggestions
}

func getWorkingDir() string {
	workingDir, err := os.Getwd()
	if err != nil {
		log.Fatal("Could not get working directory: %s.\n", err)
	}
	return workingDir
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

// loadSettings resolves the configuration from the user config file, the
// given project settings, the environment and command line overrides.
func loadSettings(projectSettings, overrides map[string]string) config.Settings {
	settings, err := config.Load(config.Sources{
		User:        config.GetConfig().Settings,
		Project:     projectSettings,
		CommandLine: overrides,
	})
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	return settings
}

// loadWorkingDirSettings is loadSettings with the settings of the project
// file in the working directory, if there is one.
func loadWorkingDirSettings(overrides map[string]string) config.Settings {
	if projectFile, ok := scan.ProjectFile(getWorkingDir()); ok {
		f, err := project.Load(projectFile)
		if err != nil {
			log.Fatal("%s.\n", err)
		}
		return loadSettings(f.Settings, overrides)
	}
	return loadSettings(nil, overrides)
}

func newLocator() *locate.Locator {
	return locate.New(locate.DefaultHost(), locate.DefaultCatalog())
}

func runGraph(g *core.Graph, dir string, targets []string, locator *locate.Locator) {
	runner := core.Runner{
		Locator: locator,
		Threads: numThreads,
		Verbose: log.Verbose,
	}
	if err := runner.Run(g, dir, targets); err != nil {
		log.Fatal("%s.\n", err)
	}
}
