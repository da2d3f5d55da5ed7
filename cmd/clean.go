package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/util"

	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean [KEY=VALUE...]",
	Short: "Removes all build results of the current project",
	Long:  `Removes the intermediate and artifact directories of the project in the working directory.`,
	Run:   runClean,
}

func init() {
	rootCmd.AddCommand(cleanCmd)
}

func runClean(cmd *cobra.Command, args []string) {
	_, overrides := parseArgs(args)
	settings := loadWorkingDirSettings(overrides)
	workingDir := getWorkingDir()
	root, err := util.ProjectRoot(workingDir)
	if err != nil {
		log.Fatal("Failed to determine the project root: %s.\n", err)
	}

	dirs, err := cleanDirectories(settings, workingDir, root)
	if err != nil {
		log.Fatal("%s.\n", err)
	}
	for _, path := range dirs {
		log.Debug("Removing directory '%s'.\n", path)
		if err := os.RemoveAll(path); err != nil {
			log.Fatal("Failed to remove '%s': %s.\n", path, err)
		}
	}
}

// cleanDirectories returns the output directories of a project. Directories
// containing the working directory or the project root are refused.
func cleanDirectories(s config.Settings, workingDir, root string) ([]string, error) {
	dirs := []string{}
	for _, dir := range []string{s.IntermediateDirectory, s.ArtifactDirectory} {
		if strings.TrimSpace(dir) == "" {
			return nil, fmt.Errorf("refusing to clean an empty directory setting")
		}
		path := filepath.Clean(resolvePath(workingDir, dir))
		for _, protected := range []string{workingDir, root} {
			if contains(path, protected) {
				return nil, fmt.Errorf("refusing to remove '%s' because it contains '%s'", path, protected)
			}
		}
		dirs = append(dirs, path)
	}
	return dirs, nil
}

// contains reports whether dir is path or lies below it.
func contains(path, dir string) bool {
	rel, err := filepath.Rel(path, dir)
	if err != nil {
		return false
	}
	return rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
