package msbuild

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/daedaleanai/nbt/core"
)

// ErrNoOutputs is returned for projects whose outputs cannot be determined.
var ErrNoOutputs = errors.New("MSBuild project declares no known outputs")

// ConfigurationName returns the MSBuild configuration for a build.
func ConfigurationName(debug bool) string {
	if debug {
		return "Debug"
	}
	return "Release"
}

// Command assembles the MSBuild invocation building the project into outputDirectory.
func Command(msbuild string, p *Project, outputDirectory string, debug bool) (core.Command, error) {
	outputs := p.Outputs(debug)
	if len(outputs) == 0 {
		return core.Command{}, fmt.Errorf("%w: '%s'", ErrNoOutputs, p.Path)
	}

	outDir, err := filepath.Rel(p.Directory(), outputDirectory)
	if err != nil {
		outDir = outputDirectory
	}
	// MSBuild accepts forward slashes, and a trailing backslash would escape
	// the closing quote of a quoted Windows argument.
	args := []string{
		"/property:OutDir=" + filepath.ToSlash(outDir) + "/",
		"/property:Configuration=" + ConfigurationName(debug),
	}

	targets := []string{}
	for _, output := range outputs {
		targets = append(targets, filepath.Join(outputDirectory, output))
	}
	sources := append([]string{p.Path}, p.SourcePaths()...)

	cmd := core.Assemble(msbuild, nil, args, sources, targets).WithDescription("MSBUILD %s", filepath.Base(p.Path))
	// The project path is quoted like the tool path.
	cmd.Action = fmt.Sprintf("%s %s %s %s", core.QuoteAlways(msbuild), core.QuoteAlways(p.Path), core.Quote(args[0]), core.Quote(args[1]))
	return cmd, nil
}
