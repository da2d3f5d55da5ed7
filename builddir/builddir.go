// Package builddir derives the names of the directories build outputs are
// placed in. A name identifies platform, tool, tool major version, target
// architecture and build configuration, so binaries built for different
// configurations can be stored side by side.
package builddir

import (
	"path/filepath"
	"strings"
)

// DefaultDotNetTag is used for .NET projects whose target framework is unknown.
const DefaultDotNetTag = "net40"

// Configuration is the tuple a build directory name is computed from.
type Configuration struct {
	Platform    string
	ToolName    string
	ToolVersion string
	Arch        string
	Debug       bool
}

// Name returns the build directory name of the configuration.
func (c Configuration) Name() string {
	return Name(c.Platform, c.ToolName, c.ToolVersion, c.Arch, c.Debug)
}

// WithToolVersion returns a copy of the configuration for another tool version.
func (c Configuration) WithToolVersion(version string) Configuration {
	c.ToolVersion = version
	return c
}

func configurationName(debug bool) string {
	if debug {
		return "debug"
	}
	return "release"
}

// Name formats `platform-toolMajor-arch-debug|release`, e.g. `linux-gcc9-amd64-release`.
func Name(platform, toolName, major, arch string, debug bool) string {
	return strings.Join([]string{platform, toolName + major, arch, configurationName(debug)}, "-")
}

// DotNetName formats `tag-debug|release` for .NET build outputs.
func DotNetName(tag string, debug bool) string {
	if tag == "" || tag == "unknown" {
		tag = DefaultDotNetTag
	}
	return tag + "-" + configurationName(debug)
}

// HostPlatform maps a GOOS value to the platform segment of build directory names.
func HostPlatform(goos string) string {
	switch goos {
	case "windows":
		return "windows"
	case "darwin":
		return "macos"
	default:
		return "linux"
	}
}

// IntermediatePath joins the intermediate directory, a build directory name and file elements.
func IntermediatePath(intermediateDirectory, name string, elem ...string) string {
	return filepath.Join(append([]string{intermediateDirectory, name}, elem...)...)
}

// ArtifactPath joins the artifact directory, a build directory name and file elements.
func ArtifactPath(artifactDirectory, name string, elem ...string) string {
	return filepath.Join(append([]string{artifactDirectory, name}, elem...)...)
}
