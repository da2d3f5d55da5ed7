package config

import (
	"errors"
	"fmt"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
)

// ErrInvalidSetting is returned for configuration values outside their allowed range.
var ErrInvalidSetting = errors.New("invalid setting")

// Configuration keys.
const (
	KeyDebug                 = "DEBUG"
	KeyTargetArch            = "TARGET_ARCH"
	KeyIntermediateDirectory = "INTERMEDIATE_DIRECTORY"
	KeyArtifactDirectory     = "ARTIFACT_DIRECTORY"
	KeyMSBuildVersion        = "MSBUILD_VERSION"
	KeyMSBuildExecutable     = "MSBUILD_EXECUTABLE"
	KeyGodotVersion          = "GODOT_VERSION"
	KeyGodotExecutable       = "GODOT_EXECUTABLE"
	KeyBlenderVersion        = "BLENDER_VERSION"
	KeyBlenderExecutable     = "BLENDER_EXECUTABLE"
	KeyCC                    = "CC"
	KeyCXX                   = "CXX"
	KeyMSVCVersion           = "MSVC_VERSION"
	KeySourceDirectory       = "SOURCE_DIRECTORY"
	KeyHeaderDirectory       = "HEADER_DIRECTORY"
	KeyTestsDirectory        = "TESTS_DIRECTORY"
	KeyReferencesDirectory   = "REFERENCES_DIRECTORY"
)

// Architectures lists the allowed values of TARGET_ARCH.
var Architectures = []string{"armhf", "arm64", "x86", "amd64", "any"}

// Key describes one configuration key.
type Key struct {
	Name          string
	Description   string
	Type          string
	AllowedValues []string
	Default       func(goos, goarch string) string
}

func constant(value string) func(string, string) string {
	return func(string, string) string { return value }
}

// Keys lists every configuration key understood by nbt.
var Keys = []Key{
	{KeyDebug, "Whether to do an unoptimized debug build", "bool", []string{"true", "false"}, constant("false")},
	{KeyTargetArch, "CPU architecture the binary will run on", "string", Architectures, func(_, goarch string) string { return DefaultArch(goarch) }},
	{KeyIntermediateDirectory, "Directory in which intermediate build files will be stored", "path", nil, constant("obj")},
	{KeyArtifactDirectory, "Directory in which build artifacts (outputs) will be stored", "path", nil, constant("bin")},
	{KeyMSBuildVersion, "MSBuild version to use", "string", nil, constant("system")},
	{KeyMSBuildExecutable, "Explicit path of the MSBuild executable", "path", nil, constant("")},
	{KeyGodotVersion, "Godot version to use", "string", nil, constant("3.1")},
	{KeyGodotExecutable, "Explicit path of the Godot executable", "path", nil, constant("")},
	{KeyBlenderVersion, "Blender version to use", "string", nil, constant("2.7")},
	{KeyBlenderExecutable, "Explicit path of the Blender executable", "path", nil, constant("")},
	{KeyCC, "C compiler", "string", nil, constant("")},
	{KeyCXX, "C++ compiler", "string", nil, constant("")},
	{KeyMSVCVersion, "Version of the Visual C++ compiler, skips probing the compiler", "string", nil, constant("")},
	{KeySourceDirectory, "Directory holding the C/C++ sources of a target", "path", nil, constant("Source")},
	{KeyHeaderDirectory, "Directory holding the public headers of a target", "path", nil, constant("Include")},
	{KeyTestsDirectory, "Directory holding the unit test sources of a target", "path", nil, constant("Tests")},
	{KeyReferencesDirectory, "Directory holding precompiled packages", "path", nil, constant("References")},
}

// DefaultArch maps a Go architecture name to the Debian-style names used for build directories.
func DefaultArch(goarch string) string {
	switch goarch {
	case "arm":
		return "armhf"
	case "arm64":
		return "arm64"
	case "386":
		return "x86"
	default:
		return "amd64"
	}
}

// Settings is an immutable snapshot of the build configuration. Per-target
// changes are made with the With* methods, which return modified copies.
type Settings struct {
	GOOS                  string
	Debug                 bool
	TargetArch            string
	IntermediateDirectory string
	ArtifactDirectory     string
	MSBuildVersion        string
	MSBuildExecutable     string
	GodotVersion          string
	GodotExecutable       string
	BlenderVersion        string
	BlenderExecutable     string
	CC                    string
	CXX                   string
	MSVCVersion           string
	SourceDirectory       string
	HeaderDirectory       string
	TestsDirectory        string
	ReferencesDirectory   string
}

// Defaults returns the settings used when nothing is configured.
func Defaults() Settings {
	s, _ := FromMap(runtime.GOOS, runtime.GOARCH, nil)
	return s
}

// FromMap builds settings from key/value pairs. Missing keys get their defaults.
func FromMap(goos, goarch string, values map[string]string) (Settings, error) {
	get := func(name string) string {
		if v, ok := values[name]; ok {
			return v
		}
		for _, key := range Keys {
			if key.Name == name {
				return key.Default(goos, goarch)
			}
		}
		return ""
	}

	debug, err := strconv.ParseBool(get(KeyDebug))
	if err != nil {
		return Settings{}, fmt.Errorf("%w: %s must be a boolean, got '%s'", ErrInvalidSetting, KeyDebug, get(KeyDebug))
	}

	s := Settings{
		GOOS:                  goos,
		Debug:                 debug,
		TargetArch:            strings.ToLower(get(KeyTargetArch)),
		IntermediateDirectory: get(KeyIntermediateDirectory),
		ArtifactDirectory:     get(KeyArtifactDirectory),
		MSBuildVersion:        get(KeyMSBuildVersion),
		MSBuildExecutable:     get(KeyMSBuildExecutable),
		GodotVersion:          get(KeyGodotVersion),
		GodotExecutable:       get(KeyGodotExecutable),
		BlenderVersion:        get(KeyBlenderVersion),
		BlenderExecutable:     get(KeyBlenderExecutable),
		CC:                    get(KeyCC),
		CXX:                   get(KeyCXX),
		MSVCVersion:           get(KeyMSVCVersion),
		SourceDirectory:       get(KeySourceDirectory),
		HeaderDirectory:       get(KeyHeaderDirectory),
		TestsDirectory:        get(KeyTestsDirectory),
		ReferencesDirectory:   get(KeyReferencesDirectory),
	}
	return s, s.Validate()
}

// Validate checks enumerated values and the output directories.
func (s Settings) Validate() error {
	// Both directories are removed by `nbt clean`.
	outputs := map[string]string{
		KeyIntermediateDirectory: s.IntermediateDirectory,
		KeyArtifactDirectory:     s.ArtifactDirectory,
	}
	for key, dir := range outputs {
		if strings.TrimSpace(dir) == "" || filepath.Clean(dir) == "." {
			return fmt.Errorf("%w: %s must name a subdirectory, got '%s'", ErrInvalidSetting, key, dir)
		}
	}

	for _, arch := range Architectures {
		if s.TargetArch == arch {
			return nil
		}
	}
	return fmt.Errorf("%w: %s must be one of %s, got '%s'",
		ErrInvalidSetting, KeyTargetArch, strings.Join(Architectures, "|"), s.TargetArch)
}

// Map returns the settings as configuration key/value pairs.
func (s Settings) Map() map[string]string {
	return map[string]string{
		KeyDebug:                 strconv.FormatBool(s.Debug),
		KeyTargetArch:            s.TargetArch,
		KeyIntermediateDirectory: s.IntermediateDirectory,
		KeyArtifactDirectory:     s.ArtifactDirectory,
		KeyMSBuildVersion:        s.MSBuildVersion,
		KeyMSBuildExecutable:     s.MSBuildExecutable,
		KeyGodotVersion:          s.GodotVersion,
		KeyGodotExecutable:       s.GodotExecutable,
		KeyBlenderVersion:        s.BlenderVersion,
		KeyBlenderExecutable:     s.BlenderExecutable,
		KeyCC:                    s.CC,
		KeyCXX:                   s.CXX,
		KeyMSVCVersion:           s.MSVCVersion,
		KeySourceDirectory:       s.SourceDirectory,
		KeyHeaderDirectory:       s.HeaderDirectory,
		KeyTestsDirectory:        s.TestsDirectory,
		KeyReferencesDirectory:   s.ReferencesDirectory,
	}
}

// With returns a copy of the settings with the given key/value overrides applied.
func (s Settings) With(overrides map[string]string) (Settings, error) {
	if len(overrides) == 0 {
		return s, nil
	}
	values := s.Map()
	for k, v := range overrides {
		values[strings.ToUpper(k)] = v
	}
	return FromMap(s.GOOS, "", values)
}

// WithDebug returns a copy of the settings with the debug flag replaced.
func (s Settings) WithDebug(debug bool) Settings {
	s.Debug = debug
	return s
}

// WithTargetArch returns a copy of the settings targeting another architecture.
func (s Settings) WithTargetArch(arch string) Settings {
	s.TargetArch = arch
	return s
}

// WithIntermediateDirectory returns a copy of the settings with another intermediate directory.
func (s Settings) WithIntermediateDirectory(dir string) Settings {
	s.IntermediateDirectory = dir
	return s
}

// WithArtifactDirectory returns a copy of the settings with another artifact directory.
func (s Settings) WithArtifactDirectory(dir string) Settings {
	s.ArtifactDirectory = dir
	return s
}

// IsWindows reports whether the settings describe a Windows host.
func (s Settings) IsWindows() bool {
	return s.GOOS == "windows"
}

// ConfigurationName returns `debug` or `release`.
func (s Settings) ConfigurationName() string {
	if s.Debug {
		return "debug"
	}
	return "release"
}
