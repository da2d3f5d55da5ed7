package locate

// Catalog holds the fixed tables the locator searches with: executable names
// per tool version, known install paths and registry keys. A Catalog is never
// modified after construction; accessors hand out copies.
type Catalog struct {
	godot           map[string][]string
	msbuildPaths    map[string][][]string
	msbuildRegistry map[string][]string
	blenderKeys     []RegistryKey
	ninja           []string
}

func copyStrings(s []string) []string {
	return append([]string(nil), s...)
}

// DefaultCatalog returns the tables describing the supported tool versions.
func DefaultCatalog() Catalog {
	programFilesX86 := "%ProgramFiles(x86)%"
	visualStudio2017 := func(edition string, amd64 bool) []string {
		p := []string{programFilesX86, "Microsoft Visual Studio", "2017", edition, "MSBuild", "15.0", "Bin"}
		if amd64 {
			p = append(p, "amd64")
		}
		return append(p, "MSBuild.exe")
	}
	standalone := func(amd64 bool) []string {
		p := []string{programFilesX86, "MSBuild", "14.0", "Bin"}
		if amd64 {
			p = append(p, "amd64")
		}
		return append(p, "MSBuild.exe")
	}
	framework := func(dir, version string) []string {
		return []string{"%WinDir%", "Microsoft.NET", dir, version, "MSBuild.exe"}
	}

	return Catalog{
		godot: map[string][]string{
			"3.0": {
				"Godot_v3.0.6-stable_linux_headless.64",
				"Godot_v3.0.6-stable_x11.64",
				"Godot_v3.0.6-stable_win64.exe",
			},
			"3.1": {
				"Godot_v3.1-stable_linux_headless.64",
				"Godot_v3.1-stable_x11.64",
				"Godot_v3.1-stable_win64.exe",
			},
			"git": {
				"godot_headless.x11.opt.tools.64",
			},
		},
		// 64 bit paths come first, the 32 bit build is the fallback.
		msbuildPaths: map[string][][]string{
			"2.0": {framework("Framework64", "v2.0.50727"), framework("Framework", "v2.0.50727")},
			"3.5": {framework("Framework64", "v3.5"), framework("Framework", "v3.5")},
			"4.0": {framework("Framework64", "v4.0.30319"), framework("Framework", "v4.0.30319")},
			"latest": {
				visualStudio2017("Community", true),
				visualStudio2017("Professional", true),
				visualStudio2017("Enterprise", true),
				standalone(true),
				visualStudio2017("Community", false),
				visualStudio2017("Professional", false),
				visualStudio2017("Enterprise", false),
				standalone(false),
			},
		},
		msbuildRegistry: map[string][]string{
			"2.0":    {"2.0"},
			"3.5":    {"3.5"},
			"4.0":    {"4.0"},
			"latest": {"14.0", "12.0", "4.0"},
			"system": {"14.0", "12.0", "4.0"},
		},
		blenderKeys: []RegistryKey{
			{LocalMachine, `SOFTWARE\Classes\blendfile\shell\open\command`, ""},
			{ClassesRoot, `blendfile\shell\open\command`, ""},
		},
		ninja: []string{"ninja", "ninja-build"},
	}
}

func (c Catalog) godotExecutables(version string) ([]string, bool) {
	names, ok := c.godot[version]
	return copyStrings(names), ok
}

// GodotVersions returns the Godot versions with known executable names.
func (c Catalog) GodotVersions() []string {
	versions := []string{}
	for v := range c.godot {
		versions = append(versions, v)
	}
	return versions
}

func (c Catalog) msbuildKnownPaths(version string) [][]string {
	result := [][]string{}
	for _, p := range c.msbuildPaths[version] {
		result = append(result, copyStrings(p))
	}
	return result
}

func (c Catalog) msbuildToolsVersions(version string) []string {
	return copyStrings(c.msbuildRegistry[version])
}

func (c Catalog) blenderRegistryKeys() []RegistryKey {
	return append([]RegistryKey(nil), c.blenderKeys...)
}

func (c Catalog) ninjaNames() []string {
	return copyStrings(c.ninja)
}
