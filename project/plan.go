package project

import (
	"fmt"
	"path/filepath"

	"github.com/daedaleanai/nbt/blender"
	"github.com/daedaleanai/nbt/builddir"
	"github.com/daedaleanai/nbt/cc"
	"github.com/daedaleanai/nbt/config"
	"github.com/daedaleanai/nbt/core"
	"github.com/daedaleanai/nbt/godot"
	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/msbuild"
	"github.com/daedaleanai/nbt/scan"
	"github.com/daedaleanai/nbt/util"
)

type environmentKey struct {
	settings config.Settings
	dir      string
}

// Planner registers the commands of project targets on a graph. Tools and
// compiler environments are resolved once per configuration.
type Planner struct {
	Locator *locate.Locator
	Probe   cc.Prober
	// Overrides are applied after project and target settings and the
	// `NBT_*` environment, e.g. KEY=VALUE arguments.
	Overrides map[string]string

	environments map[environmentKey]*cc.Environment
	scripts      map[string]bool
}

// NewPlanner creates a planner resolving tools with l.
func NewPlanner(l *locate.Locator, probe cc.Prober) *Planner {
	return &Planner{
		Locator:      l,
		Probe:        probe,
		environments: map[environmentKey]*cc.Environment{},
		scripts:      map[string]bool{},
	}
}

func resolve(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func resolveAll(dir string, paths []string) []string {
	return util.MappedSlice(paths, func(path string) string { return resolve(dir, path) })
}

// Settings returns the settings a target is built with.
func Settings(base config.Settings, f *File, t Target) (config.Settings, error) {
	s, err := base.With(f.Settings)
	if err != nil {
		return config.Settings{}, fmt.Errorf("project '%s': %w", f.Path, err)
	}
	s, err = s.With(t.Settings)
	if err != nil {
		return config.Settings{}, fmt.Errorf("target '%s': %w", t.Name, err)
	}
	return s, nil
}

// Plan registers every target of the project file.
func (p *Planner) Plan(g *core.Graph, f *File, base config.Settings) error {
	for _, t := range f.Targets {
		if err := p.PlanTarget(g, f, t, base); err != nil {
			return fmt.Errorf("target '%s': %w", t.Name, err)
		}
	}
	return nil
}

// PlanTarget registers the commands of a single target.
func (p *Planner) PlanTarget(g *core.Graph, f *File, t Target, base config.Settings) error {
	s, err := Settings(base, f, t)
	if err != nil {
		return err
	}
	for _, layer := range []map[string]string{config.Environment(), p.Overrides} {
		if s, err = s.With(layer); err != nil {
			return err
		}
	}
	log.Debug("Planning %s target '%s' (%s).\n", t.Kind, t.Name, s.ConfigurationName())

	switch t.Kind {
	case KindLibrary, KindStaticLibrary, KindExecutable, KindLibraryWithTests, KindUnitTests:
		return p.planNative(g, f, t, s)
	case KindMSBuild:
		return p.planMSBuild(g, f, s, t.Project)
	case KindMSBuildWithTests:
		if err := p.planMSBuild(g, f, s, t.Project); err != nil {
			return err
		}
		return p.planMSBuild(g, f, s, t.TestProject)
	case KindMesh, KindAnimations:
		return p.planExport(g, f, t, s)
	case KindGodot:
		return p.planGodot(g, f, t, s)
	}
	return fmt.Errorf("%w: unknown kind '%s'", ErrInvalidProject, t.Kind)
}

// Environment returns the C/C++ environment for a project directory.
func (p *Planner) Environment(s config.Settings, dir string) (*cc.Environment, error) {
	key := environmentKey{s, dir}
	if env, ok := p.environments[key]; ok {
		return env, nil
	}
	env, err := cc.NewEnvironment(s, dir, p.Locator, p.Probe)
	if err != nil {
		return nil, err
	}
	p.environments[key] = env
	return env, nil
}

func (p *Planner) packages(env *cc.Environment, f *File, t Target) ([]cc.Package, error) {
	packages := []cc.Package{}
	for _, name := range t.Packages {
		declared := f.Package(name)
		pkg, err := env.ResolvePackage(declared.Name, declared.Libraries)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}
	return packages, nil
}

func enumerate(dir string, listed []string, directory string) ([]string, error) {
	if len(listed) > 0 {
		return resolveAll(dir, listed), nil
	}
	return scan.Files(resolve(dir, directory), scan.CppSources)
}

func (p *Planner) planNative(g *core.Graph, f *File, t Target, s config.Settings) error {
	dir := f.Directory()
	env, err := p.Environment(s, dir)
	if err != nil {
		return err
	}
	if t.Kind == KindUnitTests {
		_, err := env.RunUnitTests(g, t.TestExecutableName())
		return err
	}

	packages, err := p.packages(env, f, t)
	if err != nil {
		return err
	}
	sources, err := enumerate(dir, t.Sources, s.SourceDirectory)
	if err != nil {
		return err
	}
	includes := []string{}
	if headers := resolve(dir, s.HeaderDirectory); util.DirExists(headers) {
		includes = append(includes, headers)
	}

	switch t.Kind {
	case KindLibrary, KindStaticLibrary:
		_, err = env.BuildLibrary(g, cc.Library{
			Name:               t.Name,
			Static:             t.Kind == KindStaticLibrary,
			Sources:            sources,
			IncludeDirectories: includes,
			Packages:           packages,
		})
	case KindExecutable:
		_, err = env.BuildExecutable(g, cc.Executable{
			Name:               t.Name,
			Console:            t.Console,
			Sources:            sources,
			IncludeDirectories: includes,
			Packages:           packages,
		})
	case KindLibraryWithTests:
		testSources, err := enumerate(dir, t.TestSources, s.TestsDirectory)
		if err != nil {
			return err
		}
		_, err = env.BuildLibraryWithTests(g, cc.LibraryWithTests{
			Name:               t.Name,
			TestName:           t.TestExecutableName(),
			Sources:            sources,
			TestSources:        testSources,
			IncludeDirectories: includes,
			Packages:           packages,
		})
		return err
	}
	return err
}

// MSBuildOutputDirectory returns the directory an MSBuild project is built into.
func MSBuildOutputDirectory(s config.Settings, dir string, p *msbuild.Project) string {
	return builddir.IntermediatePath(resolve(dir, s.IntermediateDirectory), builddir.DotNetName(p.TargetFramework(), s.Debug))
}

func (p *Planner) planMSBuild(g *core.Graph, f *File, s config.Settings, projectPath string) error {
	proj, err := msbuild.Load(resolve(f.Directory(), projectPath))
	if err != nil {
		return err
	}
	loc, err := p.Locator.Locate(locate.Request{Tool: locate.MSBuild, Version: s.MSBuildVersion, Override: s.MSBuildExecutable})
	if err != nil {
		return err
	}
	cmd, err := msbuild.Command(loc.Path, proj, MSBuildOutputDirectory(s, f.Directory(), proj), s.Debug)
	if err != nil {
		return err
	}
	_, err = g.Add(cmd)
	return err
}

// ScriptDirectory returns where the Blender export scripts are written.
func ScriptDirectory(s config.Settings, dir string) string {
	return filepath.Join(resolve(dir, s.IntermediateDirectory), "scripts")
}

func (p *Planner) planExport(g *core.Graph, f *File, t Target, s config.Settings) error {
	dir := f.Directory()
	output := resolve(dir, t.Output)
	if _, err := blender.DetectFormat(output); err != nil {
		return err
	}

	loc, err := p.Locator.Locate(locate.Request{Tool: locate.Blender, Version: s.BlenderVersion, Override: s.BlenderExecutable})
	if err != nil {
		return err
	}
	scripts := ScriptDirectory(s, dir)
	if !p.scripts[scripts] {
		if err := blender.WriteScripts(scripts); err != nil {
			return err
		}
		p.scripts[scripts] = true
	}

	exporter := blender.Exporter{Blender: loc.Path, ScriptDirectory: scripts}
	if t.Kind == KindAnimations {
		return exporter.ExportAnimations(g, resolve(dir, t.Scene), output, resolve(dir, t.Library), t.Wildcards)
	}
	return exporter.ExportMeshes(g, resolve(dir, t.Scene), output, t.Wildcards)
}

func (p *Planner) planGodot(g *core.Graph, f *File, t Target, s config.Settings) error {
	loc, err := p.Locator.Locate(locate.Request{Tool: locate.Godot, Version: s.GodotVersion, Override: s.GodotExecutable})
	if err != nil {
		return err
	}
	dir := f.Directory()
	projectDir := dir
	if t.Project != "" {
		projectDir = resolve(dir, t.Project)
	}
	return godot.Export(g, loc.Path, projectDir, t.Preset, resolve(dir, t.Output), s.Debug)
}
