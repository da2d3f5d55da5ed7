// Package msbuild reads MSBuild project files (.csproj and friends) to learn
// which files a build consumes and produces, and assembles MSBuild commands.
package msbuild

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Namespace is the XML namespace of MSBuild project files.
const Namespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// UnknownFramework is returned by TargetFramework for unrecognized frameworks.
const UnknownFramework = "unknown"

type xmlProperty struct {
	XMLName xml.Name
	Value   string `xml:",chardata"`
}

type xmlPropertyGroup struct {
	XMLName    xml.Name
	Properties []xmlProperty `xml:",any"`
}

type xmlItem struct {
	XMLName xml.Name
	Include string `xml:"Include,attr"`
}

type xmlItemGroup struct {
	XMLName xml.Name
	Compile []xmlItem `xml:"Compile"`
}

type xmlProject struct {
	XMLName        xml.Name
	PropertyGroups []xmlPropertyGroup `xml:"PropertyGroup"`
	ItemGroups     []xmlItemGroup     `xml:"ItemGroup"`
}

type property struct {
	name  string
	value string
}

// Project is a parsed MSBuild project.
type Project struct {
	Path       string
	properties []property
	compile    []string
}

func inNamespace(name xml.Name) bool {
	return name.Space == Namespace || name.Space == ""
}

// Parse reads an MSBuild project. Elements outside the MSBuild namespace are ignored.
func Parse(path string, data []byte) (*Project, error) {
	doc := xmlProject{}
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse MSBuild project '%s': %w", path, err)
	}
	if doc.XMLName.Local != "Project" || !inNamespace(doc.XMLName) {
		return nil, fmt.Errorf("'%s' is not an MSBuild project", path)
	}

	p := &Project{Path: path}
	for _, group := range doc.PropertyGroups {
		if !inNamespace(group.XMLName) {
			continue
		}
		for _, prop := range group.Properties {
			if inNamespace(prop.XMLName) {
				p.properties = append(p.properties, property{prop.XMLName.Local, strings.TrimSpace(prop.Value)})
			}
		}
	}
	for _, group := range doc.ItemGroups {
		if !inNamespace(group.XMLName) {
			continue
		}
		for _, item := range group.Compile {
			if inNamespace(item.XMLName) && item.Include != "" {
				p.compile = append(p.compile, item.Include)
			}
		}
	}
	return p, nil
}

// Load reads an MSBuild project from disk.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(path, data)
}

// Directory returns the directory holding the project file.
func (p *Project) Directory() string {
	return filepath.Dir(p.Path)
}

// Property returns the first value of a property.
func (p *Project) Property(name string) (string, bool) {
	for _, prop := range p.properties {
		if prop.name == name {
			return prop.value, true
		}
	}
	return "", false
}

// AssemblyName returns the name of the assembly the project builds.
func (p *Project) AssemblyName() (string, bool) {
	return p.Property("AssemblyName")
}

// OutputType returns Library, Exe, WinExe or whatever else the project declares.
func (p *Project) OutputType() (string, bool) {
	return p.Property("OutputType")
}

// Sources lists the files compiled by the project, relative to the project
// directory and using the host's path separator.
func (p *Project) Sources() []string {
	sources := []string{}
	for _, include := range p.compile {
		sources = append(sources, filepath.Join(strings.Split(include, `\`)...))
	}
	return sources
}

// SourcePaths lists the compiled files with the project directory prepended.
func (p *Project) SourcePaths() []string {
	paths := []string{}
	for _, source := range p.Sources() {
		paths = append(paths, filepath.Join(p.Directory(), source))
	}
	return paths
}

// Outputs lists the file names of the main build outputs. These are
// representative rather than complete; the debug database is not included
// in either configuration.
func (p *Project) Outputs(debug bool) []string {
	name, ok := p.AssemblyName()
	if !ok || name == "" {
		return []string{}
	}
	outputType, _ := p.OutputType()
	switch outputType {
	case "Library":
		return []string{name + ".dll"}
	case "Exe", "WinExe":
		return []string{name + ".exe"}
	default:
		return []string{}
	}
}

var frameworkVersions = map[string]string{
	"v2.0":   "net20",
	"v3.0":   "net30",
	"v3.5":   "net35",
	"v4.0":   "net40",
	"v4.5.2": "net45",
	"v4.6":   "net46",
	"v4.6.1": "net46",
	"v4.6.2": "net46",
	"v4.7":   "net47",
	"v4.7.1": "net47",
	"v4.7.2": "net47",
}

var targetFrameworks = map[string]string{
	"netstandard1.0": "netstandard10",
	"netstandard1.1": "netstandard11",
	"netstandard1.2": "netstandard12",
	"netstandard1.3": "netstandard13",
	"netstandard1.4": "netstandard14",
	"netstandard1.5": "netstandard15",
	"netstandard1.6": "netstandard16",
	"netstandard2.0": "netstandard20",
	"netstandard3.0": "netstandard30",
}

// TargetFramework returns the version tag of the targeted .NET framework,
// e.g. `net46`, or UnknownFramework.
func (p *Project) TargetFramework() string {
	if version, ok := p.Property("TargetFrameworkVersion"); ok {
		if tag, known := frameworkVersions[version]; known {
			return tag
		}
	}
	if framework, ok := p.Property("TargetFramework"); ok {
		if tag, known := targetFrameworks[framework]; known {
			return tag
		}
	}
	return UnknownFramework
}
