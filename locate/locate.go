// Package locate finds the executables of external tools (compilers, MSBuild,
// Blender, Godot, ninja) on the host.
//
// Every tool is searched in a fixed order and the first existing file wins:
// an explicit override, the executable search PATH, the Windows registry and
// finally well-known install directories such as `Program Files` or `/opt`.
package locate

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"runtime"
	"sync"

	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/util"
)

// Tool identifies an external tool.
type Tool string

const (
	Compiler Tool = "compiler"
	MSBuild  Tool = "msbuild"
	Blender  Tool = "blender"
	Godot    Tool = "godot"
	Ninja    Tool = "ninja"
)

// Tools lists all tools the locator knows about.
var Tools = []Tool{Compiler, MSBuild, Blender, Godot, Ninja}

// ErrToolNotFound is wrapped by every error returned when a tool could not be located.
var ErrToolNotFound = errors.New("tool not found")

// NotFoundError reports that no candidate location of a tool exists.
type NotFoundError struct {
	Tool    Tool
	Version string
	Reason  string
}

func (e *NotFoundError) Error() string {
	msg := fmt.Sprintf("could not locate a %s executable", e.Tool)
	if e.Version != "" {
		msg += fmt.Sprintf(" (version '%s')", e.Version)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *NotFoundError) Unwrap() error {
	return ErrToolNotFound
}

// Request asks for one tool in one version.
type Request struct {
	Tool    Tool
	Version string
	// Name is the executable name for tools without a fixed name (compilers).
	Name string
	// Override is an explicit executable path. When set, no search is done.
	Override string
}

// Location is the resolved absolute path of an executable.
type Location struct {
	Path string
}

// Host abstracts the parts of the operating system the locator queries.
type Host struct {
	GOOS     string
	LookPath func(file string) (string, error)
	Getenv   func(key string) string
	Registry Registry
	// OptDirectory is the well-known install directory on non-Windows hosts.
	OptDirectory string
}

// DefaultHost returns the host nbt is running on.
func DefaultHost() Host {
	return Host{
		GOOS:         runtime.GOOS,
		LookPath:     exec.LookPath,
		Getenv:       os.Getenv,
		Registry:     systemRegistry(),
		OptDirectory: "/opt",
	}
}

func (h Host) isWindows() bool {
	return h.GOOS == "windows"
}

// Locator resolves tool requests. Results are cached until Forget is called;
// a cached location whose file has disappeared is searched again.
type Locator struct {
	host    Host
	catalog Catalog

	mu    sync.Mutex
	cache map[Request]string
}

// New creates a locator for the given host and tables.
func New(host Host, catalog Catalog) *Locator {
	return &Locator{
		host:    host,
		catalog: catalog,
		cache:   map[Request]string{},
	}
}

// Forget drops all cached locations.
func (l *Locator) Forget() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cache = map[Request]string{}
}

// Locate returns the location of the requested tool or an error wrapping ErrToolNotFound.
func (l *Locator) Locate(req Request) (Location, error) {
	l.mu.Lock()
	cached, ok := l.cache[req]
	l.mu.Unlock()
	if ok {
		if util.FileExists(cached) {
			return Location{cached}, nil
		}
		log.Debug("Cached %s location '%s' disappeared.\n", req.Tool, cached)
	}

	path, err := l.search(req)
	if err != nil {
		return Location{}, err
	}
	log.Debug("Located %s at '%s'.\n", req.Tool, path)

	l.mu.Lock()
	l.cache[req] = path
	l.mu.Unlock()
	return Location{path}, nil
}

func (l *Locator) search(req Request) (string, error) {
	if req.Override != "" {
		path, err := util.ExpandPath(req.Override)
		if err == nil && util.FileExists(path) {
			return path, nil
		}
		return "", &NotFoundError{req.Tool, req.Version, fmt.Sprintf("configured executable '%s' does not exist", req.Override)}
	}

	var path string
	var found bool
	switch req.Tool {
	case Compiler:
		path, found = l.findCompiler(req)
	case MSBuild:
		path, found = l.findMSBuild(req.Version)
	case Blender:
		path, found = l.findBlender()
	case Godot:
		names, known := l.catalog.godotExecutables(req.Version)
		if !known {
			return "", &NotFoundError{req.Tool, req.Version, "unknown Godot version"}
		}
		path, found = l.findInInstallDirectories("godot", []string{"bin", ""}, names)
	case Ninja:
		path, found = l.findInPath(l.catalog.ninjaNames()...)
	default:
		return "", &NotFoundError{req.Tool, req.Version, "unknown tool"}
	}

	if !found {
		return "", &NotFoundError{Tool: req.Tool, Version: req.Version}
	}
	return path, nil
}

func (l *Locator) findCompiler(req Request) (string, bool) {
	if req.Name == "" {
		return "", false
	}
	return l.findInPath(req.Name)
}

func (l *Locator) findBlender() (string, bool) {
	if l.host.isWindows() {
		if path, ok := l.findInRegistryCommands(l.catalog.blenderRegistryKeys(), "blender.exe"); ok {
			return path, true
		}
	} else if path, ok := l.findInPath("blender"); ok {
		return path, true
	}

	name := "blender"
	if l.host.isWindows() {
		name = "blender.exe"
	}
	return l.findInInstallDirectories("blender", []string{"Blender", ""}, []string{name})
}
