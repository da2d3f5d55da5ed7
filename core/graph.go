package core

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"
)

// ErrDuplicateTarget is returned when two commands produce the same file.
var ErrDuplicateTarget = errors.New("target is produced by more than one command")

// ErrNoTargets is returned for commands without any target.
var ErrNoTargets = errors.New("command has no targets")

// Node identifies a command registered on a Graph.
type Node int

// Graph collects the commands of a build. Scheduling and staleness checks
// are left to ninja.
type Graph struct {
	commands  []Command
	producers map[string]Node
}

// NewGraph creates an empty graph.
func NewGraph() *Graph {
	return &Graph{producers: map[string]Node{}}
}

// Add registers a command.
func (g *Graph) Add(cmd Command) (Node, error) {
	if len(cmd.Targets) == 0 {
		return -1, fmt.Errorf("%w: '%s'", ErrNoTargets, cmd.Description)
	}
	node := Node(len(g.commands))
	for _, target := range cmd.Targets {
		key := filepath.Clean(target)
		if other, exists := g.producers[key]; exists {
			return -1, fmt.Errorf("%w: '%s' (by '%s' and '%s')",
				ErrDuplicateTarget, target, g.commands[other].Description, cmd.Description)
		}
	}
	for _, target := range cmd.Targets {
		g.producers[filepath.Clean(target)] = node
	}
	g.commands = append(g.commands, cmd)
	return node, nil
}

// Depends adds implicit inputs to a registered command.
func (g *Graph) Depends(node Node, paths ...string) {
	if node < 0 || int(node) >= len(g.commands) {
		return
	}
	g.commands[node].Depends = append(g.commands[node].Depends, paths...)
}

// Command returns a registered command.
func (g *Graph) Command(node Node) Command {
	return g.commands[node]
}

// Len returns the number of registered commands.
func (g *Graph) Len() int {
	return len(g.commands)
}

// Producer returns the command producing target.
func (g *Graph) Producer(target string) (Node, bool) {
	node, ok := g.producers[filepath.Clean(target)]
	return node, ok
}

// Targets returns all targets in sorted order.
func (g *Graph) Targets() []string {
	targets := []string{}
	for _, cmd := range g.commands {
		targets = append(targets, cmd.Targets...)
	}
	sort.Strings(targets)
	return targets
}

// WriteNinja writes the graph as a ninja build file.
func (g *Graph) WriteNinja(w io.Writer) error {
	b := &strings.Builder{}
	for id, cmd := range g.commands {
		fmt.Fprintf(b, "rule r%d\n", id)
		if cmd.Depfile != "" {
			fmt.Fprintf(b, "  depfile = %s\n", ninjaEscape(cmd.Depfile))
			fmt.Fprint(b, "  deps = gcc\n")
		}
		fmt.Fprintf(b, "  command = %s\n", strings.ReplaceAll(cmd.Action, "$", "$$"))
		if cmd.Description != "" {
			fmt.Fprintf(b, "  description = %s\n", strings.ReplaceAll(cmd.Description, "$", "$$"))
		}
		fmt.Fprint(b, "\n")
		fmt.Fprintf(b, "build %s: r%d", ninjaPaths(cmd.Targets), id)
		if len(cmd.Sources) > 0 {
			fmt.Fprintf(b, " %s", ninjaPaths(cmd.Sources))
		}
		if len(cmd.Depends) > 0 {
			fmt.Fprintf(b, " | %s", ninjaPaths(cmd.Depends))
		}
		fmt.Fprint(b, "\n\n")
	}
	_, err := io.WriteString(w, b.String())
	return err
}

func ninjaPaths(paths []string) string {
	escaped := []string{}
	for _, p := range paths {
		escaped = append(escaped, ninjaEscape(p))
	}
	return strings.Join(escaped, " ")
}

var ninjaEscaper = strings.NewReplacer("$", "$$", " ", "$ ", ":", "$:", "\n", "$\n")

func ninjaEscape(s string) string {
	return ninjaEscaper.Replace(s)
}
