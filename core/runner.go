package core

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/briandowns/spinner"
	"github.com/magefile/mage/sh"

	"github.com/daedaleanai/nbt/locate"
	"github.com/daedaleanai/nbt/log"
	"github.com/daedaleanai/nbt/util"
)

// NinjaFileName is the name of the generated build file.
const NinjaFileName = "build.ninja"

// Runner writes a graph to a ninja file and runs ninja on it.
type Runner struct {
	Locator *locate.Locator
	// NinjaExecutable skips locating ninja when set.
	NinjaExecutable string
	Threads         int
	Verbose         bool
	Stdout          io.Writer
	Stderr          io.Writer
}

// WriteNinjaFile writes the graph into dir and returns the file path.
func WriteNinjaFile(g *Graph, dir string) (string, error) {
	b := &bytes.Buffer{}
	if err := g.WriteNinja(b); err != nil {
		return "", err
	}
	ninjaFile := filepath.Join(dir, NinjaFileName)
	if err := util.WriteFile(ninjaFile, b.Bytes()); err != nil {
		return "", fmt.Errorf("failed to write ninja file: %w", err)
	}
	log.Debug("Ninja file: %s.\n", ninjaFile)
	return ninjaFile, nil
}

// Arguments returns the ninja command line arguments for building targets in dir.
func (r *Runner) Arguments(dir string, targets []string) []string {
	args := []string{"-C", dir}
	if r.Verbose {
		args = append(args, "-v", "-d", "explain")
	}
	if r.Threads > 0 {
		args = append(args, fmt.Sprintf("-j%d", r.Threads))
	}
	return append(args, targets...)
}

// Run writes the graph into dir and builds the given targets, all targets if none are given.
func (r *Runner) Run(g *Graph, dir string, targets []string) error {
	if _, err := WriteNinjaFile(g, dir); err != nil {
		return err
	}

	ninja := r.NinjaExecutable
	if ninja == "" {
		loc, err := r.Locator.Locate(locate.Request{Tool: locate.Ninja})
		if err != nil {
			return err
		}
		ninja = loc.Path
	}

	stdout, stderr := r.Stdout, r.Stderr
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	args := r.Arguments(dir, targets)
	log.Debug("Running ninja command: '%s %s'\n", ninja, strings.Join(args, " "))

	if r.Verbose {
		if _, err := sh.Exec(nil, stdout, stderr, ninja, args...); err != nil {
			return fmt.Errorf("running ninja failed: %w", err)
		}
		return nil
	}

	// Output is only shown when the build fails.
	output := &bytes.Buffer{}
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond)
	s.Writer = stderr
	s.Suffix = fmt.Sprintf(" Building %d commands...", g.Len())
	s.Start()
	_, err := sh.Exec(nil, output, output, ninja, args...)
	s.Stop()
	if err != nil {
		io.Copy(stderr, output)
		return fmt.Errorf("running ninja failed: %w", err)
	}
	return nil
}
