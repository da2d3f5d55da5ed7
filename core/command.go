package core

import (
	"fmt"
	"path/filepath"
	"runtime"
	"strings"
)

// Command is one build step: running Action produces Targets from Sources.
// Depends lists implicit inputs which are not passed on the command line.
type Command struct {
	Sources     []string
	Targets     []string
	Depends     []string
	Action      string
	Description string
	// Depfile is a gcc-style dependency file written by the command.
	Depfile string
}

const (
	posixMetacharacters   = " \t\n\"'`$&|;<>()*?[]{}!#~\\"
	windowsMetacharacters = " \t\n\""
)

// Quoting is the argument quoting of the shell ninja runs commands with.
type Quoting int

const (
	// PosixQuoting single-quotes arguments for `/bin/sh -c`.
	PosixQuoting Quoting = iota
	// WindowsQuoting double-quotes arguments for CreateProcess command lines.
	WindowsQuoting
)

// HostQuoting is the quoting used by Quote and QuoteAlways.
var HostQuoting = QuotingFor(runtime.GOOS)

// QuotingFor returns the quoting of commands run on goos.
func QuotingFor(goos string) Quoting {
	if goos == "windows" {
		return WindowsQuoting
	}
	return PosixQuoting
}

// Quote returns arg unchanged unless it contains whitespace or shell
// metacharacters, in which case it is quoted.
func (q Quoting) Quote(arg string) string {
	metacharacters := posixMetacharacters
	if q == WindowsQuoting {
		metacharacters = windowsMetacharacters
	}
	if arg != "" && !strings.ContainsAny(arg, metacharacters) {
		return arg
	}
	return q.QuoteAlways(arg)
}

// QuoteAlways quotes arg. POSIX arguments are single-quoted, so `$`, backticks
// and backslashes reach the tool unchanged.
func (q Quoting) QuoteAlways(arg string) string {
	if q == WindowsQuoting {
		return windowsQuote(arg)
	}
	return "'" + strings.ReplaceAll(arg, "'", `'\''`) + "'"
}

// windowsQuote follows the CommandLineToArgvW rules: backslashes are doubled
// where they precede a quote, including the closing one.
func windowsQuote(arg string) string {
	b := strings.Builder{}
	b.WriteByte('"')
	backslashes := 0
	for _, r := range arg {
		switch r {
		case '\\':
			backslashes++
			continue
		case '"':
			b.WriteString(strings.Repeat(`\`, 2*backslashes+1))
		default:
			b.WriteString(strings.Repeat(`\`, backslashes))
		}
		backslashes = 0
		b.WriteRune(r)
	}
	b.WriteString(strings.Repeat(`\`, 2*backslashes))
	b.WriteByte('"')
	return b.String()
}

// Quote quotes arg for the host shell when needed.
func Quote(arg string) string {
	return HostQuoting.Quote(arg)
}

// QuoteAlways quotes arg for the host shell.
func QuoteAlways(arg string) string {
	return HostQuoting.QuoteAlways(arg)
}

// Assemble builds the command line `'tool' fixed... dynamic...` and the
// command producing targets from sources.
func Assemble(toolPath string, fixedArgs, dynamicArgs, sources, targets []string) Command {
	action := strings.Builder{}
	action.WriteString(QuoteAlways(toolPath))
	for _, args := range [][]string{fixedArgs, dynamicArgs} {
		for _, arg := range args {
			action.WriteString(" ")
			action.WriteString(Quote(arg))
		}
	}

	tool := strings.TrimSuffix(filepath.Base(toolPath), filepath.Ext(toolPath))
	return Command{
		Sources:     append([]string{}, sources...),
		Targets:     append([]string{}, targets...),
		Action:      action.String(),
		Description: fmt.Sprintf("%s %s", strings.ToUpper(tool), strings.Join(targets, " ")),
	}
}

// WithDescription returns a copy of the command with another description.
func (c Command) WithDescription(format string, a ...interface{}) Command {
	c.Description = fmt.Sprintf(format, a...)
	return c
}
