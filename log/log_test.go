package log

import (
	"bytes"
	"testing"
)

func captureOutput(t *testing.T) *bytes.Buffer {
	buf := &bytes.Buffer{}
	old := logger.Out
	logger.Out = buf
	t.Cleanup(func() { logger.Out = old })
	return buf
}

func TestLogIndentation(t *testing.T) {
	buf := captureOutput(t)
	IndentationLevel = 2
	defer func() { IndentationLevel = 0 }()

	Log("Checking '%s'.\n", "blender")
	if got := buf.String(); got != "    Checking 'blender'.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestDebugRequiresVerbose(t *testing.T) {
	buf := captureOutput(t)
	Verbose = false
	Debug("hidden\n")
	if buf.Len() != 0 {
		t.Fatalf("debug output printed without verbose: %q", buf.String())
	}

	Verbose = true
	defer func() { Verbose = false }()
	Debug("shown\n")
	if got := buf.String(); got != "\033[36mDebug: \033[0mshown\n" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestErrorIsRecorded(t *testing.T) {
	buf := captureOutput(t)
	errorOccured = false
	Warning("careful\n")
	if ErrorOccured() {
		t.Fatal("warning must not count as error")
	}
	Error("broken\n")
	if !ErrorOccured() {
		t.Fatal("error was not recorded")
	}
	want := "\033[33mWarning: \033[0mcareful\n\033[31mError: \033[0mbroken\n"
	if buf.String() != want {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestSuccessPrefix(t *testing.T) {
	buf := captureOutput(t)
	Success("Done.\n")
	if got := buf.String(); got != "\033[32mSuccess: \033[0mDone.\n" {
		t.Fatalf("unexpected output %q", got)
	}
}
