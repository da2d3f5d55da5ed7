package cc

import (
	"testing"
)

func TestPlatformSpecificNames(t *testing.T) {
	tests := []struct {
		actual   string
		expected string
	}{
		{LibraryName("windows", "My.Awesome.Stuff", false), "My.Awesome.Stuff.dll"},
		{LibraryName("windows", "My.Awesome.Stuff", true), "My.Awesome.Stuff.lib"},
		{LibraryName("linux", "My.Awesome.Stuff", false), "MyAwesomeStuff"},
		{LibraryName("linux", "My.Awesome.Stuff", true), "MyAwesomeStuff"},
		{ExecutableName("windows", "My.Awesome.Program"), "My.Awesome.Program.exe"},
		{ExecutableName("linux", "My.Awesome.Program"), "MyAwesomeProgram"},
		{LinkName("windows", "gtest_main"), "gtest_main.lib"},
		{LinkName("linux", "gtest_main"), "gtest_main"},
		{ObjectFileName("linux", "Source/Main.cpp"), "Source/Main.o"},
		{ObjectFileName("windows", "Source/Main.cpp"), "Source/Main.obj"},
	}
	for _, test := range tests {
		if test.actual != test.expected {
			t.Errorf("expected %s, got %s", test.expected, test.actual)
		}
	}
}
