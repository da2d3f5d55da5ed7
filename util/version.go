package util

import (
	"regexp"
	"strconv"
	"strings"
)

// Version is a dotted version number as printed by compilers, e.g. `9.3.0`.
type Version []string

var versionPattern = regexp.MustCompile(`[0-9][0-9.]*`)

// NbtVersion is the version of this tool.
var NbtVersion = Version{"1", "2", "0"}

// ParseVersion extracts the first dotted version number from s.
func ParseVersion(s string) (Version, bool) {
	match := versionPattern.FindString(s)
	if match == "" {
		return nil, false
	}
	parts := []string{}
	for _, part := range strings.Split(match, ".") {
		if part != "" {
			parts = append(parts, part)
		}
	}
	return Version(parts), true
}

// Major returns the major version component.
func (v Version) Major() string {
	if len(v) == 0 {
		return ""
	}
	return v[0]
}

// MajorNumber returns the major version as a number.
func (v Version) MajorNumber() (int, bool) {
	n, err := strconv.Atoi(v.Major())
	return n, err == nil
}

func (v Version) String() string {
	return strings.Join(v, ".")
}
