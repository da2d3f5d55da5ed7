package locate

import "regexp"

// RegistryRoot is one of the predefined Windows registry hives.
type RegistryRoot int

const (
	LocalMachine RegistryRoot = iota
	ClassesRoot
)

// RegistryKey addresses a string value in the Windows registry. An empty
// Value addresses the key's default value.
type RegistryKey struct {
	Root  RegistryRoot
	Path  string
	Value string
}

// Registry reads string values from the Windows registry.
type Registry interface {
	ReadString(key RegistryKey) (string, bool)
}

// RegistryMap is a Registry backed by a map, used on hosts without a registry.
type RegistryMap map[RegistryKey]string

func (r RegistryMap) ReadString(key RegistryKey) (string, bool) {
	value, ok := r[key]
	return value, ok
}

var quotedPattern = regexp.MustCompile(`"(.+?)"`)

// QuotedExecutable extracts the first double-quoted path from a shell command
// string such as `"C:\Program Files\Blender\blender.exe" "%1"`.
func QuotedExecutable(command string) (string, bool) {
	match := quotedPattern.FindStringSubmatch(command)
	if match == nil {
		return "", false
	}
	return match[1], true
}
