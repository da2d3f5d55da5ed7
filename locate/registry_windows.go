//go:build windows

package locate

import (
	"golang.org/x/sys/windows/registry"
)

type windowsRegistry struct{}

func systemRegistry() Registry {
	return windowsRegistry{}
}

func (windowsRegistry) ReadString(key RegistryKey) (string, bool) {
	root := registry.LOCAL_MACHINE
	if key.Root == ClassesRoot {
		root = registry.CLASSES_ROOT
	}

	k, err := registry.OpenKey(root, key.Path, registry.QUERY_VALUE)
	if err != nil {
		return "", false
	}
	defer k.Close()

	value, _, err := k.GetStringValue(key.Value)
	if err != nil {
		return "", false
	}
	return value, true
}
