//go:build android || ios

package shell

import "appshell/internal/plugin"

// Global shortcut capture is a desktop facility; mobile builds ship
// without it.
func platformPlugins() []plugin.Plugin {
	return nil
}
