//go:build !android && !ios

package shell

import (
	"appshell/internal/plugin"
	"appshell/internal/plugin/globalshortcut"
)

func platformPlugins() []plugin.Plugin {
	return []plugin.Plugin{globalshortcut.New()}
}
