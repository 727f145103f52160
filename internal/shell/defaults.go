package shell

import (
	"appshell/internal/plugin"
	"appshell/internal/plugin/clipboard"
	"appshell/internal/plugin/fsaccess"
	"appshell/internal/plugin/opener"
)

// DefaultPlugins is the standard capability set: clipboard, opener and
// filesystem access on every target, plus global shortcuts where the
// platform set provides them.
func DefaultPlugins() []plugin.Plugin {
	plugins := []plugin.Plugin{
		clipboard.New(),
		opener.New(),
		fsaccess.New(),
	}
	return append(plugins, platformPlugins()...)
}
