// Package plugin defines the contract between the shell and its capability
// plugins. A plugin grants the hosted content layer access to one native
// facility by registering commands on the shared dispatcher.
package plugin

import (
	"fyne.io/fyne/v2"

	"appshell/internal/appcontext"
	"appshell/internal/ipc"
	"appshell/internal/logger"
)

// Host is handed to each plugin at init time.
type Host struct {
	App      fyne.App
	Window   fyne.Window
	Commands *ipc.Dispatcher
	Events   *ipc.Bus
	Context  *appcontext.Context
	Log      logger.Logger
}

// Plugin is one optional capability. Init runs once during Build, before
// the event loop starts; Shutdown runs in reverse registration order when
// the shell exits.
type Plugin interface {
	Name() string
	Init(host *Host) error
	Shutdown()
}
