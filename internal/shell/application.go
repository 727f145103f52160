package shell

import (
	"fmt"

	"fyne.io/fyne/v2"

	"appshell/internal/appcontext"
	"appshell/internal/devserver"
	"appshell/internal/ipc"
	"appshell/internal/logger"
	"appshell/internal/shutdown"
)

// Application owns the window and the plugin set. Run blocks the calling
// goroutine for the process lifetime.
type Application struct {
	fyneApp    fyne.App
	window     fyne.Window
	appCtx     *appcontext.Context
	log        logger.Logger
	dispatcher *ipc.Dispatcher
	bus        *ipc.Bus
	manager    *shutdown.Manager
	dev        *devserver.Server
}

// Run starts optional services, shows the window and enters the event
// loop. Errors are only possible before the loop starts; once the loop
// owns the thread the only exits are the close intercept and signals.
func (a *Application) Run() error {
	if a.dev != nil {
		if err := a.dev.Start(); err != nil {
			return fmt.Errorf("dev server: %w", err)
		}
	}

	a.manager.Listen()

	a.window.SetCloseIntercept(func() {
		a.log.Info("Shell", "window close requested", nil)
		a.manager.Shutdown()
		a.window.Close()
	})

	// A signal-driven shutdown has no window close to end the loop, so the
	// loop is quit explicitly once the shutdown sequence finishes.
	go func() {
		<-a.manager.Done()
		fyne.Do(func() {
			a.fyneApp.Quit()
		})
	}()

	a.window.Show()
	a.log.Info("Shell", "event loop starting", map[string]interface{}{
		"title": a.window.Title(),
	})

	a.fyneApp.Run()
	return nil
}

// Commands exposes the dispatcher for embedders and tests.
func (a *Application) Commands() *ipc.Dispatcher { return a.dispatcher }

// Events exposes the native-to-content event bus.
func (a *Application) Events() *ipc.Bus { return a.bus }

// Window exposes the main window.
func (a *Application) Window() fyne.Window { return a.window }
