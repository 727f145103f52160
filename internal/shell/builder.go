// Package shell assembles the application: capability plugins, the native
// window described by the generated context, and the blocking event loop.
package shell

import (
	"fmt"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"

	"appshell/internal/appcontext"
	"appshell/internal/devserver"
	"appshell/internal/ipc"
	"appshell/internal/logger"
	"appshell/internal/plugin"
	"appshell/internal/shutdown"
)

// Builder collects plugins before Build wires them to the runtime. The
// first error sticks and surfaces from Build, so registration chains stay
// declarative.
type Builder struct {
	appCtx  *appcontext.Context
	log     logger.Logger
	plugins []plugin.Plugin
	err     error

	// newApp is swappable so tests can assemble against the fyne test
	// driver instead of a real display.
	newApp func() fyne.App
}

func New(appCtx *appcontext.Context, log logger.Logger) *Builder {
	return &Builder{
		appCtx: appCtx,
		log:    log,
		newApp: func() fyne.App {
			app.SetMetadata(fyne.AppMetadata{
				ID:      appCtx.Identifier,
				Name:    appCtx.ProductName,
				Version: appCtx.Version,
			})
			return app.NewWithID(appCtx.Identifier)
		},
	}
}

// Plugin registers a capability. Registration order is preserved; plugins
// shut down in reverse order on exit.
func (b *Builder) Plugin(p plugin.Plugin) *Builder {
	if b.err != nil {
		return b
	}
	for _, existing := range b.plugins {
		if existing.Name() == p.Name() {
			b.err = fmt.Errorf("plugin %q registered twice", p.Name())
			return b
		}
	}
	b.plugins = append(b.plugins, p)
	return b
}

func (b *Builder) Build() (*Application, error) {
	if b.err != nil {
		return nil, b.err
	}

	fyneApp := b.newApp()
	window := fyneApp.NewWindow(b.windowTitle())
	b.configureWindow(window)

	dispatcher := ipc.NewDispatcher(b.appCtx, b.log)
	bus := ipc.NewBus()
	manager := shutdown.NewManager(b.log)

	host := &plugin.Host{
		App:      fyneApp,
		Window:   window,
		Commands: dispatcher,
		Events:   bus,
		Context:  b.appCtx,
		Log:      b.log,
	}

	names := make([]string, 0, len(b.plugins))
	for _, p := range b.plugins {
		if err := p.Init(host); err != nil {
			return nil, fmt.Errorf("plugin %s: %w", p.Name(), err)
		}
		manager.Register("plugin:"+p.Name(), p)
		names = append(names, p.Name())
	}

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		appCtx:     b.appCtx,
		log:        b.log,
		dispatcher: dispatcher,
		bus:        bus,
		manager:    manager,
	}

	if b.appCtx.Dev.Address != "" {
		application.dev = devserver.New(b.appCtx.Dev, dispatcher, bus, b.log)
		manager.Register("devserver", application.dev)
	}

	b.log.Info("Shell", "application assembled", map[string]interface{}{
		"identifier": b.appCtx.Identifier,
		"version":    b.appCtx.Version,
		"plugins":    names,
		"dev_server": b.appCtx.Dev.Address != "",
	})
	return application, nil
}

func (b *Builder) windowTitle() string {
	if b.appCtx.Window.Title != "" {
		return b.appCtx.Window.Title
	}
	return b.appCtx.ProductName
}

func (b *Builder) configureWindow(window fyne.Window) {
	cfg := b.appCtx.Window

	window.Resize(windowSize(cfg))
	window.SetFixedSize(!cfg.Resizable)
	if cfg.Fullscreen {
		window.SetFullScreen(true)
	}
	if cfg.Center {
		window.CenterOnScreen()
	}
	window.SetMaster()
}

// windowSize clamps the configured size against the configured minimum,
// so a context that shrinks the window below its floor still opens usable.
func windowSize(cfg appcontext.WindowConfig) fyne.Size {
	width, height := cfg.Width, cfg.Height
	if width < cfg.MinWidth {
		width = cfg.MinWidth
	}
	if height < cfg.MinHeight {
		height = cfg.MinHeight
	}
	return fyne.NewSize(width, height)
}
