//go:build !android && !ios

// Package globalshortcut registers keyboard accelerators on the shell
// window. It only ships in desktop builds; mobile targets never see it.
package globalshortcut

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"

	"appshell/internal/plugin"
)

type Plugin struct {
	host *plugin.Host

	mu        sync.Mutex
	shortcuts map[string]*desktop.CustomShortcut
}

func New() *Plugin {
	return &Plugin{shortcuts: make(map[string]*desktop.CustomShortcut)}
}

func (p *Plugin) Name() string { return "globalshortcut" }

func (p *Plugin) Init(host *plugin.Host) error {
	p.host = host

	if err := host.Commands.Register("globalshortcut:register", p.registerCommand); err != nil {
		return err
	}
	return host.Commands.Register("globalshortcut:unregister", p.unregisterCommand)
}

func (p *Plugin) Shutdown() {
	p.mu.Lock()
	defer p.mu.Unlock()

	canvas := p.host.Window.Canvas()
	for _, sc := range p.shortcuts {
		canvas.RemoveShortcut(sc)
	}
	p.shortcuts = make(map[string]*desktop.CustomShortcut)
}

// Register binds an accelerator to a handler. Re-registering the same
// accelerator replaces the previous handler.
func (p *Plugin) Register(accel string, handler func()) error {
	sc, err := ParseAccelerator(accel)
	if err != nil {
		return err
	}
	key := canonical(sc)

	p.mu.Lock()
	defer p.mu.Unlock()

	canvas := p.host.Window.Canvas()
	if old, exists := p.shortcuts[key]; exists {
		canvas.RemoveShortcut(old)
	}
	canvas.AddShortcut(sc, func(fyne.Shortcut) { handler() })
	p.shortcuts[key] = sc

	p.host.Log.Debug("GlobalShortcut", "shortcut registered", map[string]interface{}{
		"accelerator": key,
	})
	return nil
}

func (p *Plugin) Unregister(accel string) error {
	sc, err := ParseAccelerator(accel)
	if err != nil {
		return err
	}
	key := canonical(sc)

	p.mu.Lock()
	defer p.mu.Unlock()

	registered, exists := p.shortcuts[key]
	if !exists {
		return fmt.Errorf("shortcut %q is not registered", key)
	}
	p.host.Window.Canvas().RemoveShortcut(registered)
	delete(p.shortcuts, key)
	return nil
}

// Registered lists canonical accelerators, sorted.
func (p *Plugin) Registered() []string {
	p.mu.Lock()
	defer p.mu.Unlock()

	keys := make([]string, 0, len(p.shortcuts))
	for key := range p.shortcuts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

type accelArgs struct {
	Accelerator string `json:"accelerator"`
}

// registerCommand registers a shortcut on behalf of the content layer.
// Triggers surface as "global-shortcut" events rather than callbacks.
func (p *Plugin) registerCommand(_ context.Context, args json.RawMessage) (any, error) {
	var req accelArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode register args: %w", err)
	}

	sc, err := ParseAccelerator(req.Accelerator)
	if err != nil {
		return nil, err
	}
	key := canonical(sc)

	err = p.Register(req.Accelerator, func() {
		p.host.Events.Emit("global-shortcut", map[string]string{"accelerator": key})
	})
	if err != nil {
		return nil, err
	}
	return key, nil
}

func (p *Plugin) unregisterCommand(_ context.Context, args json.RawMessage) (any, error) {
	var req accelArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode unregister args: %w", err)
	}
	return nil, p.Unregister(req.Accelerator)
}
