// Package ipc carries commands and events between the hosted content layer
// and the native plugins.
package ipc

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/agnivade/levenshtein"
	"github.com/google/uuid"

	"appshell/internal/appcontext"
	"appshell/internal/logger"
)

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrDenied         = errors.New("command not permitted by capability manifest")
)

// Handler executes one named command. Args arrive as raw JSON so each
// plugin decodes its own argument shape.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Dispatcher routes invocations to registered handlers, gated by the
// application context's capability manifest.
type Dispatcher struct {
	appCtx *appcontext.Context
	log    logger.Logger

	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewDispatcher(appCtx *appcontext.Context, log logger.Logger) *Dispatcher {
	return &Dispatcher{
		appCtx:   appCtx,
		log:      log,
		handlers: make(map[string]Handler),
	}
}

// Register adds a handler under a "plugin:command" name. Names collide only
// through programmer error, so a duplicate is rejected loudly instead of
// silently replaced.
func (d *Dispatcher) Register(name string, h Handler) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("command %q registered twice", name)
	}
	d.handlers[name] = h
	return nil
}

// Commands returns the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	names := make([]string, 0, len(d.handlers))
	for name := range d.handlers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Invoke runs a command by name. Permission checks happen here, not in the
// plugins, so every transport (window, dev server) shares one gate.
func (d *Dispatcher) Invoke(ctx context.Context, name string, args json.RawMessage) (any, error) {
	id := uuid.NewString()

	// The permission gate comes first: a caller the manifest does not
	// trust learns nothing about which commands exist.
	if !d.appCtx.Allows(name) {
		d.log.Warning("Dispatcher", "invocation denied", map[string]interface{}{
			"invocation": id,
			"command":    name,
		})
		return nil, fmt.Errorf("%w: %s", ErrDenied, name)
	}

	d.mu.RLock()
	h, ok := d.handlers[name]
	d.mu.RUnlock()

	if !ok {
		if hint := d.nearest(name); hint != "" {
			return nil, fmt.Errorf("%w: %q (did you mean %q?)", ErrUnknownCommand, name, hint)
		}
		return nil, fmt.Errorf("%w: %q", ErrUnknownCommand, name)
	}

	d.log.Debug("Dispatcher", "invoking command", map[string]interface{}{
		"invocation": id,
		"command":    name,
	})

	result, err := h(ctx, args)
	if err != nil {
		d.log.Error("Dispatcher", err, map[string]interface{}{
			"invocation": id,
			"command":    name,
		})
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	return result, nil
}

// nearest finds the closest registered command name within an edit
// distance of 3, for "did you mean" errors. Only commands the manifest
// allows are suggested, so the hint cannot name hidden capabilities.
func (d *Dispatcher) nearest(name string) string {
	d.mu.RLock()
	defer d.mu.RUnlock()

	best, bestDist := "", 4
	for candidate := range d.handlers {
		if !d.appCtx.Allows(candidate) {
			continue
		}
		dist := levenshtein.ComputeDistance(name, candidate)
		if dist < bestDist {
			best, bestDist = candidate, dist
		}
	}
	return best
}
