// Package opener hands URLs to the default browser and reveals files in
// the platform file manager.
package opener

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"

	"appshell/internal/plugin"
)

type Plugin struct {
	host *plugin.Host

	// launch is swappable so tests can observe reveal commands without
	// spawning a file manager.
	launch func(name string, args ...string) error
}

func New() *Plugin {
	return &Plugin{
		launch: func(name string, args ...string) error {
			return exec.Command(name, args...).Start()
		},
	}
}

func (p *Plugin) Name() string { return "opener" }

func (p *Plugin) Init(host *plugin.Host) error {
	p.host = host

	if err := host.Commands.Register("opener:open-url", p.openURL); err != nil {
		return err
	}
	return host.Commands.Register("opener:reveal", p.reveal)
}

func (p *Plugin) Shutdown() {}

// OpenURL opens the URL with the system handler. Only web and mail schemes
// are accepted; anything else (file:, custom schemes) stays inside the
// shell's control.
func (p *Plugin) OpenURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse url %q: %w", raw, err)
	}
	switch u.Scheme {
	case "http", "https", "mailto":
	default:
		return fmt.Errorf("refusing to open scheme %q", u.Scheme)
	}
	return p.host.App.OpenURL(u)
}

// Reveal shows the path in the platform file manager. The path must be
// absolute and must exist.
func (p *Plugin) Reveal(path string) error {
	if !filepath.IsAbs(path) {
		return fmt.Errorf("reveal requires an absolute path, got %q", path)
	}
	info, err := os.Stat(path)
	if err != nil {
		return fmt.Errorf("reveal %s: %w", path, err)
	}

	name, args := revealCommand(path, info.IsDir())
	return p.launch(name, args...)
}

// revealCommand picks the platform file-manager invocation. macOS and
// Windows can select the file itself; elsewhere the containing directory
// is opened.
func revealCommand(path string, isDir bool) (string, []string) {
	switch runtime.GOOS {
	case "darwin":
		return "open", []string{"-R", path}
	case "windows":
		return "explorer", []string{"/select," + path}
	default:
		if !isDir {
			path = filepath.Dir(path)
		}
		return "xdg-open", []string{path}
	}
}

func (p *Plugin) openURL(_ context.Context, args json.RawMessage) (any, error) {
	var req struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode open-url args: %w", err)
	}
	return nil, p.OpenURL(req.URL)
}

func (p *Plugin) reveal(_ context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Path string `json:"path"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode reveal args: %w", err)
	}
	return nil, p.Reveal(req.Path)
}
