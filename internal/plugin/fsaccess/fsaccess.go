// Package fsaccess gives the content layer scoped filesystem access. Every
// command resolves and checks its path against the manifest scope before
// touching the disk.
package fsaccess

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"appshell/internal/plugin"
)

type Plugin struct {
	host  *plugin.Host
	scope *Scope
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return "fsaccess" }

func (p *Plugin) Init(host *plugin.Host) error {
	p.host = host

	scope, err := NewScope(host.Context.Capabilities.FSScope)
	if err != nil {
		return fmt.Errorf("fsaccess scope: %w", err)
	}
	p.scope = scope

	commands := map[string]func(context.Context, json.RawMessage) (any, error){
		"fsaccess:read-file":  p.readFile,
		"fsaccess:write-file": p.writeFile,
		"fsaccess:read-dir":   p.readDir,
		"fsaccess:stat":       p.stat,
		"fsaccess:remove":     p.remove,
		"fsaccess:mkdir":      p.mkdir,
	}
	for name, handler := range commands {
		if err := host.Commands.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) Shutdown() {}

// Scope exposes the compiled scope for other shell components.
func (p *Plugin) Scope() *Scope { return p.scope }

type pathArgs struct {
	Path string `json:"path"`
}

type dirEntry struct {
	Name  string `json:"name"`
	IsDir bool   `json:"isDir"`
	Size  int64  `json:"size"`
}

type fileStat struct {
	Name    string    `json:"name"`
	Size    int64     `json:"size"`
	IsDir   bool      `json:"isDir"`
	Mode    string    `json:"mode"`
	ModTime time.Time `json:"modTime"`
}

func decodePath(args json.RawMessage) (string, error) {
	var req pathArgs
	if err := json.Unmarshal(args, &req); err != nil {
		return "", fmt.Errorf("decode path args: %w", err)
	}
	if req.Path == "" {
		return "", fmt.Errorf("path is required")
	}
	return req.Path, nil
}

func (p *Plugin) readFile(_ context.Context, args json.RawMessage) (any, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := p.scope.Check(path); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return string(data), nil
}

func (p *Plugin) writeFile(_ context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Path     string `json:"path"`
		Contents string `json:"contents"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode write-file args: %w", err)
	}
	if err := p.scope.Check(req.Path); err != nil {
		return nil, err
	}

	parent := filepath.Dir(req.Path)
	if _, err := os.Stat(parent); os.IsNotExist(err) {
		// A missing parent is only created when the scope covers it too.
		if err := p.scope.Check(parent); err != nil {
			return nil, err
		}
		if err := os.MkdirAll(parent, 0o755); err != nil {
			return nil, err
		}
	}
	return nil, os.WriteFile(req.Path, []byte(req.Contents), 0o644)
}

func (p *Plugin) readDir(_ context.Context, args json.RawMessage) (any, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := p.scope.Check(path); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, err
	}

	out := make([]dirEntry, 0, len(entries))
	for _, e := range entries {
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, dirEntry{Name: e.Name(), IsDir: e.IsDir(), Size: info.Size()})
	}
	return out, nil
}

func (p *Plugin) stat(_ context.Context, args json.RawMessage) (any, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := p.scope.Check(path); err != nil {
		return nil, err
	}

	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	return fileStat{
		Name:    info.Name(),
		Size:    info.Size(),
		IsDir:   info.IsDir(),
		Mode:    info.Mode().String(),
		ModTime: info.ModTime(),
	}, nil
}

// remove deletes a single file or an empty directory. Recursive deletion is
// deliberately not offered over IPC.
func (p *Plugin) remove(_ context.Context, args json.RawMessage) (any, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := p.scope.Check(path); err != nil {
		return nil, err
	}
	return nil, os.Remove(path)
}

func (p *Plugin) mkdir(_ context.Context, args json.RawMessage) (any, error) {
	path, err := decodePath(args)
	if err != nil {
		return nil, err
	}
	if err := p.scope.Check(path); err != nil {
		return nil, err
	}
	return nil, os.MkdirAll(path, 0o755)
}
