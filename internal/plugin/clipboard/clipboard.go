// Package clipboard exposes the native clipboard to the content layer.
package clipboard

import (
	"context"
	"encoding/json"
	"fmt"

	"appshell/internal/plugin"
)

type Plugin struct {
	host *plugin.Host
}

func New() *Plugin {
	return &Plugin{}
}

func (p *Plugin) Name() string { return "clipboard" }

func (p *Plugin) Init(host *plugin.Host) error {
	p.host = host

	commands := map[string]func(context.Context, json.RawMessage) (any, error){
		"clipboard:read-text":  p.readText,
		"clipboard:write-text": p.writeText,
		"clipboard:clear":      p.clear,
	}
	for name, handler := range commands {
		if err := host.Commands.Register(name, handler); err != nil {
			return err
		}
	}
	return nil
}

func (p *Plugin) Shutdown() {}

// ReadText returns the current clipboard text. An empty clipboard reads as
// an empty string, not an error.
func (p *Plugin) ReadText() string {
	return p.host.Window.Clipboard().Content()
}

func (p *Plugin) WriteText(text string) {
	p.host.Window.Clipboard().SetContent(text)
}

func (p *Plugin) readText(context.Context, json.RawMessage) (any, error) {
	return p.ReadText(), nil
}

func (p *Plugin) writeText(_ context.Context, args json.RawMessage) (any, error) {
	var req struct {
		Text string `json:"text"`
	}
	if err := json.Unmarshal(args, &req); err != nil {
		return nil, fmt.Errorf("decode write-text args: %w", err)
	}
	p.WriteText(req.Text)
	return nil, nil
}

func (p *Plugin) clear(context.Context, json.RawMessage) (any, error) {
	p.host.Window.Clipboard().SetContent("")
	return nil, nil
}
