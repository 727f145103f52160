package appcontext

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEmbeddedContext(t *testing.T) {
	ctx, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "Appshell", ctx.ProductName)
	assert.Equal(t, "com.appshell.runtime", ctx.Identifier)
	assert.Greater(t, ctx.Window.Width, float32(0))
	assert.Greater(t, ctx.Window.Height, float32(0))
	assert.NotEmpty(t, ctx.Capabilities.Permissions)
}

func TestLoadFileOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "shell.conf.json")
	conf := `{
		"productName": "Devshell",
		"identifier": "com.appshell.dev",
		"version": "0.0.1",
		"window": {"title": "Dev", "width": 640, "height": 480},
		"dev": {"address": "127.0.0.1:8710", "assets": "` + dir + `"},
		"capabilities": {"permissions": ["clipboard:*"]}
	}`
	require.NoError(t, os.WriteFile(path, []byte(conf), 0o644))

	ctx, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Devshell", ctx.ProductName)
	assert.Equal(t, "127.0.0.1:8710", ctx.Dev.Address)
}

func TestAllows(t *testing.T) {
	ctx := &Context{Capabilities: Capabilities{Permissions: []string{
		"clipboard:read-text",
		"fsaccess:*",
	}}}

	assert.True(t, ctx.Allows("clipboard:read-text"))
	assert.False(t, ctx.Allows("clipboard:write-text"))
	assert.True(t, ctx.Allows("fsaccess:read-file"))
	assert.True(t, ctx.Allows("fsaccess:remove"))
	assert.False(t, ctx.Allows("opener:open-url"))
	assert.False(t, ctx.Allows("not-a-command"))
}

func TestEmptyManifestDeniesEverything(t *testing.T) {
	ctx := &Context{}
	assert.False(t, ctx.Allows("clipboard:read-text"))
}

func TestValidateRejectsBrokenContexts(t *testing.T) {
	base := func() *Context {
		return &Context{
			ProductName: "App",
			Identifier:  "com.example.app",
			Window:      WindowConfig{Title: "App", Width: 800, Height: 600},
		}
	}

	cases := []struct {
		name   string
		mutate func(*Context)
	}{
		{"missing product name", func(c *Context) { c.ProductName = "" }},
		{"flat identifier", func(c *Context) { c.Identifier = "appshell" }},
		{"empty identifier segment", func(c *Context) { c.Identifier = "com..app" }},
		{"zero window width", func(c *Context) { c.Window.Width = 0 }},
		{"negative window height", func(c *Context) { c.Window.Height = -1 }},
		{"negative minimum width", func(c *Context) { c.Window.MinWidth = -1 }},
		{"negative minimum height", func(c *Context) { c.Window.MinHeight = -10 }},
		{"malformed permission", func(c *Context) {
			c.Capabilities.Permissions = []string{"Clipboard:ReadText"}
		}},
		{"permission without colon", func(c *Context) {
			c.Capabilities.Permissions = []string{"clipboard"}
		}},
		{"dev address without assets", func(c *Context) {
			c.Dev.Address = "127.0.0.1:8710"
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctx := base()
			tc.mutate(ctx)
			assert.Error(t, ctx.Validate())
		})
	}

	assert.NoError(t, base().Validate())
}
