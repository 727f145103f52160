// Package appcontext holds the generated application context: bundle
// identity, window configuration and the capability manifest that gates
// which commands the hosted content layer may invoke.
package appcontext

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/viper"
)

//go:embed shell.conf.json
var embeddedConf []byte

type Context struct {
	ProductName  string       `mapstructure:"productName"`
	Identifier   string       `mapstructure:"identifier"`
	Version      string       `mapstructure:"version"`
	Window       WindowConfig `mapstructure:"window"`
	Dev          DevConfig    `mapstructure:"dev"`
	Capabilities Capabilities `mapstructure:"capabilities"`
}

type WindowConfig struct {
	Title      string  `mapstructure:"title"`
	Width      float32 `mapstructure:"width"`
	Height     float32 `mapstructure:"height"`
	MinWidth   float32 `mapstructure:"minWidth"`
	MinHeight  float32 `mapstructure:"minHeight"`
	Resizable  bool    `mapstructure:"resizable"`
	Fullscreen bool    `mapstructure:"fullscreen"`
	Center     bool    `mapstructure:"center"`
}

// DevConfig enables the dev-mode content host. An empty Address leaves the
// dev server off, which is the shipped configuration.
type DevConfig struct {
	Address string `mapstructure:"address"`
	Assets  string `mapstructure:"assets"`
}

type Capabilities struct {
	Permissions []string `mapstructure:"permissions"`
	FSScope     Scope    `mapstructure:"fsScope"`
}

// Scope lists glob patterns for filesystem access. Deny patterns win over
// allow patterns. Patterns may reference $HOME, $CONFIG and $TMP.
type Scope struct {
	Allow []string `mapstructure:"allow"`
	Deny  []string `mapstructure:"deny"`
}

// Load parses the embedded context. A malformed embedded context is a
// build defect, so the caller treats any error here as fatal.
func Load() (*Context, error) {
	return parse(bytes.NewReader(embeddedConf))
}

// LoadFile reads a context override from disk. Same schema and validation
// as the embedded default; used by dev workflows.
func LoadFile(path string) (*Context, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read context %s: %w", path, err)
	}
	return decode(v)
}

func parse(r io.Reader) (*Context, error) {
	v := viper.New()
	v.SetConfigType("json")
	if err := v.ReadConfig(r); err != nil {
		return nil, fmt.Errorf("parse context: %w", err)
	}
	return decode(v)
}

func decode(v *viper.Viper) (*Context, error) {
	var ctx Context
	if err := v.Unmarshal(&ctx); err != nil {
		return nil, fmt.Errorf("decode context: %w", err)
	}
	if err := ctx.Validate(); err != nil {
		return nil, err
	}
	return &ctx, nil
}

// Validate rejects contexts that would produce a broken shell rather than
// letting the runtime fail later with a less useful error.
func (c *Context) Validate() error {
	if c.ProductName == "" {
		return fmt.Errorf("context: productName is required")
	}
	if err := validateIdentifier(c.Identifier); err != nil {
		return err
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		return fmt.Errorf("context: window size %gx%g is not positive", c.Window.Width, c.Window.Height)
	}
	if c.Window.MinWidth < 0 || c.Window.MinHeight < 0 {
		return fmt.Errorf("context: window minimum size %gx%g is negative", c.Window.MinWidth, c.Window.MinHeight)
	}
	for _, perm := range c.Capabilities.Permissions {
		if !validPermission(perm) {
			return fmt.Errorf("context: malformed permission %q", perm)
		}
	}
	if c.Dev.Address != "" && c.Dev.Assets == "" {
		return fmt.Errorf("context: dev.address set without dev.assets")
	}
	return nil
}

// Allows reports whether the capability manifest admits the given command.
// A "plugin:*" entry admits every command of that plugin. An empty
// manifest admits nothing.
func (c *Context) Allows(command string) bool {
	plug, _, ok := strings.Cut(command, ":")
	if !ok {
		return false
	}
	for _, perm := range c.Capabilities.Permissions {
		if perm == command || perm == plug+":*" {
			return true
		}
	}
	return false
}

func validateIdentifier(id string) error {
	segments := strings.Split(id, ".")
	if len(segments) < 2 {
		return fmt.Errorf("context: identifier %q must be reverse-DNS (at least two dot-separated segments)", id)
	}
	for _, seg := range segments {
		if seg == "" {
			return fmt.Errorf("context: identifier %q has an empty segment", id)
		}
	}
	return nil
}

// validPermission accepts the two-segment form "plugin:command", where
// command may be "*" or a lowercase dash-separated name.
func validPermission(perm string) bool {
	plug, cmd, ok := strings.Cut(perm, ":")
	if !ok || plug == "" || cmd == "" {
		return false
	}
	if cmd == "*" {
		return validSegment(plug)
	}
	return validSegment(plug) && validSegment(cmd)
}

func validSegment(s string) bool {
	for i, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= '0' && r <= '9':
		case r == '-' && i > 0 && i < len(s)-1:
		default:
			return false
		}
	}
	return s != ""
}
