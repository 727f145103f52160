package fsaccess

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gobwas/glob"

	"appshell/internal/appcontext"
)

// ErrScope marks a path refused by the capability manifest's fs scope.
var ErrScope = errors.New("path outside filesystem scope")

// Scope evaluates allow/deny glob patterns against absolute paths. Deny
// wins over allow. Patterns use forward slashes on every platform and may
// reference $HOME, $CONFIG and $TMP.
type Scope struct {
	allow []glob.Glob
	deny  []glob.Glob
}

func NewScope(spec appcontext.Scope) (*Scope, error) {
	s := &Scope{}

	var err error
	if s.allow, err = compilePatterns(spec.Allow); err != nil {
		return nil, err
	}
	if s.deny, err = compilePatterns(spec.Deny); err != nil {
		return nil, err
	}
	return s, nil
}

func compilePatterns(patterns []string) ([]glob.Glob, error) {
	globs := make([]glob.Glob, 0, len(patterns))
	for _, p := range patterns {
		expanded, err := expandVars(p)
		if err != nil {
			return nil, fmt.Errorf("scope pattern %q: %w", p, err)
		}
		g, err := glob.Compile(filepath.ToSlash(expanded), '/')
		if err != nil {
			return nil, fmt.Errorf("scope pattern %q: %w", p, err)
		}
		globs = append(globs, g)
	}
	return globs, nil
}

// Allows reports whether path may be touched. The path must be absolute;
// symlinks are resolved before matching so a link cannot escape the scope.
func (s *Scope) Allows(path string) bool {
	if !filepath.IsAbs(path) {
		return false
	}
	resolved := filepath.ToSlash(resolveSymlinks(filepath.Clean(path)))

	for _, g := range s.deny {
		if g.Match(resolved) {
			return false
		}
	}
	for _, g := range s.allow {
		if g.Match(resolved) {
			return true
		}
	}
	return false
}

// Check wraps Allows with the sentinel error for command handlers.
func (s *Scope) Check(path string) error {
	if !s.Allows(path) {
		return fmt.Errorf("%w: %s", ErrScope, path)
	}
	return nil
}

// resolveSymlinks resolves as much of the path as exists. For a path being
// created, the existing ancestors still get resolved.
func resolveSymlinks(path string) string {
	if resolved, err := filepath.EvalSymlinks(path); err == nil {
		return resolved
	}
	dir, base := filepath.Split(path)
	dir = filepath.Clean(dir)
	if dir == path {
		return path
	}
	return filepath.Join(resolveSymlinks(dir), base)
}

func expandVars(pattern string) (string, error) {
	if !strings.Contains(pattern, "$") {
		return pattern, nil
	}

	replace := func(name string, lookup func() (string, error)) error {
		if !strings.Contains(pattern, name) {
			return nil
		}
		value, err := lookup()
		if err != nil {
			return err
		}
		pattern = strings.ReplaceAll(pattern, name, filepath.ToSlash(value))
		return nil
	}

	if err := replace("$HOME", os.UserHomeDir); err != nil {
		return "", err
	}
	if err := replace("$CONFIG", os.UserConfigDir); err != nil {
		return "", err
	}
	if err := replace("$TMP", func() (string, error) { return os.TempDir(), nil }); err != nil {
		return "", err
	}
	return pattern, nil
}
