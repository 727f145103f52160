package fsaccess

import (
	"os"
	"path/filepath"
	"testing"

	"appshell/internal/appcontext"
)

func mustScope(t *testing.T, allow, deny []string) *Scope {
	t.Helper()
	s, err := NewScope(appcontext.Scope{Allow: allow, Deny: deny})
	if err != nil {
		t.Fatalf("NewScope: %v", err)
	}
	return s
}

// resolvedTempDir avoids false mismatches on platforms where the temp dir
// sits behind a symlink.
func resolvedTempDir(t *testing.T) string {
	t.Helper()
	dir, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatalf("EvalSymlinks: %v", err)
	}
	return dir
}

func TestScopeAllowsMatchingPath(t *testing.T) {
	dir := resolvedTempDir(t)
	s := mustScope(t, []string{filepath.ToSlash(dir) + "/**"}, nil)

	if !s.Allows(filepath.Join(dir, "notes", "todo.txt")) {
		t.Fatal("path under allow pattern refused")
	}
}

func TestDenyWinsOverAllow(t *testing.T) {
	dir := resolvedTempDir(t)
	s := mustScope(t,
		[]string{filepath.ToSlash(dir) + "/**"},
		[]string{filepath.ToSlash(dir) + "/secret/**"},
	)

	if s.Allows(filepath.Join(dir, "secret", "key.pem")) {
		t.Fatal("denied path allowed")
	}
	if !s.Allows(filepath.Join(dir, "public", "readme.md")) {
		t.Fatal("allowed sibling refused")
	}
}

func TestDoubleStarSpansSeparators(t *testing.T) {
	dir := resolvedTempDir(t)
	s := mustScope(t, []string{filepath.ToSlash(dir) + "/**"}, nil)

	deep := filepath.Join(dir, "a", "b", "c", "d.txt")
	if !s.Allows(deep) {
		t.Fatalf("deep path %s refused", deep)
	}
}

func TestRelativePathsAlwaysRefused(t *testing.T) {
	s := mustScope(t, []string{"**"}, nil)

	if s.Allows("relative/path.txt") {
		t.Fatal("relative path allowed")
	}
}

func TestEmptyScopeRefusesEverything(t *testing.T) {
	s := mustScope(t, nil, nil)

	if s.Allows(string(filepath.Separator) + "anything") {
		t.Fatal("empty scope allowed a path")
	}
}

func TestSymlinkCannotEscapeScope(t *testing.T) {
	inside := resolvedTempDir(t)
	outside := resolvedTempDir(t)

	target := filepath.Join(outside, "target.txt")
	if err := os.WriteFile(target, []byte("x"), 0o644); err != nil {
		t.Fatalf("write target: %v", err)
	}
	link := filepath.Join(inside, "link.txt")
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	s := mustScope(t, []string{filepath.ToSlash(inside) + "/**"}, nil)
	if s.Allows(link) {
		t.Fatal("symlink escaped the scope")
	}
}

func TestTempVarExpansion(t *testing.T) {
	s := mustScope(t, []string{"$TMP/**"}, nil)

	probe, err := os.CreateTemp("", "scope-probe-*")
	if err != nil {
		t.Fatalf("CreateTemp: %v", err)
	}
	defer os.Remove(probe.Name())
	probe.Close()

	if !s.Allows(probe.Name()) {
		t.Fatalf("temp file %s refused by $TMP scope", probe.Name())
	}
}

func TestBadPatternRejected(t *testing.T) {
	_, err := NewScope(appcontext.Scope{Allow: []string{"[unterminated"}})
	if err == nil {
		t.Fatal("expected error for malformed pattern")
	}
}
