package ignore

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/Cyclone1070/devgate/internal/tool/fsutil"
	"github.com/Cyclone1070/devgate/internal/tool/pathutil"
)

type mockFileSystem struct {
	files   map[string][]byte
	readErr error
}

func newMockFileSystem() *mockFileSystem {
	return &mockFileSystem{files: make(map[string][]byte)}
}

func (m *mockFileSystem) createFile(path string, content string) {
	m.files[path] = []byte(content)
}

func (m *mockFileSystem) Stat(path string) (os.FileInfo, error) {
	if _, ok := m.files[path]; ok {
		return nil, nil
	}
	return nil, os.ErrNotExist
}

func (m *mockFileSystem) ReadFile(path string) ([]byte, error) {
	if m.readErr != nil {
		return nil, m.readErr
	}
	content, ok := m.files[path]
	if !ok {
		return nil, os.ErrNotExist
	}
	return content, nil
}

var testOptions = Options{
	FileName: ".devgateignore",
	Defaults: []string{"**/.env", "**/.env.*", "**/secrets.*"},
}

func TestDefaults(t *testing.T) {
	fs := newMockFileSystem()
	policy := NewPolicy("/workspace", "/home/me", fs, testOptions)

	restricted := []string{
		"/workspace/.env",
		"/workspace/.env.local",
		"/workspace/sub/dir/.env",
		"/workspace/config/secrets.yaml",
	}
	for _, path := range restricted {
		if !policy.IsRestricted(path) {
			t.Errorf("expected %s to be restricted by defaults", path)
		}
	}

	allowed := []string{
		"/workspace/main.go",
		"/workspace/env",
		"/workspace/docs/secret.md",
	}
	for _, path := range allowed {
		if policy.IsRestricted(path) {
			t.Errorf("expected %s to be allowed", path)
		}
	}

	if got := policy.Sources(); len(got) != 1 || got[0] != SourceDefaults {
		t.Errorf("expected defaults source, got %v", got)
	}
}

func TestEmptyProjectFileDisablesDefaults(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.devgateignore", "")

	policy := NewPolicy("/workspace", "/home/me", fs, testOptions)

	if policy.IsRestricted("/workspace/.env") {
		t.Error("expected .env to be allowed when an empty ignore file exists")
	}
	if got := policy.Sources(); len(got) != 1 || got[0] != SourceProject {
		t.Errorf("expected project source, got %v", got)
	}
}

func TestGlobalFileDisablesDefaults(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/home/me/.devgateignore", "*.pem\n")

	policy := NewPolicy("/workspace", "/home/me", fs, testOptions)

	if !policy.IsRestricted("/workspace/certs/server.pem") {
		t.Error("expected global pattern to apply inside the workspace")
	}
	if policy.IsRestricted("/workspace/.env") {
		t.Error("expected defaults to be skipped when a global file exists")
	}
}

func TestProjectRulesOverrideGlobal(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/home/me/.devgateignore", "*.log\n")
	fs.createFile("/workspace/.devgateignore", "!keep.log\n")

	policy := NewPolicy("/workspace", "/home/me", fs, testOptions)

	if !policy.IsRestricted("/workspace/app.log") {
		t.Error("expected app.log to be restricted by global rules")
	}
	if policy.IsRestricted("/workspace/keep.log") {
		t.Error("expected project negation to allow keep.log")
	}

	got := policy.Sources()
	if len(got) != 2 || got[0] != SourceGlobal || got[1] != SourceProject {
		t.Errorf("expected [global project], got %v", got)
	}
}

func TestRootIsHome(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/home/me/.devgateignore", "*.key\n")

	policy := NewPolicy("/home/me", "/home/me", fs, testOptions)

	if !policy.IsRestricted("/home/me/id.key") {
		t.Error("expected id.key to be restricted")
	}
	if got := policy.Sources(); len(got) != 1 || got[0] != SourceGlobal {
		t.Errorf("expected the shared file to load once, got %v", got)
	}
}

func TestCommentsAndLineEndings(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.devgateignore", "# credentials\r\n*.key\r\n\r\n   \nnode_modules\r\n")

	policy := NewPolicy("/workspace", "", fs, testOptions)

	if !policy.IsRestricted("/workspace/prod.key") {
		t.Error("failed to match pattern with CRLF")
	}
	if !policy.IsRestricted("/workspace/node_modules/pkg/index.js") {
		t.Error("failed to match path under an ignored directory")
	}
	if policy.IsRestricted("/workspace/# credentials") {
		t.Error("comment line must not become a pattern")
	}
}

func TestPathsOutsideRoot(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.devgateignore", ".netrc\n/build\n")

	policy := NewPolicy("/workspace", "", fs, testOptions)

	if !policy.IsRestricted("/home/me/.netrc") {
		t.Error("expected unanchored pattern to match outside the root")
	}
	if !policy.IsRestricted("/workspace/build/out.bin") {
		t.Error("expected anchored pattern to match under the root")
	}
	if policy.IsRestricted("/workspace/src/build") {
		t.Error("expected anchored pattern to ignore nested matches")
	}
}

func TestRootItselfIsNeverRestricted(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.devgateignore", "*\n")

	policy := NewPolicy("/workspace", "", fs, testOptions)

	if policy.IsRestricted("/workspace") {
		t.Error("expected the root to be allowed")
	}
	if !policy.IsRestricted("/workspace/anything") {
		t.Error("expected wildcard to restrict children")
	}
}

func TestUnreadableFileCountsAsEmpty(t *testing.T) {
	fs := newMockFileSystem()
	fs.createFile("/workspace/.devgateignore", "*.log")
	fs.readErr = errors.New("disk failure")

	policy := NewPolicy("/workspace", "", fs, testOptions)

	if policy.IsRestricted("/workspace/app.log") {
		t.Error("expected unreadable rules to contribute nothing")
	}
	if policy.IsRestricted("/workspace/.env") {
		t.Error("expected defaults to be skipped for an existing but unreadable file")
	}
}

func TestSymlinkTargetIsChecked(t *testing.T) {
	root, err := pathutil.CanonicaliseRoot(t.TempDir())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, ".devgateignore"), []byte("private.txt\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	secret := filepath.Join(root, "private.txt")
	if err := os.WriteFile(secret, []byte("token"), 0o644); err != nil {
		t.Fatal(err)
	}
	link := filepath.Join(root, "public.txt")
	if err := os.Symlink(secret, link); err != nil {
		t.Skipf("symlinks unsupported: %v", err)
	}

	policy := NewPolicy(root, "", fsutil.NewOSFileSystem(), testOptions)

	if !policy.IsRestricted(link) {
		t.Error("expected symlink to a restricted file to be restricted")
	}
	if policy.IsRestricted(filepath.Join(root, "other.txt")) {
		t.Error("expected unrelated file to be allowed")
	}
}

func TestNewPolicyPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("expected panic for empty root")
		}
	}()
	NewPolicy("", "", newMockFileSystem(), testOptions)
}
