//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// testEnv holds paths to isolated test directories.
type testEnv struct {
	HomeDir     string // HOME, holds .gitconfig
	ConfigDir   string // XDG_CONFIG_HOME
	TemplateDir string // on-disk template set
	WorkDir     string // the directory the tool runs in
}

// setupTestEnv creates isolated temp directories and points HOME and the
// config directories at them so no user or system settings leak in. The env
// vars are restored after the test.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		HomeDir:     t.TempDir(),
		ConfigDir:   t.TempDir(),
		TemplateDir: t.TempDir(),
		WorkDir:     t.TempDir(),
	}

	t.Setenv("HOME", env.HomeDir)
	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("GIT_CONFIG_NOSYSTEM", "1")
	t.Setenv("npm_config_user_agent", "")
	t.Setenv("npm_lifecycle_event", "")

	return env
}

// setGitIdentity writes a global git config with the given user.
func setGitIdentity(t *testing.T, homeDir, name, email string) {
	t.Helper()
	content := "[user]\n\tname = " + name + "\n"
	if email != "" {
		content += "\temail = " + email + "\n"
	}
	writeFile(t, filepath.Join(homeDir, ".gitconfig"), content)
}

// setupTemplates creates an on-disk template set with a library template and
// an executable template.
func setupTemplates(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "catalog.yaml"), `templates:
  - id: lib
    description: Library
  - id: tool
    description: Command line tool
`)

	// --- Library ---
	writeFile(t, filepath.Join(dir, "lib", "package.json"), `{
  "name": "template-lib",
  "version": "4.5.6",
  "description": "A library",
  "main": "dist/index.js",
  "scripts": {
    "dev": "tsc --watch"
  }
}
`)
	writeFile(t, filepath.Join(dir, "lib", "_gitignore"), "node_modules\ndist\n")
	writeFile(t, filepath.Join(dir, "lib", "src", "index.ts"), "export const answer = 42;\n")
	writeFile(t, filepath.Join(dir, "lib", "src", "__tests__", "index.test.ts"), "import { answer } from '../index';\n")
	writeFile(t, filepath.Join(dir, "lib", ".npmrc"), "save-exact=true\n")
	writeFile(t, filepath.Join(dir, "lib", "node_modules", "left", "index.js"), "junk")

	// --- Tool ---
	writeFile(t, filepath.Join(dir, "tool", "package.json"), `{
  "name": "template-tool",
  "version": "1.0.0",
  "main": "dist/cli.js",
  "bin": {
    "template-tool": "dist/cli.js",
    "tt": "dist/cli.js"
  }
}
`)
	writeFile(t, filepath.Join(dir, "tool", "_gitignore"), "node_modules\n")
	writeFile(t, filepath.Join(dir, "tool", "bin", "run.sh"), "#!/bin/sh\nnode dist/cli.js \"$@\"\n")
	if err := os.Chmod(filepath.Join(dir, "tool", "bin", "run.sh"), 0755); err != nil {
		t.Fatalf("chmod run.sh: %v", err)
	}
}

// writeFile creates parent directories and writes content to path.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("creating dir %s: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
}

// assertFileExists fails the test if the file does not exist.
func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

// assertFileNotExists fails the test if the file exists.
func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

// assertDirExists fails the test if the directory does not exist.
func assertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("expected directory to exist: %s (error: %v)", path, err)
		return
	}
	if !info.IsDir() {
		t.Errorf("expected %s to be a directory, but it is a file", path)
	}
}

// assertFileContains fails if the file doesn't exist or doesn't contain substr.
func assertFileContains(t *testing.T, path, substr string) {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Errorf("reading %s: %v", path, err)
		return
	}
	if !strings.Contains(string(data), substr) {
		t.Errorf("file %s does not contain %q.\nContents:\n%s", path, substr, string(data))
	}
}
