//go:build integration

package integration_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/ts-fast/create-ts-fast/internal/config"
	"github.com/ts-fast/create-ts-fast/internal/conflict"
	"github.com/ts-fast/create-ts-fast/internal/identity"
	"github.com/ts-fast/create-ts-fast/internal/manifest"
	"github.com/ts-fast/create-ts-fast/internal/prompt"
	"github.com/ts-fast/create-ts-fast/internal/scaffold"
	"github.com/ts-fast/create-ts-fast/internal/templates"
)

func newScaffolder(t *testing.T, env *testEnv, answers string) (*scaffold.Scaffolder, *strings.Builder) {
	t.Helper()

	catalog, err := templates.FromDir(env.TemplateDir)
	if err != nil {
		t.Fatalf("FromDir: %v", err)
	}

	var out strings.Builder
	return &scaffold.Scaffolder{
		Prompter:  prompt.NewLine(strings.NewReader(answers), &out),
		Catalog:   catalog,
		Identity:  identity.Git(env.WorkDir),
		Out:       &out,
		Cwd:       env.WorkDir,
		UserAgent: "pnpm/9.1.0 npm/? node/v20.12.0 linux x64",
	}, &out
}

// TestFullFlowInteractive answers every question on stdin:
// project name -> package name -> template.
func TestFullFlowInteractive(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplateDir)
	setGitIdentity(t, env.HomeDir, "Ada Lovelace", "ada@example.com")

	s, out := newScaffolder(t, env, "My Lib\n\nlib\n")
	res, err := s.Run(context.Background(), scaffold.Request{RewriteBin: true})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	root := filepath.Join(env.WorkDir, "My Lib")
	if res.Target.AbsolutePath != root {
		t.Errorf("AbsolutePath = %q, want %q", res.Target.AbsolutePath, root)
	}
	if res.CDPath != `"My Lib"` {
		t.Errorf("CDPath = %q, want quoted", res.CDPath)
	}
	if got := strings.Join(res.PackageManager.Commands(), ", "); got != "pnpm install, pnpm run dev" {
		t.Errorf("Commands = %s", got)
	}

	assertFileExists(t, filepath.Join(root, ".gitignore"))
	assertFileExists(t, filepath.Join(root, "src", "__tests__", "index.test.ts"))
	assertFileNotExists(t, filepath.Join(root, "_gitignore"))
	assertFileContains(t, filepath.Join(root, ".npmrc"), "save-exact=true")
	assertFileNotExists(t, filepath.Join(root, "node_modules"))

	pkgPath := filepath.Join(root, "package.json")
	assertFileContains(t, pkgPath, `"name": "my-lib"`)
	assertFileContains(t, pkgPath, `"version": "0.0.0"`)
	assertFileContains(t, pkgPath, `"author": "Ada Lovelace <ada@example.com>"`)

	data, err := os.ReadFile(pkgPath)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.HasPrefix(string(data), "{\n  \"name\": \"my-lib\",\n  \"version\": \"0.0.0\",\n  \"description\"") {
		t.Errorf("template key order not kept:\n%s", data)
	}
	if !strings.HasSuffix(string(data), "}\n") {
		t.Error("package.json should end with a newline")
	}

	result, err := manifest.ValidateFile(pkgPath)
	if err != nil {
		t.Fatalf("ValidateFile: %v", err)
	}
	if !result.Valid {
		t.Errorf("package.json invalid: %v", result.Issues)
	}

	for _, q := range []string{"Project name", "Package name", "Select a template:"} {
		if !strings.Contains(out.String(), q) {
			t.Errorf("expected question %q in output:\n%s", q, out.String())
		}
	}
}

// TestWipeAndRescaffoldTool replaces an existing project but keeps its git
// metadata.
func TestWipeAndRescaffoldTool(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplateDir)
	setGitIdentity(t, env.HomeDir, "Ada Lovelace", "")

	root := filepath.Join(env.WorkDir, "my-tool")
	writeFile(t, filepath.Join(root, ".git", "HEAD"), "ref: refs/heads/main\n")
	writeFile(t, filepath.Join(root, "stale.txt"), "old")
	writeFile(t, filepath.Join(root, "src", "old.ts"), "old")

	// Option 2 is "Remove existing files and continue".
	s, out := newScaffolder(t, env, "2\n")
	res, err := s.Run(context.Background(), scaffold.Request{Target: "my-tool/", TemplateID: "tool", RewriteBin: true})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}
	if !strings.Contains(out.String(), `Target directory "my-tool" is not empty.`) {
		t.Errorf("expected conflict question:\n%s", out.String())
	}

	assertFileExists(t, filepath.Join(root, ".git", "HEAD"))
	assertFileNotExists(t, filepath.Join(root, "stale.txt"))
	assertFileNotExists(t, filepath.Join(root, "src", "old.ts"))
	assertFileExists(t, filepath.Join(root, ".gitignore"))

	pkgPath := filepath.Join(root, "package.json")
	assertFileContains(t, pkgPath, "\"bin\": {\n    \"my-tool\": \"dist/cli.js\"\n  }")
	assertFileContains(t, pkgPath, `"author": "Ada Lovelace"`)
	if res.Author != "Ada Lovelace" {
		t.Errorf("Author = %q", res.Author)
	}

	if runtime.GOOS != "windows" {
		info, err := os.Stat(filepath.Join(root, "bin", "run.sh"))
		if err != nil {
			t.Fatalf("stat run.sh: %v", err)
		}
		if info.Mode().Perm()&0o111 == 0 {
			t.Errorf("run.sh lost its executable bit: %v", info.Mode())
		}
	}
}

// TestEndOfInputCancels treats a closed stdin as a cancellation and leaves
// the working directory untouched.
func TestEndOfInputCancels(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplateDir)

	s, _ := newScaffolder(t, env, "")
	_, err := s.Run(context.Background(), scaffold.Request{})
	if !errors.Is(err, prompt.ErrCancelled) {
		t.Fatalf("Run error = %v, want ErrCancelled", err)
	}

	entries, err := os.ReadDir(env.WorkDir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 0 {
		t.Errorf("working directory should be empty, found %d entries", len(entries))
	}
}

// TestConfigFileDrivesRun reads defaults from the user config file and
// environment, as the command does.
func TestConfigFileDrivesRun(t *testing.T) {
	env := setupTestEnv(t)
	setupTemplates(t, env.TemplateDir)
	writeFile(t, config.FilePath(), "template: tool\noverwrite: ignore\nrewrite_bin: false\n")
	t.Setenv("CREATE_TS_FAST_TEMPLATE_DIR", env.TemplateDir)
	t.Setenv("npm_lifecycle_event", "dev")

	settings, err := config.Load(config.New(""))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if settings.File != config.FilePath() {
		t.Errorf("File = %q, want %q", settings.File, config.FilePath())
	}
	if settings.TemplateDir != env.TemplateDir {
		t.Errorf("TemplateDir = %q", settings.TemplateDir)
	}
	choice, err := conflict.ParseChoice(settings.Overwrite)
	if err != nil {
		t.Fatalf("ParseChoice: %v", err)
	}

	s, out := newScaffolder(t, env, "")
	res, err := s.Run(context.Background(), scaffold.Request{
		Target:     "demo",
		TemplateID: settings.Template,
		Overwrite:  choice,
		RewriteBin: settings.RewriteBin,
		Dev:        settings.Dev,
	})
	if err != nil {
		t.Fatalf("Run: %v\n%s", err, out.String())
	}

	root := filepath.Join(env.WorkDir, "__scaffold__", "demo")
	if res.Target.AbsolutePath != root {
		t.Errorf("AbsolutePath = %q, want %q", res.Target.AbsolutePath, root)
	}
	assertFileContains(t, filepath.Join(root, "package.json"), `"tt": "dist/cli.js"`)
}
