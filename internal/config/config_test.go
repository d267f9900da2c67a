package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/pflag"
)

func clearEnv(t *testing.T) {
	t.Helper()
	for _, kv := range os.Environ() {
		k, _, _ := strings.Cut(kv, "=")
		if strings.HasPrefix(k, "CREATE_TS_FAST_") || strings.HasPrefix(k, "npm_") {
			t.Setenv(k, "")
			os.Unsetenv(k)
		}
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)
	v := New(filepath.Join(t.TempDir(), "missing.yaml"))

	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.RewriteBin {
		t.Error("RewriteBin should default to true")
	}
	if s.Template != "" || s.Overwrite != "" || s.Dev || s.Verbose {
		t.Errorf("unexpected non-default settings: %+v", s)
	}
	if s.File != "" {
		t.Errorf("File = %q, want empty for a missing config file", s.File)
	}
}

func TestLoad_File(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "template: cli\noverwrite: ignore\nrewrite_bin: false\naccessible: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := Load(New(path))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Template != "cli" {
		t.Errorf("Template = %q, want cli", s.Template)
	}
	if s.Overwrite != "ignore" {
		t.Errorf("Overwrite = %q, want ignore", s.Overwrite)
	}
	if s.RewriteBin {
		t.Error("RewriteBin should be false from the file")
	}
	if !s.Accessible {
		t.Error("Accessible should be true from the file")
	}
	if s.File != path {
		t.Errorf("File = %q, want %q", s.File, path)
	}
}

func TestLoad_MalformedFile(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("template: [unclosed\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(New(path)); err == nil {
		t.Fatal("expected error for malformed config file")
	}
}

func TestLoad_Env(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATE_TS_FAST_TEMPLATE", "react-hooks")
	t.Setenv("CREATE_TS_FAST_VERBOSE", "true")
	t.Setenv("npm_config_user_agent", "pnpm/8.6.0 npm/? node/v20.5.0 linux x64")

	s, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Template != "react-hooks" {
		t.Errorf("Template = %q, want react-hooks", s.Template)
	}
	if !s.Verbose {
		t.Error("Verbose should be true from the environment")
	}
	if !strings.HasPrefix(s.UserAgent, "pnpm/8.6.0") {
		t.Errorf("UserAgent = %q", s.UserAgent)
	}
}

func TestLoad_DevFromLifecycleEvent(t *testing.T) {
	clearEnv(t)
	t.Setenv("npm_lifecycle_event", "dev")

	s, err := Load(New(filepath.Join(t.TempDir(), "missing.yaml")))
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if !s.Dev {
		t.Error("Dev should be enabled by npm_lifecycle_event=dev")
	}
}

func TestBindFlags_FlagsWin(t *testing.T) {
	clearEnv(t)
	t.Setenv("CREATE_TS_FAST_TEMPLATE", "react-hooks")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.StringP("template", "t", "", "")
	flags.String("template-dir", "", "")
	flags.Bool("rewrite-bin", true, "")
	flags.Bool("list", false, "")
	if err := flags.Parse([]string{"-t", "cli", "--template-dir", "/tmp/tpl", "--rewrite-bin=false"}); err != nil {
		t.Fatal(err)
	}

	v := New(filepath.Join(t.TempDir(), "missing.yaml"))
	if err := BindFlags(v, flags); err != nil {
		t.Fatalf("BindFlags() error: %v", err)
	}
	s, err := Load(v)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.Template != "cli" {
		t.Errorf("Template = %q, want cli", s.Template)
	}
	if s.TemplateDir != "/tmp/tpl" {
		t.Errorf("TemplateDir = %q, want /tmp/tpl", s.TemplateDir)
	}
	if s.RewriteBin {
		t.Error("RewriteBin should be false from the flag")
	}
}

func TestDirUsesConfigDirName(t *testing.T) {
	if filepath.Base(Dir()) != "create-ts-fast" {
		t.Errorf("Dir() = %q, want a create-ts-fast directory", Dir())
	}
	if filepath.Base(FilePath()) != "config.yaml" {
		t.Errorf("FilePath() = %q", FilePath())
	}
}
