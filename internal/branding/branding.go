// Package branding provides compile-time identity values for the CLI.
//
// The values live in branding.yaml next to this file and are baked into the
// binary with //go:embed, so a fork only needs to edit the YAML.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName          string `yaml:"cli_name"`
	DisplayName      string `yaml:"display_name"`
	Description      string `yaml:"description"`
	EnvPrefix        string `yaml:"env_prefix"`
	ConfigDir        string `yaml:"config_dir"`
	DefaultTargetDir string `yaml:"default_target_dir"`
	ScratchDir       string `yaml:"scratch_dir"`
	GitHubRepo       string `yaml:"github_repo"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing or empty.
		defaults = brand{
			CLIName:          "create-ts-fast",
			DisplayName:      "ts-fast",
			Description:      "Scaffold a new TypeScript project from a template",
			EnvPrefix:        "CREATE_TS_FAST",
			ConfigDir:        "create-ts-fast",
			DefaultTargetDir: "ts-fast-project",
			ScratchDir:       "__scaffold__",
			GitHubRepo:       "ts-fast/create-ts-fast",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "create-ts-fast").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// EnvPrefix returns the environment variable prefix (e.g., "CREATE_TS_FAST").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// ConfigDir returns the directory name used under the user config directory.
func ConfigDir() string { load(); return defaults.ConfigDir }

// DefaultTargetDir returns the project directory used when none is given.
func DefaultTargetDir() string { load(); return defaults.DefaultTargetDir }

// ScratchDir returns the sandbox directory that dev mode nests projects under.
func ScratchDir() string { load(); return defaults.ScratchDir }

// GitHubRepo returns the "owner/repo" string.
func GitHubRepo() string { load(); return defaults.GitHubRepo }

// IssuesURL returns the URL users are pointed to when something unexpected fails.
func IssuesURL() string {
	return "https://github.com/" + GitHubRepo() + "/issues"
}

// EnvVar returns a fully qualified env var name, e.g., EnvVar("verbose") → "CREATE_TS_FAST_VERBOSE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
