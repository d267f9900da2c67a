package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/ts-fast/create-ts-fast/internal/branding"
)

const (
	fileName = "config"
	fileType = "yaml"
)

// Setting keys. Flags bind to the key of the same name with "-" for "_".
const (
	KeyTemplate       = "template"
	KeyTemplateDir    = "template_dir"
	KeyName           = "name"
	KeyOverwrite      = "overwrite"
	KeyRewriteBin     = "rewrite_bin"
	KeyAccessible     = "accessible"
	KeyVerbose        = "verbose"
	KeyDev            = "dev"
	KeyUserAgent      = "user_agent"
	KeyLifecycleEvent = "lifecycle_event"
)

// Settings is the resolved configuration of one run.
type Settings struct {
	Template    string
	TemplateDir string
	Name        string
	Overwrite   string
	RewriteBin  bool
	Accessible  bool
	Verbose     bool
	Dev         bool
	// UserAgent is the package manager's npm_config_user_agent.
	UserAgent string
	// File is the config file that was read, or "" if none was.
	File string
}

// Dir returns the config directory, e.g. ~/.config/create-ts-fast.
func Dir() string {
	base, err := os.UserConfigDir()
	if err != nil {
		home, herr := os.UserHomeDir()
		if herr != nil {
			return filepath.Join(".", branding.ConfigDir())
		}
		base = filepath.Join(home, ".config")
	}
	return filepath.Join(base, branding.ConfigDir())
}

// FilePath returns the default config file path.
func FilePath() string {
	return filepath.Join(Dir(), fileName+"."+fileType)
}

// New returns a Viper instance with defaults and environment bindings set.
// file overrides the default config file path when non-empty.
func New(file string) *viper.Viper {
	if file == "" {
		file = FilePath()
	}

	v := viper.New()
	v.SetConfigFile(file)
	v.SetConfigType(fileType)
	v.SetEnvPrefix(branding.EnvPrefix())
	v.AutomaticEnv()

	v.SetDefault(KeyRewriteBin, true)

	// Set by npm, yarn, pnpm, and bun when they run a package's bin.
	_ = v.BindEnv(KeyUserAgent, "npm_config_user_agent")
	_ = v.BindEnv(KeyLifecycleEvent, "npm_lifecycle_event")
	return v
}

// BindFlags binds each flag in fs to the setting of the same name.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var errs []error
	flags.VisitAll(func(f *pflag.Flag) {
		key := flagKey(f.Name)
		if !isKey(key) {
			return
		}
		if err := v.BindPFlag(key, f); err != nil {
			errs = append(errs, fmt.Errorf("binding flag --%s: %w", f.Name, err))
		}
	})
	return errors.Join(errs...)
}

// Load reads the config file, if present, and resolves the settings.
// A missing file is not an error; a malformed one is.
func Load(v *viper.Viper) (Settings, error) {
	var file string
	if err := v.ReadInConfig(); err == nil {
		file = v.ConfigFileUsed()
	} else if !isNotFound(err) {
		return Settings{}, fmt.Errorf("reading config file %s: %w", v.ConfigFileUsed(), err)
	}

	return Settings{
		Template:    v.GetString(KeyTemplate),
		TemplateDir: v.GetString(KeyTemplateDir),
		Name:        v.GetString(KeyName),
		Overwrite:   v.GetString(KeyOverwrite),
		RewriteBin:  v.GetBool(KeyRewriteBin),
		Accessible:  v.GetBool(KeyAccessible),
		Verbose:     v.GetBool(KeyVerbose),
		Dev:         v.GetBool(KeyDev) || v.GetString(KeyLifecycleEvent) == "dev",
		UserAgent:   v.GetString(KeyUserAgent),
		File:        file,
	}, nil
}

func isNotFound(err error) bool {
	var nf viper.ConfigFileNotFoundError
	return errors.As(err, &nf) || errors.Is(err, fs.ErrNotExist)
}

func flagKey(name string) string {
	b := []byte(name)
	for i, c := range b {
		if c == '-' {
			b[i] = '_'
		}
	}
	return string(b)
}

func isKey(key string) bool {
	switch key {
	case KeyTemplate, KeyTemplateDir, KeyName, KeyOverwrite, KeyRewriteBin,
		KeyAccessible, KeyVerbose, KeyDev:
		return true
	}
	return false
}
