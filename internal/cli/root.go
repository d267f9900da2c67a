package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ts-fast/create-ts-fast/internal/branding"
	"github.com/ts-fast/create-ts-fast/internal/config"
	"github.com/ts-fast/create-ts-fast/internal/conflict"
	"github.com/ts-fast/create-ts-fast/internal/identity"
	"github.com/ts-fast/create-ts-fast/internal/prompt"
	"github.com/ts-fast/create-ts-fast/internal/scaffold"
	"github.com/ts-fast/create-ts-fast/internal/templates"
)

// app holds the process state a run depends on. Tests replace its fields.
type app struct {
	stdin  *os.File
	stdout io.Writer
	stderr io.Writer

	// configFile overrides the default config file path.
	configFile string
	getwd      func() (string, error)
	// newPrompter builds the prompter; nil picks one from the terminal state.
	newPrompter func(accessible bool) prompt.Prompter
	// newIdentity builds the author lookup for the working directory.
	newIdentity func(dir string) identity.Lookup
}

func defaultApp() *app {
	return &app{
		stdin:       os.Stdin,
		stdout:      os.Stdout,
		stderr:      os.Stderr,
		getwd:       os.Getwd,
		newIdentity: identity.Git,
	}
}

// Execute runs the command with build info injected via ldflags and returns
// the process exit code.
func Execute(version, commit, date string) int {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := defaultApp()
	return a.execute(ctx, os.Args[1:])
}

func (a *app) execute(ctx context.Context, args []string) int {
	cmd := a.newRootCmd()
	cmd.SetArgs(args)
	return report(a.stdout, a.stderr, cmd.ExecuteContext(ctx))
}

func (a *app) newRootCmd() *cobra.Command {
	v := config.New(a.configFile)

	cmd := &cobra.Command{
		Use:   branding.CLIName() + " [directory]",
		Short: branding.Description(),
		Long: branding.DisplayName() + ` creates a new TypeScript project from a template.

The project is written to [directory], or to a name you are asked for. When the
directory is not empty you choose whether to cancel, remove its files, or keep
them. package.json gets the package name, version 0.0.0, and your git identity
as the author.

Settings can also come from ` + branding.EnvVar("*") + ` environment variables or from
` + config.FilePath() + `.`,
		Example: `  ` + branding.CLIName() + ` my-app
  ` + branding.CLIName() + ` my-tool --template cli
  ` + branding.CLIName() + ` . --template universal --overwrite ignore
  ` + branding.CLIName() + ` --list`,
		Version:       versionString(),
		Args:          maxArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.run(cmd, v, args)
		},
	}
	cmd.SetOut(a.stdout)
	cmd.SetErr(a.stderr)
	cmd.SetFlagErrorFunc(func(_ *cobra.Command, err error) error {
		return newUsageError(err)
	})

	flags := cmd.Flags()
	flags.StringP("template", "t", "", "Template to use (see --list)")
	flags.String("template-dir", "", "Load templates from this directory instead of the built-in set")
	flags.String("name", "", "Package name for package.json (default: derived from the directory)")
	flags.String("overwrite", "", "When the directory is not empty: abort, wipe, or ignore")
	flags.Bool("rewrite-bin", true, "Point an existing bin field at the package's main file")
	flags.Bool("accessible", false, "Use plain prompts suited to screen readers")
	flags.Bool("verbose", false, "Log each step to stderr")
	flags.Bool("dev", false, "Create the project under the "+branding.ScratchDir()+" sandbox")
	flags.Bool("list", false, "List the available templates and exit")
	return cmd
}

func maxArgs(n int) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		return newUsageError(cobra.MaximumNArgs(n)(cmd, args))
	}
}

func (a *app) run(cmd *cobra.Command, v *viper.Viper, args []string) error {
	if err := config.BindFlags(v, cmd.Flags()); err != nil {
		return err
	}
	settings, err := config.Load(v)
	if err != nil {
		return err
	}

	logger := newLogger(a.stderr, settings.Verbose)
	if settings.File != "" {
		logger.Debug("loaded config", "file", settings.File)
	}

	choice, err := conflict.ParseChoice(settings.Overwrite)
	if err != nil {
		return newUsageError(err)
	}

	catalog, err := loadCatalog(settings.TemplateDir)
	if err != nil {
		return err
	}
	logger.Debug("loaded templates", "source", catalog.Source(), "ids", catalog.IDs())

	if list, _ := cmd.Flags().GetBool("list"); list {
		printTemplates(a.stdout, catalog)
		return nil
	}

	cwd, err := a.getwd()
	if err != nil {
		return fmt.Errorf("resolving working directory: %w", err)
	}

	var raw string
	if len(args) > 0 {
		raw = args[0]
	}

	s := &scaffold.Scaffolder{
		Prompter:  a.prompter(settings.Accessible),
		Catalog:   catalog,
		Identity:  a.newIdentity(cwd),
		Logger:    logger,
		Out:       a.stdout,
		Cwd:       cwd,
		UserAgent: settings.UserAgent,
	}
	res, err := s.Run(cmd.Context(), scaffold.Request{
		Target:      raw,
		TemplateID:  settings.Template,
		PackageName: settings.Name,
		Overwrite:   choice,
		RewriteBin:  settings.RewriteBin,
		Dev:         settings.Dev,
	})
	if err != nil {
		return err
	}

	for _, f := range res.Files {
		logger.Debug("wrote", "file", filepath.ToSlash(f))
	}
	for _, w := range res.Warnings {
		logger.Warn("package.json: " + w)
	}
	if !res.PackageManager.Available() {
		logger.Warn(res.PackageManager.Name + " was not found on PATH")
	}
	printNextSteps(a.stdout, res)
	return nil
}

func (a *app) prompter(accessible bool) prompt.Prompter {
	if a.newPrompter != nil {
		return a.newPrompter(accessible)
	}
	if out, ok := a.stdout.(*os.File); ok {
		return prompt.Auto(a.stdin, out, accessible)
	}
	return prompt.NewLine(a.stdin, a.stdout)
}

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.WarnLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		Prefix: branding.CLIName(),
		Level:  level,
	})
}

func loadCatalog(dir string) (*templates.Catalog, error) {
	if dir == "" {
		return templates.Embedded()
	}
	return templates.FromDir(dir)
}
