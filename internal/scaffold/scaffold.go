package scaffold

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"

	"github.com/ts-fast/create-ts-fast/internal/branding"
	"github.com/ts-fast/create-ts-fast/internal/conflict"
	"github.com/ts-fast/create-ts-fast/internal/identity"
	"github.com/ts-fast/create-ts-fast/internal/manifest"
	"github.com/ts-fast/create-ts-fast/internal/materialize"
	"github.com/ts-fast/create-ts-fast/internal/pkgmanager"
	"github.com/ts-fast/create-ts-fast/internal/pkgname"
	"github.com/ts-fast/create-ts-fast/internal/platform"
	"github.com/ts-fast/create-ts-fast/internal/prompt"
	"github.com/ts-fast/create-ts-fast/internal/target"
	"github.com/ts-fast/create-ts-fast/internal/templates"
)

// Request holds what the user asked for. Empty fields are asked for.
type Request struct {
	// Target is the raw project directory argument.
	Target string
	// TemplateID names a template in the catalog. An unknown id is asked for
	// again.
	TemplateID string
	// PackageName overrides the name derived from the directory. An invalid
	// override is asked for again.
	PackageName string
	// Overwrite answers the non-empty directory question in advance.
	Overwrite conflict.Choice
	// RewriteBin points an existing bin field at the package's main file.
	RewriteBin bool
	// Dev nests the project under the scratch directory.
	Dev bool
}

// Result describes a finished scaffold.
type Result struct {
	Target      target.Resolved
	Template    string
	PackageName string
	// Author is the author written to package.json, if any.
	Author string
	// Files lists the written files relative to the project root.
	Files []string
	// Warnings are schema issues in the written package.json.
	Warnings []string
	// CDPath is the "cd" argument for the next-steps hint, empty for the
	// working directory.
	CDPath         string
	PackageManager pkgmanager.Info
}

// Scaffolder carries the collaborators of a run.
type Scaffolder struct {
	Prompter prompt.Prompter
	Catalog  *templates.Catalog
	// Identity looks up the author; nil leaves the author unset.
	Identity identity.Lookup
	Logger   *log.Logger
	// Out receives progress lines; nil discards them.
	Out io.Writer

	Cwd       string
	UserAgent string
}

// plan is the set of answers collected before anything is written.
type plan struct {
	target      target.Resolved
	decision    conflict.Decision
	template    templates.Descriptor
	packageName string
}

// Run collects the answers, then writes the project. A cancelled prompt or an
// abort decision returns an error wrapping prompt.ErrCancelled, and nothing
// has been written in that case.
func (s *Scaffolder) Run(ctx context.Context, req Request) (*Result, error) {
	if s.Catalog == nil {
		return nil, errors.New("no template catalog")
	}
	if s.Logger == nil {
		s.Logger = log.New(io.Discard)
	}
	if s.Out == nil {
		s.Out = io.Discard
	}

	p, err := s.plan(ctx, req)
	if err != nil {
		return nil, err
	}
	return s.apply(p, req)
}

func (s *Scaffolder) plan(ctx context.Context, req Request) (*plan, error) {
	p := &plan{}

	input := target.Format(req.Target)
	if input == "" {
		answer, err := s.Prompter.Text(ctx, prompt.TextQuestion{
			Message: "Project name:",
			Default: branding.DefaultTargetDir(),
		})
		if err != nil {
			return nil, err
		}
		input = answer
	}
	p.target = target.Resolve(input, target.Options{
		Cwd:         s.Cwd,
		DefaultName: branding.DefaultTargetDir(),
		ScratchDir:  branding.ScratchDir(),
		Dev:         req.Dev,
	})
	s.Logger.Debug("resolved target", "input", p.target.Input, "path", p.target.AbsolutePath)

	decision, err := s.resolveConflict(ctx, p.target, req.Overwrite)
	if err != nil {
		return nil, err
	}
	if decision == conflict.Abort {
		return nil, fmt.Errorf("%s is not empty: %w", p.target.AbsolutePath, prompt.ErrCancelled)
	}
	p.decision = decision

	if p.packageName, err = s.packageName(ctx, p.target, req.PackageName); err != nil {
		return nil, err
	}
	if p.template, err = s.template(ctx, req.TemplateID); err != nil {
		return nil, err
	}
	s.Logger.Debug("selected template", "id", p.template.ID, "package", p.packageName)
	return p, nil
}

func (s *Scaffolder) resolveConflict(ctx context.Context, t target.Resolved, choice conflict.Choice) (conflict.Decision, error) {
	state, err := conflict.Inspect(t.AbsolutePath)
	if err != nil {
		return conflict.Abort, err
	}
	s.Logger.Debug("inspected target", "state", state)

	if state == conflict.StateNonEmpty && choice == "" {
		where := fmt.Sprintf("Target directory %q", t.Input)
		if t.IsCurrentDir() {
			where = "Current directory"
		}

		opts := make([]prompt.Option, len(conflict.Choices))
		for i, c := range conflict.Choices {
			opts[i] = prompt.Option{Label: c.Label(), Value: string(c)}
		}
		answer, err := s.Prompter.Select(ctx, prompt.SelectQuestion{
			Message: where + " is not empty. Please choose how to proceed:",
			Options: opts,
			Default: string(conflict.ChoiceAbort),
		})
		if err != nil {
			return conflict.Abort, err
		}
		choice = conflict.Choice(answer)
	}

	decision := conflict.Decide(state, choice)
	s.Logger.Debug("conflict decision", "choice", choice, "decision", decision)
	return decision, nil
}

func (s *Scaffolder) packageName(ctx context.Context, t target.Resolved, override string) (string, error) {
	if override != "" {
		if pkgname.IsValid(override) {
			return override, nil
		}
		s.Logger.Warn("ignoring invalid package name", "name", override)
	}
	if override == "" && pkgname.IsValid(t.DisplayName) {
		return t.DisplayName, nil
	}

	seed := t.DisplayName
	if override != "" {
		seed = override
	}
	return s.Prompter.Text(ctx, prompt.TextQuestion{
		Message: "Package name:",
		Default: pkgname.Normalize(seed),
		Validate: func(name string) error {
			if !pkgname.IsValid(name) {
				return errors.New("Invalid package.json name")
			}
			return nil
		},
	})
}

func (s *Scaffolder) template(ctx context.Context, id string) (templates.Descriptor, error) {
	if d, ok := s.Catalog.Find(id); ok {
		return d, nil
	}

	message := "Select a template:"
	if id != "" {
		message = fmt.Sprintf("%q isn't a valid template. Please choose from below:", id)
	}

	list := s.Catalog.List()
	opts := make([]prompt.Option, len(list))
	for i, d := range list {
		opts[i] = prompt.Option{Label: d.ID, Value: d.ID}
	}
	answer, err := s.Prompter.Select(ctx, prompt.SelectQuestion{Message: message, Options: opts})
	if err != nil {
		return templates.Descriptor{}, err
	}
	d, ok := s.Catalog.Find(answer)
	if !ok {
		return templates.Descriptor{}, fmt.Errorf("unknown template %q", answer)
	}
	return d, nil
}

func (s *Scaffolder) apply(p *plan, req Request) (*Result, error) {
	root := p.target.AbsolutePath

	if p.decision == conflict.WipeThenProceed {
		s.Logger.Debug("removing existing files", "dir", root)
		if err := conflict.Wipe(root); err != nil {
			return nil, err
		}
	}
	if err := os.MkdirAll(root, platform.DirPerm); err != nil {
		return nil, err
	}

	fmt.Fprintf(s.Out, "\nScaffolding project in %s...\n", root)

	copied, err := materialize.Materialize(p.template.FS, root, materialize.Options{
		Exclude: []string{templates.ManifestFile},
		Renames: materialize.DefaultRenames,
		Skip:    materialize.DefaultSkip,
	})
	if err != nil {
		return nil, err
	}

	tmpl, err := fs.ReadFile(p.template.FS, templates.ManifestFile)
	if err != nil {
		return nil, err
	}
	draft, report, err := manifest.Synthesize(tmpl, p.packageName, s.Identity, manifest.Options{RewriteBin: req.RewriteBin})
	if err != nil {
		return nil, fmt.Errorf("synthesizing %s: %w", templates.ManifestFile, err)
	}
	if report.AuthorErr != nil {
		s.Logger.Debug("author left unset", "reason", report.AuthorErr)
	}
	s.Logger.Debug("set manifest fields",
		"name", draft.Name(),
		"version", draft.Version(),
		"author", report.Author,
		"bin_rewritten", report.BinRewritten,
	)
	written, err := manifest.Write(draft, root)
	if err != nil {
		return nil, err
	}

	pm := pkgmanager.Detect(s.UserAgent)
	s.Logger.Debug("detected package manager", "manager", pm.String(), "fallback", pm.IsDefault())

	res := &Result{
		Target:         p.target,
		Template:       p.template.ID,
		PackageName:    p.packageName,
		Author:         report.Author,
		Files:          append(copied.Files, manifest.FileName),
		CDPath:         target.CDPath(s.Cwd, root),
		PackageManager: pm,
		Warnings:       s.validate(written),
	}
	return res, nil
}

// validate checks the package.json on disk and returns its issues as warnings.
func (s *Scaffolder) validate(file string) []string {
	result, err := manifest.ValidateFile(file)
	if err != nil {
		return []string{fmt.Sprintf("Could not validate %s: %v", manifest.FileName, err)}
	}
	var warnings []string
	for _, issue := range result.Issues {
		warnings = append(warnings, issue.String())
	}
	return warnings
}
