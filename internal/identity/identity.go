package identity

import (
	"errors"
	"fmt"
	"os/exec"
	"strings"

	git "github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
)

// ErrNotConfigured is returned when no user name is configured.
var ErrNotConfigured = errors.New("git user.name is not configured")

// Author is a person as written to a manifest's author field.
type Author struct {
	Name  string
	Email string
}

// String formats the author as "Name <email>", or just "Name" without an email.
func (a Author) String() string {
	if a.Email == "" {
		return a.Name
	}
	return fmt.Sprintf("%s <%s>", a.Name, a.Email)
}

// Lookup returns the local identity.
type Lookup func() (Author, error)

// None is a Lookup that never finds an identity.
func None() (Author, error) { return Author{}, ErrNotConfigured }

// Static returns a Lookup that always yields a.
func Static(a Author) Lookup {
	return func() (Author, error) { return a, nil }
}

// Git returns a Lookup that asks the git binary from dir, so repository,
// global, and include files are all honoured. When git is not on PATH the
// config files are read directly.
func Git(dir string) Lookup {
	g := &gitLookup{
		dir:      dir,
		lookPath: exec.LookPath,
		run:      runGit,
		fallback: readConfigFiles,
	}
	return g.lookup
}

type gitLookup struct {
	dir      string
	lookPath func(file string) (string, error)
	run      func(bin, dir string, args ...string) (string, error)
	fallback func(dir string) (Author, error)
}

func (g *gitLookup) lookup() (Author, error) {
	bin, err := g.lookPath("git")
	if err != nil {
		return g.fallback(g.dir)
	}

	name, err := g.run(bin, g.dir, "config", "user.name")
	if err != nil || name == "" {
		return Author{}, ErrNotConfigured
	}
	// An unset email is not fatal; git exits 1 for missing keys.
	email, _ := g.run(bin, g.dir, "config", "user.email")

	return Author{Name: name, Email: email}, nil
}

func runGit(bin, dir string, args ...string) (string, error) {
	cmd := exec.Command(bin, args...)
	cmd.Dir = dir
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// readConfigFiles reads the identity without the git binary: the enclosing
// repository's merged config when dir is inside one, else the global config.
func readConfigFiles(dir string) (Author, error) {
	var cfg *gitconfig.Config

	repo, err := git.PlainOpenWithOptions(dir, &git.PlainOpenOptions{DetectDotGit: true})
	if err == nil {
		cfg, err = repo.ConfigScoped(gitconfig.GlobalScope)
	} else {
		cfg, err = gitconfig.LoadConfig(gitconfig.GlobalScope)
	}
	if err != nil {
		return Author{}, fmt.Errorf("reading git config: %w", err)
	}

	name := strings.TrimSpace(cfg.User.Name)
	if name == "" {
		return Author{}, ErrNotConfigured
	}
	return Author{Name: name, Email: strings.TrimSpace(cfg.User.Email)}, nil
}
