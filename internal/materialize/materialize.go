package materialize

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/ts-fast/create-ts-fast/internal/platform"
)

// DefaultRenames maps placeholder names to the names written to disk. Package
// registries drop dotfiles from published tarballs, so templates ship them
// under a placeholder name.
var DefaultRenames = map[string]string{
	"_gitignore": ".gitignore",
}

// DefaultSkip lists glob patterns (doublestar syntax, slash-separated, relative
// to the template root) that are never copied. A template's own repository
// must not land on top of the project's .git, and installed dependencies are
// rebuilt by the package manager.
var DefaultSkip = []string{
	"**/node_modules",
	"**/.git",
}

// Options controls a copy.
type Options struct {
	// Exclude names entries at the template root that are not copied.
	Exclude []string
	// Renames is applied to the base name of every file.
	Renames map[string]string
	// Skip holds glob patterns matched against each entry's template path.
	Skip []string
}

// Result lists the files written, as slash-separated paths relative to the
// target directory.
type Result struct {
	Files []string
}

// Materialize copies src into dst, which must already exist. Existing files at
// the same paths are overwritten and other files in dst are left alone. The
// first I/O error stops the copy; files already written stay in place.
func Materialize(src fs.FS, dst string, opts Options) (*Result, error) {
	for _, p := range opts.Skip {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid skip pattern %q", p)
		}
	}

	c := &copier{src: src, dst: dst, opts: opts, result: &Result{}}
	if err := c.copyDir("."); err != nil {
		return c.result, err
	}
	return c.result, nil
}

type copier struct {
	src    fs.FS
	dst    string
	opts   Options
	result *Result
}

// copyDir copies the template directory rel (slash path) into the matching
// directory under dst.
func (c *copier) copyDir(rel string) error {
	entries, err := fs.ReadDir(c.src, rel)
	if err != nil {
		return fmt.Errorf("reading template directory %s: %w", rel, err)
	}

	for _, entry := range entries {
		if rel == "." && c.excluded(entry.Name()) {
			continue
		}

		srcRel := path.Join(rel, entry.Name())
		if c.skipped(srcRel) {
			continue
		}

		if entry.IsDir() {
			if err := os.MkdirAll(filepath.Join(c.dst, filepath.FromSlash(srcRel)), platform.DirPerm); err != nil {
				return err
			}
			if err := c.copyDir(srcRel); err != nil {
				return err
			}
			continue
		}
		if !entry.Type().IsRegular() {
			// Symlinks and special files are not part of a template.
			continue
		}

		dstRel := path.Join(rel, c.rename(entry.Name()))
		if err := c.copyFile(srcRel, dstRel); err != nil {
			return err
		}
		c.result.Files = append(c.result.Files, dstRel)
	}

	return nil
}

// copyFile copies one file byte for byte.
func (c *copier) copyFile(srcRel, dstRel string) error {
	data, err := fs.ReadFile(c.src, srcRel)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", srcRel, err)
	}

	info, err := fs.Stat(c.src, srcRel)
	if err != nil {
		return fmt.Errorf("reading template file %s: %w", srcRel, err)
	}
	perm := platform.WritePerm(info.Mode())

	dst := filepath.Join(c.dst, filepath.FromSlash(dstRel))
	if err := os.WriteFile(dst, data, perm); err != nil {
		return err
	}
	// WriteFile keeps the mode of a file that already existed.
	return platform.Chmod(dst, perm)
}

func (c *copier) excluded(name string) bool {
	for _, ex := range c.opts.Exclude {
		if name == ex {
			return true
		}
	}
	return false
}

func (c *copier) skipped(rel string) bool {
	for _, p := range c.opts.Skip {
		if ok, _ := doublestar.Match(p, rel); ok {
			return true
		}
	}
	return false
}

func (c *copier) rename(name string) string {
	if to, ok := c.opts.Renames[name]; ok && to != "" {
		return to
	}
	return name
}
