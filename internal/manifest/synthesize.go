package manifest

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/ts-fast/create-ts-fast/internal/identity"
	"github.com/ts-fast/create-ts-fast/internal/pkgname"
	"github.com/ts-fast/create-ts-fast/internal/platform"
)

// FileName is the manifest written at the project root.
const FileName = "package.json"

// FixedVersion is the version every new project starts at.
const FixedVersion = "0.0.0"

// Options adjusts synthesis.
type Options struct {
	// RewriteBin replaces an existing bin field with {name: main}.
	RewriteBin bool
}

// Report records what Synthesize changed besides name and version.
type Report struct {
	Author       string // empty when no identity was found
	AuthorErr    error  // why the author was left unset
	BinRewritten bool
}

// Synthesize builds the project manifest from the template manifest. The
// steps run in a fixed order: main is read before anything is modified, then
// name, version, author, and bin are set.
func Synthesize(template []byte, name string, lookup identity.Lookup, opts Options) (*Draft, *Report, error) {
	if !pkgname.IsValid(name) {
		return nil, nil, fmt.Errorf("invalid package name %q", name)
	}

	d, err := Parse(template)
	if err != nil {
		return nil, nil, err
	}

	main, hasMain := d.String("main")
	declaresBin := d.truthy("bin")

	if err := d.Set("name", name); err != nil {
		return nil, nil, err
	}
	if err := d.Set("version", FixedVersion); err != nil {
		return nil, nil, err
	}

	report := &Report{}
	if lookup != nil {
		author, lookupErr := lookup()
		switch {
		case lookupErr != nil:
			report.AuthorErr = lookupErr
		case author.Name == "":
			report.AuthorErr = identity.ErrNotConfigured
		default:
			report.Author = author.String()
			if err := d.Set("author", report.Author); err != nil {
				return nil, nil, err
			}
		}
	}

	if opts.RewriteBin && declaresBin {
		bin := map[string]string{}
		if hasMain {
			bin[name] = main
		}
		if err := d.Set("bin", bin); err != nil {
			return nil, nil, err
		}
		report.BinRewritten = true
	}

	return d, report, nil
}

// Write stores the draft as dir/package.json.
func Write(d *Draft, dir string) (string, error) {
	data, err := d.Bytes()
	if err != nil {
		return "", err
	}
	p := filepath.Join(dir, FileName)
	if err := os.WriteFile(p, data, platform.FilePerm); err != nil {
		return "", err
	}
	return p, nil
}
