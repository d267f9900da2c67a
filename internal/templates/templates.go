package templates

import (
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"

	"go.yaml.in/yaml/v3"
)

// ManifestFile is the manifest template every template directory carries.
const ManifestFile = "package.json"

// catalogFileName holds optional ordering and descriptions.
const catalogFileName = "catalog.yaml"

// The all: prefix keeps _gitignore and __tests__ in the embedded tree.
//
//go:embed all:files
var embedded embed.FS

// Descriptor identifies one template and gives read access to its tree.
type Descriptor struct {
	ID          string
	Description string
	FS          fs.FS // rooted at the template directory
}

// Catalog is the set of templates available to a run.
type Catalog struct {
	source string
	list   []Descriptor
}

type catalogFile struct {
	Templates []struct {
		ID          string `yaml:"id"`
		Description string `yaml:"description"`
	} `yaml:"templates"`
}

// Embedded returns the catalog compiled into the binary.
func Embedded() (*Catalog, error) {
	root, err := fs.Sub(embedded, "files")
	if err != nil {
		return nil, fmt.Errorf("opening embedded templates: %w", err)
	}
	return Load(root, "embedded")
}

// FromDir returns a catalog read from dir on disk.
func FromDir(dir string) (*Catalog, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("opening template directory: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template directory %s is not a directory", dir)
	}
	return Load(os.DirFS(dir), dir)
}

// Load discovers templates under root. source names root in error messages.
func Load(root fs.FS, source string) (*Catalog, error) {
	entries, err := fs.ReadDir(root, ".")
	if err != nil {
		return nil, fmt.Errorf("reading templates in %s: %w", source, err)
	}

	found := make(map[string]Descriptor)
	for _, e := range entries {
		if !e.IsDir() {
			continue
		}
		if _, err := fs.Stat(root, path.Join(e.Name(), ManifestFile)); err != nil {
			continue
		}
		sub, err := fs.Sub(root, e.Name())
		if err != nil {
			return nil, fmt.Errorf("opening template %s: %w", e.Name(), err)
		}
		found[e.Name()] = Descriptor{ID: e.Name(), FS: sub}
	}
	if len(found) == 0 {
		return nil, fmt.Errorf("no templates found in %s", source)
	}

	meta, err := readCatalogFile(root)
	if err != nil {
		return nil, fmt.Errorf("reading %s in %s: %w", catalogFileName, source, err)
	}

	c := &Catalog{source: source}

	// Listed templates first, in catalog order; the rest alphabetically.
	for _, m := range meta.Templates {
		d, ok := found[m.ID]
		if !ok {
			continue
		}
		d.Description = m.Description
		c.list = append(c.list, d)
		delete(found, m.ID)
	}
	rest := make([]string, 0, len(found))
	for id := range found {
		rest = append(rest, id)
	}
	sort.Strings(rest)
	for _, id := range rest {
		c.list = append(c.list, found[id])
	}

	return c, nil
}

func readCatalogFile(root fs.FS) (*catalogFile, error) {
	var cf catalogFile
	data, err := fs.ReadFile(root, catalogFileName)
	if errors.Is(err, fs.ErrNotExist) {
		return &cf, nil
	}
	if err != nil {
		return nil, err
	}
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// Source names where the templates were loaded from.
func (c *Catalog) Source() string { return c.source }

// List returns the templates in display order.
func (c *Catalog) List() []Descriptor {
	out := make([]Descriptor, len(c.list))
	copy(out, c.list)
	return out
}

// IDs returns the template ids in display order.
func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.list))
	for i, d := range c.list {
		ids[i] = d.ID
	}
	return ids
}

// Find returns the template with the given id.
func (c *Catalog) Find(id string) (Descriptor, bool) {
	for _, d := range c.list {
		if d.ID == id {
			return d, true
		}
	}
	return Descriptor{}, false
}

// Width returns the length of the longest id, for aligned listings.
func (c *Catalog) Width() int {
	w := 0
	for _, d := range c.list {
		if len(d.ID) > w {
			w = len(d.ID)
		}
	}
	return w
}
