// Package templates locates project templates. The built-in set is embedded in
// the binary; a directory on disk can be used instead. A template is any
// top-level directory holding a package.json, and an optional catalog.yaml at
// the root supplies display order and descriptions.
package templates
