// Package manifest builds the package.json of a new project from the
// template's copy: it sets the name, resets the version, fills in the author,
// and points the bin entry at the package's main file. Edits keep the
// template's key order. The result can be checked against an embedded JSON
// schema.
package manifest
