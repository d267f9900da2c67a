// Package materialize copies a template tree into a project directory,
// renaming placeholder files (such as _gitignore) to their real names and
// leaving the manifest to the manifest package.
package materialize
