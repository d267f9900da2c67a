// Package conflict inspects a target directory before anything is written and
// decides whether scaffolding may proceed, must empty the directory first, or
// must stop. The version-control directory is never removed.
package conflict
