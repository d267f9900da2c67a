// Package scaffold runs one project scaffold end to end. Every question is
// answered before the first write: the target is resolved, a non-empty
// directory is resolved to proceed, wipe, or abort, and the package name and
// template are chosen. Only then is the directory prepared, the template
// copied, and package.json synthesized.
package scaffold
