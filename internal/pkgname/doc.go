// Package pkgname decides whether a string is a legal package.json "name" and
// turns arbitrary directory names into one. Both functions are pure.
package pkgname
