// Package identity reads the user's name and email from git configuration so
// a new manifest can carry an author. A missing identity is normal and is
// reported as an error the caller is expected to ignore.
package identity
