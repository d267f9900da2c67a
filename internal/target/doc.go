// Package target turns the raw project-directory input into an absolute path
// under the working directory. It never touches the filesystem.
package target
