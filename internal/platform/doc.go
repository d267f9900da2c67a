// Package platform holds the OS-specific file permission handling used when
// writing a scaffold. On Windows permission bits are ignored.
package platform
