package platform

import (
	"io/fs"
	"os"
	"runtime"
)

// Permission defaults for scaffolded output.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
	ExecPerm os.FileMode = 0755
)

// WritePerm picks the mode for a file copied from a template whose mode is
// src. Template trees may report read-only modes (embedded files are 0444),
// so only the executable bit is carried over.
func WritePerm(src fs.FileMode) os.FileMode {
	if src.Perm()&0o111 != 0 {
		return ExecPerm
	}
	return FilePerm
}

// Chmod sets file permissions. On Windows this is a no-op because Windows
// does not support Unix-style permission bits.
func Chmod(path string, mode os.FileMode) error {
	if runtime.GOOS == "windows" {
		return nil
	}
	return os.Chmod(path, mode)
}
