package pkgmanager

import (
	"os/exec"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DefaultName is reported when the user agent is absent or unparseable.
const DefaultName = "npm"

// Info identifies a package manager.
type Info struct {
	Name string
	// Version is the raw version token, possibly empty.
	Version string
	// Semver is the parsed Version, nil for Default.
	Semver *semver.Version
}

// Default is the identity used when nothing can be detected.
var Default = Info{Name: DefaultName}

// IsDefault reports whether the info came from the fallback.
func (i Info) IsDefault() bool { return i.Name == DefaultName && i.Version == "" }

// String renders "name@version", or just the name when the version is unknown.
func (i Info) String() string {
	if i.Version == "" {
		return i.Name
	}
	return i.Name + "@" + i.Version
}

// Detect parses a user agent such as "pnpm/8.6.0 npm/? node/v20.5.0 linux x64".
// Only the first space-separated token is used, and it must carry a semantic
// version; anything else yields Default.
func Detect(userAgent string) Info {
	fields := strings.Fields(userAgent)
	if len(fields) == 0 {
		return Default
	}

	name, version, ok := strings.Cut(fields[0], "/")
	if !ok || name == "" {
		return Default
	}

	v, err := semver.NewVersion(version)
	if err != nil {
		return Default
	}
	return Info{Name: name, Version: version, Semver: v}
}

// Commands returns the install and dev-server commands to suggest.
func (i Info) Commands() []string {
	if i.Name == "yarn" {
		return []string{"yarn", "yarn dev"}
	}
	return []string{i.Name + " install", i.Name + " run dev"}
}

// Available reports whether the package manager's executable is on PATH.
func (i Info) Available() bool {
	_, err := lookPath(i.Name)
	return err == nil
}

var lookPath = exec.LookPath
