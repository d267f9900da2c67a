// Package pkgmanager works out which package manager launched the tool from
// the npm_config_user_agent value it sets, and which install and dev commands
// to suggest for it.
package pkgmanager
