// Package config resolves the settings of a scaffold run. Values come from
// command-line flags, then CREATE_TS_FAST_* environment variables, then an
// optional config.yaml in the user config directory, then defaults.
package config
