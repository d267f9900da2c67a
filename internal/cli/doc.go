// Package cli defines the create-ts-fast command. The root command is the
// scaffolder itself: it resolves settings, builds the collaborators a run
// needs, and renders the outcome. Scaffolding logic lives in internal/scaffold.
package cli
