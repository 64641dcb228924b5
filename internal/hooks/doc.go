// Package hooks composes and runs after-clone and after-workon scripts.
//
// A project's effective hook is assembled from several sources:
//
//   - the settings default (default_after_clone / default_after_workon)
//   - every defined tag the project carries, highest priority first,
//     ties broken by tag name
//   - the project's own hook, which always runs last so it can override
//     whatever the tag hooks set up
//
// [Compose] sorts the sources explicitly and joins them with newlines; there
// is no inheritance. The result is deterministic for a given model.
//
// # Placeholder Substitution
//
// Scripts may use shell-quoted placeholders:
//
//   - {name}: Project name
//   - {path}: Absolute project path
//   - {url}: Git URL of origin
//   - {trigger}: clone or workon
//
// The same values are exported as FW_PROJECT_NAME, FW_PROJECT_PATH,
// FW_PROJECT_URL and FW_HOOK. Shell expansions like ${HOME} are left alone.
//
// # Execution
//
// After-clone hooks run through the configured shell in the project directory
// with output captured ([Run]). After-workon hooks are emitted as sourceable
// shell code by [WorkonScript] so they affect the calling shell.
package hooks
