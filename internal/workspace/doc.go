// Package workspace holds the declarative project and tag model.
//
// A [Workspace] is loaded once per invocation from the config directory by a
// [Store], mutated synchronously by CLI commands, and saved once at the end
// of a mutating command. During parallel operations workers only receive
// [Project] copies; the model itself is never touched concurrently.
//
// Projects reference tags by name. A tag does not have to be defined for a
// project to carry it; undefined tags simply contribute no hooks. Removing a
// tag definition leaves project references alone.
package workspace
