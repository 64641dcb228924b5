// Package orchestrator drives sync, foreach and autotag runs across a
// selection of projects.
//
// Each driver first resolves everything it needs from the workspace model
// (checkout paths, composed hooks) into [Target] values, then fans out one
// unit of work per target through an [executor.Pool]. Workers only see
// their own Target, so the model is never read or written concurrently.
// Tag mutations found by autotag are applied afterwards, single-threaded.
package orchestrator
