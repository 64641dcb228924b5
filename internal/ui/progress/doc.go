// Package progress provides progress indication for long-running commands.
//
// [ProgressBar] tracks determinate fan-out runs such as sync and is fed
// through [ProgressBar.Observe]. Created with [NewActivity] it is
// indeterminate and covers work of unknown length like paginated forge
// imports, fed through [ProgressBar.Page]. It renders to stderr and only when
// that is a terminal (see [Enabled]); stdout stays clean for piping.
package progress
