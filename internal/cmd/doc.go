// Package cmd runs external processes for fw.
//
// RunContext and OutputContext are for git plumbing calls: stderr is folded
// into the returned error so failures explain themselves.
//
// Capture and Shell are for units of work whose output belongs to the user
// (clones, fetches, foreach commands, hooks). They return a Result holding the
// combined output and exit code. A command that ran and exited nonzero is not
// an error; Result.Err is only set when the process could not be run at all.
//
//	res := cmd.Shell(ctx, []string{"sh", "-c"}, dir, "make test", env)
//	if res.Err != nil {
//	    // command not found, cancelled, ...
//	}
//	fmt.Println(res.ExitCode, res.Output)
//
// fw shells out to the git CLI rather than using a Go git library, so SSH
// keys, credential helpers and user configuration apply unchanged.
package cmd
