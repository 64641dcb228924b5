package cmd

import "strings"

// Quote escapes a string for safe use in shell commands.
// It wraps the value in single quotes and escapes any embedded single quotes,
// e.g. "it's" becomes 'it'\''s'.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "'\\''") + "'"
}

// JoinArgs turns command line arguments into a shell script. A single
// argument is taken as shell code as is; several arguments are quoted one
// by one so each reaches the command as a single word.
//
//	JoinArgs([]string{"git status -s"})        // git status -s
//	JoinArgs([]string{"grep", "-q", "foo bar"}) // 'grep' '-q' 'foo bar'
func JoinArgs(args []string) string {
	if len(args) == 1 {
		return args[0]
	}
	quoted := make([]string, len(args))
	for i, a := range args {
		quoted[i] = Quote(a)
	}
	return strings.Join(quoted, " ")
}
