// Package prompt provides simple interactive prompts.
//
// [Confirm] asks a yes/no question, defaulting to no. Callers check
// [Interactive] first and require an explicit flag (e.g. --yes) otherwise.
package prompt
