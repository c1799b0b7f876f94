// Package execx runs external commands through the shell.
//
// Commands are plain shell strings with optional ${name} placeholders that
// are replaced by quoted parameter values. Each command runs in an explicit
// working directory; the process working directory is never changed.
//
// A non-zero exit status is reported through Result and is not an error.
// Errors are reserved for commands that could not be prepared or started.
package execx
