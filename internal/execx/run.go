package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/sirupsen/logrus"
)

// Command describes a shell command to run.
type Command struct {
	// Line is the shell command, possibly holding ${name} placeholders.
	Line string

	// Params are substituted into Line. May be nil.
	Params map[string]string

	// Dir is the working directory. Empty means the current directory.
	Dir string

	// Stdin, Stdout and Stderr override the runner's streams when set.
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// Result is the outcome of a command that was started.
type Result struct {
	// Line is the command as executed, after substitution.
	Line string
	Code int
}

// OK reports whether the command exited with status 0.
func (r Result) OK() bool {
	return r.Code == 0
}

// Runner runs shell commands.
type Runner interface {
	Run(ctx context.Context, cmd Command) (Result, error)
}

// Shell runs commands with /bin/sh -c, attached to the process's standard
// streams unless a Command overrides them.
type Shell struct {
	Path   string
	Log    logrus.FieldLogger
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
}

// NewShell returns a Shell bound to the process's standard streams.
func NewShell(log logrus.FieldLogger) *Shell {
	return &Shell{
		Path:   "/bin/sh",
		Log:    log,
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
	}
}

// Run expands cmd.Line, logs it and waits for it to finish.
func (s *Shell) Run(ctx context.Context, cmd Command) (Result, error) {
	line, err := Expand(cmd.Line, cmd.Params)
	if err != nil {
		return Result{}, err
	}

	s.Log.WithField("dir", cmd.Dir).Infof("Executing %s", line)

	c := exec.CommandContext(ctx, s.Path, "-c", line)
	c.Dir = cmd.Dir
	c.Stdin = pick(cmd.Stdin, s.Stdin)
	c.Stdout = pickWriter(cmd.Stdout, s.Stdout)
	c.Stderr = pickWriter(cmd.Stderr, s.Stderr)

	res := Result{Line: line}
	if err := c.Run(); err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			res.Code = exitErr.ExitCode()
			return res, nil
		}
		return res, fmt.Errorf("failed to run %q: %w", line, err)
	}
	return res, nil
}

// Capture runs cmd with its standard output collected and returned.
func Capture(ctx context.Context, r Runner, cmd Command) (string, Result, error) {
	var buf bytes.Buffer
	cmd.Stdout = &buf
	res, err := r.Run(ctx, cmd)
	return buf.String(), res, err
}

func pick(a, b io.Reader) io.Reader {
	if a != nil {
		return a
	}
	return b
}

func pickWriter(a, b io.Writer) io.Writer {
	if a != nil {
		return a
	}
	return b
}
