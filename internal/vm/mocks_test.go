package vm

import (
	"context"
	"io"
	"sync"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"

	"github.com/jbweber/macman/internal/execx"
)

// mockRunner is a mock implementation of execx.Runner for testing.
type mockRunner struct {
	mu sync.Mutex

	// Configurable behavior, keyed by the command line before expansion.
	exitCodes map[string]int
	outputs   map[string]string
	runFunc   func(cmd execx.Command) (execx.Result, error)

	// Call tracking
	calls []execx.Command
	lines []string // expanded command lines
}

// newMockRunner creates a mock runner where every command succeeds.
func newMockRunner() *mockRunner {
	return &mockRunner{
		exitCodes: make(map[string]int),
		outputs:   make(map[string]string),
	}
}

func (m *mockRunner) Run(_ context.Context, cmd execx.Command) (execx.Result, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	line, err := execx.Expand(cmd.Line, cmd.Params)
	if err != nil {
		return execx.Result{}, err
	}
	m.calls = append(m.calls, cmd)
	m.lines = append(m.lines, line)

	if m.runFunc != nil {
		return m.runFunc(cmd)
	}
	if out, ok := m.outputs[cmd.Line]; ok && cmd.Stdout != nil {
		_, _ = io.WriteString(cmd.Stdout, out)
	}
	return execx.Result{Line: line, Code: m.exitCodes[cmd.Line]}, nil
}

// ran reports whether a command with the given unexpanded line was run.
func (m *mockRunner) ran(line string) bool {
	for _, c := range m.calls {
		if c.Line == line {
			return true
		}
	}
	return false
}

// newTestLogger returns a logger that records entries instead of printing.
func newTestLogger() (logrus.FieldLogger, *test.Hook) {
	logger, hook := test.NewNullLogger()
	return logger, hook
}
