package vm

import (
	"context"
	"strings"

	"github.com/jbweber/macman/internal/execx"
)

// Action is a command-line action.
type Action string

const (
	ActionStart       Action = "start"
	ActionStop        Action = "stop"
	ActionDownload    Action = "download"
	ActionConfigure   Action = "configure"
	ActionReconfigure Action = "reconfigure"
	ActionDelete      Action = "delete"
	ActionSSH         Action = "ssh"
	ActionRestart     Action = "restart"
	ActionRegister    Action = "register"
	ActionUnregister  Action = "unregister"
	ActionList        Action = "list"
)

// AllTarget selects every registered VM.
const AllTarget = "all"

// Actions lists every action in the order shown in help output.
var Actions = []Action{
	ActionStart,
	ActionStop,
	ActionDownload,
	ActionConfigure,
	ActionReconfigure,
	ActionDelete,
	ActionSSH,
	ActionRestart,
	ActionRegister,
	ActionUnregister,
	ActionList,
}

// sessionHandler runs an action against one VM.
type sessionHandler func(ctx context.Context, s *Session, overrides map[string]string) (execx.Result, error)

// sessionHandlers maps the per-VM actions to their implementation.
// Register, unregister and list operate on the configuration only and are
// handled by Manager directly.
var sessionHandlers = map[Action]sessionHandler{
	ActionStart: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Start(ctx)
	},
	ActionStop: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Stop(ctx)
	},
	ActionDownload: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Download(ctx)
	},
	ActionConfigure: func(_ context.Context, s *Session, overrides map[string]string) (execx.Result, error) {
		return execx.Result{}, s.Configure(overrides)
	},
	ActionReconfigure: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Reconfigure(ctx)
	},
	ActionDelete: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Delete(ctx)
	},
	ActionSSH: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.SSH(ctx)
	},
	ActionRestart: func(ctx context.Context, s *Session, _ map[string]string) (execx.Result, error) {
		return s.Restart(ctx)
	},
}

// ParseAction returns the Action named s.
func ParseAction(s string) (Action, error) {
	for _, a := range Actions {
		if string(a) == s {
			return a, nil
		}
	}
	return "", usageErrorf("unknown action %s (valid: %s)", s, actionNames())
}

// PerVM reports whether a runs against one or more VM sessions.
func (a Action) PerVM() bool {
	_, ok := sessionHandlers[a]
	return ok
}

func actionNames() string {
	names := make([]string, len(Actions))
	for i, a := range Actions {
		names[i] = string(a)
	}
	return strings.Join(names, ", ")
}

// ParseAssignments parses KEY=VALUE arguments. The value may be empty but
// the key may not.
func ParseAssignments(args []string) (map[string]string, error) {
	kv := make(map[string]string, len(args))
	for _, arg := range args {
		key, value, _ := strings.Cut(arg, "=")
		if key == "" {
			return nil, usageErrorf("bad argument %s: missing assignation", arg)
		}
		kv[key] = value
	}
	return kv, nil
}
