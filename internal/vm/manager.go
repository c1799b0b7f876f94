package vm

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"

	"github.com/jbweber/macman/internal/config"
	"github.com/jbweber/macman/internal/execx"
	"github.com/jbweber/macman/internal/status"
)

// Manager runs actions against the VMs registered in a configuration file.
type Manager struct {
	// Settings is the loaded configuration.
	Settings *config.Settings

	// Path is the configuration file changes are saved to.
	Path string

	// DeletePolicy, when set, overrides the delete_policy setting of every VM.
	DeletePolicy DeletePolicy

	// Out receives progress messages. Defaults to io.Discard.
	Out io.Writer

	runner execx.Runner
	log    logrus.FieldLogger
}

// NewManager returns a manager for settings loaded from path.
func NewManager(settings *config.Settings, path string, runner execx.Runner, log logrus.FieldLogger) *Manager {
	return &Manager{
		Settings: settings,
		Path:     path,
		Out:      io.Discard,
		runner:   runner,
		log:      log,
	}
}

// Save writes the configuration back to Path.
func (m *Manager) Save() error {
	if err := config.Save(m.Path, m.Settings); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}
	return nil
}

// Register adds name with an empty option map and saves the configuration.
func (m *Manager) Register(name string) error {
	if name == "" {
		return usageErrorf("bad number of arguments: need a VM name")
	}
	if name == AllTarget || config.IsReservedName(name) {
		return usageErrorf("%q is not a valid VM name to register", name)
	}
	if !m.Settings.Register(name) {
		return usageErrorf("VM %s already exists, nothing done", name)
	}
	return m.Save()
}

// Unregister removes name, or every VM if name is "all", and saves the
// configuration.
func (m *Manager) Unregister(name string) error {
	targets, err := m.Targets(name)
	if err != nil {
		return err
	}
	for _, t := range targets {
		m.Settings.Unregister(t)
	}
	return m.Save()
}

// Targets resolves a VM argument to the list of VMs it designates.
func (m *Manager) Targets(name string) ([]string, error) {
	switch {
	case name == "":
		return nil, usageErrorf("bad number of arguments: need a VM name")
	case name == AllTarget:
		return m.Settings.Names(), nil
	case !m.Settings.Has(name):
		return nil, usageErrorf("unknown VM %s", name)
	default:
		return []string{name}, nil
	}
}

// Session returns a session for the registered VM name.
func (m *Manager) Session(name string) (*Session, error) {
	if !m.Settings.Has(name) {
		return nil, usageErrorf("unknown VM %s", name)
	}

	s := NewSession(name, m.Settings.VMDirectory(name), m.Settings.Effective(name), m.runner, m.log)

	policy := m.DeletePolicy
	if policy == "" {
		p, err := ParseDeletePolicy(s.Settings[OptionDeletePolicy])
		if err != nil {
			return nil, config.Errorf("VM %s: %v", name, err)
		}
		policy = p
	}
	s.DeletePolicy = policy
	return s, nil
}

// List returns the status of every registered VM, sorted by name.
func (m *Manager) List() []status.Status {
	names := m.Settings.Names()
	out := make([]status.Status, 0, len(names))
	for _, name := range names {
		eff := m.Settings.Effective(name)
		out = append(out, status.Inspect(name, m.Settings.VMDirectory(name), eff[OptionURL]))
	}
	return out
}

// Configure stores overrides in the settings of name, saves the
// configuration and regenerates the Vagrantfile.
func (m *Manager) Configure(ctx context.Context, name string, overrides map[string]string) error {
	if name == AllTarget && len(overrides) > 0 {
		return usageErrorf("settings cannot be assigned to %q", AllTarget)
	}
	if len(overrides) > 0 {
		if !m.Settings.Has(name) {
			return usageErrorf("unknown VM %s", name)
		}
		for k, v := range overrides {
			m.Settings.Set(name, k, v)
		}
		if err := m.Save(); err != nil {
			return err
		}
	}
	return m.runSessions(ctx, ActionConfigure, name, overrides)
}

// Run executes action against vm. args are the remaining command-line
// arguments; only configure accepts them, as KEY=VALUE pairs.
//
// For "all", VMs are processed in name order. A failure on one VM is
// reported and does not stop the others; the returned error joins every
// failure.
func (m *Manager) Run(ctx context.Context, action Action, vm string, args []string) error {
	if action != ActionConfigure && len(args) > 0 {
		return usageErrorf("unexpected arguments for %s: %v", action, args)
	}

	switch action {
	case ActionRegister:
		return m.Register(vm)
	case ActionUnregister:
		return m.Unregister(vm)
	case ActionList:
		return usageErrorf("list does not run against a VM")
	case ActionConfigure:
		overrides, err := ParseAssignments(args)
		if err != nil {
			return err
		}
		if _, err := m.Targets(vm); err != nil {
			return err
		}
		return m.Configure(ctx, vm, overrides)
	}

	if !action.PerVM() {
		return usageErrorf("unknown action %s", action)
	}
	return m.runSessions(ctx, action, vm, nil)
}

func (m *Manager) runSessions(ctx context.Context, action Action, vm string, overrides map[string]string) error {
	targets, err := m.Targets(vm)
	if err != nil {
		return err
	}
	handler := sessionHandlers[action]

	var errs []error
	for _, name := range targets {
		_, _ = fmt.Fprintf(m.Out, "On VM %s\n", name)

		s, err := m.Session(name)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if _, err := handler(ctx, s, overrides); err != nil {
			m.log.WithField("vm", name).Errorf("%s failed: %v", action, err)
			errs = append(errs, fmt.Errorf("%s %s: %w", action, name, err))
		}
	}
	return errors.Join(errs...)
}
