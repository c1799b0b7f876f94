package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/jbweber/macman/internal/config"
	"github.com/jbweber/macman/internal/execx"
	"github.com/jbweber/macman/internal/vm"
)

// newManager loads the configuration and returns a manager wired to a shell
// runner.
func newManager(cmd *cobra.Command, opts *rootOptions) (*vm.Manager, error) {
	log, err := newLogger(cmd.ErrOrStderr(), opts.logLevel)
	if err != nil {
		return nil, err
	}

	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get working directory: %w", err)
	}

	explicit := opts.configPath
	if explicit == "" {
		explicit = os.Getenv(envConfig)
	}

	path, settings, err := loadSettings(cwd, explicit, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}
	log.WithField("config", path).Debug("Loaded configuration")

	m := vm.NewManager(settings, path, execx.NewShell(log), log)
	m.Out = cmd.OutOrStdout()

	if opts.deletePolicy != "" {
		p, err := vm.ParseDeletePolicy(opts.deletePolicy)
		if err != nil {
			return nil, err
		}
		m.DeletePolicy = p
	}

	return m, nil
}

// newLogger returns a text logger writing to w at the named level.
func newLogger(w io.Writer, level string) (*logrus.Logger, error) {
	lvl, err := logrus.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", level, err)
	}

	log := logrus.New()
	log.SetOutput(w)
	log.SetLevel(lvl)
	log.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	return log, nil
}

// loadSettings loads the configuration file. explicit, when set, names the
// file to use. Otherwise the file is searched from cwd upwards and, if none
// exists, a default one is created under cwd and announced on out.
func loadSettings(cwd, explicit string, out io.Writer) (string, *config.Settings, error) {
	if explicit != "" {
		settings, err := config.Load(explicit, cwd)
		if err != nil {
			return "", nil, err
		}
		return explicit, settings, nil
	}

	path, err := config.Find(cwd)
	if errors.Is(err, config.ErrConfigNotFound) {
		path = config.DefaultPath(cwd)
		_, _ = fmt.Fprintf(out, "No configuration file found. Creating a new one at %s\n", path)

		settings := config.NewSettings(cwd)
		if err := config.Save(path, settings); err != nil {
			return "", nil, err
		}
		return path, settings, nil
	}
	if err != nil {
		return "", nil, err
	}

	settings, err := config.Load(path, cwd)
	if err != nil {
		return "", nil, err
	}
	return path, settings, nil
}
