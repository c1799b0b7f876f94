package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jbweber/macman/internal/vm"
)

var (
	version = "dev"
	commit  = "unknown"
)

// envConfig overrides configuration discovery when set.
const envConfig = "MACMAN_CONFIG"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// rootOptions holds the persistent flags.
type rootOptions struct {
	configPath   string
	logLevel     string
	deletePolicy string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "macman",
		Short: "macman - Vagrant VM management tool",
		Long: `macman manages the lifecycle of several Vagrant virtual machines described
in a single INI configuration file.

The configuration file is looked up as macman.cfg or etc/macman.cfg in the
current directory and its ancestors. If none is found, a new one is created
in ./etc/macman.cfg. Set --config or ` + envConfig + ` to use a specific file.

Every per-VM action accepts "all" to run against each registered VM in turn.`,
		Version:       fmt.Sprintf("%s (commit: %s)", version, commit),
		SilenceUsage:  true,
		SilenceErrors: true,
		// Subcommands handle every known action; anything reaching the root
		// is a missing or unknown one.
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return &vm.UsageError{Msg: "bad number of arguments: missing ACTION"}
			}
			if _, err := vm.ParseAction(args[0]); err != nil {
				return err
			}
			return &vm.UsageError{Msg: fmt.Sprintf("unexpected arguments: %v", args)}
		},
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to the configuration file (default: search from the current directory)")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&opts.deletePolicy, "delete-policy", "", "override the delete_policy setting (best-effort, abort-on-failure)")

	for _, action := range vm.Actions {
		if action == vm.ActionList {
			cmd.AddCommand(newListCmd(opts))
			continue
		}
		cmd.AddCommand(newActionCmd(opts, action))
	}

	return cmd
}
