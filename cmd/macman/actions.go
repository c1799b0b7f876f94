package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/macman/internal/vm"
)

type actionHelp struct {
	use   string
	short string
	long  string
}

var actionHelps = map[vm.Action]actionHelp{
	vm.ActionStart: {
		use:   "start <vm|all>",
		short: "Start a VM",
		long: `Start a virtual machine.

This will, when needed:
- Download the base box
- Generate the Vagrantfile
- Add the base box to Vagrant
and then run "vagrant up" in the VM directory.`,
	},
	vm.ActionStop: {
		use:   "stop <vm|all>",
		short: "Halt a VM",
	},
	vm.ActionDownload: {
		use:   "download <vm|all>",
		short: "Download the base box of a VM",
		long: `Download the base box named by the url setting.

http:// and https:// URLs are fetched with wget, ssh:// locations with rsync,
and anything else is copied from the local filesystem.`,
	},
	vm.ActionConfigure: {
		use:   "configure <vm|all> [KEY=VALUE ...]",
		short: "Generate the Vagrantfile of a VM",
		long: `Generate the Vagrantfile of a virtual machine from its settings.

KEY=VALUE pairs are saved in the VM's section of the configuration file
before the Vagrantfile is generated. They cannot be combined with "all".

Example:
  macman configure web cpus=2 ram=1024`,
	},
	vm.ActionReconfigure: {
		use:   "reconfigure <vm|all>",
		short: "Reset a VM",
		long: `Run the reset_command setting of a virtual machine, or regenerate its
Vagrantfile when no reset_command is set.`,
	},
	vm.ActionDelete: {
		use:   "delete <vm|all>",
		short: "Destroy a VM and remove its box from Vagrant",
	},
	vm.ActionSSH: {
		use:   "ssh <vm>",
		short: "Open an SSH session to a VM",
	},
	vm.ActionRestart: {
		use:   "restart <vm|all>",
		short: "Reload a VM",
	},
	vm.ActionRegister: {
		use:   "register <vm>",
		short: "Add a VM to the configuration file",
	},
	vm.ActionUnregister: {
		use:   "unregister <vm|all>",
		short: "Remove a VM from the configuration file",
	},
}

// newActionCmd returns the subcommand running action. Argument checking is
// left to vm.Manager so every usage error reads the same.
func newActionCmd(opts *rootOptions, action vm.Action) *cobra.Command {
	help, ok := actionHelps[action]
	if !ok {
		help = actionHelp{use: fmt.Sprintf("%s <vm>", action), short: string(action)}
	}

	return &cobra.Command{
		Use:   help.use,
		Short: help.short,
		Long:  help.long,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := newManager(cmd, opts)
			if err != nil {
				return err
			}

			var target string
			var rest []string
			if len(args) > 0 {
				target, rest = args[0], args[1:]
			}
			return m.Run(cmd.Context(), action, target, rest)
		},
	}
}
