package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jbweber/macman/internal/output"
)

func newListCmd(opts *rootOptions) *cobra.Command {
	var outputFormat string
	var noHeaders bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered VMs",
		Long: `List the virtual machines registered in the configuration file.

Output formats:
  -o table  Human-readable table (default)
  -o yaml   YAML stream, one document per VM
  -o json   JSON array`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			format, err := output.ParseFormat(outputFormat)
			if err != nil {
				return err
			}

			m, err := newManager(cmd, opts)
			if err != nil {
				return err
			}

			return output.Write(cmd.OutOrStdout(), output.Options{
				Format:    format,
				NoHeaders: noHeaders,
			}, m.List())
		},
	}

	cmd.Flags().StringVarP(&outputFormat, "output", "o", string(output.FormatTable), fmt.Sprintf("output format (%s)", output.FormatNames()))
	cmd.Flags().BoolVar(&noHeaders, "no-headers", false, "omit table headers")

	return cmd
}
