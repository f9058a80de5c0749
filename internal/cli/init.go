// init.go implements "intake init", which writes a default config file.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/underground-music/intake/internal/config"
)

func newInitCmd(opts *options) *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write a default intake.yaml",
		Long: `Write the default configuration (school copy, WhatsApp contact,
prices and flow timing) to the path given by --config.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := opts.configPath
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := config.WriteConfig(path, config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}

	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing config file")
	return cmd
}
