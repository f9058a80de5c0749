package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/underground-music/intake/internal/info"
)

func newInfoCmd(opts *options) *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Print the school information panel",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			var panel string
			if plain {
				panel, err = info.Markdown(cfg)
			} else {
				panel, err = info.Terminal(cfg, terminalWidth())
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), panel)
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "Print raw Markdown without styling")
	return cmd
}

func terminalWidth() int {
	w, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || w <= 0 {
		return 80
	}
	return w
}
