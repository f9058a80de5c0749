// report.go implements "intake report", which summarizes the event journal.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/report"
)

func newReportCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "report",
		Short: "Summarize the enrollment journal",
		Long: `Read the event journal and print session counts, class type
popularity, the step where abandoned sessions stopped, and conversion.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}

			journal, err := log.NewLogger(cfg.Log.Dir)
			if err != nil {
				return fmt.Errorf("opening journal: %w", err)
			}
			events, err := journal.ReadAll()
			if err != nil {
				return err
			}
			if len(events) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No events in %s\n", journal.Path())
				return nil
			}

			fmt.Fprint(cmd.OutOrStdout(), report.FormatReport(report.Build(events)))
			return nil
		},
	}
}
