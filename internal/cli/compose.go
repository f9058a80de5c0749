// compose.go implements "intake compose", which replays an answers file.
package cli

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/underground-music/intake/internal/answers"
	"github.com/underground-music/intake/internal/handoff"
	"github.com/underground-music/intake/internal/intake"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/message"
)

func newComposeCmd(opts *options) *cobra.Command {
	var (
		file     string
		open     bool
		copyLink bool
		linkOnly bool
	)

	cmd := &cobra.Command{
		Use:   "compose",
		Short: "Build the enrollment message from an answers file",
		Long: `Replay a YAML answers file through the intake flow and print the
composed message and its WhatsApp link. The same validation as the
interactive flow applies.`,
		Example: "  intake compose -f answers.yaml --open",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			a, err := answers.Load(file)
			if err != nil {
				return err
			}

			cat := cfg.Catalog()
			f, err := answers.Replay(a, intake.Options{Catalog: cat, AdvisoryAge: cfg.Flow.KidsAdvisoryAge})
			if err != nil {
				var inc *answers.IncompleteError
				if errors.As(err, &inc) {
					for _, field := range inc.Missing {
						if s := message.FieldError(field); s != "" {
							fmt.Fprintln(cmd.ErrOrStderr(), s)
						}
					}
				}
				return err
			}

			text := message.Composer{School: cfg.School.Name, Catalog: cat}.Compose(f.State())
			link := message.Link(cfg.Messaging.Domain, cfg.Messaging.Contact, text)

			out := cmd.OutOrStdout()
			if !linkOnly {
				fmt.Fprintln(out, text)
			}
			fmt.Fprintln(out, link)

			journal, err := openJournal(cfg)
			if err != nil {
				return err
			}
			rec := &log.Recorder{
				Logger:  journal,
				Session: uuid.NewString(),
				Channel: log.ChannelCompose,
				OnError: func(err error) { fmt.Fprintf(cmd.ErrOrStderr(), "Warning: %v\n", err) },
			}
			rec.Start()
			rec.Record(log.LogEvent{
				Event:        log.EventHandoff,
				Step:         f.Step().Name(),
				ClassType:    string(f.State().ClassType),
				Participants: f.State().Roster.Len(),
			})

			if copyLink {
				if err := handoff.Copy(link); err != nil {
					return err
				}
				fmt.Fprintln(cmd.ErrOrStderr(), "Link copied to clipboard.")
			}
			if open {
				return handoff.Open(link)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "Answers file (YAML)")
	cmd.Flags().BoolVar(&open, "open", false, "Open the link in the browser")
	cmd.Flags().BoolVar(&copyLink, "copy", false, "Copy the link to the clipboard")
	cmd.Flags().BoolVar(&linkOnly, "link-only", false, "Print only the link")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
