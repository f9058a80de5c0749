// telegram.go implements "intake telegram", which serves the flow as a bot.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/underground-music/intake/internal/telegram"
)

func newTelegramCmd(opts *options) *cobra.Command {
	var debug bool

	cmd := &cobra.Command{
		Use:   "telegram",
		Short: "Run the enrollment flow as a Telegram bot",
		Long: `Serve the intake flow over Telegram with inline keyboards, one
session per chat. The token comes from --token, telegram.token in the
config file, or INTAKE_TELEGRAM_TOKEN.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			journal, err := openJournal(cfg)
			if err != nil {
				return err
			}

			level := zerolog.InfoLevel
			if debug {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: cmd.ErrOrStderr(), TimeFormat: time.Kitchen}).
				Level(level).
				With().Timestamp().Logger()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return telegram.Run(ctx, cfg, journal, logger)
		},
	}

	cmd.Flags().String("token", "", "Telegram bot token")
	cmd.Flags().BoolVar(&debug, "debug", false, "Enable debug logging")
	_ = opts.viper.BindPFlag("telegram.token", cmd.Flags().Lookup("token"))
	return cmd
}
