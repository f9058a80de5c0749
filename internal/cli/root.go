// Package cli defines Cobra command definitions for the intake CLI.
// This file contains the root command, shared flags and config loading.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/log"
	"github.com/underground-music/intake/internal/tui"
	"github.com/underground-music/intake/internal/tui/app"
)

var version = "dev" // set via ldflags at build time

// options holds state shared by all commands of one invocation.
type options struct {
	configPath string
	viper      *viper.Viper
}

// loadConfig reads the config file named by --config, applying environment
// and bound flag overrides.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.LoadFrom(o.viper, o.configPath)
	if err != nil {
		return nil, fmt.Errorf("loading %s: %w", o.configPath, err)
	}
	return cfg, nil
}

// openJournal returns the event journal, or nil when disabled.
func openJournal(cfg *config.Config) (*log.Logger, error) {
	if !cfg.Log.Enabled {
		return nil, nil
	}
	journal, err := log.NewLogger(cfg.Log.Dir)
	if err != nil {
		return nil, fmt.Errorf("opening journal: %w", err)
	}
	return journal, nil
}

// NewRootCmd builds the intake command tree.
func NewRootCmd() *cobra.Command {
	opts := &options{viper: config.NewViper()}

	rootCmd := &cobra.Command{
		Use:   "intake",
		Short: "Music school enrollment intake",
		Long: `Intake walks a prospective student through choosing a class type,
entering participants and preferences, and hands the composed enrollment
message to WhatsApp.`,
		Version:       version,
		SilenceErrors: true,
		SilenceUsage:  true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.loadConfig()
			if err != nil {
				return err
			}
			journal, err := openJournal(cfg)
			if err != nil {
				return err
			}
			return tui.Run(app.New(cfg, journal), tui.NewFallbackRunner(cfg, opts.configPath))
		},
	}

	rootCmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", config.DefaultFile, "Path to the config file")

	rootCmd.AddCommand(newComposeCmd(opts))
	rootCmd.AddCommand(newInfoCmd(opts))
	rootCmd.AddCommand(newInitCmd(opts))
	rootCmd.AddCommand(newReportCmd(opts))
	rootCmd.AddCommand(newTelegramCmd(opts))
	return rootCmd
}

// Execute runs the root command. Called from main.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
