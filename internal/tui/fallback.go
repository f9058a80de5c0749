package tui

import (
	"fmt"
	"io"

	"github.com/underground-music/intake/internal/config"
)

// FallbackRunner handles non-TTY execution by guiding users to CLI commands.
type FallbackRunner struct {
	cfg        *config.Config
	configPath string
}

// NewFallbackRunner creates a new FallbackRunner.
func NewFallbackRunner(cfg *config.Config, configPath string) *FallbackRunner {
	return &FallbackRunner{
		cfg:        cfg,
		configPath: configPath,
	}
}

// Run prints the non-interactive alternatives to w.
func (f *FallbackRunner) Run(w io.Writer) error {
	fmt.Fprintln(w, "Non-TTY environment detected.")
	fmt.Fprintf(w, "%s intake runs interactively only in a terminal.\n", f.cfg.School.Name)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Non-interactive alternatives:")
	fmt.Fprintln(w, "  intake compose -f answers.yaml   build the message from an answers file")
	fmt.Fprintln(w, "  intake info                      print the school information")
	if f.configPath != "" && f.configPath != config.DefaultFile {
		fmt.Fprintf(w, "\nPass --config %s to reuse the current configuration.\n", f.configPath)
	}
	return nil
}
