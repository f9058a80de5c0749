// Package handoff delivers the composed link outside the program: the
// browser opens it, or the clipboard receives it.
package handoff

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/atotto/clipboard"
)

// Package-level so tests can stub them.
var (
	clipboardWriteAll = clipboard.WriteAll
	startCommand      = func(cmd *exec.Cmd) error { return cmd.Start() }
)

// BrowserCommand returns the command that opens url with the platform's
// default handler.
func BrowserCommand(goos, url string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("open", url), nil
	case "linux", "freebsd", "openbsd", "netbsd":
		return exec.Command("xdg-open", url), nil
	case "windows":
		return exec.Command("rundll32", "url.dll,FileProtocolHandler", url), nil
	}
	return nil, fmt.Errorf("unsupported platform: %s", goos)
}

// Open opens url in the default browser without waiting for it.
func Open(url string) error {
	cmd, err := BrowserCommand(runtime.GOOS, url)
	if err != nil {
		return err
	}
	if err := startCommand(cmd); err != nil {
		return fmt.Errorf("opening browser: %w", err)
	}
	return nil
}

// Copy puts text on the system clipboard.
func Copy(text string) error {
	if err := clipboardWriteAll(text); err != nil {
		return fmt.Errorf("copying to clipboard: %w", err)
	}
	return nil
}
