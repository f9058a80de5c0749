// Package info renders the school information panel.
package info

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/charmbracelet/glamour"

	"github.com/underground-music/intake/internal/catalog"
	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/prompts"
)

type panelData struct {
	School   config.SchoolConfig
	Classes  []catalog.ClassOption
	Advisory int
}

var panelTemplate = template.Must(template.New("info").Parse(prompts.InfoTemplate))

// Markdown renders the panel as markdown.
func Markdown(cfg *config.Config) (string, error) {
	data := panelData{
		School:   cfg.School,
		Classes:  cfg.Catalog().Options(),
		Advisory: cfg.Flow.KidsAdvisoryAge,
	}

	var buf bytes.Buffer
	if err := panelTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering info panel: %w", err)
	}
	return buf.String(), nil
}

// Terminal renders the panel for a terminal of the given width.
func Terminal(cfg *config.Config, width int) (string, error) {
	md, err := Markdown(cfg)
	if err != nil {
		return "", err
	}
	if width <= 0 {
		width = 80
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", fmt.Errorf("creating markdown renderer: %w", err)
	}
	out, err := r.Render(md)
	if err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return out, nil
}
