package views

import (
	"strings"

	"github.com/underground-music/intake/internal/config"
	"github.com/underground-music/intake/internal/info"
	"github.com/underground-music/intake/internal/tui"
)

// InfoModel shows the school information panel over the current step.
type InfoModel struct {
	cfg     *config.Config
	content string
	width   int
}

// NewInfoModel renders the panel for width.
func NewInfoModel(cfg *config.Config, width int) InfoModel {
	m := InfoModel{cfg: cfg}
	m.SetWidth(width)
	return m
}

// SetWidth re-renders the panel for a new width.
func (m *InfoModel) SetWidth(width int) {
	if width == m.width && m.content != "" {
		return
	}
	m.width = width
	out, err := info.Terminal(m.cfg, width-8)
	if err != nil {
		// Plain markdown still reads fine.
		out, err = info.Markdown(m.cfg)
		if err != nil {
			out = tui.ErrorStyle.Render(err.Error())
		}
	}
	m.content = strings.TrimRight(out, "\n")
}

// View renders the info view.
func (m InfoModel) View() string {
	var b strings.Builder
	b.WriteString(m.content)
	b.WriteString("\n\n")
	b.WriteString(hints("F1/Esc", "Volver"))
	return b.String()
}
