// Package tui renders ecotrip results with lipgloss and runs the
// interactive compare form with bubbletea.
package tui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
)

// Palette is the set of colors for one theme.
type Palette struct {
	Header    lipgloss.Color
	Label     lipgloss.Color
	Value     lipgloss.Color
	Muted     lipgloss.Color
	Highlight lipgloss.Color
	Border    lipgloss.Color
	Warning   lipgloss.Color
	Critical  lipgloss.Color

	Excellent lipgloss.Color
	Good      lipgloss.Color
	OK        lipgloss.Color
	Poor      lipgloss.Color
}

// Color palettes.
//
//nolint:gochecknoglobals // Constant lookup tables.
var (
	DarkPalette = Palette{
		Header:    lipgloss.Color("86"),
		Label:     lipgloss.Color("245"),
		Value:     lipgloss.Color("255"),
		Muted:     lipgloss.Color("240"),
		Highlight: lipgloss.Color("212"),
		Border:    lipgloss.Color("63"),
		Warning:   lipgloss.Color("214"),
		Critical:  lipgloss.Color("196"),
		Excellent: lipgloss.Color("42"),
		Good:      lipgloss.Color("113"),
		OK:        lipgloss.Color("220"),
		Poor:      lipgloss.Color("203"),
	}

	LightPalette = Palette{
		Header:    lipgloss.Color("28"),
		Label:     lipgloss.Color("240"),
		Value:     lipgloss.Color("232"),
		Muted:     lipgloss.Color("247"),
		Highlight: lipgloss.Color("127"),
		Border:    lipgloss.Color("61"),
		Warning:   lipgloss.Color("166"),
		Critical:  lipgloss.Color("160"),
		Excellent: lipgloss.Color("28"),
		Good:      lipgloss.Color("64"),
		OK:        lipgloss.Color("136"),
		Poor:      lipgloss.Color("160"),
	}
)

// Styles are the lipgloss styles used by every view.
type Styles struct {
	Palette Palette

	Header      lipgloss.Style
	Label       lipgloss.Style
	Value       lipgloss.Style
	Subtle      lipgloss.Style
	Info        lipgloss.Style
	Warning     lipgloss.Style
	Critical    lipgloss.Style
	Highlight   lipgloss.Style
	Box         lipgloss.Style
	Card        lipgloss.Style
	BestCard    lipgloss.Style
	TableHeader lipgloss.Style
	Selected    lipgloss.Style
	Help        lipgloss.Style
}

// NewStyles builds styles for theme. Unknown themes use the dark palette.
func NewStyles(theme config.Theme) Styles {
	p := DarkPalette
	if theme == config.ThemeLight {
		p = LightPalette
	}

	return Styles{
		Palette:     p,
		Header:      lipgloss.NewStyle().Bold(true).Foreground(p.Header),
		Label:       lipgloss.NewStyle().Foreground(p.Label),
		Value:       lipgloss.NewStyle().Bold(true).Foreground(p.Value),
		Subtle:      lipgloss.NewStyle().Foreground(p.Muted),
		Info:        lipgloss.NewStyle().Foreground(p.Header),
		Warning:     lipgloss.NewStyle().Foreground(p.Warning),
		Critical:    lipgloss.NewStyle().Bold(true).Foreground(p.Critical),
		Highlight:   lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		Box:         lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(p.Border).Padding(0, 1),
		Card:        lipgloss.NewStyle().Border(lipgloss.NormalBorder()).BorderForeground(p.Muted).Padding(0, 1),
		BestCard:    lipgloss.NewStyle().Border(lipgloss.ThickBorder()).BorderForeground(p.Excellent).Padding(0, 1),
		TableHeader: lipgloss.NewStyle().Bold(true).Foreground(p.Header).Underline(true),
		Selected:    lipgloss.NewStyle().Bold(true).Foreground(p.Highlight),
		Help:        lipgloss.NewStyle().Foreground(p.Muted).Italic(true),
	}
}

// BandColor returns the color for a score band.
func (s Styles) BandColor(band engine.ScoreBand) lipgloss.Color {
	switch band {
	case engine.BandExcellent:
		return s.Palette.Excellent
	case engine.BandGood:
		return s.Palette.Good
	case engine.BandOK:
		return s.Palette.OK
	default:
		return s.Palette.Poor
	}
}
