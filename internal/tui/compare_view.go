package tui

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/rshade/ecotrip/internal/config"
	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/greenops"
)

// Layout constants.
const (
	barWidth      = 24
	barFilled     = "█"
	barEmpty      = "░"
	defaultWidth  = 80
	defaultHeight = 24
	borderPadding = 2
)

// ViewOptions control how emissions are shown.
type ViewOptions struct {
	// Unit is a greenops display unit such as "kg" or "g".
	Unit string
	// Equivalencies adds real-world comparisons to savings.
	Equivalencies bool
}

// Renderer turns engine and history values into terminal text.
type Renderer struct {
	styles Styles
	opts   ViewOptions
}

// NewRenderer creates a renderer for theme.
func NewRenderer(theme config.Theme, opts ViewOptions) *Renderer {
	if opts.Unit == "" {
		opts.Unit = "kg"
	}
	return &Renderer{styles: NewStyles(theme), opts: opts}
}

// Styles returns the renderer's styles.
func (r *Renderer) Styles() Styles {
	return r.styles
}

// FormatEmission formats kg in the configured unit followed by CO2.
func (r *Renderer) FormatEmission(kg float64) string {
	return greenops.FormatKg(kg, r.opts.Unit) + " CO2"
}

// RenderComparison renders the full result screen for one trip: a header,
// the summary sentence, one card per mode and the car-versus-transit panel.
func (r *Renderer) RenderComparison(cmp engine.Comparison, from, to string) string {
	s := r.styles
	var b strings.Builder

	from = engine.EndpointLabel(from, engine.DefaultFromLabel)
	to = engine.EndpointLabel(to, engine.DefaultToLabel)

	b.WriteString(s.Header.Render(fmt.Sprintf("%s → %s", from, to)))
	b.WriteString("\n")
	b.WriteString(s.Label.Render(fmt.Sprintf("%s km · %s · %s",
		greenops.FormatFloat(engine.RoundDistance(cmp.DistanceKm), 1),
		cmp.TripType.Label(), cmp.Purpose.Label())))
	b.WriteString("\n\n")
	b.WriteString(s.Value.Render(cmp.SummarySentence()))
	b.WriteString("\n\n")

	if len(cmp.Evaluations) == 0 {
		b.WriteString(s.Warning.Render("No travel modes apply to this trip."))
		return b.String()
	}

	for i, e := range cmp.Evaluations {
		b.WriteString(r.renderCard(cmp, e, i == 0))
		b.WriteString("\n")
	}

	if panel := r.renderSavings(cmp); panel != "" {
		b.WriteString("\n")
		b.WriteString(panel)
		b.WriteString("\n")
	}
	return b.String()
}

// renderCard renders one mode as a bordered card with its emission bar.
func (r *Renderer) renderCard(cmp engine.Comparison, e engine.ModeEvaluation, best bool) string {
	s := r.styles
	info := engine.ClassifyScore(e.GreenScore)
	bandStyle := lipgloss.NewStyle().Bold(true).Foreground(s.BandColor(info.Band))

	title := fmt.Sprintf("%s %s", e.Icon, e.Label)
	if best {
		title += s.Highlight.Render("  ★ greenest")
	}

	lines := []string{
		s.Value.Render(title),
		fmt.Sprintf("%s   %s %s",
			s.Label.Render(r.FormatEmission(e.EmissionKg)),
			s.Label.Render(fmt.Sprintf("score %d/100", e.GreenScore)),
			bandStyle.Render(info.Emoji+" "+info.Label)),
		bandStyle.Render(RenderBar(cmp.BarRatio(e), barWidth)),
		s.Subtle.Render(e.Description),
	}

	card := s.Card
	if best {
		card = s.BestCard
	}
	return card.Render(strings.Join(lines, "\n"))
}

// RenderBar draws a horizontal bar filled to ratio (0..1) of width cells.
func RenderBar(ratio float64, width int) string {
	if width <= 0 {
		return ""
	}
	ratio = math.Max(0, math.Min(1, ratio))
	filled := int(math.Round(ratio * float64(width)))
	return strings.Repeat(barFilled, filled) + strings.Repeat(barEmpty, width-filled)
}

// renderSavings renders the car-versus-transit panel. It is empty when
// the car or both transit modes are not eligible.
func (r *Renderer) renderSavings(cmp engine.Comparison) string {
	savings := cmp.Savings()
	if len(savings) == 0 {
		return ""
	}
	s := r.styles

	lines := []string{s.Header.Render("CAR VS. PUBLIC TRANSPORT")}
	for _, sv := range savings {
		if !sv.Positive {
			lines = append(lines, s.Subtle.Render(fmt.Sprintf(
				"%s: no savings over the car on this trip", sv.TransitLabel)))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s %s",
			s.Label.Render(fmt.Sprintf("Taking the %s instead of driving saves", strings.ToLower(sv.TransitLabel))),
			s.Value.Render(r.FormatEmission(sv.SavedKg))))
		if r.opts.Equivalencies {
			if text := greenops.SavingsText(sv.SavedKg); text != "" {
				lines = append(lines, s.Subtle.Render("  "+text))
			}
		}
	}
	return s.Box.Render(strings.Join(lines, "\n"))
}
