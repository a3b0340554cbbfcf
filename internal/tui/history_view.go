package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrip/internal/greenops"
	"github.com/rshade/ecotrip/internal/history"
)

// RenderHistory renders the recent-trip list, newest first.
func (r *Renderer) RenderHistory(records []history.Record) string {
	s := r.styles
	if len(records) == 0 {
		return s.Info.Render("No recent trips yet.")
	}

	var b strings.Builder
	b.WriteString(s.Header.Render("RECENT TRIPS"))
	b.WriteString("\n")
	for i, rec := range records {
		b.WriteString(fmt.Sprintf("%s %s %s\n",
			s.Subtle.Render(fmt.Sprintf("%d.", i+1)),
			s.Value.Render(fmt.Sprintf("%s → %s", rec.From, rec.To)),
			s.Label.Render(fmt.Sprintf("%s km · %s · %s",
				greenops.FormatFloat(rec.Distance, 1), rec.TripType, rec.PurposeLabel))))
		b.WriteString(fmt.Sprintf("   %s %s %s\n",
			s.Label.Render("best:"),
			s.Highlight.Render(rec.BestLabel),
			s.Label.Render("("+r.FormatEmission(rec.BestEmission)+")")))
	}
	return strings.TrimRight(b.String(), "\n")
}
