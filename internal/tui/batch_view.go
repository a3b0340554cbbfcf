package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrip/internal/engine"
	"github.com/rshade/ecotrip/internal/engine/batch"
)

// RenderBatch renders one line per trip with its greenest and most
// polluting mode, followed by a count of failures.
func (r *Renderer) RenderBatch(results []batch.Result) string {
	s := r.styles
	var b strings.Builder
	b.WriteString(s.Header.Render(fmt.Sprintf("BATCH RESULTS (%d trips)", len(results))))
	b.WriteString("\n")

	failed := 0
	for _, res := range results {
		route := fmt.Sprintf("%s → %s",
			engine.EndpointLabel(res.Trip.From, engine.DefaultFromLabel),
			engine.EndpointLabel(res.Trip.To, engine.DefaultToLabel))
		prefix := s.Subtle.Render(fmt.Sprintf("%3d.", res.Index+1))

		if !res.OK() {
			failed++
			b.WriteString(fmt.Sprintf("%s %s %s\n", prefix, s.Value.Render(route),
				s.Critical.Render("error: "+res.Err.Error())))
			continue
		}

		cmp := res.Comparison
		best, _ := cmp.Best()
		worst, _ := cmp.Worst()
		b.WriteString(fmt.Sprintf("%s %s %s\n", prefix, s.Value.Render(route),
			s.Label.Render(fmt.Sprintf("%.1f km · %s", engine.RoundDistance(cmp.DistanceKm), cmp.Purpose.Label()))))
		b.WriteString(fmt.Sprintf("     %s %s   %s %s\n",
			s.Label.Render("best:"), s.Highlight.Render(fmt.Sprintf("%s %s (%s)", best.Icon, best.Label, r.FormatEmission(best.EmissionKg))),
			s.Label.Render("worst:"), s.Warning.Render(fmt.Sprintf("%s %s (%s)", worst.Icon, worst.Label, r.FormatEmission(worst.EmissionKg)))))
	}

	if failed > 0 {
		b.WriteString(s.Warning.Render(fmt.Sprintf("%d of %d trips could not be evaluated", failed, len(results))))
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
