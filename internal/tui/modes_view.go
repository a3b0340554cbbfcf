package tui

import (
	"fmt"
	"strings"

	"github.com/rshade/ecotrip/internal/modes"
)

// RenderModes renders the mode table with each emission factor.
func (r *Renderer) RenderModes(defs []modes.Definition) string {
	s := r.styles
	var b strings.Builder
	b.WriteString(s.TableHeader.Render(fmt.Sprintf("%-4s %-10s %-16s %s", "", "KEY", "MODE", "KG CO2/KM")))
	b.WriteString("\n")
	for _, d := range defs {
		b.WriteString(fmt.Sprintf("%-4s %s %s %s\n",
			d.Icon,
			s.Subtle.Render(fmt.Sprintf("%-10s", d.Key)),
			s.Value.Render(fmt.Sprintf("%-16s", d.Label)),
			s.Label.Render(fmt.Sprintf("%.3f", d.EmissionFactor))))
	}
	return strings.TrimRight(b.String(), "\n")
}
