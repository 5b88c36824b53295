package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"
)

const ChartCaption = "Pseudo-Second-Order Adsorption Kinetics Simulation"

// Plotter renders a q(t) curve together with the equilibrium line q = qe.
type Plotter interface {
	Plot(times, q []float64, qe float64) string
}

type ASCIIPlotter struct {
	Width  int
	Height int
	Theme  Theme
}

func NewASCIIPlotter(width, height int, theme Theme) *ASCIIPlotter {
	return &ASCIIPlotter{Width: width, Height: height, Theme: theme}
}

func (a *ASCIIPlotter) Plot(times, q []float64, qe float64) string {
	if len(q) == 0 || len(times) != len(q) {
		return ""
	}

	ref := make([]float64, len(q))
	for i := range ref {
		ref[i] = qe
	}

	graph := asciigraph.PlotMany([][]float64{q, ref},
		asciigraph.Height(a.Height),
		asciigraph.Width(a.Width),
		asciigraph.Precision(1),
		asciigraph.SeriesColors(a.Theme.Curve, a.Theme.Reference),
		asciigraph.Caption(ChartCaption),
	)

	var sb strings.Builder
	sb.WriteString(graph)
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render(fmt.Sprintf("Time (min): %g → %g", times[0], times[len(times)-1])))
	sb.WriteString("\n")
	sb.WriteString(Subtle.Render(fmt.Sprintf("Amount adsorbed q_t (mg/g): simulated curve, equilibrium capacity q_e = %g mg/g", qe)))
	return sb.String()
}
