package export

import (
	"fmt"
	"math"
	"strings"
)

const (
	svgMarginLeft   = 60
	svgMarginRight  = 20
	svgMarginTop    = 40
	svgMarginBottom = 50
)

// CurveToSVG draws q(t) as a polyline with a dashed horizontal line at qe,
// a title and axis labels. It returns "" for fewer than two samples.
func CurveToSVG(times, q []float64, qe float64, width, height int, title string) string {
	if len(times) < 2 || len(times) != len(q) {
		return ""
	}

	minX, maxX := times[0], times[len(times)-1]
	minY, maxY := math.Min(0, qe), qe
	for _, v := range q {
		if v < minY {
			minY = v
		}
		if v > maxY {
			maxY = v
		}
	}

	rangeX := maxX - minX
	rangeY := maxY - minY
	if rangeX == 0 {
		rangeX = 1
	}
	if rangeY == 0 {
		rangeY = 1
	}
	maxY += rangeY * 0.05
	rangeY = maxY - minY

	plotW := float64(width - svgMarginLeft - svgMarginRight)
	plotH := float64(height - svgMarginTop - svgMarginBottom)
	px := func(t float64) float64 { return svgMarginLeft + (t-minX)/rangeX*plotW }
	py := func(v float64) float64 { return svgMarginTop + plotH - (v-minY)/rangeY*plotH }

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#ffffff"/>
<text x="%d" y="24" font-family="sans-serif" font-size="16" text-anchor="middle">%s</text>
`, width, height, width, height, width/2, title))

	// axes
	x0, y0 := px(minX), py(minY)
	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333"/>
<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#333333"/>
`, x0, y0, px(maxX), y0, x0, y0, x0, py(maxY)))

	sb.WriteString(fmt.Sprintf(`<text x="%.1f" y="%d" font-family="sans-serif" font-size="12" text-anchor="middle">Time (min)</text>
<text x="16" y="%.1f" font-family="sans-serif" font-size="12" text-anchor="middle" transform="rotate(-90 16 %.1f)">Amount adsorbed q_t (mg/g)</text>
`, svgMarginLeft+plotW/2, height-12, svgMarginTop+plotH/2, svgMarginTop+plotH/2))

	sb.WriteString(fmt.Sprintf(`<line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f" stroke="#d62728" stroke-width="1.5" stroke-dasharray="6,4"/>
<text x="%.1f" y="%.1f" font-family="sans-serif" font-size="11" fill="#d62728" text-anchor="end">q_e = %g mg/g</text>
`, x0, py(qe), px(maxX), py(qe), px(maxX), py(qe)-6, qe))

	sb.WriteString(`<path fill="none" stroke="#008080" stroke-width="2" d="M`)
	for i, t := range times {
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", px(t), py(q[i])))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", px(t), py(q[i])))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}
