// Package plot renders a recorded scalar series (a body's y-position,
// an orbital radius, a restitution sweep) as a terminal sparkline,
// grounded on the teacher's asciigraph usage in cmd/dynsim's plot
// command and the role internal/viz/canvas.go plays as the CLI's
// terminal rendering layer.
package plot

import "github.com/guptarohit/asciigraph"

// Series renders data as an ASCII line plot with the given caption.
func Series(data []float64, caption string) string {
	if len(data) == 0 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}

// Multi renders several named series stacked vertically, one plot per
// series, in the order given.
func Multi(series map[string][]float64, order []string) string {
	out := ""
	for _, name := range order {
		data, ok := series[name]
		if !ok || len(data) == 0 {
			continue
		}
		out += Series(data, name) + "\n\n"
	}
	return out
}
