// Package export renders engine output as standalone SVG documents: a
// trajectory as a single path (grounded on the teacher's
// internal/export.TrajectoryToSVG) and one frame of a scene as one
// polygon per body. Per-tick CSV/JSON persistence lives in
// internal/storage, not here.
package export

import (
	"fmt"
	"strings"

	"github.com/rbody2d/engine/internal/rigidbody"
)

// TrajectoryToSVG draws points as a single polyline, useful for a body's
// center-of-mass path or a sequence of recorded contact centroids.
func TrajectoryToSVG(points []rigidbody.Vector, width, height int, strokeColor string) string {
	if len(points) < 2 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		if p.X < minX {
			minX = p.X
		}
		if p.X > maxX {
			maxX = p.X
		}
		if p.Y < minY {
			minY = p.Y
		}
		if p.Y > maxY {
			maxY = p.Y
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
	minX -= rangeX * 0.1
	maxX += rangeX * 0.1
	minY -= rangeY * 0.1
	maxY += rangeY * 0.1
	rangeX = maxX - minX
	rangeY = maxY - minY

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1.5" d="M`,
		width, height, width, height, strokeColor))

	for i, p := range points {
		x := (p.X - minX) / rangeX * float64(width)
		y := float64(height) - (p.Y-minY)/rangeY*float64(height)
		if i == 0 {
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}

	sb.WriteString(`"/>
</svg>`)
	return sb.String()
}

// SceneFrameToSVG draws every body's world-space polygon at one instant,
// one <polygon> per body, useful for a single still of a scene.
func SceneFrameToSVG(bodies []rigidbody.Body, width, height int, worldScale float64) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	cx, cy := float64(width)/2, float64(height)/2
	for _, b := range bodies {
		color := b.Color
		if color == "" {
			color = "#00ff88"
		}
		sb.WriteString(`<polygon fill="none" stroke="` + color + `" stroke-width="1.5" points="`)
		for i, v := range b.WorldVertices() {
			if i > 0 {
				sb.WriteString(" ")
			}
			sb.WriteString(fmt.Sprintf("%.1f,%.1f", cx+v.X*worldScale, cy-v.Y*worldScale))
		}
		sb.WriteString(`"/>` + "\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}
