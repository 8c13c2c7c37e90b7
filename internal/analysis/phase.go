package analysis

import (
	"math"
	"strings"

	"github.com/rbody2d/engine/internal/engine"
)

// Point2D is one sample in a 2D phase or Poincaré plot.
type Point2D struct{ X, Y float64 }

// PhasePortrait2D holds a recorded trajectory through a 2D slice of phase
// space for one body (position against velocity, typically).
type PhasePortrait2D struct {
	Body   string
	Points []Point2D
}

// phaseCoord remembers the previous tick's pose of the tracked body.
// Since engine.BodySnapshot carries pose only, velocity is derived by
// finite difference between consecutive ticks.
type phaseCoord struct {
	prevX, prevY, prevTheta float64
	have                    bool
}

// GeneratePhasePortrait steps e for the given number of ticks, recording
// position against the finite-difference velocity of bodyIndex along the
// requested axis ("x", "y", or "theta").
func GeneratePhasePortrait(e *engine.Engine, bodyIndex int, axis string, ticks int, dt float64) *PhasePortrait2D {
	states := e.State()
	if bodyIndex < 0 || bodyIndex >= len(states) {
		return nil
	}

	portrait := &PhasePortrait2D{Body: states[bodyIndex].Name, Points: make([]Point2D, 0, ticks)}
	var pc phaseCoord

	for i := 0; i < ticks; i++ {
		if _, err := e.Tick(); err != nil {
			break
		}
		s := e.State()[bodyIndex]

		var pos, prevPos float64
		switch axis {
		case "y":
			pos, prevPos = s.Y, pc.prevY
		case "theta":
			pos, prevPos = s.Theta, pc.prevTheta
		default:
			pos, prevPos = s.X, pc.prevX
		}

		if pc.have {
			vel := (pos - prevPos) / dt
			portrait.Points = append(portrait.Points, Point2D{X: pos, Y: vel})
		}

		pc = phaseCoord{prevX: s.X, prevY: s.Y, prevTheta: s.Theta, have: true}
	}

	return portrait
}

// PhasePortraitToASCII renders a phase portrait as a text canvas, plotting
// each point and drawing zero-crossing axes when visible.
func PhasePortraitToASCII(points []Point2D, width, height int) string {
	if len(points) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	minX, maxX := points[0].X, points[0].X
	minY, maxY := points[0].Y, points[0].Y
	for _, p := range points {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}

	rangeX, rangeY := maxX-minX, maxY-minY
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
	rangeX, rangeY = maxX-minX, maxY-minY

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range points {
		col := int((p.X - minX) / rangeX * float64(width-1))
		row := height - 1 - int((p.Y-minY)/rangeY*float64(height-1))
		if row >= 0 && row < height && col >= 0 && col < width {
			canvas[row][col] = '•'
		}
	}

	if minX <= 0 && maxX >= 0 {
		col := int((0 - minX) / rangeX * float64(width-1))
		for row := 0; row < height; row++ {
			if col >= 0 && col < width && canvas[row][col] == ' ' {
				canvas[row][col] = '│'
			}
		}
	}
	if minY <= 0 && maxY >= 0 {
		row := height - 1 - int((0-minY)/rangeY*float64(height-1))
		for col := 0; col < width; col++ {
			if row >= 0 && row < height && canvas[row][col] == ' ' {
				canvas[row][col] = '─'
			}
		}
	}

	var sb strings.Builder
	for _, row := range canvas {
		sb.WriteString(string(row))
		sb.WriteRune('\n')
	}
	return sb.String()
}

// PoincareSection records a body's (x, y) position each time another axis
// crosses threshold going upward, a stroboscopic view useful for
// periodic-orbit scenarios like the orbital and pendulum presets.
type PoincareSection struct {
	Points []Point2D
}

// GeneratePoincareSection steps e for the given number of ticks, sampling
// bodyIndex's position whenever its crossAxis ("x", "y", or "theta")
// crosses threshold on an upward pass.
func GeneratePoincareSection(e *engine.Engine, bodyIndex int, crossAxis string, threshold float64, ticks int) *PoincareSection {
	states := e.State()
	if bodyIndex < 0 || bodyIndex >= len(states) {
		return nil
	}

	section := &PoincareSection{Points: make([]Point2D, 0)}
	axisValue := func(s engine.BodySnapshot) float64 {
		switch crossAxis {
		case "y":
			return s.Y
		case "theta":
			return s.Theta
		default:
			return s.X
		}
	}

	prev := axisValue(states[bodyIndex])
	for i := 0; i < ticks; i++ {
		if _, err := e.Tick(); err != nil {
			break
		}
		s := e.State()[bodyIndex]
		curr := axisValue(s)
		if prev < threshold && curr >= threshold {
			section.Points = append(section.Points, Point2D{X: s.X, Y: s.Y})
		}
		prev = curr
	}

	return section
}

// PoincareSectionToASCII renders a section using the same canvas logic as
// a phase portrait.
func PoincareSectionToASCII(section *PoincareSection, width, height int) string {
	if section == nil || len(section.Points) == 0 {
		return "No crossings detected"
	}
	return PhasePortraitToASCII(section.Points, width, height)
}
