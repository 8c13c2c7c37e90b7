package analysis

import "github.com/rbody2d/engine/internal/engine"

// BifurcationPoint is the set of distinct post-transient positions a
// tracked body visited at one parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// RestitutionSweep builds a fresh engine at each of paramSteps restitution
// values between paramMin and paramMax via build, discards a transient
// window of ticks, then records bodyIndex's X position every tick for
// record more ticks, deduplicating near-identical values. It is most
// useful against a repeated-bump scenario, where low restitution
// collapses to a single steady-state value and high restitution keeps
// perturbing the body indefinitely.
func RestitutionSweep(
	build func(restitution float64) (*engine.Engine, error),
	paramMin, paramMax float64,
	paramSteps int,
	bodyIndex int,
	transient, record int,
) []BifurcationPoint {
	if paramSteps <= 1 {
		paramSteps = 2
	}
	step := (paramMax - paramMin) / float64(paramSteps-1)

	results := make([]BifurcationPoint, 0, paramSteps)
	for i := 0; i < paramSteps; i++ {
		param := paramMin + float64(i)*step
		e, err := build(param)
		if err != nil {
			continue
		}

		for t := 0; t < transient; t++ {
			if _, err := e.Tick(); err != nil {
				break
			}
		}

		values := make([]float64, 0, record)
		seen := make(map[int]bool)
		for t := 0; t < record; t++ {
			if _, err := e.Tick(); err != nil {
				break
			}
			states := e.State()
			if bodyIndex >= len(states) {
				break
			}
			val := states[bodyIndex].X
			key := int(val * 1000)
			if !seen[key] {
				seen[key] = true
				values = append(values, val)
			}
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}

	return results
}

// BifurcationToASCII renders a sweep as a scatter of value against
// parameter index.
func BifurcationToASCII(data []BifurcationPoint, width, height int) string {
	if len(data) == 0 || width <= 0 || height <= 0 {
		return ""
	}

	var minVal, maxVal float64
	found := false
	for _, p := range data {
		for _, v := range p.Values {
			if !found {
				minVal, maxVal = v, v
				found = true
				continue
			}
			if v < minVal {
				minVal = v
			}
			if v > maxVal {
				maxVal = v
			}
		}
	}
	if !found {
		return ""
	}
	if maxVal == minVal {
		maxVal = minVal + 1
	}

	canvas := make([][]rune, height)
	for i := range canvas {
		canvas[i] = make([]rune, width)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for i, p := range data {
		col := i * width / len(data)
		if col >= width {
			col = width - 1
		}
		for _, v := range p.Values {
			row := height - 1 - int((v-minVal)/(maxVal-minVal)*float64(height-1))
			if row >= 0 && row < height && col >= 0 && col < width {
				canvas[row][col] = '•'
			}
		}
	}

	result := ""
	for _, row := range canvas {
		result += string(row) + "\n"
	}
	return result
}
