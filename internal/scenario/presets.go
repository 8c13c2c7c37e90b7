package scenario

// Presets mirrors the teacher's model/preset-name table, keyed by scenario
// family then variant, seeded with the engine's canonical end-to-end cases
// (§8): free fall, a bounded orbit, a pendulum, an elastic bump, and a
// deliberately cyclic equation pair.
var Presets = map[string]map[string]*Scene{
	"freefall": {
		"default": {
			Bodies: []BodyConfig{
				{Name: "A", Mass: 1, Width: 1, Height: 1, Y: 100},
			},
			Equations: []string{"a_A = -9.8*hatj"},
			Dt:        DefaultDt,
			Ticks:     300,
		},
		"heavy_gravity": {
			Bodies: []BodyConfig{
				{Name: "A", Mass: 1, Width: 1, Height: 1, Y: 500},
			},
			Equations: []string{"a_A = -100*hatj"},
			Dt:        DefaultDt,
			Ticks:     300,
		},
	},
	"orbital": {
		"bounded": {
			Bodies: []BodyConfig{
				{Name: "Sat", Mass: 1, Width: 1, Height: 1, X: 300, Y: 300, VX: 120, VY: -120},
				{Name: "Center", Mass: 1e13, Width: 1, Height: 1},
			},
			Equations: []string{
				"r = sqrt(x_Sat^2 + y_Sat^2)",
				"a_Sat = (-100000/(r*r))*(x_Sat/r)*hati + (-100000/(r*r))*(y_Sat/r)*hatj",
			},
			Dt:    DefaultDt,
			Ticks: 1200,
		},
	},
	"pendulum": {
		// torque_driven is the spec's pendulum (spec.md:248): a torque
		// equation drives the bob's angular DoF directly (alpha_Bob via
		// hatk, the rotational/AxisZ basis vector), and the bob's
		// Cartesian position is a kinematic function of that angle —
		// s_x_Bob = L*sin(theta_Bob), s_y_Bob = -L*cos(theta_Bob) — the
		// textbook simple-pendulum equation theta'' = -(g/L)*sin(theta).
		"torque_driven": {
			Bodies: []BodyConfig{
				{Name: "Bob", Mass: 1, Width: 0.2, Height: 0.2, Theta: 0.3},
			},
			Equations: []string{
				"alpha_Bob = (-9.8)*sin(theta_Bob)*hatk",
				"s_x_Bob = sin(theta_Bob)",
				"s_y_Bob = -cos(theta_Bob)",
			},
			Dt:    DefaultDt,
			Ticks: 180,
		},
		// small_angle is a linear Cartesian approximation (gravity plus a
		// velocity-squared-over-radius centripetal-correction term) kept
		// as an additional scenario alongside torque_driven, not as a
		// stand-in for it — see DESIGN.md.
		"small_angle": {
			Bodies: []BodyConfig{
				{Name: "Bob", Mass: 1, Width: 0.2, Height: 0.2, X: 0.2, Y: -0.98},
			},
			Equations: []string{
				"L = sqrt(x_Bob^2 + y_Bob^2)",
				"speedSq = v_x_Bob^2 + v_y_Bob^2",
				"a_Bob = (-9.8)*hatj + (speedSq/L)*((-x_Bob/L)*hati + (-y_Bob/L)*hatj)",
			},
			Dt:    DefaultDt,
			Ticks: 600,
		},
	},
	"elastic_bump": {
		"head_on": {
			Bodies: []BodyConfig{
				{Name: "A", Mass: 1, Width: 1, Height: 1, X: -1, VX: 5},
				{Name: "B", Mass: 1, Width: 1, Height: 1, X: 1, VX: -5},
			},
			Equations:   []string{"a_A = 0*hati", "a_B = 0*hati"},
			Restitution: 0.9,
			Dt:          DefaultDt,
			Ticks:       60,
		},
		"unequal_mass": {
			Bodies: []BodyConfig{
				{Name: "A", Mass: 4, Width: 1.5, Height: 1.5, X: -2, VX: 3},
				{Name: "B", Mass: 1, Width: 1, Height: 1, X: 2, VX: -3},
			},
			Equations:   []string{"a_A = 0*hati", "a_B = 0*hati"},
			Restitution: 0.5,
			Dt:          DefaultDt,
			Ticks:       60,
		},
	},
	"cycle": {
		"mutual_definition": {
			Bodies: []BodyConfig{
				{Name: "A", Mass: 1, Width: 1, Height: 1},
			},
			Equations: []string{"a_x_A = b_x_A + 1", "b_x_A = a_x_A + 1"},
			Dt:        DefaultDt,
			Ticks:     10,
		},
	},
}

// GetPreset returns the named preset within a family, or nil if either is
// unknown.
func GetPreset(family, name string) *Scene {
	variants, ok := Presets[family]
	if !ok {
		return nil
	}
	sc, ok := variants[name]
	if !ok {
		return nil
	}
	return sc
}

// ListPresets returns the preset names within a family, or nil if the
// family is unknown.
func ListPresets(family string) []string {
	variants, ok := Presets[family]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(variants))
	for name := range variants {
		names = append(names, name)
	}
	return names
}
