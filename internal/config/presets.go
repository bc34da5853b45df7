package config

var Presets = map[string]map[string]*Config{
	"vanderpol": {
		"limitcycle": {
			System: "vanderpol", Modes: 33, Freq: 0.94, Method: "lbfgs", MaxIterations: 500,
			Seed: SeedConfig{Type: "ellipse", Center: []float64{0, 0}, AxisA: []float64{2, 0}, AxisB: []float64{0, -2.7}},
		},
		"flow": {
			System: "vanderpol", Modes: 33, Freq: 0.94, Method: "lbfgs", MaxIterations: 500,
			Seed: SeedConfig{Type: "flow", X0: []float64{2, 0}, Period: 6.66},
		},
		"stiff": {
			System: "vanderpol", Params: map[string]float64{"mu": 3.0},
			Modes: 65, Freq: 0.7, Method: "lbfgs", MaxIterations: 1000,
			Seed: SeedConfig{Type: "flow", X0: []float64{2, 0}, Period: 8.9},
		},
	},
	"duffing": {
		"well": {
			System: "duffing", Modes: 17, Freq: 1.41, Method: "lbfgs", MaxIterations: 500,
			Mean: []float64{1, 0},
			Seed: SeedConfig{Type: "ellipse", Center: []float64{0, 0}, AxisA: []float64{0.3, 0}, AxisB: []float64{0, -0.4}},
		},
	},
	"rotation": {
		"circle": {
			System: "rotation", Modes: 9, Freq: 1.1, Method: "lbfgs", MaxIterations: 200,
			Seed: SeedConfig{Type: "ellipse", Center: []float64{0, 0}, AxisA: []float64{1, 0}, AxisB: []float64{0, 1}},
		},
	},
	"lorenz": {
		"short": {
			System: "lorenz", Modes: 65, Freq: 4.03, Method: "lbfgs", MaxIterations: 2000,
			Seed: SeedConfig{Type: "flow", X0: []float64{-13.76, -19.58, 27}, Period: 1.5587},
		},
	},
}

func GetPreset(system, preset string) *Config {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	cfg, ok := systemPresets[preset]
	if !ok {
		return nil
	}
	return cfg
}

func ListPresets(system string) []string {
	systemPresets, ok := Presets[system]
	if !ok {
		return nil
	}
	names := make([]string, 0, len(systemPresets))
	for name := range systemPresets {
		names = append(names, name)
	}
	return names
}
