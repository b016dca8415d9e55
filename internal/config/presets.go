package config

// Presets are ready-made run configurations. Render settings fall back to
// the defaults unless a preset narrows the view.
var Presets = map[string]*Config{
	// The classic thousand-day run of the whole system.
	"classic": {
		Source: "catalog", Epoch: DefaultEpoch,
		Bodies: []string{
			"sun", "mercury", "venus", "earth", "mars",
			"jupiter", "saturn", "uranus", "neptune", "pluto",
		},
		Dt: 60, DurationDays: 1000, StepsPerFrame: 5000,
		Render: RenderConfig{Output: DefaultOutput, CanvasSize: 250e9, BodyScale: 250, Width: 500, Height: 500},
	},
	// Inner planets at a finer frame cadence.
	"inner": {
		Source: "catalog", Epoch: DefaultEpoch,
		Bodies: []string{"sun", "mercury", "venus", "earth", "mars"},
		Dt:     60, DurationDays: 400, StepsPerFrame: 2000,
		Render: RenderConfig{Output: DefaultOutput, CanvasSize: 250e9, BodyScale: 250, Width: 500, Height: 500},
	},
	// One Earth year of a clean two-body orbit, handy for drift checks.
	"two-body": {
		Source: "catalog", Epoch: DefaultEpoch,
		Bodies: []string{"sun", "earth"},
		Dt:     60, DurationDays: 366, StepsPerFrame: 2000,
		Render: RenderConfig{Output: DefaultOutput, CanvasSize: 200e9, BodyScale: 250, Width: 500, Height: 500},
	},
}

func GetPreset(name string) *Config {
	return Presets[name]
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
