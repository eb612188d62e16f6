package config

import (
	"sort"

	"github.com/san-kum/orbitsim/internal/physics"
)

// Solar system presets use AU, AU/day, solar masses and days. The state
// vectors are heliocentric; the driver moves them to the barycenter.
var Presets = map[string]*Config{
	"solar_system": {
		Name:           "solar_system",
		G:              physics.GaussianG,
		TotalTime:      DefaultTotalTime,
		Dt:             DefaultDt,
		SampleInterval: DefaultSampleInterval,
		OutputDir:      DefaultOutputDir,
		LogLevel:       DefaultLogLevel,
		SVG:            true,
		Ephemeris:      EphemerisConfig{EpochJD: DefaultEpochJD},
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: 1.0,
				Position: []float64{0, 0, 0},
				Velocity: []float64{0, 0, 0}},
			{Name: "Mercury", Mass: 1.6601141530543488e-07,
				Position: []float64{-0.1300936, -0.4472876, -0.0245820},
				Velocity: []float64{0.0213822, -0.0064422, -0.0024828}},
			{Name: "Venus", Mass: 2.4478382877847715e-06,
				Position: []float64{-0.7183022, -0.0326412, 0.0410139},
				Velocity: []float64{0.0007835, -0.0203036, -0.0003235}},
			{Name: "Earth", Mass: 3.0034896149157645e-06,
				Position: []float64{-0.1771355, 0.9672465, -0.0000039},
				Velocity: []float64{-0.0172064, -0.0031519, 0.0000001}},
			{Name: "Mars", Mass: 3.2271560375549977e-07,
				Position: []float64{1.3907159, -0.0134165, -0.0344479},
				Velocity: []float64{0.0006772, 0.0151800, 0.0003021}},
			{Name: "Jupiter", Mass: 9.5479194e-04,
				Position: []float64{4.0011742, 2.9385770, -0.1017860},
				Velocity: []float64{-0.0045653, 0.0064472, 0.0000752}},
			{Name: "Saturn", Mass: 2.8588598e-04,
				Position: []float64{6.4064117, 6.5699908, -0.3690617},
				Velocity: []float64{-0.0042862, 0.0038846, 0.0001028}},
			{Name: "Uranus", Mass: 4.3662440e-05,
				Position: []float64{14.4318194, -13.7343095, -0.2381003},
				Velocity: []float64{0.0026780, 0.0026871, -0.0000249}},
			{Name: "Neptune", Mass: 5.1513890e-05,
				Position: []float64{16.8121361, -24.9916152, 0.1272551},
				Velocity: []float64{0.0025785, 0.0017770, -0.0000952}},
			{Name: "Pluto", Mass: 7.396e-09,
				Position: []float64{-9.8753281, -27.9789087, 5.8504661},
				Velocity: []float64{0.0030341, -0.0011343, -0.0007540}},
		},
	},
	"outer_planets": {
		Name:           "outer_planets",
		G:              physics.GaussianG,
		TotalTime:      1000.0 * physics.DaysPerYear,
		Dt:             10.0,
		SampleInterval: physics.DaysPerYear,
		OutputDir:      DefaultOutputDir,
		LogLevel:       DefaultLogLevel,
		SVG:            true,
		Ephemeris:      EphemerisConfig{EpochJD: DefaultEpochJD},
		Bodies: []BodyConfig{
			{Name: "Sun", Mass: 1.0,
				Position: []float64{0, 0, 0},
				Velocity: []float64{0, 0, 0}},
			{Name: "Jupiter", Mass: 9.54791938424326609e-04,
				Position: []float64{4.84143144246472090e+00, -1.16032004402742839e+00, -1.03622044471123109e-01},
				Velocity: []float64{1.66007664274403694e-03, 7.69901118419740425e-03, -6.90460016972063023e-05}},
			{Name: "Saturn", Mass: 2.85885980666130812e-04,
				Position: []float64{8.34336671824457987e+00, 4.12479856412430479e+00, -4.03523417114321381e-01},
				Velocity: []float64{-2.76742510726862411e-03, 4.99852801234917238e-03, 2.30417297573763929e-05}},
			{Name: "Uranus", Mass: 4.36624404335156298e-05,
				Position: []float64{1.28943695621391310e+01, -1.51111514016986312e+01, -2.23307578892655734e-01},
				Velocity: []float64{2.96460137564761618e-03, 2.37847173959480950e-03, -2.96589568540237556e-05}},
			{Name: "Neptune", Mass: 5.15138902046611451e-05,
				Position: []float64{1.53796971148509165e+01, -2.59193146099879641e+01, 1.79258772950371181e-01},
				Velocity: []float64{2.68067772490389322e-03, 1.62824170038242295e-03, -9.51592254519715870e-05}},
		},
	},
	"two_body": {
		Name:           "two_body",
		G:              1.0,
		TotalTime:      20 * 3.141592653589793,
		Dt:             1e-3,
		SampleInterval: 0.05,
		OutputDir:      DefaultOutputDir,
		LogLevel:       DefaultLogLevel,
		SVG:            true,
		Bodies: []BodyConfig{
			{Name: "primary", Mass: 1.0,
				Position: []float64{0, 0, 0},
				Velocity: []float64{0, 0, 0}},
			{Name: "secondary", Mass: 1e-3,
				Position: []float64{1, 0, 0},
				Velocity: []float64{0, 1.0004998750624610, 0}},
		},
	},
	// Chenciner-Montgomery figure-eight choreography, period ~6.3259
	"figure_eight": {
		Name:           "figure_eight",
		G:              1.0,
		TotalTime:      20.0,
		Dt:             1e-4,
		SampleInterval: 0.01,
		OutputDir:      DefaultOutputDir,
		LogLevel:       DefaultLogLevel,
		SVG:            true,
		Bodies: []BodyConfig{
			{Name: "a", Mass: 1.0,
				Position: []float64{0.97000436, -0.24308753, 0},
				Velocity: []float64{0.466203685, 0.43236573, 0}},
			{Name: "b", Mass: 1.0,
				Position: []float64{-0.97000436, 0.24308753, 0},
				Velocity: []float64{0.466203685, 0.43236573, 0}},
			{Name: "c", Mass: 1.0,
				Position: []float64{0, 0, 0},
				Velocity: []float64{-0.93240737, -0.86473146, 0}},
		},
	},
}

// GetPreset returns a copy of the named preset, or nil.
func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := p.Clone()
	cfg.Preset = name
	return cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
