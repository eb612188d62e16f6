package main

import (
	"fmt"
	"path/filepath"

	"github.com/san-kum/orbitsim/internal/config"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/ephem"
	"github.com/san-kum/orbitsim/internal/export"
	"github.com/san-kum/orbitsim/internal/integrators"
	"github.com/san-kum/orbitsim/internal/metrics"
	"github.com/san-kum/orbitsim/internal/physics"
	"github.com/san-kum/orbitsim/internal/report"
	"github.com/san-kum/orbitsim/internal/sim"
	"github.com/san-kum/orbitsim/internal/storage"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const (
	svgFile = "orbits.svg"
	svgSize = 800
)

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, found, err := config.LoadOrDefault(config.DefaultFile)
	if err != nil {
		return err
	}

	log, err := newLogger(cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	if found {
		log.Info("config loaded", zap.String("file", config.DefaultFile), zap.String("preset", cfg.Preset))
	} else {
		log.Info("no config file, using default preset", zap.String("preset", cfg.Preset))
	}

	meta, result, err := execute(cfg, log)
	if err != nil {
		log.Error("run failed", zap.Error(err))
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), report.Render(meta, result))
	return nil
}

// execute runs cfg to completion and persists it into cfg.OutputDir.
func execute(cfg *config.Config, log *zap.Logger) (storage.RunMetadata, *dynamo.Result, error) {
	var meta storage.RunMetadata

	if err := ephem.Load(cfg, log); err != nil {
		return meta, nil, err
	}
	if err := cfg.Validate(); err != nil {
		return meta, nil, fmt.Errorf("invalid config: %w", err)
	}

	sys, err := cfg.NewSystem()
	if err != nil {
		return meta, nil, err
	}

	integ := integrators.NewSymplecticEuler()
	driver := sim.New(sys, integ, log)
	driver.AddMetric(metrics.NewEnergyDrift())
	driver.AddMetric(metrics.NewMomentumDrift())
	driver.AddMetric(metrics.NewStability(stabilityRadius(sys)))

	result, err := driver.Run(cfg.RunConfig())
	if err != nil {
		return meta, nil, err
	}

	_, _, masses := cfg.Arrays()
	meta = storage.RunMetadata{
		Name:           cfg.Name,
		Integrator:     integ.Name(),
		G:              cfg.G,
		Dt:             cfg.Dt,
		TotalTime:      cfg.TotalTime,
		SampleInterval: cfg.SampleInterval,
		Bodies:         cfg.BodyNames(),
		Masses:         masses,
	}

	st := storage.New(cfg.OutputDir, log)
	if err := st.Save(meta, result); err != nil {
		return meta, nil, err
	}

	if cfg.SVG {
		path := filepath.Join(cfg.OutputDir, svgFile)
		if err := export.WriteTrajectorySVG(path, result, meta.Bodies, svgSize, svgSize); err != nil {
			return meta, nil, err
		}
		log.Info("trajectory plot written", zap.String("file", path))
	}

	meta.Steps = result.StepsTaken
	meta.Samples = result.Samples
	meta.Metrics = result.Metrics
	return meta, result, nil
}

// stabilityRadius is ten times the initial extent of the system around its
// barycenter.
func stabilityRadius(sys *physics.System) float64 {
	com := sys.CenterOfMass()
	extent := 0.0
	for i := 0; i < sys.N(); i++ {
		if r := sys.Position(i).Sub(com).Len(); r > extent {
			extent = r
		}
	}
	if extent == 0 {
		return 1
	}
	return 10 * extent
}
