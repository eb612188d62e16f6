// Package ephem replaces configured initial conditions with barycentric
// state vectors read from a JPL DE binary ephemeris.
package ephem

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/mshafiee/jpleph"
	"github.com/san-kum/orbitsim/internal/config"
	"go.uber.org/zap"
)

var ErrEpochRange = errors.New("ephem: epoch outside ephemeris coverage")

var planets = map[string]jpleph.Planet{
	"mercury": jpleph.Mercury,
	"venus":   jpleph.Venus,
	"earth":   jpleph.Earth,
	"mars":    jpleph.Mars,
	"jupiter": jpleph.Jupiter,
	"saturn":  jpleph.Saturn,
	"uranus":  jpleph.Uranus,
	"neptune": jpleph.Neptune,
	"pluto":   jpleph.Pluto,
	"moon":    jpleph.Moon,
	"sun":     jpleph.Sun,
	"emb":     jpleph.EarthMoonBarycenter,
}

// Source yields the barycentric position (AU) and velocity (AU/day) of a
// named body at a Julian date. ok is false for names it does not know.
type Source interface {
	StateAt(jd float64, name string) (pos, vel mgl64.Vec3, ok bool, err error)
	Close() error
}

// JPL is a Source backed by a DE file.
type JPL struct {
	eph        *jpleph.Ephemeris
	start, end float64
}

func Open(path string) (*JPL, error) {
	eph, err := jpleph.NewEphemeris(path, true)
	if err != nil {
		return nil, fmt.Errorf("open ephemeris %s: %w", path, err)
	}
	return &JPL{
		eph:   eph,
		start: eph.GetEphemerisDouble(jpleph.EphemerisStartJD),
		end:   eph.GetEphemerisDouble(jpleph.EphemerisEndJD),
	}, nil
}

func (j *JPL) StateAt(jd float64, name string) (mgl64.Vec3, mgl64.Vec3, bool, error) {
	body, ok := planets[strings.ToLower(name)]
	if !ok {
		return mgl64.Vec3{}, mgl64.Vec3{}, false, nil
	}
	if jd < j.start || jd > j.end {
		return mgl64.Vec3{}, mgl64.Vec3{}, true,
			fmt.Errorf("JD %.1f not in [%.1f, %.1f]: %w", jd, j.start, j.end, ErrEpochRange)
	}

	pos, vel, err := j.eph.CalculatePV(jd, body, jpleph.CenterSolarSystemBarycenter, true)
	if err != nil {
		return mgl64.Vec3{}, mgl64.Vec3{}, true, fmt.Errorf("state of %s at JD %.1f: %w", name, jd, err)
	}
	return mgl64.Vec3{pos.X, pos.Y, pos.Z}, mgl64.Vec3{vel.DX, vel.DY, vel.DZ}, true, nil
}

func (j *JPL) Close() error {
	return j.eph.Close()
}

// Apply overwrites the position and velocity of every body src knows at
// cfg.Ephemeris.EpochJD. Bodies it does not know keep their configured
// state. It returns the number of bodies updated.
func Apply(cfg *config.Config, src Source, log *zap.Logger) (int, error) {
	if log == nil {
		log = zap.NewNop()
	}

	jd := cfg.Ephemeris.EpochJD
	updated := 0
	for i := range cfg.Bodies {
		b := &cfg.Bodies[i]
		pos, vel, ok, err := src.StateAt(jd, b.Name)
		if err != nil {
			return updated, err
		}
		if !ok {
			log.Warn("body not in ephemeris, keeping configured state", zap.String("body", b.Name))
			continue
		}
		b.Position = []float64{pos[0], pos[1], pos[2]}
		b.Velocity = []float64{vel[0], vel[1], vel[2]}
		updated++
	}

	log.Info("initial conditions from ephemeris",
		zap.Float64("epoch_jd", jd),
		zap.Int("bodies", updated),
	)
	return updated, nil
}

// Load opens cfg.Ephemeris.File and applies it. It is a no-op when no file
// is configured.
func Load(cfg *config.Config, log *zap.Logger) error {
	if cfg.Ephemeris.File == "" {
		return nil
	}

	src, err := Open(cfg.Ephemeris.File)
	if err != nil {
		return err
	}
	defer src.Close()

	_, err = Apply(cfg, src, log)
	return err
}
