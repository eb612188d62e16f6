package export

import (
	"fmt"
	"math"
	"os"
	"strings"

	"github.com/san-kum/orbitsim/internal/dynamo"
)

var palette = []string{
	"#ffcc00", "#aaaaaa", "#e8c07d", "#3c8dff", "#ff5533",
	"#d9a066", "#f4d58d", "#7fdbff", "#4169e1", "#b39ddb",
}

// TrajectorySVG renders the x-y projection of every body's sampled path,
// one <path> per body, scaled to a width x height canvas. names labels the
// paths and may be shorter than the body count.
func TrajectorySVG(result *dynamo.Result, names []string, width, height int) string {
	if result == nil || result.Samples == 0 || result.Bodies() == 0 {
		return ""
	}

	minX, maxX := math.Inf(1), math.Inf(-1)
	minY, maxY := math.Inf(1), math.Inf(-1)
	for _, frame := range result.Positions[:result.Samples] {
		for _, p := range frame {
			minX = math.Min(minX, p.X())
			maxX = math.Max(maxX, p.X())
			minY = math.Min(minY, p.Y())
			maxY = math.Max(maxY, p.Y())
		}
	}

	// equal aspect so orbits stay round
	rng := math.Max(maxX-minX, maxY-minY)
	if rng == 0 {
		rng = 1
	}
	cx, cy := (minX+maxX)/2, (minY+maxY)/2
	rng *= 1.1
	scale := math.Min(float64(width), float64(height)) / rng

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for b := 0; b < result.Bodies(); b++ {
		name := fmt.Sprintf("body%d", b)
		if b < len(names) {
			name = names[b]
		}
		sb.WriteString(fmt.Sprintf(`<path id="%s" fill="none" stroke="%s" stroke-width="1" d="M`,
			name, palette[b%len(palette)]))

		for i, frame := range result.Positions[:result.Samples] {
			x := float64(width)/2 + (frame[b].X()-cx)*scale
			y := float64(height)/2 - (frame[b].Y()-cy)*scale
			if i == 0 {
				sb.WriteString(fmt.Sprintf("%.1f,%.1f", x, y))
			} else {
				sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
			}
		}
		sb.WriteString("\"/>\n")
	}

	sb.WriteString("</svg>")
	return sb.String()
}

func WriteTrajectorySVG(path string, result *dynamo.Result, names []string, width, height int) error {
	svg := TrajectorySVG(result, names, width, height)
	if svg == "" {
		return fmt.Errorf("no samples to render: %w", dynamo.ErrEmptySystem)
	}
	if err := os.WriteFile(path, []byte(svg), 0644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}
