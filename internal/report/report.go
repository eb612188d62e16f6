// Package report renders the terminal summary printed after a run.
package report

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/orbitsim/internal/dynamo"
	"github.com/san-kum/orbitsim/internal/storage"
)

const (
	plotWidth   = 70
	previewCols = 40
	previewRows = 16
)

func Render(meta storage.RunMetadata, result *dynamo.Result) string {
	var sb strings.Builder

	sb.WriteString(HeaderStyle.Render(Title.Render("orbitsim") + "  " + meta.Name))
	sb.WriteString("\n\n")

	info := []string{
		line("bodies", fmt.Sprintf("%d", len(meta.Bodies))),
		line("integrator", meta.Integrator),
		line("dt", fmt.Sprintf("%g", meta.Dt)),
		line("total time", fmt.Sprintf("%g", meta.TotalTime)),
		line("steps", fmt.Sprintf("%d", result.StepsTaken)),
		line("samples", fmt.Sprintf("%d", result.Samples)),
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		Panel.Render(strings.Join(info, "\n")),
		" ",
		Panel.Render(metricsTable(result.Metrics)),
	))
	sb.WriteString("\n\n")

	if orbits := OrbitPreview(result, previewCols, previewRows); orbits != "" {
		sb.WriteString(Panel.Render(strings.TrimRight(orbits, "\n")))
		sb.WriteString("\n")
	}
	if plot := EnergyPlot(result); plot != "" {
		sb.WriteString(plot)
		sb.WriteString("\n")
	}
	sb.WriteString(Separator(plotWidth))
	sb.WriteString("\n")
	return sb.String()
}

func line(label, value string) string {
	return MetricLabel.Render(fmt.Sprintf("%-11s", label)) + MetricValue.Render(value)
}

func metricsTable(m map[string]float64) string {
	if len(m) == 0 {
		return Subtle.Render("no metrics")
	}
	names := make([]string, 0, len(m))
	for name := range m {
		names = append(names, name)
	}
	sort.Strings(names)

	rows := make([]string, len(names))
	for i, name := range names {
		value := MetricValue.Render(fmt.Sprintf("%.3e", m[name]))
		if name == "energy_drift" {
			value = Grade(m[name]).Render(fmt.Sprintf("%.3e", m[name]))
		}
		rows[i] = MetricLabel.Render(fmt.Sprintf("%-16s", name)) + value
	}
	return strings.Join(rows, "\n")
}

// EnergyPlot plots (E - E0)/|E0| over the samples, rescaled by a power of
// ten so the axis labels stay readable.
func EnergyPlot(result *dynamo.Result) string {
	if result == nil || result.Samples < 2 {
		return ""
	}
	rel := result.RelativeEnergyError()[:result.Samples]

	peak := 0.0
	for _, v := range rel {
		peak = math.Max(peak, math.Abs(v))
	}
	exp := 0
	if peak > 0 && !math.IsInf(peak, 0) && !math.IsNaN(peak) {
		exp = int(math.Floor(math.Log10(peak)))
	}

	data := make([]float64, len(rel))
	scale := math.Pow(10, float64(-exp))
	for i, v := range rel {
		data[i] = v * scale
	}

	caption := "relative energy error"
	if exp != 0 {
		caption = fmt.Sprintf("relative energy error (x1e%d)", exp)
	}
	return asciigraph.Plot(data,
		asciigraph.Height(10),
		asciigraph.Width(plotWidth),
		asciigraph.Precision(2),
		asciigraph.Caption(caption),
	)
}
