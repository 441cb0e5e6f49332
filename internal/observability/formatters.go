// Package observability provides formatted output utilities for verbose CLI mode.
package observability

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/rainwater-advisor/internal/advisor"
	"github.com/jonathan/rainwater-advisor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// barWidth is the width of a full-scale bar
	barWidth = 20
)

// Printer handles formatted output for verbose mode
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	for _, line := range strings.Split(content, "\n") {
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, truncate(line, boxWidth-4))
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

func truncate(s string, width int) string {
	if utf8.RuneCountInString(s) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-3]) + "..."
}

// bar renders value/max as a fixed-width bar.
func bar(value, max float64) string {
	if max <= 0 || value <= 0 {
		return strings.Repeat("·", barWidth)
	}
	filled := int(value / max * barWidth)
	filled = min(barWidth, filled)
	return strings.Repeat("█", filled) + strings.Repeat("·", barWidth-filled)
}

// PrintRainfall outputs the rainfall profile with a monthly chart.
func (p *Printer) PrintRainfall(profile *types.RainfallProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	if profile.Region != "" {
		sb.WriteString(fmt.Sprintf("Region:   %s (%s)\n", profile.Region, profile.RegionClass))
	}
	sb.WriteString(fmt.Sprintf("Annual:   %.0f mm\n", profile.AnnualRainfallMm))
	sb.WriteString(fmt.Sprintf("Source:   %s (reliability %.0f%%)\n", profile.Source, profile.Reliability*100))

	peak := 0.0
	for _, m := range profile.Monthly {
		peak = max(peak, m.RainfallMm)
	}
	if len(profile.Monthly) > 0 {
		sb.WriteString("\n")
	}
	for _, m := range profile.Monthly {
		sb.WriteString(fmt.Sprintf("%-3s %s %6.1f mm\n", m.Month, bar(m.RainfallMm, peak), m.RainfallMm))
	}

	p.printBox("RAINFALL PROFILE", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGroundwater outputs the groundwater profile.
func (p *Printer) PrintGroundwater(profile *types.GroundwaterProfile) {
	if profile == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Depth:    %.1f m\n", profile.DepthM))
	sb.WriteString(fmt.Sprintf("Aquifer:  %s\n", profile.AquiferType))
	sb.WriteString(fmt.Sprintf("Quality:  %s\n", profile.Quality))
	sb.WriteString(fmt.Sprintf("Recharge: %.0f%% of rainfall\n", profile.RechargeRatePct))
	sb.WriteString(fmt.Sprintf("Seasonal: pre %.1fm / monsoon %.1fm / post %.1fm\n",
		profile.SeasonalVariation.PreMonsoon, profile.SeasonalVariation.Monsoon, profile.SeasonalVariation.PostMonsoon))
	sb.WriteString(fmt.Sprintf("Source:   %s (confidence %.0f%%)", profile.Source, profile.Confidence*100))

	p.printBox("GROUNDWATER PROFILE", sb.String())
}

// PrintRecommendation outputs the chosen system, sub-scores and reasoning.
func (p *Printer) PrintRecommendation(rec *types.Recommendation) {
	if rec == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("System:      %s\n", rec.SystemType.Label()))
	sb.WriteString(fmt.Sprintf("Feasibility: %d/100\n", rec.FeasibilityScore))
	sb.WriteString(fmt.Sprintf("Confidence:  %d/100\n\n", rec.Confidence))

	scores := []struct {
		name  string
		value int
	}{
		{"Rainfall", rec.ScoreBreakdown.Rainfall},
		{"Roof", rec.ScoreBreakdown.RoofSuitability},
		{"Space", rec.ScoreBreakdown.SpaceAvailability},
		{"Groundwater", rec.ScoreBreakdown.GroundwaterConditions},
		{"Cost", rec.ScoreBreakdown.CostEffectiveness},
	}
	for _, s := range scores {
		sb.WriteString(fmt.Sprintf("%-12s %s %3d\n", s.name, bar(float64(s.value), 100), s.value))
	}

	if len(rec.Reasoning) > 0 {
		sb.WriteString("\n")
		for _, reason := range rec.Reasoning {
			sb.WriteString(fmt.Sprintf("• %s\n", reason))
		}
	}

	if len(rec.AlternativeOptions) > 0 {
		labels := make([]string, 0, len(rec.AlternativeOptions))
		for _, a := range rec.AlternativeOptions {
			labels = append(labels, a.Label())
		}
		sb.WriteString(fmt.Sprintf("\nAlternatives: %s\n", strings.Join(labels, ", ")))
	}

	p.printBox("RECOMMENDATION", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintStructure outputs the sized structure and its costs.
func (p *Printer) PrintStructure(specs *types.StructureSpecs) {
	if specs == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Type:        %s\n", specs.Type))
	sb.WriteString(fmt.Sprintf("Capacity:    %d L\n", specs.Capacity))

	d := specs.Dimensions
	if d.Diameter > 0 {
		sb.WriteString(fmt.Sprintf("Dimensions:  ⌀ %.2f m × %.2f m high\n", d.Diameter, d.Height))
	} else {
		sb.WriteString(fmt.Sprintf("Dimensions:  %.2f × %.2f × %.2f m\n", d.Length, d.Width, d.Height))
	}
	sb.WriteString(fmt.Sprintf("Cost:        %d\n", specs.EstimatedCost))
	sb.WriteString(fmt.Sprintf("Maintenance: %d / year\n", specs.MaintenanceCost))
	sb.WriteString(fmt.Sprintf("Install:     %d days\n", specs.InstallationTime))

	if len(specs.Materials) > 0 {
		sb.WriteString("\nMaterials:\n")
		for _, m := range specs.Materials {
			sb.WriteString(fmt.Sprintf("  • %s\n", m))
		}
	}

	p.printBox("STRUCTURE SPECIFICATIONS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintHarvest outputs the supply/demand summary.
func (p *Printer) PrintHarvest(h *types.HarvestSummary) {
	if h == nil {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Potential harvest: %d L/year\n", h.PotentialHarvestLiters))
	sb.WriteString(fmt.Sprintf("Household demand:  %d L/year\n", h.AnnualDemandLiters))
	sb.WriteString(fmt.Sprintf("Coverage:          %s %.1f%%\n", bar(h.DemandCoveragePercent, 100), h.DemandCoveragePercent))
	if h.PaybackYears > 0 {
		sb.WriteString(fmt.Sprintf("Payback:           %.1f years", h.PaybackYears))
	} else {
		sb.WriteString("Payback:           n/a")
	}

	p.printBox("HARVEST SUMMARY", sb.String())
}

// PrintAssessment prints every section of a full assessment.
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) PrintAssessment(a *types.Assessment) {
	if a == nil {
		return
	}
	fmt.Fprintf(p.out, "Assessment %s\n", a.ID)
	p.PrintRainfall(&a.Rainfall)
	p.PrintGroundwater(&a.Groundwater)
	p.PrintRecommendation(&a.Recommendation)
	p.PrintStructure(&a.Structure)
	p.PrintHarvest(&a.Harvest)
}

// PrintSweep outputs a sweep as a table, one row per value.
func (p *Printer) PrintSweep(param string, rows []advisor.SweepRow) {
	if len(rows) == 0 {
		return
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-10s %-5s %-12s %s\n", param, "score", "cost", "system"))
	for _, row := range rows {
		if row.Error != "" {
			sb.WriteString(fmt.Sprintf("%-10g ⚠ %s\n", row.Value, row.Error))
			continue
		}
		sb.WriteString(fmt.Sprintf("%-10g %-5d %-12d %s\n", row.Value, row.FeasibilityScore, row.EstimatedCost, row.SystemType.Label()))
	}

	p.printBox("PARAMETER SWEEP", strings.TrimSuffix(sb.String(), "\n"))
}
