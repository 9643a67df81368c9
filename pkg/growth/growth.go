// Package growth derives how far a planting has progressed through its
// species' expected growth duration.
package growth

import (
	"math"
	"time"

	"agroalert.dev/dashboard-service/pkg/models"
)

const day = 24 * time.Hour

type Stage string

const (
	StageUnknown      Stage = "unknown"
	StageEarlyGrowth  Stage = "early_growth"
	StageVegetative   Stage = "vegetative"
	StageFlowering    Stage = "flowering"
	StageMaturity     Stage = "maturity"
	StageHarvestReady Stage = "harvest_ready"
)

type Progress struct {
	// ElapsedDays is the unclamped whole-day count; negative for future plantings.
	ElapsedDays int     `json:"elapsed_days"`
	DaysGrown   int     `json:"days_grown"`
	GrowthDays  int     `json:"growth_days"`
	Percent     float64 `json:"percent"`
	Stage       Stage   `json:"stage"`
}

// Rounded is the percentage shown on progress bars.
func (p Progress) Rounded() int {
	return int(math.Round(p.Percent))
}

// Calculate computes progress at now. A missing planting date counts as zero
// days grown, a missing species (or a non-positive duration) as zero percent.
// Plantings dated in the future are clamped to zero days and zero percent.
func Calculate(plantingDate *models.Date, crop *models.Crop, now time.Time) Progress {
	p := Progress{Stage: StageUnknown}

	if plantingDate != nil && !plantingDate.IsZero() {
		p.ElapsedDays = int(math.Floor(float64(now.Sub(plantingDate.Time)) / float64(day)))
		p.DaysGrown = max(p.ElapsedDays, 0)
	}

	if crop == nil || crop.GrowthDays <= 0 {
		return p
	}

	p.GrowthDays = crop.GrowthDays
	p.Percent = math.Min(100, 100*float64(p.DaysGrown)/float64(crop.GrowthDays))
	p.Stage = StageFor(p.Percent)
	return p
}

// ForPlanting is Calculate applied to a planting and its embedded species.
func ForPlanting(fc models.FarmerCrop, now time.Time) Progress {
	return Calculate(fc.PlantingDate, fc.Crop, now)
}

func StageFor(percent float64) Stage {
	switch {
	case percent >= 100:
		return StageHarvestReady
	case percent >= 75:
		return StageMaturity
	case percent >= 50:
		return StageFlowering
	case percent >= 25:
		return StageVegetative
	default:
		return StageEarlyGrowth
	}
}

// Max returns the highest percentage, or 100 for no plantings so chart
// scales stay sensible.
func Max(progress []Progress) float64 {
	if len(progress) == 0 {
		return 100
	}
	highest := 0.0
	for _, p := range progress {
		highest = math.Max(highest, p.Percent)
	}
	return highest
}
