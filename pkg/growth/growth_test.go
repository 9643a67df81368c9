package growth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"agroalert.dev/dashboard-service/pkg/models"
)

var now = time.Date(2025, time.June, 15, 14, 30, 0, 0, time.UTC)

func plantedDaysAgo(days int) *models.Date {
	d := now.AddDate(0, 0, -days)
	date := models.NewDate(d.Year(), d.Month(), d.Day())
	return &date
}

func TestCalculateHalfway(t *testing.T) {
	p := Calculate(plantedDaysAgo(30), &models.Crop{GrowthDays: 60}, now)

	assert.Equal(t, 30, p.DaysGrown)
	assert.Equal(t, 50.0, p.Percent)
	assert.Equal(t, 50, p.Rounded())
	assert.Equal(t, StageFlowering, p.Stage)
}

func TestCalculateClampsAtHundred(t *testing.T) {
	p := Calculate(plantedDaysAgo(90), &models.Crop{GrowthDays: 60}, now)

	assert.Equal(t, 90, p.DaysGrown)
	assert.Equal(t, 100.0, p.Percent)
	assert.Equal(t, StageHarvestReady, p.Stage)
}

func TestCalculateMissingInputs(t *testing.T) {
	noDate := Calculate(nil, &models.Crop{GrowthDays: 60}, now)
	assert.Equal(t, 0, noDate.DaysGrown)
	assert.Equal(t, 0.0, noDate.Percent)

	noCrop := Calculate(plantedDaysAgo(10), nil, now)
	assert.Equal(t, 10, noCrop.DaysGrown)
	assert.Equal(t, 0.0, noCrop.Percent)
	assert.Equal(t, StageUnknown, noCrop.Stage)

	zeroDuration := Calculate(plantedDaysAgo(10), &models.Crop{GrowthDays: 0}, now)
	assert.Equal(t, 0.0, zeroDuration.Percent)
}

func TestCalculateFuturePlantingIsClamped(t *testing.T) {
	p := Calculate(plantedDaysAgo(-5), &models.Crop{GrowthDays: 60}, now)

	assert.Equal(t, -5, p.ElapsedDays)
	assert.Equal(t, 0, p.DaysGrown)
	assert.Equal(t, 0.0, p.Percent)
	assert.Equal(t, StageEarlyGrowth, p.Stage)
}

func TestCalculateFloorsPartialDays(t *testing.T) {
	planted := models.NewDate(2025, time.June, 14)
	almost := time.Date(2025, time.June, 15, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, Calculate(&planted, &models.Crop{GrowthDays: 10}, almost).DaysGrown)

	sameDay := time.Date(2025, time.June, 14, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, 0, Calculate(&planted, &models.Crop{GrowthDays: 10}, sameDay).DaysGrown)
}

func TestPercentBoundedAndNonDecreasing(t *testing.T) {
	planted := models.NewDate(2025, time.January, 1)
	for _, growthDays := range []int{1, 7, 60, 120, 365} {
		crop := &models.Crop{GrowthDays: growthDays}
		previous := -1.0
		for offset := 0; offset < 500; offset += 3 {
			at := planted.Add(time.Duration(offset) * 7 * time.Hour)
			p := Calculate(&planted, crop, at)
			assert.GreaterOrEqual(t, p.Percent, 0.0)
			assert.LessOrEqual(t, p.Percent, 100.0)
			assert.GreaterOrEqual(t, p.Percent, previous, "growth_days=%d offset=%d", growthDays, offset)
			previous = p.Percent
		}
	}
}

func TestStageBoundaries(t *testing.T) {
	cases := map[float64]Stage{
		0:     StageEarlyGrowth,
		24.99: StageEarlyGrowth,
		25:    StageVegetative,
		50:    StageFlowering,
		74.9:  StageFlowering,
		75:    StageMaturity,
		99.9:  StageMaturity,
		100:   StageHarvestReady,
	}
	for percent, want := range cases {
		assert.Equal(t, want, StageFor(percent), "percent %v", percent)
	}
}

func TestMax(t *testing.T) {
	assert.Equal(t, 100.0, Max(nil))
	assert.Equal(t, 40.0, Max([]Progress{{Percent: 10}, {Percent: 40}, {Percent: 0}}))
}

func TestForPlanting(t *testing.T) {
	fc := models.FarmerCrop{PlantingDate: plantedDaysAgo(12), Crop: &models.Crop{GrowthDays: 48}}
	p := ForPlanting(fc, now)
	assert.Equal(t, 12, p.DaysGrown)
	assert.Equal(t, 25.0, p.Percent)
	assert.Equal(t, 48, p.GrowthDays)
}
