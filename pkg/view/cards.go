// Package view turns loaded screen data into what the dashboards render.
// Everything here is a pure function of its inputs and the supplied now.
package view

import (
	"fmt"
	"strings"
	"time"

	"agroalert.dev/dashboard-service/pkg/growth"
	"agroalert.dev/dashboard-service/pkg/models"
)

const DisplayDateLayout = "Jan 2, 2006"

const (
	MsgNoAlerts        = "No alerts yet"
	MsgNoAlertsSent    = "No alerts sent yet"
	MsgNoCrops         = "No crops planted yet"
	MsgNoFarmers       = "No farmers registered yet"
	MsgNoWeather       = "No weather data available"
	MsgFarmerNotFound  = "Farmer not found"
	MsgUnknownCrop     = "Unknown crop"
	MsgPlantingUnknown = "Not planted"
)

type CropCard struct {
	ID           string       `json:"id"`
	CropName     string       `json:"crop_name"`
	Status       string       `json:"status"`
	PlantedOn    string       `json:"planted_on"`
	AreaHectares float64      `json:"area_hectares"`
	DaysGrown    int          `json:"days_grown"`
	GrowthDays   int          `json:"growth_days"`
	Percent      int          `json:"percent"`
	Stage        growth.Stage `json:"stage"`

	progress growth.Progress
}

func NewCropCard(fc models.FarmerCrop, now time.Time) CropCard {
	p := growth.ForPlanting(fc, now)
	card := CropCard{
		ID:           fc.ID,
		CropName:     MsgUnknownCrop,
		Status:       fc.Status,
		PlantedOn:    MsgPlantingUnknown,
		AreaHectares: fc.AreaHectares,
		DaysGrown:    p.DaysGrown,
		GrowthDays:   p.GrowthDays,
		Percent:      p.Rounded(),
		Stage:        p.Stage,
		progress:     p,
	}
	if fc.Crop != nil && fc.Crop.Name != "" {
		card.CropName = fc.Crop.Name
	}
	if fc.PlantingDate != nil && !fc.PlantingDate.IsZero() {
		card.PlantedOn = fc.PlantingDate.Format(DisplayDateLayout)
	}
	return card
}

func NewCropCards(plantings []models.FarmerCrop, now time.Time) []CropCard {
	cards := make([]CropCard, 0, len(plantings))
	for _, fc := range plantings {
		cards = append(cards, NewCropCard(fc, now))
	}
	return cards
}

type ChartRow struct {
	CropName  string  `json:"crop_name"`
	DaysGrown int     `json:"days_grown"`
	Percent   float64 `json:"percent"`
	Label     string  `json:"label"`
}

type Chart struct {
	Rows         []ChartRow `json:"rows"`
	MaxPercent   float64    `json:"max_percent"`
	EmptyMessage string     `json:"empty_message,omitempty"`
}

func NewChart(cards []CropCard) Chart {
	chart := Chart{Rows: make([]ChartRow, 0, len(cards))}
	progress := make([]growth.Progress, 0, len(cards))
	for _, c := range cards {
		progress = append(progress, c.progress)
		chart.Rows = append(chart.Rows, ChartRow{
			CropName:  c.CropName,
			DaysGrown: c.DaysGrown,
			Percent:   c.progress.Percent,
			Label:     fmt.Sprintf("%d%%", c.Percent),
		})
	}
	chart.MaxPercent = growth.Max(progress)
	if len(cards) == 0 {
		chart.EmptyMessage = MsgNoCrops
	}
	return chart
}

type AlertCard struct {
	ID            string           `json:"id"`
	Type          models.AlertType `json:"type"`
	Label         string           `json:"label"`
	Message       string           `json:"message"`
	SentAt        time.Time        `json:"sent_at"`
	When          string           `json:"when"`
	IsNew         bool             `json:"is_new"`
	DashboardLink string           `json:"dashboard_link,omitempty"`
}

// AlertLabel is the heading shown on an alert card: the stored type with its
// first underscore turned into a space.
func AlertLabel(t models.AlertType) string {
	return strings.Replace(string(t), "_", " ", 1)
}

func NewAlertCard(a models.Alert, now time.Time) AlertCard {
	card := AlertCard{
		ID:      a.ID,
		Type:    a.AlertType.Normalize(),
		Label:   AlertLabel(a.AlertType),
		Message: a.Message,
		SentAt:  a.SentAt,
		When:    RelativeTime(a.SentAt, now),
		IsNew:   !a.IsRead,
	}
	if a.DashboardLink != nil {
		card.DashboardLink = *a.DashboardLink
	}
	return card
}

func NewAlertCards(alerts []models.Alert, now time.Time) []AlertCard {
	cards := make([]AlertCard, 0, len(alerts))
	for _, a := range alerts {
		cards = append(cards, NewAlertCard(a, now))
	}
	return cards
}

// RelativeTime renders how long ago t was, falling back to the calendar date
// after a week.
func RelativeTime(t, now time.Time) string {
	hours := int(now.Sub(t) / time.Hour)
	if now.Before(t) {
		hours = 0
	}
	days := hours / 24

	switch {
	case hours < 1:
		return "Just now"
	case hours < 24:
		return fmt.Sprintf("%d %s ago", hours, plural(hours, "hour"))
	case days < 7:
		return fmt.Sprintf("%d %s ago", days, plural(days, "day"))
	}
	return t.Format(DisplayDateLayout)
}

func plural(n int, word string) string {
	if n > 1 {
		return word + "s"
	}
	return word
}

type WeatherPanel struct {
	Location    string    `json:"location"`
	Temperature float64   `json:"temperature"`
	Humidity    float64   `json:"humidity"`
	Rainfall    float64   `json:"rainfall"`
	Forecast    string    `json:"forecast"`
	RecordedAt  time.Time `json:"recorded_at"`
}

func NewWeatherPanel(w models.WeatherData) WeatherPanel {
	return WeatherPanel{
		Location:    w.LocationName,
		Temperature: w.Temperature,
		Humidity:    w.Humidity,
		Rainfall:    w.Rainfall,
		Forecast:    w.Forecast,
		RecordedAt:  w.RecordedAt,
	}
}
