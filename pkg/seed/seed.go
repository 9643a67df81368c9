// Package seed loads demo and test data from a YAML fixture into the local
// database.
package seed

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/models"
)

type Crop struct {
	Name              string `yaml:"name"`
	PlantingSeason    string `yaml:"planting_season"`
	GrowthDays        int    `yaml:"growth_days"`
	WaterRequirements string `yaml:"water_requirements"`
}

// Planting dates are either absolute (planting_date) or relative to the
// moment the fixture is applied (planted_days_ago), so demo data stays fresh.
type Planting struct {
	Crop           string  `yaml:"crop"`
	PlantingDate   string  `yaml:"planting_date"`
	PlantedDaysAgo *int    `yaml:"planted_days_ago"`
	AreaHectares   float64 `yaml:"area_hectares"`
	Status         string  `yaml:"status"`
}

type Alert struct {
	Type          string `yaml:"type"`
	Message       string `yaml:"message"`
	SentAt        string `yaml:"sent_at"`
	HoursAgo      *int   `yaml:"hours_ago"`
	IsRead        bool   `yaml:"is_read"`
	DashboardLink string `yaml:"dashboard_link"`
}

type Farmer struct {
	ID           string     `yaml:"id"`
	Name         string     `yaml:"name"`
	Phone        string     `yaml:"phone"`
	LocationName string     `yaml:"location_name"`
	Latitude     float64    `yaml:"latitude"`
	Longitude    float64    `yaml:"longitude"`
	Plantings    []Planting `yaml:"plantings"`
	Alerts       []Alert    `yaml:"alerts"`
}

type Weather struct {
	LocationName string  `yaml:"location_name"`
	Latitude     float64 `yaml:"latitude"`
	Longitude    float64 `yaml:"longitude"`
	Temperature  float64 `yaml:"temperature"`
	Humidity     float64 `yaml:"humidity"`
	Rainfall     float64 `yaml:"rainfall"`
	Forecast     string  `yaml:"forecast"`
}

type Officer struct {
	Name     string `yaml:"name"`
	Email    string `yaml:"email"`
	Region   string `yaml:"region"`
	Password string `yaml:"password"`
}

type Fixture struct {
	Crops    []Crop    `yaml:"crops"`
	Farmers  []Farmer  `yaml:"farmers"`
	Weather  []Weather `yaml:"weather"`
	Officers []Officer `yaml:"officers"`
}

type Summary struct {
	Crops     int
	Farmers   int
	Plantings int
	Alerts    int
	Weather   int
	Officers  int
}

func LoadFile(path string) (*Fixture, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixture: %w", err)
	}
	return Parse(content)
}

func Parse(content []byte) (*Fixture, error) {
	var f Fixture
	if err := yaml.Unmarshal(content, &f); err != nil {
		return nil, fmt.Errorf("failed to parse fixture: %w", err)
	}
	return &f, nil
}

func (p Planting) plantingDate(now time.Time) (*models.Date, error) {
	switch {
	case p.PlantingDate != "":
		d, err := models.ParseDate(p.PlantingDate)
		if err != nil {
			return nil, err
		}
		return &d, nil
	case p.PlantedDaysAgo != nil:
		t := now.UTC().AddDate(0, 0, -*p.PlantedDaysAgo)
		d := models.NewDate(t.Year(), t.Month(), t.Day())
		return &d, nil
	}
	return nil, nil
}

func (a Alert) sentAt(now time.Time) (time.Time, error) {
	switch {
	case a.SentAt != "":
		return time.Parse(time.RFC3339, a.SentAt)
	case a.HoursAgo != nil:
		return now.Add(-time.Duration(*a.HoursAgo) * time.Hour), nil
	}
	return now, nil
}

// Apply writes the fixture in one transaction. Crops, weather and officers
// are matched on their natural keys and farmers on id, so applying the same
// fixture twice leaves one copy of everything.
func Apply(ctx context.Context, conn *gorm.DB, f *Fixture, now time.Time) (Summary, error) {
	logger := common.GetLoggerWith(common.LoggerNameSeed)
	var summary Summary

	err := conn.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cropIDs := make(map[string]string, len(f.Crops))
		for _, c := range f.Crops {
			crop := models.Crop{Name: c.Name}
			if err := tx.Where(models.Crop{Name: c.Name}).
				Assign(models.Crop{
					PlantingSeason:    c.PlantingSeason,
					GrowthDays:        c.GrowthDays,
					WaterRequirements: c.WaterRequirements,
				}).
				FirstOrCreate(&crop).Error; err != nil {
				return fmt.Errorf("crop %s: %w", c.Name, err)
			}
			cropIDs[c.Name] = crop.ID
			summary.Crops++
		}

		for _, w := range f.Weather {
			weather := models.WeatherData{LocationName: w.LocationName}
			if err := tx.Where(models.WeatherData{LocationName: w.LocationName}).
				Assign(models.WeatherData{
					Latitude:    w.Latitude,
					Longitude:   w.Longitude,
					Temperature: w.Temperature,
					Humidity:    w.Humidity,
					Rainfall:    w.Rainfall,
					Forecast:    w.Forecast,
					RecordedAt:  now,
				}).
				FirstOrCreate(&weather).Error; err != nil {
				return fmt.Errorf("weather %s: %w", w.LocationName, err)
			}
			summary.Weather++
		}

		for _, fr := range f.Farmers {
			if err := applyFarmer(tx, fr, cropIDs, now, &summary); err != nil {
				return fmt.Errorf("farmer %s: %w", fr.Name, err)
			}
		}

		for _, o := range f.Officers {
			hash, err := auth.HashPassword(o.Password)
			if err != nil {
				return err
			}
			email := strings.ToLower(strings.TrimSpace(o.Email))
			officer := models.ExtensionOfficer{Email: email}
			if err := tx.Where(models.ExtensionOfficer{Email: email}).
				Assign(models.ExtensionOfficer{Name: o.Name, Region: o.Region, PasswordHash: hash}).
				FirstOrCreate(&officer).Error; err != nil {
				return fmt.Errorf("officer %s: %w", email, err)
			}
			summary.Officers++
		}
		return nil
	})
	if err != nil {
		return Summary{}, err
	}

	logger.Info("fixture applied",
		zap.Int("crops", summary.Crops),
		zap.Int("farmers", summary.Farmers),
		zap.Int("plantings", summary.Plantings),
		zap.Int("alerts", summary.Alerts),
		zap.Int("weather", summary.Weather),
		zap.Int("officers", summary.Officers))
	return summary, nil
}

func applyFarmer(tx *gorm.DB, fr Farmer, cropIDs map[string]string, now time.Time, summary *Summary) error {
	farmer := models.Farmer{
		ID:           fr.ID,
		Name:         fr.Name,
		Phone:        fr.Phone,
		LocationName: fr.LocationName,
		Latitude:     fr.Latitude,
		Longitude:    fr.Longitude,
		CreatedAt:    now,
	}
	if farmer.ID != "" {
		if err := tx.Where("farmer_id = ?", farmer.ID).Delete(&models.FarmerCrop{}).Error; err != nil {
			return err
		}
		if err := tx.Where("farmer_id = ?", farmer.ID).Delete(&models.Alert{}).Error; err != nil {
			return err
		}
	}
	if err := tx.Save(&farmer).Error; err != nil {
		return err
	}
	summary.Farmers++

	for _, p := range fr.Plantings {
		cropID, ok := cropIDs[p.Crop]
		if !ok {
			return fmt.Errorf("planting references unknown crop %q", p.Crop)
		}
		planted, err := p.plantingDate(now)
		if err != nil {
			return err
		}
		if err := tx.Create(&models.FarmerCrop{
			FarmerID:     farmer.ID,
			CropID:       cropID,
			PlantingDate: planted,
			AreaHectares: p.AreaHectares,
			Status:       p.Status,
		}).Error; err != nil {
			return err
		}
		summary.Plantings++
	}

	for _, a := range fr.Alerts {
		sent, err := a.sentAt(now)
		if err != nil {
			return err
		}
		alert := models.Alert{
			FarmerID:  farmer.ID,
			AlertType: models.AlertType(a.Type),
			Message:   a.Message,
			SentAt:    sent,
			IsRead:    a.IsRead,
		}
		if a.DashboardLink != "" {
			link := a.DashboardLink
			alert.DashboardLink = &link
		}
		if err := tx.Create(&alert).Error; err != nil {
			return err
		}
		summary.Alerts++
	}
	return nil
}
