package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type AlertType string

const (
	AlertTypePlantingReady  AlertType = "planting_ready"
	AlertTypeWeatherWarning AlertType = "weather_warning"
	AlertTypeHarvestReady   AlertType = "harvest_ready"
	AlertTypeProgressUpdate AlertType = "progress_update"
	AlertTypeOther          AlertType = "other"
)

// Known reports whether t is one of the alert types the dashboards render
// distinctly. Anything else is displayed as AlertTypeOther.
func (t AlertType) Known() bool {
	switch t {
	case AlertTypePlantingReady, AlertTypeWeatherWarning, AlertTypeHarvestReady,
		AlertTypeProgressUpdate, AlertTypeOther:
		return true
	}
	return false
}

func (t AlertType) Normalize() AlertType {
	if t.Known() {
		return t
	}
	return AlertTypeOther
}

type Farmer struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `gorm:"index" json:"name"`
	Phone        string    `json:"phone"`
	LocationName string    `gorm:"index" json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	CreatedAt    time.Time `json:"created_at"`

	Crops  []FarmerCrop `gorm:"foreignKey:FarmerID" json:"-"`
	Alerts []Alert      `gorm:"foreignKey:FarmerID" json:"-"`
}

func (Farmer) TableName() string { return "farmers" }

// Crop is a crop species with its expected growth duration.
type Crop struct {
	ID                string `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name              string `gorm:"uniqueIndex" json:"name"`
	PlantingSeason    string `json:"planting_season"`
	GrowthDays        int    `gorm:"check:growth_days > 0" json:"growth_days"`
	WaterRequirements string `json:"water_requirements"`
}

func (Crop) TableName() string { return "crops" }

// FarmerCrop is one planting of a crop species by a farmer.
type FarmerCrop struct {
	ID           string  `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FarmerID     string  `gorm:"index;type:varchar(36)" json:"farmer_id"`
	CropID       string  `gorm:"index;type:varchar(36)" json:"crop_id"`
	PlantingDate *Date   `gorm:"type:date" json:"planting_date"`
	AreaHectares float64 `json:"area_hectares"`
	Status       string  `json:"status"`

	Crop *Crop `gorm:"foreignKey:CropID" json:"crops,omitempty"`
}

func (FarmerCrop) TableName() string { return "farmer_crops" }

type Alert struct {
	ID            string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	FarmerID      string    `gorm:"index;type:varchar(36)" json:"farmer_id"`
	AlertType     AlertType `gorm:"type:varchar(32)" json:"alert_type"`
	Message       string    `json:"message"`
	SentAt        time.Time `gorm:"index" json:"sent_at"`
	IsRead        bool      `json:"is_read"`
	DashboardLink *string   `json:"dashboard_link"`
}

func (Alert) TableName() string { return "alerts" }

type WeatherData struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	LocationName string    `gorm:"uniqueIndex" json:"location_name"`
	Latitude     float64   `json:"latitude"`
	Longitude    float64   `json:"longitude"`
	Temperature  float64   `json:"temperature"`
	Humidity     float64   `json:"humidity"`
	Rainfall     float64   `json:"rainfall"`
	Forecast     string    `json:"forecast"`
	RecordedAt   time.Time `json:"recorded_at"`
}

func (WeatherData) TableName() string { return "weather_data" }

type ExtensionOfficer struct {
	ID           string    `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Name         string    `json:"name"`
	Email        string    `gorm:"uniqueIndex" json:"email"`
	Region       string    `json:"region"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

func (ExtensionOfficer) TableName() string { return "extension_officers" }

// All lists every model migrated into the local backend.
func All() []any {
	return []any{&Farmer{}, &Crop{}, &FarmerCrop{}, &Alert{}, &WeatherData{}, &ExtensionOfficer{}}
}

func newID(id *string) {
	if *id == "" {
		*id = uuid.NewString()
	}
}

func (f *Farmer) BeforeCreate(*gorm.DB) error           { newID(&f.ID); return nil }
func (c *Crop) BeforeCreate(*gorm.DB) error             { newID(&c.ID); return nil }
func (fc *FarmerCrop) BeforeCreate(*gorm.DB) error      { newID(&fc.ID); return nil }
func (a *Alert) BeforeCreate(*gorm.DB) error            { newID(&a.ID); return nil }
func (w *WeatherData) BeforeCreate(*gorm.DB) error      { newID(&w.ID); return nil }
func (o *ExtensionOfficer) BeforeCreate(*gorm.DB) error { newID(&o.ID); return nil }
