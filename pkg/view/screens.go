package view

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/loader"
	"agroalert.dev/dashboard-service/pkg/models"
	"agroalert.dev/dashboard-service/pkg/viewstate"
)

type DirectoryEntry struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Location      string `json:"location"`
	Phone         string `json:"phone"`
	DashboardLink string `json:"dashboard_link"`
	Selected      bool   `json:"selected,omitempty"`
}

// DashboardLink is the landing link that opens a farmer's own dashboard.
func DashboardLink(farmerID string) string {
	return "?" + viewstate.FarmerQueryKey + "=" + url.QueryEscape(farmerID)
}

func newDirectoryEntry(f models.Farmer) DirectoryEntry {
	return DirectoryEntry{
		ID:            f.ID,
		Name:          f.Name,
		Location:      f.LocationName,
		Phone:         f.Phone,
		DashboardLink: DashboardLink(f.ID),
	}
}

func loadError(what string) string {
	return "Could not load " + what
}

type Landing struct {
	Farmers      []DirectoryEntry `json:"farmers"`
	EmptyMessage string           `json:"empty_message,omitempty"`
	Errors       []string         `json:"errors,omitempty"`
}

func BuildLanding(l loader.Landing) Landing {
	v := Landing{Farmers: common.Mapper(l.Farmers.Items, newDirectoryEntry)}
	switch l.Farmers.Status {
	case loader.StatusEmpty:
		v.EmptyMessage = MsgNoFarmers
	case loader.StatusError:
		v.Errors = append(v.Errors, loadError("farmers"))
	}
	return v
}

type FarmerHeader struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Location  string  `json:"location"`
	Welcome   string  `json:"welcome"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type Totals struct {
	Crops        int     `json:"crops"`
	AreaHectares float64 `json:"area_hectares"`
	AreaLabel    string  `json:"area_label"`
	UnreadAlerts int     `json:"unread_alerts"`
}

type FarmerDashboard struct {
	FarmerID           string        `json:"farmer_id"`
	NotFound           bool          `json:"not_found"`
	NotFoundMessage    string        `json:"not_found_message,omitempty"`
	Farmer             *FarmerHeader `json:"farmer,omitempty"`
	Weather            *WeatherPanel `json:"weather,omitempty"`
	Totals             Totals        `json:"totals"`
	Crops              []CropCard    `json:"crops"`
	Chart              Chart         `json:"chart"`
	Alerts             []AlertCard   `json:"alerts"`
	AlertsEmptyMessage string        `json:"alerts_empty_message,omitempty"`
	Errors             []string      `json:"errors,omitempty"`
}

func newFarmerHeader(f models.Farmer) *FarmerHeader {
	return &FarmerHeader{
		ID:        f.ID,
		Name:      f.Name,
		Phone:     f.Phone,
		Location:  f.LocationName,
		Welcome:   fmt.Sprintf("Welcome back, %s!", f.Name),
		Latitude:  f.Latitude,
		Longitude: f.Longitude,
	}
}

// TotalArea sums the planted area of every planting.
func TotalArea(plantings []models.FarmerCrop) float64 {
	return common.Reducer(plantings, func(sum float64, fc models.FarmerCrop) float64 {
		return sum + fc.AreaHectares
	}, 0)
}

func UnreadAlerts(alerts []models.Alert) int {
	return len(common.Filter(alerts, func(a models.Alert) bool { return !a.IsRead }))
}

func BuildFarmerDashboard(d loader.FarmerDashboard, now time.Time) FarmerDashboard {
	v := FarmerDashboard{
		FarmerID: d.FarmerID,
		Crops:    NewCropCards(d.Crops.Items, now),
		Alerts:   NewAlertCards(d.Alerts.Items, now),
	}
	v.Chart = NewChart(v.Crops)

	area := TotalArea(d.Crops.Items)
	v.Totals = Totals{
		Crops:        len(d.Crops.Items),
		AreaHectares: area,
		AreaLabel:    fmt.Sprintf("%.1f ha", area),
		UnreadAlerts: UnreadAlerts(d.Alerts.Items),
	}

	if d.Farmer.Found() {
		v.Farmer = newFarmerHeader(*d.Farmer.Item)
	} else if d.Farmer.Status == loader.StatusEmpty {
		v.NotFound = true
		v.NotFoundMessage = MsgFarmerNotFound
	}
	if d.Weather.Found() {
		panel := NewWeatherPanel(*d.Weather.Item)
		v.Weather = &panel
	}
	if len(v.Alerts) == 0 {
		v.AlertsEmptyMessage = MsgNoAlerts
	}

	if d.Farmer.Failed() {
		v.Errors = append(v.Errors, loadError("farmer"))
	}
	if d.Weather.Failed() {
		v.Errors = append(v.Errors, loadError("weather"))
	}
	if d.Crops.Failed() {
		v.Errors = append(v.Errors, loadError("crops"))
	}
	if d.Alerts.Failed() {
		v.Errors = append(v.Errors, loadError("alerts"))
	}
	return v
}

type PortalTotals struct {
	Farmers   int `json:"farmers"`
	Locations int `json:"locations"`
	Alerts    int `json:"alerts"`
}

type SelectedFarmer struct {
	FarmerHeader
	Coordinates        string      `json:"coordinates"`
	Crops              []CropCard  `json:"crops"`
	CropsEmptyMessage  string      `json:"crops_empty_message,omitempty"`
	Alerts             []AlertCard `json:"alerts"`
	AlertsEmptyMessage string      `json:"alerts_empty_message,omitempty"`
}

type Portal struct {
	Search                string           `json:"search"`
	Totals                PortalTotals     `json:"totals"`
	Directory             []DirectoryEntry `json:"directory"`
	DirectoryEmptyMessage string           `json:"directory_empty_message,omitempty"`
	Weather               []WeatherPanel   `json:"weather"`
	WeatherEmptyMessage   string           `json:"weather_empty_message,omitempty"`
	Selected              *SelectedFarmer  `json:"selected,omitempty"`
	SelectedNotFound      bool             `json:"selected_not_found,omitempty"`
	Errors                []string         `json:"errors,omitempty"`
}

// MatchesSearch reports whether term occurs in the farmer's name or location,
// ignoring case. An empty term matches every farmer.
func MatchesSearch(f models.Farmer, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	return strings.Contains(strings.ToLower(f.Name), term) ||
		strings.Contains(strings.ToLower(f.LocationName), term)
}

func UniqueLocations(farmers []models.Farmer) int {
	seen := make(map[string]struct{}, len(farmers))
	for _, f := range farmers {
		seen[f.LocationName] = struct{}{}
	}
	return len(seen)
}

// Coordinates renders a latitude/longitude pair to four decimal places.
func Coordinates(lat, lon float64) string {
	return fmt.Sprintf("%.4f, %.4f", lat, lon)
}

func BuildSelectedFarmer(d loader.FarmerDetail, now time.Time) *SelectedFarmer {
	if !d.Farmer.Found() {
		return nil
	}
	f := *d.Farmer.Item
	s := &SelectedFarmer{
		FarmerHeader: *newFarmerHeader(f),
		Coordinates:  Coordinates(f.Latitude, f.Longitude),
		Crops:        NewCropCards(d.Crops.Items, now),
		Alerts:       NewAlertCards(d.Alerts.Items, now),
	}
	if len(s.Crops) == 0 {
		s.CropsEmptyMessage = MsgNoCrops
	}
	if len(s.Alerts) == 0 {
		s.AlertsEmptyMessage = MsgNoAlertsSent
	}
	return s
}

// BuildPortal assembles the officer portal. detail is nil when no farmer is
// selected.
func BuildPortal(p loader.Portal, detail *loader.FarmerDetail, search string, now time.Time) Portal {
	v := Portal{
		Search: search,
		Totals: PortalTotals{
			Farmers:   len(p.Farmers.Items),
			Locations: UniqueLocations(p.Farmers.Items),
		},
		Weather: common.Mapper(p.Weather.Items, NewWeatherPanel),
	}

	matching := common.Filter(p.Farmers.Items, func(f models.Farmer) bool { return MatchesSearch(f, search) })
	v.Directory = common.Mapper(matching, newDirectoryEntry)
	if len(p.Farmers.Items) == 0 && !p.Farmers.Failed() {
		v.DirectoryEmptyMessage = MsgNoFarmers
	}
	if len(v.Weather) == 0 && !p.Weather.Failed() {
		v.WeatherEmptyMessage = MsgNoWeather
	}
	if p.Farmers.Failed() {
		v.Errors = append(v.Errors, loadError("farmers"))
	}
	if p.Weather.Failed() {
		v.Errors = append(v.Errors, loadError("weather"))
	}

	if detail == nil {
		return v
	}
	v.Selected = BuildSelectedFarmer(*detail, now)
	v.SelectedNotFound = detail.Farmer.Status == loader.StatusEmpty
	if v.Selected != nil {
		v.Totals.Alerts = len(v.Selected.Alerts)
		for i := range v.Directory {
			v.Directory[i].Selected = v.Directory[i].ID == v.Selected.ID
		}
	}
	if detail.Failed() {
		v.Errors = append(v.Errors, loadError("farmer details"))
	}
	return v
}
