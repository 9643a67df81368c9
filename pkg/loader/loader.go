// Package loader fetches what each screen shows. Every fetch lands in a
// Result or One; store failures are logged and surfaced as an error status,
// never returned past the loader.
package loader

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/models"
	"agroalert.dev/dashboard-service/pkg/store"
)

type Landing struct {
	Farmers Result[models.Farmer] `json:"farmers"`
}

type FarmerDashboard struct {
	FarmerID string                    `json:"farmer_id"`
	Farmer   One[models.Farmer]        `json:"farmer"`
	Weather  One[models.WeatherData]   `json:"weather"`
	Crops    Result[models.FarmerCrop] `json:"crops"`
	Alerts   Result[models.Alert]      `json:"alerts"`
}

type Portal struct {
	Farmers Result[models.Farmer]      `json:"farmers"`
	Weather Result[models.WeatherData] `json:"weather"`
}

type FarmerDetail struct {
	FarmerID string                    `json:"farmer_id"`
	Farmer   One[models.Farmer]        `json:"farmer"`
	Crops    Result[models.FarmerCrop] `json:"crops"`
	Alerts   Result[models.Alert]      `json:"alerts"`
}

func (d FarmerDashboard) Failed() bool {
	return d.Farmer.Failed() || d.Weather.Failed() || d.Crops.Failed() || d.Alerts.Failed()
}

func (p Portal) Failed() bool {
	return p.Farmers.Failed() || p.Weather.Failed()
}

func (d FarmerDetail) Failed() bool {
	return d.Farmer.Failed() || d.Crops.Failed() || d.Alerts.Failed()
}

type Loader struct {
	store  store.Store
	logger *zap.Logger
}

func New(s store.Store) *Loader {
	return &Loader{
		store:  s,
		logger: common.GetLoggerWith(common.LoggerNameLoader),
	}
}

func (l *Loader) warn(category, what string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	fields = append(fields, zap.String(common.LoggerFieldCategory, category), zap.Error(err))
	l.logger.Warn("failed to load "+what, fields...)
}

func (l *Loader) LoadLanding(ctx context.Context) Landing {
	farmers, err := l.store.ListFarmers(ctx)
	l.warn(common.LoggerCategoryLanding, "farmers", err)
	return Landing{Farmers: collect(farmers, err)}
}

// LoadFarmerDashboard runs the dashboard's fetches concurrently. Weather is
// looked up by the farmer's location once the farmer row is in, and only
// when the farmer exists.
func (l *Loader) LoadFarmerDashboard(ctx context.Context, farmerID string) FarmerDashboard {
	d := FarmerDashboard{
		FarmerID: farmerID,
		Weather:  One[models.WeatherData]{Status: StatusEmpty},
	}
	id := zap.String("farmer_id", farmerID)
	var g errgroup.Group

	g.Go(func() error {
		farmer, err := l.store.GetFarmer(ctx, farmerID)
		l.warn(common.LoggerCategoryFarmerView, "farmer", err, id)
		d.Farmer = single(farmer, err)
		if farmer == nil || err != nil {
			return nil
		}

		weather, err := l.store.GetWeatherByLocation(ctx, farmer.LocationName)
		l.warn(common.LoggerCategoryFarmerView, "weather", err, id, zap.String("location", farmer.LocationName))
		d.Weather = single(weather, err)
		return nil
	})
	g.Go(func() error {
		crops, err := l.store.ListFarmerCrops(ctx, farmerID)
		l.warn(common.LoggerCategoryFarmerView, "farmer crops", err, id)
		d.Crops = collect(crops, err)
		return nil
	})
	g.Go(func() error {
		alerts, err := l.store.ListAlerts(ctx, farmerID, common.AlertsOnFarmerDashboard)
		l.warn(common.LoggerCategoryFarmerView, "alerts", err, id)
		d.Alerts = collect(alerts, err)
		return nil
	})

	_ = g.Wait()
	return d
}

func (l *Loader) LoadPortal(ctx context.Context) Portal {
	var p Portal
	var g errgroup.Group

	g.Go(func() error {
		farmers, err := l.store.ListFarmers(ctx)
		l.warn(common.LoggerCategoryOfficerPortal, "farmers", err)
		p.Farmers = collect(farmers, err)
		return nil
	})
	g.Go(func() error {
		weather, err := l.store.ListWeather(ctx)
		l.warn(common.LoggerCategoryOfficerPortal, "weather", err)
		p.Weather = collect(weather, err)
		return nil
	})

	_ = g.Wait()
	return p
}

func (l *Loader) LoadFarmerDetail(ctx context.Context, farmerID string) FarmerDetail {
	d := FarmerDetail{FarmerID: farmerID}
	id := zap.String("farmer_id", farmerID)
	var g errgroup.Group

	g.Go(func() error {
		farmer, err := l.store.GetFarmer(ctx, farmerID)
		l.warn(common.LoggerCategoryOfficerPortal, "farmer", err, id)
		d.Farmer = single(farmer, err)
		return nil
	})
	g.Go(func() error {
		crops, err := l.store.ListFarmerCrops(ctx, farmerID)
		l.warn(common.LoggerCategoryOfficerPortal, "farmer crops", err, id)
		d.Crops = collect(crops, err)
		return nil
	})
	g.Go(func() error {
		alerts, err := l.store.ListAlerts(ctx, farmerID, 0)
		l.warn(common.LoggerCategoryOfficerPortal, "alerts", err, id)
		d.Alerts = collect(alerts, err)
		return nil
	})

	_ = g.Wait()
	return d
}
