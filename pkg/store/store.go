//go:generate mockgen -source=store.go -destination=mocks/mock_store.go -package=mocks

// Package store reads farm data from either the local database or the
// hosted backend through a small query primitive.
package store

import (
	"context"
	"fmt"

	"agroalert.dev/dashboard-service/pkg/models"
)

type Collection string

const (
	CollectionFarmers           Collection = "farmers"
	CollectionCrops             Collection = "crops"
	CollectionFarmerCrops       Collection = "farmer_crops"
	CollectionAlerts            Collection = "alerts"
	CollectionWeatherData       Collection = "weather_data"
	CollectionExtensionOfficers Collection = "extension_officers"
)

// EmbedCrops pulls the crop species into each farmer_crops row.
const EmbedCrops = "crops"

type Filter struct {
	Column string
	Value  any
}

type Order struct {
	Column string
	Desc   bool
}

// Query is an equality-filtered, optionally ordered and limited read of one
// collection. A zero Limit means no limit.
type Query struct {
	Collection Collection
	Filters    []Filter
	Order      *Order
	Limit      int
	Embed      []string
}

func From(c Collection) Query {
	return Query{Collection: c}
}

func (q Query) Eq(column string, value any) Query {
	q.Filters = append(append([]Filter(nil), q.Filters...), Filter{Column: column, Value: value})
	return q
}

func (q Query) OrderBy(column string, desc bool) Query {
	q.Order = &Order{Column: column, Desc: desc}
	return q
}

func (q Query) Take(n int) Query {
	q.Limit = n
	return q
}

func (q Query) With(embed ...string) Query {
	q.Embed = append(append([]string(nil), q.Embed...), embed...)
	return q
}

// Backend executes a Query and decodes the rows into dest, a pointer to a
// slice of models.
type Backend interface {
	Select(ctx context.Context, q Query, dest any) error
}

type Store interface {
	ListFarmers(ctx context.Context) ([]models.Farmer, error)
	// GetFarmer returns nil without error when no farmer has the id.
	GetFarmer(ctx context.Context, farmerID string) (*models.Farmer, error)
	ListFarmerCrops(ctx context.Context, farmerID string) ([]models.FarmerCrop, error)
	ListAllFarmerCrops(ctx context.Context) ([]models.FarmerCrop, error)
	// ListAlerts returns the newest alerts first; limit 0 returns all of them.
	ListAlerts(ctx context.Context, farmerID string, limit int) ([]models.Alert, error)
	GetWeatherByLocation(ctx context.Context, locationName string) (*models.WeatherData, error)
	ListWeather(ctx context.Context) ([]models.WeatherData, error)
}

type backendStore struct {
	backend Backend
}

func New(backend Backend) Store {
	return &backendStore{backend: backend}
}

func selectAll[T any](ctx context.Context, b Backend, q Query) ([]T, error) {
	rows := []T{}
	if err := b.Select(ctx, q, &rows); err != nil {
		return []T{}, fmt.Errorf("select %s: %w", q.Collection, err)
	}
	if rows == nil {
		rows = []T{}
	}
	return rows, nil
}

func selectOne[T any](ctx context.Context, b Backend, q Query) (*T, error) {
	rows, err := selectAll[T](ctx, b, q.Take(1))
	if err != nil || len(rows) == 0 {
		return nil, err
	}
	return &rows[0], nil
}

func (s *backendStore) ListFarmers(ctx context.Context) ([]models.Farmer, error) {
	return selectAll[models.Farmer](ctx, s.backend, From(CollectionFarmers).OrderBy("name", false))
}

func (s *backendStore) GetFarmer(ctx context.Context, farmerID string) (*models.Farmer, error) {
	return selectOne[models.Farmer](ctx, s.backend, From(CollectionFarmers).Eq("id", farmerID))
}

func (s *backendStore) ListFarmerCrops(ctx context.Context, farmerID string) ([]models.FarmerCrop, error) {
	q := From(CollectionFarmerCrops).Eq("farmer_id", farmerID).With(EmbedCrops)
	return selectAll[models.FarmerCrop](ctx, s.backend, q)
}

func (s *backendStore) ListAllFarmerCrops(ctx context.Context) ([]models.FarmerCrop, error) {
	return selectAll[models.FarmerCrop](ctx, s.backend, From(CollectionFarmerCrops))
}

func (s *backendStore) ListAlerts(ctx context.Context, farmerID string, limit int) ([]models.Alert, error) {
	q := From(CollectionAlerts).Eq("farmer_id", farmerID).OrderBy("sent_at", true).Take(limit)
	return selectAll[models.Alert](ctx, s.backend, q)
}

func (s *backendStore) GetWeatherByLocation(ctx context.Context, locationName string) (*models.WeatherData, error) {
	return selectOne[models.WeatherData](ctx, s.backend, From(CollectionWeatherData).Eq("location_name", locationName))
}

func (s *backendStore) ListWeather(ctx context.Context) ([]models.WeatherData, error) {
	return selectAll[models.WeatherData](ctx, s.backend, From(CollectionWeatherData))
}
