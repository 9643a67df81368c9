package grpc

import (
	"context"
	"encoding/json"
	"fmt"

	z "github.com/Oudwins/zog"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/types/known/structpb"

	"agroalert.dev/dashboard-service/pkg/growth"
	"agroalert.dev/dashboard-service/pkg/models"
	"agroalert.dev/dashboard-service/pkg/view"
)

const (
	fieldFarmerID     = "farmer_id"
	fieldPlantingDate = "planting_date"
	fieldGrowthDays   = "growth_days"
)

type farmerRequest struct {
	FarmerID string
}

var farmerRequestSchema = z.Struct(z.Shape{
	"FarmerID": z.String().Min(1).Required(),
})

type growthRequest struct {
	PlantingDate string
	GrowthDays   int
}

var growthRequestSchema = z.Struct(z.Shape{
	"PlantingDate": z.String().Min(1).Required(),
	"GrowthDays":   z.Int().GT(0).Required(),
})

func stringField(in *structpb.Struct, name string) string {
	return in.GetFields()[name].GetStringValue()
}

func intField(in *structpb.Struct, name string) int {
	return int(in.GetFields()[name].GetNumberValue())
}

func statusOK() map[string]any {
	return map[string]any{"success": true, "message": "OK"}
}

// failure is the response body for requests the service rejects without
// failing the call.
func failure(message string) *structpb.Struct {
	return &structpb.Struct{Fields: map[string]*structpb.Value{
		"status": structpb.NewStructValue(&structpb.Struct{Fields: map[string]*structpb.Value{
			"success": structpb.NewBoolValue(false),
			"message": structpb.NewStringValue(message),
		}}),
	}}
}

// respond encodes body, keyed by name, next to an OK status. Views go through
// their JSON form so field names match the HTTP API.
func respond(name string, body any) (*structpb.Struct, error) {
	raw, err := json.Marshal(map[string]any{"status": statusOK(), name: body})
	if err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s: %v", name, err)
	}
	out := new(structpb.Struct)
	if err := protojson.Unmarshal(raw, out); err != nil {
		return nil, status.Errorf(codes.Internal, "encode %s: %v", name, err)
	}
	return out, nil
}

func (s *DashboardServer) ListFarmers(ctx context.Context, _ *structpb.Struct) (*structpb.Struct, error) {
	landing := view.BuildLanding(s.Loader.LoadLanding(ctx))
	return respond("landing", landing)
}

func (s *DashboardServer) GetFarmerDashboard(ctx context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := farmerRequest{FarmerID: stringField(in, fieldFarmerID)}
	if issues := farmerRequestSchema.Validate(&req); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues)), nil
	}

	d := s.Loader.LoadFarmerDashboard(ctx, req.FarmerID)
	return respond("dashboard", view.BuildFarmerDashboard(d, s.now()))
}

func (s *DashboardServer) GetGrowthProgress(_ context.Context, in *structpb.Struct) (*structpb.Struct, error) {
	req := growthRequest{
		PlantingDate: stringField(in, fieldPlantingDate),
		GrowthDays:   intField(in, fieldGrowthDays),
	}
	if issues := growthRequestSchema.Validate(&req); len(issues) > 0 {
		return failure(fmt.Sprintf("validation error: %v", issues)), nil
	}

	planted, err := models.ParseDate(req.PlantingDate)
	if err != nil {
		return failure(fmt.Sprintf("validation error: %v", err)), nil
	}

	progress := growth.Calculate(&planted, &models.Crop{GrowthDays: req.GrowthDays}, s.now())
	return respond("progress", progress)
}
