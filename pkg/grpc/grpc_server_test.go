package grpc

import (
	"context"
	"net"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/grpc/test/bufconn"
	"google.golang.org/protobuf/types/known/structpb"

	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/limiter"
	"agroalert.dev/dashboard-service/pkg/loader"
	"agroalert.dev/dashboard-service/pkg/models"
	"agroalert.dev/dashboard-service/pkg/store/mocks"
	_ "agroalert.dev/dashboard-service/pkg/testing"
)

const bufSize = 1024 * 1024

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func startTestServer(t *testing.T, rateLimiterStore *limiter.RateLimiterStore) (*DashboardServiceClient, *mocks.MockStore) {
	common.SetTestLoggerNop()

	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)

	listener := bufconn.Listen(bufSize)
	dashboardServer := DashboardServer{
		Loader:           loader.New(mockStore),
		RateLimiterStore: rateLimiterStore,
		Now:              func() time.Time { return testNow },
	}
	interceptor := grpc.UnaryInterceptor(dashboardServer.CreateRateLimitInterceptor([]string{
		MethodGetFarmerDashboard,
	}))
	server := grpc.NewServer(interceptor)
	RegisterDashboardServiceServer(server, &dashboardServer)

	go func() {
		_ = server.Serve(listener)
	}()
	t.Cleanup(server.Stop)

	conn, err := grpc.DialContext(context.Background(), "bufnet",
		grpc.WithContextDialer(func(ctx context.Context, s string) (net.Conn, error) {
			return listener.Dial()
		}),
		grpc.WithTransportCredentials(insecure.NewCredentials()),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = conn.Close() })

	return NewDashboardServiceClient(conn), mockStore
}

func request(t *testing.T, fields map[string]any) *structpb.Struct {
	in, err := structpb.NewStruct(fields)
	require.NoError(t, err)
	return in
}

func statusOf(resp *structpb.Struct) (bool, string) {
	s := resp.GetFields()["status"].GetStructValue()
	return s.GetFields()["success"].GetBoolValue(), s.GetFields()["message"].GetStringValue()
}

func expectDashboard(mockStore *mocks.MockStore, farmerID string) {
	mockStore.EXPECT().GetFarmer(gomock.Any(), farmerID).
		Return(&models.Farmer{ID: farmerID, Name: "Amina", LocationName: "Nakuru"}, nil)
	mockStore.EXPECT().GetWeatherByLocation(gomock.Any(), "Nakuru").Return(nil, nil)
	mockStore.EXPECT().ListFarmerCrops(gomock.Any(), farmerID).Return([]models.FarmerCrop{}, nil)
	mockStore.EXPECT().ListAlerts(gomock.Any(), farmerID, common.AlertsOnFarmerDashboard).Return([]models.Alert{}, nil)
}

func TestListFarmers(t *testing.T) {
	client, mockStore := startTestServer(t, nil)
	mockStore.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{
		{ID: "f-1", Name: "Amina Wanjiru", LocationName: "Nakuru"},
	}, nil)

	resp, err := client.ListFarmers(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	ok, _ := statusOf(resp)
	require.True(t, ok)
	farmers := resp.GetFields()["landing"].GetStructValue().GetFields()["farmers"].GetListValue().GetValues()
	require.Len(t, farmers, 1)
	assert.Equal(t, "?farmer=f-1", farmers[0].GetStructValue().GetFields()["dashboard_link"].GetStringValue())
}

func TestGetFarmerDashboard(t *testing.T) {
	client, mockStore := startTestServer(t, nil)
	expectDashboard(mockStore, "f-1")

	resp, err := client.GetFarmerDashboard(context.Background(), request(t, map[string]any{"farmer_id": "f-1"}))
	require.NoError(t, err)

	ok, _ := statusOf(resp)
	require.True(t, ok)
	dashboard := resp.GetFields()["dashboard"].GetStructValue().GetFields()
	assert.Equal(t, "Welcome back, Amina!", dashboard["farmer"].GetStructValue().GetFields()["welcome"].GetStringValue())
	assert.Equal(t, "No alerts yet", dashboard["alerts_empty_message"].GetStringValue())
	assert.Nil(t, dashboard["weather"])
}

func TestGetFarmerDashboardValidation(t *testing.T) {
	client, _ := startTestServer(t, nil)

	resp, err := client.GetFarmerDashboard(context.Background(), &structpb.Struct{})
	require.NoError(t, err)

	ok, message := statusOf(resp)
	assert.False(t, ok)
	assert.Contains(t, message, "validation error")
}

func TestGetFarmerDashboardRateLimit(t *testing.T) {
	client, mockStore := startTestServer(t, limiter.NewRateLimiterStore(0.001, 1))
	expectDashboard(mockStore, "f-1")

	_, err := client.GetFarmerDashboard(context.Background(), request(t, map[string]any{"farmer_id": "f-1"}))
	require.NoError(t, err)

	_, err = client.GetFarmerDashboard(context.Background(), request(t, map[string]any{"farmer_id": "f-1"}))
	require.Error(t, err)
	assert.Equal(t, codes.ResourceExhausted, status.Code(err))

	// limits are per farmer, and ListFarmers is not limited
	expectDashboard(mockStore, "f-2")
	_, err = client.GetFarmerDashboard(context.Background(), request(t, map[string]any{"farmer_id": "f-2"}))
	require.NoError(t, err)
}

func TestGetGrowthProgress(t *testing.T) {
	client, _ := startTestServer(t, nil)

	resp, err := client.GetGrowthProgress(context.Background(), request(t, map[string]any{
		"planting_date": "2025-01-29",
		"growth_days":   120,
	}))
	require.NoError(t, err)

	ok, _ := statusOf(resp)
	require.True(t, ok)
	progress := resp.GetFields()["progress"].GetStructValue().GetFields()
	assert.Equal(t, float64(45), progress["days_grown"].GetNumberValue())
	assert.Equal(t, 37.5, progress["percent"].GetNumberValue())
	assert.Equal(t, "vegetative", progress["stage"].GetStringValue())
}

func TestGetGrowthProgressValidation(t *testing.T) {
	client, _ := startTestServer(t, nil)

	for name, fields := range map[string]map[string]any{
		"missing date":     {"growth_days": 120},
		"zero growth days": {"planting_date": "2025-01-29", "growth_days": 0},
		"unparsable date":  {"planting_date": "last tuesday", "growth_days": 90},
	} {
		t.Run(name, func(t *testing.T) {
			resp, err := client.GetGrowthProgress(context.Background(), request(t, fields))
			require.NoError(t, err)
			ok, message := statusOf(resp)
			assert.False(t, ok)
			assert.Contains(t, message, "validation error")
		})
	}
}
