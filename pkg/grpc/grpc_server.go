package grpc

import (
	"context"
	"time"

	"golang.org/x/time/rate"
	"google.golang.org/grpc"
	"google.golang.org/protobuf/types/known/structpb"

	"agroalert.dev/dashboard-service/pkg/limiter"
	"agroalert.dev/dashboard-service/pkg/loader"
)

const ServiceName = "agroalert.v1.DashboardService"

const (
	MethodListFarmers        = "/" + ServiceName + "/ListFarmers"
	MethodGetFarmerDashboard = "/" + ServiceName + "/GetFarmerDashboard"
	MethodGetGrowthProgress  = "/" + ServiceName + "/GetGrowthProgress"
)

// DashboardServiceServer is the server side of agroalert.v1.DashboardService.
// Every message is a google.protobuf.Struct.
type DashboardServiceServer interface {
	ListFarmers(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetFarmerDashboard(context.Context, *structpb.Struct) (*structpb.Struct, error)
	GetGrowthProgress(context.Context, *structpb.Struct) (*structpb.Struct, error)
}

type unaryCall func(DashboardServiceServer, context.Context, *structpb.Struct) (*structpb.Struct, error)

func unaryMethod(name string, call unaryCall) grpc.MethodDesc {
	fullMethod := "/" + ServiceName + "/" + name
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(structpb.Struct)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(DashboardServiceServer)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{Server: srv, FullMethod: fullMethod}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*structpb.Struct))
			})
		},
	}
}

var DashboardServiceDesc = grpc.ServiceDesc{
	ServiceName: ServiceName,
	HandlerType: (*DashboardServiceServer)(nil),
	Methods: []grpc.MethodDesc{
		unaryMethod("ListFarmers", DashboardServiceServer.ListFarmers),
		unaryMethod("GetFarmerDashboard", DashboardServiceServer.GetFarmerDashboard),
		unaryMethod("GetGrowthProgress", DashboardServiceServer.GetGrowthProgress),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "agroalert/v1/dashboard.proto",
}

func RegisterDashboardServiceServer(s grpc.ServiceRegistrar, srv DashboardServiceServer) {
	s.RegisterService(&DashboardServiceDesc, srv)
}

type DashboardServiceClient struct {
	cc grpc.ClientConnInterface
}

func NewDashboardServiceClient(cc grpc.ClientConnInterface) *DashboardServiceClient {
	return &DashboardServiceClient{cc: cc}
}

func (c *DashboardServiceClient) invoke(ctx context.Context, method string, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	out := new(structpb.Struct)
	if err := c.cc.Invoke(ctx, method, in, out, opts...); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *DashboardServiceClient) ListFarmers(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodListFarmers, in, opts...)
}

func (c *DashboardServiceClient) GetFarmerDashboard(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetFarmerDashboard, in, opts...)
}

func (c *DashboardServiceClient) GetGrowthProgress(ctx context.Context, in *structpb.Struct, opts ...grpc.CallOption) (*structpb.Struct, error) {
	return c.invoke(ctx, MethodGetGrowthProgress, in, opts...)
}

type DashboardServer struct {
	Loader           *loader.Loader
	RateLimiterStore *limiter.RateLimiterStore
	Now              func() time.Time
}

func (s *DashboardServer) GetLimiter(farmerID string) *rate.Limiter {
	if s.RateLimiterStore == nil {
		return nil
	} else {
		return s.RateLimiterStore.GetLimiter(farmerID)
	}
}

func (s *DashboardServer) CheckFarmerLimiter(farmerID string) bool {
	limiter := s.GetLimiter(farmerID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (s *DashboardServer) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}
