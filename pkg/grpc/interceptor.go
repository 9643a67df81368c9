package grpc

import (
	"context"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	"agroalert.dev/dashboard-service/pkg/common"
)

// CreateRateLimitInterceptor applies the per-farmer limiter to the listed
// methods. Requests without a farmer_id pass through.
func (s *DashboardServer) CreateRateLimitInterceptor(targetMethods []string) grpc.UnaryServerInterceptor {
	targets := common.Reducer(targetMethods,
		func(m map[string]bool, method string) map[string]bool {
			m[method] = true
			return m
		},
		map[string]bool{},
	)

	return func(
		ctx context.Context,
		req any,
		info *grpc.UnaryServerInfo,
		handler grpc.UnaryHandler,
	) (any, error) {
		if targets[info.FullMethod] {
			if r, ok := req.(*structpb.Struct); ok {
				farmerID := stringField(r, fieldFarmerID)
				if farmerID != "" && !s.CheckFarmerLimiter(farmerID) {
					return nil, status.Errorf(codes.ResourceExhausted, "rate limit exceeded")
				}
			}
		}

		return handler(ctx, req)
	}
}
