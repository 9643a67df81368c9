package main

import (
	"context"
	"errors"
	"log"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"google.golang.org/grpc"

	"agroalert.dev/dashboard-service/pkg/common"
	agroGrpc "agroalert.dev/dashboard-service/pkg/grpc"
	agroHttp "agroalert.dev/dashboard-service/pkg/http"
	"agroalert.dev/dashboard-service/pkg/loader"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server, and the gRPC server when AGRO_GRPC_HOST_PORT is set",
	Run: func(cmd *cobra.Command, args []string) {
		serve(cmd.Context())
	},
}

func serve(ctx context.Context) {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cfg.ValidateSessions(); err != nil {
		log.Fatalf("invalid configuration: %v", err)
	}

	logger := common.GetLogger()

	s, err := newStore(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to create store: %v", err)
	}
	provider, err := newAuth(cfg)
	if err != nil {
		log.Fatalf("failed to create auth provider: %v", err)
	}
	dashboardLoader := loader.New(s)

	var grpcServer *grpc.Server
	if cfg.GRPCHostPort != "" {
		dashboardServer := agroGrpc.DashboardServer{
			Loader:           dashboardLoader,
			RateLimiterStore: newLimiterStore(cfg),
		}
		interceptor := dashboardServer.CreateRateLimitInterceptor([]string{
			agroGrpc.MethodGetFarmerDashboard,
		})
		grpcServer = grpc.NewServer(grpc.UnaryInterceptor(interceptor))
		agroGrpc.RegisterDashboardServiceServer(grpcServer, &dashboardServer)

		listener, err := net.Listen("tcp", cfg.GRPCHostPort)
		if err != nil {
			log.Fatalf("failed to listen: %v", err)
		}

		common.GetLoggerWith(common.LoggerNameGrpcServer).Info("start gRPC server on " + cfg.GRPCHostPort)
		go func() {
			if err := grpcServer.Serve(listener); err != nil {
				log.Fatalf("grpc server failed to serve: %v", err)
			}
		}()
	}

	rs := &agroHttp.RestfulServer{
		Server:           gin.Default(),
		Loader:           dashboardLoader,
		Store:            s,
		Auth:             provider,
		RateLimiterStore: newLimiterStore(cfg),
		SessionCookie:    cfg.SessionCookie,
		SessionTTL:       cfg.SessionTTL,
	}
	rs.Setup()

	httpServer := &http.Server{
		Addr:              cfg.HTTPHostPort,
		Handler:           rs.Server,
		ReadHeaderTimeout: 5 * time.Second,
	}

	common.GetLoggerWith(common.LoggerNameRestfulServer).Info("Starting HTTP server on: " + cfg.HTTPHostPort)
	go func() {
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("http server failed to serve: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http server shutdown: " + err.Error())
	}
	if grpcServer != nil {
		grpcServer.GracefulStop()
	}
}
