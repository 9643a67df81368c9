package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-resty/resty/v2"
	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/credentials/insecure"
	"google.golang.org/grpc/status"
	"google.golang.org/protobuf/types/known/structpb"

	agroGrpc "agroalert.dev/dashboard-service/pkg/grpc"
)

var maxSessions int = 1000
var httpHostPort string = "127.0.0.1:1080"
var grpcHostPort string = "127.0.0.1:10801"

var httpClient *resty.Client
var grpcClient *agroGrpc.DashboardServiceClient

var rnd *rand.Rand = rand.New(rand.NewSource(time.Now().UnixNano()))
var rndMu sync.Mutex

var rateLimited atomic.Int64
var failures atomic.Int64

type directoryEntry struct {
	ID string `json:"id"`
}

type landing struct {
	Farmers []directoryEntry `json:"farmers"`
}

func main() {
	httpClient = resty.New().
		SetBaseURL(fmt.Sprintf("http://%s", httpHostPort)).
		SetHeader("Accept", "application/json")

	resp, err := httpClient.R().Get("/healthz")
	if err != nil {
		log.Fatal("Failed to connect to HTTP server:", err)
	}
	if resp.StatusCode() != http.StatusOK {
		log.Fatal("HTTP server not available")
	}
	fmt.Printf("http server verified\n")

	var farmers landing
	if _, err := httpClient.R().SetResult(&farmers).Get("/api/farmers"); err != nil {
		log.Fatal("Failed to list farmers:", err)
	}
	if len(farmers.Farmers) == 0 {
		log.Fatal("No farmers to load, run `agroalert seed` first")
	}
	fmt.Printf("found %v farmers\n", len(farmers.Farmers))

	conn, err := grpc.Dial(grpcHostPort, grpc.WithTransportCredentials(insecure.NewCredentials()))
	if err != nil {
		log.Fatal("Failed to connect to gRPC server:", err)
	}
	defer conn.Close()
	grpcClient = agroGrpc.NewDashboardServiceClient(conn)

	fmt.Printf("gRPC server verified and connected\n")

	startTime := time.Now()
	wg := sync.WaitGroup{}
	for i := range maxSessions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			farmerID := farmers.Farmers[i%len(farmers.Farmers)].ID
			doSession(farmerID)
		}()
	}
	wg.Wait()
	usedTime := time.Since(startTime)

	fmt.Printf(
		"\n\rran %v page sessions: used time=%v seconds, throughput=%v request/second, rate limited=%v, failures=%v\n",
		maxSessions, usedTime.Seconds(), float64(maxSessions*3)/usedTime.Seconds(), rateLimited.Load(), failures.Load(),
	)
}

func flipCoin() bool {
	rndMu.Lock()
	defer rndMu.Unlock()
	return rnd.Int31n(100000)%2 == 0
}

func pause() time.Duration {
	rndMu.Lock()
	defer rndMu.Unlock()
	return time.Duration(100+rnd.Int31n(1000)) * time.Millisecond
}

// doSession plays one visitor: the landing page, then the farmer's dashboard,
// then a growth estimate for a planting.
func doSession(farmerID string) {
	actions := []func(){
		getLanding,
		func() { getDashboard(farmerID) },
		getGrowthProgress,
	}
	for _, action := range actions {
		action()
		time.Sleep(pause())
	}
	fmt.Printf("\rfinished session for farmer %v", farmerID)
}

func getLanding() {
	if flipCoin() {
		resp, err := httpClient.R().Get("/")
		if err != nil || resp.StatusCode() != http.StatusOK {
			failures.Add(1)
		}
		return
	}
	if _, err := grpcClient.ListFarmers(context.Background(), &structpb.Struct{}); err != nil {
		failures.Add(1)
	}
}

func getDashboard(farmerID string) {
	if flipCoin() {
		resp, err := httpClient.R().Get("/api/farmers/" + farmerID + "/dashboard")
		switch {
		case err != nil:
			failures.Add(1)
		case resp.StatusCode() == http.StatusTooManyRequests:
			rateLimited.Add(1)
		case resp.StatusCode() != http.StatusOK:
			failures.Add(1)
		}
		return
	}

	in, _ := structpb.NewStruct(map[string]any{"farmer_id": farmerID})
	_, err := grpcClient.GetFarmerDashboard(context.Background(), in)
	switch {
	case status.Code(err) == codes.ResourceExhausted:
		rateLimited.Add(1)
	case err != nil:
		failures.Add(1)
	}
}

func getGrowthProgress() {
	in, _ := structpb.NewStruct(map[string]any{
		"planting_date": time.Now().AddDate(0, 0, -45).Format("2006-01-02"),
		"growth_days":   120,
	})
	if _, err := grpcClient.GetGrowthProgress(context.Background(), in); err != nil {
		failures.Add(1)
	}
}
