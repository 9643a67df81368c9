package http

import (
	"embed"
	"html/template"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/limiter"
	"agroalert.dev/dashboard-service/pkg/loader"
	"agroalert.dev/dashboard-service/pkg/store"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

const DefaultSessionCookie = "agroalert_session"

type RestfulServer struct {
	Server           *gin.Engine
	Loader           *loader.Loader
	Store            store.Store
	Auth             auth.Provider
	RateLimiterStore *limiter.RateLimiterStore
	SessionCookie    string
	SessionTTL       time.Duration
	Now              func() time.Time
}

func (rs *RestfulServer) GetLimiter(farmerID string) *rate.Limiter {
	if rs.RateLimiterStore == nil {
		return nil
	} else {
		return rs.RateLimiterStore.GetLimiter(farmerID)
	}
}

func (rs *RestfulServer) CheckFarmerLimiter(farmerID string) bool {
	limiter := rs.GetLimiter(farmerID)
	if limiter == nil {
		return true
	}
	return limiter.Allow()
}

func (rs *RestfulServer) now() time.Time {
	if rs.Now == nil {
		return time.Now()
	}
	return rs.Now()
}

func (rs *RestfulServer) cookieName() string {
	if rs.SessionCookie == "" {
		return DefaultSessionCookie
	}
	return rs.SessionCookie
}

func templates() *template.Template {
	return template.Must(template.ParseFS(templatesFS, "templates/*.tmpl"))
}

func (rs *RestfulServer) Setup() {
	rs.Server.SetHTMLTemplate(templates())

	rs.Server.GET("/healthz", rs.HealthCheck)

	rs.Server.GET("/", rs.Index)
	rs.Server.GET("/officer", rs.Officer)
	rs.Server.POST("/officer/login", rs.OfficerLogin)
	rs.Server.POST("/officer/logout", rs.OfficerLogout)

	api := rs.Server.Group("/api")
	{
		api.GET("/farmers", rs.ListFarmers)
		api.GET("/farmers/:farmer_id/dashboard", rs.GetFarmerDashboard)

		api.GET("/view", rs.GetView)
		api.GET("/view/stream", rs.StreamView)

		api.POST("/auth/login", rs.Login)
		api.POST("/auth/logout", rs.Logout)
		api.GET("/auth/session", rs.GetSession)

		officer := api.Group("/officer", rs.RequireOfficer)
		{
			officer.GET("/portal", rs.GetPortal)
			officer.GET("/farmers/export.xlsx", rs.ExportFarmers)
			officer.GET("/farmers/:farmer_id", rs.GetFarmerDetail)
		}
	}
}
