package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	z "github.com/Oudwins/zog"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/export"
	"agroalert.dev/dashboard-service/pkg/view"
	"agroalert.dev/dashboard-service/pkg/viewstate"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email"`
	Password string `json:"password" form:"password"`
}

var loginRequestSchema = z.Struct(z.Shape{
	"Email":    z.String().Email().Required(),
	"Password": z.String().Min(1).Required(),
})

// signIn binds credentials from a JSON or form body and opens a session. On
// failure the session is nil and status/failure describe the response.
func (rs *RestfulServer) signIn(c *gin.Context) (*auth.Session, int, any) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		return nil, http.StatusBadRequest, err.Error()
	}
	if issues := loginRequestSchema.Validate(&req); len(issues) > 0 {
		return nil, http.StatusBadRequest, issues
	}

	session, err := rs.Auth.SignIn(c.Request.Context(), req.Email, req.Password)
	if errors.Is(err, auth.ErrInvalidCredentials) {
		return nil, http.StatusUnauthorized, err.Error()
	}
	if err != nil {
		sessionLogger().Error("sign-in failed", zap.Error(err))
		return nil, http.StatusInternalServerError, err.Error()
	}
	return session, http.StatusOK, nil
}

func (rs *RestfulServer) Login(c *gin.Context) {
	session, status, failure := rs.signIn(c)
	if session == nil {
		c.JSON(status, gin.H{"error": failure})
		return
	}
	rs.setSessionCookie(c, session)
	c.JSON(http.StatusOK, gin.H{"token": session.Token, "session": session})
}

func (rs *RestfulServer) Logout(c *gin.Context) {
	token := rs.sessionToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrNoSession.Error()})
		return
	}
	if err := rs.Auth.SignOut(c.Request.Context(), token); err != nil && !errors.Is(err, auth.ErrNoSession) {
		sessionLogger().Warn("sign-out failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	rs.clearSessionCookie(c)
	c.JSON(http.StatusOK, gin.H{"state": viewstate.State{Mode: viewstate.ModeOfficerUnauthenticated}})
}

func (rs *RestfulServer) GetSession(c *gin.Context) {
	session := rs.currentSession(c)
	if session == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": auth.ErrNoSession.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

func (rs *RestfulServer) ListFarmers(c *gin.Context) {
	c.JSON(http.StatusOK, view.BuildLanding(rs.Loader.LoadLanding(c.Request.Context())))
}

func (rs *RestfulServer) GetFarmerDashboard(c *gin.Context) {
	farmerID := c.Param("farmer_id")

	if !rs.CheckFarmerLimiter(farmerID) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})
		return
	}

	d := rs.Loader.LoadFarmerDashboard(c.Request.Context(), farmerID)
	c.JSON(http.StatusOK, view.BuildFarmerDashboard(d, rs.now()))
}

func (rs *RestfulServer) GetPortal(c *gin.Context) {
	c.JSON(http.StatusOK, rs.buildPortal(c, c.Query("search"), c.Query("farmer_id")))
}

func (rs *RestfulServer) GetFarmerDetail(c *gin.Context) {
	d := rs.Loader.LoadFarmerDetail(c.Request.Context(), c.Param("farmer_id"))

	if d.Farmer.Failed() {
		c.JSON(http.StatusInternalServerError, gin.H{"error": d.Farmer.Error})
		return
	}
	if !d.Farmer.Found() {
		c.JSON(http.StatusNotFound, gin.H{"error": view.MsgFarmerNotFound})
		return
	}

	var errs []string
	if d.Crops.Failed() {
		errs = append(errs, "Could not load crops")
	}
	if d.Alerts.Failed() {
		errs = append(errs, "Could not load alerts")
	}
	c.JSON(http.StatusOK, gin.H{"farmer": view.BuildSelectedFarmer(d, rs.now()), "errors": common.NonNil(errs)})
}

func (rs *RestfulServer) ExportFarmers(c *gin.Context) {
	ctx := c.Request.Context()
	logger := common.GetLoggerWith(common.LoggerNameRestfulServer, zap.String(common.LoggerFieldCategory, common.LoggerCategoryOfficerPortal))

	farmers, err := rs.Store.ListFarmers(ctx)
	if err != nil {
		logger.Error("export: failed to list farmers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	plantings, err := rs.Store.ListAllFarmerCrops(ctx)
	if err != nil {
		logger.Error("export: failed to list plantings", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	content, err := export.Farmers(farmers, export.CropCounts(plantings))
	if err != nil {
		logger.Error("export: failed to build workbook", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.Header("Content-Disposition", "attachment; filename="+export.FileName)
	c.Data(http.StatusOK, export.ContentType, content)
}

func (rs *RestfulServer) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
