package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/loader"
	"agroalert.dev/dashboard-service/pkg/view"
	"agroalert.dev/dashboard-service/pkg/viewstate"
)

type Screen string

const (
	ScreenLanding         Screen = "landing"
	ScreenFarmerDashboard Screen = "farmer_dashboard"
	ScreenOfficerLogin    Screen = "officer_login"
	ScreenOfficerPortal   Screen = "officer_portal"
)

const (
	msgRateLimited     = "rate limit exceeded"
	msgRateLimitedPage = "Too many requests for this dashboard. Please wait a moment and reload."
)

// Page is what a screen route renders, as HTML or as JSON.
type Page struct {
	State      viewstate.State       `json:"state"`
	Screen     Screen                `json:"screen"`
	Session    *auth.Session         `json:"session,omitempty"`
	Landing    *view.Landing         `json:"landing,omitempty"`
	Farmer     *view.FarmerDashboard `json:"farmer_dashboard,omitempty"`
	Portal     *view.Portal          `json:"portal,omitempty"`
	LoginError string                `json:"login_error,omitempty"`
}

func wantsJSON(c *gin.Context) bool {
	return c.NegotiateFormat(gin.MIMEHTML, gin.MIMEJSON) == gin.MIMEJSON
}

func render(c *gin.Context, status int, page Page) {
	if wantsJSON(c) {
		c.JSON(status, page)
		return
	}
	c.HTML(status, string(page.Screen)+".tmpl", page)
}

// renderState loads and renders the screen for state. Portal search and
// selection are read from the query only on the officer route.
func (rs *RestfulServer) renderState(c *gin.Context, state viewstate.State, session *auth.Session, officerRoute bool) {
	ctx := c.Request.Context()
	page := Page{State: state, Session: session}

	switch state.Mode {
	case viewstate.ModeFarmerView:
		if !rs.CheckFarmerLimiter(state.FarmerID) {
			rateLimited(c)
			return
		}
		d := view.BuildFarmerDashboard(rs.Loader.LoadFarmerDashboard(ctx, state.FarmerID), rs.now())
		page.Screen, page.Farmer = ScreenFarmerDashboard, &d

	case viewstate.ModeOfficerUnauthenticated:
		page.Screen = ScreenOfficerLogin

	case viewstate.ModeOfficerAuthenticated:
		var search, farmerID string
		if officerRoute {
			search, farmerID = c.Query("search"), c.Query("farmer_id")
		}
		p := rs.buildPortal(c, search, farmerID)
		page.Screen, page.Portal = ScreenOfficerPortal, &p

	default:
		l := view.BuildLanding(rs.Loader.LoadLanding(ctx))
		page.Screen, page.Landing = ScreenLanding, &l
	}

	render(c, http.StatusOK, page)
}

func rateLimited(c *gin.Context) {
	if wantsJSON(c) {
		c.JSON(http.StatusTooManyRequests, gin.H{"error": msgRateLimited})
		return
	}
	c.String(http.StatusTooManyRequests, msgRateLimitedPage)
}

func (rs *RestfulServer) buildPortal(c *gin.Context, search, farmerID string) view.Portal {
	ctx := c.Request.Context()
	portal := rs.Loader.LoadPortal(ctx)

	var detail *loader.FarmerDetail
	if farmerID != "" {
		d := rs.Loader.LoadFarmerDetail(ctx, farmerID)
		detail = &d
	}
	return view.BuildPortal(portal, detail, search, rs.now())
}

func (rs *RestfulServer) Index(c *gin.Context) {
	session := rs.currentSession(c)
	state := viewstate.New().Load(c.Query(viewstate.FarmerQueryKey), session != nil)
	rs.renderState(c, state, session, false)
}

func (rs *RestfulServer) Officer(c *gin.Context) {
	session := rs.currentSession(c)
	sel := viewstate.New()
	sel.Load("", session != nil)
	state := sel.Apply(viewstate.EventOfficerLoginRequested)
	rs.renderState(c, state, session, true)
}

func (rs *RestfulServer) OfficerLogin(c *gin.Context) {
	sel := viewstate.New()
	sel.Load("", false)
	state := sel.Apply(viewstate.EventOfficerLoginRequested)

	session, status, failure := rs.signIn(c)
	if session == nil {
		if wantsJSON(c) {
			c.JSON(status, gin.H{"error": failure, "state": state})
			return
		}
		render(c, status, Page{State: state, Screen: ScreenOfficerLogin, LoginError: loginMessage(status)})
		return
	}

	rs.setSessionCookie(c, session)
	state = sel.Apply(viewstate.EventSessionStarted)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"state": state, "session": session, "token": session.Token})
		return
	}
	c.Redirect(http.StatusSeeOther, "/officer")
}

func loginMessage(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "Enter a valid email address and password."
	case http.StatusUnauthorized:
		return "Invalid email or password."
	}
	return "Sign-in is unavailable right now. Please try again."
}

func (rs *RestfulServer) OfficerLogout(c *gin.Context) {
	session := rs.currentSession(c)
	sel := viewstate.New()
	sel.Load("", session != nil)

	if session != nil {
		if err := rs.Auth.SignOut(c.Request.Context(), session.Token); err != nil && !errors.Is(err, auth.ErrNoSession) {
			sessionLogger().Warn("sign-out failed", zap.String("officer_id", session.OfficerID), zap.Error(err))
		}
	}
	rs.clearSessionCookie(c)

	sel.Apply(viewstate.EventOfficerLoginRequested)
	state := sel.Apply(viewstate.EventLogout)
	if wantsJSON(c) {
		c.JSON(http.StatusOK, gin.H{"state": state})
		return
	}
	c.Redirect(http.StatusSeeOther, "/officer")
}
