package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/viewstate"
)

// resolveSelector builds the request's selector the same way the screen
// routes do. officer=1 on the query counts as an officer-login request.
func (rs *RestfulServer) resolveSelector(c *gin.Context, session *auth.Session) *viewstate.Selector {
	sel := viewstate.New()
	sel.Load(c.Query(viewstate.FarmerQueryKey), session != nil)
	if c.Query("officer") == "1" {
		sel.Apply(viewstate.EventOfficerLoginRequested)
	}
	return sel
}

func (rs *RestfulServer) GetView(c *gin.Context) {
	session := rs.currentSession(c)
	c.JSON(http.StatusOK, rs.resolveSelector(c, session).State())
}

// StreamView sends the current view state, then every change caused by
// session events that belong to this client's session, as server-sent
// events. It ends when the client goes away.
func (rs *RestfulServer) StreamView(c *gin.Context) {
	session := rs.currentSession(c)
	sel := rs.resolveSelector(c, session)

	events, cancel := rs.Auth.Subscribe()
	defer cancel()

	var token, officerID string
	if session != nil {
		token, officerID = session.Token, session.OfficerID
	}
	match := func(ev auth.SessionEvent) bool {
		return (token != "" && ev.Token == token) || (officerID != "" && ev.OfficerID == officerID)
	}
	initial := sel.State()
	states := sel.Watch(c.Request.Context(), events, match)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")
	c.Status(http.StatusOK)

	c.SSEvent("state", initial)
	c.Writer.Flush()
	for state := range states {
		c.SSEvent("state", state)
		c.Writer.Flush()
	}
}
