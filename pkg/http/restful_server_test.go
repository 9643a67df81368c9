package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"go.uber.org/mock/gomock"

	"agroalert.dev/dashboard-service/pkg/auth"
	"agroalert.dev/dashboard-service/pkg/common"
	"agroalert.dev/dashboard-service/pkg/db"
	"agroalert.dev/dashboard-service/pkg/export"
	"agroalert.dev/dashboard-service/pkg/limiter"
	"agroalert.dev/dashboard-service/pkg/loader"
	"agroalert.dev/dashboard-service/pkg/models"
	"agroalert.dev/dashboard-service/pkg/store/mocks"
	_ "agroalert.dev/dashboard-service/pkg/testing"
	"agroalert.dev/dashboard-service/pkg/viewstate"
)

const officerPassword = "correct-horse-battery"

var testNow = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

type testServer struct {
	rs       *RestfulServer
	store    *mocks.MockStore
	provider *auth.LocalProvider
	email    string
}

func setupTestServer(t *testing.T) *testServer {
	common.SetTestLoggerNop()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	mockStore := mocks.NewMockStore(ctrl)

	conn := db.GetInstance(db.UseMemorySqliteDialector()).Conn
	provider := auth.NewLocalProvider(conn, "http-test-secret-0123456789", time.Hour)
	email := uuid.NewString() + "@extension.example"
	require.NoError(t, provider.CreateOfficer(context.Background(), &models.ExtensionOfficer{
		Name:   "Grace Mutua",
		Email:  email,
		Region: "Rift Valley",
	}, officerPassword))

	rs := &RestfulServer{
		Server:     gin.New(),
		Loader:     loader.New(mockStore),
		Store:      mockStore,
		Auth:       provider,
		SessionTTL: time.Hour,
		Now:        func() time.Time { return testNow },
		// no limiter by default, tests that need one assign rs.RateLimiterStore
	}
	rs.Setup()

	return &testServer{rs: rs, store: mockStore, provider: provider, email: email}
}

func (ts *testServer) do(method, target string, body []byte, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, bytes.NewReader(body))
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	ts.rs.Server.ServeHTTP(w, req)
	return w
}

func (ts *testServer) getJSON(target string, headers map[string]string) *httptest.ResponseRecorder {
	h := map[string]string{"Accept": gin.MIMEJSON}
	for k, v := range headers {
		h[k] = v
	}
	return ts.do(http.MethodGet, target, nil, h)
}

func (ts *testServer) login(t *testing.T) string {
	body, _ := json.Marshal(LoginRequest{Email: ts.email, Password: officerPassword})
	w := ts.do(http.MethodPost, "/api/auth/login", body, map[string]string{"Content-Type": gin.MIMEJSON})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func bearer(token string) map[string]string {
	return map[string]string{"Authorization": "Bearer " + token}
}

func (ts *testServer) expectDashboard(farmer *models.Farmer, farmerID string) {
	ts.store.EXPECT().GetFarmer(gomock.Any(), farmerID).Return(farmer, nil)
	if farmer != nil {
		ts.store.EXPECT().GetWeatherByLocation(gomock.Any(), farmer.LocationName).
			Return(&models.WeatherData{LocationName: farmer.LocationName, Temperature: 24, Forecast: "Sunny"}, nil)
	}
	planted := models.NewDate(2025, time.February, 13)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), farmerID).Return([]models.FarmerCrop{{
		ID: "fc-1", FarmerID: farmerID, PlantingDate: &planted, AreaHectares: 1.5, Status: "growing",
		Crop: &models.Crop{Name: "Beans", GrowthDays: 60},
	}}, nil)
	ts.store.EXPECT().ListAlerts(gomock.Any(), farmerID, common.AlertsOnFarmerDashboard).Return([]models.Alert{{
		ID: "a-1", FarmerID: farmerID, AlertType: models.AlertTypeWeatherWarning, Message: "Storm coming", SentAt: testNow.Add(-3 * time.Hour),
	}}, nil)
}

func (ts *testServer) expectPortal() {
	ts.store.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{
		{ID: "f-1", Name: "Amina Wanjiru", LocationName: "Nakuru"},
		{ID: "f-2", Name: "Brian Kiptoo", LocationName: "Eldoret"},
	}, nil)
	ts.store.EXPECT().ListWeather(gomock.Any()).Return([]models.WeatherData{{LocationName: "Nakuru", Temperature: 24}}, nil)
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) Page {
	var page Page
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &page), w.Body.String())
	return page
}

func TestHealthCheck(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodGet, "/healthz", nil, nil)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
}

func TestIndexLanding(t *testing.T) {
	ts := setupTestServer(t)

	ts.store.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{{ID: "f-1", Name: "Amina Wanjiru", LocationName: "Nakuru"}}, nil).Times(2)

	w := ts.getJSON("/", nil)
	require.Equal(t, http.StatusOK, w.Code)
	page := decodePage(t, w)
	assert.Equal(t, viewstate.ModeAnonymous, page.State.Mode)
	assert.Equal(t, ScreenLanding, page.Screen)
	require.NotNil(t, page.Landing)
	assert.Equal(t, "?farmer=f-1", page.Landing.Farmers[0].DashboardLink)

	w = ts.do(http.MethodGet, "/", nil, map[string]string{"Accept": "text/html"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Welcome Farmers!")
	assert.Contains(t, w.Body.String(), "Amina Wanjiru")
}

func TestIndexLandingEmptyAndFailed(t *testing.T) {
	ts := setupTestServer(t)

	ts.store.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{}, nil)
	w := ts.do(http.MethodGet, "/", nil, map[string]string{"Accept": "text/html"})
	assert.Contains(t, w.Body.String(), "No farmers registered yet")

	ts.store.EXPECT().ListFarmers(gomock.Any()).Return(nil, assert.AnError)
	page := decodePage(t, ts.getJSON("/", nil))
	assert.Equal(t, []string{"Could not load farmers"}, page.Landing.Errors)
}

func TestIndexFarmerView(t *testing.T) {
	ts := setupTestServer(t)
	farmer := &models.Farmer{ID: "f-1", Name: "Amina", LocationName: "Nakuru"}

	ts.expectDashboard(farmer, "f-1")
	page := decodePage(t, ts.getJSON("/?farmer=f-1", nil))
	assert.Equal(t, viewstate.State{Mode: viewstate.ModeFarmerView, FarmerID: "f-1"}, page.State)
	assert.Equal(t, ScreenFarmerDashboard, page.Screen)
	require.NotNil(t, page.Farmer)
	assert.Equal(t, "Welcome back, Amina!", page.Farmer.Farmer.Welcome)
	assert.Equal(t, 50, page.Farmer.Crops[0].Percent)
	assert.Equal(t, "3 hours ago", page.Farmer.Alerts[0].When)
	assert.Equal(t, "1.5 ha", page.Farmer.Totals.AreaLabel)

	// a farmer link stays a farmer view even for a signed-in officer
	token := ts.login(t)
	ts.expectDashboard(farmer, "f-1")
	page = decodePage(t, ts.getJSON("/?farmer=f-1", bearer(token)))
	assert.Equal(t, viewstate.ModeFarmerView, page.State.Mode)

	ts.expectDashboard(nil, "ghost")
	w := ts.do(http.MethodGet, "/?farmer=ghost", nil, map[string]string{"Accept": "text/html"})
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Farmer not found")
}

func TestOfficerLoginScreen(t *testing.T) {
	ts := setupTestServer(t)

	page := decodePage(t, ts.getJSON("/officer", nil))
	assert.Equal(t, viewstate.ModeOfficerUnauthenticated, page.State.Mode)
	assert.Equal(t, ScreenOfficerLogin, page.Screen)

	w := ts.do(http.MethodGet, "/officer", nil, map[string]string{"Accept": "text/html"})
	assert.Contains(t, w.Body.String(), `action="/officer/login"`)
}

func TestOfficerLoginForm(t *testing.T) {
	ts := setupTestServer(t)
	form := map[string]string{"Content-Type": "application/x-www-form-urlencoded", "Accept": "text/html"}

	bad := url.Values{"email": {ts.email}, "password": {"wrong"}}
	w := ts.do(http.MethodPost, "/officer/login", []byte(bad.Encode()), form)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid email or password.")

	invalid := url.Values{"email": {"not-an-email"}, "password": {"x"}}
	w = ts.do(http.MethodPost, "/officer/login", []byte(invalid.Encode()), form)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	good := url.Values{"email": {ts.email}, "password": {officerPassword}}
	w = ts.do(http.MethodPost, "/officer/login", []byte(good.Encode()), form)
	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/officer", w.Header().Get("Location"))

	var cookie *http.Cookie
	for _, c := range w.Result().Cookies() {
		if c.Name == DefaultSessionCookie {
			cookie = c
		}
	}
	require.NotNil(t, cookie)
	assert.True(t, cookie.HttpOnly)

	ts.expectPortal()
	page := decodePage(t, ts.getJSON("/officer?search=kip", map[string]string{"Cookie": cookie.Name + "=" + cookie.Value}))
	assert.Equal(t, viewstate.ModeOfficerAuthenticated, page.State.Mode)
	assert.Equal(t, ScreenOfficerPortal, page.Screen)
	require.NotNil(t, page.Portal)
	require.Len(t, page.Portal.Directory, 1)
	assert.Equal(t, "f-2", page.Portal.Directory[0].ID)
	require.NotNil(t, page.Session)
	assert.Equal(t, "Grace Mutua", page.Session.Name)
}

func TestAuthAPIFlow(t *testing.T) {
	ts := setupTestServer(t)

	w := ts.do(http.MethodPost, "/api/auth/login", []byte(`{"email":"nobody"}`), map[string]string{"Content-Type": gin.MIMEJSON})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	token := ts.login(t)

	w = ts.getJSON("/api/auth/session", bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	var session auth.Session
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &session))
	assert.Equal(t, ts.email, session.Email)

	// an officer session on / shows the portal
	ts.expectPortal()
	page := decodePage(t, ts.getJSON("/?search=ignored", bearer(token)))
	assert.Equal(t, ScreenOfficerPortal, page.Screen)
	assert.Len(t, page.Portal.Directory, 2)

	w = ts.do(http.MethodPost, "/api/auth/logout", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":{"mode":"officer_unauthenticated"}}`, w.Body.String())

	w = ts.getJSON("/api/auth/session", bearer(token))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = ts.do(http.MethodPost, "/api/auth/logout", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOfficerLogout(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	w := ts.do(http.MethodPost, "/officer/logout", nil, map[string]string{
		"Authorization": "Bearer " + token,
		"Accept":        gin.MIMEJSON,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"state":{"mode":"officer_unauthenticated"}}`, w.Body.String())

	page := decodePage(t, ts.getJSON("/officer", bearer(token)))
	assert.Equal(t, ScreenOfficerLogin, page.Screen)
}

func TestGetView(t *testing.T) {
	ts := setupTestServer(t)

	assert.JSONEq(t, `{"mode":"anonymous"}`, ts.getJSON("/api/view", nil).Body.String())
	assert.JSONEq(t, `{"mode":"farmer_view","farmer_id":"f-9"}`, ts.getJSON("/api/view?farmer=f-9", nil).Body.String())
	assert.JSONEq(t, `{"mode":"officer_unauthenticated"}`, ts.getJSON("/api/view?officer=1", nil).Body.String())

	token := ts.login(t)
	assert.JSONEq(t, `{"mode":"officer_authenticated"}`, ts.getJSON("/api/view?officer=1", bearer(token)).Body.String())
}

func TestFarmerDashboardAPIRateLimit(t *testing.T) {
	ts := setupTestServer(t)
	ts.rs.RateLimiterStore = limiter.NewRateLimiterStore(0.001, 1)
	farmer := &models.Farmer{ID: "f-1", Name: "Amina", LocationName: "Nakuru"}

	ts.expectDashboard(farmer, "f-1")
	w := ts.getJSON("/api/farmers/f-1/dashboard", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"welcome":"Welcome back, Amina!"`)

	w = ts.getJSON("/api/farmers/f-1/dashboard", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	ts.expectDashboard(&models.Farmer{ID: "f-2", LocationName: "Eldoret"}, "f-2")
	w = ts.getJSON("/api/farmers/f-2/dashboard", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestListFarmersAPI(t *testing.T) {
	ts := setupTestServer(t)
	ts.store.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{{ID: "f-1", Name: "Amina"}}, nil)

	w := ts.getJSON("/api/farmers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"dashboard_link":"?farmer=f-1"`)
}

func TestOfficerAPIRequiresSession(t *testing.T) {
	ts := setupTestServer(t)

	for _, path := range []string{"/api/officer/portal", "/api/officer/farmers/f-1", "/api/officer/farmers/export.xlsx"} {
		w := ts.getJSON(path, nil)
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w := ts.getJSON("/api/officer/portal", bearer("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestOfficerPortalAPI(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	ts.expectPortal()
	ts.store.EXPECT().GetFarmer(gomock.Any(), "f-1").Return(&models.Farmer{ID: "f-1", Name: "Amina Wanjiru", Latitude: -0.30309, Longitude: 36.08}, nil)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), "f-1").Return([]models.FarmerCrop{}, nil)
	ts.store.EXPECT().ListAlerts(gomock.Any(), "f-1", 0).Return([]models.Alert{{ID: "a-1", SentAt: testNow}}, nil)

	w := ts.getJSON("/api/officer/portal?search=amina&farmer_id=f-1", bearer(token))
	require.Equal(t, http.StatusOK, w.Code)

	var portal struct {
		Totals struct {
			Farmers, Locations, Alerts int
		} `json:"totals"`
		Directory []struct {
			ID       string `json:"id"`
			Selected bool   `json:"selected"`
		} `json:"directory"`
		Selected struct {
			Coordinates       string `json:"coordinates"`
			CropsEmptyMessage string `json:"crops_empty_message"`
		} `json:"selected"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &portal))
	assert.Equal(t, 2, portal.Totals.Farmers)
	assert.Equal(t, 2, portal.Totals.Locations)
	assert.Equal(t, 1, portal.Totals.Alerts)
	require.Len(t, portal.Directory, 1)
	assert.True(t, portal.Directory[0].Selected)
	assert.Equal(t, "-0.3031, 36.0800", portal.Selected.Coordinates)
	assert.Equal(t, "No crops planted yet", portal.Selected.CropsEmptyMessage)
}

func TestOfficerFarmerDetailAPI(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	ts.store.EXPECT().GetFarmer(gomock.Any(), "ghost").Return(nil, nil)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), "ghost").Return(nil, nil)
	ts.store.EXPECT().ListAlerts(gomock.Any(), "ghost", 0).Return(nil, nil)
	w := ts.getJSON("/api/officer/farmers/ghost", bearer(token))
	assert.Equal(t, http.StatusNotFound, w.Code)

	ts.store.EXPECT().GetFarmer(gomock.Any(), "broken").Return(nil, assert.AnError)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), "broken").Return(nil, nil)
	ts.store.EXPECT().ListAlerts(gomock.Any(), "broken", 0).Return(nil, nil)
	w = ts.getJSON("/api/officer/farmers/broken", bearer(token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)

	ts.store.EXPECT().GetFarmer(gomock.Any(), "f-1").Return(&models.Farmer{ID: "f-1", Name: "Amina"}, nil)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), "f-1").Return(nil, assert.AnError)
	ts.store.EXPECT().ListAlerts(gomock.Any(), "f-1", 0).Return(nil, nil)
	w = ts.getJSON("/api/officer/farmers/f-1", bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"errors":["Could not load crops"]`)
	assert.Contains(t, w.Body.String(), `"alerts_empty_message":"No alerts sent yet"`)
}

func TestExportFarmers(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	ts.store.EXPECT().ListFarmers(gomock.Any()).Return([]models.Farmer{{ID: "f-1", Name: "Amina", Phone: "+254700000001", LocationName: "Nakuru"}}, nil)
	ts.store.EXPECT().ListAllFarmerCrops(gomock.Any()).Return([]models.FarmerCrop{{FarmerID: "f-1"}, {FarmerID: "f-1"}}, nil)

	w := ts.do(http.MethodGet, "/api/officer/farmers/export.xlsx", nil, bearer(token))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, export.ContentType, w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), export.FileName)

	f, err := excelize.OpenReader(bytes.NewReader(w.Body.Bytes()))
	require.NoError(t, err)
	defer f.Close()
	rows, err := f.GetRows(export.SheetName)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2", rows[1][5])

	ts.store.EXPECT().ListFarmers(gomock.Any()).Return(nil, assert.AnError)
	w = ts.do(http.MethodGet, "/api/officer/farmers/export.xlsx", nil, bearer(token))
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func readState(t *testing.T, lines <-chan string) viewstate.State {
	t.Helper()
	for {
		select {
		case line, ok := <-lines:
			require.True(t, ok, "stream closed early")
			if data, found := strings.CutPrefix(line, "data:"); found {
				var state viewstate.State
				require.NoError(t, json.Unmarshal([]byte(data), &state))
				return state
			}
		case <-time.After(2 * time.Second):
			t.Fatal("timed out waiting for a state event")
		}
	}
}

// openStream starts a view stream for token and returns its lines. The
// stream is closed when the test ends.
func openStream(t *testing.T, srv *httptest.Server, token string) <-chan string {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/view/stream", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	t.Cleanup(func() {
		cancel()
		_ = resp.Body.Close()
	})
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	lines := make(chan string)
	go func() {
		defer close(lines)
		buf := make([]byte, 4096)
		var pending string
		for {
			n, err := resp.Body.Read(buf)
			pending += string(buf[:n])
			for {
				i := strings.IndexByte(pending, '\n')
				if i < 0 {
					break
				}
				select {
				case lines <- pending[:i]:
				case <-ctx.Done():
					return
				}
				pending = pending[i+1:]
			}
			if err != nil {
				return
			}
		}
	}()
	return lines
}

func TestStreamViewFollowsSession(t *testing.T) {
	ts := setupTestServer(t)
	srv := httptest.NewServer(ts.rs.Server)
	t.Cleanup(srv.Close)

	token := ts.login(t)
	lines := openStream(t, srv, token)

	assert.Equal(t, viewstate.ModeOfficerAuthenticated, readState(t, lines).Mode)

	require.NoError(t, ts.provider.SignOut(context.Background(), token))
	assert.Equal(t, viewstate.ModeOfficerUnauthenticated, readState(t, lines).Mode)
}

func TestStreamViewNeverRepeatsAState(t *testing.T) {
	ts := setupTestServer(t)
	srv := httptest.NewServer(ts.rs.Server)
	t.Cleanup(srv.Close)

	for range 5 {
		token := ts.login(t)

		// sign out while the stream is being set up
		signedOut := make(chan struct{})
		go func() {
			defer close(signedOut)
			_ = ts.provider.SignOut(context.Background(), token)
		}()
		lines := openStream(t, srv, token)
		<-signedOut

		var states []viewstate.State
	collect:
		for {
			select {
			case line, ok := <-lines:
				if !ok {
					break collect
				}
				if data, found := strings.CutPrefix(line, "data:"); found {
					var state viewstate.State
					require.NoError(t, json.Unmarshal([]byte(data), &state))
					states = append(states, state)
				}
			case <-time.After(300 * time.Millisecond):
				break collect
			}
		}

		require.NotEmpty(t, states)
		for i := 1; i < len(states); i++ {
			assert.NotEqual(t, states[i-1], states[i], "state sent twice: %v", states)
		}
	}
}

func TestFarmerDashboardHTML(t *testing.T) {
	ts := setupTestServer(t)
	ts.expectDashboard(&models.Farmer{ID: "f-1", Name: "Amina", LocationName: "Nakuru"}, "f-1")

	w := ts.do(http.MethodGet, "/?farmer=f-1", nil, map[string]string{"Accept": "text/html"})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, want := range []string{
		"Welcome back, Amina!",
		"Weather in Nakuru",
		"Sunny",
		"1.5 ha",
		"Beans",
		"weather warning",
		"Storm coming",
		"3 hours ago",
	} {
		assert.Contains(t, body, want)
	}
	assert.NotContains(t, body, "Farmer not found")
}

func TestOfficerPortalHTMLWithSelectedFarmer(t *testing.T) {
	ts := setupTestServer(t)
	token := ts.login(t)

	ts.expectPortal()
	planted := models.NewDate(2024, time.November, 1)
	ts.store.EXPECT().GetFarmer(gomock.Any(), "f-1").
		Return(&models.Farmer{ID: "f-1", Name: "Amina Wanjiru", LocationName: "Nakuru", Latitude: -0.30309, Longitude: 36.08}, nil)
	ts.store.EXPECT().ListFarmerCrops(gomock.Any(), "f-1").Return([]models.FarmerCrop{{
		ID: "fc-1", FarmerID: "f-1", PlantingDate: &planted, AreaHectares: 2, Status: "growing",
		Crop: &models.Crop{Name: "Maize", GrowthDays: 120},
	}}, nil)
	ts.store.EXPECT().ListAlerts(gomock.Any(), "f-1", 0).Return([]models.Alert{{
		ID: "a-1", FarmerID: "f-1", AlertType: models.AlertTypeHarvestReady, Message: "Maize is ready", SentAt: testNow.Add(-2 * time.Hour),
	}}, nil)

	w := ts.do(http.MethodGet, "/officer?farmer_id=f-1", nil, map[string]string{
		"Accept":        "text/html",
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, w.Code)

	body := w.Body.String()
	for _, want := range []string{
		"Extension Officer Portal",
		"Grace Mutua",
		"Amina Wanjiru",
		"Brian Kiptoo",
		"Coordinates: -0.3031, 36.0800",
		"Maize",
		"harvest ready",
		"2 hours ago",
	} {
		assert.Contains(t, body, want)
	}
}

func TestFarmerViewRateLimitHTML(t *testing.T) {
	ts := setupTestServer(t)
	ts.rs.RateLimiterStore = limiter.NewRateLimiterStore(0.001, 1)
	ts.expectDashboard(&models.Farmer{ID: "f-1", Name: "Amina", LocationName: "Nakuru"}, "f-1")

	html := map[string]string{"Accept": "text/html"}
	w := ts.do(http.MethodGet, "/?farmer=f-1", nil, html)
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, "/?farmer=f-1", nil, html)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")
	assert.Contains(t, w.Body.String(), "Too many requests")

	w = ts.getJSON("/?farmer=f-1", nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.JSONEq(t, `{"error":"rate limit exceeded"}`, w.Body.String())
}
