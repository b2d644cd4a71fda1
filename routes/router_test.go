package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"transport-report-be/controllers"
	"transport-report-be/middlewares"
	"transport-report-be/repository"
	"transport-report-be/services"
	"transport-report-be/session"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type testServer struct {
	router *gin.Engine
	repo   *repository.MemoryRepository
}

func newTestServer(t *testing.T, seed bool) *testServer {
	t.Helper()
	gin.SetMode(gin.TestMode)

	repo := repository.NewMemoryRepository()
	if seed {
		_, err := services.SeedDemoReports(context.Background(), repo, time.Now())
		require.NoError(t, err)
	}

	directory, err := session.NewDirectory(bcrypt.MinCost, false)
	require.NoError(t, err)
	log := zap.NewNop()

	r := NewRouter(Options{
		Sessions:         session.NewManager(directory, session.NewMemoryStore(), "test-secret", time.Hour, log),
		Reports:          services.NewReportService(repo, time.Second, log),
		Logger:           log,
		CallTimeout:      time.Second,
		Cookie:           controllers.CookieSettings{},
		RateLimitPrefix:  "test_limit",
		SubmitRateLimit:  5,
		SubmitRateWindow: time.Minute,
	})
	return &testServer{router: r, repo: repo}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func (s *testServer) login(t *testing.T) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
		"email":    "police@transport.gov",
		"password": session.DemoPassword,
		"role":     "traffic_police",
	}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Token)
	return resp.Token
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func validReport() gin.H {
	return gin.H{
		"type":         "poor_service",
		"title":        "Bus never arrived",
		"description":  "The 7:15 bus did not show up and nobody announced it.",
		"startStation": "North Terminal",
		"endStation":   "City Center",
	}
}

func TestPing(t *testing.T) {
	s := newTestServer(t, false)
	w := s.do(t, http.MethodGet, "/ping", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "pong", decode(t, w)["message"])
}

func TestLogin(t *testing.T) {
	s := newTestServer(t, false)

	t.Run("success sets cookie and returns user", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "manager@busstation.com",
			"password": "password123",
			"role":     "bus_station_manager",
		}, "")
		require.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		user := body["user"].(map[string]interface{})
		assert.Equal(t, "Sarah Johnson", user["name"])
		assert.Equal(t, "bus_station_manager", user["role"])
		assert.NotEmpty(t, body["token"])

		var found bool
		for _, c := range w.Result().Cookies() {
			if c.Name == middlewares.AuthCookie {
				found = true
				assert.True(t, c.HttpOnly)
			}
		}
		assert.True(t, found, "auth cookie missing")
	})

	t.Run("wrong password", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "police@transport.gov",
			"password": "nope",
			"role":     "traffic_police",
		}, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Invalid credentials", decode(t, w)["error"])
	})

	t.Run("missing role fails validation", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/auth/login", gin.H{
			"email":    "police@transport.gov",
			"password": "password123",
		}, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode(t, w)["fields"].(map[string]interface{})
		assert.Equal(t, "Please select your role", fields["role"])
	})
}

func TestSessionLifecycle(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodGet, "/api/auth/me", nil, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	token := s.login(t)
	w = s.do(t, http.MethodGet, "/api/auth/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "police@transport.gov", decode(t, w)["email"])

	w = s.do(t, http.MethodPost, "/api/auth/logout", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Logged out successfully", decode(t, w)["message"])

	w = s.do(t, http.MethodGet, "/api/auth/me", nil, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSessionFromCookie(t *testing.T) {
	s := newTestServer(t, false)
	token := s.login(t)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: middlewares.AuthCookie, Value: token})
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCreateReport(t *testing.T) {
	s := newTestServer(t, false)

	w := s.do(t, http.MethodPost, "/api/reports", validReport(), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	body := decode(t, w)
	assert.Equal(t, "Report submitted successfully! Authorities have been notified.", body["message"])
	report := body["report"].(map[string]interface{})
	assert.Equal(t, "Anonymous", report["reportedBy"])
	assert.Equal(t, "pending", report["status"])
	assert.Equal(t, "medium", report["priority"])
	assert.NotEmpty(t, report["id"])

	stored, err := s.repo.List(context.Background())
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, report["id"], stored[0].ID)
}

func TestCreateReport_Validation(t *testing.T) {
	s := newTestServer(t, false)

	input := validReport()
	input["title"] = "Bus"
	input["description"] = "too short"
	w := s.do(t, http.MethodPost, "/api/reports", input, "")
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decode(t, w)
	assert.Equal(t, "Validation failed", body["error"])
	fields := body["fields"].(map[string]interface{})
	assert.Equal(t, "Title must be at least 5 characters", fields["title"])
	assert.Equal(t, "Description must be at least 20 characters", fields["description"])

	stored, err := s.repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stored)
}

func TestCreateReport_MalformedJSON(t *testing.T) {
	s := newTestServer(t, false)
	req := httptest.NewRequest(http.MethodPost, "/api/reports", bytes.NewBufferString("{"))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestReportsRequireSession(t *testing.T) {
	s := newTestServer(t, true)
	for _, path := range []string{"/api/reports", "/api/reports/1", "/api/dashboard"} {
		w := s.do(t, http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
}

func TestListReports(t *testing.T) {
	s := newTestServer(t, true)
	token := s.login(t)

	tests := []struct {
		name  string
		query string
		want  int
	}{
		{"all", "", 4},
		{"all sentinel", "?status=all", 4},
		{"status", "?status=resolved", 1},
		{"search title", "?search=fuel", 1},
		{"search case insensitive", "?search=BUS", 3},
		{"search and status", "?search=bus&status=pending", 1},
		{"no match", "?search=zeppelin", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := s.do(t, http.MethodGet, "/api/reports"+tt.query, nil, token)
			require.Equal(t, http.StatusOK, w.Code)
			body := decode(t, w)
			assert.EqualValues(t, tt.want, body["totalReports"])
			assert.Len(t, body["reports"], tt.want)
		})
	}
}

func TestGetReport(t *testing.T) {
	s := newTestServer(t, true)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/reports/3", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Gas station out of fuel", decode(t, w)["title"])

	w = s.do(t, http.MethodGet, "/api/reports/999", nil, token)
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Report not found", decode(t, w)["error"])
}

func TestDashboard(t *testing.T) {
	s := newTestServer(t, true)
	token := s.login(t)

	w := s.do(t, http.MethodGet, "/api/dashboard?status=urgent", nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "Officer John Smith", user["name"])

	stats := body["stats"].(map[string]interface{})
	assert.EqualValues(t, 4, stats["totalReports"])
	assert.EqualValues(t, 1, stats["pendingReports"])
	assert.EqualValues(t, 1, stats["resolvedReports"])
	assert.EqualValues(t, 1, stats["urgentReports"])
	assert.EqualValues(t, 24.5, stats["averageResolutionTime"])
	assert.EqualValues(t, 25, body["resolutionRate"])

	labels := body["categoryLabels"].(map[string]interface{})
	assert.Equal(t, "Traffic Accident", labels["traffic_accident"])

	reports := body["reports"].([]interface{})
	require.Len(t, reports, 1)
	assert.Equal(t, "urgent", reports[0].(map[string]interface{})["status"])
}

func TestCORSConfig(t *testing.T) {
	open := corsConfig(nil)
	assert.True(t, open.AllowAllOrigins)
	assert.False(t, open.AllowCredentials)
	assert.Contains(t, open.AllowHeaders, "Authorization")

	restricted := corsConfig([]string{"https://reports.example.com"})
	assert.False(t, restricted.AllowAllOrigins)
	assert.True(t, restricted.AllowCredentials)
	assert.Equal(t, []string{"https://reports.example.com"}, restricted.AllowOrigins)
}
