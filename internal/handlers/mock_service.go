package handlers

import (
	"context"
	"net/http"
	"time"

	"field_station/internal/models"
	"field_station/internal/service"

	"github.com/gin-gonic/gin"
)

// ---- Service Mocks ----

type mockAuth struct {
	signUpID      int
	signUpErr     error
	genTokenToken string
	genTokenErr   error
	parseID       int
	parseErr      error

	lastSignUpUsername string
	lastSignUpPassword string
	lastGenUsername    string
	lastGenPassword    string
	lastParseToken     string
}

func (m *mockAuth) SignUp(username, password string) (int, error) {
	m.lastSignUpUsername = username
	m.lastSignUpPassword = password
	return m.signUpID, m.signUpErr
}
func (m *mockAuth) GenerateToken(username, password string) (string, error) {
	m.lastGenUsername = username
	m.lastGenPassword = password
	return m.genTokenToken, m.genTokenErr
}
func (m *mockAuth) ParseToken(token string) (int, error) {
	m.lastParseToken = token
	return m.parseID, m.parseErr
}

type mockRelay struct {
	onErr    error
	offErr   error
	onCalls  int
	offCalls int
}

func (m *mockRelay) TurnOn(ctx context.Context) error {
	m.onCalls++
	return m.onErr
}
func (m *mockRelay) TurnOff(ctx context.Context) error {
	m.offCalls++
	return m.offErr
}

type mockMonitoring struct {
	latest    models.CollectedRecord
	latestErr error
	recent    []models.CollectedRecord
	recentErr error
	lastQuery service.RecordQuery
}

func (m *mockMonitoring) Latest(ctx context.Context) (models.CollectedRecord, error) {
	return m.latest, m.latestErr
}
func (m *mockMonitoring) Recent(ctx context.Context, q service.RecordQuery) ([]models.CollectedRecord, error) {
	m.lastQuery = q
	return m.recent, m.recentErr
}

type mockEventLog struct {
	resp      []models.StationEvent
	err       error
	lastFrom  time.Time
	lastTo    time.Time
	lastType  string
	lastLimit int
}

func (m *mockEventLog) List(ctx context.Context, f service.LogFilter) ([]models.StationEvent, error) {
	m.lastFrom = f.From
	m.lastTo = f.To
	m.lastType = f.Type
	m.lastLimit = f.Limit
	return m.resp, m.err
}

// ---- Shared Test Helpers ----

func newTestRouter(s *service.Service) *gin.Engine {
	h := NewHandler(s, nil)
	gin.SetMode(gin.TestMode)
	return h.InitRoutes()
}

func authHeader(token string) http.Header {
	h := http.Header{}
	if token != "" {
		h.Set("Authorization", "Bearer "+token)
	}
	return h
}
