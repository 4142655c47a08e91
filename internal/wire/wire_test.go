package wire

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hotel-booking/internal/data/repository"
	"hotel-booking/pkg/utils"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *utils.Config {
	return &utils.Config{
		Session: utils.SessionConfig{ExpiryHours: 1},
		Sweeper: utils.SweeperConfig{Enabled: true, Schedule: "@every 1m", Timeout: 30 * time.Second},
		CORS:    utils.CORSConfig{AllowedOrigins: []string{"https://hotels.example"}},
	}
}

func newTestApp(t *testing.T) (*App, pgxmock.PgxPoolIface) {
	t.Helper()
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mock.Close)

	app, err := Wiring(repository.NewRepository(mock, zap.NewNop()), mock, testConfig(), zap.NewNop())
	require.NoError(t, err)
	return app, mock
}

func TestHealth(t *testing.T) {
	app, mock := newTestApp(t)

	mock.ExpectPing()
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "OK", w.Body.String())

	mock.ExpectPing().WillReturnError(errors.New("connection refused"))
	w = httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_RequireSession(t *testing.T) {
	app, mock := newTestApp(t)

	routes := []struct {
		method string
		path   string
	}{
		{http.MethodGet, "/api/v1/booking/history"},
		{http.MethodPost, "/api/v1/booking/hotels/h/rooms/r"},
		{http.MethodPut, "/api/v1/booking/order/1"},
		{http.MethodDelete, "/api/v1/booking/history/1"},
		{http.MethodPost, "/api/v1/hotels"},
		{http.MethodDelete, "/api/v1/hotels/1/rooms/2"},
		{http.MethodGet, "/api/v1/users"},
		{http.MethodGet, "/api/v1/users/profile"},
		{http.MethodPost, "/api/v1/users/logout"},
	}

	for _, route := range routes {
		t.Run(route.method+" "+route.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			app.Router.ServeHTTP(w, httptest.NewRequest(route.method, route.path, nil))
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}

	// None of these reach the database.
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRoutes_PublicCatalogValidatesIDs(t *testing.T) {
	app, _ := newTestApp(t)

	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/hotels/not-a-uuid", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid hotel id!")
}

func TestRoutes_CORSPreflight(t *testing.T) {
	app, _ := newTestApp(t)

	r := httptest.NewRequest(http.MethodOptions, "/api/v1/hotels", nil)
	r.Header.Set("Origin", "https://hotels.example")
	r.Header.Set("Access-Control-Request-Method", http.MethodGet)
	w := httptest.NewRecorder()
	app.Router.ServeHTTP(w, r)

	assert.Equal(t, "https://hotels.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestWiring_RejectsBadSweepSchedule(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	config := testConfig()
	config.Sweeper.Schedule = "whenever"

	_, err = Wiring(repository.NewRepository(mock, zap.NewNop()), mock, config, zap.NewNop())
	assert.Error(t, err)
}
