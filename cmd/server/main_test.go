package main

import (
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"cafe-pos/internal/config"
	"cafe-pos/internal/middleware"
	"cafe-pos/internal/notify"
	"cafe-pos/internal/staff"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewServer(t *testing.T) {
	st, err := memoryStores("1234")
	require.NoError(t, err)

	cfg := &config.Config{JWTSecret: "secret", CORSOrigin: "*"}
	router := newServer(cfg, st, notify.NewNopNotifier(), middleware.NewRateLimiter())

	t.Run("Health", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/health", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("API needs a token", func(t *testing.T) {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/api/tables", nil))
		assert.Equal(t, http.StatusUnauthorized, rr.Code)
	})
}

func TestMemoryStores(t *testing.T) {
	t.Run("With PIN", func(t *testing.T) {
		st, err := memoryStores("1234")
		require.NoError(t, err)

		tables, err := st.tables.List(t.Context())
		require.NoError(t, err)
		assert.Len(t, tables, 20)

		cashier, err := st.staff.FindByUsername(t.Context(), "cashier")
		require.NoError(t, err)
		require.NotNil(t, cashier)
		assert.True(t, staff.CheckPIN("1234", cashier.PINHash))
	})

	t.Run("Without PIN", func(t *testing.T) {
		st, err := memoryStores("")
		require.NoError(t, err)

		cashier, err := st.staff.FindByUsername(t.Context(), "cashier")
		require.NoError(t, err)
		assert.Nil(t, cashier)
	})
}

func TestOpenStores_Postgres(t *testing.T) {
	database, mock, err := sqlmock.New()
	require.NoError(t, err)

	origInitDB := initDBFunc
	defer func() { initDBFunc = origInitDB }()
	initDBFunc = func(*config.Config) *sql.DB { return database }

	st, closeStores, err := openStores(&config.Config{StoreDriver: config.StorePostgres})
	require.NoError(t, err)
	assert.NotNil(t, st.orders)

	mock.ExpectClose()
	closeStores()
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewNotifier_WithoutBroker(t *testing.T) {
	n, closeNotifier := newNotifier(&config.Config{})
	defer closeNotifier()

	assert.NoError(t, n.Publish(t.Context(), notify.Event{Type: notify.EventOrderCreated}))
}

func TestRun(t *testing.T) {
	origStartServer := startServerFunc
	defer func() { startServerFunc = origStartServer }()
	startServerFunc = func(*http.Server) error { return nil }

	t.Setenv("APP_PORT", "8080")
	t.Setenv("APP_ENV", "test")
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("DEV_STAFF_PIN", "1234")
	t.Setenv("JWT_SECRET", "secret")
	t.Setenv("AMQP_URL", "")

	assert.NoError(t, run())
}

func TestRun_MissingSecret(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("JWT_SECRET", "")

	assert.ErrorIs(t, run(), staff.ErrMissingSecret)
}
