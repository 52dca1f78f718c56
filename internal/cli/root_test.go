package cli

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"ledger/internal/http/middleware"
	"ledger/internal/logging"
	"ledger/internal/model"
	serviceMocks "ledger/internal/service/mocks"
)

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ledger", cmd.Use)
	assert.Contains(t, cmd.Long, "users table")
}

func TestCommandPresence(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"serve", "migrate"} {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := cmd.Find([]string{name})
			require.NoError(t, err)
			require.NotNil(t, subCmd)
			assert.Equal(t, name, subCmd.Name())
		})
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	level := cmd.PersistentFlags().Lookup("log-level")
	require.NotNil(t, level)
	assert.Equal(t, "", level.DefValue)

	format := cmd.PersistentFlags().Lookup("log-format")
	require.NotNil(t, format)
	assert.Equal(t, "", format.DefValue)
}

func TestServeCommandFlags(t *testing.T) {
	cmd := NewRootCommand()
	serveCmd, _, err := cmd.Find([]string{"serve"})
	require.NoError(t, err)

	require.NotNil(t, serveCmd.Flags().Lookup("port"))
	skip := serveCmd.Flags().Lookup("skip-migrate")
	require.NotNil(t, skip)
	assert.Equal(t, "false", skip.DefValue)
}

func TestLogFormatValidation(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"--log-format", "xml", "migrate"})

	err := cmd.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log format")
}

func TestRootOptions_Load(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("LOG_FORMAT", "json")

	cmd := NewRootCommand()
	opts := &RootOptions{LogFormat: "text"}

	cfg, log, err := opts.load(cmd)
	require.NoError(t, err)

	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, "warning", log.GetLevel().String())
}

func TestRootOptions_LoadInvalid(t *testing.T) {
	t.Setenv("USERS_DEFAULT_PAGE_SIZE", "-3")

	_, _, err := (&RootOptions{}).load(NewRootCommand())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "USERS_DEFAULT_PAGE_SIZE")
}

func TestNewApp(t *testing.T) {
	db, dbMock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	require.NoError(t, err)
	defer db.Close()

	mockSvc := new(serviceMocks.MockUserService)
	reg := prometheus.NewRegistry()

	app, err := newApp(logging.Discard(), db, mockSvc, reg)
	require.NoError(t, err)

	t.Run("health", func(t *testing.T) {
		dbMock.ExpectPing()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
	})

	t.Run("users route", func(t *testing.T) {
		id := uuid.New()
		mockSvc.On("Get", mock.Anything, id.String()).Return(&model.User{UUID: id}, nil).Once()

		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/users/"+id.String(), nil))
		require.NoError(t, err)

		assert.Equal(t, http.StatusOK, resp.StatusCode)
		mockSvc.AssertExpectations(t)
	})

	t.Run("metrics exposes request counter", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		mfs, err := reg.Gather()
		require.NoError(t, err)
		names := make([]string, 0, len(mfs))
		for _, mf := range mfs {
			names = append(names, mf.GetName())
		}
		assert.Contains(t, names, "http_requests_total")
	})

	t.Run("duplicate registration fails", func(t *testing.T) {
		_, err := newApp(logging.Discard(), db, mockSvc, reg)
		assert.Error(t, err)
	})
}
