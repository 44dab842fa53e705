package http_test

import (
	"encoding/json"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/findbus/internal/config"
	httpDelivery "github.com/findbus/internal/delivery/http"
	"github.com/findbus/internal/delivery/http/handler"
	"github.com/findbus/internal/repository/sqlstore"
	"github.com/findbus/internal/repository/sqlstore/testhelpers"
	"github.com/findbus/internal/usecase"
)

type testServer struct {
	server    *httpDelivery.Server
	imagePath string
}

func newTestServer(t *testing.T, provider *sqlstore.Provider) *testServer {
	t.Helper()
	logger := zap.NewNop()

	cfg := &config.Config{
		UI: config.UIConfig{
			HomeImagePath:    filepath.Join(t.TempDir(), "bus.jpg"),
			CORSAllowOrigins: "*",
		},
	}

	busUC := usecase.NewBusUseCase(sqlstore.NewBusRepository(provider), logger)
	pageHandler, err := handler.NewPageHandler(busUC, logger, cfg.UI.HomeImagePath)
	require.NoError(t, err)

	return &testServer{
		server:    httpDelivery.NewServer(cfg, logger, pageHandler, handler.NewBusHandler(busUC, logger)),
		imagePath: cfg.UI.HomeImagePath,
	}
}

func newSeededServer(t *testing.T) *testServer {
	t.Helper()
	tdb := testhelpers.SetupTestDB(t)
	tdb.InsertBuses(t, testhelpers.DefaultBuses()...)
	return newTestServer(t, tdb.Provider)
}

func (ts *testServer) get(t *testing.T, target string) (int, string) {
	t.Helper()
	resp, err := ts.server.App().Test(httptest.NewRequest("GET", target, nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, string(body)
}

func TestHome(t *testing.T) {
	ts := newSeededServer(t)

	t.Run("missing image is not fatal", func(t *testing.T) {
		status, body := ts.get(t, "/")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "Welcome to FindBus!")
		assert.Contains(t, body, "Error loading image")
		assert.Contains(t, body, "How it works:")

		status, _ = ts.get(t, "/static/bus.jpg")
		assert.Equal(t, 404, status)
	})

	t.Run("image with caption", func(t *testing.T) {
		require.NoError(t, os.WriteFile(ts.imagePath, []byte("\xff\xd8\xff\xe0fake-jpeg"), 0o644))

		status, body := ts.get(t, "/")
		assert.Equal(t, 200, status)
		assert.Contains(t, body, `src="/static/bus.jpg"`)
		assert.Contains(t, body, "Find Your Perfect Bus!")
		assert.NotContains(t, body, "Error loading image")

		status, _ = ts.get(t, "/static/bus.jpg")
		assert.Equal(t, 200, status)
	})
}

func TestSelectBus(t *testing.T) {
	ts := newSeededServer(t)

	t.Run("defaults show all routes within ten hours", func(t *testing.T) {
		status, body := ts.get(t, "/buses")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "Filter and Select the Bus")
		assert.Contains(t, body, "Showing buses for <strong>All</strong>:")
		assert.Contains(t, body, "<th>Route Name</th>")
		assert.Contains(t, body, "<th>Seats Available</th>")
		assert.Contains(t, body, "KPN")
		assert.Contains(t, body, "O&#39;Brien Express")
		assert.NotContains(t, body, "Orange Tours", "12h30m trip is over the default limit")
		assert.Contains(t, body, `<option value="Chennai to Bangalore" >`)
	})

	t.Run("unknown route shows empty state", func(t *testing.T) {
		status, body := ts.get(t, "/buses?route=Nonexistent+Route")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "No buses found for the selected filters.")
		assert.NotContains(t, body, "<table>")
	})

	t.Run("bus type with quote", func(t *testing.T) {
		status, body := ts.get(t, "/buses?bustype=O%27Brien+Travels&max_duration=24")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "O&#39;Brien Express")
		assert.NotContains(t, body, "KPN")
	})

	t.Run("invalid values are reset", func(t *testing.T) {
		status, body := ts.get(t, "/buses?price_min=cheap&route=Kochi+to+Kottayam")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "have been reset")
		assert.Contains(t, body, "Showing buses for <strong>Kochi to Kottayam</strong>:")
	})

	t.Run("only the invalid field is reset", func(t *testing.T) {
		longRoute := strings.Repeat("x", 300)
		status, body := ts.get(t, "/buses?bustype=A%2FC+Sleeper+%282%2B1%29&sort=price&route="+longRoute)

		assert.Equal(t, 200, status)
		assert.Contains(t, body, "have been reset")
		assert.NotContains(t, body, longRoute)
		assert.Contains(t, body, "Showing buses for <strong>All</strong>:")
		assert.Contains(t, body, "KPN Travels")
		assert.NotContains(t, body, "SRS Travels", "bus type filter survives the reset")
		assert.Contains(t, body, `<option value="price" selected>`)
	})
}

func TestSelectBus_DatabaseUnavailable(t *testing.T) {
	cfg := config.DatabaseConfig{
		Driver: config.DriverSQLite,
		Path:   filepath.Join(t.TempDir(), "missing-dir", "redbus.db"),
	}
	provider, err := sqlstore.NewProvider(&cfg, zap.NewNop())
	require.NoError(t, err)
	ts := newTestServer(t, provider)

	status, body := ts.get(t, "/buses")

	assert.Equal(t, 503, status)
	assert.Contains(t, body, "Error connecting to the database:")
	assert.NotContains(t, body, "<form")
	assert.NotContains(t, body, "<table>")

	status, _ = ts.get(t, "/api/v1/health")
	assert.Equal(t, 503, status)
}

func TestSelectBus_EmptyTable(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	ts := newTestServer(t, tdb.Provider)

	status, body := ts.get(t, "/buses")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "<form")
	assert.Contains(t, body, "No data available for this filter.")
	assert.Contains(t, body, "No buses found for the selected filters.")
	assert.NotContains(t, body, "<table>")
	assert.NotContains(t, body, "Error fetching")

	status, body = ts.get(t, "/api/v1/buses")
	require.Equal(t, 200, status)
	env := decode(t, body)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 0, env.Meta.Total)
	assert.Empty(t, env.Meta.Warnings)

	var result struct {
		Buses []json.RawMessage `json:"buses"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	assert.NotNil(t, result.Buses)
	assert.Empty(t, result.Buses)
}

func TestSelectBus_UnratedBus(t *testing.T) {
	tdb := testhelpers.SetupTestDB(t)
	tdb.InsertBuses(t, append(testhelpers.DefaultBuses(), testhelpers.UnratedBus())...)
	ts := newTestServer(t, tdb.Provider)

	status, body := ts.get(t, "/buses?route=Madurai+to+Trichy")

	assert.Equal(t, 200, status)
	assert.Contains(t, body, "Parveen Travels")
	assert.Regexp(t, `<td class="num"></td>\s*<td class="num">300.00</td>`, body)

	status, body = ts.get(t, "/api/v1/buses?route=Madurai+to+Trichy")
	require.Equal(t, 200, status)
	assert.Contains(t, body, `"star_rating":null`)
}

type apiEnvelope struct {
	Data  json.RawMessage `json:"data"`
	Meta  *struct {
		Total    int      `json:"total"`
		Warnings []string `json:"warnings"`
	} `json:"meta"`
	Error *struct {
		Code    string                 `json:"code"`
		Details map[string]interface{} `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, body string) apiEnvelope {
	t.Helper()
	var env apiEnvelope
	require.NoError(t, json.Unmarshal([]byte(body), &env))
	return env
}

func TestAPI(t *testing.T) {
	ts := newSeededServer(t)

	t.Run("filters", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/filters")
		require.Equal(t, 200, status)

		var opts struct {
			Routes []string `json:"routes"`
			Price  struct {
				Min   float64 `json:"min"`
				Max   float64 `json:"max"`
				Valid bool    `json:"valid"`
			} `json:"price"`
		}
		require.NoError(t, json.Unmarshal(decode(t, body).Data, &opts))
		assert.Len(t, opts.Routes, 3)
		assert.True(t, opts.Price.Valid)
		assert.Equal(t, 100.0, opts.Price.Min)
		assert.Equal(t, 1500.0, opts.Price.Max)
	})

	t.Run("search sorted by price", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/buses?route=Chennai+to+Bangalore&sort=price")
		require.Equal(t, 200, status)

		env := decode(t, body)
		require.NotNil(t, env.Meta)
		assert.Equal(t, 2, env.Meta.Total)

		var result struct {
			Buses []struct {
				Index   int     `json:"index"`
				BusName string  `json:"busname"`
				Price   float64 `json:"price"`
			} `json:"buses"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &result))
		require.Len(t, result.Buses, 2)
		assert.Equal(t, 1, result.Buses[0].Index)
		assert.Equal(t, "SRS", result.Buses[0].BusName)
		assert.Equal(t, "KPN", result.Buses[1].BusName)
	})

	t.Run("invalid number", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/buses?price_min=abc")

		assert.Equal(t, 400, status)
		env := decode(t, body)
		require.NotNil(t, env.Error)
		assert.Equal(t, "INVALID_REQUEST", env.Error.Code)
		assert.Contains(t, env.Error.Details, "price_min")
	})

	t.Run("invalid sort", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/buses?sort=price;DROP")

		assert.Equal(t, 400, status)
		assert.Equal(t, "INVALID_REQUEST", decode(t, body).Error.Code)
	})

	t.Run("health", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/health")

		assert.Equal(t, 200, status)
		assert.Contains(t, body, `"status":"healthy"`)
	})

	t.Run("request id is echoed", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/api/v1/health", nil)
		req.Header.Set("X-Request-ID", "test-request-id")

		resp, err := ts.server.App().Test(req, -1)
		require.NoError(t, err)
		defer resp.Body.Close()

		assert.Equal(t, "test-request-id", resp.Header.Get("X-Request-ID"))
	})

	t.Run("unknown route", func(t *testing.T) {
		status, body := ts.get(t, "/api/v1/nope")

		assert.Equal(t, 404, status)
		assert.Equal(t, "NOT_FOUND", decode(t, body).Error.Code)
	})
}
