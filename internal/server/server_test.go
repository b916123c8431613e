package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sells-group/billmap/internal/bills"
	"github.com/sells-group/billmap/internal/dashboard"
	"github.com/sells-group/billmap/internal/receipt"
)

const londonJSON = `{"bills": [
  {"date": "2024-01-02", "restaurant": "Cafe A", "latitude": 51.5, "longitude": -0.12,
   "items": [{"name": "Tea", "price": 2.5, "quantity": 2}], "tip": 1.0},
  {"date": "2024-02-10T19:30:00", "restaurant": "Dishoom", "latitude": 51.52, "longitude": -0.10,
   "items": [{"name": "Chai", "price": 3.2, "quantity": 3}, {"name": "Naan", "price": 4.4}],
   "tip": 2.0, "delivery_charge": 2.5}
]}`

const leedsJSON = `{"bills": [
  {"date": "2024-03-05", "restaurant": "Bundobust", "latitude": 53.8, "longitude": -1.55,
   "items": [{"name": "Bhel Puri", "price": 6.5}]}
]}`

func writeBills(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func newTestServer(t *testing.T, dir string, opts Options) http.Handler {
	t.Helper()
	f, err := receipt.New()
	require.NoError(t, err)
	p, err := dashboard.NewPrinter("en-GB", "£")
	require.NoError(t, err)
	if opts.RateLimit == 0 {
		opts.RateLimit = 100
	}
	return New(dashboard.NewSource(dir, nil), f, p, opts).Handler()
}

func fixtureServer(t *testing.T) http.Handler {
	return newTestServer(t, writeBills(t, map[string]string{
		"london.json": londonJSON,
		"leeds.json":  leedsJSON,
	}), Options{})
}

func get(h http.Handler, target string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func TestHealth(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rec))

	_, err := uuid.Parse(rec.Header().Get(RequestIDHeader))
	assert.NoError(t, err)
}

func TestRequestID_EchoesValidIncomingID(t *testing.T) {
	t.Parallel()

	h := fixtureServer(t)
	id := uuid.New().String()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, id)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, id, rec.Header().Get(RequestIDHeader))

	req = httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set(RequestIDHeader, "not-a-uuid")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.NotEqual(t, "not-a-uuid", rec.Header().Get(RequestIDHeader))
}

func TestSummary(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/api/summary")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[SummaryResponse](t, rec)
	assert.Equal(t, 3, resp.Summary.Count)
	assert.Equal(t, "31.00", resp.Summary.SumTotal.StringFixed(2))
	assert.Equal(t, "£31.00", resp.Panel.TotalPrice.Value)
	assert.Equal(t, "£10.33", resp.Panel.MeanPrice.Value)
	assert.Equal(t, "£1.00", resp.Panel.MeanTip.Value)
	assert.Empty(t, resp.Panel.MeanPrice.Delta)
}

func TestRegion(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/api/region?south=51&west=-1&north=52&east=0")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[RegionResponse](t, rec)
	require.Len(t, resp.Rows, 2)
	assert.Equal(t, "Cafe A", resp.Rows[0].Restaurant)
	assert.Equal(t, 2, resp.Summary.Count)
	assert.Equal(t, "£24.50", resp.Panel.TotalPrice.Value)
	assert.Equal(t, "£12.25", resp.Panel.MeanPrice.Value)
	assert.Equal(t, "1.92", resp.Panel.MeanPrice.Delta)
	assert.Equal(t, dashboard.DeltaInverse, resp.Panel.MeanPrice.DeltaColor)
}

func TestRegion_Empty(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/api/region?south=0&west=0&north=1&east=1")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[RegionResponse](t, rec)
	assert.Empty(t, resp.Rows)
	assert.Equal(t, "£0.00", resp.Panel.MeanPrice.Value)
	assert.Equal(t, dashboard.DeltaOff, resp.Panel.MeanPrice.DeltaColor)
}

func TestRegion_BadBBox(t *testing.T) {
	t.Parallel()

	h := fixtureServer(t)
	for _, target := range []string{
		"/api/region",
		"/api/region?south=51&west=-1&north=52",
		"/api/region?south=x&west=-1&north=52&east=0",
		"/api/region?south=NaN&west=-1&north=52&east=0",
		"/api/region?south=51&west=-1&north=Inf&east=0",
	} {
		rec := get(h, target)
		assert.Equal(t, http.StatusBadRequest, rec.Code, target)
		assert.Contains(t, decode[map[string]string](t, rec)["error"], "geo: parse", target)
	}
}

func TestMarkers(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/api/markers")
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode[MarkersResponse](t, rec)
	assert.Len(t, resp.Markers, 3)
	require.NotNil(t, resp.View)
	assert.InDelta(t, 51.5, resp.View.Bounds.South, 1e-9)
	assert.InDelta(t, 53.8, resp.View.Bounds.North, 1e-9)
}

func TestMarkers_NoBills(t *testing.T) {
	t.Parallel()

	rec := get(newTestServer(t, t.TempDir(), Options{}), "/api/markers")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"markers": []}`, rec.Body.String())
}

func TestPopup(t *testing.T) {
	t.Parallel()

	hash := bills.IdentityHash("2024-01-02", "Cafe A")
	rec := get(fixtureServer(t), "/api/bills/"+hash+"/popup")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "text/html; charset=utf-8", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), "<h4>Cafe A</h4>")
	assert.Contains(t, rec.Body.String(), "2x Tea--$5.00")
}

func TestPopup_UnknownHash(t *testing.T) {
	t.Parallel()

	rec := get(fixtureServer(t), "/api/bills/deadbeef/popup")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "unknown bill", decode[map[string]string](t, rec)["error"])
}

func TestDatasetFailure(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, writeBills(t, map[string]string{"bad.json": "{"}), Options{})
	for _, target := range []string{"/api/summary", "/api/markers", "/api/bills/x/popup"} {
		rec := get(h, target)
		assert.Equal(t, http.StatusInternalServerError, rec.Code, target)
	}

	// Health does not touch the bills.
	assert.Equal(t, http.StatusOK, get(h, "/health").Code)
}

func TestRateLimit(t *testing.T) {
	t.Parallel()

	h := newTestServer(t, t.TempDir(), Options{RateLimit: 1})

	assert.Equal(t, http.StatusOK, get(h, "/api/summary").Code)
	rec := get(h, "/api/summary")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Equal(t, "1", rec.Header().Get("Retry-After"))

	// Health is outside the limiter.
	assert.Equal(t, http.StatusOK, get(h, "/health").Code)
}

func TestCORS(t *testing.T) {
	t.Parallel()

	h := fixtureServer(t)
	req := httptest.NewRequest(http.MethodGet, "/api/summary", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestNotFound(t *testing.T) {
	t.Parallel()

	assert.Equal(t, http.StatusNotFound, get(fixtureServer(t), "/api/nope").Code)
}
