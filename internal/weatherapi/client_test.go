package weatherapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"go.uber.org/zap"

	"wqa/internal/config"
)

func testClient(srv *httptest.Server) *Client {
	cfg := config.New()
	cfg.APIBaseURL = srv.URL
	cfg.GeoBaseURL = srv.URL + "/geo"
	cfg.APIKey = "test-key"
	cfg.Units = "metric"
	return New(cfg, zap.NewNop())
}

func TestCurrentByCity(t *testing.T) {
	var gotQuery url.Values
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/weather" {
			t.Errorf("path = %q, want /weather", r.URL.Path)
		}
		gotQuery = r.URL.Query()
		w.Write([]byte(`{
			"id": 2643743,
			"name": "London",
			"coord": {"lat": 51.51, "lon": -0.13},
			"main": {"temp": 18.5, "humidity": 72, "pressure": 1012},
			"weather": [{"main": "Clouds", "description": "overcast clouds"}],
			"sys": {"country": "GB"}
		}`))
	}))
	defer srv.Close()

	obs, err := testClient(srv).CurrentByCity(context.Background(), "London")
	if err != nil {
		t.Fatalf("CurrentByCity: %v", err)
	}
	if obs.Name != "London" || obs.ID != 2643743 {
		t.Errorf("got %q/%d, want London/2643743", obs.Name, obs.ID)
	}
	if obs.Main.Temp != 18.5 || obs.Main.Humidity != 72 {
		t.Errorf("readings = %+v", obs.Main)
	}
	if len(obs.Weather) != 1 || obs.Weather[0].Description != "overcast clouds" {
		t.Errorf("conditions = %+v", obs.Weather)
	}
	if obs.Sys.Country != "GB" {
		t.Errorf("country = %q, want GB", obs.Sys.Country)
	}

	if gotQuery.Get("q") != "London" {
		t.Errorf("q = %q, want London", gotQuery.Get("q"))
	}
	if gotQuery.Get("appid") != "test-key" {
		t.Errorf("appid = %q, want test-key", gotQuery.Get("appid"))
	}
	if gotQuery.Get("units") != "metric" {
		t.Errorf("units = %q, want metric (client default)", gotQuery.Get("units"))
	}
}

func TestCurrentByCoords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if q.Get("lat") != "48.8566" || q.Get("lon") != "2.3522" {
			t.Errorf("coords = %s,%s", q.Get("lat"), q.Get("lon"))
		}
		w.Write([]byte(`{"name": "Paris", "coord": {"lat": 48.86, "lon": 2.35}}`))
	}))
	defer srv.Close()

	obs, err := testClient(srv).CurrentByCoords(context.Background(), 48.8566, 2.3522)
	if err != nil {
		t.Fatalf("CurrentByCoords: %v", err)
	}
	if obs.Name != "Paris" {
		t.Errorf("Name = %q, want Paris", obs.Name)
	}
}

func TestCurrentByID(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "2643743" {
			t.Errorf("id = %q, want 2643743", got)
		}
		w.Write([]byte(`{"id": 2643743, "name": "London", "sys": {"country": "GB"}}`))
	}))
	defer srv.Close()

	obs, err := testClient(srv).CurrentByID(context.Background(), 2643743)
	if err != nil {
		t.Fatalf("CurrentByID: %v", err)
	}
	if obs.ID != 2643743 || obs.Name != "London" {
		t.Errorf("got %d/%q, want 2643743/London", obs.ID, obs.Name)
	}
}

func TestCurrentByCity_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"cod": "404", "message": "city not found"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).CurrentByCity(context.Background(), "Xyzzyville12345")
	if err == nil {
		t.Fatal("expected error for unknown city")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error type = %T, want *APIError", err)
	}
	if apiErr.StatusCode != http.StatusNotFound {
		t.Errorf("StatusCode = %d, want 404", apiErr.StatusCode)
	}
	if apiErr.Message != "city not found" {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestAPIError_NumericCod(t *testing.T) {
	// The service returns "cod" as a string on some endpoints and a
	// number on others; both must parse.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"cod": 401, "message": "Invalid API key"}`))
	}))
	defer srv.Close()

	_, err := testClient(srv).CurrentByCity(context.Background(), "London")
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("error = %v, want *APIError", err)
	}
	if apiErr.Code != "401" {
		t.Errorf("Code = %q, want 401", apiErr.Code)
	}
}

func TestForecast(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/forecast" {
			t.Errorf("path = %q, want /forecast", r.URL.Path)
		}
		if got := r.URL.Query().Get("cnt"); got != "2" {
			t.Errorf("cnt = %q, want 2 (WithParam)", got)
		}
		w.Write([]byte(`{
			"cnt": 2,
			"list": [
				{"dt": 1700000000, "main": {"temp": 10}, "dt_txt": "2026-08-25 12:00:00"},
				{"dt": 1700010800, "main": {"temp": 12}, "dt_txt": "2026-08-25 15:00:00"}
			],
			"city": {"name": "Tokyo", "country": "JP"}
		}`))
	}))
	defer srv.Close()

	fc, err := testClient(srv).Forecast(context.Background(), "Tokyo", WithParam("cnt", "2"))
	if err != nil {
		t.Fatalf("Forecast: %v", err)
	}
	if fc.Cnt != 2 || len(fc.List) != 2 {
		t.Errorf("cnt = %d, entries = %d", fc.Cnt, len(fc.List))
	}
	if fc.City.Name != "Tokyo" {
		t.Errorf("city = %q", fc.City.Name)
	}
}

func TestSearchCities(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/geo/direct" {
			t.Errorf("path = %q, want /geo/direct", r.URL.Path)
		}
		if r.URL.Query().Get("limit") != "5" {
			t.Errorf("limit = %q, want 5", r.URL.Query().Get("limit"))
		}
		w.Write([]byte(`[
			{"name": "Springfield", "lat": 39.8, "lon": -89.6, "country": "US", "state": "Illinois"},
			{"name": "Springfield", "lat": 42.1, "lon": -72.6, "country": "US", "state": "Massachusetts"}
		]`))
	}))
	defer srv.Close()

	results, err := testClient(srv).SearchCities(context.Background(), "Springfield", 5)
	if err != nil {
		t.Fatalf("SearchCities: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].State != "Illinois" {
		t.Errorf("State = %q", results[0].State)
	}
}

func TestWithUnitsOverride(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("units"); got != "imperial" {
			t.Errorf("units = %q, want imperial", got)
		}
		w.Write([]byte(`{"name": "London"}`))
	}))
	defer srv.Close()

	if _, err := testClient(srv).CurrentByCity(context.Background(), "London", WithUnits("imperial")); err != nil {
		t.Fatalf("CurrentByCity: %v", err)
	}
}

func TestContextCancellation(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := testClient(srv).CurrentByCity(ctx, "London"); !errors.Is(err, context.Canceled) {
		t.Errorf("err = %v, want context.Canceled", err)
	}
}
