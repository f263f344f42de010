package suite

import (
	"context"
	"errors"
	"math"
	"net/http"
	"strings"
	"time"

	"wqa/internal/domain"
	"wqa/internal/registry"
	"wqa/internal/weatherapi"
)

func registerAPI(r *registry.Registry) {
	r.MustRegister(registry.Case{
		ID:      "api/current-weather-valid-cities",
		Summary: "Current weather returns sane data for known cities",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagSmoke, domain.TagCritical),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			for _, city := range smokeCities {
				env.Trace("GET current weather for %s", city)
				obs, err := env.API.CurrentByCity(ctx, city)
				if err != nil {
					return err
				}
				if obs.Name == "" {
					return domain.Assertf("no city name in response for %q", city)
				}
				if obs.Main.Temp < -60 || obs.Main.Temp > 60 {
					return domain.Assertf("implausible temperature %.1f°C for %q", obs.Main.Temp, city)
				}
				if len(obs.Weather) == 0 {
					return domain.Assertf("no weather conditions in response for %q", city)
				}
				if obs.Main.Humidity < 0 || obs.Main.Humidity > 100 {
					return domain.Assertf("humidity %d%% out of range for %q", obs.Main.Humidity, city)
				}
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/current-weather-invalid-city",
		Summary: "Unknown city names are rejected with 404",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			bogus := "NoSuchCity" + randomString(12)
			env.Trace("GET current weather for bogus city %s", bogus)
			_, err := env.API.CurrentByCity(ctx, bogus)
			var apiErr *weatherapi.APIError
			if !errors.As(err, &apiErr) {
				return domain.Assertf("expected API error for bogus city, got %v", err)
			}
			if apiErr.StatusCode != http.StatusNotFound {
				return domain.Assertf("expected status 404 for bogus city, got %d", apiErr.StatusCode)
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/current-weather-by-coordinates",
		Summary: "Coordinate lookups resolve near the requested position",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			coords := []struct {
				name     string
				lat, lon float64
			}{
				{"London", 51.5074, -0.1278},
				{"Tokyo", 35.6762, 139.6503},
				{"New York", 40.7128, -74.0060},
			}
			for _, c := range coords {
				env.Trace("GET current weather at %.4f,%.4f (%s)", c.lat, c.lon, c.name)
				obs, err := env.API.CurrentByCoords(ctx, c.lat, c.lon)
				if err != nil {
					return err
				}
				if math.Abs(obs.Coord.Lat-c.lat) > 1 || math.Abs(obs.Coord.Lon-c.lon) > 1 {
					return domain.Assertf("response coordinates (%.4f,%.4f) too far from (%.4f,%.4f)",
						obs.Coord.Lat, obs.Coord.Lon, c.lat, c.lon)
				}
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/current-weather-by-id",
		Summary: "City ID lookups agree with name lookups",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			const londonID = 2643743
			env.Trace("GET current weather for city ID %d", londonID)
			byID, err := env.API.CurrentByID(ctx, londonID)
			if err != nil {
				return err
			}
			if byID.ID != londonID {
				return domain.Assertf("response carries city ID %d, requested %d", byID.ID, londonID)
			}
			env.Trace("GET current weather for London by name")
			byName, err := env.API.CurrentByCity(ctx, "London")
			if err != nil {
				return err
			}
			if !strings.EqualFold(byID.Name, byName.Name) {
				return domain.Assertf("ID lookup resolved %q, name lookup resolved %q", byID.Name, byName.Name)
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/five-day-forecast",
		Summary: "5-day forecast returns a populated slot list",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			env.Trace("GET 5-day forecast for London (cnt=8)")
			fc, err := env.API.Forecast(ctx, "London", weatherapi.WithParam("cnt", "8"))
			if err != nil {
				return err
			}
			if len(fc.List) == 0 {
				return domain.Assertf("forecast list is empty")
			}
			if len(fc.List) > 8 {
				return domain.Assertf("requested 8 forecast slots, got %d", len(fc.List))
			}
			if fc.Cnt != len(fc.List) {
				return domain.Assertf("forecast cnt %d does not match list length %d", fc.Cnt, len(fc.List))
			}
			if !strings.EqualFold(fc.City.Name, "London") {
				return domain.Assertf("forecast city %q, expected London", fc.City.Name)
			}
			for _, entry := range fc.List {
				if entry.Dt == 0 {
					return domain.Assertf("forecast slot missing timestamp")
				}
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/units-parameter",
		Summary: "Metric and imperial readings agree after conversion",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			env.Trace("GET current weather for London in metric")
			metric, err := env.API.CurrentByCity(ctx, "London", weatherapi.WithUnits("metric"))
			if err != nil {
				return err
			}
			env.Trace("GET current weather for London in imperial")
			imperial, err := env.API.CurrentByCity(ctx, "London", weatherapi.WithUnits("imperial"))
			if err != nil {
				return err
			}
			// The readings are a moment apart, so allow a few degrees of drift.
			converted := metric.Main.Temp*9/5 + 32
			if math.Abs(converted-imperial.Main.Temp) > 5 {
				return domain.Assertf("metric %.1f°C (=%.1f°F) disagrees with imperial %.1f°F",
					metric.Main.Temp, converted, imperial.Main.Temp)
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/geocoding-search",
		Summary: "Geocoding resolves city names to coordinates",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			for _, city := range cities {
				env.Trace("GET geocoding results for %s", city)
				results, err := env.API.SearchCities(ctx, city, 5)
				if err != nil {
					return err
				}
				if len(results) == 0 {
					return domain.Assertf("geocoding returned no results for %q", city)
				}
				first := results[0]
				if first.Name == "" || (first.Lat == 0 && first.Lon == 0) {
					return domain.Assertf("geocoding result for %q incomplete: %+v", city, first)
				}
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "api/response-time",
		Summary: "Current weather responds within the performance budget",
		Tags:    domain.NewTagSet(domain.TagAPI, domain.TagPerformance, domain.TagRegression),
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			threshold := env.Config.PerformanceThreshold
			env.Trace("timing current weather request for London (budget %s)", threshold)
			start := time.Now()
			if _, err := env.API.CurrentByCity(ctx, "London"); err != nil {
				return err
			}
			elapsed := time.Since(start)
			if elapsed > threshold {
				return domain.Assertf("response took %s, budget is %s", elapsed.Round(time.Millisecond), threshold)
			}
			return nil
		},
	})
}
