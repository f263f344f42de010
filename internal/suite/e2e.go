package suite

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"wqa/internal/domain"
	"wqa/internal/registry"
	"wqa/internal/weatherapi"
)

func registerE2E(r *registry.Registry) {
	r.MustRegister(registry.Case{
		ID:      "e2e/search-journey",
		Summary: "UI search and API agree on a city's weather",
		Tags:    domain.NewTagSet(domain.TagE2E, domain.TagCritical),
		Timeout: 60 * time.Second,
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			const city = "London"

			env.Trace("cross-check: GET current weather for %s", city)
			obs, err := env.API.CurrentByCity(ctx, city)
			if err != nil {
				return err
			}
			if !strings.Contains(strings.ToLower(obs.Name), strings.ToLower(city)) {
				return domain.Assertf("API resolved %q to unexpected city %q", city, obs.Name)
			}

			page, err := openWeatherPage(ctx, env)
			if err != nil {
				return err
			}
			env.Trace("search for %s", city)
			if err := page.SearchCity(ctx, city); err != nil {
				return err
			}
			if loc, err := page.URL(ctx); err == nil {
				env.Trace("landed on %s", loc)
			}

			name, err := page.CityName(ctx)
			if err != nil {
				return err
			}
			env.Trace("displayed city: %q", name)
			if !strings.Contains(strings.ToLower(name), strings.ToLower(city)) {
				return domain.Assertf("UI shows %q after searching %q (API resolved %q)", name, city, obs.Name)
			}
			return nil
		},
	})

	r.MustRegister(registry.Case{
		ID:      "e2e/error-journey",
		Summary: "UI and API both reject a nonsense city",
		Tags:    domain.NewTagSet(domain.TagE2E, domain.TagRegression),
		Timeout: 60 * time.Second,
		Run: func(ctx context.Context, env *registry.Env) error {
			if err := requireAPIKey(env); err != nil {
				return err
			}
			bogus := "NoSuchCity" + randomString(12)

			env.Trace("GET current weather for bogus city %s", bogus)
			_, err := env.API.CurrentByCity(ctx, bogus)
			var apiErr *weatherapi.APIError
			if !errors.As(err, &apiErr) || apiErr.StatusCode != http.StatusNotFound {
				return domain.Assertf("API did not reject bogus city with 404: %v", err)
			}

			page, err := openWeatherPage(ctx, env)
			if err != nil {
				return err
			}
			env.Trace("search for bogus city %s", bogus)
			if err := page.SearchCity(ctx, bogus); err != nil {
				return err
			}
			if page.HasWeatherInfo(ctx) {
				return domain.Assertf("UI shows a weather widget for bogus city %q", bogus)
			}
			return nil
		},
	})
}
