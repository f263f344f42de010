// Package suite registers the weather service checks. Every case carries an
// explicit tag set; discovery never inspects anything beyond it.
package suite

import (
	"context"

	"wqa/internal/domain"
	"wqa/internal/pages"
	"wqa/internal/registry"
)

// Default returns the registry with the full check suite registered.
func Default() *registry.Registry {
	r := registry.NewRegistry()
	registerAPI(r)
	registerUI(r)
	registerE2E(r)
	return r
}

// requireAPIKey skips a case in environments without API credentials.
func requireAPIKey(env *registry.Env) error {
	if env.Config.APIKey == "" {
		return domain.Skipf("OPENWEATHER_API_KEY not set for environment %q", env.Config.Environment)
	}
	return nil
}

// openWeatherPage opens a fresh browser session on the weather page.
func openWeatherPage(ctx context.Context, env *registry.Env) (*pages.WeatherPage, error) {
	sess, err := env.Session(ctx)
	if err != nil {
		return nil, err
	}
	page := pages.NewWeatherPage(sess, env.Config.UIBaseURL, env.Config.StepTimeout)
	env.Trace("navigate %s", env.Config.UIBaseURL)
	if err := page.Open(ctx); err != nil {
		return nil, err
	}
	return page, nil
}
