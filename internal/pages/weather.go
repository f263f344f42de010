package pages

import (
	"context"
	"net/url"
	"time"

	"wqa/internal/driver"
)

// Candidate selector chains for the weather page. Ordered from the most
// specific test hook to the loosest structural fallback.
var (
	searchInputSelectors = []string{
		"[data-testid='search-input']",
		"input[placeholder*='city']",
		"#search_str",
		"input[name='q']",
		"input[placeholder*='Search']",
	}
	weatherInfoSelectors = []string{
		"[data-testid='weather-info']",
		".weather-widget",
		".current-weather",
	}
	temperatureSelectors = []string{
		"[data-testid='temperature']",
		".temperature",
		".temp",
		".heading",
	}
	cityNameSelectors = []string{
		"[data-testid='city-name']",
		".city-name",
		"h2",
		"h1",
	}
	descriptionSelectors = []string{
		"[data-testid='description']",
		".weather-description",
	}
	errorBannerSelectors = []string{
		"[data-testid='error']",
		".error",
		".alert",
		".widget-notification",
	}
)

const enterKey = "\r"

// WeatherPage is the page object for the weather site's search and display UI.
type WeatherPage struct {
	page
	baseURL string
}

// NewWeatherPage binds a page object to a browser session.
func NewWeatherPage(s driver.Session, baseURL string, stepTimeout time.Duration) *WeatherPage {
	return &WeatherPage{page: page{s: s, step: stepTimeout}, baseURL: baseURL}
}

// Open navigates to the weather page and waits for it to render.
func (w *WeatherPage) Open(ctx context.Context) error {
	if err := w.s.Navigate(ctx, w.baseURL); err != nil {
		return err
	}
	return w.s.WaitVisible(ctx, "body")
}

// SearchCity searches for a city via the search input, falling back to URL
// navigation when no input can be located.
func (w *WeatherPage) SearchCity(ctx context.Context, city string) error {
	sel, err := w.firstVisible(ctx, searchInputSelectors)
	if err != nil {
		// Fallback to URL navigation if search input not found.
		searchURL := w.baseURL + "/find?q=" + url.QueryEscape(city)
		if err := w.s.Navigate(ctx, searchURL); err != nil {
			return err
		}
		return w.s.WaitVisible(ctx, "body")
	}

	if err := w.s.Fill(ctx, sel, city); err != nil {
		return err
	}
	if err := w.s.SendKeys(ctx, sel, enterKey); err != nil {
		return err
	}
	return w.s.WaitVisible(ctx, "body")
}

// HasSearchInput reports whether a search input is visible.
func (w *WeatherPage) HasSearchInput(ctx context.Context) bool {
	_, err := w.firstVisible(ctx, searchInputSelectors)
	return err == nil
}

// HasWeatherInfo reports whether a weather widget is visible.
func (w *WeatherPage) HasWeatherInfo(ctx context.Context) bool {
	_, err := w.firstVisible(ctx, weatherInfoSelectors)
	return err == nil
}

// Temperature returns the displayed temperature text.
func (w *WeatherPage) Temperature(ctx context.Context) (string, error) {
	return w.firstText(ctx, temperatureSelectors)
}

// CityName returns the displayed city name.
func (w *WeatherPage) CityName(ctx context.Context) (string, error) {
	return w.firstText(ctx, cityNameSelectors)
}

// Description returns the displayed weather description.
func (w *WeatherPage) Description(ctx context.Context) (string, error) {
	return w.firstText(ctx, descriptionSelectors)
}

// ErrorBanner returns the text of a visible error banner, if any.
func (w *WeatherPage) ErrorBanner(ctx context.Context) (string, error) {
	return w.firstText(ctx, errorBannerSelectors)
}

// Title returns the document title.
func (w *WeatherPage) Title(ctx context.Context) (string, error) {
	return w.s.Title(ctx)
}

// URL returns the browser's current location.
func (w *WeatherPage) URL(ctx context.Context) (string, error) {
	return w.s.Location(ctx)
}

// AccessibilitySnapshot counts basic accessibility signals on the page.
type AccessibilitySnapshot struct {
	Images           int `json:"images"`
	ImagesMissingAlt int `json:"imagesMissingAlt"`
	Inputs           int `json:"inputs"`
	InputsUnlabeled  int `json:"inputsUnlabeled"`
}

// Accessibility evaluates basic accessibility signals in the page.
func (w *WeatherPage) Accessibility(ctx context.Context) (*AccessibilitySnapshot, error) {
	const script = `(() => {
		const imgs = Array.from(document.querySelectorAll('img'));
		const inputs = Array.from(document.querySelectorAll('input:not([type=hidden])'));
		const labeled = el => el.labels && el.labels.length > 0
			|| el.getAttribute('aria-label')
			|| el.getAttribute('aria-labelledby')
			|| el.getAttribute('placeholder')
			|| el.getAttribute('title');
		return {
			images: imgs.length,
			imagesMissingAlt: imgs.filter(i => !i.getAttribute('alt')).length,
			inputs: inputs.length,
			inputsUnlabeled: inputs.filter(i => !labeled(i)).length,
		};
	})()`

	var snap AccessibilitySnapshot
	if err := w.s.Evaluate(ctx, script, &snap); err != nil {
		return nil, err
	}
	return &snap, nil
}
