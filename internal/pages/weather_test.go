package pages

import (
	"context"
	"errors"
	"testing"
	"time"
)

// fakeSession records page interactions without a browser.
type fakeSession struct {
	visible   map[string]bool
	texts     map[string]string
	location  string
	navigated []string
	filled    map[string]string
	keys      map[string]string
}

func newFakeSession() *fakeSession {
	return &fakeSession{
		visible: map[string]bool{},
		texts:   map[string]string{},
		filled:  map[string]string{},
		keys:    map[string]string{},
	}
}

func (f *fakeSession) Navigate(ctx context.Context, url string) error {
	f.navigated = append(f.navigated, url)
	return nil
}

func (f *fakeSession) WaitVisible(ctx context.Context, selector string) error {
	if selector == "body" || f.visible[selector] {
		return nil
	}
	return errors.New("not visible")
}

func (f *fakeSession) Fill(ctx context.Context, selector, value string) error {
	f.filled[selector] = value
	return nil
}

func (f *fakeSession) SendKeys(ctx context.Context, selector, keys string) error {
	f.keys[selector] = keys
	return nil
}

func (f *fakeSession) Click(ctx context.Context, selector string) error { return nil }

func (f *fakeSession) Text(ctx context.Context, selector string) (string, error) {
	return f.texts[selector], nil
}

func (f *fakeSession) Title(ctx context.Context) (string, error) { return "Weather", nil }

func (f *fakeSession) Location(ctx context.Context) (string, error) { return f.location, nil }

func (f *fakeSession) Evaluate(ctx context.Context, expression string, out any) error { return nil }

func (f *fakeSession) Screenshot(ctx context.Context) ([]byte, error) { return nil, nil }

func (f *fakeSession) Close() error { return nil }

func testPage(s *fakeSession) *WeatherPage {
	return NewWeatherPage(s, "https://example.com", 10*time.Millisecond)
}

func TestSearchCity_UsesVisibleInput(t *testing.T) {
	s := newFakeSession()
	s.visible["#search_str"] = true

	if err := testPage(s).SearchCity(context.Background(), "London"); err != nil {
		t.Fatalf("SearchCity: %v", err)
	}
	if got := s.filled["#search_str"]; got != "London" {
		t.Errorf("filled %q, want London", got)
	}
	if got := s.keys["#search_str"]; got != enterKey {
		t.Errorf("sent keys %q, want Enter", got)
	}
	if len(s.navigated) != 0 {
		t.Errorf("navigated %v, want no URL fallback when input is visible", s.navigated)
	}
}

func TestSearchCity_FallsBackToURL(t *testing.T) {
	s := newFakeSession()

	if err := testPage(s).SearchCity(context.Background(), "New York"); err != nil {
		t.Fatalf("SearchCity: %v", err)
	}
	want := "https://example.com/find?q=New+York"
	if len(s.navigated) != 1 || s.navigated[0] != want {
		t.Errorf("navigated %v, want [%s]", s.navigated, want)
	}
}

func TestURL(t *testing.T) {
	s := newFakeSession()
	s.location = "https://example.com/city/2643743"

	got, err := testPage(s).URL(context.Background())
	if err != nil {
		t.Fatalf("URL: %v", err)
	}
	if got != s.location {
		t.Errorf("URL() = %q, want %q", got, s.location)
	}
}

func TestTemperature_PrefersEarlierSelector(t *testing.T) {
	s := newFakeSession()
	s.visible[".temperature"] = true
	s.visible[".heading"] = true
	s.texts[".temperature"] = "18°C"
	s.texts[".heading"] = "London"

	got, err := testPage(s).Temperature(context.Background())
	if err != nil {
		t.Fatalf("Temperature: %v", err)
	}
	if got != "18°C" {
		t.Errorf("Temperature() = %q, want the higher-priority selector's text", got)
	}
}
