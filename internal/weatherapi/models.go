package weatherapi

// Coord is a geographical position.
type Coord struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Condition is one reported weather condition.
type Condition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
}

// Measurements carries the numeric weather readings.
type Measurements struct {
	Temp      float64 `json:"temp"`
	FeelsLike float64 `json:"feels_like"`
	TempMin   float64 `json:"temp_min"`
	TempMax   float64 `json:"temp_max"`
	Pressure  int     `json:"pressure"`
	Humidity  int     `json:"humidity"`
}

// Wind carries wind readings.
type Wind struct {
	Speed float64 `json:"speed"`
	Deg   int     `json:"deg"`
}

// Observation is a current-weather response.
type Observation struct {
	ID      int          `json:"id"`
	Name    string       `json:"name"`
	Coord   Coord        `json:"coord"`
	Main    Measurements `json:"main"`
	Weather []Condition  `json:"weather"`
	Wind    Wind         `json:"wind"`
	Sys     struct {
		Country string `json:"country"`
	} `json:"sys"`
	Dt int64 `json:"dt"`
}

// ForecastEntry is one 3-hour slot in a forecast.
type ForecastEntry struct {
	Dt      int64        `json:"dt"`
	Main    Measurements `json:"main"`
	Weather []Condition  `json:"weather"`
	DtTxt   string       `json:"dt_txt"`
}

// Forecast is a 5-day / 3-hour forecast response.
type Forecast struct {
	Cnt  int             `json:"cnt"`
	List []ForecastEntry `json:"list"`
	City struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Coord   Coord  `json:"coord"`
		Country string `json:"country"`
	} `json:"city"`
}

// GeoResult is one geocoding match.
type GeoResult struct {
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lon     float64 `json:"lon"`
	Country string  `json:"country"`
	State   string  `json:"state,omitempty"`
}
