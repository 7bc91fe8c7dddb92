package models

// WeatherSnapshot holds current conditions for a coordinate pair. It is
// built fresh per request; fields the provider did not return stay nil so
// the response can omit them instead of reporting zero values.
type WeatherSnapshot struct {
	Temperature *float64 `json:"temperature,omitempty"`
	Humidity    *float64 `json:"humidity,omitempty"`
	WindSpeed   *float64 `json:"wind_speed,omitempty"`
	Condition   string   `json:"condition,omitempty"`
}

// HasData reports whether at least one measurement was obtained. An empty
// snapshot means the weather lookup was skipped or degraded.
func (w *WeatherSnapshot) HasData() bool {
	if w == nil {
		return false
	}
	return w.Temperature != nil || w.Humidity != nil || w.WindSpeed != nil || w.Condition != ""
}
