package models

// PlantDefinition is a plant record from the plant definitions table. The
// descriptive and tolerance attributes feed the advisory prompt; they are
// read-only to this service.
type PlantDefinition struct {
	PlantID        string `json:"plant_id" dynamodbav:"plant_id"`
	CommonName     string `json:"common_name" dynamodbav:"common_name"`
	ScientificName string `json:"scientific_name,omitempty" dynamodbav:"scientific_name"`

	// Temperature tolerances in degrees Celsius
	MinTempC       string `json:"min_temp_c,omitempty" dynamodbav:"min_temp_c"`
	MaxTempC       string `json:"max_temp_c,omitempty" dynamodbav:"max_temp_c"`
	IdealTempMinC  string `json:"ideal_temp_min_c,omitempty" dynamodbav:"ideal_temp_min_c"`
	IdealTempMaxC  string `json:"ideal_temp_max_c,omitempty" dynamodbav:"ideal_temp_max_c"`
	FrostTolerance string `json:"frost_tolerance,omitempty" dynamodbav:"frost_tolerance"`

	// Light requirements
	SunlightHoursMin string `json:"sunlight_hours_min,omitempty" dynamodbav:"sunlight_hours_min"`
	SunlightHoursMax string `json:"sunlight_hours_max,omitempty" dynamodbav:"sunlight_hours_max"`
	SunlightExposure string `json:"sunlight_exposure,omitempty" dynamodbav:"sunlight_exposure"`

	// Water and soil
	WateringFrequency   string `json:"watering_frequency,omitempty" dynamodbav:"watering_frequency"`
	WaterAmountMm       string `json:"water_amount_mm,omitempty" dynamodbav:"water_amount_mm"`
	SoilMoisture        string `json:"soil_moisture,omitempty" dynamodbav:"soil_moisture"`
	SoilType            string `json:"soil_type,omitempty" dynamodbav:"soil_type"`
	RainfallToleranceMm string `json:"rainfall_tolerance_mm,omitempty" dynamodbav:"rainfall_tolerance_mm"`
	DroughtTolerant     string `json:"drought_tolerant,omitempty" dynamodbav:"drought_tolerant"`

	// Humidity and wind
	HumidityMinPct   string `json:"humidity_min_pct,omitempty" dynamodbav:"humidity_min_pct"`
	HumidityMaxPct   string `json:"humidity_max_pct,omitempty" dynamodbav:"humidity_max_pct"`
	WindToleranceKmh string `json:"wind_tolerance_kmh,omitempty" dynamodbav:"wind_tolerance_kmh"`

	// Seasonal information
	GrowingSeason  string `json:"growing_season,omitempty" dynamodbav:"growing_season"`
	DormantSeason  string `json:"dormant_season,omitempty" dynamodbav:"dormant_season"`
	FirstFrostDate string `json:"first_frost_date,omitempty" dynamodbav:"first_frost_date"`
	LastFrostDate  string `json:"last_frost_date,omitempty" dynamodbav:"last_frost_date"`

	// Risks and care notes
	CommonWeatherRisks string `json:"common_weather_risks,omitempty" dynamodbav:"common_weather_risks"`
	ProtectionMethods  string `json:"protection_methods,omitempty" dynamodbav:"protection_methods"`
	SpecialNotes       string `json:"special_notes,omitempty" dynamodbav:"special_notes"`
}
