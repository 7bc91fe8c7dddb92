package services

import (
	"fmt"
	"strings"

	"plantcare-advisor-api/internal/models"
)

// advisorSystemPrompt fixes the gardening-advisor role and the structured
// output contract the parser expects
const advisorSystemPrompt = `You are a highly knowledgeable Gardening Weather Advisor. Your goal is to provide tailored weather-related advice for a user's specific plants based on current weather conditions.

For each plant, compare the current weather against the plant's specific requirements (temperature range, frost tolerance, sunlight, watering frequency, soil moisture, rainfall tolerance, humidity, wind tolerance, seasonal dates, common risks, protection methods). Only provide advice for conditions that require attention, mitigation, or action. If a plant's conditions are perfectly within its ideal ranges, state briefly that conditions are currently ideal for it.

If no weather data is provided, say so explicitly and give general seasonal care advice instead. Never invent weather measurements.

You must structure your response as a JSON object with exactly two attributes:
{
    "details": {
        "Plant Name 1": "Specific advice for this plant...",
        "Plant Name 2": "Specific advice for this plant..."
    },
    "summary": "A concise summary of the overall advice and current conditions."
}

The "details" object must contain one entry per plant, keyed by the plant's common name. The "summary" must be a brief overview capturing the most important points. Maintain a helpful and knowledgeable tone.`

// BuildPrompt assembles the user prompt from the profile, the resolved
// plant definitions and the weather snapshot (possibly empty)
func BuildPrompt(profile *models.UserProfile, plants []*models.PlantDefinition, weather *models.WeatherSnapshot) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Provide plant care advice for user %s located at latitude %s, longitude %s.\n\n",
		profile.UserID, profile.Latitude, profile.Longitude)

	b.WriteString("Registered plants and their tolerances:\n")
	for _, plant := range plants {
		writePlantBlock(&b, plant)
	}

	b.WriteString("\nCurrent weather conditions:\n")
	if weather.HasData() {
		if weather.Temperature != nil {
			fmt.Fprintf(&b, "- Temperature: %.1f C\n", *weather.Temperature)
		}
		if weather.Humidity != nil {
			fmt.Fprintf(&b, "- Relative humidity: %.0f%%\n", *weather.Humidity)
		}
		if weather.WindSpeed != nil {
			fmt.Fprintf(&b, "- Wind speed: %.1f km/h\n", *weather.WindSpeed)
		}
		if weather.Condition != "" {
			fmt.Fprintf(&b, "- Condition: %s\n", weather.Condition)
		}
	} else {
		b.WriteString("- Weather data is currently unavailable for this location. Advise accordingly without inventing measurements.\n")
	}

	return b.String()
}

// writePlantBlock renders one plant definition as a prompt section,
// skipping attributes the record does not carry
func writePlantBlock(b *strings.Builder, plant *models.PlantDefinition) {
	fmt.Fprintf(b, "\n%s", plant.CommonName)
	if plant.ScientificName != "" {
		fmt.Fprintf(b, " (%s)", plant.ScientificName)
	}
	b.WriteString(":\n")

	attrs := []struct {
		label string
		value string
	}{
		{"Survivable temperature range (C)", rangeOrEmpty(plant.MinTempC, plant.MaxTempC)},
		{"Ideal temperature range (C)", rangeOrEmpty(plant.IdealTempMinC, plant.IdealTempMaxC)},
		{"Frost tolerance", plant.FrostTolerance},
		{"Sunlight hours", rangeOrEmpty(plant.SunlightHoursMin, plant.SunlightHoursMax)},
		{"Sunlight exposure", plant.SunlightExposure},
		{"Watering frequency", plant.WateringFrequency},
		{"Water amount (mm)", plant.WaterAmountMm},
		{"Soil moisture", plant.SoilMoisture},
		{"Soil type", plant.SoilType},
		{"Rainfall tolerance (mm)", plant.RainfallToleranceMm},
		{"Drought tolerant", plant.DroughtTolerant},
		{"Humidity range (%)", rangeOrEmpty(plant.HumidityMinPct, plant.HumidityMaxPct)},
		{"Wind tolerance (km/h)", plant.WindToleranceKmh},
		{"Growing season", plant.GrowingSeason},
		{"Dormant season", plant.DormantSeason},
		{"First frost date", plant.FirstFrostDate},
		{"Last frost date", plant.LastFrostDate},
		{"Common weather risks", plant.CommonWeatherRisks},
		{"Protection methods", plant.ProtectionMethods},
		{"Special notes", plant.SpecialNotes},
	}

	for _, attr := range attrs {
		if attr.value != "" {
			fmt.Fprintf(b, "- %s: %s\n", attr.label, attr.value)
		}
	}
}

func rangeOrEmpty(min, max string) string {
	switch {
	case min != "" && max != "":
		return min + " to " + max
	case min != "":
		return "from " + min
	case max != "":
		return "up to " + max
	default:
		return ""
	}
}
