package services

import (
	"encoding/json"
	"strings"

	"plantcare-advisor-api/internal/models"
)

// structuredAdvice is the fixed-schema block the system prompt asks the
// model to emit
type structuredAdvice struct {
	Details map[string]string `json:"details"`
	Summary string            `json:"summary"`
}

// ParseAdvice turns the model's free-text output into an AdviceResult.
// It prefers the structured JSON block the prompt demands, falls back to
// splitting on heading lines matching a plant's common name, and as a last
// resort puts the whole text into CombinedAdvice with empty details.
func ParseAdvice(raw string, plants []*models.PlantDefinition) *models.AdviceResult {
	text := strings.TrimSpace(raw)

	if result := parseStructured(text, plants); result != nil {
		return result
	}
	if result := parseSections(text, plants); result != nil {
		return result
	}

	return &models.AdviceResult{
		CombinedAdvice: text,
		Details:        map[string]string{},
	}
}

// parseStructured extracts and decodes the JSON advice block, tolerating
// surrounding prose and markdown code fences
func parseStructured(text string, plants []*models.PlantDefinition) *models.AdviceResult {
	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil
	}

	var advice structuredAdvice
	if err := json.Unmarshal([]byte(text[start:end+1]), &advice); err != nil {
		return nil
	}
	if advice.Summary == "" && len(advice.Details) == 0 {
		return nil
	}

	// Detail keys must come from the plants that actually resolved;
	// anything else the model invented is folded into nothing
	details := map[string]string{}
	for name, entry := range advice.Details {
		if matchPlantName(name, plants) != "" {
			details[matchPlantName(name, plants)] = strings.TrimSpace(entry)
		}
	}

	return &models.AdviceResult{
		CombinedAdvice: strings.TrimSpace(advice.Summary),
		Details:        details,
	}
}

// parseSections splits free text on heading lines naming a known plant
func parseSections(text string, plants []*models.PlantDefinition) *models.AdviceResult {
	lines := strings.Split(text, "\n")

	details := map[string]string{}
	var lead []string
	var current string
	var body []string

	flush := func() {
		if current != "" {
			details[current] = strings.TrimSpace(strings.Join(body, "\n"))
		}
		body = nil
	}

	for _, line := range lines {
		heading := headingText(line)
		if name := matchPlantName(heading, plants); name != "" {
			flush()
			current = name
			continue
		}
		if current == "" {
			lead = append(lead, line)
		} else {
			body = append(body, line)
		}
	}
	flush()

	if len(details) == 0 {
		return nil
	}

	return &models.AdviceResult{
		CombinedAdvice: strings.TrimSpace(strings.Join(lead, "\n")),
		Details:        details,
	}
}

// headingText strips markdown heading and list markers plus a trailing
// colon, leaving the candidate heading title
func headingText(line string) string {
	trimmed := strings.TrimSpace(line)
	trimmed = strings.TrimLeft(trimmed, "#*- ")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), ":")
	return strings.TrimSpace(strings.Trim(trimmed, "*"))
}

// matchPlantName returns the canonical common name when the candidate
// matches one of the resolved plants, or "" otherwise
func matchPlantName(candidate string, plants []*models.PlantDefinition) string {
	if candidate == "" {
		return ""
	}
	for _, plant := range plants {
		if strings.EqualFold(candidate, plant.CommonName) {
			return plant.CommonName
		}
	}
	return ""
}
