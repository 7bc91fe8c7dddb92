package models

// AdviceResult is the parsed output of one model invocation
type AdviceResult struct {
	// CombinedAdvice is the overall summary for all plants
	CombinedAdvice string

	// Details maps a plant common name to plant-specific advice. Keys are
	// drawn only from the plant definitions that resolved for this request.
	Details map[string]string
}
