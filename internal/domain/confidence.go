package domain

// Confidence is the QA model score bucketed into three fixed levels.
type Confidence string

const (
	ConfidenceHigh     Confidence = "High Confidence"
	ConfidenceModerate Confidence = "Moderate Confidence"
	ConfidenceLow      Confidence = "Low Confidence"
)

// ClassifyConfidence buckets a QA score. The thresholds are fixed:
// score >= 0.8 is High, 0.5 <= score < 0.8 is Moderate, else Low.
func ClassifyConfidence(score float64) Confidence {
	switch {
	case score >= 0.8:
		return ConfidenceHigh
	case score >= 0.5:
		return ConfidenceModerate
	default:
		return ConfidenceLow
	}
}
