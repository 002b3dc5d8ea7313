package consilium

import (
	"regexp"
	"strconv"
)

const (
	opinionTruncateChars = 500
	defaultConfidence    = 0.5
	teamConsensusThresh  = 0.7
)

var confidenceDigitRe = regexp.MustCompile(`\b([0-9]|10)\b`)

// extractConfidence finds the last standalone digit-literal in [0,10] in the
// opinion text and scales it to [0,1]; defaults to 0.5 if none is found.
func extractConfidence(opinion string) float64 {
	matches := confidenceDigitRe.FindAllString(opinion, -1)
	if len(matches) == 0 {
		return defaultConfidence
	}
	n, err := strconv.Atoi(matches[len(matches)-1])
	if err != nil {
		return defaultConfidence
	}
	return float64(n) / 10.0
}

// truncateOpinion caps opinion text at opinionTruncateChars.
func truncateOpinion(text string) string {
	if len(text) <= opinionTruncateChars {
		return text
	}
	return text[:opinionTruncateChars]
}
