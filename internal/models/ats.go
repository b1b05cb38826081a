package models

import (
	"encoding/json"
	"math"
	"strings"
)

// AtsResult is the screening-compatibility score for one resume.
type AtsResult struct {
	AtsScore         int    `json:"atsScore"`
	Feedback         string `json:"feedback"`
	DetailedFeedback string `json:"detailedFeedback,omitempty"`
}

// CoerceAtsResult validates raw scoring output. A missing or out-of-range
// score is rejected; no default score is ever substituted.
func CoerceAtsResult(raw []byte) (*AtsResult, error) {
	var loose struct {
		AtsScore *float64 `json:"atsScore"`
		Feedback *string  `json:"feedback"`
	}
	if err := json.Unmarshal(raw, &loose); err != nil {
		return nil, newValidationError("(root)", "scoring output is not a valid object")
	}

	if loose.AtsScore == nil {
		return nil, newValidationError("atsScore", "atsScore is required")
	}
	score := *loose.AtsScore
	if math.IsNaN(score) || score < 0 || score > 100 {
		return nil, newValidationError("atsScore", "atsScore must be between 0 and 100")
	}

	result := &AtsResult{AtsScore: int(math.Round(score))}
	if loose.Feedback != nil {
		result.Feedback = strings.TrimSpace(*loose.Feedback)
	}

	return result, nil
}
