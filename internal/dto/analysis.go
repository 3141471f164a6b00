package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// AnalysisResult is the structured critique the model must return. All fields
// except LearningMetrics are required; validation is fail-closed.
type AnalysisResult struct {
	ErrorDiagnosis     string           `json:"errorDiagnosis"`
	ConceptExplanation string           `json:"conceptExplanation"`
	ReasoningGuidance  []string         `json:"reasoningGuidance"`
	ProofOfLearning    string           `json:"proofOfLearning"`
	SocraticQuestion   string           `json:"socraticQuestion"`
	AnswerSafeBadge    bool             `json:"answerSafeBadge"`
	Encouragement      string           `json:"encouragement"`
	LearningMetrics    *LearningMetrics `json:"learningMetrics,omitempty"`
}

// LearningMetrics is a forward-looking extension point. Nothing in this backend
// populates it with real aggregated history.
type LearningMetrics struct {
	ConceptResolvedAfterAttempts map[string]int `json:"conceptResolvedAfterAttempts"`
	MistakeRecurrenceRate        float64        `json:"mistakeRecurrenceRate"`
	ImprovementVelocity          float64        `json:"improvementVelocity"`
	MasteryIndicators            []string       `json:"masteryIndicators"`
}

// MistakeFingerprint is part of the contract but is never populated or read by
// the current flow. Kept as an intentionally unfinished extension point.
type MistakeFingerprint struct {
	UserID            string          `json:"userId"`
	CommonErrorTypes  []string        `json:"commonErrorTypes"`
	RecurringConcepts []string        `json:"recurringConcepts"`
	ImprovementTrend  string          `json:"improvementTrend"`
	VisualTags        []string        `json:"visualTags"`
	StrengthAreas     []string        `json:"strengthAreas"`
	LearningMetrics   LearningMetrics `json:"learningMetrics"`
	LastUpdated       time.Time       `json:"lastUpdated"`
}

var requiredAnalysisFields = []string{
	"errorDiagnosis",
	"conceptExplanation",
	"reasoningGuidance",
	"proofOfLearning",
	"socraticQuestion",
	"answerSafeBadge",
	"encouragement",
}

// ParseAnalysisResult validates raw model output against the AnalysisResult
// contract. Malformed JSON, a missing required field, or a wrongly typed field is
// a failure; no partial result is ever returned. learningMetrics is the only
// optional field.
func ParseAnalysisResult(raw []byte) (*AnalysisResult, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("analysis result is not a JSON object: %w", err)
	}
	for _, name := range requiredAnalysisFields {
		value, ok := fields[name]
		if !ok {
			return nil, fmt.Errorf("analysis result is missing required field %q", name)
		}
		// json.Unmarshal leaves the Go value untouched on an explicit null, so a
		// null here would slip through the typed decode as a zero value.
		if bytes.Equal(bytes.TrimSpace(value), []byte("null")) {
			return nil, fmt.Errorf("analysis result has null required field %q", name)
		}
	}

	var result AnalysisResult
	if err := json.Unmarshal(raw, &result); err != nil {
		return nil, fmt.Errorf("analysis result has a wrongly typed field: %w", err)
	}
	return &result, nil
}
