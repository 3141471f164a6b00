package dto

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validAnalysisPayload() map[string]any {
	return map[string]any{
		"errorDiagnosis":     "Loop bound is off by one.",
		"conceptExplanation": "Zero-indexed arrays end at length-1.",
		"reasoningGuidance":  []string{"Check the bound.", "Trace the last iteration."},
		"proofOfLearning":    "Repeat for an array of size 5.",
		"socraticQuestion":   "What is the last valid index?",
		"answerSafeBadge":    true,
		"encouragement":      "Nearly there!",
	}
}

func marshal(t *testing.T, payload map[string]any) []byte {
	t.Helper()
	raw, err := json.Marshal(payload)
	require.NoError(t, err)
	return raw
}

func TestParseAnalysisResultValid(t *testing.T) {
	result, err := ParseAnalysisResult(marshal(t, validAnalysisPayload()))
	require.NoError(t, err)

	assert.Equal(t, "Loop bound is off by one.", result.ErrorDiagnosis)
	assert.Len(t, result.ReasoningGuidance, 2)
	assert.True(t, result.AnswerSafeBadge)
	assert.Nil(t, result.LearningMetrics)
}

func TestParseAnalysisResultWithLearningMetrics(t *testing.T) {
	payload := validAnalysisPayload()
	payload["learningMetrics"] = map[string]any{
		"conceptResolvedAfterAttempts": map[string]int{"loops": 2},
		"mistakeRecurrenceRate":        0.5,
		"improvementVelocity":          1.2,
		"masteryIndicators":            []string{"traces loops"},
	}

	result, err := ParseAnalysisResult(marshal(t, payload))
	require.NoError(t, err)
	require.NotNil(t, result.LearningMetrics)
	assert.Equal(t, 2, result.LearningMetrics.ConceptResolvedAfterAttempts["loops"])
	assert.InDelta(t, 0.5, result.LearningMetrics.MistakeRecurrenceRate, 1e-9)
}

func TestParseAnalysisResultMissingRequiredField(t *testing.T) {
	for _, field := range requiredAnalysisFields {
		t.Run(field, func(t *testing.T) {
			payload := validAnalysisPayload()
			delete(payload, field)

			result, err := ParseAnalysisResult(marshal(t, payload))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestParseAnalysisResultMalformedJSON(t *testing.T) {
	for name, raw := range map[string]string{
		"garbage":    "I am not JSON, sorry.",
		"array":      `["errorDiagnosis"]`,
		"empty":      "",
		"truncated":  `{"errorDiagnosis": "x"`,
		"bare_value": `42`,
	} {
		t.Run(name, func(t *testing.T) {
			result, err := ParseAnalysisResult([]byte(raw))
			require.Error(t, err)
			assert.Nil(t, result)
		})
	}
}

func TestParseAnalysisResultNullRequiredField(t *testing.T) {
	for _, field := range requiredAnalysisFields {
		t.Run(field, func(t *testing.T) {
			payload := validAnalysisPayload()
			payload[field] = nil

			result, err := ParseAnalysisResult(marshal(t, payload))
			require.Error(t, err)
			assert.Nil(t, result)
			assert.Contains(t, err.Error(), field)
		})
	}
}

func TestParseAnalysisResultAllNullFields(t *testing.T) {
	payload := validAnalysisPayload()
	for _, field := range requiredAnalysisFields {
		payload[field] = nil
	}

	result, err := ParseAnalysisResult(marshal(t, payload))
	require.Error(t, err)
	assert.Nil(t, result)
}

func TestParseAnalysisResultWrongType(t *testing.T) {
	payload := validAnalysisPayload()
	payload["reasoningGuidance"] = "not an array"

	result, err := ParseAnalysisResult(marshal(t, payload))
	require.Error(t, err)
	assert.Nil(t, result)

	payload = validAnalysisPayload()
	payload["answerSafeBadge"] = "true"

	result, err = ParseAnalysisResult(marshal(t, payload))
	require.Error(t, err)
	assert.Nil(t, result)
}
