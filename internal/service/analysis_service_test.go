package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"explainmymistake/config"
	"explainmymistake/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func demoSubmission(demo bool) *model.Submission {
	return &model.Submission{
		ID:              "sub-1",
		UserID:          "u1",
		Question:        "Reverse a string",
		AttemptedAnswer: "for i in range(len(s)): ...",
		Subject:         model.SubjectCoding,
		TonePreference:  model.ToneGentle,
		IsDemoMode:      demo,
	}
}

func validModelOutput(t *testing.T) string {
	t.Helper()
	raw, err := json.Marshal(map[string]any{
		"errorDiagnosis":     "Loop bound is off by one.",
		"conceptExplanation": "Zero-indexed arrays end at length-1.",
		"reasoningGuidance":  []string{"Check the bound."},
		"proofOfLearning":    "Repeat for an array of size 5.",
		"socraticQuestion":   "What is the last valid index?",
		"answerSafeBadge":    true,
		"encouragement":      "Nearly there!",
	})
	require.NoError(t, err)
	return string(raw)
}

// scriptedService returns an analysis service whose model calls are served from
// the given script instead of Gemini. Each entry is one attempt's raw output.
func scriptedService(apiKey string, script ...func() (string, error)) (*analysisService, *int) {
	calls := 0
	s := &analysisService{
		cfg: &config.Config{GeminiApiKey: apiKey, GeminiModel: "gemini-2.5-flash"},
	}
	s.generate = func(ctx context.Context, system, user string) (string, error) {
		if calls >= len(script) {
			return "", errors.New("unexpected extra model call")
		}
		out, err := script[calls]()
		calls++
		return out, err
	}
	return s, &calls
}

func succeed(out string) func() (string, error) {
	return func() (string, error) { return out, nil }
}

func fail(msg string) func() (string, error) {
	return func() (string, error) { return "", errors.New(msg) }
}

func TestAnalyzeMissingKeyDemoReturnsMock(t *testing.T) {
	svc, calls := scriptedService("")

	result, err := svc.Analyze(context.Background(), demoSubmission(true))
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.True(t, result.AnswerSafeBadge)
	assert.NotEmpty(t, result.ErrorDiagnosis)
	assert.Equal(t, MockAnalysisResult(), result, "demo result must be deterministic")
	assert.Zero(t, *calls, "no model call expected without a credential")
}

func TestAnalyzeMissingKeyNonDemoFails(t *testing.T) {
	svc, calls := scriptedService("")

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.ErrorIs(t, err, ErrMissingAPIKey)
	assert.Nil(t, result)
	assert.Zero(t, *calls)
}

func TestAnalyzeFirstAttemptSucceeds(t *testing.T) {
	svc, calls := scriptedService("key", succeed(validModelOutput(t)))

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.Equal(t, "Loop bound is off by one.", result.ErrorDiagnosis)
	assert.Equal(t, 1, *calls)
}

func TestAnalyzeRetriesOnceOnGarbage(t *testing.T) {
	svc, calls := scriptedService("key",
		succeed("this is not json at all"),
		succeed(validModelOutput(t)),
	)

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.True(t, result.AnswerSafeBadge)
	assert.Equal(t, 2, *calls, "retry must be exercised exactly once")
}

func TestAnalyzeRetriesOnEmptyResponse(t *testing.T) {
	svc, calls := scriptedService("key",
		succeed("   "),
		succeed(validModelOutput(t)),
	)

	_, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestAnalyzeRetriesOnContractViolation(t *testing.T) {
	// Parseable JSON missing a required field must be rejected, not accepted
	// best-effort.
	svc, calls := scriptedService("key",
		succeed(`{"errorDiagnosis": "only one field"}`),
		succeed(validModelOutput(t)),
	)

	_, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.Equal(t, 2, *calls)
}

func TestAnalyzeRetriesOnNullRequiredFields(t *testing.T) {
	// An explicit null is not a present value. A response nulling out required
	// fields must trigger the retry, not decode to zero values.
	svc, calls := scriptedService("key",
		succeed(`{"errorDiagnosis": null, "conceptExplanation": "x", "reasoningGuidance": null, "proofOfLearning": "x", "socraticQuestion": "x", "answerSafeBadge": null, "encouragement": "x"}`),
		succeed(validModelOutput(t)),
	)

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.True(t, result.AnswerSafeBadge)
	assert.NotEmpty(t, result.ErrorDiagnosis)
	assert.Equal(t, 2, *calls)
}

func TestAnalyzeSkipsRetryWhenContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())

	// The caller disconnects during the first attempt; the second attempt must
	// never be started.
	svc, calls := scriptedService("key",
		func() (string, error) {
			cancel()
			return "", context.Canceled
		},
		succeed(validModelOutput(t)),
	)

	result, err := svc.Analyze(ctx, demoSubmission(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Equal(t, 1, *calls, "no second attempt after cancellation")
}

func TestAnalyzeCanceledBeforeFirstAttempt(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	svc, calls := scriptedService("key")

	result, err := svc.Analyze(ctx, demoSubmission(false))
	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Nil(t, result)
	assert.Zero(t, *calls)
}

func TestAnalyzeExhaustedNonDemoPropagatesLastError(t *testing.T) {
	svc, calls := scriptedService("key",
		fail("first failure"),
		fail("second failure"),
	)

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "second failure")
	assert.Nil(t, result)
	assert.Equal(t, 2, *calls, "exactly two attempts, no more")
}

func TestAnalyzeExhaustedDemoFallsBackToMock(t *testing.T) {
	svc, calls := scriptedService("key",
		fail("network down"),
		succeed("still not json"),
	)

	result, err := svc.Analyze(context.Background(), demoSubmission(true))
	require.NoError(t, err)
	assert.Equal(t, MockAnalysisResult(), result)
	assert.Equal(t, 2, *calls)
}

func TestAnalyzeStripsCodeFences(t *testing.T) {
	svc, _ := scriptedService("key",
		succeed("```json\n"+validModelOutput(t)+"\n```"),
	)

	result, err := svc.Analyze(context.Background(), demoSubmission(false))
	require.NoError(t, err)
	assert.True(t, result.AnswerSafeBadge)
}

func TestMockAnalysisResultIsAnswerSafe(t *testing.T) {
	mock := MockAnalysisResult()
	assert.True(t, mock.AnswerSafeBadge)
	assert.NotEmpty(t, mock.ErrorDiagnosis)
	assert.NotEmpty(t, mock.ReasoningGuidance)
	require.NotNil(t, mock.LearningMetrics)
	assert.Empty(t, mock.LearningMetrics.MasteryIndicators)
}
