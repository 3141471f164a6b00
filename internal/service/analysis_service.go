package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"explainmymistake/config"
	"explainmymistake/internal/dto"
	"explainmymistake/internal/model"
	"explainmymistake/internal/prompt"
	"explainmymistake/internal/util"

	"github.com/google/generative-ai-go/genai"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

// ErrMissingAPIKey is returned for non-demo submissions when no Gemini credential
// is configured.
var ErrMissingAPIKey = errors.New("GEMINI_API_KEY is missing. Please set GEMINI_API_KEY in .env")

const (
	// maxAnalysisAttempts bounds the whole analyze sequence: one call plus one
	// retry, no backoff. The call is synchronous within the request lifecycle,
	// so there is nothing to absorb a longer retry schedule.
	maxAnalysisAttempts = 2

	// analysisTimeout caps each attempt against the model.
	analysisTimeout = 30 * time.Second
)

type AnalysisService interface {
	// Analyze returns a validated AnalysisResult for the submission or fails.
	Analyze(ctx context.Context, sub *model.Submission) (*dto.AnalysisResult, error)
}

// generateFunc produces raw model output for a rendered system/user prompt pair.
// It is a seam for tests; production wiring points it at Gemini.
type generateFunc func(ctx context.Context, system, user string) (string, error)

type analysisService struct {
	cfg      *config.Config
	generate generateFunc
}

func NewAnalysisService(cfg *config.Config) AnalysisService {
	if cfg.GeminiApiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY is not set. Analysis will only work for demo-mode submissions.")
	}
	s := &analysisService{cfg: cfg}
	s.generate = s.generateWithGemini
	return s
}

func (s *analysisService) Analyze(ctx context.Context, sub *model.Submission) (*dto.AnalysisResult, error) {
	if s.cfg.GeminiApiKey == "" {
		if sub.IsDemoMode {
			log.Warn().Str("submissionId", sub.ID).Msg("Missing GEMINI_API_KEY. Using mock response for DEMO.")
			return MockAnalysisResult(), nil
		}
		return nil, ErrMissingAPIKey
	}

	var lastErr error
	for attempt := 1; attempt <= maxAnalysisAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			// The caller is gone; a retry would only burn quota.
			lastErr = err
			break
		}
		result, err := s.analyzeOnce(ctx, sub)
		if err == nil {
			return result, nil
		}
		lastErr = err
		log.Warn().Err(err).
			Int("attempt", attempt).
			Str("submissionId", sub.ID).
			Msg("Analysis attempt failed")
	}

	if sub.IsDemoMode {
		// A demo user never sees a flaky-service failure.
		log.Warn().Err(lastErr).Str("submissionId", sub.ID).Msg("Analysis attempts exhausted, falling back to mock response for DEMO.")
		return MockAnalysisResult(), nil
	}
	return nil, lastErr
}

// analyzeOnce renders the prompts fresh, calls the model once and validates the
// output fail-closed.
func (s *analysisService) analyzeOnce(ctx context.Context, sub *model.Submission) (*dto.AnalysisResult, error) {
	callCtx, cancel := context.WithTimeout(ctx, analysisTimeout)
	defer cancel()

	raw, err := s.generate(callCtx, prompt.SystemPrompt(sub), prompt.UserPrompt(sub))
	if err != nil {
		return nil, err
	}

	cleaned := util.StripCodeFences(raw)
	if cleaned == "" {
		return nil, fmt.Errorf("empty response from model")
	}
	return dto.ParseAnalysisResult([]byte(cleaned))
}

func (s *analysisService) generateWithGemini(ctx context.Context, system, user string) (string, error) {
	client, err := genai.NewClient(ctx, option.WithAPIKey(s.cfg.GeminiApiKey))
	if err != nil {
		return "", fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	defer client.Close()

	m := client.GenerativeModel(strings.TrimSpace(s.cfg.GeminiModel))
	m.GenerationConfig = genai.GenerationConfig{
		Temperature:      ptrFloat32(0.2),
		ResponseMIMEType: "application/json",
	}
	m.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(system)}}

	resp, err := m.GenerateContent(ctx, genai.Text(user))
	if err != nil {
		return "", fmt.Errorf("gemini: %w", err)
	}

	text := firstText(resp)
	if text == "" {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return text, nil
}

// MockAnalysisResult is the fixed result served to demo users when no credential
// is configured or the model stays unreachable. Deterministic on purpose.
func MockAnalysisResult() *dto.AnalysisResult {
	return &dto.AnalysisResult{
		ErrorDiagnosis:     "DEMO MODE: API Key missing or Error. This is a simulated diagnosis. Your loop condition is incorrect.",
		ConceptExplanation: "Off-by-one errors often occur when using <= instead of < in zero-indexed arrays.",
		ReasoningGuidance:  []string{"Check the array length.", "Trace the last iteration."},
		ProofOfLearning:    "Rewrite the loop for array of size 5.",
		SocraticQuestion:   "What is the index of the last element in an array of size N?",
		AnswerSafeBadge:    true,
		Encouragement:      "You're getting there!",
		LearningMetrics: &dto.LearningMetrics{
			ConceptResolvedAfterAttempts: map[string]int{},
			MistakeRecurrenceRate:        0,
			ImprovementVelocity:          0,
			MasteryIndicators:            []string{},
		},
	}
}

func firstText(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}
	for _, c := range resp.Candidates {
		if c.Content == nil {
			continue
		}
		for _, p := range c.Content.Parts {
			if t, ok := p.(genai.Text); ok {
				return string(t)
			}
		}
	}
	return ""
}

func ptrFloat32(v float32) *float32 { return &v }
