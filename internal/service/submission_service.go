package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"explainmymistake/internal/dto"
	"explainmymistake/internal/model"
	"explainmymistake/internal/repository"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
	"github.com/rs/zerolog/log"
)

type SubmissionService interface {
	// Submit runs the whole pipeline for one request: persist pending, analyze,
	// persist result. On analysis failure the pending row stays behind.
	Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error)
	// History returns the user's submissions, newest first.
	History(ctx context.Context, userID string) ([]dto.SubmissionResponse, error)
}

type submissionService struct {
	userRepo       repository.UserRepository
	submissionRepo repository.SubmissionRepository
	analysisSvc    AnalysisService
}

func NewSubmissionService(
	userRepo repository.UserRepository,
	submissionRepo repository.SubmissionRepository,
	analysisSvc AnalysisService,
) SubmissionService {
	return &submissionService{
		userRepo:       userRepo,
		submissionRepo: submissionRepo,
		analysisSvc:    analysisSvc,
	}
}

func (s *submissionService) Submit(ctx context.Context, req dto.SubmitRequest) (*dto.SubmitResponse, error) {
	submission := &model.Submission{
		ID:              uuid.NewString(),
		UserID:          req.UserID,
		Question:        req.Question,
		AttemptedAnswer: req.AttemptedAnswer,
		Subject:         model.SubjectDomain(req.Subject),
		TonePreference:  model.ToneMode(req.TonePreference),
		SubmissionTime:  time.Now(),
		IsDemoMode:      req.IsDemoMode,
	}

	if err := s.userRepo.EnsureExists(req.UserID); err != nil {
		log.Error().Err(err).Str("userId", req.UserID).Msg("Failed to ensure user row")
		return nil, fmt.Errorf("failed to ensure user: %w", err)
	}

	if err := s.submissionRepo.Create(submission); err != nil {
		log.Error().Err(err).Str("submissionId", submission.ID).Msg("Failed to create submission")
		return nil, fmt.Errorf("failed to store submission: %w", err)
	}

	result, err := s.analysisSvc.Analyze(ctx, submission)
	if err != nil {
		// The pending row stays persisted without a result; no compensating
		// delete.
		log.Error().Err(err).Str("submissionId", submission.ID).Msg("Analysis failed")
		return nil, err
	}

	blob, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize analysis result: %w", err)
	}
	if err := s.submissionRepo.AttachResult(submission.ID, string(blob)); err != nil {
		log.Error().Err(err).Str("submissionId", submission.ID).Msg("Failed to attach analysis result")
		return nil, fmt.Errorf("failed to store analysis result: %w", err)
	}

	return &dto.SubmitResponse{
		Success:      true,
		SubmissionID: submission.ID,
		Result:       result,
	}, nil
}

func (s *submissionService) History(ctx context.Context, userID string) ([]dto.SubmissionResponse, error) {
	submissions, err := s.submissionRepo.FindAllByUser(userID)
	if err != nil {
		log.Error().Err(err).Str("userId", userID).Msg("Failed to load submission history")
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	items := make([]dto.SubmissionResponse, 0, len(submissions))
	for i := range submissions {
		var item dto.SubmissionResponse
		copier.Copy(&item, &submissions[i])
		if raw := submissions[i].AnalysisResultJSON; raw != nil {
			result, err := dto.ParseAnalysisResult([]byte(*raw))
			if err != nil {
				// A stored blob passed validation when written; a corrupt one is
				// surfaced as an absent result rather than failing the read.
				log.Warn().Err(err).Str("submissionId", submissions[i].ID).Msg("Stored analysis result failed to parse")
			} else {
				item.Result = result
			}
		}
		items = append(items, item)
	}
	return items, nil
}
