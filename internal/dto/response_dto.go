package dto

import (
	"time"

	"explainmymistake/internal/model"
)

type SubmitResponse struct {
	Success      bool            `json:"success"`
	SubmissionID string          `json:"submissionId"`
	Result       *AnalysisResult `json:"result"`
}

// SubmissionResponse is one history row. Result is nil when the analysis never
// completed for that submission.
type SubmissionResponse struct {
	ID              string              `json:"id"`
	UserID          string              `json:"userId"`
	Question        string              `json:"question"`
	AttemptedAnswer string              `json:"attemptedAnswer"`
	Subject         model.SubjectDomain `json:"subject"`
	TonePreference  model.ToneMode      `json:"tonePreference"`
	SubmissionTime  time.Time           `json:"submissionTime"`
	IsDemoMode      bool                `json:"isDemoMode"`
	Result          *AnalysisResult     `json:"result,omitempty"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationErrorResponse carries the field-level issue list for a 400.
type ValidationErrorResponse struct {
	Error []FieldIssue `json:"error"`
}
