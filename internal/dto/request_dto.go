package dto

// SubmitRequest is the body of POST /api/submit. Identifier and timestamp are
// generated server side.
type SubmitRequest struct {
	UserID          string `json:"userId" binding:"required"`
	Question        string `json:"question" binding:"required"`
	AttemptedAnswer string `json:"attemptedAnswer" binding:"required"`
	Subject         string `json:"subject" binding:"required,oneof=coding dsa algorithms mathematics theory mcq"`
	TonePreference  string `json:"tonePreference" binding:"required,oneof=gentle exam-oriented strict-mentor"`
	IsDemoMode      bool   `json:"isDemoMode"`
}
