package model

import (
	"time"
)

// Submission is one question/attempt pair. AnalysisResultJSON stays nil until the
// analysis completes; a row without a result is a visible partial state, never
// cleaned up.
type Submission struct {
	ID                 string        `gorm:"primarykey" json:"id"`
	UserID             string        `json:"user_id" gorm:"not null;index"`
	User               User          `json:"-" gorm:"foreignKey:UserID"`
	Question           string        `json:"question" gorm:"type:text;not null"`
	AttemptedAnswer    string        `json:"attempted_answer" gorm:"type:text;not null"`
	Subject            SubjectDomain `json:"subject" gorm:"not null"`
	TonePreference     ToneMode      `json:"tone_preference" gorm:"not null"`
	SubmissionTime     time.Time     `json:"submission_time" gorm:"index"`
	IsDemoMode         bool          `json:"is_demo_mode" gorm:"default:false"`
	AnalysisResultJSON *string       `json:"analysis_result_json,omitempty" gorm:"type:text"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
}
