package repository

import (
	"explainmymistake/internal/model"

	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(submission *model.Submission) error
	// AttachResult writes the serialized analysis result onto an existing row.
	AttachResult(id string, resultJSON string) error
	// FindAllByUser returns every submission for the user, newest first.
	FindAllByUser(userID string) ([]model.Submission, error)
}

type submissionRepository struct {
	db *gorm.DB
}

func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *model.Submission) error {
	return r.db.Create(submission).Error
}

func (r *submissionRepository) AttachResult(id string, resultJSON string) error {
	return r.db.Model(&model.Submission{}).
		Where("id = ?", id).
		Update("analysis_result_json", resultJSON).Error
}

func (r *submissionRepository) FindAllByUser(userID string) ([]model.Submission, error) {
	var submissions []model.Submission
	if err := r.db.
		Where("user_id = ?", userID).
		Order("submission_time desc").
		Find(&submissions).Error; err != nil {
		return nil, err
	}
	return submissions, nil
}
