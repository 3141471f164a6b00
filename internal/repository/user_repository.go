package repository

import (
	"time"

	"explainmymistake/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	// EnsureExists inserts a user row for id if none exists. An existing row is
	// never touched.
	EnsureExists(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) EnsureExists(id string) error {
	user := model.User{ID: id, CreatedAt: time.Now()}
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(&user).Error
}
