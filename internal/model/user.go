package model

import (
	"time"
)

// User is created insert-if-absent the first time a submission arrives for an
// unseen user id. This backend never updates a user after creation.
type User struct {
	ID                     string    `gorm:"primarykey" json:"id"`
	Email                  *string   `json:"email,omitempty"`
	PreferencesJSON        *string   `json:"preferences_json,omitempty" gorm:"type:text"`
	MistakeFingerprintJSON *string   `json:"mistake_fingerprint_json,omitempty" gorm:"type:text"`
	CreatedAt              time.Time `json:"created_at"`
}
