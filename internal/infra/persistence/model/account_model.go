// Package model holds the GORM persistence models mirroring database tables.
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccountModel mirrors the 'accounts' table. The two token columns carry a
// unique index so a challenge token can never identify more than one account.
type AccountModel struct {
	ID            uuid.UUID `gorm:"type:uuid;primary_key"`
	Email         string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	PasswordHash  string    `gorm:"type:varchar(255);not null"`
	Name          string    `gorm:"type:varchar(100);not null"`
	Role          string    `gorm:"type:varchar(16);not null;default:USER"`
	IsActive      bool      `gorm:"not null;default:true"`
	EmailVerified bool      `gorm:"not null;default:false"`

	EmailVerificationToken   *string `gorm:"type:varchar(255);uniqueIndex"`
	EmailVerificationExpires *time.Time
	PasswordResetToken       *string `gorm:"type:varchar(255);uniqueIndex"`
	PasswordResetExpires     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// BeforeCreate assigns the primary key on the application side so the model
// works against any SQL backend, not only ones with a UUID default.
func (m *AccountModel) BeforeCreate(_ *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}

	return nil
}
