package models

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

// UserSettings keeps the per-user dashboard state that is derived from
// billing events, most importantly the effective plan.
type UserSettings struct {
	ID                 uint      `gorm:"primaryKey" json:"id"`
	UserID             uint      `gorm:"not null;uniqueIndex" json:"user_id"`
	Plan               string    `gorm:"type:varchar(50);not null;default:'free'" json:"plan"`
	NotifyOnLeadCalls  bool      `gorm:"default:true" json:"notify_on_lead_calls"`
	NotifyOnBilling    bool      `gorm:"default:true" json:"notify_on_billing"`
	WeeklyReportEmails bool      `gorm:"default:false" json:"weekly_report_emails"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// GetOrCreateUserSettings loads the settings row for a user, creating the
// default row on first access.
func GetOrCreateUserSettings(db *gorm.DB, userID uint) (*UserSettings, error) {
	if userID == 0 {
		return nil, errors.New("user id is required")
	}

	var us UserSettings
	err := db.Where("user_id = ?", userID).First(&us).Error
	if err == nil {
		return &us, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	us = UserSettings{UserID: userID, Plan: "free"}
	if err := db.Create(&us).Error; err != nil {
		return nil, err
	}
	return &us, nil
}
