package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

// Business categories offered in the profile form.
var BusinessCategories = []string{
	"Restaurant & Food",
	"Healthcare & Medical",
	"Automotive",
	"Home & Garden",
	"Professional Services",
	"Retail",
	"Beauty & Personal Care",
	"Fitness & Wellness",
	"Education",
	"Technology",
	"Real Estate",
	"Legal Services",
	"Construction",
	"Other",
}

// Business is a customer's business profile, the anchor record campaigns
// attach to.
type Business struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	UUID         string `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID       uint   `gorm:"not null;index" json:"user_id"`
	Name         string `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Category     string `gorm:"type:varchar(100);not null;default:'Other'" json:"category"`
	Description  string `gorm:"type:text" json:"description" validate:"max=2000"`
	WebsiteURL   string `gorm:"type:varchar(255)" json:"website_url" validate:"omitempty,url,max=255"`
	PhoneNumber  string `gorm:"type:varchar(30)" json:"phone_number" validate:"max=30"`
	Email        string `gorm:"type:varchar(200)" json:"email" validate:"omitempty,email,max=200"`
	StreetAddress string `gorm:"type:varchar(255)" json:"street_address" validate:"max=255"`
	City         string `gorm:"type:varchar(100)" json:"city" validate:"max=100"`
	State        string `gorm:"type:varchar(100)" json:"state" validate:"max=100"`
	ZipCode      string `gorm:"type:varchar(20)" json:"zip_code" validate:"max=20"`
	Country      string `gorm:"type:varchar(100);default:'US'" json:"country" validate:"max=100"`
	// HoursJSON holds the weekly opening hours as a serialized WeekHours.
	HoursJSON        string     `gorm:"type:text" json:"-"`
	GoogleBusinessID string     `gorm:"type:varchar(191);default:null" json:"google_business_id,omitempty"`
	SEOScore         int        `gorm:"default:0" json:"seo_score"`
	CreatedAt        time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt        time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	User User `gorm:"foreignKey:UserID" json:"-" validate:"-"`
}

// DayHours describes opening hours for a single weekday.
type DayHours struct {
	IsOpen    bool   `json:"is_open"`
	OpenTime  string `json:"open_time,omitempty"`
	CloseTime string `json:"close_time,omitempty"`
}

// WeekHours is the full hours-of-week table stored on a business profile.
type WeekHours struct {
	Monday    DayHours `json:"monday"`
	Tuesday   DayHours `json:"tuesday"`
	Wednesday DayHours `json:"wednesday"`
	Thursday  DayHours `json:"thursday"`
	Friday    DayHours `json:"friday"`
	Saturday  DayHours `json:"saturday"`
	Sunday    DayHours `json:"sunday"`
}

func (b *Business) Validate() error {
	v := validator.New()
	return v.Struct(b)
}

// Hours decodes the stored hours table; an empty column yields zero hours.
func (b *Business) Hours() (WeekHours, error) {
	var h WeekHours
	if b.HoursJSON == "" {
		return h, nil
	}
	err := json.Unmarshal([]byte(b.HoursJSON), &h)
	return h, err
}

// SetHours serializes and stores the hours table.
func (b *Business) SetHours(h WeekHours) error {
	raw, err := json.Marshal(h)
	if err != nil {
		return err
	}
	b.HoursJSON = string(raw)
	return nil
}
