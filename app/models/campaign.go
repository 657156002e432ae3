package models

import (
	"encoding/json"
	"time"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"
)

const (
	CampaignStatusDraft     = "draft"
	CampaignStatusActive    = "active"
	CampaignStatusPaused    = "paused"
	CampaignStatusCompleted = "completed"
	CampaignStatusArchived  = "archived"
)

const (
	CampaignTypeGoogleAds     = "google_ads"
	CampaignTypeFacebookAds   = "facebook_ads"
	CampaignTypeInstagramAds  = "instagram_ads"
	CampaignTypeMultiPlatform = "multi_platform"
	CampaignTypeSEO           = "seo"
	CampaignTypeLocalSearch   = "local_search"
)

// Campaign is a pay-per-call advertising campaign owned by a user and tied
// to one of their business profiles.
type Campaign struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	UUID        string  `gorm:"type:varchar(36);not null;uniqueIndex" json:"uuid"`
	UserID      uint    `gorm:"not null;index" json:"user_id"`
	BusinessID  uint    `gorm:"not null;index" json:"business_id"`
	Name        string  `gorm:"type:varchar(200);not null" json:"name" validate:"required,min=2,max=200"`
	Description string  `gorm:"type:text" json:"description" validate:"max=2000"`
	Status      string  `gorm:"type:varchar(20);not null;default:'draft';index" json:"status" validate:"oneof=draft active paused completed archived"`
	Type        string  `gorm:"type:varchar(30);not null;default:'google_ads'" json:"type" validate:"oneof=google_ads facebook_ads instagram_ads multi_platform seo local_search"`
	Budget      float64 `gorm:"not null;default:0" json:"budget" validate:"gte=0"`
	DailyBudget float64 `gorm:"not null;default:0" json:"daily_budget" validate:"gte=0"`
	StartDate   *time.Time `gorm:"type:timestamp;default:null" json:"start_date,omitempty"`
	EndDate     *time.Time `gorm:"type:timestamp;default:null" json:"end_date,omitempty"`
	// TargetLocationJSON holds the serialized TargetLocation.
	TargetLocationJSON string `gorm:"type:text" json:"-"`
	// KeywordsJSON holds the serialized keyword list.
	KeywordsJSON       string `gorm:"type:text" json:"-"`
	CallTrackingNumber string `gorm:"type:varchar(30)" json:"call_tracking_number" validate:"max=30"`
	CreatedAt          time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt          gorm.DeletedAt `gorm:"index" json:"-"`

	User     User     `gorm:"foreignKey:UserID" json:"-" validate:"-"`
	Business Business `gorm:"foreignKey:BusinessID" json:"-" validate:"-"`
}

// TargetLocation is the geographic targeting stored on a campaign.
type TargetLocation struct {
	City        string   `json:"city"`
	State       string   `json:"state"`
	ZipCodes    []string `json:"zip_codes"`
	RadiusMiles int      `json:"radius_miles"`
}

func (c *Campaign) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

// TargetLocation decodes the stored targeting; empty column yields zero value.
func (c *Campaign) Location() (TargetLocation, error) {
	var loc TargetLocation
	if c.TargetLocationJSON == "" {
		return loc, nil
	}
	err := json.Unmarshal([]byte(c.TargetLocationJSON), &loc)
	return loc, err
}

// SetLocation serializes and stores the geographic targeting.
func (c *Campaign) SetLocation(loc TargetLocation) error {
	raw, err := json.Marshal(loc)
	if err != nil {
		return err
	}
	c.TargetLocationJSON = string(raw)
	return nil
}

// Keywords decodes the stored keyword list.
func (c *Campaign) Keywords() []string {
	if c.KeywordsJSON == "" {
		return nil
	}
	var kws []string
	if err := json.Unmarshal([]byte(c.KeywordsJSON), &kws); err != nil {
		return nil
	}
	return kws
}

// SetKeywords serializes and stores the keyword list.
func (c *Campaign) SetKeywords(kws []string) error {
	raw, err := json.Marshal(kws)
	if err != nil {
		return err
	}
	c.KeywordsJSON = string(raw)
	return nil
}

// CanTransitionTo reports whether a status change is allowed from the
// campaign's current status.
func (c *Campaign) CanTransitionTo(status string) bool {
	switch c.Status {
	case CampaignStatusDraft:
		return status == CampaignStatusActive || status == CampaignStatusArchived
	case CampaignStatusActive:
		return status == CampaignStatusPaused || status == CampaignStatusCompleted
	case CampaignStatusPaused:
		return status == CampaignStatusActive || status == CampaignStatusCompleted || status == CampaignStatusArchived
	case CampaignStatusCompleted:
		return status == CampaignStatusArchived
	default:
		return false
	}
}

// CampaignTemplate is a preconfigured starting point for new campaigns.
type CampaignTemplate struct {
	Key         string
	Name        string
	Description string
	Type        string
	Keywords    []string
}

// CampaignTemplates are the built-in quick-setup templates shown on the
// campaign creation screen.
var CampaignTemplates = []CampaignTemplate{
	{
		Key:         "local_service",
		Name:        "Local Service Campaign",
		Description: "Target local customers searching for your services",
		Type:        CampaignTypeGoogleAds,
		Keywords:    []string{"near me", "local", "emergency", "same day"},
	},
	{
		Key:         "brand_awareness",
		Name:        "Brand Awareness Campaign",
		Description: "Increase visibility and brand recognition",
		Type:        CampaignTypeMultiPlatform,
		Keywords:    []string{"brand name", "company name"},
	},
	{
		Key:         "lead_generation",
		Name:        "Lead Generation Campaign",
		Description: "Focus on generating qualified leads",
		Type:        CampaignTypeFacebookAds,
		Keywords:    []string{"quote", "estimate", "consultation"},
	},
}

// TemplateByKey returns the template with the given key, or nil.
func TemplateByKey(key string) *CampaignTemplate {
	for i := range CampaignTemplates {
		if CampaignTemplates[i].Key == key {
			return &CampaignTemplates[i]
		}
	}
	return nil
}
