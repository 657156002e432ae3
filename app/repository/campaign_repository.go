package repository

import (
	"github.com/leadcallpro/LeadCallPro/app/models"
	"gorm.io/gorm"
)

// campaignRepository implements the CampaignRepository interface
type campaignRepository struct {
	db *gorm.DB
}

// NewCampaignRepository creates a new campaign repository instance
func NewCampaignRepository(db *gorm.DB) CampaignRepository {
	return &campaignRepository{db: db}
}

// Create creates a new campaign in the database
func (r *campaignRepository) Create(campaign *models.Campaign) error {
	return r.db.Create(campaign).Error
}

// GetByID retrieves a campaign by its ID
func (r *campaignRepository) GetByID(id uint) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.First(&campaign, id).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetByUUID retrieves a campaign by its public UUID
func (r *campaignRepository) GetByUUID(uuid string) (*models.Campaign, error) {
	var campaign models.Campaign
	err := r.db.Where("uuid = ?", uuid).First(&campaign).Error
	if err != nil {
		return nil, err
	}
	return &campaign, nil
}

// GetByUserID retrieves a paginated list of a user's campaigns
func (r *campaignRepository) GetByUserID(userID uint, offset, limit int) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.Where("user_id = ?", userID).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&campaigns).Error
	return campaigns, err
}

// GetByBusinessID retrieves all campaigns attached to a business
func (r *campaignRepository) GetByBusinessID(businessID uint) ([]models.Campaign, error) {
	var campaigns []models.Campaign
	err := r.db.Where("business_id = ?", businessID).Order("created_at DESC").Find(&campaigns).Error
	return campaigns, err
}

// Update updates an existing campaign in the database
func (r *campaignRepository) Update(campaign *models.Campaign) error {
	return r.db.Save(campaign).Error
}

// Delete soft deletes a campaign by its ID
func (r *campaignRepository) Delete(id uint) error {
	return r.db.Delete(&models.Campaign{}, id).Error
}

// CountByUserID returns the number of campaigns owned by a user
func (r *campaignRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}

// CountActiveByUserID returns the number of running campaigns owned by a user
func (r *campaignRepository) CountActiveByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Campaign{}).
		Where("user_id = ? AND status = ?", userID, models.CampaignStatusActive).
		Count(&count).Error
	return count, err
}
