package repository

import (
	"github.com/leadcallpro/LeadCallPro/app/models"
	"gorm.io/gorm"
)

// businessRepository implements the BusinessRepository interface
type businessRepository struct {
	db *gorm.DB
}

// NewBusinessRepository creates a new business repository instance
func NewBusinessRepository(db *gorm.DB) BusinessRepository {
	return &businessRepository{db: db}
}

// Create creates a new business profile in the database
func (r *businessRepository) Create(business *models.Business) error {
	return r.db.Create(business).Error
}

// GetByID retrieves a business by its ID
func (r *businessRepository) GetByID(id uint) (*models.Business, error) {
	var business models.Business
	err := r.db.First(&business, id).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetByUUID retrieves a business by its public UUID
func (r *businessRepository) GetByUUID(uuid string) (*models.Business, error) {
	var business models.Business
	err := r.db.Where("uuid = ?", uuid).First(&business).Error
	if err != nil {
		return nil, err
	}
	return &business, nil
}

// GetByUserID retrieves all businesses owned by a user
func (r *businessRepository) GetByUserID(userID uint) ([]models.Business, error) {
	var businesses []models.Business
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&businesses).Error
	return businesses, err
}

// Update updates an existing business in the database
func (r *businessRepository) Update(business *models.Business) error {
	return r.db.Save(business).Error
}

// Delete soft deletes a business by its ID
func (r *businessRepository) Delete(id uint) error {
	return r.db.Delete(&models.Business{}, id).Error
}

// CountByUserID returns the number of businesses owned by a user
func (r *businessRepository) CountByUserID(userID uint) (int64, error) {
	var count int64
	err := r.db.Model(&models.Business{}).Where("user_id = ?", userID).Count(&count).Error
	return count, err
}
