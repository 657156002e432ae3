package repository

import (
	"github.com/leadcallpro/LeadCallPro/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	GetByProviderAccount(provider, providerUserID string) (*models.User, error)
	LinkProviderAccount(account *models.ProviderAccount) error
	Update(user *models.User) error
	Delete(id uint) error
	List(offset, limit int) ([]models.User, error)
	Count() (int64, error)
	Search(query string) ([]models.User, error)
}

// BusinessRepository defines the interface for business profile operations
type BusinessRepository interface {
	Create(business *models.Business) error
	GetByID(id uint) (*models.Business, error)
	GetByUUID(uuid string) (*models.Business, error)
	GetByUserID(userID uint) ([]models.Business, error)
	Update(business *models.Business) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
}

// CampaignRepository defines the interface for campaign operations
type CampaignRepository interface {
	Create(campaign *models.Campaign) error
	GetByID(id uint) (*models.Campaign, error)
	GetByUUID(uuid string) (*models.Campaign, error)
	GetByUserID(userID uint, offset, limit int) ([]models.Campaign, error)
	GetByBusinessID(businessID uint) ([]models.Campaign, error)
	Update(campaign *models.Campaign) error
	Delete(id uint) error
	CountByUserID(userID uint) (int64, error)
	CountActiveByUserID(userID uint) (int64, error)
}

// PostRepository defines the interface for blog post operations
type PostRepository interface {
	Create(post *models.Post) error
	GetByID(id uint) (*models.Post, error)
	GetBySlug(slug string) (*models.Post, error)
	GetPublished(offset, limit int) ([]models.Post, error)
	GetPublishedByCategory(category string, offset, limit int) ([]models.Post, error)
	GetAll(offset, limit int) ([]models.Post, error)
	Update(post *models.Post) error
	Delete(id uint) error
	Count() (int64, error)
	CountPublished() (int64, error)
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// PageRepository defines the interface for static page operations
type PageRepository interface {
	Create(page *models.Page) error
	GetByID(id uint) (*models.Page, error)
	GetBySlug(slug string) (*models.Page, error)
	GetAll() ([]models.Page, error)
	GetActive() ([]models.Page, error)
	Update(page *models.Page) error
	Delete(id uint) error
	SlugExists(slug string) (bool, error)
	SlugExistsExceptID(slug string, id uint) (bool, error)
}

// Repositories bundles all repositories for dependency injection
type Repositories struct {
	User     UserRepository
	Business BusinessRepository
	Campaign CampaignRepository
	Post     PostRepository
	Page     PageRepository
}
