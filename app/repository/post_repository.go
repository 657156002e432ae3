package repository

import (
	"github.com/leadcallpro/LeadCallPro/app/models"
	"gorm.io/gorm"
)

// postRepository implements the PostRepository interface
type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new blog post repository instance
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// Create creates a new blog post in the database
func (r *postRepository) Create(post *models.Post) error {
	return r.db.Create(post).Error
}

// GetByID retrieves a post by its ID
func (r *postRepository) GetByID(id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.First(&post, id).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetBySlug retrieves a published post by its slug
func (r *postRepository) GetBySlug(slug string) (*models.Post, error) {
	var post models.Post
	err := r.db.Where("slug = ? AND published = ?", slug, true).First(&post).Error
	if err != nil {
		return nil, err
	}
	return &post, nil
}

// GetPublished retrieves a paginated list of published posts
func (r *postRepository) GetPublished(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("published = ?", true).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetPublishedByCategory retrieves published posts in a category
func (r *postRepository) GetPublishedByCategory(category string, offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Where("published = ? AND category = ?", true, category).
		Offset(offset).Limit(limit).
		Order("created_at DESC").
		Find(&posts).Error
	return posts, err
}

// GetAll retrieves all posts including drafts
func (r *postRepository) GetAll(offset, limit int) ([]models.Post, error) {
	var posts []models.Post
	err := r.db.Offset(offset).Limit(limit).Order("created_at DESC").Find(&posts).Error
	return posts, err
}

// Update updates an existing post in the database
func (r *postRepository) Update(post *models.Post) error {
	return r.db.Save(post).Error
}

// Delete soft deletes a post by its ID
func (r *postRepository) Delete(id uint) error {
	return r.db.Delete(&models.Post{}, id).Error
}

// Count returns the total number of posts
func (r *postRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Count(&count).Error
	return count, err
}

// CountPublished returns the number of published posts
func (r *postRepository) CountPublished() (int64, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("published = ?", true).Count(&count).Error
	return count, err
}

// SlugExists checks if a slug already exists
func (r *postRepository) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// SlugExistsExceptID checks if a slug exists excluding a specific ID
func (r *postRepository) SlugExistsExceptID(slug string, id uint) (bool, error) {
	var count int64
	err := r.db.Model(&models.Post{}).Where("slug = ? AND id != ?", slug, id).Count(&count).Error
	return count > 0, err
}
