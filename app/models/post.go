package models

import (
	"time"

	"gorm.io/gorm"
)

// Post represents a blog article shown on the marketing site.
type Post struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	Title     string         `gorm:"type:varchar(255)" json:"title" validate:"required,min=3,max=255"`
	Excerpt   string         `gorm:"type:varchar(500)" json:"excerpt" validate:"max=500"`
	Content   string         `gorm:"type:longtext" json:"content" validate:"required"`
	Slug      string         `gorm:"uniqueIndex;type:varchar(255)" json:"slug" validate:"required,min=3,max=255"`
	Category  string         `gorm:"type:varchar(100);index" json:"category"`
	Published bool           `gorm:"type:tinyint(1);default:0" json:"published"`
	ViewCount int64          `gorm:"default:0" json:"view_count"`
	UserID    uint           `gorm:"index" json:"user_id"`
	User      User           `gorm:"foreignKey:UserID" json:"user"`
	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// TableName specifies the table name for the Post model
func (Post) TableName() string {
	return "posts"
}
