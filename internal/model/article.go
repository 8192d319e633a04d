package model

import (
	"time"

	"gorm.io/gorm"
)

type Article struct {
	ID          uint           `gorm:"primarykey" json:"id"`
	Slug        string         `json:"slug" gorm:"size:160;not null;uniqueIndex"`
	Title       string         `json:"title" gorm:"not null"`
	Excerpt     string         `json:"excerpt,omitempty" gorm:"type:text"`
	Body        string         `json:"body" gorm:"type:text;not null"`
	Published   bool           `json:"published" gorm:"not null;default:false;index"`
	PublishedAt *time.Time     `json:"published_at,omitempty"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"-"`
}
