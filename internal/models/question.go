package models

import (
	"time"

	"github.com/lib/pq"
)

type Question struct {
	ID          int            `gorm:"primaryKey" json:"id"`
	Title       string         `gorm:"not null" json:"title"`
	Description string         `gorm:"not null" json:"description"`
	Tags        pq.StringArray `gorm:"type:text[]" json:"tags"`
	AuthorID    int            `json:"author_id"`
	User        User           `gorm:"foreignKey:AuthorID" json:"user"`
	VoteCount   int            `gorm:"default:0" json:"vote_count"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
}

type CreateQuestionRequest struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
}
