package models

import "time"

type Answer struct {
	ID         int        `gorm:"primaryKey" json:"id"`
	QuestionID int        `gorm:"not null;index" json:"question_id"`
	Content    string     `gorm:"not null" json:"content"`
	AuthorID   int        `json:"author_id"`
	User       User       `gorm:"foreignKey:AuthorID" json:"user"`
	VoteCount  int        `gorm:"default:0" json:"vote_count"`
	IsAccepted bool       `gorm:"default:false" json:"is_accepted"`
	AcceptedAt *time.Time `json:"accepted_at"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

type CreateAnswerRequest struct {
	Content string `json:"content"`
}
