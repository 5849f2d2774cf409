package models

import "time"

const (
	NotificationAnswer   = "answer"
	NotificationComment  = "comment"
	NotificationMention  = "mention"
	NotificationUpvote   = "upvote"
	NotificationDownvote = "downvote"
	NotificationAccepted = "accepted"
)

// Notification model - appended by vote/accept/answer flows, never
// mutated by them. Reading and marking read belongs to the owner.
type Notification struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;index" json:"user_id"` // recipient
	Type       string    `gorm:"not null" json:"type"`
	Content    string    `gorm:"not null" json:"content"`
	IsRead     bool      `gorm:"default:false" json:"is_read"`
	QuestionID *int      `json:"question_id,omitempty"`
	AnswerID   *int      `json:"answer_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}
