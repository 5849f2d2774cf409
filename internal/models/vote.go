package models

import "time"

// Vote model - one row per user per question or answer.
// Uniqueness is enforced by partial unique indexes on
// (user_id, question_id) and (user_id, answer_id), see database.Open.
type Vote struct {
	ID         int       `gorm:"primaryKey" json:"id"`
	UserID     int       `gorm:"not null;index" json:"user_id"`
	QuestionID *int      `gorm:"index" json:"question_id,omitempty"` // set for question votes
	AnswerID   *int      `gorm:"index" json:"answer_id,omitempty"`   // set for answer votes
	Value      int       `gorm:"not null" json:"value"`              // +1 or -1
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}
