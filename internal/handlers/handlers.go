package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/microcosm-cc/bluemonday"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/notify"
)

// Handler combines all handler types
type Handler struct {
	Auth         *AuthHandler
	Question     *QuestionHandler
	Answer       *AnswerHandler
	Vote         *VoteHandler
	User         *UserHandler
	Notification *NotificationHandler
}

// NewHandler creates a unified handler with all sub-handlers
func NewHandler(db *gorm.DB, notifier *notify.Notifier) *Handler {
	return &Handler{
		Auth:         NewAuthHandler(db),
		Question:     NewQuestionHandler(db),
		Answer:       NewAnswerHandler(db, notifier),
		Vote:         NewVoteHandler(db, notifier),
		User:         NewUserHandler(db),
		Notification: NewNotificationHandler(db),
	}
}

// sanitizer strips dangerous markup from stored rich-text content.
// Question descriptions and answer bodies come from a rich-text editor
// and are rendered as HTML, so they are cleaned before persistence.
var sanitizer = bluemonday.UGCPolicy()

func extractUserID(c *gin.Context) (int, bool) {
	raw, exists := c.Get("user_id")
	if !exists {
		return 0, false
	}
	switch v := raw.(type) {
	case int:
		return v, true
	case uint:
		return int(v), true
	case float64:
		return int(v), true
	default:
		return 0, false
	}
}
