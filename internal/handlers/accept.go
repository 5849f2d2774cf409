package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/models"
)

// SetAcceptance marks or unmarks an answer as the accepted one for its
// question. Only the question author may call it. Accepting clears
// is_accepted on every sibling answer first, so at most one answer per
// question stays accepted even if earlier state had drifted.
func (h *AnswerHandler) SetAcceptance(c *gin.Context) {
	callerID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		AnswerID int   `json:"answer_id" binding:"required"`
		Accept   *bool `json:"accept" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid accept data"})
		return
	}

	var caller models.User
	if err := h.db.First(&caller, callerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, input.AnswerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, answer.QuestionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.AuthorID != callerID {
		c.JSON(http.StatusForbidden, gin.H{"error": "Only the question author can accept answers"})
		return
	}

	var acceptedAt *time.Time

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if !*input.Accept {
			return tx.Model(&answer).Updates(map[string]interface{}{
				"is_accepted": false,
				"accepted_at": nil,
			}).Error
		}

		// Unaccept every answer under this question, not just a tracked
		// previous one - self-heals any state where more than one answer
		// ended up accepted
		err := tx.Model(&models.Answer{}).
			Where("question_id = ?", answer.QuestionID).
			Updates(map[string]interface{}{
				"is_accepted": false,
				"accepted_at": nil,
			}).Error
		if err != nil {
			return err
		}

		now := time.Now().UTC()
		if err := tx.Model(&answer).Updates(map[string]interface{}{
			"is_accepted": true,
			"accepted_at": now,
		}).Error; err != nil {
			return err
		}
		acceptedAt = &now

		if answer.AuthorID != callerID {
			return h.notifier.Push(tx, &models.Notification{
				UserID:     answer.AuthorID,
				Type:       models.NotificationAccepted,
				Content:    fmt.Sprintf("%s accepted your answer", caller.Username),
				QuestionID: &question.ID,
				AnswerID:   &answer.ID,
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to accept answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"is_accepted": *input.Accept,
		"accepted_at": acceptedAt,
	})
}
