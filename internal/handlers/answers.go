package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/models"
	"github.com/stackithq/stackit/backend/internal/notify"
)

type AnswerHandler struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewAnswerHandler(db *gorm.DB, notifier *notify.Notifier) *AnswerHandler {
	return &AnswerHandler{db: db, notifier: notifier}
}

// CreateAnswer posts a new answer under a question
func (h *AnswerHandler) CreateAnswer(c *gin.Context) {
	questionID := c.Param("id")

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if len(input.Content) < 30 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer must be at least 30 characters"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var author models.User
	if err := h.db.First(&author, authorID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	answer := models.Answer{
		QuestionID: question.ID,
		Content:    sanitizer.Sanitize(input.Content),
		AuthorID:   authorID,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&answer).Error; err != nil {
			return err
		}

		// Tell the question author someone answered
		if question.AuthorID != authorID {
			return h.notifier.Push(tx, &models.Notification{
				UserID:     question.AuthorID,
				Type:       models.NotificationAnswer,
				Content:    fmt.Sprintf("%s answered your question", author.Username),
				QuestionID: &question.ID,
				AnswerID:   &answer.ID,
			})
		}
		return nil
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create answer"})
		return
	}

	h.db.Preload("User").First(&answer, answer.ID)
	c.JSON(http.StatusCreated, answer)
}

// UpdateAnswer updates an answer (owner only)
func (h *AnswerHandler) UpdateAnswer(c *gin.Context) {
	answerID := c.Param("id")

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Content string `json:"content" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Content is required"})
		return
	}

	if len(input.Content) < 30 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Answer must be at least 30 characters"})
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, answerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	if answer.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own answers"})
		return
	}

	answer.Content = sanitizer.Sanitize(input.Content)
	if err := h.db.Save(&answer).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update answer"})
		return
	}

	h.db.Preload("User").First(&answer, answer.ID)
	c.JSON(http.StatusOK, answer)
}

// DeleteAnswer deletes an answer and its votes (owner only)
func (h *AnswerHandler) DeleteAnswer(c *gin.Context) {
	answerID := c.Param("id")

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var answer models.Answer
	if err := h.db.First(&answer, answerID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Answer not found"})
		return
	}

	if answer.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own answers"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		// Clean up votes on this answer too
		if err := tx.Where("answer_id = ?", answer.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		return tx.Delete(&answer).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete answer"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Answer deleted successfully"})
}
