package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/models"
	"github.com/stackithq/stackit/backend/internal/notify"
)

type VoteHandler struct {
	db       *gorm.DB
	notifier *notify.Notifier
}

func NewVoteHandler(db *gorm.DB, notifier *notify.Notifier) *VoteHandler {
	return &VoteHandler{db: db, notifier: notifier}
}

// CastVote records, switches, or removes the caller's vote on a question
// or answer: same direction twice toggles the vote off, the opposite
// direction switches it, otherwise a new vote is created. The cached
// vote_count moves by the net delta in the same transaction.
func (h *VoteHandler) CastVote(c *gin.Context) {
	voterID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		ItemID   int    `json:"item_id" binding:"required"`
		ItemType string `json:"item_type" binding:"required,oneof=question answer"`
		VoteType string `json:"vote_type" binding:"required,oneof=up down"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid vote data"})
		return
	}

	var voter models.User
	if err := h.db.First(&voter, voterID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		return
	}

	value := 1
	if input.VoteType == "down" {
		value = -1
	}

	var (
		voteCount int
		userVote  *int
	)

	err := h.db.Transaction(func(tx *gorm.DB) error {
		var (
			authorID   int
			questionID *int
			answerID   *int
		)

		// Load the item being voted on
		if input.ItemType == "question" {
			var question models.Question
			if err := tx.First(&question, input.ItemID).Error; err != nil {
				return err
			}
			authorID = question.AuthorID
			questionID = &question.ID
			voteCount = question.VoteCount
		} else {
			var answer models.Answer
			if err := tx.First(&answer, input.ItemID).Error; err != nil {
				return err
			}
			authorID = answer.AuthorID
			questionID = &answer.QuestionID
			answerID = &answer.ID
			voteCount = answer.VoteCount
		}

		voteQuery := tx.Where("user_id = ?", voterID)
		if input.ItemType == "question" {
			voteQuery = voteQuery.Where("question_id = ?", input.ItemID)
		} else {
			voteQuery = voteQuery.Where("answer_id = ?", input.ItemID)
		}

		var existing models.Vote
		findErr := voteQuery.First(&existing).Error

		var delta int
		removed := false

		switch {
		case findErr == nil && existing.Value == value:
			// Same vote again - toggle it off
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
			delta = -value
			removed = true

		case findErr == nil:
			// Opposite vote - switch it and refresh the timestamp
			existing.Value = value
			existing.CreatedAt = time.Now().UTC()
			if err := tx.Save(&existing).Error; err != nil {
				return err
			}
			delta = 2 * value
			userVote = &value

		case errors.Is(findErr, gorm.ErrRecordNotFound):
			vote := models.Vote{UserID: voterID, Value: value}
			if input.ItemType == "question" {
				vote.QuestionID = questionID
			} else {
				vote.AnswerID = answerID
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
			delta = value
			userVote = &value

		default:
			return findErr
		}

		// Keep the cached count consistent with the vote rows
		target := tx.Model(&models.Question{}).Where("id = ?", input.ItemID)
		if input.ItemType == "answer" {
			target = tx.Model(&models.Answer{}).Where("id = ?", input.ItemID)
		}
		if err := target.UpdateColumn("vote_count", gorm.Expr("vote_count + ?", delta)).Error; err != nil {
			return err
		}
		voteCount += delta

		// Notify the author only on a net-positive delta that is not a
		// removal, and never about their own vote
		if delta > 0 && !removed && authorID != voterID {
			notificationType := models.NotificationUpvote
			if input.VoteType == "down" {
				notificationType = models.NotificationDownvote
			}
			return h.notifier.Push(tx, &models.Notification{
				UserID:     authorID,
				Type:       notificationType,
				Content:    fmt.Sprintf("%s %svoted your %s", voter.Username, input.VoteType, input.ItemType),
				QuestionID: questionID,
				AnswerID:   answerID,
			})
		}

		return nil
	})

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			message := "Question not found"
			if input.ItemType == "answer" {
				message = "Answer not found"
			}
			c.JSON(http.StatusNotFound, gin.H{"error": message})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to vote"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"vote_count": voteCount,
		"user_vote":  userVote,
	})
}
