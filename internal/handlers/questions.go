package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/stackithq/stackit/backend/internal/models"
)

type QuestionHandler struct {
	db *gorm.DB
}

func NewQuestionHandler(db *gorm.DB) *QuestionHandler {
	return &QuestionHandler{db: db}
}

// validateTags trims the incoming tags and enforces 1-5 unique,
// non-empty entries per question.
func validateTags(tags []string) ([]string, string) {
	if len(tags) == 0 || len(tags) > 5 {
		return nil, "Must have 1-5 tags"
	}

	seen := make(map[string]bool, len(tags))
	cleaned := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			return nil, "Tags cannot be empty"
		}
		if seen[tag] {
			return nil, "Tags must be unique"
		}
		seen[tag] = true
		cleaned = append(cleaned, tag)
	}
	return cleaned, ""
}

func (h *QuestionHandler) answerCount(questionID int) int {
	var count int64
	h.db.Model(&models.Answer{}).Where("question_id = ?", questionID).Count(&count)
	return int(count)
}

// CreateQuestion creates a new question (PROTECTED - requires authentication)
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Tags        []string `json:"tags" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title, description, and tags are required"})
		return
	}

	if len(input.Title) < 10 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be at least 10 characters"})
		return
	}
	if len(input.Description) < 30 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Description must be at least 30 characters"})
		return
	}

	tags, problem := validateTags(input.Tags)
	if problem != "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": problem})
		return
	}

	question := models.Question{
		Title:       strings.TrimSpace(input.Title),
		Description: sanitizer.Sanitize(input.Description),
		Tags:        pq.StringArray(tags),
		AuthorID:    authorID,
	}

	if err := h.db.Create(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create question"})
		return
	}

	h.db.Preload("User").First(&question, question.ID)
	c.JSON(http.StatusCreated, question)
}

// GetQuestions returns questions with pagination, tag filter, search, and sort
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "10"))
	if err != nil || limit < 1 || limit > 50 {
		limit = 10
	}

	tag := c.Query("tag")
	search := c.Query("search")
	filtered := func() *gorm.DB {
		query := h.db.Model(&models.Question{})
		if tag != "" {
			query = query.Where("? = ANY(tags)", tag)
		}
		if search != "" {
			pattern := "%" + search + "%"
			query = query.Where("title ILIKE ? OR description ILIKE ?", pattern, pattern)
		}
		return query
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	query := filtered()
	switch c.DefaultQuery("sort", "newest") {
	case "oldest":
		query = query.Order("created_at asc")
	case "votes":
		query = query.Order("vote_count desc, created_at desc")
	case "answers":
		query = query.Order("(SELECT COUNT(*) FROM answers WHERE answers.question_id = questions.id) desc, created_at desc")
	default: // newest
		query = query.Order("created_at desc")
	}

	var questions []models.Question
	if err := query.Preload("User").Offset((page - 1) * limit).Limit(limit).Find(&questions).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch questions"})
		return
	}

	var responses []gin.H
	for _, question := range questions {
		responses = append(responses, gin.H{
			"id":           question.ID,
			"title":        question.Title,
			"description":  question.Description,
			"tags":         question.Tags,
			"author_id":    question.AuthorID,
			"user":         question.User,
			"vote_count":   question.VoteCount,
			"answer_count": h.answerCount(question.ID),
			"created_at":   question.CreatedAt,
			"updated_at":   question.UpdatedAt,
		})
	}

	// If no questions, return empty array not null
	if responses == nil {
		responses = []gin.H{}
	}

	pages := (total + int64(limit) - 1) / int64(limit)
	c.JSON(http.StatusOK, gin.H{
		"questions": responses,
		"pagination": gin.H{
			"page":  page,
			"limit": limit,
			"total": total,
			"pages": pages,
		},
	})
}

// GetQuestion returns a single question with its answers, accepted
// answer first. When the caller is authenticated their own vote on the
// question and each answer is included.
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	questionID := c.Param("id")

	var question models.Question
	if err := h.db.Preload("User").First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	var answers []models.Answer
	if err := h.db.Where("question_id = ?", question.ID).
		Preload("User").
		Order("is_accepted desc, vote_count desc, created_at desc").
		Find(&answers).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch answers"})
		return
	}

	var questionVote *int
	answerVotes := make(map[int]int)
	if userID, authed := extractUserID(c); authed {
		var votes []models.Vote
		h.db.Where("user_id = ? AND question_id = ? AND answer_id IS NULL", userID, question.ID).
			Or("user_id = ? AND answer_id IN (?)", userID,
				h.db.Model(&models.Answer{}).Select("id").Where("question_id = ?", question.ID)).
			Find(&votes)
		for _, vote := range votes {
			if vote.AnswerID != nil {
				answerVotes[*vote.AnswerID] = vote.Value
			} else {
				value := vote.Value
				questionVote = &value
			}
		}
	}

	answerResponses := []gin.H{}
	for _, answer := range answers {
		var userVote *int
		if value, voted := answerVotes[answer.ID]; voted {
			userVote = &value
		}
		answerResponses = append(answerResponses, gin.H{
			"id":          answer.ID,
			"question_id": answer.QuestionID,
			"content":     answer.Content,
			"author_id":   answer.AuthorID,
			"user":        answer.User,
			"vote_count":  answer.VoteCount,
			"is_accepted": answer.IsAccepted,
			"accepted_at": answer.AcceptedAt,
			"user_vote":   userVote,
			"created_at":  answer.CreatedAt,
			"updated_at":  answer.UpdatedAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{
		"question": gin.H{
			"id":          question.ID,
			"title":       question.Title,
			"description": question.Description,
			"tags":        question.Tags,
			"author_id":   question.AuthorID,
			"user":        question.User,
			"vote_count":  question.VoteCount,
			"user_vote":   questionVote,
			"created_at":  question.CreatedAt,
			"updated_at":  question.UpdatedAt,
		},
		"answers": answerResponses,
	})
}

// UpdateQuestion updates a question (PROTECTED - requires ownership)
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	questionID := c.Param("id")

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var input struct {
		Title       string   `json:"title"`
		Description string   `json:"description"`
		Tags        []string `json:"tags"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only edit your own questions"})
		return
	}

	if input.Title != "" {
		if len(input.Title) < 10 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Title must be at least 10 characters"})
			return
		}
		question.Title = strings.TrimSpace(input.Title)
	}
	if input.Description != "" {
		if len(input.Description) < 30 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Description must be at least 30 characters"})
			return
		}
		question.Description = sanitizer.Sanitize(input.Description)
	}
	if input.Tags != nil {
		tags, problem := validateTags(input.Tags)
		if problem != "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": problem})
			return
		}
		question.Tags = pq.StringArray(tags)
	}

	if err := h.db.Save(&question).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update question"})
		return
	}

	h.db.Preload("User").First(&question, question.ID)
	c.JSON(http.StatusOK, question)
}

// DeleteQuestion deletes a question with its answers, votes, and
// related notifications (PROTECTED - requires ownership)
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	questionID := c.Param("id")

	authorID, ok := extractUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var question models.Question
	if err := h.db.First(&question, questionID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Question not found"})
		return
	}

	if question.AuthorID != authorID {
		c.JSON(http.StatusForbidden, gin.H{"error": "You can only delete your own questions"})
		return
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		answerIDs := tx.Model(&models.Answer{}).Select("id").Where("question_id = ?", question.ID)
		if err := tx.Where("answer_id IN (?)", answerIDs).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Vote{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Notification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("question_id = ?", question.ID).Delete(&models.Answer{}).Error; err != nil {
			return err
		}
		return tx.Delete(&question).Error
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete question"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}
