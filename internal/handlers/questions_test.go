package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateQuestionValidation(t *testing.T) {
	token, _ := registerUser(t, "asker")

	longDescription := "This description is definitely longer than thirty characters."

	cases := []struct {
		name string
		body gin.H
	}{
		{"short title", gin.H{
			"title": "Too short", "description": longDescription, "tags": []string{"go"},
		}},
		{"short description", gin.H{
			"title": "A perfectly fine question title", "description": "too short", "tags": []string{"go"},
		}},
		{"no tags", gin.H{
			"title": "A perfectly fine question title", "description": longDescription, "tags": []string{},
		}},
		{"too many tags", gin.H{
			"title": "A perfectly fine question title", "description": longDescription,
			"tags": []string{"a", "b", "c", "d", "e", "f"},
		}},
		{"duplicate tags", gin.H{
			"title": "A perfectly fine question title", "description": longDescription,
			"tags": []string{"go", "go"},
		}},
		{"blank tag", gin.H{
			"title": "A perfectly fine question title", "description": longDescription,
			"tags": []string{"go", "  "},
		}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doRequest(t, http.MethodPost, "/api/questions", token, tc.body)
			assert.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
		})
	}

	// And without a token at all
	w := doRequest(t, http.MethodPost, "/api/questions", "", gin.H{
		"title": "A perfectly fine question title", "description": longDescription, "tags": []string{"go"},
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestQuestionContentIsSanitized(t *testing.T) {
	token, _ := registerUser(t, "asker")

	w := doRequest(t, http.MethodPost, "/api/questions", token, gin.H{
		"title":       "Why does my page execute scripts?",
		"description": "<p>Here is some <strong>markup</strong> padded out to length.</p><script>alert('xss')</script>",
		"tags":        []string{"html"},
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	var question struct {
		ID          int    `json:"id"`
		Description string `json:"description"`
	}
	decodeBody(t, w, &question)
	assert.NotContains(t, question.Description, "<script")
	assert.Contains(t, question.Description, "<strong>markup</strong>")
}

func TestListQuestionsFilterAndPagination(t *testing.T) {
	token, _ := registerUser(t, "asker")

	tag := fmt.Sprintf("uniquetag%d", userSeq.Add(1))
	for i := 0; i < 3; i++ {
		w := doRequest(t, http.MethodPost, "/api/questions", token, gin.H{
			"title":       fmt.Sprintf("Tagged question number %d of this run", i),
			"description": "A question description that easily clears the thirty character floor.",
			"tags":        []string{tag, "go"},
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(t, http.MethodGet, "/api/questions?tag="+tag+"&page=1&limit=2", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Questions []struct {
			Tags []string `json:"tags"`
		} `json:"questions"`
		Pagination struct {
			Page  int   `json:"page"`
			Limit int   `json:"limit"`
			Total int64 `json:"total"`
			Pages int64 `json:"pages"`
		} `json:"pagination"`
	}
	decodeBody(t, w, &resp)

	assert.Equal(t, int64(3), resp.Pagination.Total)
	assert.Equal(t, int64(2), resp.Pagination.Pages)
	require.Len(t, resp.Questions, 2)
	for _, question := range resp.Questions {
		assert.Contains(t, question.Tags, tag)
	}
}

func TestUpdateAndDeleteQuestionOwnership(t *testing.T) {
	ownerToken, _ := registerUser(t, "owner")
	strangerToken, _ := registerUser(t, "stranger")

	questionID := createQuestion(t, ownerToken)
	path := fmt.Sprintf("/api/questions/%d", questionID)

	update := gin.H{"title": "An updated but still valid title"}

	w := doRequest(t, http.MethodPut, path, strangerToken, update)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, http.MethodPut, path, ownerToken, update)
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doRequest(t, http.MethodDelete, path, strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doRequest(t, http.MethodDelete, path, ownerToken, nil)
	assert.Equal(t, http.StatusOK, w.Code)

	w = doRequest(t, http.MethodGet, path, "", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestGetQuestionIncludesCallerVote(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	voterToken, _ := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)
	castVote(t, voterToken, "question", questionID, "up")

	path := fmt.Sprintf("/api/questions/%d", questionID)

	var resp struct {
		Question struct {
			VoteCount int  `json:"vote_count"`
			UserVote  *int `json:"user_vote"`
		} `json:"question"`
	}

	// Authenticated caller sees their own vote
	w := doRequest(t, http.MethodGet, path, voterToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.Question.VoteCount)
	require.NotNil(t, resp.Question.UserVote)
	assert.Equal(t, 1, *resp.Question.UserVote)

	// Anonymous caller sees the count but no personal vote
	w = doRequest(t, http.MethodGet, path, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	resp.Question.UserVote = nil
	decodeBody(t, w, &resp)
	assert.Equal(t, 1, resp.Question.VoteCount)
	assert.Nil(t, resp.Question.UserVote)
}
