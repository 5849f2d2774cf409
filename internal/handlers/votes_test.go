package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackithq/stackit/backend/internal/models"
)

func TestCastVoteLifecycleOnAnswer(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	answererToken, _ := registerUser(t, "answerer")
	voterToken, _ := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)
	answerID := createAnswer(t, answererToken, questionID)

	// New upvote
	resp := castVote(t, voterToken, "answer", answerID, "up")
	assert.Equal(t, 1, resp.VoteCount)
	require.NotNil(t, resp.UserVote)
	assert.Equal(t, 1, *resp.UserVote)

	// Switch to downvote: net delta -2
	resp = castVote(t, voterToken, "answer", answerID, "down")
	assert.Equal(t, -1, resp.VoteCount)
	require.NotNil(t, resp.UserVote)
	assert.Equal(t, -1, *resp.UserVote)

	// Same direction again toggles the vote off
	resp = castVote(t, voterToken, "answer", answerID, "down")
	assert.Equal(t, 0, resp.VoteCount)
	assert.Nil(t, resp.UserVote)

	assert.Equal(t, recountVotes(t, "answer", answerID), cachedVoteCount(t, "answer", answerID))
}

func TestCastVoteToggleOffIsIdempotent(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	voterToken, voterID := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)

	resp := castVote(t, voterToken, "question", questionID, "up")
	assert.Equal(t, 1, resp.VoteCount)

	resp = castVote(t, voterToken, "question", questionID, "up")
	assert.Equal(t, 0, resp.VoteCount)
	assert.Nil(t, resp.UserVote)

	// The vote row is gone, not just zeroed
	var count int64
	testDB.DB().Model(&models.Vote{}).
		Where("user_id = ? AND question_id = ?", voterID, questionID).
		Count(&count)
	assert.Equal(t, int64(0), count)

	assert.Equal(t, 0, cachedVoteCount(t, "question", questionID))
}

func TestCastVoteKeepsOneRowPerUser(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	voterToken, voterID := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)

	castVote(t, voterToken, "question", questionID, "up")
	castVote(t, voterToken, "question", questionID, "down")
	castVote(t, voterToken, "question", questionID, "up")

	var votes []models.Vote
	testDB.DB().Where("user_id = ? AND question_id = ?", voterID, questionID).Find(&votes)
	require.Len(t, votes, 1)
	assert.Equal(t, 1, votes[0].Value)

	assert.Equal(t, recountVotes(t, "question", questionID), cachedVoteCount(t, "question", questionID))
}

func TestCastVoteValidation(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	voterToken, _ := registerUser(t, "voter")
	questionID := createQuestion(t, askerToken)

	// No identity
	w := doRequest(t, http.MethodPost, "/api/vote", "", gin.H{
		"item_id": questionID, "item_type": "question", "vote_type": "up",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// Malformed item type
	w = doRequest(t, http.MethodPost, "/api/vote", voterToken, gin.H{
		"item_id": questionID, "item_type": "comment", "vote_type": "up",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Malformed vote type
	w = doRequest(t, http.MethodPost, "/api/vote", voterToken, gin.H{
		"item_id": questionID, "item_type": "question", "vote_type": "sideways",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing item
	w = doRequest(t, http.MethodPost, "/api/vote", voterToken, gin.H{
		"item_id": 9999999, "item_type": "answer", "vote_type": "up",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Nothing was recorded along the way
	assert.Equal(t, 0, cachedVoteCount(t, "question", questionID))
}

func TestVoteNotificationPolicy(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	authorToken, _ := registerUser(t, "author")
	voterToken, _ := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)
	answerID := createAnswer(t, authorToken, questionID)

	notificationCount := func() int {
		w := doRequest(t, http.MethodGet, "/api/notifications", authorToken, nil)
		require.Equal(t, http.StatusOK, w.Code)
		var resp struct {
			Notifications []models.Notification `json:"notifications"`
		}
		decodeBody(t, w, &resp)
		n := 0
		for _, notification := range resp.Notifications {
			if notification.Type == models.NotificationUpvote && notification.AnswerID != nil && *notification.AnswerID == answerID {
				n++
			}
		}
		return n
	}

	// Fresh upvote notifies the answer author
	castVote(t, voterToken, "answer", answerID, "up")
	assert.Equal(t, 1, notificationCount())

	// Toggle-off is a removal, no notification even though the delta is positive
	castVote(t, voterToken, "answer", answerID, "up")
	castVote(t, voterToken, "answer", answerID, "down")
	castVote(t, voterToken, "answer", answerID, "down")
	assert.Equal(t, 1, notificationCount())

	// Voting on your own item never notifies
	castVote(t, authorToken, "answer", answerID, "up")
	assert.Equal(t, 1, notificationCount())
}

func TestCastVoteOnQuestionNotifiesWithQuestionRef(t *testing.T) {
	askerToken, askerID := registerUser(t, "asker")
	voterToken, _ := registerUser(t, "voter")

	questionID := createQuestion(t, askerToken)
	castVote(t, voterToken, "question", questionID, "up")

	var notifications []models.Notification
	testDB.DB().Where("user_id = ? AND type = ?", askerID, models.NotificationUpvote).Find(&notifications)
	require.Len(t, notifications, 1)
	require.NotNil(t, notifications[0].QuestionID)
	assert.Equal(t, questionID, *notifications[0].QuestionID)
	assert.Nil(t, notifications[0].AnswerID)
	assert.False(t, notifications[0].IsRead)
}
