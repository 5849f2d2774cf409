package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stackithq/stackit/backend/internal/models"
)

type notificationsResponse struct {
	Notifications []models.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

func getNotifications(t *testing.T, token string) notificationsResponse {
	t.Helper()
	w := doRequest(t, http.MethodGet, "/api/notifications", token, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var resp notificationsResponse
	decodeBody(t, w, &resp)
	return resp
}

func TestAnswerCreationNotifiesQuestionAuthor(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	answererToken, _ := registerUser(t, "answerer")

	questionID := createQuestion(t, askerToken)
	answerID := createAnswer(t, answererToken, questionID)

	resp := getNotifications(t, askerToken)
	require.Len(t, resp.Notifications, 1)
	assert.Equal(t, models.NotificationAnswer, resp.Notifications[0].Type)
	require.NotNil(t, resp.Notifications[0].AnswerID)
	assert.Equal(t, answerID, *resp.Notifications[0].AnswerID)
	assert.Equal(t, int64(1), resp.UnreadCount)

	// Answering your own question stays silent
	ownAnswerQuestion := createQuestion(t, answererToken)
	createAnswer(t, answererToken, ownAnswerQuestion)
	assert.Equal(t, int64(0), getNotifications(t, answererToken).UnreadCount)
}

func TestMarkNotificationsRead(t *testing.T) {
	askerToken, _ := registerUser(t, "asker")
	answererToken, _ := registerUser(t, "answerer")
	strangerToken, _ := registerUser(t, "stranger")

	questionID := createQuestion(t, askerToken)
	createAnswer(t, answererToken, questionID)
	createAnswer(t, answererToken, questionID)

	resp := getNotifications(t, askerToken)
	require.Len(t, resp.Notifications, 2)
	require.Equal(t, int64(2), resp.UnreadCount)

	// Mark a single one
	single := resp.Notifications[0]
	w := doRequest(t, http.MethodPut, fmt.Sprintf("/api/notifications/read/%d", single.ID), askerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), getNotifications(t, askerToken).UnreadCount)

	// Someone else can't touch it
	w = doRequest(t, http.MethodPut, fmt.Sprintf("/api/notifications/read/%d", single.ID), strangerToken, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// Mark the rest
	w = doRequest(t, http.MethodPut, "/api/notifications/read", askerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(0), getNotifications(t, askerToken).UnreadCount)

	// Unknown notification id
	w = doRequest(t, http.MethodPut, "/api/notifications/read/9999999", askerToken, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
