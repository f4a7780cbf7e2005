package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homeroom/config"
	"homeroom/core"
	"homeroom/middleware"
	"homeroom/store/memory"
)

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()

	config.Load()
	gin.SetMode(gin.TestMode)

	stores := memory.New().Stores()
	identitySvc := core.NewIdentityService(stores, nil)
	friendSvc := core.NewFriendService(stores, core.NopNotifier{})
	groupSvc := core.NewGroupService(stores)
	messageSvc := core.NewMessageService(stores, core.NopNotifier{})
	indexSvc := core.NewIndexService(stores)
	taskSvc := core.NewTaskService(stores)
	h := New(identitySvc, friendSvc, groupSvc, messageSvc, indexSvc, taskSvc)

	r := gin.New()
	auth := r.Group("/api/auth")
	{
		auth.POST("/register", h.Register)
		auth.POST("/login", h.Login)
	}
	friends := r.Group("/api/friends")
	friends.Use(middleware.AuthMiddleware())
	{
		friends.GET("", h.GetFriends)
		friends.GET("/requests", h.GetFriendRequests)
		friends.POST("/request", h.SendFriendRequest)
		friends.POST("/requests/:id/respond", h.RespondToRequest)
	}
	messages := r.Group("/api/messages")
	messages.Use(middleware.AuthMiddleware())
	{
		messages.POST("", h.SendMessage)
		messages.GET("/direct/:user_id", h.GetDirectMessages)
	}
	conversations := r.Group("/api/conversations")
	conversations.Use(middleware.AuthMiddleware())
	{
		conversations.GET("", h.GetConversations)
		conversations.GET("/unread", h.GetUnreadCounts)
	}
	return r
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}

// registerUser signs a user up and returns their id and bearer token.
func registerUser(t *testing.T, r *gin.Engine, handle string) (id, token string) {
	t.Helper()

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"handle": handle, "password": "s3cret1", "display_name": handle,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := decode(t, w)["data"].(map[string]interface{})
	user := data["user"].(map[string]interface{})
	return user["id"].(string), data["token"].(string)
}

func TestAuthFlow(t *testing.T) {
	r := newTestRouter(t)

	_, token := registerUser(t, r, "alice")
	assert.NotEmpty(t, token)

	w := doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"handle": "alice", "password": "another1",
	})
	assert.Equal(t, http.StatusConflict, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"handle": "alice", "password": "s3cret1",
	})
	assert.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/auth/login", "", gin.H{
		"handle": "alice", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// short password fails binding
	w = doJSON(t, r, http.MethodPost, "/api/auth/register", "", gin.H{
		"handle": "bob", "password": "x",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestFriendRequestEndpoints(t *testing.T) {
	r := newTestRouter(t)

	aliceID, aliceToken := registerUser(t, r, "alice")
	bobID, bobToken := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/friends/request", "", gin.H{"user_id": bobID})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/friends/request", aliceToken, gin.H{"user_id": bobID})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	pairID := decode(t, w)["data"].(map[string]interface{})["id"].(string)

	// duplicate surfaces the existing record's state in the body
	w = doJSON(t, r, http.MethodPost, "/api/friends/request", aliceToken, gin.H{"user_id": bobID})
	assert.Equal(t, http.StatusConflict, w.Code)
	body := decode(t, w)
	assert.Equal(t, "pending", body["status"])
	assert.Equal(t, aliceID, body["initiated_by"])

	w = doJSON(t, r, http.MethodGet, "/api/friends/requests", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	// the initiator cannot accept their own request
	respond := fmt.Sprintf("/api/friends/requests/%s/respond", pairID)
	w = doJSON(t, r, http.MethodPost, respond, aliceToken, gin.H{"decision": "accept"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPost, respond, bobToken, gin.H{"decision": "accept"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	for _, token := range []string{aliceToken, bobToken} {
		w = doJSON(t, r, http.MethodGet, "/api/friends", token, nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Len(t, decode(t, w)["data"], 1)
	}
}

func TestMessageAndConversationEndpoints(t *testing.T) {
	r := newTestRouter(t)

	aliceID, aliceToken := registerUser(t, r, "alice")
	bobID, bobToken := registerUser(t, r, "bob")

	w := doJSON(t, r, http.MethodPost, "/api/messages", aliceToken, gin.H{
		"kind": "direct", "target_id": bobID, "content": "hello",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodPost, "/api/messages", aliceToken, gin.H{
		"kind": "direct", "target_id": "ghost", "content": "hello?",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = doJSON(t, r, http.MethodGet, "/api/messages/direct/"+aliceID, bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["data"], 1)

	w = doJSON(t, r, http.MethodGet, "/api/conversations", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	rows := decode(t, w)["data"].([]interface{})
	require.Len(t, rows, 1)
	row := rows[0].(map[string]interface{})
	assert.Equal(t, aliceID, row["conversation_id"])
	assert.Equal(t, true, row["unread"])

	w = doJSON(t, r, http.MethodGet, "/api/conversations/unread", bobToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	counts := decode(t, w)["data"].(map[string]interface{})
	assert.Equal(t, float64(1), counts["direct"])
	assert.Equal(t, float64(1), counts["total"])
}
