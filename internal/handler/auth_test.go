package handler_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterLoginVerify(t *testing.T) {
	r, _ := newTestEnv(t)

	register(t, r, "alice", "password123", "user")
	cookie := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	data := dataOf(t, w)
	user := data["user"].(map[string]interface{})
	assert.Equal(t, "alice", user["username"])
	assert.Equal(t, "user", user["role"])
	assert.Greater(t, data["expiresIn"].(float64), 0.0)
}

func TestRegister_DuplicateUsernameIsConflict(t *testing.T) {
	r, _ := newTestEnv(t)

	register(t, r, "alice", "password123", "user")

	w := doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"username": "alice",
		"password": "password456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)

	body := decodeBody(t, w)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "username is already taken", body["message"])
}

func TestRegister_DuplicateIsCaseInsensitive(t *testing.T) {
	r, _ := newTestEnv(t)

	register(t, r, "alice", "password123", "user")

	w := doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"username": "ALICE",
		"password": "password456",
	})
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRegister_BadInput(t *testing.T) {
	r, _ := newTestEnv(t)

	// bad username charset
	w := doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"username": "al ice!",
		"password": "password123",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// short password
	w = doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"username": "alice",
		"password": "short",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	// unknown role
	w = doJSON(t, r, http.MethodPost, "/api/user/register", gin.H{
		"username": "alice",
		"password": "password123",
		"role":     "admin",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_MissingFields(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{"username": "alice"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLogin_BadCredentials(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "alice", "password123", "user")

	w := doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{
		"username": "alice",
		"password": "wrong-password",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{
		"username": "nobody",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify_NoToken(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doJSON(t, r, http.MethodGet, "/api/user/verify", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestVerify_MalformedToken(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doJSON(t, r, http.MethodGet, "/api/user/verify", nil, &http.Cookie{
		Name:  cookieName,
		Value: "garbage.token.value",
	})
	// structurally invalid credential, not just missing
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogout_RevokesToken(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "alice", "password123", "user")
	cookie := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/user/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// same token must now be rejected
	w = doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogout_WithoutTokenIsOK(t *testing.T) {
	r, _ := newTestEnv(t)

	w := doJSON(t, r, http.MethodPost, "/api/user/logout", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestLogout_IsIdempotent(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "alice", "password123", "user")
	cookie := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/user/logout", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/user/logout", nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRefresh_InvalidatesAllPriorTokens(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "alice", "password123", "user")

	// two live sessions, both at version 1
	cookieA := login(t, r, "alice", "password123")
	cookieB := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/user/refresh-token", nil, cookieB)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	cookieC := sessionCookie(t, w)

	// the refreshed session works
	w = doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookieC)
	assert.Equal(t, http.StatusOK, w.Code)

	// the token used for the refresh is blacklisted
	w = doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookieB)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// the never-blacklisted session A is stale by version: the counter
	// catches captured tokens the blacklist alone would miss
	w = doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookieA)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRefresh_BumpsVersionOnce(t *testing.T) {
	r, db := newTestEnv(t)
	register(t, r, "alice", "password123", "user")
	cookie := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/user/refresh-token", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	var version int
	require.NoError(t, db.Raw("SELECT version FROM token_versions WHERE user_id = 1").Scan(&version).Error)
	assert.Equal(t, 2, version)
}

func TestChangePassword_InvalidatesSessions(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "alice", "password123", "user")
	cookie := login(t, r, "alice", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/profile/password", gin.H{
		"old_password": "password123",
		"new_password": "password456",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	// old session is stale after the version bump
	w = doJSON(t, r, http.MethodGet, "/api/user/verify", nil, cookie)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// new password works, old one does not
	w = doJSON(t, r, http.MethodPost, "/api/user/login", gin.H{
		"username": "alice",
		"password": "password123",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	login(t, r, "alice", "password456")
}
