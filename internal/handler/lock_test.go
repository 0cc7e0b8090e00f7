package handler_test

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func lockPath(year, month int) string {
	return fmt.Sprintf("/api/lock/%d/%d", year, month)
}

func prevMonth() (int, int) {
	prev := time.Now().AddDate(0, -1, 0)
	return prev.Year(), int(prev.Month())
}

func TestLock_RequiresAccountant(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "bob", "password123", "user")
	cookie := login(t, r, "bob", "password123")
	year, month := prevMonth()

	w := doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestLock_SetAndGet(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "erin", "password123", "accountant")
	cookie := login(t, r, "erin", "password123")
	year, month := prevMonth()

	w := doJSON(t, r, http.MethodGet, lockPath(year, month), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataOf(t, w)["isLocked"])

	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": true}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, lockPath(year, month), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataOf(t, w)["isLocked"])

	// locking twice is not an error
	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// unlock, twice
	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": false}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": false}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodGet, lockPath(year, month), nil, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataOf(t, w)["isLocked"])
}

func TestLock_FutureMonthRejected(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "erin", "password123", "accountant")
	cookie := login(t, r, "erin", "password123")
	next := time.Now().AddDate(0, 1, 0)

	w := doJSON(t, r, http.MethodPost, lockPath(next.Year(), int(next.Month())), gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, lockPath(next.Year(), int(next.Month())), gin.H{"locked": false}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLock_BadParams(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "erin", "password123", "accountant")
	cookie := login(t, r, "erin", "password123")

	w := doJSON(t, r, http.MethodPost, "/api/lock/2024/13", gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/lock/1899/6", gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = doJSON(t, r, http.MethodPost, "/api/lock/abc/6", gin.H{"locked": true}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// missing desired state
	w = doJSON(t, r, http.MethodPost, "/api/lock/2024/6", gin.H{}, cookie)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestLock_AccountantLocksAnotherUser(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "bob", "password123", "user")
	register(t, r, "erin", "password123", "accountant")
	bobCookie := login(t, r, "bob", "password123")
	erinCookie := login(t, r, "erin", "password123")
	year, month := prevMonth()

	// bob is user id 1
	w := doJSON(t, r, http.MethodPost, lockPath(year, month)+"?user_id=1", gin.H{"locked": true}, erinCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, lockPath(year, month), nil, bobCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, true, dataOf(t, w)["isLocked"])

	// erin's own timesheet is untouched
	w = doJSON(t, r, http.MethodGet, lockPath(year, month), nil, erinCookie)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, false, dataOf(t, w)["isLocked"])
}

func TestLockedMonth_BlocksWorkedHoursEdits(t *testing.T) {
	r, _ := newTestEnv(t)
	register(t, r, "erin", "password123", "accountant")
	cookie := login(t, r, "erin", "password123")
	year, month := prevMonth()
	date := fmt.Sprintf("%04d-%02d-15", year, month)

	// entry created while the month is open
	w := doJSON(t, r, http.MethodPost, "/api/worked-hours", gin.H{
		"date":    date,
		"project": "backend",
		"hours":   8,
	}, cookie)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	entry := dataOf(t, w)["entry"].(map[string]interface{})
	id := int(entry["id"].(float64))

	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": true}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	// create, update and delete are all rejected
	w = doJSON(t, r, http.MethodPost, "/api/worked-hours", gin.H{
		"date":    date,
		"project": "backend",
		"hours":   4,
	}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/worked-hours/%d", id), gin.H{
		"date":    date,
		"project": "backend",
		"hours":   6,
	}, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/worked-hours/%d", id), nil, cookie)
	assert.Equal(t, http.StatusForbidden, w.Code)

	// reading stays allowed
	w = doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/worked-hours/%d/%d", year, month), nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)

	// unlock reopens editing
	w = doJSON(t, r, http.MethodPost, lockPath(year, month), gin.H{"locked": false}, cookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/worked-hours/%d", id), nil, cookie)
	assert.Equal(t, http.StatusOK, w.Code)
}
