package handler

import (
	"strconv"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/store"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

// LockHandler exposes the month-lock authority over HTTP.
type LockHandler struct {
	Locks *store.LockStore
}

func NewLockHandler(locks *store.LockStore) *LockHandler {
	return &LockHandler{Locks: locks}
}

func monthParams(c *gin.Context) (int, int, error) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		return 0, 0, apperr.InvalidArg("year must be a number")
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil {
		return 0, 0, apperr.InvalidArg("month must be a number")
	}
	return year, month, nil
}

// lockSubject resolves whose timesheet the call refers to. Accountants
// may name another user with ?user_id=, everyone else acts on themselves.
func lockSubject(c *gin.Context, actorID uint, isAccountant bool) (uint, error) {
	subjectStr := c.Query("user_id")
	if subjectStr == "" {
		return actorID, nil
	}
	subject, err := strconv.Atoi(subjectStr)
	if err != nil || subject <= 0 {
		return 0, apperr.InvalidArg("user_id must be a positive number")
	}
	if uint(subject) != actorID && !isAccountant {
		return 0, apperr.ErrNotAccountant
	}
	return uint(subject), nil
}

type setLockReq struct {
	Locked *bool `json:"locked" binding:"required"`
}

// SetLock locks or unlocks a month. Only accountants may change lock
// state; the authorization check runs before any validation side effect.
func (h *LockHandler) SetLock(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}
	if !actor.IsAccountant() {
		util.RespondError(c, apperr.ErrNotAccountant)
		return
	}

	year, month, err := monthParams(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	var req setLockReq
	if err := util.BindJSON(c, &req); err != nil {
		util.RespondError(c, err)
		return
	}

	subject, err := lockSubject(c, actor.ID, true)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	if err := h.Locks.SetLock(c.Request.Context(), subject, year, month, actor.ID, *req.Locked); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"year":     year,
		"month":    month,
		"isLocked": *req.Locked,
	})
}

// GetLock reports lock state for a month.
func (h *LockHandler) GetLock(c *gin.Context) {
	actor, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	year, month, err := monthParams(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	if err := util.ValidateYearMonth(year, month); err != nil {
		util.RespondError(c, apperr.InvalidArg(err.Error()))
		return
	}

	subject, err := lockSubject(c, actor.ID, actor.IsAccountant())
	if err != nil {
		util.RespondError(c, err)
		return
	}

	locked, err := h.Locks.IsLocked(c.Request.Context(), subject, year, month)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"year":     year,
		"month":    month,
		"isLocked": locked,
	})
}
