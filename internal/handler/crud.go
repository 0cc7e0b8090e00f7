package handler

import (
	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/store"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

// CRUDHandler serves uniform user-scoped CRUD for simple entities.
// Entities share the store and envelope; only binding and field copying
// differ, supplied as the two function values.
type CRUDHandler[T any, R any] struct {
	Store    *store.Store[T]
	Resource string
	Apply    func(in *R, m *T)       // copy validated request fields onto the model
	Owner    func(m *T, userID uint) // stamp ownership before create
}

func (h *CRUDHandler[T, R]) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	var req R
	if err := util.BindJSON(c, &req); err != nil {
		util.RespondError(c, err)
		return
	}

	var m T
	h.Apply(&req, &m)
	h.Owner(&m, user.ID)

	if err := h.Store.Create(c.Request.Context(), &m); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Created(c, util.Response{h.Resource: m})
}

func (h *CRUDHandler[T, R]) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	items, err := h.Store.List(c.Request.Context(), user.ID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{"items": items})
}

func (h *CRUDHandler[T, R]) Get(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	id, err := entryID(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	m, err := h.Store.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{h.Resource: m})
}

func (h *CRUDHandler[T, R]) Update(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	id, err := entryID(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	var req R
	if err := util.BindJSON(c, &req); err != nil {
		util.RespondError(c, err)
		return
	}

	m, err := h.Store.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	h.Apply(&req, m)
	if err := h.Store.Update(c.Request.Context(), m); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{h.Resource: m})
}

func (h *CRUDHandler[T, R]) Delete(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	id, err := entryID(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	if err := h.Store.Delete(c.Request.Context(), user.ID, id); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": h.Resource + " deleted",
	})
}
