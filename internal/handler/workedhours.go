package handler

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/store"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
)

// WorkedHoursHandler serves the timesheet entries. Edits against a
// locked month are rejected before any side effect.
type WorkedHoursHandler struct {
	Store *store.WorkedHoursStore
	Locks *store.LockStore
}

func NewWorkedHoursHandler(s *store.WorkedHoursStore, locks *store.LockStore) *WorkedHoursHandler {
	return &WorkedHoursHandler{Store: s, Locks: locks}
}

type workedHoursReq struct {
	Date        string  `json:"date" binding:"required"`
	Project     string  `json:"project" binding:"required,max=64"`
	Hours       float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Description string  `json:"description" binding:"max=255"`
	Overtime    bool    `json:"overtime"`
}

type workedHoursResp struct {
	ID          uint    `json:"id"`
	Date        string  `json:"date"`
	Project     string  `json:"project"`
	Hours       float64 `json:"hours"`
	Description string  `json:"description"`
	Overtime    bool    `json:"overtime"`
}

func toWorkedHoursResp(e *models.WorkedHours) workedHoursResp {
	return workedHoursResp{
		ID:          e.ID,
		Date:        e.Date.Format("2006-01-02"),
		Project:     e.Project,
		Hours:       e.Hours,
		Description: e.Description,
		Overtime:    e.Overtime,
	}
}

func (h *WorkedHoursHandler) parseReq(c *gin.Context) (*workedHoursReq, time.Time, error) {
	var req workedHoursReq
	if err := util.BindJSON(c, &req); err != nil {
		return nil, time.Time{}, err
	}
	req.Project = strings.TrimSpace(req.Project)
	if req.Project == "" {
		return nil, time.Time{}, apperr.InvalidArg("project is required")
	}
	day, err := util.ValidateDate(req.Date)
	if err != nil {
		return nil, time.Time{}, apperr.InvalidArg(err.Error())
	}
	return &req, day, nil
}

// checkUnlocked rejects edits on days whose month is locked.
func (h *WorkedHoursHandler) checkUnlocked(c *gin.Context, userID uint, day time.Time) error {
	locked, err := h.Locks.IsLocked(c.Request.Context(), userID, day.Year(), int(day.Month()))
	if err != nil {
		return err
	}
	if locked {
		return apperr.ErrMonthLocked
	}
	return nil
}

func (h *WorkedHoursHandler) Create(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	req, day, err := h.parseReq(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	if err := h.checkUnlocked(c, user.ID, day); err != nil {
		util.RespondError(c, err)
		return
	}

	entry := models.WorkedHours{
		UserID:      user.ID,
		Date:        day,
		Project:     req.Project,
		Hours:       req.Hours,
		Description: req.Description,
		Overtime:    req.Overtime,
	}
	if err := h.Store.Create(c.Request.Context(), &entry); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Created(c, util.Response{
		"entry": toWorkedHoursResp(&entry),
	})
}

func (h *WorkedHoursHandler) Update(c *gin.Context) {
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

	req, day, err := h.parseReq(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	entry, err := h.Store.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	// both the entry's current month and its target month must be open
	if err := h.checkUnlocked(c, user.ID, entry.Date); err != nil {
		util.RespondError(c, err)
		return
	}
	if err := h.checkUnlocked(c, user.ID, day); err != nil {
		util.RespondError(c, err)
		return
	}

	entry.Date = day
	entry.Project = req.Project
	entry.Hours = req.Hours
	entry.Description = req.Description
	entry.Overtime = req.Overtime

	if err := h.Store.Update(c.Request.Context(), entry); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"entry": toWorkedHoursResp(entry),
	})
}

func (h *WorkedHoursHandler) Delete(c *gin.Context) {
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

	entry, err := h.Store.Get(c.Request.Context(), user.ID, id)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	if err := h.checkUnlocked(c, user.ID, entry.Date); err != nil {
		util.RespondError(c, err)
		return
	}

	if err := h.Store.Delete(c.Request.Context(), user.ID, id); err != nil {
		util.RespondError(c, err)
		return
	}

	util.Success(c, util.Response{
		"message": "entry deleted",
	})
}

// GetMonth lists a calendar month of entries with a total.
func (h *WorkedHoursHandler) GetMonth(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
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

	entries, err := h.Store.ListMonth(c.Request.Context(), user.ID, year, month)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	items := make([]workedHoursResp, 0, len(entries))
	var totalHours float64
	for i := range entries {
		items = append(items, toWorkedHoursResp(&entries[i]))
		totalHours += entries[i].Hours
	}

	util.Success(c, util.Response{
		"year":       year,
		"month":      month,
		"items":      items,
		"totalHours": totalHours,
	})
}

// GetDay lists entries for a single date.
func (h *WorkedHoursHandler) GetDay(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	year, month, err := monthParams(c)
	if err != nil {
		util.RespondError(c, err)
		return
	}
	dayNum, err := strconv.Atoi(c.Param("day"))
	if err != nil {
		util.RespondError(c, apperr.InvalidArg("day must be a number"))
		return
	}

	day, verr := util.ValidateDate(fmt.Sprintf("%04d-%02d-%02d", year, month, dayNum))
	if verr != nil {
		util.RespondError(c, apperr.InvalidArg(verr.Error()))
		return
	}

	entries, err := h.Store.ListDay(c.Request.Context(), user.ID, day)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	items := make([]workedHoursResp, 0, len(entries))
	for i := range entries {
		items = append(items, toWorkedHoursResp(&entries[i]))
	}

	util.Success(c, util.Response{
		"date":  day.Format("2006-01-02"),
		"items": items,
	})
}

func entryID(c *gin.Context) (uint, error) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil || id <= 0 {
		return 0, apperr.InvalidArg("invalid id")
	}
	return uint(id), nil
}
