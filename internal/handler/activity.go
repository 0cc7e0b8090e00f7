package handler

import (
	"strconv"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// ActivityHandler lists the current user's activity log.
type ActivityHandler struct {
	DB *gorm.DB
}

func NewActivityHandler(db *gorm.DB) *ActivityHandler {
	return &ActivityHandler{DB: db}
}

type activityResp struct {
	ID        uint      `json:"id"`
	Action    string    `json:"action"`
	Path      string    `json:"path"`
	Method    string    `json:"method"`
	IP        string    `json:"ip"`
	UserAgent string    `json:"user_agent"`
	CreatedAt time.Time `json:"created_at"`
}

// List returns the user's activity entries, newest first, paginated.
func (h *ActivityHandler) List(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	base := h.DB.Model(&models.ActivityLog{}).Where("user_id = ?", user.ID)

	var total int64
	if err := base.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "count activity failed", err))
		return
	}

	var logs []models.ActivityLog
	if err := base.Session(&gorm.Session{}).
		Order("created_at DESC, id DESC").
		Limit(size).
		Offset(offset).
		Find(&logs).Error; err != nil {
		util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "list activity failed", err))
		return
	}

	items := make([]activityResp, 0, len(logs))
	for _, l := range logs {
		items = append(items, activityResp{
			ID:        l.ID,
			Action:    l.Action,
			Path:      l.Path,
			Method:    l.Method,
			IP:        l.IP,
			UserAgent: l.UserAgent,
			CreatedAt: l.CreatedAt,
		})
	}

	util.Success(c, util.Response{
		"items": items,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
