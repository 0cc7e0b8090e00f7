package handler

import (
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/auth"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type updateProfileReq struct {
	DisplayName string `json:"display_name" binding:"max=64"`
}

type changePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required,min=8,max=72"`
}

// UpdateProfile updates the current user's display name.
func UpdateProfile(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.RespondError(c, apperr.ErrMissingToken)
			return
		}

		var req updateProfileReq
		if err := util.BindJSON(c, &req); err != nil {
			util.RespondError(c, err)
			return
		}

		req.DisplayName = strings.TrimSpace(req.DisplayName)

		if err := db.Model(user).Update("display_name", req.DisplayName).Error; err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "update profile failed", err))
			return
		}

		user.DisplayName = req.DisplayName
		util.Success(c, util.Response{
			"user": userResp(user),
		})
	}
}

// ChangePassword changes the password and bumps the token version so
// every existing session, including the current one, must log in again.
func ChangePassword(db *gorm.DB, versions *auth.VersionStore, bcryptCost int) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := middleware.CurrentUser(c)
		if !ok {
			util.RespondError(c, apperr.ErrMissingToken)
			return
		}

		var req changePasswordReq
		if err := util.BindJSON(c, &req); err != nil {
			util.RespondError(c, err)
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
			util.RespondError(c, apperr.InvalidArg("old password is incorrect"))
			return
		}

		hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcryptCost)
		if err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "hash password failed", err))
			return
		}

		if err := db.Model(user).Update("password_hash", string(hash)).Error; err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "update password failed", err))
			return
		}

		if _, err := versions.Increment(c.Request.Context(), user.ID); err != nil {
			util.RespondError(c, err)
			return
		}

		util.Success(c, util.Response{
			"message": "password changed, please log in again",
		})
	}
}
