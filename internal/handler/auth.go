package handler

import (
	"errors"
	"net/http"
	"regexp"
	"strings"
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/auth"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// AuthHandler serves registration, login and the session lifecycle.
type AuthHandler struct {
	DB         *gorm.DB
	Tokens     *auth.TokenManager
	Blacklist  *auth.Blacklist
	Versions   *auth.VersionStore
	CookieName string
	BcryptCost int
}

func NewAuthHandler(db *gorm.DB, tokens *auth.TokenManager, blacklist *auth.Blacklist, versions *auth.VersionStore, cookieName string, bcryptCost int) *AuthHandler {
	if bcryptCost <= 0 {
		bcryptCost = 12
	}
	return &AuthHandler{
		DB:         db,
		Tokens:     tokens,
		Blacklist:  blacklist,
		Versions:   versions,
		CookieName: cookieName,
		BcryptCost: bcryptCost,
	}
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(h.CookieName, token, maxAge, "/", "", false, true)
}

func userResp(u *models.User) gin.H {
	return gin.H{
		"id":           u.ID,
		"username":     u.Username,
		"display_name": u.DisplayName,
		"role":         u.Role,
	}
}

// ---------- register ----------

type registerReq struct {
	Username    string `json:"username" binding:"required"`
	Password    string `json:"password" binding:"required,min=8,max=72"`
	Role        string `json:"role" binding:"omitempty,oneof=user accountant"`
	DisplayName string `json:"display_name" binding:"max=64"`
}

var usernameRe = regexp.MustCompile(`^[A-Za-z0-9_]{3,20}$`)

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerReq
	if err := util.BindJSON(c, &req); err != nil {
		util.RespondError(c, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)
	if !usernameRe.MatchString(req.Username) {
		util.RespondError(c, apperr.InvalidArg("username must be 3-20 letters, digits or underscores"))
		return
	}
	if req.Role == "" {
		req.Role = models.RoleUser
	}

	// case-insensitive uniqueness check before the insert; the unique
	// index still backstops concurrent registrations
	var count int64
	if err := h.DB.Model(&models.User{}).
		Where("LOWER(username) = LOWER(?)", req.Username).
		Count(&count).Error; err != nil {
		util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "query user failed", err))
		return
	}
	if count > 0 {
		util.RespondError(c, apperr.ErrUsernameTaken)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), h.BcryptCost)
	if err != nil {
		util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "hash password failed", err))
		return
	}

	user := models.User{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
		Role:         req.Role,
	}
	if err := h.DB.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed") {
			util.RespondError(c, apperr.ErrUsernameTaken)
		} else {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "create user failed", err))
		}
		return
	}

	util.Created(c, util.Response{
		"user": userResp(&user),
	})
}

// ---------- login ----------

type loginReq struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := util.BindJSON(c, &req); err != nil {
		util.RespondError(c, err)
		return
	}

	req.Username = strings.TrimSpace(req.Username)

	var user models.User
	if err := h.DB.Where("LOWER(username) = LOWER(?)", req.Username).
		First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			util.RespondError(c, apperr.ErrBadCredentials)
		} else {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "query user failed", err))
		}
		return
	}

	now := time.Now()

	if user.LockedUntil != nil && now.Before(*user.LockedUntil) {
		util.RespondError(c, apperr.ErrAccountLocked)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		// 5 consecutive failures lock the account for 10 minutes
		user.FailedLoginAttempts++
		if user.FailedLoginAttempts >= 5 {
			lockUntil := now.Add(10 * time.Minute)
			user.LockedUntil = &lockUntil
			user.FailedLoginAttempts = 0
		}
		_ = h.DB.Save(&user).Error
		util.RespondError(c, apperr.ErrBadCredentials)
		return
	}

	user.FailedLoginAttempts = 0
	user.LockedUntil = nil
	user.LastLoginIP = c.ClientIP()
	user.LastLoginAt = &now
	_ = h.DB.Save(&user).Error

	// version record is created lazily on first login
	version, err := h.Versions.Ensure(c.Request.Context(), user.ID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username, version)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	ttl := h.Tokens.TTL()
	h.setSessionCookie(c, token, int(ttl.Seconds()))
	util.Success(c, util.Response{
		"expiresIn": int(ttl.Seconds()),
		"user":      userResp(&user),
	})
}

// ---------- verify ----------

// Verify reports the authenticated identity. All the actual checking
// happens in AuthMiddleware.
func (h *AuthHandler) Verify(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	expiresIn := 0
	if claims, ok := middleware.CurrentClaims(c); ok && claims.ExpiresAt != nil {
		expiresIn = int(time.Until(claims.ExpiresAt.Time).Seconds())
	}

	util.Success(c, util.Response{
		"user":      userResp(user),
		"expiresIn": expiresIn,
	})
}

// ---------- logout ----------

// Logout blacklists whatever token was presented and clears the cookie.
// It deliberately skips AuthMiddleware: revoking an expired or absent
// token is not an error.
func (h *AuthHandler) Logout(c *gin.Context) {
	token := middleware.ExtractToken(c, h.CookieName)
	if token != "" {
		if err := h.Blacklist.Add(c.Request.Context(), token); err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "revoke token failed", err))
			return
		}
	}

	h.setSessionCookie(c, "", -1)
	util.Success(c, util.Response{
		"message": "logged out",
	})
}

// ---------- refresh ----------

// Refresh rotates the session: blacklist the old token, bump the stored
// version, issue a token carrying the new version. Every token issued
// before the refresh fails the version check afterwards, whether or not
// it was ever blacklisted.
func (h *AuthHandler) Refresh(c *gin.Context) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.RespondError(c, apperr.ErrMissingToken)
		return
	}

	oldToken, _ := c.Get(middleware.CtxToken)
	if tokenStr, ok := oldToken.(string); ok && tokenStr != "" {
		if err := h.Blacklist.Add(c.Request.Context(), tokenStr); err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "revoke token failed", err))
			return
		}
	}

	version, err := h.Versions.Increment(c.Request.Context(), user.ID)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	token, err := h.Tokens.Issue(user.ID, user.Username, version)
	if err != nil {
		util.RespondError(c, err)
		return
	}

	ttl := h.Tokens.TTL()
	h.setSessionCookie(c, token, int(ttl.Seconds()))
	util.Success(c, util.Response{
		"expiresIn": int(ttl.Seconds()),
	})
}
