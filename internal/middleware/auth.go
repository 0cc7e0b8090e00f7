package middleware

import (
	"errors"
	"strings"

	"github.com/domen5/TaskTrail-sub000/internal/apperr"
	"github.com/domen5/TaskTrail-sub000/internal/auth"
	"github.com/domen5/TaskTrail-sub000/internal/models"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// Context keys set by AuthMiddleware.
const (
	CtxUser   = "currentUser"
	CtxToken  = "sessionToken"
	CtxClaims = "sessionClaims"
)

// ExtractToken pulls the session token from the cookie, falling back to
// a Bearer header for non-browser clients.
func ExtractToken(c *gin.Context, cookieName string) string {
	if cookie, err := c.Cookie(cookieName); err == nil && cookie != "" {
		return cookie
	}
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return parts[1]
		}
	}
	return ""
}

// AuthMiddleware validates the session token and attaches the current
// user. Checks run in a fixed order: presence, blacklist, signature,
// stored version, then the user row itself.
func AuthMiddleware(cookieName string, tokens *auth.TokenManager, blacklist *auth.Blacklist, versions *auth.VersionStore, db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr := ExtractToken(c, cookieName)
		if tokenStr == "" {
			util.RespondError(c, apperr.ErrMissingToken)
			c.Abort()
			return
		}

		revoked, err := blacklist.Contains(c.Request.Context(), tokenStr)
		if err != nil {
			util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "blacklist lookup failed", err))
			c.Abort()
			return
		}
		if revoked {
			util.RespondError(c, apperr.ErrTokenRevoked)
			c.Abort()
			return
		}

		claims, err := tokens.Parse(tokenStr)
		if err != nil {
			util.RespondError(c, err)
			c.Abort()
			return
		}

		// a token from before the user's last refresh is stale
		current, err := versions.Get(c.Request.Context(), claims.UserID)
		if err != nil {
			util.RespondError(c, err)
			c.Abort()
			return
		}
		if claims.Version < current {
			util.RespondError(c, apperr.ErrStaleToken)
			c.Abort()
			return
		}

		var user models.User
		if err := db.WithContext(c.Request.Context()).First(&user, claims.UserID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.RespondError(c, apperr.Unauthenticated("user no longer exists"))
			} else {
				util.RespondError(c, apperr.Wrap(apperr.CodeInternal, "load user failed", err))
			}
			c.Abort()
			return
		}

		c.Set(CtxUser, &user)
		c.Set(CtxToken, tokenStr)
		c.Set(CtxClaims, claims)
		c.Next()
	}
}

// CurrentUser returns the authenticated user attached by AuthMiddleware.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	v, ok := c.Get(CtxUser)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.User)
	if !ok || user == nil {
		return nil, false
	}
	return user, true
}

// CurrentClaims returns the parsed token claims for the request.
func CurrentClaims(c *gin.Context) (*auth.Claims, bool) {
	v, ok := c.Get(CtxClaims)
	if !ok {
		return nil, false
	}
	claims, ok := v.(*auth.Claims)
	return claims, ok && claims != nil
}
