package router

import (
	"time"

	"github.com/domen5/TaskTrail-sub000/internal/auth"
	"github.com/domen5/TaskTrail-sub000/internal/config"
	"github.com/domen5/TaskTrail-sub000/internal/handler"
	"github.com/domen5/TaskTrail-sub000/internal/middleware"
	"github.com/domen5/TaskTrail-sub000/internal/store"
	"github.com/domen5/TaskTrail-sub000/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// SetupRouter wires middleware, stores and handlers onto a Gin engine.
func SetupRouter(cfg *config.Config, db *gorm.DB, redisClient *redis.Client, log *zap.Logger) (*gin.Engine, error) {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	tokens, err := auth.NewTokenManager(
		cfg.JWT.Secret,
		cfg.JWT.Issuer,
		time.Duration(cfg.JWT.TokenTTLMinutes)*time.Minute,
	)
	if err != nil {
		return nil, err
	}
	blacklist := auth.NewBlacklist(redisClient, time.Duration(cfg.JWT.BlacklistTTLHours)*time.Hour)
	versions := auth.NewVersionStore(db)

	locks := store.NewLockStore(db)
	workedHours := store.NewWorkedHoursStore(db)

	r.GET("/healthz", func(c *gin.Context) {
		util.Success(c, util.Response{"status": "ok"})
	})

	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(db, tokens, blacklist, versions, cfg.JWT.CookieName, cfg.Security.BcryptCost)
	api.POST("/user/register", authHandler.Register)
	api.POST("/user/login", authHandler.Login)
	api.POST("/user/logout", authHandler.Logout)

	protected := api.Group("")
	protected.Use(
		middleware.AuthMiddleware(cfg.JWT.CookieName, tokens, blacklist, versions, db),
		middleware.ActivityMiddleware(db),
	)

	protected.GET("/user/verify", authHandler.Verify)
	protected.POST("/user/refresh-token", authHandler.Refresh)

	protected.POST("/profile", handler.UpdateProfile(db))
	protected.POST("/profile/password", handler.ChangePassword(db, versions, cfg.Security.BcryptCost))

	lockHandler := handler.NewLockHandler(locks)
	protected.POST("/lock/:year/:month", lockHandler.SetLock)
	protected.GET("/lock/:year/:month", lockHandler.GetLock)

	whHandler := handler.NewWorkedHoursHandler(workedHours, locks)
	protected.POST("/worked-hours", whHandler.Create)
	protected.GET("/worked-hours/:year/:month", whHandler.GetMonth)
	protected.GET("/worked-hours/:year/:month/:day", whHandler.GetDay)
	protected.PUT("/worked-hours/:id", whHandler.Update)
	protected.DELETE("/worked-hours/:id", whHandler.Delete)

	projectHandler := handler.NewProjectHandler(db)
	protected.POST("/projects", projectHandler.Create)
	protected.GET("/projects", projectHandler.List)
	protected.GET("/projects/:id", projectHandler.Get)
	protected.PUT("/projects/:id", projectHandler.Update)
	protected.DELETE("/projects/:id", projectHandler.Delete)

	customerHandler := handler.NewCustomerHandler(db)
	protected.POST("/customers", customerHandler.Create)
	protected.GET("/customers", customerHandler.List)
	protected.GET("/customers/:id", customerHandler.Get)
	protected.PUT("/customers/:id", customerHandler.Update)
	protected.DELETE("/customers/:id", customerHandler.Delete)

	reportHandler := handler.NewReportHandler(workedHours)
	protected.GET("/reports/:year/:month/csv", reportHandler.ExportCSV)
	protected.GET("/reports/:year/:month/xlsx", reportHandler.ExportXLSX)

	activityHandler := handler.NewActivityHandler(db)
	protected.GET("/activity", activityHandler.List)

	return r, nil
}
