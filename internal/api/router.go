package api

import (
	"database/sql"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/ecoindus/site-backend-go/internal/auth"
	"github.com/ecoindus/site-backend-go/internal/config"
	"github.com/ecoindus/site-backend-go/internal/handler"
	"github.com/ecoindus/site-backend-go/internal/middleware"
	"github.com/ecoindus/site-backend-go/internal/repository"
	"github.com/ecoindus/site-backend-go/internal/service"
	"github.com/ecoindus/site-backend-go/pkg/response"
)

// SetupRouter 设置路由
//
// The returned stop func releases the background work of the router's rate
// limiters and must be called once the engine is no longer served.
func SetupRouter(cfg *config.Config, db *sql.DB) (*gin.Engine, func()) {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.Logger(logrus.StandardLogger()))
	r.Use(middleware.Metrics())
	r.Use(middleware.CORS(cfg.CORSOrigins))

	consultationHandler := handler.NewConsultationHandler(
		service.NewConsultationService(repository.NewConsultationRepository(db)),
	)
	estimateHandler := handler.NewEstimateHandler(service.NewEstimateService())
	limiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
	limiters := []*middleware.RateLimiter{limiter}

	// 健康检查
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "EcoIndus Solutions API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	{
		api.GET("/", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"message": "EcoIndus Solutions API"})
		})

		// Carbon estimate. The Portuguese path is kept as an alias of the
		// canonical endpoint and returns the same shape.
		api.POST("/calculate-carbon", estimateHandler.Calculate)
		api.POST("/calcular-carbono", estimateHandler.Calculate)

		api.POST("/consultation", middleware.RateLimit(limiter), consultationHandler.Create)

		if cfg.AdminEnabled() {
			issuer := auth.NewIssuer(cfg.JWTSecret, cfg.AdminKey, cfg.TokenTTL)
			authHandler := handler.NewAuthHandler(issuer)

			loginLimiter := middleware.NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst)
			limiters = append(limiters, loginLimiter)
			api.POST("/auth/token", middleware.RateLimit(loginLimiter), authHandler.IssueToken)

			admin := api.Group("/consultations", middleware.RequireToken(issuer))
			{
				admin.GET("", consultationHandler.List)
				admin.GET("/:id", consultationHandler.GetByID)
			}
		}
	}

	r.NoRoute(func(c *gin.Context) {
		response.NotFound(c, "Not found")
	})

	stop := func() {
		for _, l := range limiters {
			l.Stop()
		}
	}
	return r, stop
}
