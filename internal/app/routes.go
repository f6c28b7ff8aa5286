package app

import (
	"github.com/hasbenyek/perpus-sahroni/internal/auth"
	"github.com/hasbenyek/perpus-sahroni/internal/cache"
	"github.com/hasbenyek/perpus-sahroni/internal/config"
	"github.com/hasbenyek/perpus-sahroni/internal/handlers"
	"github.com/hasbenyek/perpus-sahroni/internal/repo"
	"github.com/hasbenyek/perpus-sahroni/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"
)

// Setup registers all routes on the given engine.
func Setup(r *gin.Engine, cfg config.Config, db *pgxpool.Pool, rdb *redis.Client) {
	r.GET("/", rootHandler(cfg))
	r.GET("/health", healthHandler(cfg))
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(302, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
		ginSwagger.PersistAuthorization(true),
	))

	api := r.Group("/api/v1")

	sessionStore := auth.NewStore(rdb, cfg.Redis.SessionTTL.Duration())
	userRepo := repo.NewPGUserRepo(db)
	userSvc := service.NewUserService(userRepo)
	authHandler := handlers.NewAuthHandler(sessionStore, userSvc)
	registerAuthRoutes(api, authHandler)

	protected := api.Group("", auth.RequireSession(sessionStore))
	statsCache := cache.NewStatsCache(rdb, cfg.Redis.DefaultTTL.Duration())
	bookRepo := repo.NewPGBookRepo(db)
	loanRepo := repo.NewPGLoanRepo(db)
	bookSvc := service.NewBookService(bookRepo, statsCache)
	loanSvc := service.NewLoanService(loanRepo, bookRepo, statsCache)
	bookHandler := handlers.NewBookHandler(bookSvc)
	loanHandler := handlers.NewLoanHandler(loanSvc)
	registerBookRoutes(protected, bookHandler, loanHandler)
	registerLoanRoutes(protected, loanHandler)
}

func rootHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service": "Library API",
			"version": cfg.App.Version,
			"env":     cfg.App.Env,
			"docs":    "/swagger/index.html",
			"spec":    "/swagger-doc.json",
			"health":  "/health",
			"api":     "/api/v1",
		})
	}
}

func healthHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"ok": true, "env": cfg.App.Env})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(200, gin.H{"version": cfg.App.Version})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(500, gin.H{"error": err.Error()})
			return
		}
		c.Data(200, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerBookRoutes(api *gin.RouterGroup, h *handlers.BookHandler, lh *handlers.LoanHandler) {
	api.POST("/books", h.Create)
	api.GET("/books", h.List)
	api.GET("/books/:id", h.GetByID)
	api.POST("/books/:id/borrow", lh.Borrow)
}

func registerLoanRoutes(api *gin.RouterGroup, h *handlers.LoanHandler) {
	api.GET("/loans", h.List)
	api.POST("/loans/:id/return", h.Return)
	api.GET("/dashboard", h.Dashboard)
}

func registerAuthRoutes(api *gin.RouterGroup, h *handlers.AuthHandler) {
	api.POST("/auth/login", h.Login)
	api.POST("/auth/register", h.Register)
	api.POST("/auth/logout", h.Logout)
}
