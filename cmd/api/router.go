package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"blog-backend/internal/shared/middleware"
	"blog-backend/pkg/container"
)

func SetupRouter(c *container.Container) *gin.Engine {
	router := gin.New()

	// Global middlewares
	router.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.CORS(),
	)

	router.GET("/health", healthCheckHandler(c))

	setupArticleRoutes(router, c)
	setupAuthorRoutes(router, c)

	return router
}

// ════════════════════════════════════════════════════════════════
// ARTICLE ROUTES
// ════════════════════════════════════════════════════════════════
func setupArticleRoutes(router *gin.Engine, c *container.Container) {
	articles := router.Group("/articles")
	{
		articles.GET("", c.ArticleHandler.List)
		articles.POST("", c.ArticleHandler.Create)
		articles.POST("/create", c.ArticleHandler.CreateWithOutcome)
		articles.PUT("", c.ArticleHandler.Update)
		articles.PUT("/update-url/:id", c.ArticleHandler.UpdateURL)
		articles.PUT("/update-article/:id", c.ArticleHandler.UpdateFields)
		articles.PUT("/with-author", c.ArticleHandler.CreateWithAuthor)
		articles.DELETE("/delete", c.ArticleHandler.DeleteByFilter)
		articles.DELETE("/full", c.ArticleHandler.DeleteArticleAndAuthor)
		articles.DELETE("/:id", c.ArticleHandler.Delete)

		articles.GET("/date", c.ArticleHandler.FindByTimestampAfter)
		articles.GET("/date-status", c.ArticleHandler.FindByTimestampAndStatus)
		articles.GET("/status-greater-date", c.ArticleHandler.FindByStatusAndTimestampAfter)
		articles.GET("/period", c.ArticleHandler.FindBetween)
		articles.GET("/complex", c.ArticleHandler.FindComplex)
		articles.GET("/page", c.ArticleHandler.Paginate)
		articles.GET("/status-sorted", c.ArticleHandler.FindByStatusSorted)
		articles.GET("/status-query-sort", c.ArticleHandler.FindByStatusQuerySort)
		articles.GET("/search-text", c.ArticleHandler.SearchText)
		articles.GET("/count-by-status", c.ArticleHandler.CountByStatus)
		articles.GET("/author-totals-period", c.ArticleHandler.AuthorTotalsInPeriod)
		articles.GET("/:code", c.ArticleHandler.GetByCode)
	}
}

// ════════════════════════════════════════════════════════════════
// AUTHOR ROUTES
// ════════════════════════════════════════════════════════════════
func setupAuthorRoutes(router *gin.Engine, c *container.Container) {
	authors := router.Group("/authors")
	{
		authors.POST("", c.AuthorHandler.Create)
		authors.GET("/:code", c.AuthorHandler.GetByCode)
	}
}

// ════════════════════════════════════════════════════════════════
// HEALTH CHECK HANDLER
// ════════════════════════════════════════════════════════════════
func healthCheckHandler(appCtx *container.Container) gin.HandlerFunc {
	return func(c *gin.Context) {
		health := gin.H{
			"status":    "ok",
			"timestamp": time.Now().Format(time.RFC3339),
			"version":   appCtx.Config.App.Version,
		}

		dbStatus := "ok"
		ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
		defer cancel()

		if err := appCtx.DB.HealthCheck(ctx); err != nil {
			dbStatus = "error: " + err.Error()
			health["status"] = "degraded"
		}
		health["database"] = dbStatus

		statusCode := http.StatusOK
		if dbStatus != "ok" {
			statusCode = http.StatusServiceUnavailable
		}
		c.JSON(statusCode, health)
	}
}
