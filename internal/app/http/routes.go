package routes

import (
	listsapi "movies-api/internal/api/lists"
	moviesapi "movies-api/internal/api/movies"
	"movies-api/internal/app/http/middleware"
	"movies-api/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func RegisterRoutes(r *gin.Engine, log *logger.Logger) {
	r.Use(middleware.RequestID(), middleware.RequestLogger(log), middleware.Metrics())

	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "Movies API is running"})
	})
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// ✅ JSON write bodies are sanitized; CSV imports pass through untouched
	movies := r.Group("/movies")
	movies.Use(middleware.SanitizeAndCleanInputMiddleware())

	movies.GET("", moviesapi.ListMovies)
	movies.POST("", moviesapi.CreateMovie)
	movies.POST("/import", moviesapi.ImportMovies)

	movies.GET("/by-title/:title", moviesapi.MoviesByTitle)
	movies.GET("/by-title/:title/similar", moviesapi.SimilarMovies)
	movies.GET("/by-genre/:genre", moviesapi.MoviesByGenre)
	movies.GET("/by-rating", moviesapi.MoviesByRating)

	movies.GET("/:id", moviesapi.GetMovie)
	movies.PUT("/:id", moviesapi.UpdateMovie)
	movies.DELETE("/:id", moviesapi.DeleteMovie)

	lists := r.Group("/lists")
	lists.Use(middleware.SanitizeAndCleanInputMiddleware())

	lists.GET("", listsapi.ListLists)
	lists.POST("", listsapi.CreateList)
	lists.GET("/:name", listsapi.GetList)
	lists.PUT("/:name", listsapi.UpdateList)
	lists.DELETE("/:name", listsapi.DeleteList)
}
