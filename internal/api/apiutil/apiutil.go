package apiutil

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"movies-api/database"
	"movies-api/internal/catalog"
	"movies-api/internal/infra/moviestore"
	"movies-api/internal/logger"

	"github.com/gin-gonic/gin"
)

// Service builds a catalog over the shared database connection.
func Service() *catalog.Service {
	store := moviestore.New(database.DB, logger.L())
	return catalog.NewService(store, store, logger.L())
}

// RespondError maps catalog errors onto status codes.
func RespondError(c *gin.Context, err error, fallback string) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": verr.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		logger.L().Error(fallback, "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": fallback})
	}
}

// QueryInt reads an integer query parameter; absent is 0.
func QueryInt(c *gin.Context, key string) (int, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return 0, false
	}
	return v, true
}

// QueryFloat reads an optional float query parameter.
func QueryFloat(c *gin.Context, key string) (*float64, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

// QueryBool reads an optional boolean query parameter.
func QueryBool(c *gin.Context, key string) (*bool, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + key})
		return nil, false
	}
	return &v, true
}

// Pagination reads skip and limit.
func Pagination(c *gin.Context) (skip, limit int, ok bool) {
	if skip, ok = QueryInt(c, "skip"); !ok {
		return 0, 0, false
	}
	if limit, ok = QueryInt(c, "limit"); !ok {
		return 0, 0, false
	}
	return skip, limit, true
}
