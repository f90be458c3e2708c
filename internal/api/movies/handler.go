package movies

import (
	"net/http"
	"strconv"

	"movies-api/internal/api/apiutil"
	"movies-api/internal/catalog"

	"github.com/gin-gonic/gin"
)

func movieID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid movie id"})
		return 0, false
	}
	return id, true
}

// ------------------------------
// GET /movies?skip&limit&title&genre&adult&status&min_vote_average
// ------------------------------
func ListMovies(c *gin.Context) {
	skip, limit, ok := apiutil.Pagination(c)
	if !ok {
		return
	}
	adult, ok := apiutil.QueryBool(c, "adult")
	if !ok {
		return
	}
	minVote, ok := apiutil.QueryFloat(c, "min_vote_average")
	if !ok {
		return
	}

	f := catalog.Filters{
		Title:          c.Query("title"),
		Genre:          c.Query("genre"),
		Adult:          adult,
		Status:         c.Query("status"),
		MinVoteAverage: minVote,
	}
	page, err := apiutil.Service().ListMovies(c.Request.Context(), f, skip, limit)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to list movies")
		return
	}
	c.JSON(http.StatusOK, toMoviePageDTO(page))
}

// ------------------------------
// GET /movies/:id
// ------------------------------
func GetMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	m, err := apiutil.Service().GetMovie(c.Request.Context(), id)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to load movie")
		return
	}
	c.JSON(http.StatusOK, ToMovieDTO(*m))
}

// ------------------------------
// POST /movies
// ------------------------------
func CreateMovie(c *gin.Context) {
	var req CreateMovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := req.fields()
	if err != nil {
		apiutil.RespondError(c, err, "Failed to create movie")
		return
	}
	var id int64
	if req.ID != nil {
		id = *req.ID
	}

	m, err := apiutil.Service().CreateMovie(c.Request.Context(), id, f)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to create movie")
		return
	}
	c.JSON(http.StatusCreated, ToMovieDTO(*m))
}

// ------------------------------
// PUT /movies/:id (partial: only supplied fields change)
// ------------------------------
func UpdateMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	var req MovieRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	f, err := req.fields()
	if err != nil {
		apiutil.RespondError(c, err, "Failed to update movie")
		return
	}

	m, err := apiutil.Service().UpdateMovie(c.Request.Context(), id, f)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to update movie")
		return
	}
	c.JSON(http.StatusOK, ToMovieDTO(*m))
}

// ------------------------------
// DELETE /movies/:id
// ------------------------------
func DeleteMovie(c *gin.Context) {
	id, ok := movieID(c)
	if !ok {
		return
	}
	if err := apiutil.Service().DeleteMovie(c.Request.Context(), id); err != nil {
		apiutil.RespondError(c, err, "Failed to delete movie")
		return
	}
	c.Status(http.StatusNoContent)
}

// ------------------------------
// GET /movies/by-title/:title?exact
// ------------------------------
func MoviesByTitle(c *gin.Context) {
	exact, ok := apiutil.QueryBool(c, "exact")
	if !ok {
		return
	}
	ms, err := apiutil.Service().MoviesByTitle(c.Request.Context(), c.Param("title"), exact != nil && *exact)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to search movies")
		return
	}
	c.JSON(http.StatusOK, toMovieDTOs(ms))
}

// ------------------------------
// GET /movies/by-genre/:genre?skip&limit
// ------------------------------
func MoviesByGenre(c *gin.Context) {
	skip, limit, ok := apiutil.Pagination(c)
	if !ok {
		return
	}
	page, err := apiutil.Service().MoviesByGenre(c.Request.Context(), c.Param("genre"), skip, limit)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to list movies")
		return
	}
	c.JSON(http.StatusOK, toMoviePageDTO(page))
}

// ------------------------------
// GET /movies/by-rating?min_rating&max_rating&skip&limit
// ------------------------------
func MoviesByRating(c *gin.Context) {
	skip, limit, ok := apiutil.Pagination(c)
	if !ok {
		return
	}
	minRating, ok := apiutil.QueryFloat(c, "min_rating")
	if !ok {
		return
	}
	maxRating, ok := apiutil.QueryFloat(c, "max_rating")
	if !ok {
		return
	}
	page, err := apiutil.Service().MoviesByRating(c.Request.Context(), minRating, maxRating, skip, limit)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to list movies")
		return
	}
	c.JSON(http.StatusOK, toMoviePageDTO(page))
}

// ------------------------------
// GET /movies/by-title/:title/similar?limit&min_shared_tokens
// ------------------------------
func SimilarMovies(c *gin.Context) {
	limit, ok := apiutil.QueryInt(c, "limit")
	if !ok {
		return
	}
	minShared, ok := apiutil.QueryInt(c, "min_shared_tokens")
	if !ok {
		return
	}
	res, err := apiutil.Service().SimilarMovies(c.Request.Context(), c.Param("title"), limit, minShared)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to find similar movies")
		return
	}
	c.JSON(http.StatusOK, toSimilarDTO(res))
}
