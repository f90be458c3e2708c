package lists

import (
	"net/http"

	"movies-api/internal/api/apiutil"
	moviesapi "movies-api/internal/api/movies"
	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"

	"github.com/gin-gonic/gin"
)

// ---------- requests

type CreateListRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description *string  `json:"description"`
	MovieTitles []string `json:"movie_titles"`
}

type UpdateListRequest struct {
	Description *string   `json:"description"`
	MovieTitles *[]string `json:"movie_titles"`
}

// ---------- responses

type ListSummaryDTO struct {
	ID          uint    `json:"id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Size        int     `json:"size"`
}

type ListDTO struct {
	ID          uint                 `json:"id"`
	Name        string               `json:"name"`
	Description *string              `json:"description"`
	Movies      []moviesapi.MovieDTO `json:"movies"`
}

func toListDTO(l *movies.MovieList) ListDTO {
	out := ListDTO{
		ID:          l.ID,
		Name:        l.Name,
		Description: l.Description,
		Movies:      make([]moviesapi.MovieDTO, 0, len(l.Items)),
	}
	for _, m := range l.Movies() {
		out.Movies = append(out.Movies, moviesapi.ToMovieDTO(m))
	}
	return out
}

func toSummaryDTOs(in []catalog.ListSummary) []ListSummaryDTO {
	out := make([]ListSummaryDTO, 0, len(in))
	for _, s := range in {
		out = append(out, ListSummaryDTO{
			ID:          s.ID,
			Name:        s.Name,
			Description: s.Description,
			Size:        s.Size,
		})
	}
	return out
}

// ------------------------------
// POST /lists
// ------------------------------
func CreateList(c *gin.Context) {
	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := apiutil.Service().CreateList(c.Request.Context(), req.Name, req.Description, req.MovieTitles)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to create list")
		return
	}
	c.JSON(http.StatusCreated, toListDTO(l))
}

// ------------------------------
// GET /lists
// ------------------------------
func ListLists(c *gin.Context) {
	all, err := apiutil.Service().AllLists(c.Request.Context())
	if err != nil {
		apiutil.RespondError(c, err, "Failed to load lists")
		return
	}
	c.JSON(http.StatusOK, toSummaryDTOs(all))
}

// ------------------------------
// GET /lists/:name
// ------------------------------
func GetList(c *gin.Context) {
	l, err := apiutil.Service().GetList(c.Request.Context(), c.Param("name"))
	if err != nil {
		apiutil.RespondError(c, err, "Failed to load list")
		return
	}
	c.JSON(http.StatusOK, toListDTO(l))
}

// ------------------------------
// PUT /lists/:name
// ------------------------------
func UpdateList(c *gin.Context) {
	var req UpdateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	l, err := apiutil.Service().UpdateList(c.Request.Context(), c.Param("name"), req.Description, req.MovieTitles)
	if err != nil {
		apiutil.RespondError(c, err, "Failed to update list")
		return
	}
	c.JSON(http.StatusOK, toListDTO(l))
}

// ------------------------------
// DELETE /lists/:name
// ------------------------------
func DeleteList(c *gin.Context) {
	if err := apiutil.Service().DeleteList(c.Request.Context(), c.Param("name")); err != nil {
		apiutil.RespondError(c, err, "Failed to delete list")
		return
	}
	c.Status(http.StatusNoContent)
}
