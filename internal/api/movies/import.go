package movies

import (
	"errors"
	"io"
	"net/http"
	"strings"

	"movies-api/config"
	"movies-api/database"
	"movies-api/internal/infra/moviestore"
	"movies-api/internal/ingest"
	"movies-api/internal/logger"

	"github.com/gin-gonic/gin"
)

// ------------------------------
// POST /movies/import  (text/csv body or multipart field "file")
// ------------------------------
func ImportMovies(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, config.IMPORT_MAX_BYTES)

	body, closeFn, err := csvBody(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	defer closeFn()

	im := ingest.NewImporter(moviestore.New(database.DB, logger.L()), logger.L())
	res, err := im.ImportCSV(c.Request.Context(), body)
	if err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": "Import body too large", "result": res})
		case errors.Is(err, ingest.ErrMissingColumn):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		default:
			logger.L().Error("import failed", "error", err, "imported", res.Imported)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Import failed", "result": res})
		}
		return
	}
	c.JSON(http.StatusOK, res)
}

func csvBody(c *gin.Context) (io.Reader, func(), error) {
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("file")
		if err != nil {
			return nil, nil, errors.New("multipart upload requires a \"file\" field")
		}
		f, err := fh.Open()
		if err != nil {
			return nil, nil, err
		}
		return f, func() { _ = f.Close() }, nil
	}
	return c.Request.Body, func() {}, nil
}
