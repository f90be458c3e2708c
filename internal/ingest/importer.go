package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
	"movies-api/internal/logger"
	"movies-api/internal/metrics"
)

const (
	// MaxRowErrors bounds ImportResult.Errors.
	MaxRowErrors  = 100
	progressEvery = 1000
)

type RowError struct {
	Line   int    `json:"line"`
	ID     string `json:"id,omitempty"`
	Reason string `json:"reason"`
}

type ImportResult struct {
	Imported        int        `json:"imported"`
	Replaced        int        `json:"replaced"`
	Skipped         int        `json:"skipped"`
	Errors          []RowError `json:"errors"`
	ErrorsTruncated bool       `json:"errors_truncated"`
}

func (r *ImportResult) skip(line int, id string, reason string) {
	r.Skipped++
	metrics.ImportRowsTotal.WithLabelValues(metrics.ImportSkipped).Inc()
	if len(r.Errors) >= MaxRowErrors {
		r.ErrorsTruncated = true
		return
	}
	r.Errors = append(r.Errors, RowError{Line: line, ID: id, Reason: reason})
}

// Importer upserts rows into a Store one record at a time.
type Importer struct {
	store catalog.Store
	log   *logger.Logger
}

func NewImporter(store catalog.Store, log *logger.Logger) *Importer {
	if log == nil {
		log = logger.NewNop()
	}
	return &Importer{store: store, log: log.With("component", "importer")}
}

// ImportCSV runs ImportRows over a CSV stream.
func (im *Importer) ImportCSV(ctx context.Context, r io.Reader) (ImportResult, error) {
	src, err := NewCSVSource(r)
	if err != nil {
		return ImportResult{Errors: []RowError{}}, err
	}
	return im.ImportRows(ctx, src)
}

// ImportRows drains src. Rows that fail normalization are counted as skipped
// and the import goes on. A source or store failure, or ctx being done, stops
// the import; the partial result is returned either way.
func (im *Importer) ImportRows(ctx context.Context, src RowSource) (ImportResult, error) {
	res := ImportResult{Errors: []RowError{}}
	start := time.Now()
	processed := 0

	for {
		if err := ctx.Err(); err != nil {
			im.log.Warn("import aborted", "processed", processed, "error", err)
			return res, err
		}

		row, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		processed++
		if err != nil {
			var malformed *MalformedRowError
			if errors.As(err, &malformed) {
				res.skip(malformed.Line, "", malformed.Err.Error())
				continue
			}
			return res, fmt.Errorf("read row %d: %w", processed, err)
		}

		m, err := normalizeRow(row)
		if err != nil {
			res.skip(row.Line, row.Get("id"), err.Error())
			continue
		}

		replaced, err := im.upsert(ctx, m)
		if err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return res, ctxErr
			}
			im.log.Error("import aborted", "line", row.Line, "movie_id", m.ID, "error", err)
			return res, fmt.Errorf("store row %d: %w", row.Line, err)
		}

		res.Imported++
		if replaced {
			res.Replaced++
			metrics.ImportRowsTotal.WithLabelValues(metrics.ImportReplaced).Inc()
		} else {
			metrics.ImportRowsTotal.WithLabelValues(metrics.ImportInserted).Inc()
		}

		if processed%progressEvery == 0 {
			im.log.Info("import progress", "processed", processed, "imported", res.Imported, "skipped", res.Skipped)
		}
	}

	im.log.Info("import finished",
		"imported", res.Imported,
		"replaced", res.Replaced,
		"skipped", res.Skipped,
		"duration", time.Since(start).String(),
	)
	return res, nil
}

// upsert replaces an existing record wholesale or creates it.
func (im *Importer) upsert(ctx context.Context, m *movies.Movie) (bool, error) {
	_, err := im.store.Get(ctx, m.ID)
	switch {
	case err == nil:
		return true, im.store.Replace(ctx, m.ID, m)
	case errors.Is(err, catalog.ErrNotFound):
		return false, im.store.Create(ctx, m)
	default:
		return false, err
	}
}
