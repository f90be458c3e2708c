package ingest

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
)

// Row is one record of a tabular source keyed by lower-cased column name.
type Row struct {
	Line   int
	Fields map[string]string
}

// Get returns the raw value of column, or "" when the row lacks it.
func (r Row) Get(column string) string {
	return r.Fields[column]
}

// RowSource yields rows until it returns io.EOF.
// A *MalformedRowError affects only that row; any other error ends the import.
type RowSource interface {
	Next() (Row, error)
}

var ErrMissingColumn = errors.New("missing required column")

// MalformedRowError reports a record the source could not decode.
type MalformedRowError struct {
	Line int
	Err  error
}

func (e *MalformedRowError) Error() string {
	return fmt.Sprintf("line %d: %v", e.Line, e.Err)
}

func (e *MalformedRowError) Unwrap() error { return e.Err }

// CSVSource reads a header line followed by comma separated records.
type CSVSource struct {
	r      *csv.Reader
	header []string
}

// NewCSVSource consumes the header. The header must name at least id and title.
func NewCSVSource(r io.Reader) (*CSVSource, error) {
	cr := csv.NewReader(r)
	cr.LazyQuotes = true
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("csv source is empty: %w", ErrMissingColumn)
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	cols := make([]string, len(header))
	for i, h := range header {
		if i == 0 {
			h = strings.TrimPrefix(h, "\ufeff")
		}
		cols[i] = strings.ToLower(strings.TrimSpace(h))
	}
	for _, required := range []string{"id", "title"} {
		if !contains(cols, required) {
			return nil, fmt.Errorf("csv header lacks %q: %w", required, ErrMissingColumn)
		}
	}
	return &CSVSource{r: cr, header: cols}, nil
}

func (s *CSVSource) Next() (Row, error) {
	rec, err := s.r.Read()
	if err != nil {
		var pe *csv.ParseError
		if errors.As(err, &pe) {
			return Row{}, &MalformedRowError{Line: pe.StartLine, Err: pe.Err}
		}
		return Row{}, err
	}

	line, _ := s.r.FieldPos(0)
	fields := make(map[string]string, len(s.header))
	for i, col := range s.header {
		if i < len(rec) {
			fields[col] = rec[i]
		}
	}
	return Row{Line: line, Fields: fields}, nil
}

func contains(cols []string, want string) bool {
	for _, c := range cols {
		if c == want {
			return true
		}
	}
	return false
}
