package moviestore

import (
	"context"
	"errors"
	"strings"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"
	"movies-api/internal/logger"

	"gorm.io/gorm"
)

const scanBatchSize = 500

// Store is the gorm-backed record store. It works on postgres and sqlite.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

func New(db *gorm.DB, log *logger.Logger) *Store {
	if log == nil {
		log = logger.NewNop()
	}
	return &Store{db: db, log: log.With("store", "movies")}
}

func (s *Store) Get(ctx context.Context, id int64) (*movies.Movie, error) {
	var m movies.Movie
	if err := s.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &m, nil
}

func (s *Store) Create(ctx context.Context, m *movies.Movie) error {
	explicitID := m.ID != 0
	if err := s.db.WithContext(ctx).Create(m).Error; err != nil {
		return translate(err)
	}
	if explicitID {
		return s.syncSequence(ctx)
	}
	return nil
}

// Replace overwrites every column of the row except created_at.
func (s *Store) Replace(ctx context.Context, id int64, m *movies.Movie) error {
	m.ID = id
	res := s.db.WithContext(ctx).Model(m).Select("*").Omit("created_at").Updates(m)
	if res.Error != nil {
		return translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return catalog.ErrNotFound
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, id int64) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("movie_id = ?", id).Delete(&movies.MovieListItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&movies.Movie{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
}

func (s *Store) Find(ctx context.Context, c catalog.Criteria, order catalog.Order, page catalog.Page) ([]movies.Movie, int64, error) {
	var total int64
	if err := s.query(ctx, c).Count(&total).Error; err != nil {
		return nil, 0, err
	}
	out := []movies.Movie{}
	if total == 0 || int64(page.Skip) >= total || page.Limit <= 0 {
		return out, total, nil
	}
	err := applyOrder(s.query(ctx, c), order).
		Offset(page.Skip).
		Limit(page.Limit).
		Find(&out).Error
	if err != nil {
		return nil, 0, err
	}
	return out, total, nil
}

func (s *Store) Scan(ctx context.Context, c catalog.Criteria, fn func(m *movies.Movie) error) error {
	var batch []movies.Movie
	res := s.query(ctx, c).FindInBatches(&batch, scanBatchSize, func(_ *gorm.DB, _ int) error {
		for i := range batch {
			if err := fn(&batch[i]); err != nil {
				return err
			}
		}
		return nil
	})
	return res.Error
}

func (s *Store) query(ctx context.Context, c catalog.Criteria) *gorm.DB {
	q := s.db.WithContext(ctx).Model(&movies.Movie{})
	if c.TitleContains != "" {
		q = q.Where(`LOWER(title) LIKE ? ESCAPE '\'`, "%"+escapeLike(strings.ToLower(c.TitleContains))+"%")
	}
	if c.TitleEquals != "" {
		q = q.Where("LOWER(title) = ?", strings.ToLower(c.TitleEquals))
	}
	if strings.Contains(c.Genre, movies.ListDelimiter) {
		// no single element can contain the delimiter
		q = q.Where("1 = 0")
	} else if c.Genre != "" {
		// genres is stored as "A,B,C"; wrapping it in delimiters turns
		// membership into a single LIKE.
		q = q.Where(`LOWER(',' || COALESCE(genres, '') || ',') LIKE ? ESCAPE '\'`,
			"%"+movies.ListDelimiter+escapeLike(strings.ToLower(c.Genre))+movies.ListDelimiter+"%")
	}
	if c.Adult != nil {
		q = q.Where("adult = ?", *c.Adult)
	}
	if c.Status != nil {
		q = q.Where("status = ?", string(*c.Status))
	}
	if c.RequiresRating() {
		q = q.Where("vote_average IS NOT NULL")
	}
	if c.MinVoteAverage != nil {
		q = q.Where("vote_average >= ?", *c.MinVoteAverage)
	}
	if c.MaxVoteAverage != nil {
		q = q.Where("vote_average <= ?", *c.MaxVoteAverage)
	}
	return q
}

func applyOrder(q *gorm.DB, order catalog.Order) *gorm.DB {
	switch order {
	case catalog.OrderByRating:
		return q.Order("vote_average DESC").Order("id ASC")
	default:
		return q.Order("id ASC")
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// syncSequence moves the postgres id sequence past caller-supplied ids so
// auto-assigned ids never collide with imported ones.
func (s *Store) syncSequence(ctx context.Context) error {
	if s.db.Dialector.Name() != "postgres" {
		return nil
	}
	err := s.db.WithContext(ctx).
		Exec(`SELECT setval(pg_get_serial_sequence('movies', 'id'), (SELECT MAX(id) FROM movies))`).Error
	if err != nil {
		s.log.Warn("failed to sync movie id sequence", "error", err)
	}
	return nil
}

func translate(err error) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return catalog.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return catalog.ErrConflict
	default:
		return err
	}
}
