package moviestore

import (
	"context"
	"strings"
	"time"

	"movies-api/internal/catalog"
	"movies-api/internal/domain/movies"

	"gorm.io/gorm"
)

// ResolveTitles maps each lower-cased title to the lowest-id movie carrying it.
func (s *Store) ResolveTitles(ctx context.Context, titles []string) (map[string]movies.Movie, error) {
	keys := make([]string, 0, len(titles))
	for _, t := range titles {
		keys = append(keys, strings.ToLower(t))
	}
	out := make(map[string]movies.Movie, len(keys))
	if len(keys) == 0 {
		return out, nil
	}

	var found []movies.Movie
	err := s.db.WithContext(ctx).
		Where("LOWER(title) IN ?", keys).
		Order("id ASC").
		Find(&found).Error
	if err != nil {
		return nil, err
	}
	for _, m := range found {
		key := strings.ToLower(m.Title)
		if _, ok := out[key]; !ok {
			out[key] = m
		}
	}
	return out, nil
}

func (s *Store) CreateList(ctx context.Context, l *movies.MovieList) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		items := l.Items
		if err := tx.Omit("Items").Create(l).Error; err != nil {
			return err
		}
		if err := insertItems(tx, l.ID, items); err != nil {
			return err
		}
		l.Items = items
		return nil
	})
	return translate(err)
}

func (s *Store) GetListByName(ctx context.Context, name string) (*movies.MovieList, error) {
	var l movies.MovieList
	err := s.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Preload("Items.Movie").
		First(&l, "name = ?", name).Error
	if err != nil {
		return nil, translate(err)
	}
	return &l, nil
}

func (s *Store) AllLists(ctx context.Context) ([]movies.MovieList, error) {
	var lists []movies.MovieList
	err := s.db.WithContext(ctx).
		Preload("Items").
		Order("name ASC").
		Find(&lists).Error
	if err != nil {
		return nil, err
	}
	return lists, nil
}

// UpdateList writes the description and, when replaceItems is set, swaps the
// stored items for l.Items.
func (s *Store) UpdateList(ctx context.Context, l *movies.MovieList, replaceItems bool) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&movies.MovieList{}).
			Where("id = ?", l.ID).
			Updates(map[string]interface{}{
				"description": l.Description,
				"updated_at":  time.Now(),
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		if !replaceItems {
			return nil
		}
		if err := tx.Where("list_id = ?", l.ID).Delete(&movies.MovieListItem{}).Error; err != nil {
			return err
		}
		return insertItems(tx, l.ID, l.Items)
	})
	return translate(err)
}

func (s *Store) DeleteList(ctx context.Context, id uint) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("list_id = ?", id).Delete(&movies.MovieListItem{}).Error; err != nil {
			return err
		}
		res := tx.Delete(&movies.MovieList{}, "id = ?", id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return catalog.ErrNotFound
		}
		return nil
	})
}

func insertItems(tx *gorm.DB, listID uint, items []movies.MovieListItem) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].ID = 0
		items[i].ListID = listID
	}
	return tx.Omit("Movie").Create(&items).Error
}
