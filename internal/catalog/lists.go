package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"movies-api/internal/domain/movies"
)

type ListSummary struct {
	ID          uint
	Name        string
	Description *string
	Size        int
}

// CreateList stores a new curated list. Titles are resolved case-insensitively;
// unknown titles are skipped and duplicates keep their first position.
func (s *Service) CreateList(ctx context.Context, name string, description *string, titles []string) (*movies.MovieList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, invalid("name", "must not be empty")
	}

	_, err := s.lists.GetListByName(ctx, name)
	switch {
	case err == nil:
		return nil, fmt.Errorf("list %q: %w", name, ErrConflict)
	case !errors.Is(err, ErrNotFound):
		return nil, fmt.Errorf("create list: %w", err)
	}

	items, err := s.resolveItems(ctx, titles)
	if err != nil {
		return nil, err
	}
	l := &movies.MovieList{
		Name:        name,
		Description: normalizeDescription(description),
		Items:       items,
	}
	if err := s.lists.CreateList(ctx, l); err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	s.log.Info("list created", "list", name, "size", len(items))
	return s.GetList(ctx, name)
}

func (s *Service) GetList(ctx context.Context, name string) (*movies.MovieList, error) {
	l, err := s.lists.GetListByName(ctx, strings.TrimSpace(name))
	if err != nil {
		return nil, fmt.Errorf("list %q: %w", name, err)
	}
	return l, nil
}

// AllLists summarizes every list, ordered by name.
func (s *Service) AllLists(ctx context.Context) ([]ListSummary, error) {
	lists, err := s.lists.AllLists(ctx)
	if err != nil {
		return nil, fmt.Errorf("all lists: %w", err)
	}
	out := make([]ListSummary, 0, len(lists))
	for _, l := range lists {
		out = append(out, ListSummary{
			ID:          l.ID,
			Name:        l.Name,
			Description: l.Description,
			Size:        len(l.Items),
		})
	}
	return out, nil
}

// UpdateList changes the description and/or replaces the list contents.
func (s *Service) UpdateList(ctx context.Context, name string, description *string, titles *[]string) (*movies.MovieList, error) {
	l, err := s.GetList(ctx, name)
	if err != nil {
		return nil, err
	}
	if description != nil {
		l.Description = normalizeDescription(description)
	}
	replace := titles != nil
	if replace {
		items, err := s.resolveItems(ctx, *titles)
		if err != nil {
			return nil, err
		}
		l.Items = items
	}
	if err := s.lists.UpdateList(ctx, l, replace); err != nil {
		return nil, fmt.Errorf("update list %q: %w", l.Name, err)
	}
	return s.GetList(ctx, l.Name)
}

func (s *Service) DeleteList(ctx context.Context, name string) error {
	l, err := s.GetList(ctx, name)
	if err != nil {
		return err
	}
	if err := s.lists.DeleteList(ctx, l.ID); err != nil {
		return fmt.Errorf("delete list %q: %w", l.Name, err)
	}
	s.log.Info("list deleted", "list", l.Name)
	return nil
}

func (s *Service) resolveItems(ctx context.Context, titles []string) ([]movies.MovieListItem, error) {
	seen := make(map[string]struct{}, len(titles))
	ordered := make([]string, 0, len(titles))
	for _, t := range titles {
		key := strings.ToLower(strings.TrimSpace(t))
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		ordered = append(ordered, key)
	}
	if len(ordered) == 0 {
		return []movies.MovieListItem{}, nil
	}

	byTitle, err := s.lists.ResolveTitles(ctx, ordered)
	if err != nil {
		return nil, fmt.Errorf("resolve titles: %w", err)
	}

	items := make([]movies.MovieListItem, 0, len(ordered))
	for _, key := range ordered {
		m, ok := byTitle[key]
		if !ok {
			continue
		}
		items = append(items, movies.MovieListItem{
			MovieID:  m.ID,
			Position: len(items) + 1,
			Movie:    m,
		})
	}
	return items, nil
}

func normalizeDescription(d *string) *string {
	if d == nil {
		return nil
	}
	return movies.NormalizeText(*d)
}
