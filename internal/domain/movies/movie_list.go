package movies

import "time"

// MovieList is a curated, uniquely named list of movies.
type MovieList struct {
	ID          uint    `gorm:"primaryKey" json:"id"`
	Name        string  `gorm:"size:255;not null;uniqueIndex" json:"name"`
	Description *string `gorm:"size:500" json:"description,omitempty"`

	Items []MovieListItem `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE;" json:"items,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type MovieListItem struct {
	ID       uint  `gorm:"primaryKey" json:"-"`
	ListID   uint  `gorm:"not null;index:idx_movie_list_items_list_pos,priority:1" json:"-"`
	MovieID  int64 `gorm:"not null;index" json:"movie_id"`
	Position int   `gorm:"not null;index:idx_movie_list_items_list_pos,priority:2" json:"position"`

	Movie Movie `gorm:"foreignKey:MovieID;constraint:OnDelete:CASCADE;" json:"movie"`
}

// Movies returns the list's movies in position order (Items are loaded ordered).
func (l *MovieList) Movies() []Movie {
	out := make([]Movie, 0, len(l.Items))
	for _, it := range l.Items {
		out = append(out, it.Movie)
	}
	return out
}
