package movies

import (
	"database/sql/driver"
	"fmt"
	"strings"
)

// ListDelimiter separates elements of a List in its stored form.
const ListDelimiter = ","

// List is an ordered multi-value field persisted in a single text column.
// The delimiter never leaks past Scan/Value.
type List []string

func (l List) GormDataType() string {
	return "text"
}

func (l List) Value() (driver.Value, error) {
	if len(l) == 0 {
		return nil, nil
	}
	return strings.Join(l, ListDelimiter), nil
}

func (l *List) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*l = List{}
	case string:
		*l = NormalizeDelimitedList(v, ListDelimiter)
	case []byte:
		*l = NormalizeDelimitedList(string(v), ListDelimiter)
	default:
		return fmt.Errorf("movies.List: cannot scan %T", src)
	}
	return nil
}

// Contains reports case-insensitive membership.
func (l List) Contains(s string) bool {
	needle := lowerTrim(s)
	for _, e := range l {
		if strings.ToLower(e) == needle {
			return true
		}
	}
	return false
}

// CleanList normalizes caller-supplied elements, re-splitting any element
// that itself carries the delimiter.
func CleanList(in []string) List {
	return NormalizeDelimitedList(strings.Join(in, ListDelimiter), ListDelimiter)
}
