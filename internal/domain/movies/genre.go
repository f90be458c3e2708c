package movies

// Genres known to the reference dataset, in display form.
var KnownGenres = []string{
	"Action",
	"Adventure",
	"Animation",
	"Comedy",
	"Crime",
	"Documentary",
	"Drama",
	"Family",
	"Fantasy",
	"History",
	"Horror",
	"Music",
	"Mystery",
	"Romance",
	"Science Fiction",
	"TV Movie",
	"Thriller",
	"War",
	"Western",
}

// CanonicalGenre returns the display form of a known genre, matched
// case-insensitively.
func CanonicalGenre(raw string) (string, bool) {
	needle := lowerTrim(raw)
	for _, g := range KnownGenres {
		if lowerTrim(g) == needle {
			return g, true
		}
	}
	return "", false
}
