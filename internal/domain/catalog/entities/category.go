package entities

// Category is a browsing category: a catalog genre or one of the synthetic listings.
// Values are decoded once at the messaging boundary; the rest of the code never inspects raw labels.
type Category string

// Genre categories. The value is the label shown on the genre keyboard.
const (
	CategoryAction         Category = "Боевик 🎬"
	CategoryAdventure      Category = "Приключения 🏝️"
	CategoryAnimation      Category = "Анимация 🎨"
	CategoryComedy         Category = "Комедия 😂"
	CategoryCrime          Category = "Криминал 🚔"
	CategoryDocumentary    Category = "Документальный 🎥"
	CategoryDrama          Category = "Драма 🎭"
	CategoryFantasy        Category = "Фэнтези 🧙‍♂️"
	CategoryHorror         Category = "Ужасы 👻"
	CategoryMystery        Category = "Детектив 🔍"
	CategoryRomance        Category = "Мелодрама 💕"
	CategoryScienceFiction Category = "Фантастика 🚀"
	CategoryThriller       Category = "Триллер 😱"
	CategoryWestern        Category = "Вестерн 🤠"
)

// Synthetic categories backed by dedicated catalog listings.
const (
	CategoryTopRated    Category = "top-rated"
	CategoryTrending    Category = "trending"
	CategoryNewReleases Category = "new-releases"
)

var genreIDs = map[Category]int{
	CategoryAction:         28,
	CategoryAdventure:      12,
	CategoryAnimation:      16,
	CategoryComedy:         35,
	CategoryCrime:          80,
	CategoryDocumentary:    99,
	CategoryDrama:          18,
	CategoryFantasy:        14,
	CategoryHorror:         27,
	CategoryMystery:        9648,
	CategoryRomance:        10749,
	CategoryScienceFiction: 878,
	CategoryThriller:       53,
	CategoryWestern:        37,
}

// genreOrder is the keyboard order
var genreOrder = []Category{
	CategoryAction,
	CategoryAdventure,
	CategoryAnimation,
	CategoryComedy,
	CategoryCrime,
	CategoryDocumentary,
	CategoryDrama,
	CategoryFantasy,
	CategoryHorror,
	CategoryMystery,
	CategoryRomance,
	CategoryScienceFiction,
	CategoryThriller,
	CategoryWestern,
}

// Genres returns genre categories in keyboard order
func Genres() []Category {
	out := make([]Category, len(genreOrder))
	copy(out, genreOrder)
	return out
}

// Valid reports whether c belongs to the supported set
func (c Category) Valid() bool {
	switch c {
	case CategoryTopRated, CategoryTrending, CategoryNewReleases:
		return true
	}
	_, ok := genreIDs[c]
	return ok
}

// GenreID returns the catalog genre id for genre categories
func (c Category) GenreID() (int, bool) {
	id, ok := genreIDs[c]
	return id, ok
}

// IsGenre reports whether c is a genre category
func (c Category) IsGenre() bool {
	_, ok := genreIDs[c]
	return ok
}

// Paginated reports whether the catalog listing behind c supports paging.
// The trending listing is a single weekly page.
func (c Category) Paginated() bool {
	return c.Valid() && c != CategoryTrending
}

// DisplayCount is the number of items shown per batch for browsing categories
const DisplayCount = 3

// SearchDisplayCount is the number of items shown per batch for keyword search
const SearchDisplayCount = 5
