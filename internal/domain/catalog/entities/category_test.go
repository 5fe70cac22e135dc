package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategory_Valid(t *testing.T) {
	for _, c := range Genres() {
		assert.True(t, c.Valid(), c)
		assert.True(t, c.IsGenre(), c)
		assert.True(t, c.Paginated(), c)
	}

	for _, c := range []Category{CategoryTopRated, CategoryTrending, CategoryNewReleases} {
		assert.True(t, c.Valid(), c)
		assert.False(t, c.IsGenre(), c)
	}

	assert.False(t, Category("").Valid())
	assert.False(t, Category("Мюзикл 🎵").Valid())
	assert.False(t, Category("ужасы 👻").Valid(), "labels are matched exactly")
}

func TestCategory_Paginated(t *testing.T) {
	assert.False(t, CategoryTrending.Paginated())
	assert.True(t, CategoryTopRated.Paginated())
	assert.True(t, CategoryNewReleases.Paginated())
	assert.False(t, Category("unknown").Paginated())
}

func TestCategory_GenreID(t *testing.T) {
	id, ok := CategoryHorror.GenreID()
	require.True(t, ok)
	assert.Equal(t, 27, id)

	id, ok = CategoryScienceFiction.GenreID()
	require.True(t, ok)
	assert.Equal(t, 878, id)

	_, ok = CategoryTrending.GenreID()
	assert.False(t, ok)
}

func TestGenres_ReturnsCopy(t *testing.T) {
	genres := Genres()
	require.Len(t, genres, 14)
	assert.Equal(t, CategoryAction, genres[0])

	genres[0] = "mutated"
	assert.Equal(t, CategoryAction, Genres()[0])
}

func TestResultPage_Take(t *testing.T) {
	page := &ResultPage{Items: []Movie{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}}

	assert.Len(t, page.Take(DisplayCount), 3)
	assert.Len(t, page.Take(SearchDisplayCount), 4)
	assert.False(t, page.Empty())

	var nilPage *ResultPage
	assert.True(t, nilPage.Empty())
	assert.Nil(t, nilPage.Take(3))
}
