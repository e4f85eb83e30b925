package collection

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/types"
)

func intPtr(v int) *int { return &v }

func sampleCollection() []model.Recipe {
	return []model.Recipe{
		{ID: uuid.New(), Name: "עוגת שוקולד", Ingredients: "קמח\nסוכר\nקקאו", Category: "עוגות", Rating: 5},
		{ID: uuid.New(), Name: "עוגה בחושה", Ingredients: "קמח\nסוכר\nוניל", Category: "עוגות", Rating: 3},
		{ID: uuid.New(), Name: "חומוס", Ingredients: "גרגירי חומוס\nטחינה", Category: "סלטים", Rating: 4},
		{ID: uuid.New(), Name: "מרק עדשים", Ingredients: "עדשים\nבצל", Category: "מרקים", Rating: 2, PreparationTime: intPtr(40)},
		{ID: uuid.New(), Name: "שקשוקה", Ingredients: "עגבניות\nביצים", Category: "מנות עיקריות", Rating: 5, PreparationTime: intPtr(25), DietaryType: "צמחוני"},
	}
}

func TestFilterConjunction(t *testing.T) {
	recipes := sampleCollection()

	// two recipes match the name substring, only one of them also has rating 5
	matched, summary := Filter(recipes, types.FilterState{NameSubstring: "עוגה", Rating: 5})

	assert.Len(t, matched, 1)
	assert.Equal(t, "עוגת שוקולד", matched[0].Name)
	assert.Equal(t, 1, summary.Count)
	assert.True(t, summary.FiltersActive)
}

func TestFilterEmptyStateMatchesEverything(t *testing.T) {
	recipes := sampleCollection()

	matched, summary := Filter(recipes, types.FilterState{})

	assert.Len(t, matched, len(recipes))
	assert.False(t, summary.FiltersActive)
}

func TestFilterRatingIsExactMatchNotThreshold(t *testing.T) {
	recipes := []model.Recipe{{ID: uuid.New(), Name: "מרק", Ingredients: "עדשים", Rating: 3}}

	matched, _ := Filter(recipes, types.FilterState{Rating: 5})
	assert.Empty(t, matched)

	matched, _ = Filter(recipes, types.FilterState{Rating: 3})
	assert.Len(t, matched, 1)

	matched, _ = Filter(recipes, types.FilterState{})
	assert.Len(t, matched, 1)
}

func TestFilterPrepTimeCeilingPassesMissingData(t *testing.T) {
	recipes := []model.Recipe{
		{ID: uuid.New(), Name: "ללא זמן", Ingredients: "משהו"},
		{ID: uuid.New(), Name: "מהיר", Ingredients: "משהו", PreparationTime: intPtr(15)},
		{ID: uuid.New(), Name: "ארוך", Ingredients: "משהו", PreparationTime: intPtr(90)},
	}

	matched, _ := Filter(recipes, types.FilterState{PrepTimeCeiling: 20})

	// absence never excludes; only the 90-minute recipe falls out
	assert.Len(t, matched, 2)
	assert.Equal(t, "ללא זמן", matched[0].Name)
	assert.Equal(t, "מהיר", matched[1].Name)
}

func TestFilterIngredientSubstringIsCaseInsensitive(t *testing.T) {
	recipes := []model.Recipe{{ID: uuid.New(), Name: "Pasta", Ingredients: "Tomatoes\nBasil"}}

	matched, _ := Filter(recipes, types.FilterState{IngredientSubstring: "basil"})
	assert.Len(t, matched, 1)

	matched, _ = Filter(recipes, types.FilterState{IngredientSubstring: "garlic"})
	assert.Empty(t, matched)
}

func TestFilterDietaryTypeIsExactMatch(t *testing.T) {
	recipes := sampleCollection()

	matched, _ := Filter(recipes, types.FilterState{DietaryType: "צמחוני"})

	assert.Len(t, matched, 1)
	assert.Equal(t, "שקשוקה", matched[0].Name)
}

func TestFilterExcludesBrokenRecordsDefensively(t *testing.T) {
	recipes := []model.Recipe{
		{ID: uuid.New(), Name: "", Ingredients: "משהו"},
		{ID: uuid.New(), Name: "בלי מצרכים", Ingredients: ""},
		{ID: uuid.New(), Name: "תקין", Ingredients: "משהו"},
	}

	matched, _ := Filter(recipes, types.FilterState{})

	assert.Len(t, matched, 1)
	assert.Equal(t, "תקין", matched[0].Name)
}

func TestFilterPreservesInputOrder(t *testing.T) {
	recipes := sampleCollection()

	matched, _ := Filter(recipes, types.FilterState{Category: "עוגות"})

	assert.Len(t, matched, 2)
	assert.Equal(t, "עוגת שוקולד", matched[0].Name)
	assert.Equal(t, "עוגה בחושה", matched[1].Name)
}

func TestFilterIsIdempotent(t *testing.T) {
	recipes := sampleCollection()
	state := types.FilterState{Category: "עוגות", Rating: 3}

	first, firstSummary := Filter(recipes, state)
	second, secondSummary := Filter(recipes, state)

	assert.Equal(t, first, second)
	assert.Equal(t, firstSummary, secondSummary)
}
