package collection

import (
	"strings"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/types"
)

// Filter returns the ordered subsequence of recipes matching every predicate
// in state, together with the summary the presentation layer renders next to
// the rows. It is pure: same inputs, same view, no sorting, ever.
func Filter(recipes []model.Recipe, state types.FilterState) ([]model.Recipe, types.ViewSummary) {
	matched := make([]model.Recipe, 0, len(recipes))
	for _, r := range recipes {
		if Matches(r, state) {
			matched = append(matched, r)
		}
	}
	return matched, types.ViewSummary{
		Count:         len(matched),
		FiltersActive: state.Active(),
	}
}

// Matches reports whether a single recipe passes every set predicate
// (conjunction). A record missing its required name or ingredients is
// excluded rather than matched or rejected with an error.
func Matches(r model.Recipe, state types.FilterState) bool {
	if r.Name == "" || r.Ingredients == "" {
		return false
	}
	if !containsFold(r.Name, state.NameSubstring) {
		return false
	}
	if !containsFold(r.Ingredients, state.IngredientSubstring) {
		return false
	}
	if state.Category != "" && r.Category != state.Category {
		return false
	}
	// Exact match, not "at least N stars".
	if state.Rating != 0 && r.Rating != state.Rating {
		return false
	}
	// A recipe without a preparation time always passes the ceiling.
	if state.PrepTimeCeiling != 0 && r.PreparationTime != nil && *r.PreparationTime > state.PrepTimeCeiling {
		return false
	}
	if state.DietaryType != "" && r.DietaryType != state.DietaryType {
		return false
	}
	return true
}

// containsFold reports whether s contains substr case-insensitively. The
// empty substring matches everything.
func containsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
