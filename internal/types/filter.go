package types

// FilterState holds the user's current search predicates. Zero values mean
// "not filtering on this field". It is transient UI state and is never
// persisted.
type FilterState struct {
	NameSubstring       string `form:"name" json:"name"`
	IngredientSubstring string `form:"ingredient" json:"ingredient"`
	Category            string `form:"category" json:"category"`
	Rating              int    `form:"rating" json:"rating"`
	PrepTimeCeiling     int    `form:"max_prep_time" json:"max_prep_time"`
	DietaryType         string `form:"dietary_type" json:"dietary_type"`
}

// Active reports whether any predicate is set, which is exactly when the
// presentation layer shows its clear-filters affordance.
func (f FilterState) Active() bool {
	return f.NameSubstring != "" ||
		f.IngredientSubstring != "" ||
		f.Category != "" ||
		f.Rating != 0 ||
		f.PrepTimeCeiling != 0 ||
		f.DietaryType != ""
}

// ViewSummary is republished alongside every filtered view so the visible
// count and the clear-filters affordance stay consistent with the rows.
type ViewSummary struct {
	Count         int  `json:"count"`
	FiltersActive bool `json:"filters_active"`
}
