package collection

import "github.com/yakov100/recipe-book-sub000/internal/model"

// Dedupe partitions incoming records into those to import and those skipped
// as duplicates of the current collection. A record is a duplicate only when
// its name, ingredients and instructions are all exactly equal to an existing
// record; differing in any one of the three makes it new. Near-duplicates are
// deliberately allowed through.
//
// Category and source do not participate in the check, so two recipes with
// identical text filed under different categories count as duplicates.
func Dedupe(current, incoming []model.Recipe) (fresh, skipped []model.Recipe) {
	for _, candidate := range incoming {
		if isDuplicate(current, candidate) || isDuplicate(fresh, candidate) {
			skipped = append(skipped, candidate)
			continue
		}
		fresh = append(fresh, candidate)
	}
	return fresh, skipped
}

func isDuplicate(existing []model.Recipe, candidate model.Recipe) bool {
	for _, r := range existing {
		if r.Name == candidate.Name &&
			r.Ingredients == candidate.Ingredients &&
			r.Instructions == candidate.Instructions {
			return true
		}
	}
	return false
}
