package collection

import (
	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/model"
)

// Reconcile merges a freshly fetched server collection with the current
// in-memory one. A full reload and a single insert are not transactionally
// isolated, so a record the user just saved may be missing from the server
// result; the merge must never drop it.
//
// The server copy wins for every id the server reports. Records the server
// does not know about — id unset, or id set but absent from the result — are
// appended after the server records in their current order. Matching is by
// id only: two recipes with identical content are distinct entities and are
// never collapsed.
//
// Callers invoke Reconcile only when the fetch succeeded. A failed fetch
// leaves the current collection untouched.
func Reconcile(current, server []model.Recipe) []model.Recipe {
	known := make(map[uuid.UUID]struct{}, len(server))
	for _, r := range server {
		if r.ID != uuid.Nil {
			known[r.ID] = struct{}{}
		}
	}

	merged := make([]model.Recipe, 0, len(server)+len(current))
	merged = append(merged, server...)
	for _, r := range current {
		if r.ID == uuid.Nil {
			merged = append(merged, r)
			continue
		}
		if _, ok := known[r.ID]; !ok {
			merged = append(merged, r)
		}
	}
	return merged
}
