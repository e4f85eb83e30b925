package service

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/collection"
	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/types"
)

// LibraryService owns the session's recipe collection. It reconciles the
// in-memory collection against the repository, keeps the snapshot cache
// advised, and answers filtered views.
//
// Writes confirm remotely before mutating memory: a failed round-trip leaves
// the collection exactly as it was.
type LibraryService struct {
	repo      RecipeRepository
	snapshots SnapshotStore
	store     *collection.Store
}

// ImportResult reports what a bulk import did.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// NewLibraryService creates a new LibraryService instance.
func NewLibraryService(repo RecipeRepository, snapshots SnapshotStore, store *collection.Store) *LibraryService {
	return &LibraryService{
		repo:      repo,
		snapshots: snapshots,
		store:     store,
	}
}

// Store exposes the underlying collection store for subscribers.
func (s *LibraryService) Store() *collection.Store {
	return s.store
}

// Load runs the two-phase load. Phase one publishes the last snapshot, so
// the presentation layer can paint immediately, stale or not. Phase two
// fetches the authoritative collection, reconciles it with whatever is in
// memory (preserving records the server does not know about yet), swaps the
// result in atomically and refreshes the snapshot.
//
// When the fetch fails, the published collection stays untouched and the
// error is surfaced; there is no partial merge and no retry.
func (s *LibraryService) Load(ctx context.Context) error {
	if snap := s.snapshots.Load(ctx); snap != nil {
		s.store.Replace(snap.Models())
		if !s.snapshots.IsFresh(snap.Timestamp) {
			log.Printf("[Library] painted %d recipes from a stale snapshot", len(snap.Recipes))
		}
	}

	server, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return fmt.Errorf("failed to load recipes: %w", err)
	}

	merged := collection.Reconcile(s.store.Get(), server)
	s.store.Replace(merged)
	s.snapshots.Save(ctx, merged)
	return nil
}

// Filtered returns the current collection narrowed by the filter state, with
// the view summary for the presentation layer.
func (s *LibraryService) Filtered(state types.FilterState) ([]model.Recipe, types.ViewSummary) {
	return collection.Filter(s.store.Get(), state)
}

// Get answers a deep link to a single recipe: memory first, repository
// fallback, no full collection load required.
func (s *LibraryService) Get(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	if r, ok := s.store.Find(id); ok {
		return &r, nil
	}
	return s.repo.GetRecipe(ctx, id)
}

// Create validates and persists a new recipe, then appends it to the
// collection.
func (s *LibraryService) Create(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	id, err := s.repo.InsertRecipe(ctx, recipe)
	if err != nil {
		return nil, err
	}
	recipe.ID = id

	s.store.Replace(append(s.store.Get(), *recipe))
	s.snapshots.Save(ctx, s.store.Get())
	return recipe, nil
}

// Update validates and persists an edited recipe, then swaps it into the
// collection in place.
func (s *LibraryService) Update(ctx context.Context, id uuid.UUID, recipe *model.Recipe) (*model.Recipe, error) {
	recipe.Normalize()
	if err := recipe.Validate(); err != nil {
		return nil, err
	}

	if err := s.repo.UpdateRecipe(ctx, id, recipe); err != nil {
		return nil, err
	}
	recipe.ID = id

	s.replaceInMemory(*recipe)
	s.snapshots.Save(ctx, s.store.Get())
	return recipe, nil
}

// Delete removes a recipe remotely, then from the collection.
func (s *LibraryService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.DeleteRecipe(ctx, id); err != nil {
		return err
	}

	current := s.store.Get()
	next := make([]model.Recipe, 0, len(current))
	for _, r := range current {
		if r.ID != id {
			next = append(next, r)
		}
	}
	s.store.Replace(next)
	s.snapshots.Save(ctx, next)
	return nil
}

// Rate sets a recipe's rating.
func (s *LibraryService) Rate(ctx context.Context, id uuid.UUID, rating int) (*model.Recipe, error) {
	if rating < 0 || rating > 5 {
		return nil, fmt.Errorf("%w: rating must be between 0 and 5", model.ErrInvalidRecipe)
	}

	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.Rating = rating
	return s.Update(ctx, id, recipe)
}

// SetImage records a newly uploaded image for a recipe. The stored path
// supersedes any legacy inline image data.
func (s *LibraryService) SetImage(ctx context.Context, id uuid.UUID, imagePath string) (*model.Recipe, error) {
	recipe, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	recipe.ImagePath = imagePath
	recipe.Image = ""
	return s.Update(ctx, id, recipe)
}

// Import adds a batch of records, skipping exact duplicates (same name,
// ingredients and instructions as an existing record), then reconciles
// against a full reload so the collection reflects what the repository
// actually holds.
func (s *LibraryService) Import(ctx context.Context, incoming []model.Recipe) (*ImportResult, error) {
	fresh, skipped := collection.Dedupe(s.store.Get(), incoming)

	imported := 0
	for i := range fresh {
		fresh[i].ID = uuid.Nil
		fresh[i].Normalize()
		if err := fresh[i].Validate(); err != nil {
			return nil, fmt.Errorf("record %d: %w", i+1, err)
		}
		if _, err := s.repo.InsertRecipe(ctx, &fresh[i]); err != nil {
			return nil, fmt.Errorf("imported %d of %d records: %w", imported, len(fresh), err)
		}
		imported++
	}

	server, err := s.repo.ListRecipes(ctx)
	if err != nil {
		return nil, fmt.Errorf("import succeeded but reload failed: %w", err)
	}
	merged := collection.Reconcile(s.store.Get(), server)
	s.store.Replace(merged)
	s.snapshots.Save(ctx, merged)

	return &ImportResult{Imported: imported, Skipped: len(skipped)}, nil
}

func (s *LibraryService) replaceInMemory(recipe model.Recipe) {
	current := s.store.Get()
	replaced := false
	for i := range current {
		if current[i].ID == recipe.ID {
			current[i] = recipe
			replaced = true
			break
		}
	}
	if !replaced {
		current = append(current, recipe)
	}
	s.store.Replace(current)
}
