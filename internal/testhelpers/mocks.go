package testhelpers

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/service"
	"github.com/yakov100/recipe-book-sub000/internal/snapshot"
)

// FakeRecipeRepository is an in-memory stand-in for the remote repository.
// It preserves insertion order and can be told to fail specific calls.
type FakeRecipeRepository struct {
	mu      sync.Mutex
	recipes []model.Recipe

	ListErr   error
	GetErr    error
	InsertErr error
	UpdateErr error
	DeleteErr error
}

func NewFakeRecipeRepository(initial ...model.Recipe) *FakeRecipeRepository {
	repo := &FakeRecipeRepository{}
	repo.recipes = append(repo.recipes, initial...)
	return repo
}

func (f *FakeRecipeRepository) ListRecipes(ctx context.Context) ([]model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.ListErr != nil {
		return nil, f.ListErr
	}
	out := make([]model.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out, nil
}

func (f *FakeRecipeRepository) GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.GetErr != nil {
		return nil, f.GetErr
	}
	for _, r := range f.recipes {
		if r.ID == id {
			out := r
			return &out, nil
		}
	}
	return nil, service.ErrNotFound
}

func (f *FakeRecipeRepository) InsertRecipe(ctx context.Context, recipe *model.Recipe) (uuid.UUID, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.InsertErr != nil {
		return uuid.Nil, f.InsertErr
	}
	if recipe.ID == uuid.Nil {
		recipe.ID = uuid.New()
	}
	f.recipes = append(f.recipes, *recipe)
	return recipe.ID, nil
}

func (f *FakeRecipeRepository) UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.UpdateErr != nil {
		return f.UpdateErr
	}
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			recipe.ID = id
			f.recipes[i] = *recipe
			return nil
		}
	}
	return service.ErrNotFound
}

func (f *FakeRecipeRepository) DeleteRecipe(ctx context.Context, id uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.DeleteErr != nil {
		return f.DeleteErr
	}
	for i := range f.recipes {
		if f.recipes[i].ID == id {
			f.recipes = append(f.recipes[:i], f.recipes[i+1:]...)
			return nil
		}
	}
	return service.ErrNotFound
}

// Stored returns a copy of the repository contents.
func (f *FakeRecipeRepository) Stored() []model.Recipe {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Recipe, len(f.recipes))
	copy(out, f.recipes)
	return out
}

// MemorySnapshots is an in-memory snapshot store for tests. Fresh controls
// what IsFresh reports.
type MemorySnapshots struct {
	mu    sync.Mutex
	snap  *snapshot.Snapshot
	Fresh bool

	SaveCalls int
}

func NewMemorySnapshots() *MemorySnapshots {
	return &MemorySnapshots{Fresh: true}
}

// Seed pre-populates the store as if a previous session had saved.
func (m *MemorySnapshots) Seed(recipes []model.Recipe, at time.Time) {
	m.mu.Lock()
	defer m.mu.Unlock()
	entries := make([]snapshot.Entry, len(recipes))
	for i, r := range recipes {
		entries[i] = snapshot.Reduce(r)
	}
	m.snap = &snapshot.Snapshot{Recipes: entries, Timestamp: at}
}

func (m *MemorySnapshots) Load(ctx context.Context) *snapshot.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

func (m *MemorySnapshots) Save(ctx context.Context, recipes []model.Recipe) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SaveCalls++
	entries := make([]snapshot.Entry, len(recipes))
	for i, r := range recipes {
		entries[i] = snapshot.Reduce(r)
	}
	m.snap = &snapshot.Snapshot{Recipes: entries, Timestamp: time.Now()}
}

func (m *MemorySnapshots) IsFresh(t time.Time) bool {
	return m.Fresh
}

// Last returns the most recently saved snapshot.
func (m *MemorySnapshots) Last() *snapshot.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.snap
}

var _ service.RecipeRepository = (*FakeRecipeRepository)(nil)
var _ service.SnapshotStore = (*MemorySnapshots)(nil)
