package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/snapshot"
)

// RecipeRepository is the remote boundary the library depends on. The
// concrete implementation is RecipeService; tests substitute an in-memory
// fake.
type RecipeRepository interface {
	ListRecipes(ctx context.Context) ([]model.Recipe, error)
	GetRecipe(ctx context.Context, id uuid.UUID) (*model.Recipe, error)
	InsertRecipe(ctx context.Context, recipe *model.Recipe) (uuid.UUID, error)
	UpdateRecipe(ctx context.Context, id uuid.UUID, recipe *model.Recipe) error
	DeleteRecipe(ctx context.Context, id uuid.UUID) error
}

// SnapshotStore is the advisory cache boundary. Save never reports failure;
// Load returns nil when there is nothing usable.
type SnapshotStore interface {
	Load(ctx context.Context) *snapshot.Snapshot
	Save(ctx context.Context, recipes []model.Recipe)
	IsFresh(t time.Time) bool
}
