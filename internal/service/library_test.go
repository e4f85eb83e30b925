package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yakov100/recipe-book-sub000/internal/collection"
	"github.com/yakov100/recipe-book-sub000/internal/model"
	"github.com/yakov100/recipe-book-sub000/internal/service"
	"github.com/yakov100/recipe-book-sub000/internal/testhelpers"
	"github.com/yakov100/recipe-book-sub000/internal/types"
)

func newLibrary(repo *testhelpers.FakeRecipeRepository, snaps *testhelpers.MemorySnapshots) *service.LibraryService {
	return service.NewLibraryService(repo, snaps, collection.NewStore())
}

func TestLoadTwoPhaseEndToEnd(t *testing.T) {
	ctx := context.Background()
	hummusID := uuid.New()
	soupID := uuid.New()

	// stale local snapshot: one recipe, rating 4
	snaps := testhelpers.NewMemorySnapshots()
	snaps.Seed([]model.Recipe{
		{ID: hummusID, Name: "חומוס", Ingredients: "גרגירי חומוס", Rating: 4, Category: "סלטים"},
	}, time.Now().Add(-time.Hour))
	snaps.Fresh = false

	// server meanwhile has the rating bumped and a second recipe
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: hummusID, Name: "חומוס", Ingredients: "גרגירי חומוס", Rating: 5, Category: "סלטים"},
		model.Recipe{ID: soupID, Name: "מרק עדשים", Ingredients: "עדשים", Rating: 2, Category: "מרקים"},
	)

	library := newLibrary(repo, snaps)

	var phases [][]model.Recipe
	library.Store().Subscribe(func(recipes []model.Recipe) {
		phases = append(phases, recipes)
	})

	require.NoError(t, library.Load(ctx))

	// phase one painted the snapshot, phase two the reconciled server result
	require.Len(t, phases, 2)
	assert.Len(t, phases[0], 1)
	assert.Equal(t, 4, phases[0][0].Rating)
	assert.Len(t, phases[1], 2)
	assert.Equal(t, 5, phases[1][0].Rating)

	// the snapshot was refreshed from the merged collection
	assert.Equal(t, 1, snaps.SaveCalls)
	assert.Len(t, snaps.Last().Recipes, 2)

	// filtering the loaded collection by category
	matched, summary := library.Filtered(types.FilterState{Category: "מרקים"})
	require.Len(t, matched, 1)
	assert.Equal(t, soupID, matched[0].ID)
	assert.True(t, summary.FiltersActive)
}

func TestLoadPreservesUnsavedRecordAcrossReload(t *testing.T) {
	ctx := context.Background()
	savedID := uuid.New()

	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: savedID, Name: "חומוס", Ingredients: "גרגירי חומוס"},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())

	// a record sits in memory that the server does not know about
	library.Store().Replace([]model.Recipe{
		{ID: savedID, Name: "חומוס", Ingredients: "גרגירי חומוס"},
		{Name: "סלט קצוץ", Ingredients: "עגבניות"},
	})

	require.NoError(t, library.Load(ctx))

	got := library.Store().Get()
	require.Len(t, got, 2)
	assert.Equal(t, savedID, got[0].ID)
	assert.Equal(t, "סלט קצוץ", got[1].Name)
}

func TestLoadFetchFailureKeepsCollectionUntouched(t *testing.T) {
	ctx := context.Background()

	snaps := testhelpers.NewMemorySnapshots()
	snaps.Seed([]model.Recipe{
		{ID: uuid.New(), Name: "חומוס", Ingredients: "גרגירי חומוס"},
	}, time.Now())

	repo := testhelpers.NewFakeRecipeRepository()
	repo.ListErr = errors.New("connection refused")

	library := newLibrary(repo, snaps)
	err := library.Load(ctx)

	assert.Error(t, err)
	// the snapshot paint survives, no merge ran, nothing was re-saved
	assert.Equal(t, 1, library.Store().Len())
	assert.Equal(t, 0, snaps.SaveCalls)
}

func TestCreateConfirmsBeforeMutating(t *testing.T) {
	ctx := context.Background()
	snaps := testhelpers.NewMemorySnapshots()
	repo := testhelpers.NewFakeRecipeRepository()
	library := newLibrary(repo, snaps)

	repo.InsertErr = errors.New("boom")
	_, err := library.Create(ctx, &model.Recipe{Name: "חומוס", Ingredients: "גרגירי חומוס"})
	assert.Error(t, err)
	assert.Zero(t, library.Store().Len())
	assert.Zero(t, snaps.SaveCalls)

	repo.InsertErr = nil
	created, err := library.Create(ctx, &model.Recipe{Name: "חומוס", Ingredients: "גרגירי חומוס"})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, model.DefaultDifficulty, created.Difficulty)
	assert.Equal(t, 1, library.Store().Len())
	assert.Equal(t, 1, snaps.SaveCalls)
}

func TestCreateRejectsInvalidRecipeBeforeRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.NewFakeRecipeRepository()
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())

	_, err := library.Create(ctx, &model.Recipe{Name: "", Ingredients: "משהו"})
	assert.ErrorIs(t, err, model.ErrInvalidRecipe)

	_, err = library.Create(ctx, &model.Recipe{Name: "שם", Ingredients: ""})
	assert.ErrorIs(t, err, model.ErrInvalidRecipe)

	_, err = library.Create(ctx, &model.Recipe{Name: "שם", Ingredients: "משהו", Rating: 9})
	assert.ErrorIs(t, err, model.ErrInvalidRecipe)

	assert.Empty(t, repo.Stored())
}

func TestUpdateSwapsRecordInPlace(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס", Rating: 3},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())
	require.NoError(t, library.Load(ctx))

	updated, err := library.Update(ctx, id, &model.Recipe{Name: "חומוס ביתי", Ingredients: "גרגירי חומוס", Rating: 4})
	require.NoError(t, err)
	assert.Equal(t, id, updated.ID)

	got := library.Store().Get()
	require.Len(t, got, 1)
	assert.Equal(t, "חומוס ביתי", got[0].Name)
	assert.Equal(t, "חומוס ביתי", repo.Stored()[0].Name)
}

func TestUpdateFailureLeavesMemoryAlone(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס"},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())
	require.NoError(t, library.Load(ctx))

	repo.UpdateErr = errors.New("boom")
	_, err := library.Update(ctx, id, &model.Recipe{Name: "אחר", Ingredients: "משהו"})
	assert.Error(t, err)
	assert.Equal(t, "חומוס", library.Store().Get()[0].Name)
}

func TestDeleteRemovesAfterRemoteConfirms(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס"},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())
	require.NoError(t, library.Load(ctx))

	repo.DeleteErr = errors.New("boom")
	assert.Error(t, library.Delete(ctx, id))
	assert.Equal(t, 1, library.Store().Len())

	repo.DeleteErr = nil
	require.NoError(t, library.Delete(ctx, id))
	assert.Zero(t, library.Store().Len())
	assert.Empty(t, repo.Stored())
}

func TestRateIsValidatedAndPersisted(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס", Rating: 2},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())
	require.NoError(t, library.Load(ctx))

	_, err := library.Rate(ctx, id, 6)
	assert.ErrorIs(t, err, model.ErrInvalidRecipe)

	rated, err := library.Rate(ctx, id, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, rated.Rating)
	assert.Equal(t, 5, repo.Stored()[0].Rating)
}

func TestGetAnswersDeepLinkWithoutFullLoad(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס"},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())

	// nothing loaded into memory; the repository answers directly
	recipe, err := library.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "חומוס", recipe.Name)

	_, err = library.Get(ctx, uuid.New())
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestSetImageSupersedesLegacyInlineData(t *testing.T) {
	ctx := context.Background()
	id := uuid.New()
	repo := testhelpers.NewFakeRecipeRepository(
		model.Recipe{ID: id, Name: "חומוס", Ingredients: "גרגירי חומוס", Image: "bGVnYWN5"},
	)
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())
	require.NoError(t, library.Load(ctx))

	updated, err := library.SetImage(ctx, id, "recipe-images/new.jpg")
	require.NoError(t, err)
	assert.Equal(t, "recipe-images/new.jpg", updated.ImagePath)
	assert.Empty(t, updated.Image)
}

func TestImportSkipsDuplicatesAndReconciles(t *testing.T) {
	ctx := context.Background()
	existingID := uuid.New()
	existing := model.Recipe{
		ID:           existingID,
		Name:         "חומוס",
		Ingredients:  "גרגירי חומוס",
		Instructions: "לטחון",
	}
	repo := testhelpers.NewFakeRecipeRepository(existing)
	snaps := testhelpers.NewMemorySnapshots()
	library := newLibrary(repo, snaps)
	require.NoError(t, library.Load(ctx))

	duplicate := model.Recipe{Name: "חומוס", Ingredients: "גרגירי חומוס", Instructions: "לטחון"}
	fresh := model.Recipe{Name: "מרק עדשים", Ingredients: "עדשים", Instructions: "לבשל"}

	result, err := library.Import(ctx, []model.Recipe{duplicate, fresh})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Imported)
	assert.Equal(t, 1, result.Skipped)

	got := library.Store().Get()
	require.Len(t, got, 2)
	assert.Equal(t, existingID, got[0].ID)
	assert.Equal(t, "מרק עדשים", got[1].Name)
}

func TestImportFailureSurfacesWithoutRetry(t *testing.T) {
	ctx := context.Background()
	repo := testhelpers.NewFakeRecipeRepository()
	repo.InsertErr = errors.New("boom")
	library := newLibrary(repo, testhelpers.NewMemorySnapshots())

	_, err := library.Import(ctx, []model.Recipe{
		{Name: "מרק", Ingredients: "עדשים", Instructions: "לבשל"},
	})
	assert.Error(t, err)
	assert.Zero(t, library.Store().Len())
}
