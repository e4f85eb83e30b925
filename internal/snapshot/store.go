package snapshot

import (
	"context"
	"encoding/json"
	"log"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/yakov100/recipe-book-sub000/internal/model"
)

// Version marks the stored snapshot schema. Bump it whenever the Entry shape
// changes; old snapshots are then discarded instead of half-parsed.
const Version = 2

// DefaultFreshness is how long a snapshot is trusted before a full reload is
// preferred ahead of the first paint. Staleness never affects correctness,
// only whether the caller waits on the network first.
const DefaultFreshness = 5 * time.Minute

const (
	recipesKey = "recipebook:snapshot:recipes"
	versionKey = "recipebook:snapshot:version"
)

// Entry is the reduced projection of a recipe kept in the snapshot. Legacy
// inline image payloads are dropped to stay well under cache size limits;
// the image path survives.
type Entry struct {
	ID              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Source          string    `json:"source,omitempty"`
	Ingredients     string    `json:"ingredients"`
	Instructions    string    `json:"instructions,omitempty"`
	Category        string    `json:"category,omitempty"`
	DietaryType     string    `json:"dietary_type,omitempty"`
	Notes           string    `json:"notes,omitempty"`
	Rating          int       `json:"rating"`
	Difficulty      int       `json:"difficulty"`
	ImagePath       string    `json:"image_path,omitempty"`
	RecipeLink      string    `json:"recipe_link,omitempty"`
	VideoURL        string    `json:"video_url,omitempty"`
	PreparationTime *int      `json:"preparation_time,omitempty"`
}

// Snapshot is the last cached copy of the collection plus the moment of the
// last successful full load. Merges never refresh the timestamp.
type Snapshot struct {
	Recipes   []Entry   `json:"recipes"`
	Timestamp time.Time `json:"timestamp"`
}

// Models converts the stored entries back to model recipes.
func (s *Snapshot) Models() []model.Recipe {
	out := make([]model.Recipe, len(s.Recipes))
	for i, e := range s.Recipes {
		out[i] = model.Recipe{
			ID:              e.ID,
			Name:            e.Name,
			Source:          e.Source,
			Ingredients:     e.Ingredients,
			Instructions:    e.Instructions,
			Category:        e.Category,
			DietaryType:     e.DietaryType,
			Notes:           e.Notes,
			Rating:          e.Rating,
			Difficulty:      e.Difficulty,
			ImagePath:       e.ImagePath,
			RecipeLink:      e.RecipeLink,
			VideoURL:        e.VideoURL,
			PreparationTime: e.PreparationTime,
		}
	}
	return out
}

// Reduce projects a recipe onto its snapshot entry.
func Reduce(r model.Recipe) Entry {
	return Entry{
		ID:              r.ID,
		Name:            r.Name,
		Source:          r.Source,
		Ingredients:     r.Ingredients,
		Instructions:    r.Instructions,
		Category:        r.Category,
		DietaryType:     r.DietaryType,
		Notes:           r.Notes,
		Rating:          r.Rating,
		Difficulty:      r.Difficulty,
		ImagePath:       r.ImagePath,
		RecipeLink:      r.RecipeLink,
		VideoURL:        r.VideoURL,
		PreparationTime: r.PreparationTime,
	}
}

// kv is the slice of the Redis client the store needs. Tests substitute an
// in-memory implementation.
type kv interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, keys ...string) error
}

type redisKV struct {
	client *redis.Client
}

func (r redisKV) Get(ctx context.Context, key string) (string, error) {
	return r.client.Get(ctx, key).Result()
}

func (r redisKV) Set(ctx context.Context, key, value string) error {
	return r.client.Set(ctx, key, value, 0).Err()
}

func (r redisKV) Del(ctx context.Context, keys ...string) error {
	return r.client.Del(ctx, keys...).Err()
}

// Store persists the last-known recipe collection so the session can paint
// before the network responds. It is strictly advisory: every failure path
// degrades to "no snapshot", and no error ever crosses its boundary.
type Store struct {
	kv        kv
	freshness time.Duration
	now       func() time.Time
}

// NewStore creates a snapshot store over the given Redis client.
func NewStore(client *redis.Client) *Store {
	return newStore(redisKV{client: client}, DefaultFreshness)
}

// NewStoreWithFreshness creates a snapshot store with a custom freshness
// window.
func NewStoreWithFreshness(client *redis.Client, freshness time.Duration) *Store {
	return newStore(redisKV{client: client}, freshness)
}

func newStore(kv kv, freshness time.Duration) *Store {
	return &Store{kv: kv, freshness: freshness, now: time.Now}
}

// Load returns the last saved snapshot, or nil when none exists, parsing
// fails, or the stored schema version does not match. A mismatched or
// corrupt snapshot is cleared so the next load is well-defined.
func (s *Store) Load(ctx context.Context) *Snapshot {
	stored, err := s.kv.Get(ctx, versionKey)
	if err != nil || stored != strconv.Itoa(Version) {
		s.Clear(ctx)
		if err := s.kv.Set(ctx, versionKey, strconv.Itoa(Version)); err != nil {
			log.Printf("[Snapshot] failed to write version marker: %v", err)
		}
		return nil
	}

	raw, err := s.kv.Get(ctx, recipesKey)
	if err != nil {
		return nil
	}
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		log.Printf("[Snapshot] discarding unreadable snapshot: %v", err)
		s.Clear(ctx)
		return nil
	}
	return &snap
}

// Save persists a reduced projection of the collection with a fresh
// timestamp. On write failure the store clears itself rather than leaving a
// partially written snapshot behind; the caller is never told.
func (s *Store) Save(ctx context.Context, recipes []model.Recipe) {
	entries := make([]Entry, len(recipes))
	for i, r := range recipes {
		entries[i] = Reduce(r)
	}
	raw, err := json.Marshal(Snapshot{Recipes: entries, Timestamp: s.now()})
	if err != nil {
		log.Printf("[Snapshot] failed to encode snapshot: %v", err)
		s.Clear(ctx)
		return
	}
	if err := s.kv.Set(ctx, recipesKey, string(raw)); err != nil {
		log.Printf("[Snapshot] failed to write snapshot, clearing: %v", err)
		s.Clear(ctx)
		return
	}
	if err := s.kv.Set(ctx, versionKey, strconv.Itoa(Version)); err != nil {
		log.Printf("[Snapshot] failed to write version marker, clearing: %v", err)
		s.Clear(ctx)
	}
}

// IsFresh reports whether a snapshot taken at t is still inside the
// freshness window.
func (s *Store) IsFresh(t time.Time) bool {
	return s.now().Sub(t) < s.freshness
}

// Clear removes any stored snapshot. Best effort.
func (s *Store) Clear(ctx context.Context) {
	if err := s.kv.Del(ctx, recipesKey); err != nil {
		log.Printf("[Snapshot] failed to clear snapshot: %v", err)
	}
}
