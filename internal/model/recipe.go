package model

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ErrInvalidRecipe is returned when a recipe fails validation before persisting.
var ErrInvalidRecipe = errors.New("invalid recipe")

// DefaultDifficulty is applied when a recipe carries no difficulty value.
const DefaultDifficulty = 2

// Recipe is the central entity. A recipe with a zero ID exists only in the
// current session; the repository assigns the ID on insert.
type Recipe struct {
	ID              uuid.UUID      `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`
	DeletedAt       gorm.DeletedAt `gorm:"index" json:"-"`
	Name            string         `gorm:"size:255;not null" json:"name"`
	Source          string         `gorm:"size:255" json:"source"`
	Ingredients     string         `gorm:"type:text;not null" json:"ingredients"`
	Instructions    string         `gorm:"type:text" json:"instructions"`
	Category        string         `gorm:"size:50" json:"category"`
	DietaryType     string         `gorm:"size:50" json:"dietary_type"`
	Notes           string         `gorm:"type:text" json:"notes"`
	Rating          int            `json:"rating"`
	Difficulty      int            `gorm:"default:2" json:"difficulty"`
	ImagePath       string         `gorm:"size:512" json:"image_path"`
	Image           string         `gorm:"type:text" json:"image,omitempty"` // legacy inline image data, superseded by ImagePath
	RecipeLink      string         `gorm:"size:512" json:"recipe_link"`
	VideoURL        string         `gorm:"size:512" json:"video_url"`
	PreparationTime *int           `json:"preparation_time"`
}

func (Recipe) TableName() string {
	return "recipes"
}

// BeforeCreate assigns an ID when the database has not.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// Persisted reports whether the repository has assigned the recipe an identity.
func (r *Recipe) Persisted() bool {
	return r.ID != uuid.Nil
}

// Normalize fills defaults and settles the image precedence: when both an
// uploaded image path and legacy inline data are present, the path wins and
// the inline payload is discarded.
func (r *Recipe) Normalize() {
	r.Name = strings.TrimSpace(r.Name)
	if r.Difficulty == 0 {
		r.Difficulty = DefaultDifficulty
	}
	if r.ImagePath != "" {
		r.Image = ""
	}
}

// Validate checks the invariants a recipe must satisfy to persist.
func (r *Recipe) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidRecipe)
	}
	if strings.TrimSpace(r.Ingredients) == "" {
		return fmt.Errorf("%w: ingredients are required", ErrInvalidRecipe)
	}
	if r.Rating < 0 || r.Rating > 5 {
		return fmt.Errorf("%w: rating must be between 0 and 5", ErrInvalidRecipe)
	}
	if r.Difficulty < 1 || r.Difficulty > 3 {
		return fmt.Errorf("%w: difficulty must be 1, 2 or 3", ErrInvalidRecipe)
	}
	return nil
}
