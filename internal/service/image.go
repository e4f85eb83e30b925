package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/yakov100/recipe-book-sub000/config"
	"github.com/yakov100/recipe-book-sub000/internal/model"
)

// defaultCategoryImages maps a recipe category to the bundled placeholder
// shown when the recipe has no image of its own.
var defaultCategoryImages = map[string]string{
	"מנות עיקריות": "/images/defaults/main.png",
	"מרקים":        "/images/defaults/soup.png",
	"סלטים":        "/images/defaults/salad.png",
	"קינוחים":      "/images/defaults/dessert.png",
	"עוגות":        "/images/defaults/cake.png",
	"מאפים":        "/images/defaults/pastry.png",
}

const defaultRecipeImage = "/images/defaults/recipe.png"

// ImageService stores uploaded recipe images in S3 and resolves which image
// URL a recipe should display.
type ImageService struct {
	s3Config *config.S3Config
}

// NewImageService creates a new ImageService instance.
func NewImageService(s3Config *config.S3Config) *ImageService {
	return &ImageService{s3Config: s3Config}
}

// ResolveImageURL returns the single display URL for a recipe. Precedence:
// the stored image path, then legacy inline image data, then the category
// placeholder.
func (s *ImageService) ResolveImageURL(recipe model.Recipe) string {
	if recipe.ImagePath != "" {
		if strings.HasPrefix(recipe.ImagePath, "http://") || strings.HasPrefix(recipe.ImagePath, "https://") {
			return recipe.ImagePath
		}
		return s.objectURL(recipe.ImagePath)
	}
	if recipe.Image != "" {
		if strings.HasPrefix(recipe.Image, "data:") {
			return recipe.Image
		}
		// Old records stored bare base64 without the data URL prefix.
		return "data:image/jpeg;base64," + recipe.Image
	}
	if url, ok := defaultCategoryImages[recipe.Category]; ok {
		return url
	}
	return defaultRecipeImage
}

// UploadImage stores image bytes under a fresh key and returns that key for
// the recipe's image path.
func (s *ImageService) UploadImage(ctx context.Context, data []byte, contentType string) (string, error) {
	if s.s3Config == nil {
		return "", fmt.Errorf("image storage is not configured")
	}

	key := fmt.Sprintf("recipe-images/%s%s", uuid.New().String(), extensionFor(contentType))
	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image: %w", err)
	}

	log.Printf("[Image] stored %s (%d bytes)", key, len(data))
	return key, nil
}

// DeleteImage removes a stored image. Used when a recipe is deleted; best
// effort, the recipe delete has already been confirmed.
func (s *ImageService) DeleteImage(ctx context.Context, key string) {
	if s.s3Config == nil || key == "" || strings.HasPrefix(key, "http") {
		return
	}
	_, err := s.s3Config.Client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.s3Config.BucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		log.Printf("[Image] failed to delete %s: %v", key, err)
	}
}

func (s *ImageService) objectURL(key string) string {
	if s.s3Config == nil {
		return key
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
}

func extensionFor(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "image/webp":
		return ".webp"
	case "image/gif":
		return ".gif"
	default:
		return ".jpg"
	}
}
