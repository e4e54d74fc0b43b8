package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/dboiago/Memoix-sub000/internal/model"
)

var (
	// ErrRecipeExists is returned when an import carries a uuid that is
	// already in the box.
	ErrRecipeExists = errors.New("recipe already exists")
	// ErrNotPaired is returned when removing a pairing that does not exist.
	ErrNotPaired = errors.New("recipes are not paired")
)

const (
	recentCooksKey = "cooklog:recent"
	recentCooksMax = 100
)

// RecipeFilter narrows a recipe listing. Zero values mean "no constraint".
type RecipeFilter struct {
	Course        string
	Cuisine       string
	Tag           string
	Query         string
	FavoritesOnly bool
}

// CookEntry is one line of the cook log kept in Redis.
type CookEntry struct {
	RecipeUUID string    `json:"recipe_uuid"`
	Name       string    `json:"name"`
	Course     string    `json:"course"`
	Cuisine    string    `json:"cuisine"`
	CookedAt   time.Time `json:"cooked_at"`
}

// RecipeService handles recipe storage and engagement operations. The redis
// client is optional; without it the cook log simply isn't kept.
type RecipeService struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewRecipeService creates a new RecipeService instance
func NewRecipeService(db *gorm.DB, redisClient *redis.Client) *RecipeService {
	return &RecipeService{
		db:    db,
		redis: redisClient,
	}
}

// CreateRecipe stores a new recipe, assigning a uuid when the caller did not.
func (s *RecipeService) CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error) {
	if recipe.UUID == "" {
		recipe.UUID = uuid.New().String()
	}
	recipe.Course = model.NormalizeCourse(recipe.Course)
	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// GetRecipe retrieves a recipe by its local numeric id.
func (s *RecipeService) GetRecipe(ctx context.Context, id uint) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// GetRecipeByUUID retrieves a recipe by its portable identity.
func (s *RecipeService) GetRecipeByUUID(ctx context.Context, recipeUUID string) (*model.Recipe, error) {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "uuid = ?", recipeUUID).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

// UpdateRecipe replaces a recipe's content and tracks the edit: editCount,
// firstEditAt on the first edit, lastEditAt always. Identity and creation time
// are preserved.
func (s *RecipeService) UpdateRecipe(ctx context.Context, recipeUUID string, updated *model.Recipe) (*model.Recipe, error) {
	existing, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	updated.ID = existing.ID
	updated.UUID = existing.UUID
	updated.CreatedAt = existing.CreatedAt
	updated.Course = model.NormalizeCourse(updated.Course)
	updated.EditCount = existing.EditCount + 1
	updated.FirstEditAt = existing.FirstEditAt
	if updated.FirstEditAt == nil {
		updated.FirstEditAt = &now
	}
	updated.LastEditAt = &now
	updated.UpdatedAt = now

	if err := s.db.WithContext(ctx).Save(updated).Error; err != nil {
		return nil, err
	}
	return updated, nil
}

// SetImages persists a recipe's image fields only. Attaching a photo is not a
// content edit, so editCount and the edit timestamps stay untouched.
func (s *RecipeService) SetImages(ctx context.Context, recipeUUID, header string, imageURLs, stepImages model.StringList) error {
	recipe, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return err
	}
	return s.db.WithContext(ctx).Model(recipe).
		Select("HeaderImage", "ImageURLs", "StepImages").
		Updates(model.Recipe{
			HeaderImage: header,
			ImageURLs:   imageURLs,
			StepImages:  stepImages,
		}).Error
}

// DeleteRecipe deletes a recipe by uuid.
func (s *RecipeService) DeleteRecipe(ctx context.Context, recipeUUID string) error {
	var recipe model.Recipe
	if err := s.db.WithContext(ctx).First(&recipe, "uuid = ?", recipeUUID).Error; err != nil {
		return err
	}
	return s.db.WithContext(ctx).Delete(&recipe).Error
}

// ListRecipes lists recipes matching the filter, newest first.
func (s *RecipeService) ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error) {
	query := s.db.WithContext(ctx).Model(&model.Recipe{})

	if filter.Course != "" {
		query = query.Where("course = ?", model.NormalizeCourse(filter.Course))
	}
	if filter.Cuisine != "" {
		query = query.Where("cuisine = ?", filter.Cuisine)
	}
	if filter.FavoritesOnly {
		query = query.Where("is_favorite = ?", true)
	}
	if filter.Tag != "" {
		like := "%" + strings.ToLower(filter.Tag) + "%"
		if s.db.Dialector.Name() == "postgres" {
			query = query.Where("LOWER(tags::text) LIKE ?", like)
		} else {
			query = query.Where("LOWER(tags) LIKE ?", like)
		}
	}
	if filter.Query != "" {
		like := "%" + strings.ToLower(filter.Query) + "%"
		query = query.Where("LOWER(name) LIKE ? OR LOWER(comments) LIKE ?", like, like)
	}

	var recipes []model.Recipe
	if err := query.Order("created_at DESC").Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}

// ImportRecipe decodes an exported recipe file and stores it. The uuid is the
// portable identity, so a uuid already in the box is a conflict, not an update.
func (s *RecipeService) ImportRecipe(ctx context.Context, data []byte) (*model.Recipe, error) {
	recipe, err := model.RecipeFromJSON(data)
	if err != nil {
		return nil, err
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.Recipe{}).Where("uuid = ?", recipe.UUID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count > 0 {
		return nil, ErrRecipeExists
	}

	if err := s.db.WithContext(ctx).Create(recipe).Error; err != nil {
		return nil, err
	}
	return recipe, nil
}

// ToggleFavorite flips a recipe's favorite flag and returns the new state.
func (s *RecipeService) ToggleFavorite(ctx context.Context, id uint) (bool, error) {
	recipe, err := s.GetRecipe(ctx, id)
	if err != nil {
		return false, err
	}

	recipe.IsFavorite = !recipe.IsFavorite
	if err := s.db.WithContext(ctx).Model(recipe).Update("is_favorite", recipe.IsFavorite).Error; err != nil {
		return false, err
	}
	return recipe.IsFavorite, nil
}

// LogCook records that a dish was cooked: increments the recipe's cook counter,
// stamps lastCookedAt and pushes an entry onto the Redis cook log. A Redis
// failure loses the log entry, never the count.
func (s *RecipeService) LogCook(ctx context.Context, recipeUUID, name, course, cuisine string) (*model.Recipe, error) {
	recipe, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	recipe.CookCount++
	recipe.LastCookedAt = &now
	updates := map[string]interface{}{
		"cook_count":     recipe.CookCount,
		"last_cooked_at": recipe.LastCookedAt,
	}
	if err := s.db.WithContext(ctx).Model(recipe).Updates(updates).Error; err != nil {
		return nil, err
	}

	if s.redis != nil {
		entry := CookEntry{
			RecipeUUID: recipeUUID,
			Name:       name,
			Course:     course,
			Cuisine:    cuisine,
			CookedAt:   now,
		}
		data, err := json.Marshal(entry)
		if err == nil {
			pipe := s.redis.Pipeline()
			pipe.LPush(ctx, recentCooksKey, data)
			pipe.LTrim(ctx, recentCooksKey, 0, recentCooksMax-1)
			if _, err := pipe.Exec(ctx); err != nil {
				log.Printf("[RecipeService] failed to record cook log entry: %v", err)
			}
		}
	}

	return recipe, nil
}

// RecentCooks returns the newest cook-log entries, most recent first.
func (s *RecipeService) RecentCooks(ctx context.Context, limit int) ([]CookEntry, error) {
	if s.redis == nil {
		return nil, nil
	}
	if limit <= 0 || limit > recentCooksMax {
		limit = recentCooksMax
	}

	raw, err := s.redis.LRange(ctx, recentCooksKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to read cook log: %w", err)
	}

	entries := make([]CookEntry, 0, len(raw))
	for _, item := range raw {
		var entry CookEntry
		if err := json.Unmarshal([]byte(item), &entry); err != nil {
			continue
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

// AddPairing records that the first recipe pairs with the second. The link is
// one-directional; the legacy pairsWith text list is left untouched.
func (s *RecipeService) AddPairing(ctx context.Context, recipeUUID, otherUUID string) error {
	recipe, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return err
	}
	if _, err := s.GetRecipeByUUID(ctx, otherUUID); err != nil {
		return fmt.Errorf("paired recipe: %w", err)
	}

	for _, id := range recipe.PairedRecipeIDs {
		if id == otherUUID {
			return nil
		}
	}
	recipe.PairedRecipeIDs = append(recipe.PairedRecipeIDs, otherUUID)
	return s.db.WithContext(ctx).Model(recipe).Update("paired_recipe_ids", recipe.PairedRecipeIDs).Error
}

// RemovePairing drops a pairing link from the first recipe.
func (s *RecipeService) RemovePairing(ctx context.Context, recipeUUID, otherUUID string) error {
	recipe, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return err
	}

	kept := model.StringList{}
	found := false
	for _, id := range recipe.PairedRecipeIDs {
		if id == otherUUID {
			found = true
			continue
		}
		kept = append(kept, id)
	}
	if !found {
		return ErrNotPaired
	}
	recipe.PairedRecipeIDs = kept
	return s.db.WithContext(ctx).Model(recipe).Update("paired_recipe_ids", recipe.PairedRecipeIDs).Error
}

// PairedRecipes resolves a recipe's pairing uuids to records. Dangling uuids
// are skipped.
func (s *RecipeService) PairedRecipes(ctx context.Context, recipeUUID string) ([]*model.Recipe, error) {
	recipe, err := s.GetRecipeByUUID(ctx, recipeUUID)
	if err != nil {
		return nil, err
	}
	if len(recipe.PairedRecipeIDs) == 0 {
		return nil, nil
	}

	var recipes []model.Recipe
	if err := s.db.WithContext(ctx).Where("uuid IN ?", []string(recipe.PairedRecipeIDs)).Find(&recipes).Error; err != nil {
		return nil, err
	}

	result := make([]*model.Recipe, len(recipes))
	for i := range recipes {
		result[i] = &recipes[i]
	}
	return result, nil
}
