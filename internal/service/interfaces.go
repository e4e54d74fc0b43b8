package service

import (
	"context"

	"github.com/dboiago/Memoix-sub000/internal/model"
	"github.com/dboiago/Memoix-sub000/internal/types"
)

// IRecipeService defines the interface for recipe storage and engagement
// operations.
type IRecipeService interface {
	CreateRecipe(ctx context.Context, recipe *model.Recipe) (*model.Recipe, error)
	GetRecipe(ctx context.Context, id uint) (*model.Recipe, error)
	GetRecipeByUUID(ctx context.Context, recipeUUID string) (*model.Recipe, error)
	UpdateRecipe(ctx context.Context, recipeUUID string, updated *model.Recipe) (*model.Recipe, error)
	SetImages(ctx context.Context, recipeUUID, header string, imageURLs, stepImages model.StringList) error
	DeleteRecipe(ctx context.Context, recipeUUID string) error
	ListRecipes(ctx context.Context, filter RecipeFilter) ([]*model.Recipe, error)
	ImportRecipe(ctx context.Context, data []byte) (*model.Recipe, error)
	ToggleFavorite(ctx context.Context, id uint) (bool, error)
	LogCook(ctx context.Context, recipeUUID, name, course, cuisine string) (*model.Recipe, error)
	RecentCooks(ctx context.Context, limit int) ([]CookEntry, error)
	AddPairing(ctx context.Context, recipeUUID, otherUUID string) error
	RemovePairing(ctx context.Context, recipeUUID, otherUUID string) error
	PairedRecipes(ctx context.Context, recipeUUID string) ([]*model.Recipe, error)
}

// IShareService defines the interface for share-link operations.
type IShareService interface {
	CreateShare(ctx context.Context, recipe *model.Recipe) (string, error)
	GetShare(ctx context.Context, token string) ([]byte, error)
	DeleteShare(ctx context.Context, token string) error
}

// IAuthService defines the interface for authentication operations
type IAuthService interface {
	Register(ctx context.Context, name, email, password string) (string, error)
	Login(ctx context.Context, email, password string) (string, error)
	ValidateToken(token string) (*types.TokenClaims, error)
}
