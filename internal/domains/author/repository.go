package author

import (
	"context"

	"blog-backend/internal/domains/author/model"
)

// Repository là typed query surface trên collection "authors"
type Repository interface {
	FindByCode(ctx context.Context, code string) (*model.Author, error)
	Save(ctx context.Context, a *model.Author) error
	Delete(ctx context.Context, code string) error
}
