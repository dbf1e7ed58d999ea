package author

import (
	"context"

	"blog-backend/internal/domains/author/model"
)

type Service interface {
	Create(ctx context.Context, a *model.Author) (*model.Author, error)
	GetByCode(ctx context.Context, code string) (*model.Author, error)
}
