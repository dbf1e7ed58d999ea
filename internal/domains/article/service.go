package article

import (
	"context"
	"time"

	"blog-backend/internal/domains/article/model"
	authormodel "blog-backend/internal/domains/author/model"
)

type Service interface {
	// Read path
	GetAll(ctx context.Context) ([]model.Article, error)
	GetByCode(ctx context.Context, code string) (*model.Article, error)
	FindByTimestampAfter(ctx context.Context, t time.Time) ([]model.Article, error)
	FindByTimestampAndStatus(ctx context.Context, t time.Time, status int) ([]model.Article, error)
	FindByStatusAndTimestampAfter(ctx context.Context, status int, t time.Time) ([]model.Article, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]model.Article, error)
	FindComplex(ctx context.Context, status *int, timestamp time.Time, title string) ([]model.Article, error)
	Paginate(ctx context.Context, page, size int) (*model.ArticlePage, error)
	FindByStatusOrderByTitleAsc(ctx context.Context, status int) ([]model.Article, error)
	FindByStatusWithSort(ctx context.Context, status int) ([]model.Article, error)
	SearchText(ctx context.Context, term string) ([]model.Article, error)
	CountByStatus(ctx context.Context) ([]model.ArticleStatusCount, error)
	AuthorTotalsInPeriod(ctx context.Context, start, end time.Time) ([]model.AuthorArticleTotal, error)

	// Write path
	Create(ctx context.Context, a *model.Article) (*model.Article, error)
	CreateWithOutcome(ctx context.Context, a *model.Article) error
	Update(ctx context.Context, a *model.Article) error
	UpdateURL(ctx context.Context, code, url string) error
	UpdateFields(ctx context.Context, code string, a *model.Article) error
	Delete(ctx context.Context, code string) error
	DeleteByFilter(ctx context.Context, code string) error
	CreateWithAuthor(ctx context.Context, a *model.Article, au *authormodel.Author) error
	DeleteArticleAndAuthor(ctx context.Context, a *model.Article) error
}
