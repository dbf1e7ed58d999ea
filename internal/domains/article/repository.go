package article

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"blog-backend/internal/domains/article/model"
)

// Repository là typed query surface trên collection "articles".
//
// Ad-hoc filters được truyền dưới dạng bson.M vì storage engine là document
// store: predicate/sort là declarative expressions, không phải algorithms.
type Repository interface {
	// Lookups
	FindAll(ctx context.Context) ([]model.Article, error)
	FindByCode(ctx context.Context, code string) (*model.Article, error)
	FindByTimestampGreaterThan(ctx context.Context, t time.Time) ([]model.Article, error)
	FindByTimestampAndStatus(ctx context.Context, t time.Time, status int) ([]model.Article, error)
	FindByStatusAndTimestampGreaterThan(ctx context.Context, status int, t time.Time) ([]model.Article, error)
	FindBetween(ctx context.Context, from, to time.Time) ([]model.Article, error)
	FindWithFilter(ctx context.Context, filter bson.M) ([]model.Article, error)
	FindByStatusOrderByTitleAsc(ctx context.Context, status int) ([]model.Article, error)
	FindByStatusSorted(ctx context.Context, status int) ([]model.Article, error)
	Paginate(ctx context.Context, page, size int) ([]model.Article, int64, error)
	SearchText(ctx context.Context, term string) ([]model.Article, error)

	// Writes
	Save(ctx context.Context, a *model.Article) error
	UpdateURL(ctx context.Context, code, url string) error
	UpdateFields(ctx context.Context, code, title string, timestamp time.Time, body string) error
	DeleteByCode(ctx context.Context, code string) error
	DeleteByFilter(ctx context.Context, code string) error

	// Aggregations
	CountByStatus(ctx context.Context) ([]model.ArticleStatusCount, error)
	TotalByAuthorInPeriod(ctx context.Context, from, to time.Time) ([]model.AuthorArticleTotal, error)
}
