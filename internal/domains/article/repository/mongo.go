package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/article/model"
)

const collectionName = "articles"

type articleRepository struct {
	collection *mongo.Collection
}

func NewArticleRepository(db *mongo.Database) article.Repository {
	return &articleRepository{
		collection: db.Collection(collectionName),
	}
}

// ════════════════════════════════════════════════════════════════
// LOOKUPS
// ════════════════════════════════════════════════════════════════

func (r *articleRepository) FindAll(ctx context.Context) ([]model.Article, error) {
	return r.find(ctx, bson.M{})
}

func (r *articleRepository) FindByCode(ctx context.Context, code string) (*model.Article, error) {
	var a model.Article
	err := r.collection.FindOne(ctx, bson.M{"_id": code}).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, article.ErrArticleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find article %s: %w", code, err)
	}
	return &a, nil
}

func (r *articleRepository) FindByTimestampGreaterThan(ctx context.Context, t time.Time) ([]model.Article, error) {
	return r.find(ctx, bson.M{"timestamp": bson.M{"$gt": t}})
}

func (r *articleRepository) FindByTimestampAndStatus(ctx context.Context, t time.Time, status int) ([]model.Article, error) {
	return r.find(ctx, bson.M{"timestamp": t, "status": status})
}

func (r *articleRepository) FindByStatusAndTimestampGreaterThan(ctx context.Context, status int, t time.Time) ([]model.Article, error) {
	return r.find(ctx, bson.M{"status": status, "timestamp": bson.M{"$gt": t}})
}

func (r *articleRepository) FindBetween(ctx context.Context, from, to time.Time) ([]model.Article, error) {
	return r.find(ctx, bson.M{
		"$and": bson.A{
			bson.M{"timestamp": bson.M{"$gte": from}},
			bson.M{"timestamp": bson.M{"$lte": to}},
		},
	})
}

func (r *articleRepository) FindWithFilter(ctx context.Context, filter bson.M) ([]model.Article, error) {
	return r.find(ctx, filter)
}

func (r *articleRepository) FindByStatusOrderByTitleAsc(ctx context.Context, status int) ([]model.Article, error) {
	return r.find(ctx, bson.M{"status": status},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

// FindByStatusSorted là query tương đương viết dưới dạng filter+sort expression
func (r *articleRepository) FindByStatusSorted(ctx context.Context, status int) ([]model.Article, error) {
	return r.find(ctx, bson.M{"status": bson.M{"$eq": status}},
		options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
}

// Paginate luôn sort theo title ascending, bất kể client yêu cầu sort gì
func (r *articleRepository) Paginate(ctx context.Context, page, size int) ([]model.Article, int64, error) {
	total, err := r.collection.CountDocuments(ctx, bson.M{})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count articles: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "title", Value: 1}}).
		SetSkip(int64(page) * int64(size)).
		SetLimit(int64(size))

	articles, err := r.find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, 0, err
	}
	return articles, total, nil
}

// SearchText chạy phrase match trên text index của body,
// kết quả sort theo relevance score giảm dần.
func (r *articleRepository) SearchText(ctx context.Context, term string) ([]model.Article, error) {
	filter := bson.M{
		"$text": bson.M{"$search": fmt.Sprintf("%q", term)},
	}
	opts := options.Find().
		SetSort(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}}).
		SetProjection(bson.D{{Key: "score", Value: bson.M{"$meta": "textScore"}}})

	return r.find(ctx, filter, opts)
}

func (r *articleRepository) find(ctx context.Context, filter bson.M, opts ...*options.FindOptions) ([]model.Article, error) {
	cursor, err := r.collection.Find(ctx, filter, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to query articles: %w", err)
	}

	articles := []model.Article{}
	if err := cursor.All(ctx, &articles); err != nil {
		return nil, fmt.Errorf("failed to decode articles: %w", err)
	}
	return articles, nil
}

// ════════════════════════════════════════════════════════════════
// WRITES
// ════════════════════════════════════════════════════════════════

// Save là insert-or-replace với optimistic concurrency:
// - Version 0: insert mới, version bắt đầu từ 1
// - Version n: replace match trên {_id, version}; không match document nào
//   nghĩa là một writer khác đã update trước -> ErrVersionConflict
func (r *articleRepository) Save(ctx context.Context, a *model.Article) error {
	if a.Code == "" {
		a.Code = uuid.NewString()
	}

	if a.Version == 0 {
		a.Version = 1
		_, err := r.collection.InsertOne(ctx, a)
		if err != nil {
			a.Version = 0
			if mongo.IsDuplicateKeyError(err) {
				return article.ErrDuplicateArticle
			}
			return fmt.Errorf("failed to insert article %s: %w", a.Code, err)
		}
		return nil
	}

	next := *a
	next.Version = a.Version + 1

	result, err := r.collection.ReplaceOne(ctx,
		bson.M{"_id": a.Code, "version": a.Version}, &next)
	if err != nil {
		return fmt.Errorf("failed to replace article %s: %w", a.Code, err)
	}
	if result.MatchedCount == 0 {
		return article.ErrVersionConflict
	}

	a.Version = next.Version
	return nil
}

// UpdateURL set một field duy nhất; no-op nếu không có document nào match
func (r *articleRepository) UpdateURL(ctx context.Context, code, url string) error {
	_, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": code},
		bson.M{"$set": bson.M{"url": url}})
	if err != nil {
		return fmt.Errorf("failed to update url of article %s: %w", code, err)
	}
	return nil
}

// UpdateFields chỉ đụng vào title, timestamp, body -
// status, url, author và version giữ nguyên.
func (r *articleRepository) UpdateFields(ctx context.Context, code, title string, timestamp time.Time, body string) error {
	result, err := r.collection.UpdateOne(ctx,
		bson.M{"_id": code},
		bson.M{"$set": bson.M{
			"title":     title,
			"timestamp": timestamp,
			"body":      body,
		}})
	if err != nil {
		return fmt.Errorf("failed to update fields of article %s: %w", code, err)
	}
	if result.MatchedCount == 0 {
		return article.ErrArticleNotFound
	}
	return nil
}

func (r *articleRepository) DeleteByCode(ctx context.Context, code string) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": code})
	if err != nil {
		return fmt.Errorf("failed to delete article %s: %w", code, err)
	}
	return nil
}

// DeleteByFilter xoá mọi document match filter theo code
func (r *articleRepository) DeleteByFilter(ctx context.Context, code string) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"_id": code})
	if err != nil {
		return fmt.Errorf("failed to delete articles by filter %s: %w", code, err)
	}
	return nil
}

// ════════════════════════════════════════════════════════════════
// AGGREGATIONS
// ════════════════════════════════════════════════════════════════

func (r *articleRepository) CountByStatus(ctx context.Context) ([]model.ArticleStatusCount, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$group", Value: bson.M{
			"_id":   "$status",
			"count": bson.M{"$sum": 1},
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to count articles by status: %w", err)
	}

	counts := []model.ArticleStatusCount{}
	if err := cursor.All(ctx, &counts); err != nil {
		return nil, fmt.Errorf("failed to decode status counts: %w", err)
	}
	return counts, nil
}

func (r *articleRepository) TotalByAuthorInPeriod(ctx context.Context, from, to time.Time) ([]model.AuthorArticleTotal, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{
			"timestamp": bson.M{"$gte": from, "$lte": to},
		}}},
		{{Key: "$group", Value: bson.M{
			"_id":           "$author",
			"totalArticles": bson.M{"$sum": 1},
		}}},
		{{Key: "$project", Value: bson.M{
			"_id":           0,
			"author":        "$_id",
			"totalArticles": 1,
		}}},
	}

	cursor, err := r.collection.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, fmt.Errorf("failed to total articles by author: %w", err)
	}

	totals := []model.AuthorArticleTotal{}
	if err := cursor.All(ctx, &totals); err != nil {
		return nil, fmt.Errorf("failed to decode author totals: %w", err)
	}
	return totals, nil
}
