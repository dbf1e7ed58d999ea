package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/article/model"
	"blog-backend/internal/domains/author"
	authormodel "blog-backend/internal/domains/author/model"
	"blog-backend/pkg/database"
)

const defaultPageSize = 5

// articleService implements article.Service
type articleService struct {
	articles article.Repository
	authors  author.Repository
	tx       database.Transactor
	now      func() time.Time
}

func NewArticleService(articles article.Repository, authors author.Repository, tx database.Transactor) article.Service {
	return &articleService{
		articles: articles,
		authors:  authors,
		tx:       tx,
		now:      time.Now,
	}
}

// ════════════════════════════════════════════════════════════════
// WRITE PATH
// ════════════════════════════════════════════════════════════════

// Create persist một article mới, resolve author reference trước khi ghi.
//
// Nếu save fail vì version conflict, record hiện tại được đọc lại, ba field
// title/body/status từ bản incoming được merge lên bản đó và merged record
// được persist với version tăng thêm một. Đây là last-writer-wins merge
// giới hạn trong ba field; các field khác của caller bị discard.
func (s *articleService) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	if err := s.resolveAuthor(ctx, a); err != nil {
		return nil, err
	}

	err := s.articles.Save(ctx, a)
	if err == nil {
		return a, nil
	}
	if !errors.Is(err, article.ErrVersionConflict) {
		return nil, err
	}

	// Conflict recovery: re-read rồi merge-and-retry đúng một lần
	current, findErr := s.articles.FindByCode(ctx, a.Code)
	if findErr != nil {
		return nil, findErr
	}

	merged := mergeOnConflict(current, a)
	if err := s.articles.Save(ctx, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// CreateWithOutcome là create variant không recovery: duplicate key và các
// failure khác được trả về nguyên dạng để boundary map sang 201/409/500.
func (s *articleService) CreateWithOutcome(ctx context.Context, a *model.Article) error {
	if err := s.resolveAuthor(ctx, a); err != nil {
		return err
	}
	return s.articles.Save(ctx, a)
}

// Update là unconditional overwrite-by-id: không author resolution,
// không conflict recovery. Version chỉ được store enforce nếu caller
// gửi kèm version hiện tại.
func (s *articleService) Update(ctx context.Context, a *model.Article) error {
	return s.articles.Save(ctx, a)
}

func (s *articleService) UpdateURL(ctx context.Context, code, url string) error {
	return s.articles.UpdateURL(ctx, code, url)
}

// UpdateFields là read-modify-write của title, timestamp, body theo id.
// Không đụng vào status, url, author hay version.
func (s *articleService) UpdateFields(ctx context.Context, code string, a *model.Article) error {
	existing, err := s.articles.FindByCode(ctx, code)
	if err != nil {
		return err
	}
	return s.articles.UpdateFields(ctx, existing.Code, a.Title, a.Timestamp, a.Body)
}

func (s *articleService) Delete(ctx context.Context, code string) error {
	return s.articles.DeleteByCode(ctx, code)
}

func (s *articleService) DeleteByFilter(ctx context.Context, code string) error {
	return s.articles.DeleteByFilter(ctx, code)
}

// CreateWithAuthor persist author và article trong cùng một transaction:
// cả hai write thành công hoặc không write nào visible.
func (s *articleService) CreateWithAuthor(ctx context.Context, a *model.Article, au *authormodel.Author) error {
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if err := s.authors.Save(txCtx, au); err != nil {
			return err
		}

		a.Timestamp = s.now()
		a.Author = au

		return s.articles.Save(txCtx, a)
	})
}

// DeleteArticleAndAuthor xoá author đang link rồi xoá article,
// trong cùng một transaction.
func (s *articleService) DeleteArticleAndAuthor(ctx context.Context, a *model.Article) error {
	return s.tx.WithinTx(ctx, func(txCtx context.Context) error {
		if a.Author == nil || a.Author.Code == "" {
			return article.ErrNoLinkedAuthor
		}

		if err := s.authors.Delete(txCtx, a.Author.Code); err != nil {
			return err
		}
		return s.articles.DeleteByCode(txCtx, a.Code)
	})
}

// resolveAuthor thay author sub-document bằng bản đã persist.
// Không bao giờ ghi dangling/partial author: không có code thì không có link.
func (s *articleService) resolveAuthor(ctx context.Context, a *model.Article) error {
	if a.Author == nil || a.Author.Code == "" {
		a.Author = nil
		return nil
	}

	resolved, err := s.authors.FindByCode(ctx, a.Author.Code)
	if errors.Is(err, author.ErrAuthorNotFound) {
		return article.ErrAuthorReference
	}
	if err != nil {
		return err
	}

	a.Author = resolved
	return nil
}

// mergeOnConflict copy title, body, status từ incoming lên bản persisted
// mới đọc; timestamp và các field còn lại giữ nguyên. Save sau đó sẽ tăng
// version thêm một.
func mergeOnConflict(current, incoming *model.Article) *model.Article {
	merged := *current
	merged.Title = incoming.Title
	merged.Body = incoming.Body
	merged.Status = incoming.Status
	return &merged
}

// ════════════════════════════════════════════════════════════════
// READ PATH
// ════════════════════════════════════════════════════════════════

func (s *articleService) GetAll(ctx context.Context) ([]model.Article, error) {
	return s.articles.FindAll(ctx)
}

func (s *articleService) GetByCode(ctx context.Context, code string) (*model.Article, error) {
	return s.articles.FindByCode(ctx, code)
}

func (s *articleService) FindByTimestampAfter(ctx context.Context, t time.Time) ([]model.Article, error) {
	return s.articles.FindByTimestampGreaterThan(ctx, t)
}

func (s *articleService) FindByTimestampAndStatus(ctx context.Context, t time.Time, status int) ([]model.Article, error) {
	return s.articles.FindByTimestampAndStatus(ctx, t, status)
}

func (s *articleService) FindByStatusAndTimestampAfter(ctx context.Context, status int, t time.Time) ([]model.Article, error) {
	return s.articles.FindByStatusAndTimestampGreaterThan(ctx, status, t)
}

func (s *articleService) FindBetween(ctx context.Context, from, to time.Time) ([]model.Article, error) {
	return s.articles.FindBetween(ctx, from, to)
}

func (s *articleService) FindComplex(ctx context.Context, status *int, timestamp time.Time, title string) ([]model.Article, error) {
	return s.articles.FindWithFilter(ctx, complexFilter(status, timestamp, title))
}

// Paginate trả về một trang luôn sort theo title ascending;
// sort order client yêu cầu bị override.
func (s *articleService) Paginate(ctx context.Context, page, size int) (*model.ArticlePage, error) {
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = defaultPageSize
	}

	content, total, err := s.articles.Paginate(ctx, page, size)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(size) - 1) / int64(size))
	return &model.ArticlePage{
		Content:       content,
		Page:          page,
		Size:          size,
		TotalElements: total,
		TotalPages:    totalPages,
	}, nil
}

func (s *articleService) FindByStatusOrderByTitleAsc(ctx context.Context, status int) ([]model.Article, error) {
	return s.articles.FindByStatusOrderByTitleAsc(ctx, status)
}

func (s *articleService) FindByStatusWithSort(ctx context.Context, status int) ([]model.Article, error) {
	return s.articles.FindByStatusSorted(ctx, status)
}

func (s *articleService) SearchText(ctx context.Context, term string) ([]model.Article, error) {
	return s.articles.SearchText(ctx, term)
}

func (s *articleService) CountByStatus(ctx context.Context) ([]model.ArticleStatusCount, error) {
	return s.articles.CountByStatus(ctx)
}

// AuthorTotalsInPeriod đếm article per author với timestamp trong
// [start-of(start), start-of(end+1d)] - trọn ngày cuối được tính.
func (s *articleService) AuthorTotalsInPeriod(ctx context.Context, start, end time.Time) ([]model.AuthorArticleTotal, error) {
	from, to := periodBounds(start, end)
	return s.articles.TotalByAuthorInPeriod(ctx, from, to)
}

// complexFilter build conjunctive filter: timestamp <= given luôn có mặt;
// status == given chỉ khi status non-nil.
//
// Quirk giữ nguyên từ legacy query: title equality chỉ được thêm khi title
// BLANK, không phải khi non-blank.
func complexFilter(status *int, timestamp time.Time, title string) bson.M {
	filter := bson.M{
		"timestamp": bson.M{"$lte": timestamp},
	}
	if status != nil {
		filter["status"] = *status
	}
	if strings.TrimSpace(title) == "" {
		filter["title"] = title
	}
	return filter
}

// periodBounds mở rộng một date range [start, end] thành time bounds
// inclusive trọn ngày end.
func periodBounds(start, end time.Time) (time.Time, time.Time) {
	from := startOfDay(start)
	to := startOfDay(end).AddDate(0, 0, 1)
	return from, to
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
