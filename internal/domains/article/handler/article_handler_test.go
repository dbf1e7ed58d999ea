package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/article/model"
	authormodel "blog-backend/internal/domains/author/model"
)

// ════════════════════════════════════════════════════════════════
// STUB SERVICE
// ════════════════════════════════════════════════════════════════

// stubService trả về canned values và ghi lại arguments nhận được,
// để tests chỉ assert HTTP mapping của handler.
type stubService struct {
	articles []model.Article
	one      *model.Article
	page     *model.ArticlePage
	counts   []model.ArticleStatusCount
	totals   []model.AuthorArticleTotal
	err      error

	gotStatus *int
	gotTitle  string
	gotTime   time.Time
	gotPage   int
	gotSize   int
	gotCode   string
	gotURL    string
}

func (s *stubService) GetAll(ctx context.Context) ([]model.Article, error) {
	return s.articles, s.err
}

func (s *stubService) GetByCode(ctx context.Context, code string) (*model.Article, error) {
	s.gotCode = code
	return s.one, s.err
}

func (s *stubService) FindByTimestampAfter(ctx context.Context, t time.Time) ([]model.Article, error) {
	s.gotTime = t
	return s.articles, s.err
}

func (s *stubService) FindByTimestampAndStatus(ctx context.Context, t time.Time, status int) ([]model.Article, error) {
	s.gotTime = t
	s.gotStatus = &status
	return s.articles, s.err
}

func (s *stubService) FindByStatusAndTimestampAfter(ctx context.Context, status int, t time.Time) ([]model.Article, error) {
	s.gotStatus = &status
	s.gotTime = t
	return s.articles, s.err
}

func (s *stubService) FindBetween(ctx context.Context, from, to time.Time) ([]model.Article, error) {
	return s.articles, s.err
}

func (s *stubService) FindComplex(ctx context.Context, status *int, timestamp time.Time, title string) ([]model.Article, error) {
	s.gotStatus = status
	s.gotTime = timestamp
	s.gotTitle = title
	return s.articles, s.err
}

func (s *stubService) Paginate(ctx context.Context, page, size int) (*model.ArticlePage, error) {
	s.gotPage = page
	s.gotSize = size
	return s.page, s.err
}

func (s *stubService) FindByStatusOrderByTitleAsc(ctx context.Context, status int) ([]model.Article, error) {
	s.gotStatus = &status
	return s.articles, s.err
}

func (s *stubService) FindByStatusWithSort(ctx context.Context, status int) ([]model.Article, error) {
	s.gotStatus = &status
	return s.articles, s.err
}

func (s *stubService) SearchText(ctx context.Context, term string) ([]model.Article, error) {
	s.gotTitle = term
	return s.articles, s.err
}

func (s *stubService) CountByStatus(ctx context.Context) ([]model.ArticleStatusCount, error) {
	return s.counts, s.err
}

func (s *stubService) AuthorTotalsInPeriod(ctx context.Context, start, end time.Time) ([]model.AuthorArticleTotal, error) {
	return s.totals, s.err
}

func (s *stubService) Create(ctx context.Context, a *model.Article) (*model.Article, error) {
	if s.err != nil {
		return nil, s.err
	}
	return a, nil
}

func (s *stubService) CreateWithOutcome(ctx context.Context, a *model.Article) error {
	return s.err
}

func (s *stubService) Update(ctx context.Context, a *model.Article) error {
	return s.err
}

func (s *stubService) UpdateURL(ctx context.Context, code, url string) error {
	s.gotCode = code
	s.gotURL = url
	return s.err
}

func (s *stubService) UpdateFields(ctx context.Context, code string, a *model.Article) error {
	s.gotCode = code
	return s.err
}

func (s *stubService) Delete(ctx context.Context, code string) error {
	s.gotCode = code
	return s.err
}

func (s *stubService) DeleteByFilter(ctx context.Context, code string) error {
	s.gotCode = code
	return s.err
}

func (s *stubService) CreateWithAuthor(ctx context.Context, a *model.Article, au *authormodel.Author) error {
	return s.err
}

func (s *stubService) DeleteArticleAndAuthor(ctx context.Context, a *model.Article) error {
	return s.err
}

func newTestRouter(svc article.Service) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := NewArticleHandler(svc)

	router := gin.New()
	articles := router.Group("/articles")
	{
		articles.GET("", h.List)
		articles.POST("", h.Create)
		articles.POST("/create", h.CreateWithOutcome)
		articles.PUT("", h.Update)
		articles.PUT("/update-url/:id", h.UpdateURL)
		articles.PUT("/update-article/:id", h.UpdateFields)
		articles.PUT("/with-author", h.CreateWithAuthor)
		articles.DELETE("/delete", h.DeleteByFilter)
		articles.DELETE("/full", h.DeleteArticleAndAuthor)
		articles.DELETE("/:id", h.Delete)
		articles.GET("/complex", h.FindComplex)
		articles.GET("/page", h.Paginate)
		articles.GET("/search-text", h.SearchText)
		articles.GET("/count-by-status", h.CountByStatus)
		articles.GET("/:code", h.GetByCode)
	}
	return router
}

func doRequest(router *gin.Engine, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

const validArticleJSON = `{
	"code": "art1",
	"title": "Title",
	"timestamp": "2024-06-01T12:00:00Z",
	"body": "Body",
	"status": 1
}`

// ════════════════════════════════════════════════════════════════
// ERROR MAPPING
// ════════════════════════════════════════════════════════════════

func TestGetByCode_NotFound(t *testing.T) {
	svc := &stubService{err: article.ErrArticleNotFound}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/articles/missing", "")

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "missing", svc.gotCode)
}

func TestCreate_VersionConflictFixedBody(t *testing.T) {
	svc := &stubService{err: article.ErrVersionConflict}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/articles", validArticleJSON)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, article.ConflictMessage, w.Body.String())
}

func TestCreate_EchoesCreatedArticle(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/articles", validArticleJSON)

	require.Equal(t, http.StatusOK, w.Code)
	var got model.Article
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Equal(t, "art1", got.Code)
	assert.Equal(t, "Title", got.Title)
}

func TestCreate_ValidationBodyShape(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPost, "/articles", `{"title": "  ", "status": 1}`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	var lines []string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &lines))
	assert.Equal(t, []string{
		"body: the article body must not be blank",
		"timestamp: the article timestamp must not be null",
		"title: the article title must not be blank",
	}, lines)
}

// ════════════════════════════════════════════════════════════════
// OUTCOME CREATE: 201 / 409 / 500
// ════════════════════════════════════════════════════════════════

func TestCreateWithOutcome_Created(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(router, http.MethodPost, "/articles/create", validArticleJSON)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCreateWithOutcome_Duplicate(t *testing.T) {
	router := newTestRouter(&stubService{err: article.ErrDuplicateArticle})

	w := doRequest(router, http.MethodPost, "/articles/create", validArticleJSON)

	assert.Equal(t, http.StatusConflict, w.Code)
	assert.Equal(t, "Article already exists in the collection!", w.Body.String())
}

func TestCreateWithOutcome_OtherFailure(t *testing.T) {
	router := newTestRouter(&stubService{err: errors.New("store down")})

	w := doRequest(router, http.MethodPost, "/articles/create", validArticleJSON)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error creating article: store down", w.Body.String())
}

// ════════════════════════════════════════════════════════════════
// PARTIAL UPDATE: 200 / 404 / 500
// ════════════════════════════════════════════════════════════════

func TestUpdateFields_OK(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPut, "/articles/update-article/art1",
		`{"title": "t", "body": "b"}`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "art1", svc.gotCode)
}

func TestUpdateFields_NotFound(t *testing.T) {
	router := newTestRouter(&stubService{err: article.ErrArticleNotFound})

	w := doRequest(router, http.MethodPut, "/articles/update-article/missing",
		`{"title": "t", "body": "b"}`)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Article not found in the collection", w.Body.String())
}

func TestUpdateFields_OtherFailure(t *testing.T) {
	router := newTestRouter(&stubService{err: errors.New("store down")})

	w := doRequest(router, http.MethodPut, "/articles/update-article/art1",
		`{"title": "t", "body": "b"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error updating article: store down", w.Body.String())
}

// ════════════════════════════════════════════════════════════════
// URL UPDATE: raw body, optionally quoted
// ════════════════════════════════════════════════════════════════

func TestUpdateURL_StripsQuotes(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodPut, "/articles/update-url/art1",
		`"https://example.com/new"`)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "art1", svc.gotCode)
	assert.Equal(t, "https://example.com/new", svc.gotURL)
}

// ════════════════════════════════════════════════════════════════
// COMPLEX QUERY PARAMS
// ════════════════════════════════════════════════════════════════

func TestFindComplex_OptionalStatus(t *testing.T) {
	svc := &stubService{articles: []model.Article{}}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet,
		"/articles/complex?data=2024-06-01T12:00:00&titulo=abc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, svc.gotStatus)
	assert.Equal(t, "abc", svc.gotTitle)
	assert.Equal(t, time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC), svc.gotTime)
}

func TestFindComplex_WithStatus(t *testing.T) {
	svc := &stubService{articles: []model.Article{}}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet,
		"/articles/complex?data=2024-06-01T12:00:00&status=2", "")

	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.gotStatus)
	assert.Equal(t, 2, *svc.gotStatus)
}

func TestFindComplex_BadTimestamp(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(router, http.MethodGet, "/articles/complex?data=not-a-date", "")

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

// ════════════════════════════════════════════════════════════════
// PAGINATION
// ════════════════════════════════════════════════════════════════

func TestPaginate_SortParamIsIgnored(t *testing.T) {
	svc := &stubService{page: &model.ArticlePage{
		Content: []model.Article{
			{Code: "1", Title: "alpha"},
			{Code: "2", Title: "beta"},
		},
		Page:          0,
		Size:          5,
		TotalElements: 2,
		TotalPages:    1,
	}}
	router := newTestRouter(svc)

	// sort=timestamp,desc được nhận nhưng order trả về vẫn là title asc
	w := doRequest(router, http.MethodGet, "/articles/page?page=0&size=5&sort=timestamp,desc", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.gotPage)
	assert.Equal(t, 5, svc.gotSize)

	var got model.ArticlePage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	require.Len(t, got.Content, 2)
	assert.Equal(t, "alpha", got.Content[0].Title)
	assert.Equal(t, "beta", got.Content[1].Title)
}

func TestPaginate_Defaults(t *testing.T) {
	svc := &stubService{page: &model.ArticlePage{Size: 5}}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/articles/page", "")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 0, svc.gotPage)
	assert.Equal(t, 5, svc.gotSize)
}

// ════════════════════════════════════════════════════════════════
// COMBINED OPERATIONS
// ════════════════════════════════════════════════════════════════

func TestCreateWithAuthor_Created(t *testing.T) {
	router := newTestRouter(&stubService{})

	w := doRequest(router, http.MethodPut, "/articles/with-author",
		`{"article": {"code": "art1", "title": "t", "body": "b", "status": 1},
		  "author": {"code": "a1", "name": "Gabriel"}}`)

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestCreateWithAuthor_Failure(t *testing.T) {
	router := newTestRouter(&stubService{err: errors.New("tx aborted")})

	w := doRequest(router, http.MethodPut, "/articles/with-author",
		`{"article": {"code": "art1"}, "author": {"code": "a1"}}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, "Error creating article with author: tx aborted", w.Body.String())
}

func TestDeleteArticleAndAuthor_Failure(t *testing.T) {
	router := newTestRouter(&stubService{err: article.ErrNoLinkedAuthor})

	w := doRequest(router, http.MethodDelete, "/articles/full", `{"code": "art1"}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), "Error deleting article with author")
}

func TestDeleteByFilter_UsesIdQueryParam(t *testing.T) {
	svc := &stubService{}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodDelete, "/articles/delete?Id=art1", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "art1", svc.gotCode)
}

func TestSearchText_PassesTerm(t *testing.T) {
	svc := &stubService{articles: []model.Article{}}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/articles/search-text?searchTerm=mongo", "")

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "mongo", svc.gotTitle)
}

func TestCountByStatus_ReportShape(t *testing.T) {
	svc := &stubService{counts: []model.ArticleStatusCount{
		{Status: 1, Count: 3},
		{Status: 2, Count: 1},
	}}
	router := newTestRouter(svc)

	w := doRequest(router, http.MethodGet, "/articles/count-by-status", "")

	require.Equal(t, http.StatusOK, w.Code)
	var got []model.ArticleStatusCount
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &got))
	assert.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].Count)
}
