package handler

import (
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/article"
	"blog-backend/internal/domains/article/model"
	"blog-backend/internal/shared/response"
)

// Query-param timestamps dùng local date-time không timezone,
// period-report dates chỉ có ngày.
const (
	timestampLayout = "2006-01-02T15:04:05"
	dateLayout      = "2006-01-02"
)

type ArticleHandler struct {
	service article.Service
}

func NewArticleHandler(svc article.Service) *ArticleHandler {
	return &ArticleHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) List(c *gin.Context) {
	articles, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/:code
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")

	a, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, a)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /articles
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) Create(c *gin.Context) {
	a, ok := h.bindArticle(c)
	if !ok {
		return
	}

	created, err := h.service.Create(c.Request.Context(), a)
	if err != nil {
		h.writeError(c, err)
		return
	}
	response.JSON(c, http.StatusOK, created)
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /articles/create - outcome body 201/409/500
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) CreateWithOutcome(c *gin.Context) {
	a, ok := h.bindArticle(c)
	if !ok {
		return
	}

	err := h.service.CreateWithOutcome(c.Request.Context(), a)
	switch {
	case err == nil:
		response.Empty(c, http.StatusCreated)
	case errors.Is(err, article.ErrDuplicateArticle):
		response.Conflict(c, "Article already exists in the collection!")
	default:
		response.InternalServerError(c, "Error creating article: "+err.Error())
	}
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/date?data=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindByTimestampAfter(c *gin.Context) {
	t, ok := h.queryTimestamp(c, "data")
	if !ok {
		return
	}

	articles, err := h.service.FindByTimestampAfter(c.Request.Context(), t)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/date-status?data=&status=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindByTimestampAndStatus(c *gin.Context) {
	t, ok := h.queryTimestamp(c, "data")
	if !ok {
		return
	}
	status, ok := h.queryStatus(c)
	if !ok {
		return
	}

	articles, err := h.service.FindByTimestampAndStatus(c.Request.Context(), t, status)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /articles - overwrite
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) Update(c *gin.Context) {
	a, ok := h.bindArticle(c)
	if !ok {
		return
	}

	if err := h.service.Update(c.Request.Context(), a); err != nil {
		h.writeError(c, err)
		return
	}
	response.Empty(c, http.StatusOK)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /articles/update-url/:id - body là URL string mới
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) UpdateURL(c *gin.Context) {
	id := c.Param("id")

	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}
	newURL := strings.Trim(strings.TrimSpace(string(body)), `"`)

	if err := h.service.UpdateURL(c.Request.Context(), id, newURL); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Empty(c, http.StatusOK)
}

// ════════════════════════════════════════════════════════════════
// UPDATE: PUT /articles/update-article/:id - partial fields, 200/404/500
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) UpdateFields(c *gin.Context) {
	id := c.Param("id")

	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.UpdateFields(c.Request.Context(), id, &a)
	switch {
	case err == nil:
		response.Empty(c, http.StatusOK)
	case errors.Is(err, article.ErrArticleNotFound):
		response.NotFound(c, "Article not found in the collection")
	default:
		response.InternalServerError(c, "Error updating article: "+err.Error())
	}
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /articles/:id và DELETE /articles/delete?Id=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	if err := h.service.Delete(c.Request.Context(), id); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Empty(c, http.StatusOK)
}

func (h *ArticleHandler) DeleteByFilter(c *gin.Context) {
	id := c.Query("Id")

	if err := h.service.DeleteByFilter(c.Request.Context(), id); err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.Empty(c, http.StatusOK)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/status-greater-date?status=&data=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindByStatusAndTimestampAfter(c *gin.Context) {
	status, ok := h.queryStatus(c)
	if !ok {
		return
	}
	t, ok := h.queryTimestamp(c, "data")
	if !ok {
		return
	}

	articles, err := h.service.FindByStatusAndTimestampAfter(c.Request.Context(), status, t)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/period?de=&ate=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindBetween(c *gin.Context) {
	from, ok := h.queryTimestamp(c, "de")
	if !ok {
		return
	}
	to, ok := h.queryTimestamp(c, "ate")
	if !ok {
		return
	}

	articles, err := h.service.FindBetween(c.Request.Context(), from, to)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/complex?status=&data=&titulo=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindComplex(c *gin.Context) {
	t, ok := h.queryTimestamp(c, "data")
	if !ok {
		return
	}

	var status *int
	if raw := c.Query("status"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid status: "+raw)
			return
		}
		status = &parsed
	}

	articles, err := h.service.FindComplex(c.Request.Context(), status, t, c.Query("titulo"))
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/page?page=&size=&sort=
// ════════════════════════════════════════════════════════════════

// Paginate honor page/size nhưng server luôn force sort theo title
// ascending; param sort được nhận và bị override.
func (h *ArticleHandler) Paginate(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "0"))
	if err != nil {
		response.BadRequest(c, "invalid page: "+c.Query("page"))
		return
	}
	size, err := strconv.Atoi(c.DefaultQuery("size", "5"))
	if err != nil {
		response.BadRequest(c, "invalid size: "+c.Query("size"))
		return
	}

	result, err := h.service.Paginate(c.Request.Context(), page, size)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, result)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/status-sorted?status= và /status-query-sort?status=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) FindByStatusSorted(c *gin.Context) {
	status, ok := h.queryStatus(c)
	if !ok {
		return
	}

	articles, err := h.service.FindByStatusOrderByTitleAsc(c.Request.Context(), status)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

func (h *ArticleHandler) FindByStatusQuerySort(c *gin.Context) {
	status, ok := h.queryStatus(c)
	if !ok {
		return
	}

	articles, err := h.service.FindByStatusWithSort(c.Request.Context(), status)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /articles/search-text?searchTerm=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) SearchText(c *gin.Context) {
	term := c.Query("searchTerm")

	articles, err := h.service.SearchText(c.Request.Context(), term)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, articles)
}

// ════════════════════════════════════════════════════════════════
// REPORT: GET /articles/count-by-status
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) CountByStatus(c *gin.Context) {
	counts, err := h.service.CountByStatus(c.Request.Context())
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, counts)
}

// ════════════════════════════════════════════════════════════════
// REPORT: GET /articles/author-totals-period?inicio=&fim=
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) AuthorTotalsInPeriod(c *gin.Context) {
	start, ok := h.queryDate(c, "inicio")
	if !ok {
		return
	}
	end, ok := h.queryDate(c, "fim")
	if !ok {
		return
	}

	totals, err := h.service.AuthorTotalsInPeriod(c.Request.Context(), start, end)
	if err != nil {
		response.InternalServerError(c, err.Error())
		return
	}
	response.JSON(c, http.StatusOK, totals)
}

// ════════════════════════════════════════════════════════════════
// CREATE: PUT /articles/with-author - transactional combined create
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) CreateWithAuthor(c *gin.Context) {
	var req model.ArticleWithAuthorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.CreateWithAuthor(c.Request.Context(), &req.Article, &req.Author)
	if err != nil {
		response.InternalServerError(c, "Error creating article with author: "+err.Error())
		return
	}
	response.Empty(c, http.StatusCreated)
}

// ════════════════════════════════════════════════════════════════
// DELETE: DELETE /articles/full - transactional combined delete
// ════════════════════════════════════════════════════════════════

func (h *ArticleHandler) DeleteArticleAndAuthor(c *gin.Context) {
	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	err := h.service.DeleteArticleAndAuthor(c.Request.Context(), &a)
	if err != nil {
		response.InternalServerError(c, "Error deleting article with author: "+err.Error())
		return
	}
	response.Empty(c, http.StatusOK)
}

// ════════════════════════════════════════════════════════════════
// HELPERS
// ════════════════════════════════════════════════════════════════

// bindArticle decode và validate một article body; response đã được ghi
// khi return !ok.
func (h *ArticleHandler) bindArticle(c *gin.Context) (*model.Article, bool) {
	var a model.Article
	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, err.Error())
		return nil, false
	}

	if err := a.Validate(); err != nil {
		if fieldErrors, ok := err.(validation.Errors); ok {
			response.ValidationErrors(c, fieldErrors)
		} else {
			response.BadRequest(c, err.Error())
		}
		return nil, false
	}
	return &a, true
}

// writeError map service errors sang status code; version conflict nhận
// body message cố định.
func (h *ArticleHandler) writeError(c *gin.Context, err error) {
	if errors.Is(err, article.ErrVersionConflict) {
		response.Conflict(c, article.ConflictMessage)
		return
	}
	response.Message(c, article.ToHTTPStatus(err), err.Error())
}

func (h *ArticleHandler) queryTimestamp(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse(timestampLayout, raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+": "+raw)
		return time.Time{}, false
	}
	return t, true
}

func (h *ArticleHandler) queryDate(c *gin.Context, name string) (time.Time, bool) {
	raw := c.Query(name)
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		response.BadRequest(c, "invalid "+name+": "+raw)
		return time.Time{}, false
	}
	return t, true
}

func (h *ArticleHandler) queryStatus(c *gin.Context) (int, bool) {
	raw := c.Query("status")
	status, err := strconv.Atoi(raw)
	if err != nil {
		response.BadRequest(c, "invalid status: "+raw)
		return 0, false
	}
	return status, true
}
