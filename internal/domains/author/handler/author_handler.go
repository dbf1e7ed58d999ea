package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"blog-backend/internal/domains/author"
	"blog-backend/internal/domains/author/model"
	"blog-backend/internal/shared/response"
)

type AuthorHandler struct {
	service author.Service
}

func NewAuthorHandler(svc author.Service) *AuthorHandler {
	return &AuthorHandler{
		service: svc,
	}
}

// ════════════════════════════════════════════════════════════════
// CREATE: POST /authors
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) Create(c *gin.Context) {
	var a model.Author

	if err := c.ShouldBindJSON(&a); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	created, err := h.service.Create(c.Request.Context(), &a)
	if err != nil {
		if fieldErrors, ok := err.(validation.Errors); ok {
			response.ValidationErrors(c, fieldErrors)
			return
		}
		response.Message(c, author.ToHTTPStatus(err), err.Error())
		return
	}

	response.JSON(c, http.StatusCreated, created)
}

// ════════════════════════════════════════════════════════════════
// READ: GET /authors/:code
// ════════════════════════════════════════════════════════════════

func (h *AuthorHandler) GetByCode(c *gin.Context) {
	code := c.Param("code")

	a, err := h.service.GetByCode(c.Request.Context(), code)
	if err != nil {
		response.Message(c, author.ToHTTPStatus(err), err.Error())
		return
	}

	response.JSON(c, http.StatusOK, a)
}
