package model

import (
	authormodel "blog-backend/internal/domains/author/model"
)

// ArticleWithAuthorRequest - PUT /articles/with-author
// Cả hai documents được persist trong cùng một transaction.
type ArticleWithAuthorRequest struct {
	Article Article            `json:"article"`
	Author  authormodel.Author `json:"author"`
}
