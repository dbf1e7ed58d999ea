package model

import (
	authormodel "blog-backend/internal/domains/author/model"
)

// Derived reporting rows. Computed by aggregation pipelines, never persisted.

// ArticleStatusCount là một row per distinct status value
type ArticleStatusCount struct {
	Status int   `json:"status" bson:"_id"`
	Count  int64 `json:"count" bson:"count"`
}

// AuthorArticleTotal là một row per author trong một date range
type AuthorArticleTotal struct {
	Author        *authormodel.Author `json:"author" bson:"author"`
	TotalArticles int64               `json:"totalArticles" bson:"totalArticles"`
}

// ArticlePage là một trang kết quả của paginated listing
type ArticlePage struct {
	Content       []Article `json:"content"`
	Page          int       `json:"page"`
	Size          int       `json:"size"`
	TotalElements int64     `json:"totalElements"`
	TotalPages    int       `json:"totalPages"`
}
