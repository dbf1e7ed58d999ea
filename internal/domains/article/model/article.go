package model

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	authormodel "blog-backend/internal/domains/author/model"
)

// Article là entity trong collection "articles".
//
// Version backs optimistic concurrency: inserts start at 1 and every
// successful replace matches on {_id, version} and increments it. A replace
// that matches nothing while the document still exists is a version conflict.
type Article struct {
	Code      string              `json:"code" bson:"_id"`
	Title     string              `json:"title" bson:"title"`
	Timestamp time.Time           `json:"timestamp" bson:"timestamp"`
	Body      string              `json:"body" bson:"body"`
	URL       string              `json:"url,omitempty" bson:"url,omitempty"`
	Status    int                 `json:"status" bson:"status"`
	Author    *authormodel.Author `json:"author,omitempty" bson:"author,omitempty"`
	Version   int64               `json:"version" bson:"version"`
}

func (a Article) Validate() error {
	return validation.ValidateStruct(&a,
		validation.Field(&a.Title,
			validation.Required.Error("the article title must not be blank"),
			validation.By(notBlank("the article title must not be blank")),
		),
		validation.Field(&a.Timestamp,
			validation.Required.Error("the article timestamp must not be null"),
		),
		validation.Field(&a.Body,
			validation.Required.Error("the article body must not be blank"),
			validation.By(notBlank("the article body must not be blank")),
		),
		validation.Field(&a.Status,
			validation.Required.Error("the article status must not be null"),
		),
	)
}

// notBlank rejects strings chỉ chứa whitespace (Required để lọt qua)
func notBlank(message string) validation.RuleFunc {
	return func(value interface{}) error {
		s, _ := value.(string)
		if s != "" && strings.TrimSpace(s) == "" {
			return validation.NewError("validation_is_blank", message)
		}
		return nil
	}
}
