package article

import "errors"

var (
	// Business Rule Errors
	ErrArticleNotFound  = errors.New("article not found in the collection")
	ErrAuthorReference  = errors.New("referenced author does not exist")
	ErrVersionConflict  = errors.New("article version mismatch - conflict detected")
	ErrDuplicateArticle = errors.New("article already exists in the collection")
	ErrNoLinkedAuthor   = errors.New("article has no linked author")
)

// ConflictMessage là body cố định cho 409 khi optimistic lock fail
const ConflictMessage = "Concurrency error: the article was updated by another user, please try again!"

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrArticleNotFound):
		return 404
	case errors.Is(err, ErrVersionConflict), errors.Is(err, ErrDuplicateArticle):
		return 409
	case errors.Is(err, ErrAuthorReference), errors.Is(err, ErrNoLinkedAuthor):
		return 400
	default:
		return 500
	}
}
