package author

import "errors"

var (
	ErrAuthorNotFound  = errors.New("author not found")
	ErrDuplicateAuthor = errors.New("author already exists in the collection")
)

// ToHTTPStatus converts error to HTTP status code
func ToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrAuthorNotFound):
		return 404
	case errors.Is(err, ErrDuplicateAuthor):
		return 409
	default:
		return 500
	}
}
