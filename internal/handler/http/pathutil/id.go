package pathutil

import (
	"errors"
	"strconv"
	"strings"
)

// ErrInvalidID means the trailing path segment was not a positive integer.
var ErrInvalidID = errors.New("invalid id")

// ExtractID parses the article ID that follows prefix in the request path,
// e.g. ExtractID("/api/articles/42", "/api/articles/") returns 42. IDs are
// database serials, so zero and negatives are rejected along with anything
// non-numeric.
func ExtractID(path, prefix string) (int64, error) {
	raw := strings.TrimPrefix(path, prefix)
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, ErrInvalidID
	}
	return id, nil
}
