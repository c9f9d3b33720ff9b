package jupiter

import (
	"fmt"
	"strings"
)

// HTTPError is returned when the API answers with a non-2xx status. Body
// carries the raw response so callers can inspect upstream business errors
// (for example "no route found" on a quote).
type HTTPError struct {
	StatusCode int
	Body       []byte
}

func (e *HTTPError) Error() string {
	b := strings.TrimSpace(string(e.Body))
	if b == "" {
		return fmt.Sprintf("jupiter http %d", e.StatusCode)
	}
	return fmt.Sprintf("jupiter http %d: %s", e.StatusCode, b)
}
