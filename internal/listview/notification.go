package listview

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"entq/internal/pkg/graphql"
)

// Notification is a transient, dismissible message.
type Notification struct {
	Message   string
	CreatedAt time.Time
}

// Expired reports whether a notification shown for timeout is due to hide.
func (n *Notification) Expired(now time.Time, timeout time.Duration) bool {
	return timeout > 0 && now.Sub(n.CreatedAt) >= timeout
}

// FormatError turns a query failure into a message for the user.
func FormatError(err error) string {
	var gqlErrs graphql.Errors
	var httpErr *graphql.HTTPError

	switch {
	case err == nil:
		return ""
	case errors.As(err, &gqlErrs):
		return fmt.Sprintf("Error loading entities: %s", gqlErrs.Error())
	case errors.As(err, &httpErr):
		return fmt.Sprintf(
			"Error loading entities: server responded %d %s",
			httpErr.StatusCode,
			http.StatusText(httpErr.StatusCode),
		)
	case errors.Is(err, context.DeadlineExceeded):
		return "Error loading entities: request timed out"
	default:
		return fmt.Sprintf("Error loading entities: %s", err.Error())
	}
}
