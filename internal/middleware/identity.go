package middleware

// identity.go provides the user-identification helper shared by the
// cache and rate-limit middleware.  It reads the values JWTAuth stored in
// the context; unauthenticated requests are keyed as "anon".

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// currentUserID extracts a stable user identifier from the context for
// key building.  It tolerates the claim arriving as a string or a JSON
// number and falls back to "anon".
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	if v == nil {
		return "anon"
	}
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	}
	return "anon"
}
