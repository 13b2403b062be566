package middleware

import "github.com/labstack/echo/v4"

const anonymous = "anon"

// subject returns the authenticated token subject, or "anon" for
// requests that did not pass through JWTAuth.
func subject(c echo.Context) string {
	if s, ok := c.Get(ctxSubject).(string); ok && s != "" {
		return s
	}
	return anonymous
}
