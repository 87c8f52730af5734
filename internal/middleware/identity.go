package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/wizonweb/wizon-server/internal/model"
)

// AdminFrom returns the identity AdminAuth attached to the context.  ok is
// false when the request never passed the gate.
func AdminFrom(c echo.Context) (model.AdminIdentity, bool) {
	email, _ := c.Get(ContextEmail).(string)
	role, _ := c.Get(ContextRole).(string)
	if email == "" {
		return model.AdminIdentity{}, false
	}
	return model.AdminIdentity{Email: email, Role: role}, true
}
