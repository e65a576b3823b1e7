package http

import (
	"net/http"

	"marketplace/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

// Identity headers set by the authenticating gateway in front of this
// service. The service trusts them; credential resolution is the gateway's
// job.
const (
	headerUserID   = "X-User-Id"
	headerUserRole = "X-User-Role"
)

// actorFromRequest builds the acting identity from the gateway headers.
func actorFromRequest(ctx echo.Context) (kernel.Actor, error) {
	id, err := kernel.UUIDFromString(ctx.Request().Header.Get(headerUserID))
	if err != nil {
		return kernel.Actor{}, echo.NewHTTPError(
			http.StatusUnauthorized, "missing or invalid "+headerUserID+" header")
	}

	role, err := kernel.RoleFromString(ctx.Request().Header.Get(headerUserRole))
	if err != nil {
		return kernel.Actor{}, echo.NewHTTPError(
			http.StatusUnauthorized, "missing or invalid "+headerUserRole+" header")
	}

	return kernel.NewActor(id, role)
}
