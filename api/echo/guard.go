package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/megatechsolutions/superadmin/core/session"
)

// permissionMiddleware rejects users lacking the capability for a resource
// group. The "all" permission grants everything.
func permissionMiddleware(store *session.Store, perm string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			usr, ok := store.Current()
			if !ok {
				return errUnauthorized
			}
			if !usr.HasPermission(perm) {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

// guardMiddleware adapts the session guard's decision to the HTTP surface:
// a neutral holding response while the initial restore is pending, a single
// redirect to the login entry point for unauthenticated visitors, and
// untouched pass-through once a user is present.
func guardMiddleware(guard *session.Guard) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			switch guard.Decide() {
			case session.DecisionLoading:
				return ctx.JSON(http.StatusServiceUnavailable, echo.Map{"message": "session restore in progress"})
			case session.DecisionRedirect:
				return ctx.Redirect(http.StatusFound, session.LoginRoute)
			case session.DecisionNone:
				return errUnauthorized
			default:
				return next(ctx)
			}
		}
	}
}
