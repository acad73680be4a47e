package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/session"
)

type authApi struct {
	store     *session.Store
	twoFactor *session.TwoFactor
	validate  *validator.Validate
}

func registerAuthAPI(g *echo.Group, deps ServerDeps) {
	api := authApi{
		store:     deps.SessionStore,
		twoFactor: deps.TwoFactor,
		validate:  deps.Validate,
	}

	g.POST("/login", api.login)
	g.POST("/verify-2fa", api.verify)
	g.POST("/logout", api.logout)
	g.GET("/me", api.me)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	res, err := api.store.Login(data.Identifier, data.Password)
	if err != nil {
		switch errors.Cause(err) {
		case session.ErrInvalidCredentials:
			return core.NewValidationError(errors.New("invalid credentials"))
		case session.ErrLoginInFlight:
			return echo.NewHTTPError(http.StatusConflict, "a login attempt is already in progress")
		}
		return errors.Wrap(err, "logging in")
	}

	if res.TwoFactorRequired {
		token, err := api.twoFactor.Challenge(res.UserID)
		if err != nil {
			return errors.Wrap(err, "issuing two-factor challenge")
		}
		return ctx.JSON(http.StatusOK, echo.Map{
			"twoFactorRequired": true,
			"userId":            res.UserID,
			"verificationToken": token,
		})
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": res.User})
}

// verify completes a two-factor login. Missing or invalid values redirect
// back to the login entry point immediately.
func (api *authApi) verify(ctx echo.Context) error {
	var data VerifyRequest
	if err := ctx.Bind(&data); err != nil {
		return ctx.Redirect(http.StatusFound, session.LoginRoute)
	}

	if err := api.twoFactor.Verify(data.UserID, data.Token, data.Code); err != nil {
		return ctx.Redirect(http.StatusFound, session.LoginRoute)
	}

	usr, err := api.store.CompleteLogin(data.UserID)
	if err != nil {
		return errors.Wrap(err, "completing login")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": usr})
}

func (api *authApi) logout(ctx echo.Context) error {
	target := api.store.Logout()
	return ctx.JSON(http.StatusOK, echo.Map{"message": "logged out", "redirect": target})
}

func (api *authApi) me(ctx echo.Context) error {
	usr, ok := api.store.Current()
	if !ok {
		return errUnauthorized
	}
	return ctx.JSON(http.StatusOK, echo.Map{"user": usr})
}
