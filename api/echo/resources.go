package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/core/ticket"
)

type resourceApi struct {
	schoolSvc *school.Service
	ticketSvc *ticket.Service
	notifier  session.Notifier
	validate  *validator.Validate
}

func registerResourceAPI(g *echo.Group, deps ServerDeps) {
	api := resourceApi{
		schoolSvc: deps.SchoolSvc,
		ticketSvc: deps.TicketSvc,
		notifier:  deps.Notifier,
		validate:  deps.Validate,
	}

	sg := g.Group("/schools", permissionMiddleware(deps.SessionStore, "schools"))
	sg.GET("", api.querySchools)
	sg.POST("", api.createSchool)

	ag := g.Group("/admins", permissionMiddleware(deps.SessionStore, "admins"))
	ag.GET("", api.queryAdmins)
	ag.POST("", api.createAdmin)
	ag.PUT("/:id", api.updateAdmin)
	ag.DELETE("/:id", api.destroyAdmin)
	ag.PATCH("/:id/status", api.setAdminStatus)

	g.GET("/students", api.queryStudents, permissionMiddleware(deps.SessionStore, "students"))
	g.GET("/dashboard/stats", api.stats, permissionMiddleware(deps.SessionStore, "reports"))
}

func (api *resourceApi) querySchools(ctx echo.Context) error {
	schools, err := api.schoolSvc.Schools()
	if err != nil {
		return errors.Wrap(err, "listing schools")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"schools": schools})
}

func (api *resourceApi) createSchool(ctx echo.Context) error {
	var data school.NewSchool
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewSchool")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	sch, err := api.schoolSvc.CreateSchool(data)
	if err != nil {
		if errors.Cause(err) == school.ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return errors.Wrap(err, "creating school")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"school": sch})
}

func (api *resourceApi) queryAdmins(ctx echo.Context) error {
	admins, err := api.schoolSvc.Admins()
	if err != nil {
		return errors.Wrap(err, "listing admins")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"admins": admins})
}

func (api *resourceApi) createAdmin(ctx echo.Context) error {
	var data school.NewAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAdmin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	adm, err := api.schoolSvc.CreateAdmin(data)
	if err != nil {
		if errors.Cause(err) == school.ErrEmailExists {
			return core.NewValidationError(err, core.FieldError{Field: "email", Error: err.Error()})
		}
		return errors.Wrap(err, "creating admin")
	}
	return ctx.JSON(http.StatusCreated, echo.Map{"admin": adm})
}

func (api *resourceApi) updateAdmin(ctx echo.Context) error {
	var data school.UpdateAdmin
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAdmin")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	adm, err := api.schoolSvc.UpdateAdmin(ctx.Param("id"), data)
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating admin")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"admin": adm})
}

func (api *resourceApi) destroyAdmin(ctx echo.Context) error {
	if err := api.schoolSvc.DeleteAdmin(ctx.Param("id")); err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "deleting admin")
	}
	return ctx.NoContent(http.StatusNoContent)
}

func (api *resourceApi) setAdminStatus(ctx echo.Context) error {
	var data AdminStatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to AdminStatusRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	adm, err := api.schoolSvc.SetAdminStatus(ctx.Param("id"), data.Status)
	if err != nil {
		if errors.Cause(err) == school.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating admin status")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"admin": adm})
}

func (api *resourceApi) queryStudents(ctx echo.Context) error {
	students, err := api.schoolSvc.Students()
	if err != nil {
		return errors.Wrap(err, "listing students")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"students": students})
}

// stats serves the dashboard headline numbers. A one-time reportGenerated
// marker on the URL produces a success notification and is stripped from
// the address via redirect before the stats render.
func (api *resourceApi) stats(ctx echo.Context) error {
	if ctx.QueryParam("reportGenerated") == "true" {
		api.notifier.Success("Report generated successfully")
		return ctx.Redirect(http.StatusFound, ctx.Path())
	}

	active, err := api.ticketSvc.ActiveCount()
	if err != nil {
		return errors.Wrap(err, "counting active tickets")
	}
	stats, err := api.schoolSvc.Stats(active)
	if err != nil {
		return errors.Wrap(err, "aggregating stats")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"stats": stats})
}
