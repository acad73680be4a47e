package echoapi

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/core/ticket"
)

type ticketApi struct {
	svc      *ticket.Service
	store    *session.Store
	validate *validator.Validate
}

func registerTicketAPI(g *echo.Group, deps ServerDeps) {
	api := ticketApi{
		svc:      deps.TicketSvc,
		store:    deps.SessionStore,
		validate: deps.Validate,
	}

	tg := g.Group("/tickets", permissionMiddleware(deps.SessionStore, "tickets"))
	tg.GET("", api.query)
	tg.GET("/:id", api.retrieve)
	tg.POST("/:id/respond", api.respond)
	tg.PATCH("/:id/status", api.setStatus)
}

func (api *ticketApi) query(ctx echo.Context) error {
	convs, err := api.svc.ListConversations()
	if err != nil {
		return errors.Wrap(err, "listing conversations")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"tickets": convs})
}

// retrieve opens the conversation: the unread counter resets as a side
// effect, exactly once per unread batch.
func (api *ticketApi) retrieve(ctx echo.Context) error {
	conv, err := api.svc.OpenConversation(ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == ticket.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "opening conversation")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ticket": conv})
}

func (api *ticketApi) respond(ctx echo.Context) error {
	var data RespondRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to RespondRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, ok := api.store.Current()
	if !ok {
		return errUnauthorized
	}

	if _, err := api.svc.SendMessage(ctx.Param("id"), ticket.SenderSupport, usr.Name, data.Message); err != nil {
		switch errors.Cause(err) {
		case ticket.ErrNotFound:
			return errHttpNotFound
		case ticket.ErrEmptyMessage:
			return core.NewValidationError(err, core.FieldError{Field: "message", Error: err.Error()})
		case ticket.ErrTicketClosed:
			return echo.NewHTTPError(http.StatusConflict, "ticket is closed")
		}
		return errors.Wrap(err, "sending message")
	}

	t, err := api.svc.Get(ctx.Param("id"))
	if err != nil {
		return errors.Wrap(err, "reloading ticket")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ticket": t})
}

func (api *ticketApi) setStatus(ctx echo.Context) error {
	var data StatusRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to StatusRequest")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	var t ticket.Ticket
	var err error
	switch data.Status {
	case ticket.StatusClosed, ticket.ConversationResolved:
		t, err = api.svc.Resolve(ctx.Param("id"))
	default: // open / active
		t, err = api.svc.Reopen(ctx.Param("id"))
	}
	if err != nil {
		if errors.Cause(err) == ticket.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "updating ticket status")
	}
	return ctx.JSON(http.StatusOK, echo.Map{"ticket": t})
}
