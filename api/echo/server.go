package echoapi

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/log"

	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/core/ticket"
)

type (
	ServerDeps struct {
		Conf           *core.Config
		Logger         core.Logger
		SessionStore   *session.Store
		TwoFactor      *session.TwoFactor
		Notifier       session.Notifier
		TicketSvc      *ticket.Service
		SchoolSvc      *school.Service
		Validate       *validator.Validate
		Translator     ut.Translator
		DisableReqLogs bool
	}

	Server interface {
		http.Handler
		Start()
		Shutdown(context.Context) error
		Close() error
		Errors() <-chan error
		ShutdownSignal() <-chan os.Signal
	}

	server struct {
		deps       ServerDeps
		app        *echo.Echo
		errCh      chan error
		shutdownCh chan os.Signal
	}
)

var _ Server = (*server)(nil)

func NewServer(deps ServerDeps) Server {
	s := &server{
		deps:       deps,
		app:        echo.New(),
		errCh:      make(chan error, 1),
		shutdownCh: make(chan os.Signal, 1),
	}
	signal.Notify(s.shutdownCh, os.Interrupt, syscall.SIGTERM)
	s.setup()
	return s
}

func (s *server) setup() {
	conf := s.deps.Conf

	s.app.Pre(middleware.RemoveTrailingSlash())
	if !s.deps.DisableReqLogs {
		s.app.Use(middleware.Logger())
	}
	// do not recover in DEV|TEST mode
	if !(conf.Debug || conf.TestMode) {
		s.app.Use(middleware.RecoverWithConfig(middleware.RecoverConfig{LogLevel: log.ERROR}))
	}

	s.app.HTTPErrorHandler = newAppHTTPErrorHandler(s.deps.Logger, s.deps.SessionStore, s.deps.Translator, s.signalShutdown)
	s.app.Debug = conf.Debug

	s.app.GET("/", home)
	s.app.GET(session.LoginRoute, loginEntry)

	auth := s.app.Group("/api/auth")
	registerAuthAPI(auth, s.deps)

	// every dashboard resource sits behind the session guard
	guard := session.NewGuard(s.deps.SessionStore)
	sa := s.app.Group("/super-admin", guardMiddleware(guard))
	registerTicketAPI(sa, s.deps)
	registerResourceAPI(sa, s.deps)
}

func (s *server) Start() {
	if err := s.app.Start(s.deps.Conf.Server.Address); err != nil {
		s.errCh <- err
	}
}

func (s *server) Shutdown(ctx context.Context) error {
	return s.app.Shutdown(ctx)
}

func (s *server) Close() error {
	return s.app.Close()
}

func (s *server) Errors() <-chan error {
	return s.errCh
}

func (s *server) ShutdownSignal() <-chan os.Signal {
	return s.shutdownCh
}

func (s *server) signalShutdown() {
	s.shutdownCh <- syscall.SIGTERM
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) { // for tests
	s.app.ServeHTTP(w, r)
}

func home(ctx echo.Context) error {
	return ctx.String(http.StatusOK, "Welcome to the Super Admin Portal API!")
}

// loginEntry is the navigation target the guard redirects unauthenticated
// visitors to. The actual credential exchange happens on /api/auth/login.
func loginEntry(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, echo.Map{"message": "please sign in via POST /api/auth/login"})
}
