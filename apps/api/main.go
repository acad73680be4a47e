package main

import (
	"context"
	"expvar"
	"fmt"
	"log"
	"net/http"
	_ "net/http/pprof"
	"os"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	echoapi "github.com/megatechsolutions/superadmin/api/echo"
	"github.com/megatechsolutions/superadmin/core"
	"github.com/megatechsolutions/superadmin/core/school"
	"github.com/megatechsolutions/superadmin/core/session"
	"github.com/megatechsolutions/superadmin/core/ticket"
	emailsvc "github.com/megatechsolutions/superadmin/services/email"
	logsvc "github.com/megatechsolutions/superadmin/services/logger"
	notifysvc "github.com/megatechsolutions/superadmin/services/notify"
	"github.com/megatechsolutions/superadmin/storage/database"
	sqlxrepos "github.com/megatechsolutions/superadmin/storage/database/sqlx"
	"github.com/megatechsolutions/superadmin/storage/localstore"
)

func main() {
	// =========================================================================
	// Set up Dependencies

	conf := core.NewConfig()

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "API : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	logger.Enable(!conf.Debug)

	// set up storage: the JSON datastore is the default; a configured
	// database URL switches the resource repositories to SQL.
	store, err := localstore.Open(conf.Storage.Path)
	if err != nil {
		logger.Fatal(fmt.Sprintf("opening datastore: %v", err), err)
	}
	sessRepo := session.Repository(localstore.NewSessionRepository(store))
	ticketRepo := ticket.Repository(localstore.NewTicketRepository(store))
	schoolRepo := school.Repository(localstore.NewSchoolRepository(store))

	if conf.Storage.DatabaseURL != "" {
		db, err := database.Open(conf)
		if err != nil {
			logger.Fatal(fmt.Sprintf("setting up database: %v", err), err)
		}
		defer func() { _ = db.Close() }()
		if err = database.Migrate(db); err != nil {
			logger.Fatal(fmt.Sprintf("migrating database: %v", err), err)
		}
		ticketRepo = sqlxrepos.NewTicketRepository(db)
		schoolRepo = sqlxrepos.NewSchoolRepository(db)
	}

	// set up services
	var mailSvc core.EmailService
	if conf.Debug {
		mailSvc = emailsvc.NewConsoleService(conf)
	} else {
		mailSvc = emailsvc.NewSendgridService(conf, logger)
	}
	notifier := notifysvc.NewConsoleNotifier(logger)

	dir := session.DemoDirectory()
	sessStore := session.NewStore(sessRepo, dir, notifier, conf)
	twoFactor := session.NewTwoFactor(dir, mailSvc, conf)
	ticketSvc := ticket.NewService(ticketRepo)
	schoolSvc := school.NewService(schoolRepo)

	// =========================================================================
	// Initialize App

	logger.Info(fmt.Sprintf("Application initializing : version %q", conf.Build))
	defer logger.Info("Application stopped")

	validate := validator.New()
	translator := newTranslator()
	core.InitValidators(validate, translator)

	// the one-time restore: the session either comes back from storage or
	// the visitor starts unauthenticated, never an indeterminate state
	sessStore.Restore()

	// =========================================================================
	// Start Debug Service
	//
	// /debug/pprof - Added to the default mux by importing the net/http/pprof package.
	// /debug/vars - Added to the default mux by importing the expvar package.

	expvar.NewString("build").Set(conf.Build)
	expvar.NewString("env").Set(conf.Env)

	go func() {
		if err := http.ListenAndServe(conf.Server.DebugAddress, http.DefaultServeMux); err != nil {
			logger.Error(fmt.Sprintf("debug server closed: %v", err), err)
		}
	}()

	// =========================================================================
	// Start API Service

	server := echoapi.NewServer(
		echoapi.ServerDeps{
			Conf:         conf,
			Logger:       logger,
			SessionStore: sessStore,
			TwoFactor:    twoFactor,
			Notifier:     notifier,
			TicketSvc:    ticketSvc,
			SchoolSvc:    schoolSvc,
			Validate:     validate,
			Translator:   translator,
		},
	)

	go func() {
		server.Start()
	}()

	// =========================================================================
	// Shutdown

	select {
	case err := <-server.Errors():
		logger.Fatal(fmt.Sprintf("server error: %v", err), err)

	case sig := <-server.ShutdownSignal():
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), conf.Server.ShutdownTimeout)
		defer cancel()

		// asking listener to shutdown and shed load
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)

			if err = server.Close(); err != nil {
				logger.Fatal(fmt.Sprintf("could not force stop server: %v", err), err)
			}
		}
	}
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}
