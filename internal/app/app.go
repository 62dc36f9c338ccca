package app

import (
	"context"
	"net/http"

	"github.com/redis/go-redis/v9"
	"github.com/shandysiswandi/mailinglist/internal/pkg/clock"
	"github.com/shandysiswandi/mailinglist/internal/pkg/config"
	"github.com/shandysiswandi/mailinglist/internal/pkg/idempotency"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mail"
	"github.com/shandysiswandi/mailinglist/internal/pkg/router"
	"github.com/shandysiswandi/mailinglist/internal/pkg/uid"
	"github.com/shandysiswandi/mailinglist/internal/pkg/validator"
	"go.mongodb.org/mongo-driver/v2/mongo"
)

// App wires dependencies and manages service lifecycle.
type App struct {
	ctx    context.Context
	cancel context.CancelFunc

	// configuration
	config config.Config
	ins    instrument.Instrumentation

	// libraries
	validator validator.Validator
	clock     clock.Clocker
	uuid      uid.StringID

	// resources
	mongoClient *mongo.Client
	mongoDB     *mongo.Database
	cacheConn   *redis.Client
	idemp       idempotency.Idempotency
	mail        mail.Mail

	// server
	router     *router.Router
	httpServer *http.Server

	// released in order by Stop
	closers []closer
}

type closer struct {
	name string
	fn   func(context.Context) error
}

// New initializes the application with default wiring and returns an App instance.
func New() *App {
	ctx, cancel := context.WithCancel(context.Background())
	app := &App{
		ctx:    ctx,
		cancel: cancel,
	}

	app.initConfig()
	app.initInstrument()
	app.initLibraries()
	app.initDatabase()
	app.initCache()
	app.initMail()
	app.initHTTPServer()
	app.initModules()
	app.initClosers()

	return app
}
