package app

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/cors"
	"github.com/shandysiswandi/mailinglist/internal/pkg/clock"
	"github.com/shandysiswandi/mailinglist/internal/pkg/config"
	"github.com/shandysiswandi/mailinglist/internal/pkg/idempotency"
	"github.com/shandysiswandi/mailinglist/internal/pkg/instrument"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mail"
	"github.com/shandysiswandi/mailinglist/internal/pkg/mongodb"
	"github.com/shandysiswandi/mailinglist/internal/pkg/router"
	"github.com/shandysiswandi/mailinglist/internal/pkg/uid"
	"github.com/shandysiswandi/mailinglist/internal/pkg/validator"
)

const driverMongoDB = "mongodb"

// failOn logs err and exits the process.
func failOn(err error, msg string, args ...any) {
	if err == nil {
		return
	}

	slog.Error(msg, append([]any{"error", err}, args...)...)
	os.Exit(1)
}

func (a *App) initConfig() {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "/config/config.yaml"
		if os.Getenv("LOCAL") == "true" {
			path = "./config/config.yaml"
		}
	}

	cfg, err := config.NewViper(path)
	failOn(err, "failed to init config")

	//nolint:errcheck,gosec // ignore error
	os.Setenv("TZ", cfg.GetString("app.tz"))

	a.config = cfg
}

func (a *App) initInstrument() {
	ins, err := instrument.New(context.Background(), &instrument.Config{
		Enabled:          a.config.GetBool("instrument.enabled"),
		ServiceName:      a.config.GetString("instrument.service_name"),
		ServiceVersion:   a.config.GetString("instrument.service_version"),
		Environment:      a.config.GetString("instrument.env"),
		OTLPEndpoint:     a.config.GetString("instrument.otlp_endpoint"),
		OTLPSecure:       a.config.GetBool("instrument.otlp_secure"),
		TraceSampleRatio: a.config.GetFloat64("instrument.trace_sample_ratio"),
		MetricsInterval:  a.config.GetSecond("instrument.metric_interval_seconds"),
		MaskFields:       a.config.GetArray("instrument.log_mask_fields"),
	})
	failOn(err, "failed to init instrumentation")
	a.ins = ins
}

func (a *App) initLibraries() {
	a.clock = clock.New()
	a.uuid = uid.NewUUID()

	validator, err := validator.NewV10Validator()
	failOn(err, "failed to init validation v10 validator")
	a.validator = validator
}

func (a *App) initDatabase() {
	driver := strings.ToLower(strings.TrimSpace(a.config.GetString("database.driver")))
	if driver != driverMongoDB {
		slog.Info("subscribers are kept in memory", "driver", driver)
		return
	}

	client, err := mongodb.New(a.ctx, mongodb.Config{
		URL:            a.config.GetString("database.mongodb.url"),
		ConnectTimeout: a.config.GetSecond("database.mongodb.connect_timeout_seconds"),
		MaxPoolSize:    a.config.GetUint64("database.mongodb.max_pool_size"),
		MinPoolSize:    a.config.GetUint64("database.mongodb.min_pool_size"),
		RetryAttempts:  a.config.GetUint64("database.mongodb.retry_attempts"),
		RetryInterval:  a.config.GetSecond("database.mongodb.retry_interval_seconds"),
	})
	failOn(err, "failed to connect to mongodb")

	a.mongoClient = client
	a.mongoDB = client.Database(a.config.GetString("database.mongodb.name"))
}

func (a *App) initCache() {
	url := strings.TrimSpace(a.config.GetString("redis.url"))
	if url == "" {
		slog.Info("redis url is empty, idempotency keys are ignored")
		return
	}

	opt, err := redis.ParseURL(url)
	failOn(err, "failed to parse redis url")

	rdb := redis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(a.ctx, 5*time.Second)
	defer cancel()
	failOn(rdb.Ping(pingCtx).Err(), "failed to reach redis", "url", opt.Addr)

	a.cacheConn = rdb
	a.idemp = idempotency.New(a.cacheConn)
}

func (a *App) initMail() {
	driver := a.config.GetString("mail.driver")
	from := a.config.GetString("mail.from")

	client, err := mail.NewFromDriver(a.ctx, driver, mail.FactoryOptions{
		SMTP: mail.SMTPConfig{
			Host:     a.config.GetString("mail.host"),
			Port:     a.config.GetInt("mail.port"),
			Username: a.config.GetString("mail.username"),
			Password: a.config.GetString("mail.password"),
			From:     from,
		},
		Postmark: mail.PostmarkConfig{
			ServerToken:  strings.TrimSpace(a.config.GetString("mail.postmark.server_token")),
			AccountToken: strings.TrimSpace(a.config.GetString("mail.postmark.account_token")),
			From:         from,
		},
		SES: mail.SESConfig{
			Region:    strings.TrimSpace(a.config.GetString("mail.ses.region")),
			AccessKey: strings.TrimSpace(a.config.GetString("mail.ses.access_key")),
			SecretKey: strings.TrimSpace(a.config.GetString("mail.ses.secret_key")),
			From:      from,
		},
	})
	failOn(err, "failed to init mail", "driver", driver)

	a.mail = client
}

func (a *App) initHTTPServer() {
	a.router = router.NewRouter(router.Config{
		Config:     a.config,
		UUID:       a.uuid,
		Instrument: a.ins,
	})

	routerWithCORS := cors.New(cors.Options{
		AllowedOrigins: a.config.GetArray("app.server.cors"),
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodOptions,
		},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	}).Handler(a.router)

	a.httpServer = &http.Server{
		Addr:              a.config.GetString("app.server.http.address"),
		Handler:           routerWithCORS,
		ReadTimeout:       a.config.GetSecond("app.server.http.read_timeout_seconds"),
		ReadHeaderTimeout: a.config.GetSecond("app.server.http.read_header_timeout_seconds"),
		WriteTimeout:      a.config.GetSecond("app.server.http.write_timeout_seconds"),
		IdleTimeout:       a.config.GetSecond("app.server.http.idle_timeout_seconds"),
	}
}

func (a *App) initClosers() {
	a.closers = []closer{
		{name: "Instrument", fn: a.ins.Shutdown},
		{name: "Mail", fn: func(context.Context) error { return a.mail.Close() }},
	}

	if a.cacheConn != nil {
		a.closers = append(a.closers, closer{
			name: "Redis",
			fn:   func(context.Context) error { return a.cacheConn.Close() },
		})
	}

	if a.mongoClient != nil {
		a.closers = append(a.closers, closer{name: "MongoDB", fn: a.mongoClient.Disconnect})
	}

	a.closers = append(a.closers, closer{
		name: "Config",
		fn:   func(context.Context) error { return a.config.Close() },
	})
}
