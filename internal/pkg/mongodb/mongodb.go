package mongodb

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sethvargo/go-retry"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

var (
	// ErrURLRequired is returned when the connection URL is empty.
	ErrURLRequired = errors.New("mongodb url is required")
	// ErrConnect is returned when every connection attempt failed.
	ErrConnect = errors.New("failed to connect to mongodb")
	// ErrHealthcheck is returned by the probe from Healthcheck.
	ErrHealthcheck = errors.New("mongodb healthcheck failed")
)

// Config configures the client.
type Config struct {
	URL            string
	ConnectTimeout time.Duration
	MaxPoolSize    uint64
	MinPoolSize    uint64
	// RetryAttempts counts tries including the first; zero means one try.
	RetryAttempts uint64
	// RetryInterval is the first backoff step; steps grow but never exceed 5s.
	RetryInterval time.Duration
}

func (c Config) clientOptions() *options.ClientOptions {
	opts := options.Client().ApplyURI(c.URL)
	if c.ConnectTimeout > 0 {
		opts.SetConnectTimeout(c.ConnectTimeout)
	}
	if c.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(c.MaxPoolSize)
	}
	if c.MinPoolSize > 0 {
		opts.SetMinPoolSize(c.MinPoolSize)
	}
	return opts
}

func (c Config) backoff() retry.Backoff {
	interval := c.RetryInterval
	if interval <= 0 {
		interval = 200 * time.Millisecond
	}

	b := retry.NewFibonacci(interval)
	b = retry.WithCappedDuration(5*time.Second, b)
	if c.RetryAttempts > 1 {
		return retry.WithMaxRetries(c.RetryAttempts-1, b)
	}
	return retry.WithMaxRetries(0, b)
}

// New connects and pings MongoDB, retrying until cfg.RetryAttempts is spent.
func New(ctx context.Context, cfg Config) (*mongo.Client, error) {
	if cfg.URL == "" {
		return nil, ErrURLRequired
	}

	var client *mongo.Client
	attempt := 0
	err := retry.Do(ctx, cfg.backoff(), func(ctx context.Context) error {
		attempt++

		c, err := mongo.Connect(cfg.clientOptions())
		if err != nil {
			// invalid options never get better
			return err
		}

		if err := c.Ping(ctx, nil); err != nil {
			slog.WarnContext(ctx, "mongodb ping failed", "attempt", attempt, "error", err)
			_ = c.Disconnect(context.WithoutCancel(ctx))
			return retry.RetryableError(err)
		}

		client = c
		return nil
	})
	if err != nil {
		return nil, errors.Join(ErrConnect, err)
	}

	return client, nil
}

// Healthcheck returns a probe that pings the primary.
func Healthcheck(client *mongo.Client) func(context.Context) error {
	return func(ctx context.Context) error {
		if err := client.Ping(ctx, nil); err != nil {
			return errors.Join(ErrHealthcheck, err)
		}
		return nil
	}
}
