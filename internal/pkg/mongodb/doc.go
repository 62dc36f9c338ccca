// Package mongodb bootstraps a MongoDB client.
//
// New retries the initial connect and ping with a capped Fibonacci backoff so
// the service can start before the database is ready. Healthcheck returns a
// probe suitable for the /health endpoint.
package mongodb
