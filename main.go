package main

import (
	"context"
	"time"

	"github.com/shandysiswandi/mailinglist/internal/app"
)

const shutdownTimeout = 10 * time.Second

// @title           Mailing List API
// @version         1.0
// @description     Mailing List subscribes people to a newsletter and sends them a welcome email.
// @license.name    MIT
// @license.url     https://mit-license.org/
// @server          http://localhost:8080
func main() {
	application := app.New()

	<-application.Start()

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	application.Stop(ctx)
}
