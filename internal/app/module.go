package app

import (
	"log/slog"
	"os"

	"github.com/shandysiswandi/mailinglist/internal/mailinglist"
)

func (a *App) initModules() {
	dep := mailinglist.Dependency{
		Config:     a.config,
		Instrument: a.ins,
		Router:     a.router,
		Validator:  a.validator,
		Clock:      a.clock,
		Mail:       a.mail,
		MongoDB:    a.mongoDB,
		// nil unless redis.url is set
		Idempotency: a.idemp,
	}

	if err := mailinglist.New(dep); err != nil {
		slog.Error("failed to init module mailinglist", "error", err)
		os.Exit(1)
	}
}
