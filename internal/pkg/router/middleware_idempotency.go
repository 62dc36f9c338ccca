package router

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/shandysiswandi/mailinglist/internal/pkg/goerror"
	"github.com/shandysiswandi/mailinglist/internal/pkg/idempotency"
)

// HeaderIdempotencyKey carries the client-chosen key for a retried request.
const HeaderIdempotencyKey = "Idempotency-Key"

// Idempotent rejects repeats of a request carrying an Idempotency-Key that is
// still running or already succeeded. A key whose previous run failed may be
// retried. Requests without the header, or a nil tracker, pass through.
func Idempotent(tracker idempotency.Idempotency, lockDuration, stateTTL time.Duration) Middleware {
	return func(next http.Handler) http.Handler {
		if tracker == nil {
			return next
		}

		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			key := headerToken(r.Header.Get(HeaderIdempotencyKey))
			if key == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := r.Context()
			key = r.Method + ":" + matchedRoutePath(r) + ":" + key

			state, err := tracker.Acquire(ctx, key, lockDuration)
			if err != nil {
				slog.ErrorContext(ctx, "failed to acquire idempotency key", "key", key, "error", err)
				writeError(w, goerror.NewServer(err))
				return
			}

			switch state {
			case idempotency.StateInProgress:
				writeError(w, goerror.NewConflict("request is already in progress"))
				return
			case idempotency.StateCompleted:
				writeError(w, goerror.NewConflict("request already processed"))
				return
			}

			rec := &statusRecorder{ResponseWriter: w}
			next.ServeHTTP(rec, r)

			mark := tracker.MarkCompleted
			if rec.Status() >= http.StatusBadRequest {
				mark = tracker.MarkFailed
			}
			if err := mark(ctx, key, stateTTL); err != nil {
				slog.ErrorContext(ctx, "failed to store idempotency state", "key", key, "error", err)
			}
		})
	}
}
