package obs

import (
	"context"
	"log/slog"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

// Time logs how long the named operation took once the returned func is called.
// Pass a pointer to the named error result so failures are logged with the duration:
//
//	defer obs.Time(ctx, "places.ListPlaces")(&err)
func Time(ctx context.Context, name string) func(errp *error) {
	start := time.Now()
	reqID := chimiddleware.GetReqID(ctx)

	return func(errp *error) {
		dur := time.Since(start)

		if errp != nil && *errp != nil {
			slog.WarnContext(ctx, "op failed", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds(), "err", *errp)
			return
		}
		slog.DebugContext(ctx, "op", "req_id", reqID, "op", name, "dur_ms", dur.Milliseconds())
	}
}
