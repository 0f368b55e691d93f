package httpapi

import (
	"context"
)

// serverBaseCtx is canceled when the server begins draining. Generate joins
// it with the request context so queued work is abandoned on shutdown.
var serverBaseCtx = context.Background()

// SetBaseContext sets the context handlers join with each request. Nil
// restores context.Background.
func SetBaseContext(ctx context.Context) {
	if ctx == nil {
		ctx = context.Background()
	}
	serverBaseCtx = ctx
}

// joinContexts derives from req, keeping its values, and is also canceled
// when base is. The cause of whichever finished first is preserved.
func joinContexts(base, req context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancelCause(req)
	stop := context.AfterFunc(base, func() { cancel(context.Cause(base)) })
	return ctx, func() {
		stop()
		cancel(context.Canceled)
	}
}
