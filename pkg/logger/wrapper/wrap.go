package wrap

import (
	"context"
	"errors"
)

// Error wraps an error with the current LogCtx from the context.
// An error that is already wrapped gets its LogCtx refreshed.
func Error(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var e *errorWithLogCtx
	if errors.As(err, &e) {
		return &errorWithLogCtx{
			err:    err,
			logCtx: WithFallback(FromContext(ctx), e.logCtx),
		}
	}

	return &errorWithLogCtx{
		err:    err,
		logCtx: FromContext(ctx),
	}
}

// WithFallback fills the empty fields of lc from fallback.
func WithFallback(lc, fallback LogCtx) LogCtx {
	if lc.Action == "" {
		lc.Action = fallback.Action
	}
	if lc.RequestID == "" {
		lc.RequestID = fallback.RequestID
	}
	if lc.RunID == "" {
		lc.RunID = fallback.RunID
	}
	if lc.Artifact == "" {
		lc.Artifact = fallback.Artifact
	}
	return lc
}
