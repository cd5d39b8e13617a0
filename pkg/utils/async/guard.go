package async

import (
	"context"

	"github.com/landlordsafeguarding/riskaudit/pkg/utils/logging"
	"github.com/m-mizutani/goerr/v2"
)

// ErrPanic wraps a panic recovered from a guarded handler
var ErrPanic = goerr.New("panic in handler")

// Guard runs handler and converts a panic into an error wrapping ErrPanic,
// so that one failing worker of a batch does not take the process down.
func Guard(ctx context.Context, handler func(ctx context.Context) error) (err error) {
	defer func() {
		if r := recover(); r != nil {
			logging.From(ctx).Error("panic in handler", "panic", r)
			err = goerr.Wrap(ErrPanic, "handler panicked", goerr.V("panic", r))
		}
	}()

	return handler(ctx)
}
