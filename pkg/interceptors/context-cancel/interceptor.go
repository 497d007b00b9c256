package context_cancel

import (
	"context"

	"github.com/redvlock/agenta/pkg/http/wrappers"
	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
)

type Interceptor struct{}

// ToHTTP maps responses for requests whose context was cancelled to the
// nginx-style 499 status, so client disconnects are not counted as errors.
func (interceptor Interceptor) ToHTTP() sbhttpbase.MiddlewareFunc {
	return func(request *sbhttpbase.Request, next sbhttpbase.HandleFunc) {
		wrapper := wrappers.CustomizableResponseWriter{
			Response: request.Writer,
			OnWriteHeader: func(w *wrappers.CustomizableResponseWriter, code int) {
				if err := request.Request.Context().Err(); err != nil {
					if err == context.Canceled || err == context.DeadlineExceeded {
						code = 499
					}
				}
				request.Writer.WriteHeader(code)
			},
		}

		next(request.WithWriter(&wrapper))
	}
}
