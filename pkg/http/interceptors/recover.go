package interceptors

import (
	log "github.com/sirupsen/logrus"

	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
)

func HttpServerRecoverInterceptor() sbhttpbase.MiddlewareFunc {
	return func(request *sbhttpbase.Request, next sbhttpbase.HandleFunc) {
		defer func() {
			if r := recover(); r != nil {
				log.Printf("panic while handling %s %s: %v", request.Request.Method, request.Request.URL.Path, r)
				request.Writer.WriteHeader(500)
				request.Writer.Write([]byte("Internal server error"))
			}
		}()
		next(request)
	}
}
