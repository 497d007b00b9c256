package sbhttpserver

import (
	"net/http"
	"strings"

	"github.com/dimfeld/httptreemux"
	log "github.com/sirupsen/logrus"

	"github.com/redvlock/agenta/pkg/http/interceptors"
	context_cancel "github.com/redvlock/agenta/pkg/interceptors/context-cancel"
	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
)

func (instance *Instance) registerHandlers(server Server) error {
	for _, handle := range server.GetHandlers() {
		log.Printf("registering handler %s %s", handle.Method, handle.Path)
		instance.registerHandler(handle)
	}

	return nil
}

func tailMiddlewares() []sbhttpbase.MiddlewareFunc {
	return []sbhttpbase.MiddlewareFunc{
		interceptors.HttpServerDefaultContentTypeInterceptor("application/json"),
		exhaustRequest,
		defaultOk,
		context_cancel.Interceptor{}.ToHTTP(),
		interceptors.HttpServerRecoverInterceptor(),
	}
}

func (instance *Instance) registerHandler(handle HandleDescription) {
	middleware := make([]sbhttpbase.MiddlewareFunc, 0)
	middleware = append(middleware, handle.Middleware...)
	middleware = append(middleware, tailMiddlewares()...)

	handler := sbhttpbase.ComposeMiddleware(middleware, handle.Handler)

	instance.registerRoute(handle.Method, handle.Path, handler)
}

func handleWrapper(pathPattern string, handler sbhttpbase.HandleFunc) httptreemux.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request, params map[string]string) {
		handler(&sbhttpbase.Request{
			PathPattern: pathPattern,
			Writer:      w,
			Request:     r,
			Params:      params,
		})
	}
}

func (b *Instance) registerRoute(method, path string, handler sbhttpbase.HandleFunc) {
	b.router.Handle(method, path, handleWrapper(path, handler))

	// Register the trailing-slash variant too; redirects are disabled.
	if path[len(path)-1] != '/' && !strings.Contains(path, "*") {
		b.router.Handle(method, path+"/", handleWrapper(path, handler))
	}
}
