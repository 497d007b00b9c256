package sbhttpserver

import (
	"net/http/pprof"

	log "github.com/sirupsen/logrus"

	sbhttpbase "github.com/redvlock/agenta/pkg/serverbase/http/base"
)

func (b *Instance) registerProfileHandlers() {
	log.Printf("registering profile handlers")

	b.registerHandler(HandleDescription{
		Path:    "/debug/pprof/",
		Method:  "GET",
		Handler: sbhttpbase.HandleStdFunc(pprof.Index),
	})
	for _, subcomponent := range []string{"allocs", "block", "goroutine", "heap", "mutex", "threadcreate"} {
		b.registerHandler(HandleDescription{
			Path:    "/debug/pprof/" + subcomponent,
			Method:  "GET",
			Handler: sbhttpbase.HandleStdFunc(pprof.Index),
		})
	}
	b.registerHandler(HandleDescription{
		Path:    "/debug/pprof/cmdline",
		Method:  "GET",
		Handler: sbhttpbase.HandleStdFunc(pprof.Cmdline),
	})
	b.registerHandler(HandleDescription{
		Path:    "/debug/pprof/profile",
		Method:  "GET",
		Handler: sbhttpbase.HandleStdFunc(pprof.Profile),
	})
	b.registerHandler(HandleDescription{
		Path:    "/debug/pprof/symbol",
		Method:  "GET",
		Handler: sbhttpbase.HandleStdFunc(pprof.Symbol),
	})
	b.registerHandler(HandleDescription{
		Path:    "/debug/pprof/trace",
		Method:  "GET",
		Handler: sbhttpbase.HandleStdFunc(pprof.Trace),
	})
}
