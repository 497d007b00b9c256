package sbhttpbase

type MiddlewareFunc func(request *Request, next HandleFunc)

func ComposeMiddleware(funcs []MiddlewareFunc, base HandleFunc) HandleFunc {
	for i := len(funcs) - 1; i >= 0; i-- {
		f := funcs[i]
		if f == nil {
			continue
		}
		oldBase := base
		base = func(request *Request) {
			f(request, oldBase)
		}
	}

	return base
}
