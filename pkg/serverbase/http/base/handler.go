package sbhttpbase

import (
	"net/http"
)

type HandleFunc func(request *Request)

func HandleStdFunc(fn func(w http.ResponseWriter, r *http.Request)) HandleFunc {
	return func(request *Request) {
		fn(request.Writer, request.Request)
	}
}
