package router

import "net/http"

// Middleware decorates an http.Handler.
type Middleware func(next http.Handler) http.Handler

// Chain wraps h with mws so that mws[0] is the outermost layer.
func Chain(h http.Handler, mws ...Middleware) http.Handler {
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] != nil {
			h = mws[i](h)
		}
	}
	return h
}
