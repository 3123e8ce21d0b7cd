package web

import (
	"context"
	"net/http"
	"slices"
)

func (wh *WebHandler) buildHandlerChain(handler HandlerFunc, middleware ...Middleware) HandlerFunc {
	allMiddleware := slices.Concat(wh.globalMiddleware, middleware)

	final := handler
	for i := len(allMiddleware) - 1; i >= 0; i-- {
		final = allMiddleware[i](final)
	}

	return final
}

func (wh *WebHandler) corsMiddleware() Middleware {
	return func(next HandlerFunc) HandlerFunc {
		return func(ctx context.Context, r *http.Request) Encoder {
			w := GetWriter(ctx)
			if w == nil {
				return NewError("internal server error: response writer not available")
			}

			origin := r.Header.Get("Origin")
			for _, allowedOrigin := range wh.corsOrigins {
				if allowedOrigin == "*" || allowedOrigin == origin {
					w.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
					break
				}
			}

			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PATCH, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Accept, Content-Type, Authorization")
			w.Header().Set("Access-Control-Expose-Headers", TraceHeader)
			w.Header().Set("Access-Control-Max-Age", "86400")

			if r.Method == http.MethodOptions {
				return nil
			}

			return next(ctx, r)
		}
	}
}
