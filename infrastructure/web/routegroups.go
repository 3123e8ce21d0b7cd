package web

import (
	"slices"
	"strings"
)

type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

func (wh *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: wh,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	g.webHandler.Handle(method, g.prefix+path, handler, slices.Concat(g.middleware, middleware)...)
}

func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: slices.Concat(g.middleware, middleware),
	}
}
