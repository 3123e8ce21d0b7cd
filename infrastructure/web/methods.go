package web

import "net/http"

func (wh *WebHandler) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodGet, path, handler, middleware...)
}

func (wh *WebHandler) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPost, path, handler, middleware...)
}

func (wh *WebHandler) PATCH(path string, handler HandlerFunc, middleware ...Middleware) {
	wh.Handle(http.MethodPatch, path, handler, middleware...)
}

func (g *RouteGroup) GET(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodGet, path, handler, middleware...)
}

func (g *RouteGroup) POST(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPost, path, handler, middleware...)
}

func (g *RouteGroup) PATCH(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodPatch, path, handler, middleware...)
}

func (g *RouteGroup) DELETE(path string, handler HandlerFunc, middleware ...Middleware) {
	g.Handle(http.MethodDelete, path, handler, middleware...)
}
