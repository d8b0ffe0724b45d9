package httpserver

import "strings"

// RouteFunc is an application handler. It mutates the response before
// assembly, typically by attaching a payload or cookies.
type RouteFunc func(req *Request, resp *Response)

type RouteTable struct {
	routes map[routeKey]RouteFunc
}

type routeKey struct {
	method string
	path   string
}

func NewRouteTable() *RouteTable {
	return &RouteTable{
		routes: make(map[routeKey]RouteFunc),
	}
}

// Register associates fn with a method and an exact path. Routes are
// registered before the server starts; the table is read-only afterwards.
func (t *RouteTable) Register(method, path string, fn RouteFunc) {
	key := routeKey{method: strings.ToUpper(method), path: path}
	t.routes[key] = fn
}

func (t *RouteTable) Lookup(method, path string) RouteFunc {
	key := routeKey{method: strings.ToUpper(method), path: path}
	return t.routes[key]
}
