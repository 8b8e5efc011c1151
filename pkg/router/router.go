// Package router layers named routes and prefix groups on top of chi.
// Names let tooling list the surface (`store route:list`) and build URLs
// without hard-coding paths.
package router

import (
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"
)

// Middleware wraps a handler, innermost last.
type Middleware func(http.Handler) http.Handler

// RouteInfo is one named route as registered.
type RouteInfo struct {
	Method string
	Path   string
	Name   string
}

// Router is the chi mux plus the name registry.
type Router struct {
	mux chi.Router

	mu     sync.RWMutex
	routes []RouteInfo
	byName map[string]string
}

func New() *Router {
	return &Router{mux: chi.NewRouter(), byName: map[string]string{}}
}

// Handler exposes the router as a plain http.Handler.
func (r *Router) Handler() http.Handler { return r.mux }

// Use appends global middlewares. Must be called before any route is mounted.
func (r *Router) Use(mws ...Middleware) {
	for _, mw := range mws {
		r.mux.Use(mw)
	}
}

func (r *Router) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodGet, cleanPath(path), name, h, mws)
}

func (r *Router) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPost, cleanPath(path), name, h, mws)
}

func (r *Router) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodPut, cleanPath(path), name, h, mws)
}

func (r *Router) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	r.register(http.MethodDelete, cleanPath(path), name, h, mws)
}

// HandleFunc mounts h for every method on path. Used for /metrics.
func (r *Router) HandleFunc(path string, h http.HandlerFunc) {
	r.mux.HandleFunc(cleanPath(path), h)
}

// Static serves the files under root at prefix:
//
//	r.Static("/uploads", http.Dir("storage/uploads"))
func (r *Router) Static(prefix string, root http.FileSystem) {
	p := cleanPath(prefix)
	r.mux.Handle(p+"/*", http.StripPrefix(p, http.FileServer(root)))
}

// Routes lists every named route registered so far.
func (r *Router) Routes() []RouteInfo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]RouteInfo(nil), r.routes...)
}

// Path looks up the pattern registered under name.
func (r *Router) Path(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byName[name]
	return p, ok
}

// URL substitutes params into the named route's {param} segments.
func (r *Router) URL(name string, params map[string]string) (string, error) {
	path, ok := r.Path(name)
	if !ok {
		return "", fmt.Errorf("route %q not found", name)
	}

	for k, v := range params {
		path = strings.ReplaceAll(path, "{"+k+"}", v)
	}
	if strings.Contains(path, "{") {
		return "", fmt.Errorf("missing parameters for route %q", name)
	}
	return path, nil
}

func (r *Router) register(method, path, name string, h http.Handler, mws []Middleware) {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	r.mux.Method(method, path, h)

	if name == "" {
		return
	}
	r.mu.Lock()
	r.routes = append(r.routes, RouteInfo{Method: method, Path: path, Name: name})
	r.byName[name] = path
	r.mu.Unlock()
}

// Group scopes routes under a shared prefix and middleware set.
type Group struct {
	router *Router
	prefix string
	mws    []Middleware
}

func (r *Router) Group(prefix string, mws ...Middleware) *Group {
	return &Group{router: r, prefix: cleanPath(prefix), mws: append([]Middleware(nil), mws...)}
}

// Group nests another group under this one.
func (g *Group) Group(prefix string, mws ...Middleware) *Group {
	return &Group{
		router: g.router,
		prefix: joinPath(g.prefix, prefix),
		mws:    append(append([]Middleware(nil), g.mws...), mws...),
	}
}

func (g *Group) Get(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodGet, path, name, h, mws)
}

func (g *Group) Post(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPost, path, name, h, mws)
}

func (g *Group) Put(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodPut, path, name, h, mws)
}

func (g *Group) Delete(path, name string, h http.HandlerFunc, mws ...Middleware) {
	g.register(http.MethodDelete, path, name, h, mws)
}

func (g *Group) register(method, path, name string, h http.Handler, mws []Middleware) {
	combined := append(append([]Middleware(nil), g.mws...), mws...)
	g.router.register(method, joinPath(g.prefix, path), name, h, combined)
}

func joinPath(parts ...string) string {
	var segs []string
	for _, part := range parts {
		if s := strings.Trim(part, "/"); s != "" {
			segs = append(segs, s)
		}
	}
	if len(segs) == 0 {
		return "/"
	}
	return "/" + strings.Join(segs, "/")
}

func cleanPath(path string) string {
	return joinPath(path)
}
