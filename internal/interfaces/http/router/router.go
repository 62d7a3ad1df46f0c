package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// RouteRegistrar is implemented by handlers that mount their own routes
// on the versioned API group.
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router collects registrars and mounts them under one versioned prefix.
// Handlers only ever see the group, so moving the API to /api/v2 is a
// one-line change at the composition root.
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// Option configures a Router
type Option func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) Option {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...Option) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register queues a registrar for Setup. Returns the router so
// registrations chain.
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup mounts every registered handler under /api/<version>
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// DomainGroup is a declarative route table for one domain prefix. It
// satisfies RouteRegistrar, so ad-hoc endpoints that have no handler
// struct of their own can still go through the router.
type DomainGroup struct {
	name   string
	prefix string
	routes []route
}

type route struct {
	method   string
	path     string
	handlers []gin.HandlerFunc
}

// NewDomainGroup creates a route table mounted at prefix
func NewDomainGroup(name, prefix string) *DomainGroup {
	return &DomainGroup{name: name, prefix: prefix}
}

func (g *DomainGroup) handle(method, path string, handlers []gin.HandlerFunc) *DomainGroup {
	g.routes = append(g.routes, route{method: method, path: path, handlers: handlers})
	return g
}

// GET registers a GET route
func (g *DomainGroup) GET(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodGet, path, handlers)
}

// POST registers a POST route
func (g *DomainGroup) POST(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodPost, path, handlers)
}

// PUT registers a PUT route
func (g *DomainGroup) PUT(path string, handlers ...gin.HandlerFunc) *DomainGroup {
	return g.handle(http.MethodPut, path, handlers)
}

// RegisterRoutes implements RouteRegistrar
func (g *DomainGroup) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group(g.prefix)
	for _, rt := range g.routes {
		group.Handle(rt.method, rt.path, rt.handlers...)
	}
}
