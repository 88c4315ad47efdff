package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/config"
	"github.com/chain-labs/simplr-events-server-v2/pkg/logger"
)

type HandlerFunc[Request, Response any] func(ctx context.Context, req *Request) (*Response, error)
type MiddlewareFunc func(ctx context.Context) error

type Router struct {
	Inner gin.IRouter

	cfg    config.Configs
	logger logger.Logger
	db     *gorm.DB
}

func New(cfg config.Configs, logger logger.Logger, db *gorm.DB) *Router {
	engine := gin.New()
	engine.Use(gin.Recovery())

	return &Router{
		Inner:  engine,
		cfg:    cfg,
		logger: logger,
		db:     db,
	}
}

func GET[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.GET(pattern, wrapHandler(r, http.MethodGet, handler))
}

func POST[Request, Response any](r *Router, pattern string, handler HandlerFunc[Request, Response]) {
	r.Inner.POST(pattern, wrapHandler(r, http.MethodPost, handler))
}

func (r *Router) Use(middleware MiddlewareFunc) {
	r.Inner.Use(wrapMiddleware(r, middleware))
}

func (r *Router) Group(pattern string) *Router {
	return &Router{
		Inner:  r.Inner.Group(pattern),
		cfg:    r.cfg,
		logger: r.logger,
		db:     r.db,
	}
}

func (r *Router) Handler() http.Handler {
	return r.Inner.(*gin.Engine)
}
