package router

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/mitchellh/mapstructure"

	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

func wrapHandler[Request, Response any](
	router *Router,
	method string,
	handler HandlerFunc[Request, Response],
) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		ctx := router.newContext(gctx)

		var req Request
		var err error
		switch method {
		case http.MethodGet:
			err = decodeQuery(gctx.Request, &req)
		case http.MethodPost:
			err = gctx.ShouldBindJSON(&req)
		}
		if err != nil {
			router.logger.Warnf("Cannot parse %s %s request: %v",
				method, gctx.Request.URL.Path, err)
			gctx.JSON(http.StatusOK,
				newErrorResponse(errorx.New(errorx.BadRequest, "Cannot parse the request")))
			return
		}

		resp, err := handler(ctx, &req)
		if err != nil {
			gctx.JSON(http.StatusOK, newErrorResponse(err))
			return
		}

		gctx.JSON(http.StatusOK, newResponse(resp))
	}
}

func wrapMiddleware(router *Router, middleware MiddlewareFunc) gin.HandlerFunc {
	return func(gctx *gin.Context) {
		if err := middleware(router.newContext(gctx)); err != nil {
			gctx.AbortWithStatusJSON(http.StatusOK, newErrorResponse(err))
		}
	}
}

func (r *Router) newContext(gctx *gin.Context) context.Context {
	ctx := xcontext.WithConfigs(gctx.Request.Context(), r.cfg)
	ctx = xcontext.WithLogger(ctx, r.logger)
	ctx = xcontext.WithDB(ctx, r.db)
	return xcontext.WithHTTPRequest(ctx, gctx.Request)
}

// decodeQuery maps first query values onto the request struct by json tag
// name, converting to the field type.
func decodeQuery(r *http.Request, out any) error {
	values := map[string]string{}
	for key, value := range r.URL.Query() {
		if len(value) > 0 {
			values[key] = value[0]
		}
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           out,
		TagName:          "json",
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}

	return decoder.Decode(values)
}
