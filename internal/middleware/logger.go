package middleware

import (
	"context"

	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

func Logger(ctx context.Context) error {
	req := xcontext.HTTPRequest(ctx)
	xcontext.Logger(ctx).Infof("%s | %s", req.Method, req.URL.Path)
	return nil
}
