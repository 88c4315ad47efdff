package pinata

import (
	"context"
)

type IEndpoint interface {
	PinJSON(ctx context.Context, document any) (string, error)
}
