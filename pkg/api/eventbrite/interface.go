package eventbrite

import "context"

type IEndpoint interface {
	GetOrder(ctx context.Context, orderURL, apiKey string) (Order, error)
	CreateOrderWebhook(ctx context.Context, apiKey, eventID, endpointURL string) (string, error)
}

type Order struct {
	FirstName string
	LastName  string
	Email     string
	Created   string
}
