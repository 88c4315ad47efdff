package testutil

import (
	"context"

	"github.com/chain-labs/simplr-events-server-v2/pkg/api/eventbrite"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
)

type MockPinataEndpoint struct {
	PinJSONFunc func(ctx context.Context, document any) (string, error)
}

func (m *MockPinataEndpoint) PinJSON(ctx context.Context, document any) (string, error) {
	if m.PinJSONFunc != nil {
		return m.PinJSONFunc(ctx, document)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}

type MockEventbriteEndpoint struct {
	GetOrderFunc           func(ctx context.Context, orderURL, apiKey string) (eventbrite.Order, error)
	CreateOrderWebhookFunc func(ctx context.Context, apiKey, eventID, endpointURL string) (string, error)
}

func (m *MockEventbriteEndpoint) GetOrder(
	ctx context.Context, orderURL, apiKey string,
) (eventbrite.Order, error) {
	if m.GetOrderFunc != nil {
		return m.GetOrderFunc(ctx, orderURL, apiKey)
	}

	return eventbrite.Order{}, errorx.New(errorx.NotImplemented, "Not implemented")
}

func (m *MockEventbriteEndpoint) CreateOrderWebhook(
	ctx context.Context, apiKey, eventID, endpointURL string,
) (string, error) {
	if m.CreateOrderWebhookFunc != nil {
		return m.CreateOrderWebhookFunc(ctx, apiKey, eventID, endpointURL)
	}

	return "", errorx.New(errorx.NotImplemented, "Not implemented")
}
