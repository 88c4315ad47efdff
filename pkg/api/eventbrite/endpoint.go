package eventbrite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/chain-labs/simplr-events-server-v2/pkg/api"
)

type Endpoint struct {
	apiGenerator api.Generator
}

func New() *Endpoint {
	return &Endpoint{apiGenerator: api.NewGenerator("https://www.eventbriteapi.com")}
}

// GetOrder resolves a full order URL delivered by an order.placed webhook.
// The URL already carries the API domain, so the path is extracted first.
func (e *Endpoint) GetOrder(ctx context.Context, orderURL, apiKey string) (Order, error) {
	path, err := orderPath(orderURL)
	if err != nil {
		return Order{}, err
	}

	resp, err := e.apiGenerator.New(path).GET(ctx, api.OAuth2("Bearer", apiKey))
	if err != nil {
		return Order{}, err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return Order{}, errors.New("invalid order response")
	}

	order := Order{}
	if order.FirstName, err = body.GetString("first_name"); err != nil {
		return Order{}, err
	}
	if order.LastName, err = body.GetString("last_name"); err != nil {
		return Order{}, err
	}
	if order.Email, err = body.GetString("email"); err != nil {
		return Order{}, err
	}
	order.Created, _ = body.GetString("created")

	return order, nil
}

// CreateOrderWebhook provisions an order.placed/order.updated webhook for the
// event under the api key's first organization, returning the webhook id.
func (e *Endpoint) CreateOrderWebhook(
	ctx context.Context, apiKey, eventID, endpointURL string,
) (string, error) {
	resp, err := e.apiGenerator.New("/v3/users/me/organizations/").
		GET(ctx, api.OAuth2("Bearer", apiKey))
	if err != nil {
		return "", err
	}

	body, ok := resp.Body.(api.JSON)
	if !ok {
		return "", errors.New("invalid organizations response")
	}

	orgs, err := body.GetArray("organizations")
	if err != nil {
		return "", err
	}

	if len(orgs) == 0 {
		return "", errors.New("api key has no organization")
	}

	org, ok := orgs[0].(map[string]any)
	if !ok {
		return "", errors.New("invalid organization object")
	}

	orgID, err := api.JSON(org).GetString("id")
	if err != nil {
		return "", err
	}

	webhookResp, err := e.apiGenerator.New("/v3/organizations/%s/webhooks/", orgID).
		Body(api.JSON{
			"endpoint_url": endpointURL,
			"actions":      "order.placed,order.updated",
			"event_id":     eventID,
		}).
		POST(ctx, api.OAuth2("Bearer", apiKey))
	if err != nil {
		return "", err
	}

	webhookBody, ok := webhookResp.Body.(api.JSON)
	if !ok {
		return "", errors.New("invalid webhook response")
	}

	return webhookBody.GetString("id")
}

// OrderID extracts the platform's own ticket identifier from an order URL,
// e.g. .../orders/1234567890/ returns 1234567890.
func OrderID(orderURL string) (string, error) {
	trimmed := strings.TrimSuffix(orderURL, "/")
	_, id, found := strings.Cut(trimmed, "orders/")
	if !found || id == "" || strings.Contains(id, "/") {
		return "", fmt.Errorf("cannot extract order id from %s", orderURL)
	}

	return id, nil
}

func orderPath(orderURL string) (string, error) {
	_, path, found := strings.Cut(orderURL, "eventbriteapi.com")
	if !found || path == "" {
		return "", fmt.Errorf("unexpected order url %s", orderURL)
	}

	return path, nil
}
