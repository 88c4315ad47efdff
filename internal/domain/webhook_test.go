package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api/eventbrite"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/testutil"
)

const orderURL = "https://www.eventbriteapi.com/v3/orders/5551234567/"

func newWebhookTestEnv() (*batchTestEnv, WebhookDomain, *testutil.MockEventbriteEndpoint) {
	env := newBatchTestEnv()
	endpoint := &testutil.MockEventbriteEndpoint{
		GetOrderFunc: func(ctx context.Context, orderURL, apiKey string) (eventbrite.Order, error) {
			return eventbrite.Order{
				FirstName: "Alan",
				LastName:  "Turing",
				Email:     "alan@example.com",
			}, nil
		},
	}

	webhookDomain := NewWebhookDomain(
		repository.NewEventRepository(),
		repository.NewTicketRepository(),
		env.domain,
		endpoint,
	)

	return env, webhookDomain, endpoint
}

func Test_webhookDomain_HandleOrder(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	env, webhookDomain, _ := newWebhookTestEnv()
	resp, err := webhookDomain.HandleOrder(ctx, &model.OrderWebhookRequest{
		Config: model.OrderWebhookConfig{WebhookID: testutil.Event1.WebhookID},
		APIURL: orderURL,
	})
	require.NoError(t, err)
	require.True(t, resp.Processed)
	require.NotNil(t, resp.Batch)
	require.Equal(t, BatchStatePersisted, resp.Batch.State)

	ticket, err := repository.NewTicketRepository().GetByExternalTicketID(ctx, "5551234567")
	require.NoError(t, err)
	require.Equal(t, "Alan", ticket.FirstName)
	require.Equal(t, "alan@example.com", ticket.Email)
	require.Len(t, env.mailer.Sent, 1)
}

func Test_webhookDomain_HandleOrder_duplicateDelivery(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	env, webhookDomain, _ := newWebhookTestEnv()
	first, err := webhookDomain.HandleOrder(ctx, &model.OrderWebhookRequest{
		Config: model.OrderWebhookConfig{WebhookID: testutil.Event1.WebhookID},
		APIURL: orderURL,
	})
	require.NoError(t, err)
	require.True(t, first.Processed)

	// The platform retries deliveries; the second one is a no-op.
	second, err := webhookDomain.HandleOrder(ctx, &model.OrderWebhookRequest{
		Config: model.OrderWebhookConfig{WebhookID: testutil.Event1.WebhookID},
		APIURL: orderURL,
	})
	require.NoError(t, err)
	require.False(t, second.Processed)
	require.Nil(t, second.Batch)
	require.Len(t, env.mailer.Sent, 1)
	require.Len(t, env.chain.Anchors, 1)
}

func Test_webhookDomain_HandleOrder_unknownWebhook(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	_, webhookDomain, _ := newWebhookTestEnv()
	_, err := webhookDomain.HandleOrder(ctx, &model.OrderWebhookRequest{
		Config: model.OrderWebhookConfig{WebhookID: "no-such-webhook"},
		APIURL: orderURL,
	})

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.NotFound, errx.Code)
}

func Test_webhookDomain_HandleOrder_malformedOrderURL(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	_, webhookDomain, _ := newWebhookTestEnv()
	_, err := webhookDomain.HandleOrder(ctx, &model.OrderWebhookRequest{
		Config: model.OrderWebhookConfig{WebhookID: testutil.Event1.WebhookID},
		APIURL: "https://www.eventbriteapi.com/v3/users/me/",
	})

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
