package domain

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/testutil"
)

func registerRequest() *model.RegisterEventRequest {
	return &model.RegisterEventRequest{
		Name:                  "new-conference",
		ExternalID:            "eb-event-9",
		Platform:              "EVENTBRITE",
		ContractAddress:       "0x9999999999999999999999999999999999999999",
		FirstAllowedEntryDate: time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC).Unix(),
		LastAllowedEntryDate:  time.Date(2026, 12, 3, 0, 0, 0, 0, time.UTC).Unix(),
		EmailTemplate:         "claim-template",
		BaseClaimURL:          "https://tickets.example.com/",
		EventbriteAPIKey:      "eb-key-9",
	}
}

func Test_eventDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	var grantedContract, webhookEndpoint string
	chain := &testutil.MockEthClient{
		AddMinterFunc: func(ctx context.Context, contractAddress string) (string, error) {
			grantedContract = contractAddress
			return "0xminter", nil
		},
	}
	endpoint := &testutil.MockEventbriteEndpoint{
		CreateOrderWebhookFunc: func(ctx context.Context, apiKey, eventID, endpointURL string) (string, error) {
			webhookEndpoint = endpointURL
			return "webhook-9", nil
		},
	}

	domain := NewEventDomain(repository.NewEventRepository(), chain, endpoint)
	resp, err := domain.Register(ctx, registerRequest())
	require.NoError(t, err)
	require.NotEmpty(t, resp.ID)
	require.Equal(t, "webhook-9", resp.WebhookID)
	require.Equal(t, "0x9999999999999999999999999999999999999999", grantedContract)
	require.Equal(t, "https://api.example.com/webhook/eventbrite", webhookEndpoint)

	event, err := repository.NewEventRepository().GetByName(ctx, "new-conference")
	require.NoError(t, err)
	require.Equal(t, "webhook-9", event.WebhookID)

	// The trailing slash of the claim base is dropped.
	require.Equal(t, "https://tickets.example.com", event.BaseClaimURL)
}

func Test_eventDomain_Register_lumaSkipsWebhook(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	chain := &testutil.MockEthClient{
		AddMinterFunc: func(ctx context.Context, contractAddress string) (string, error) {
			return "0xminter", nil
		},
	}

	// No webhook endpoint is wired; provisioning must not be attempted.
	domain := NewEventDomain(repository.NewEventRepository(), chain, &testutil.MockEventbriteEndpoint{})

	req := registerRequest()
	req.Name = "luma-event"
	req.Platform = "LUMA"
	req.EventbriteAPIKey = ""
	resp, err := domain.Register(ctx, req)
	require.NoError(t, err)
	require.Empty(t, resp.WebhookID)
}

func Test_eventDomain_Register_invalidRequest(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewEventDomain(
		repository.NewEventRepository(), &testutil.MockEthClient{}, &testutil.MockEventbriteEndpoint{})

	errx := errorx.Error{}

	req := registerRequest()
	req.Name = ""
	_, err := domain.Register(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	req = registerRequest()
	req.Platform = "UNKNOWN"
	_, err = domain.Register(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	req = registerRequest()
	req.FirstAllowedEntryDate, req.LastAllowedEntryDate =
		req.LastAllowedEntryDate, req.FirstAllowedEntryDate
	_, err = domain.Register(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)

	req = registerRequest()
	req.Name = testutil.Event1.Name
	_, err = domain.Register(ctx, req)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.AlreadyExists, errx.Code)
}
