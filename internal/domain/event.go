package domain

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api/eventbrite"
	"github.com/chain-labs/simplr-events-server-v2/pkg/blockchain/eth"
	"github.com/chain-labs/simplr-events-server-v2/pkg/enum"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type EventDomain interface {
	Register(ctx context.Context, req *model.RegisterEventRequest) (*model.RegisterEventResponse, error)
}

type eventDomain struct {
	eventRepo          repository.EventRepository
	chain              eth.Client
	eventbriteEndpoint eventbrite.IEndpoint
}

func NewEventDomain(
	eventRepo repository.EventRepository,
	chain eth.Client,
	eventbriteEndpoint eventbrite.IEndpoint,
) *eventDomain {
	return &eventDomain{
		eventRepo:          eventRepo,
		chain:              chain,
		eventbriteEndpoint: eventbriteEndpoint,
	}
}

func (d *eventDomain) Register(
	ctx context.Context, req *model.RegisterEventRequest,
) (*model.RegisterEventResponse, error) {
	if req.Name == "" || req.ContractAddress == "" {
		return nil, errorx.New(errorx.BadRequest, "Event name and contract address are required")
	}

	platform, err := enum.ToEnum[entity.EventPlatform](strings.ToUpper(req.Platform))
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Unsupported platform %s", req.Platform)
	}

	firstEntry := time.Unix(req.FirstAllowedEntryDate, 0)
	lastEntry := time.Unix(req.LastAllowedEntryDate, 0)
	if lastEntry.Before(firstEntry) {
		return nil, errorx.New(errorx.BadRequest, "Entry window ends before it begins")
	}

	if _, err := d.eventRepo.GetByName(ctx, req.Name); err == nil {
		return nil, errorx.New(errorx.AlreadyExists, "Event is already registered")
	}

	// The issuance wallet anchors every batch of this event and needs the
	// minter role on the contract before the first publish.
	trx, err := d.chain.AddMinter(ctx, req.ContractAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot grant minter role on %s: %v", req.ContractAddress, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot grant the minter role")
	}

	xcontext.Logger(ctx).Infof("Granted minter role on %s with trx %s", req.ContractAddress, trx)

	event := &entity.Event{
		Base:                  entity.Base{ID: uuid.NewString()},
		Name:                  req.Name,
		ExternalID:            req.ExternalID,
		Platform:              platform,
		ContractAddress:       req.ContractAddress,
		FirstAllowedEntryDate: firstEntry,
		LastAllowedEntryDate:  lastEntry,
		EmailTemplate:         req.EmailTemplate,
		BaseClaimURL:          strings.TrimSuffix(req.BaseClaimURL, "/"),
		EventbriteAPIKey:      req.EventbriteAPIKey,
	}

	if platform == entity.PlatformEventbrite && req.EventbriteAPIKey != "" {
		cfg := xcontext.Configs(ctx)
		webhookID, err := d.eventbriteEndpoint.CreateOrderWebhook(
			ctx, req.EventbriteAPIKey, req.ExternalID, cfg.Intake.WebhookEndpoint)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot provision order webhook for %s: %v", req.Name, err)
			return nil, errorx.New(errorx.Unavailable, "Cannot provision the order webhook")
		}

		event.WebhookID = webhookID
	}

	if err := d.eventRepo.Create(ctx, event); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create event %s: %v", req.Name, err)
		return nil, errorx.Unknown
	}

	return &model.RegisterEventResponse{ID: event.ID, WebhookID: event.WebhookID}, nil
}
