package domain

import (
	"context"

	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/api/eventbrite"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type WebhookDomain interface {
	HandleOrder(ctx context.Context, req *model.OrderWebhookRequest) (*model.OrderWebhookResponse, error)
}

type webhookDomain struct {
	eventRepo          repository.EventRepository
	ticketRepo         repository.TicketRepository
	batchDomain        BatchDomain
	eventbriteEndpoint eventbrite.IEndpoint
}

func NewWebhookDomain(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
	batchDomain BatchDomain,
	eventbriteEndpoint eventbrite.IEndpoint,
) *webhookDomain {
	return &webhookDomain{
		eventRepo:          eventRepo,
		ticketRepo:         ticketRepo,
		batchDomain:        batchDomain,
		eventbriteEndpoint: eventbriteEndpoint,
	}
}

// HandleOrder turns one order.placed delivery into a single-holder batch.
// Deliveries are retried by the platform, so a known order id is
// acknowledged without issuing anything.
func (d *webhookDomain) HandleOrder(
	ctx context.Context, req *model.OrderWebhookRequest,
) (*model.OrderWebhookResponse, error) {
	event, err := d.eventRepo.GetByWebhookID(ctx, req.Config.WebhookID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event of webhook %s: %v", req.Config.WebhookID, err)
		if err == gorm.ErrRecordNotFound {
			return nil, errorx.New(errorx.NotFound, "Unknown webhook")
		}

		return nil, errorx.Unknown
	}

	orderID, err := eventbrite.OrderID(req.APIURL)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot extract order id from %s: %v", req.APIURL, err)
		return nil, errorx.New(errorx.BadRequest, "Malformed order url")
	}

	_, err = d.ticketRepo.GetByExternalTicketID(ctx, orderID)
	if err == nil {
		return &model.OrderWebhookResponse{
			Processed: false,
			Message:   "Order is already processed",
		}, nil
	}

	if err != gorm.ErrRecordNotFound {
		xcontext.Logger(ctx).Errorf("Cannot check order %s: %v", orderID, err)
		return nil, errorx.Unknown
	}

	order, err := d.eventbriteEndpoint.GetOrder(ctx, req.APIURL, event.EventbriteAPIKey)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot fetch order %s: %v", orderID, err)
		return nil, errorx.New(errorx.Unavailable, "Cannot fetch the order")
	}

	batch, err := d.batchDomain.IngestSingle(ctx, &model.IngestSingleRequest{
		EventName: event.Name,
		Holder: model.Holder{
			FirstName:        order.FirstName,
			LastName:         order.LastName,
			Email:            order.Email,
			ExternalTicketID: orderID,
		},
	})
	if err != nil {
		return nil, err
	}

	return &model.OrderWebhookResponse{
		Processed: true,
		Message:   "Order processed",
		Batch:     batch,
	}, nil
}
