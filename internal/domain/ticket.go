package domain

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/internal/model"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
	"github.com/chain-labs/simplr-events-server-v2/pkg/dateutil"
	"github.com/chain-labs/simplr-events-server-v2/pkg/errorx"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
)

type TicketDomain interface {
	Claim(ctx context.Context, req *model.ClaimTicketRequest) (*model.ClaimTicketResponse, error)
	Redeem(ctx context.Context, req *model.RedeemTicketRequest) (*model.RedeemTicketResponse, error)
	GetClaimed(ctx context.Context, req *model.GetClaimedTicketsRequest) (*model.GetClaimedTicketsResponse, error)
	GetRedeemed(ctx context.Context, req *model.GetRedeemedTicketsRequest) (*model.GetRedeemedTicketsResponse, error)
}

type ticketDomain struct {
	eventRepo  repository.EventRepository
	ticketRepo repository.TicketRepository
}

func NewTicketDomain(
	eventRepo repository.EventRepository,
	ticketRepo repository.TicketRepository,
) *ticketDomain {
	return &ticketDomain{
		eventRepo:  eventRepo,
		ticketRepo: ticketRepo,
	}
}

func (d *ticketDomain) findTicket(
	ctx context.Context,
	eventName, firstName, lastName, email, contractAddress string,
	batchID int64,
) (*entity.Event, *entity.Ticket, error) {
	event, err := d.eventRepo.GetByName(ctx, eventName)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get event %s: %v", eventName, err)
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errorx.New(errorx.NotFound, "Not found event")
		}

		return nil, nil, errorx.Unknown
	}

	ticket, err := d.ticketRepo.GetByIdentity(ctx, repository.TicketIdentityFilter{
		FirstName:       firstName,
		LastName:        lastName,
		Email:           email,
		EventID:         event.ID,
		ContractAddress: contractAddress,
		BatchID:         batchID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get ticket of %s in batch %d: %v", email, batchID, err)
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errorx.New(errorx.NotFound, "Not found ticket")
		}

		return nil, nil, errorx.Unknown
	}

	return event, ticket, nil
}

func (d *ticketDomain) Claim(
	ctx context.Context, req *model.ClaimTicketRequest,
) (*model.ClaimTicketResponse, error) {
	event, ticket, err := d.findTicket(ctx,
		req.EventName, req.FirstName, req.LastName, req.Email,
		req.ContractAddress, req.BatchID)
	if err != nil {
		return nil, err
	}

	if ticket.IsClaimed {
		return nil, errorx.New(errorx.AlreadyClaimed, "Ticket is already claimed")
	}

	claimedAt := time.Now()
	if req.ClaimTimestamp > 0 {
		claimedAt = time.Unix(req.ClaimTimestamp, 0)
	}

	err = d.ticketRepo.CheckAndClaim(ctx, ticket.ID, repository.ClaimUpdate{
		ClaimTrx:       req.ClaimTrx,
		TokenID:        req.TokenID,
		AccountAddress: req.AccountAddress,
		Subscribed:     req.IsSubscribed,
		ClaimedAt:      claimedAt,
	})
	if err != nil {
		// A concurrent claim of the same ticket won the conditional update.
		if err == gorm.ErrRecordNotFound {
			return nil, errorx.New(errorx.AlreadyClaimed, "Ticket is already claimed")
		}

		xcontext.Logger(ctx).Errorf("Cannot claim ticket %s: %v", ticket.ID, err)
		return nil, errorx.Unknown
	}

	claimed, err := d.ticketRepo.GetByID(ctx, ticket.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload ticket %s: %v", ticket.ID, err)
		return nil, errorx.Unknown
	}

	return &model.ClaimTicketResponse{Ticket: convertTicket(event, claimed)}, nil
}

func (d *ticketDomain) Redeem(
	ctx context.Context, req *model.RedeemTicketRequest,
) (*model.RedeemTicketResponse, error) {
	event, ticket, err := d.findTicket(ctx,
		req.EventName, req.FirstName, req.LastName, req.Email,
		req.ContractAddress, req.BatchID)
	if err != nil {
		return nil, err
	}

	redeemedAt := time.Now()
	if req.RedeemTimestamp > 0 {
		redeemedAt = time.Unix(req.RedeemTimestamp, 0)
	}

	if !dateutil.WithinWindow(redeemedAt, ticket.FirstAllowedEntryDate, ticket.LastAllowedEntryDate) {
		return nil, errorx.New(errorx.OutsideEntryWindow, "Entry is not allowed on this date")
	}

	if ticket.DaysEntered >= ticket.MaxDaysEntry {
		return nil, errorx.New(errorx.EntryLimitExceeded, "All entries are used up")
	}

	if err := d.ticketRepo.CheckAndRedeem(ctx, ticket.ID, redeemedAt); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errorx.New(errorx.EntryLimitExceeded, "All entries are used up")
		}

		xcontext.Logger(ctx).Errorf("Cannot redeem ticket %s: %v", ticket.ID, err)
		return nil, errorx.Unknown
	}

	redeemed, err := d.ticketRepo.GetByID(ctx, ticket.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot reload ticket %s: %v", ticket.ID, err)
		return nil, errorx.Unknown
	}

	return &model.RedeemTicketResponse{
		Ticket:   convertTicket(event, redeemed),
		EventDay: dateutil.EventDay(redeemedAt, ticket.FirstAllowedEntryDate),
	}, nil
}

func (d *ticketDomain) GetClaimed(
	ctx context.Context, req *model.GetClaimedTicketsRequest,
) (*model.GetClaimedTicketsResponse, error) {
	start, end := reportRange(req.StartTimestamp, req.EndTimestamp)
	tickets, err := d.ticketRepo.GetClaimedInRange(ctx, start, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get claimed tickets: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetClaimedTicketsResponse{
		Tickets: d.convertAll(ctx, tickets),
		Count:   len(tickets),
	}, nil
}

func (d *ticketDomain) GetRedeemed(
	ctx context.Context, req *model.GetRedeemedTicketsRequest,
) (*model.GetRedeemedTicketsResponse, error) {
	start, end := reportRange(req.StartTimestamp, req.EndTimestamp)
	tickets, err := d.ticketRepo.GetRedeemedInRange(ctx, start, end)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get redeemed tickets: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetRedeemedTicketsResponse{
		Tickets: d.convertAll(ctx, tickets),
		Count:   len(tickets),
	}, nil
}

func (d *ticketDomain) convertAll(ctx context.Context, tickets []entity.Ticket) []model.Ticket {
	events := map[string]*entity.Event{}
	result := make([]model.Ticket, 0, len(tickets))
	for i := range tickets {
		event, ok := events[tickets[i].EventID]
		if !ok {
			var err error
			event, err = d.eventRepo.GetByID(ctx, tickets[i].EventID)
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot get event %s: %v", tickets[i].EventID, err)
				event = nil
			}

			events[tickets[i].EventID] = event
		}

		result = append(result, convertTicket(event, &tickets[i]))
	}

	return result
}

// reportRange defaults an open-ended report to the epoch and the current
// moment.
func reportRange(start, end int64) (time.Time, time.Time) {
	startAt := time.Unix(0, 0)
	if start > 0 {
		startAt = time.Unix(start, 0)
	}

	endAt := time.Now()
	if end > 0 {
		endAt = time.Unix(end, 0)
	}

	return startAt, endAt
}
