package repository

import (
	"context"
	"time"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/pkg/xcontext"
	"gorm.io/gorm"
)

// TicketIdentityFilter is the composite identity a holder presents when
// claiming or redeeming. Email alone is not enough: the same email may appear
// across events and batches.
type TicketIdentityFilter struct {
	FirstName       string
	LastName        string
	Email           string
	EventID         string
	ContractAddress string
	BatchID         int64
}

type ClaimUpdate struct {
	ClaimTrx       string
	TokenID        string
	AccountAddress string
	Subscribed     bool
	ClaimedAt      time.Time
}

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByID(ctx context.Context, id string) (*entity.Ticket, error)
	GetByIdentity(ctx context.Context, filter TicketIdentityFilter) (*entity.Ticket, error)
	GetByExternalTicketID(ctx context.Context, externalTicketID string) (*entity.Ticket, error)
	GetByEventID(ctx context.Context, eventID string) ([]entity.Ticket, error)

	// CheckAndClaim transitions the ticket to claimed with a single
	// conditional update. It returns gorm.ErrRecordNotFound when the ticket
	// does not exist or is already claimed; concurrent calls have exactly
	// one winner.
	CheckAndClaim(ctx context.Context, id string, update ClaimUpdate) error

	// CheckAndRedeem increments days_entered with a single conditional
	// update guarded by max_days_entry. It returns gorm.ErrRecordNotFound
	// when the ticket does not exist or the entry budget is used up.
	CheckAndRedeem(ctx context.Context, id string, redeemedAt time.Time) error

	GetClaimedInRange(ctx context.Context, start, end time.Time) ([]entity.Ticket, error)
	GetRedeemedInRange(ctx context.Context, start, end time.Time) ([]entity.Ticket, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByID(ctx context.Context, id string) (*entity.Ticket, error) {
	var result entity.Ticket
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetByIdentity(
	ctx context.Context, filter TicketIdentityFilter,
) (*entity.Ticket, error) {
	var result entity.Ticket
	err := xcontext.DB(ctx).
		Where("first_name=? AND last_name=? AND email=?",
			filter.FirstName, filter.LastName, filter.Email).
		Where("event_id=? AND contract_address=? AND batch_id=?",
			filter.EventID, filter.ContractAddress, filter.BatchID).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetByExternalTicketID(
	ctx context.Context, externalTicketID string,
) (*entity.Ticket, error) {
	var result entity.Ticket
	err := xcontext.DB(ctx).
		Take(&result, "external_ticket_id=?", externalTicketID).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *ticketRepository) GetByEventID(ctx context.Context, eventID string) ([]entity.Ticket, error) {
	var result []entity.Ticket
	if err := xcontext.DB(ctx).Find(&result, "event_id=?", eventID).Error; err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) CheckAndClaim(ctx context.Context, id string, update ClaimUpdate) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND is_claimed=?", id, false).
		Updates(map[string]any{
			"is_claimed":      true,
			"claimed_at":      update.ClaimedAt,
			"claim_trx":       update.ClaimTrx,
			"token_id":        update.TokenID,
			"account_address": update.AccountAddress,
			"is_subscribed":   update.Subscribed,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) CheckAndRedeem(ctx context.Context, id string, redeemedAt time.Time) error {
	tx := xcontext.DB(ctx).Model(&entity.Ticket{}).
		Where("id=? AND days_entered < max_days_entry", id).
		Updates(map[string]any{
			"days_entered": gorm.Expr("days_entered+?", 1),
			"is_redeemed":  true,
			"redeemed_at":  redeemedAt,
		})
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *ticketRepository) GetClaimedInRange(
	ctx context.Context, start, end time.Time,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("is_claimed=? AND claimed_at >= ? AND claimed_at <= ?", true, start, end).
		Order("claimed_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *ticketRepository) GetRedeemedInRange(
	ctx context.Context, start, end time.Time,
) ([]entity.Ticket, error) {
	var result []entity.Ticket
	err := xcontext.DB(ctx).
		Where("is_redeemed=? AND redeemed_at >= ? AND redeemed_at <= ?", true, start, end).
		Order("redeemed_at ASC").
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
