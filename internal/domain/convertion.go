package domain

import (
	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/internal/model"
)

func convertTicket(event *entity.Event, ticket *entity.Ticket) model.Ticket {
	result := model.Ticket{
		ID:        ticket.ID,
		FirstName: ticket.FirstName,
		LastName:  ticket.LastName,
		Email:     ticket.Email,

		EventID:         ticket.EventID,
		BatchID:         ticket.BatchID,
		ContractAddress: ticket.ContractAddress,

		MailSent: ticket.MailSent,

		IsClaimed:    ticket.IsClaimed,
		IsSubscribed: ticket.IsSubscribed,

		IsRedeemed:   ticket.IsRedeemed,
		DaysEntered:  ticket.DaysEntered,
		MaxDaysEntry: ticket.MaxDaysEntry,

		FirstAllowedEntryDate: ticket.FirstAllowedEntryDate.Unix(),
		LastAllowedEntryDate:  ticket.LastAllowedEntryDate.Unix(),
	}

	if event != nil {
		result.EventName = event.Name
	}

	if !ticket.MailSentAt.IsZero() {
		result.MailSentAt = ticket.MailSentAt.Unix()
	}

	if ticket.ExternalTicketID.Valid {
		result.ExternalTicketID = ticket.ExternalTicketID.String
	}

	if ticket.MessageID.Valid {
		result.MessageID = ticket.MessageID.String
	}

	if ticket.ClaimedAt.Valid {
		result.ClaimedAt = ticket.ClaimedAt.Time.Unix()
	}

	if ticket.ClaimTrx.Valid {
		result.ClaimTrx = ticket.ClaimTrx.String
	}

	if ticket.TokenID.Valid {
		result.TokenID = ticket.TokenID.String
	}

	if ticket.AccountAddress.Valid {
		result.AccountAddress = ticket.AccountAddress.String
	}

	if ticket.RedeemedAt.Valid {
		result.RedeemedAt = ticket.RedeemedAt.Time.Unix()
	}

	return result
}
