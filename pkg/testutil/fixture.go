package testutil

import (
	"context"
	"database/sql"
	"time"

	"github.com/chain-labs/simplr-events-server-v2/internal/entity"
	"github.com/chain-labs/simplr-events-server-v2/internal/repository"
)

var (
	Event1 = &entity.Event{
		Base:                  entity.Base{ID: "event1"},
		Name:                  "devcon-2026",
		ExternalID:            "eb-event-1",
		Platform:              entity.PlatformEventbrite,
		ContractAddress:       "0x1111111111111111111111111111111111111111",
		FirstAllowedEntryDate: time.Date(2026, 11, 9, 0, 0, 0, 0, time.UTC),
		LastAllowedEntryDate:  time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC),
		EmailTemplate:         "claim-template",
		BaseClaimURL:          "https://tickets.example.com",
		WebhookID:             "webhook1",
		EventbriteAPIKey:      "eb-key-1",
	}

	Event2 = &entity.Event{
		Base:                  entity.Base{ID: "event2"},
		Name:                  "one-day-meetup",
		Platform:              entity.PlatformLuma,
		ContractAddress:       "0x2222222222222222222222222222222222222222",
		FirstAllowedEntryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		LastAllowedEntryDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		EmailTemplate:         "claim-template",
		BaseClaimURL:          "https://tickets.example.com",
	}

	Ticket1 = &entity.Ticket{
		Base:                  entity.Base{ID: "ticket1"},
		EventID:               "event1",
		FirstName:             "Ada",
		LastName:              "Lovelace",
		Email:                 "ada@example.com",
		BatchID:               1,
		ContractAddress:       "0x1111111111111111111111111111111111111111",
		ExternalTicketID:      sql.NullString{String: "order-1", Valid: true},
		MailSent:              true,
		MailSentAt:            time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		MessageID:             sql.NullString{String: "msg-1", Valid: true},
		MaxDaysEntry:          4,
		FirstAllowedEntryDate: time.Date(2026, 11, 9, 0, 0, 0, 0, time.UTC),
		LastAllowedEntryDate:  time.Date(2026, 11, 12, 0, 0, 0, 0, time.UTC),
	}

	Ticket2 = &entity.Ticket{
		Base:                  entity.Base{ID: "ticket2"},
		EventID:               "event2",
		FirstName:             "Grace",
		LastName:              "Hopper",
		Email:                 "grace@example.com",
		BatchID:               1,
		ContractAddress:       "0x2222222222222222222222222222222222222222",
		MailSent:              true,
		MailSentAt:            time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC),
		MaxDaysEntry:          1,
		FirstAllowedEntryDate: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
		LastAllowedEntryDate:  time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC),
	}
)

func CreateFixtureDb(ctx context.Context) {
	InsertEvents(ctx)
	InsertTickets(ctx)
}

func InsertEvents(ctx context.Context) {
	eventRepo := repository.NewEventRepository()
	for _, event := range []*entity.Event{Event1, Event2} {
		e := *event
		if err := eventRepo.Create(ctx, &e); err != nil {
			panic(err)
		}
	}
}

func InsertTickets(ctx context.Context) {
	ticketRepo := repository.NewTicketRepository()
	for _, ticket := range []*entity.Ticket{Ticket1, Ticket2} {
		t := *ticket
		if err := ticketRepo.Create(ctx, &t); err != nil {
			panic(err)
		}
	}
}
