package entity

import (
	"database/sql"
	"time"
)

// Ticket is the durable record of one issued claimable credential. A row is
// written once per holder per batch, then mutated at most twice: once by
// claim and once per successful redeem.
type Ticket struct {
	Base

	// (Email, EventID, BatchID) is unique: the same email may hold tickets
	// across events and batches, but never twice within one batch.
	EventID string `gorm:"uniqueIndex:idx_tickets_identity,priority:2"`
	Event   Event  `gorm:"foreignKey:EventID"`

	FirstName string
	LastName  string
	Email     string `gorm:"uniqueIndex:idx_tickets_identity,priority:1"`

	BatchID         int64 `gorm:"uniqueIndex:idx_tickets_identity,priority:3"`
	ContractAddress string

	// ExternalTicketID is the upstream platform's own ticket/order id, used
	// to deduplicate webhook deliveries.
	ExternalTicketID sql.NullString `gorm:"index"`

	MailSent   bool
	MailSentAt time.Time
	MessageID  sql.NullString

	IsClaimed      bool
	ClaimedAt      sql.NullTime
	ClaimTrx       sql.NullString
	TokenID        sql.NullString
	AccountAddress sql.NullString
	IsSubscribed   bool

	IsRedeemed   bool
	RedeemedAt   sql.NullTime
	DaysEntered  int
	MaxDaysEntry int

	FirstAllowedEntryDate time.Time
	LastAllowedEntryDate  time.Time
}
