package entity

import (
	"time"

	"github.com/chain-labs/simplr-events-server-v2/pkg/enum"
)

type EventPlatform string

var (
	PlatformEventbrite = enum.New(EventPlatform("EVENTBRITE"))
	PlatformLuma       = enum.New(EventPlatform("LUMA"))
)

// Event is the registration-time configuration of one ticketed event. The
// pipeline only reads it; the registration flow owns writes.
type Event struct {
	Base

	Name       string `gorm:"uniqueIndex"`
	ExternalID string
	Platform   EventPlatform

	ContractAddress string

	FirstAllowedEntryDate time.Time
	LastAllowedEntryDate  time.Time

	EmailTemplate string
	BaseClaimURL  string

	WebhookID        string `gorm:"index"`
	EventbriteAPIKey string
}
