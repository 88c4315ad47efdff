package model

type Ticket struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`

	EventID         string `json:"event_id"`
	EventName       string `json:"event_name"`
	BatchID         int64  `json:"batch_id"`
	ContractAddress string `json:"contract_address"`

	ExternalTicketID string `json:"external_ticket_id,omitempty"`

	MailSent   bool   `json:"mail_sent"`
	MailSentAt int64  `json:"mail_sent_at,omitempty"`
	MessageID  string `json:"message_id,omitempty"`

	IsClaimed      bool   `json:"is_claimed"`
	ClaimedAt      int64  `json:"claimed_at,omitempty"`
	ClaimTrx       string `json:"claim_trx,omitempty"`
	TokenID        string `json:"token_id,omitempty"`
	AccountAddress string `json:"account_address,omitempty"`
	IsSubscribed   bool   `json:"is_subscribed"`

	IsRedeemed   bool  `json:"is_redeemed"`
	RedeemedAt   int64 `json:"redeemed_at,omitempty"`
	DaysEntered  int   `json:"days_entered"`
	MaxDaysEntry int   `json:"max_days_entry"`

	FirstAllowedEntryDate int64 `json:"first_allowed_entry_date"`
	LastAllowedEntryDate  int64 `json:"last_allowed_entry_date"`
}

type ClaimTicketRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	EventName       string `json:"event_name"`
	ContractAddress string `json:"contract_address"`
	BatchID         int64  `json:"batch_id"`

	ClaimTrx       string `json:"claim_trx"`
	TokenID        string `json:"token_id"`
	AccountAddress string `json:"account_address"`
	IsSubscribed   bool   `json:"is_subscribed"`
	ClaimTimestamp int64  `json:"claim_timestamp"`
}

type ClaimTicketResponse struct {
	Ticket Ticket `json:"ticket"`
}

type RedeemTicketRequest struct {
	Email           string `json:"email"`
	FirstName       string `json:"first_name"`
	LastName        string `json:"last_name"`
	EventName       string `json:"event_name"`
	ContractAddress string `json:"contract_address"`
	BatchID         int64  `json:"batch_id"`

	RedeemTimestamp int64 `json:"redeem_timestamp"`
}

type RedeemTicketResponse struct {
	Ticket   Ticket `json:"ticket"`
	EventDay int    `json:"event_day"`
}

type GetClaimedTicketsRequest struct {
	StartTimestamp int64 `json:"start_timestamp"`
	EndTimestamp   int64 `json:"end_timestamp"`
}

type GetClaimedTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
	Count   int      `json:"count"`
}

type GetRedeemedTicketsRequest struct {
	StartTimestamp int64 `json:"start_timestamp"`
	EndTimestamp   int64 `json:"end_timestamp"`
}

type GetRedeemedTicketsResponse struct {
	Tickets []Ticket `json:"tickets"`
	Count   int      `json:"count"`
}
