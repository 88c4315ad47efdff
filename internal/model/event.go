package model

type RegisterEventRequest struct {
	Name       string `json:"name"`
	ExternalID string `json:"external_id"`
	Platform   string `json:"platform"`

	ContractAddress string `json:"contract_address"`

	FirstAllowedEntryDate int64 `json:"first_allowed_entry_date"`
	LastAllowedEntryDate  int64 `json:"last_allowed_entry_date"`

	EmailTemplate string `json:"email_template"`
	BaseClaimURL  string `json:"base_claim_url"`

	EventbriteAPIKey string `json:"eventbrite_api_key,omitempty"`
}

type RegisterEventResponse struct {
	ID        string `json:"id"`
	WebhookID string `json:"webhook_id,omitempty"`
}
