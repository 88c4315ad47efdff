package model

type OrderWebhookRequest struct {
	Config OrderWebhookConfig `json:"config"`
	APIURL string             `json:"api_url"`
}

type OrderWebhookConfig struct {
	WebhookID string `json:"webhook_id"`
}

type OrderWebhookResponse struct {
	Processed bool   `json:"processed"`
	Message   string `json:"message"`

	Batch *BatchResponse `json:"batch,omitempty"`
}
